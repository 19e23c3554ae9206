// SPDX-License-Identifier: MPL-2.0

package tui

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"
)

const (
	// ThemeDefault uses the base huh theme.
	ThemeDefault Theme = "default"
	// ThemeCharm uses the Charm theme.
	ThemeCharm Theme = "charm"
	// ThemeDracula uses the Dracula theme.
	ThemeDracula Theme = "dracula"
	// ThemeCatppuccin uses the Catppuccin theme.
	ThemeCatppuccin Theme = "catppuccin"
	// ThemeBase16 uses the Base16 theme.
	ThemeBase16 Theme = "base16"

	// AccessibleEnv forces accessible mode when set to any value.
	AccessibleEnv = "ACCESSIBLE"
)

// ErrInvalidTheme is the sentinel error wrapped by InvalidThemeError.
var ErrInvalidTheme = errors.New("invalid theme")

type (
	// Theme represents the visual theme for prompts.
	Theme string

	// InvalidThemeError is returned when a Theme is not recognized.
	// It wraps ErrInvalidTheme for errors.Is() compatibility.
	InvalidThemeError struct {
		Value Theme
	}

	// Config holds common configuration for TUI components.
	Config struct {
		// Theme specifies the visual theme to use.
		Theme Theme
		// Accessible replaces redrawing prompts with plain line-oriented
		// ones that screen readers can follow.
		Accessible bool
		// Width specifies the width of the component (0 for auto).
		Width int
		// Output specifies where to write the component output.
		Output io.Writer
	}
)

// Themes returns every recognized theme in a stable order.
func Themes() []Theme {
	return []Theme{ThemeDefault, ThemeCharm, ThemeDracula, ThemeCatppuccin, ThemeBase16}
}

// Validate returns an error if the theme is not recognized.
// The zero value is treated as ThemeDefault.
func (t Theme) Validate() error {
	switch t {
	case "", ThemeDefault, ThemeCharm, ThemeDracula, ThemeCatppuccin, ThemeBase16:
		return nil
	default:
		return &InvalidThemeError{Value: t}
	}
}

// Error implements the error interface for InvalidThemeError.
func (e *InvalidThemeError) Error() string {
	return fmt.Sprintf("invalid theme %q (valid: default, charm, dracula, catppuccin, base16)", e.Value)
}

// Unwrap returns ErrInvalidTheme for errors.Is() compatibility.
func (e *InvalidThemeError) Unwrap() error { return ErrInvalidTheme }

// DefaultConfig returns the default configuration for TUI components.
// Accessible mode is enabled automatically when the ACCESSIBLE environment
// variable is set or stdin is not a terminal. In accessible mode, output goes
// to stderr so prompts are not captured by command substitution.
func DefaultConfig() Config {
	accessible := os.Getenv(AccessibleEnv) != "" || !isInputTerminal()

	var output io.Writer = os.Stdout
	if accessible {
		output = os.Stderr
	}

	return Config{
		Theme:      ThemeDefault,
		Accessible: accessible,
		Output:     output,
	}
}

// ShouldUseAccessible reports whether accessible mode should be used for cfg.
// Even if cfg.Accessible is false, this returns true when ACCESSIBLE is set or
// stdin is not a terminal.
func ShouldUseAccessible(cfg Config) bool {
	return cfg.Accessible || os.Getenv(AccessibleEnv) != "" || !isInputTerminal()
}

// IsTerminal reports whether w is a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// isInputTerminal returns true if stdin is connected to a terminal.
func isInputTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// getOutputWriter returns cfg.Output, or stderr in accessible mode and
// stdout otherwise.
func getOutputWriter(cfg Config) io.Writer {
	if cfg.Output != nil {
		return cfg.Output
	}
	if ShouldUseAccessible(cfg) {
		return os.Stderr
	}
	return os.Stdout
}

// HuhTheme converts a Theme to a huh.Theme.
func HuhTheme(t Theme) *huh.Theme {
	switch t {
	case ThemeCharm:
		return huh.ThemeCharm()
	case ThemeDracula:
		return huh.ThemeDracula()
	case ThemeCatppuccin:
		return huh.ThemeCatppuccin()
	case ThemeBase16:
		return huh.ThemeBase16()
	default:
		return huh.ThemeBase()
	}
}
