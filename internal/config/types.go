// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/a11yterm/a11yterm/internal/tui"
)

const (
	// LogLevelDebug logs everything, including controller state changes.
	LogLevelDebug LogLevel = "debug"
	// LogLevelInfo logs lifecycle events.
	LogLevelInfo LogLevel = "info"
	// LogLevelWarn logs recoverable problems.
	LogLevelWarn LogLevel = "warn"
	// LogLevelError logs failures only.
	LogLevelError LogLevel = "error"

	// CodeStyleAuto picks the code style from the terminal background.
	CodeStyleAuto CodeStyle = "auto"
	// CodeStyleDark forces the dark code style.
	CodeStyleDark CodeStyle = "dark"
	// CodeStyleLight forces the light code style.
	CodeStyleLight CodeStyle = "light"
	// CodeStyleNoTTY renders code without colors.
	CodeStyleNoTTY CodeStyle = "notty"

	// DefaultSSHHost is the interface the SSH server binds to by default.
	DefaultSSHHost = "localhost"
	// DefaultSSHPort is the default SSH server port.
	DefaultSSHPort = 23234
)

var (
	// ErrInvalidLogLevel is returned when a LogLevel value is not recognized.
	ErrInvalidLogLevel = errors.New("invalid log level")
	// ErrInvalidCodeStyle is returned when a CodeStyle value is not recognized.
	ErrInvalidCodeStyle = errors.New("invalid code style")
	// ErrInvalidPort is the sentinel error wrapped by InvalidPortError.
	ErrInvalidPort = errors.New("invalid port")
	// ErrInvalidHost is the sentinel error wrapped by InvalidHostError.
	ErrInvalidHost = errors.New("invalid host")
	// ErrInvalidUIConfig is the sentinel error wrapped by InvalidUIConfigError.
	ErrInvalidUIConfig = errors.New("invalid UI config")
	// ErrInvalidLogConfig is the sentinel error wrapped by InvalidLogConfigError.
	ErrInvalidLogConfig = errors.New("invalid log config")
	// ErrInvalidSSHConfig is the sentinel error wrapped by InvalidSSHConfigError.
	ErrInvalidSSHConfig = errors.New("invalid SSH config")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// LogLevel is the minimum level written to the log.
	LogLevel string

	// InvalidLogLevelError is returned when a LogLevel value is not recognized.
	// It wraps ErrInvalidLogLevel for errors.Is() compatibility.
	InvalidLogLevelError struct {
		Value LogLevel
	}

	// CodeStyle is the glamour style used for component pages and code samples.
	CodeStyle string

	// InvalidCodeStyleError is returned when a CodeStyle value is not recognized.
	// It wraps ErrInvalidCodeStyle for errors.Is() compatibility.
	InvalidCodeStyleError struct {
		Value CodeStyle
	}

	// InvalidPortError is returned when a port is outside 1-65535.
	InvalidPortError struct {
		Value int
	}

	// InvalidHostError is returned when the SSH host is empty or whitespace-only.
	InvalidHostError struct {
		Value string
	}

	// InvalidUIConfigError is returned when a UIConfig has invalid fields.
	// It wraps ErrInvalidUIConfig for errors.Is() compatibility and collects
	// field-level validation errors.
	InvalidUIConfigError struct {
		FieldErrors []error
	}

	// InvalidLogConfigError is returned when a LogConfig has invalid fields.
	InvalidLogConfigError struct {
		FieldErrors []error
	}

	// InvalidSSHConfigError is returned when an SSHConfig has invalid fields.
	InvalidSSHConfigError struct {
		FieldErrors []error
	}

	// InvalidConfigError is returned when a Config has invalid fields.
	// It wraps ErrInvalidConfig for errors.Is() compatibility and collects
	// field-level validation errors from all sub-components.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the application configuration.
	Config struct {
		// UI configures the showcase and the documentation output
		UI UIConfig `json:"ui" mapstructure:"ui"`
		// Log configures logging
		Log LogConfig `json:"log" mapstructure:"log"`
		// SSH configures the serve command
		SSH SSHConfig `json:"ssh" mapstructure:"ssh"`
	}

	// UIConfig configures the user interface.
	UIConfig struct {
		// Theme is the prompt theme for interactive pickers
		Theme tui.Theme `json:"theme" mapstructure:"theme"`
		// Accessible forces plain line-oriented prompts and output
		Accessible bool `json:"accessible" mapstructure:"accessible"`
		// Mouse enables mouse support in the showcase
		Mouse bool `json:"mouse" mapstructure:"mouse"`
		// StartComponent is the catalog id selected when the showcase starts.
		// Empty selects the first component.
		StartComponent string `json:"start_component" mapstructure:"start_component"`
		// CodeStyle is the glamour style for pages and code samples
		CodeStyle CodeStyle `json:"code_style" mapstructure:"code_style"`
	}

	// LogConfig configures logging.
	LogConfig struct {
		// Level is the minimum level written
		Level LogLevel `json:"level" mapstructure:"level"`
		// File redirects the log to a file. Empty logs to stderr, except while
		// the showcase owns the terminal, when logging is discarded.
		File string `json:"file" mapstructure:"file"`
	}

	// SSHConfig configures the SSH server.
	SSHConfig struct {
		// Host is the interface to bind
		Host string `json:"host" mapstructure:"host"`
		// Port is the TCP port to listen on
		Port int `json:"port" mapstructure:"port"`
		// HostKeyPath is the server's private key. Empty uses
		// ssh_host_ed25519 in the config directory, created on first start.
		HostKeyPath string `json:"host_key_path" mapstructure:"host_key_path"`
	}
)

// String returns the string representation of the LogLevel.
func (l LogLevel) String() string { return string(l) }

// IsValid returns whether the LogLevel is one of the defined levels,
// and a list of validation errors if it is not.
func (l LogLevel) IsValid() (bool, []error) {
	switch l {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
		return true, nil
	default:
		return false, []error{&InvalidLogLevelError{Value: l}}
	}
}

// Level converts the LogLevel to a charmbracelet/log level. Unknown values
// map to info.
func (l LogLevel) Level() log.Level {
	lvl, err := log.ParseLevel(string(l))
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

// Error implements the error interface for InvalidLogLevelError.
func (e *InvalidLogLevelError) Error() string {
	return fmt.Sprintf("invalid log level %q (valid: debug, info, warn, error)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidLogLevelError) Unwrap() error { return ErrInvalidLogLevel }

// String returns the string representation of the CodeStyle.
func (s CodeStyle) String() string { return string(s) }

// IsValid returns whether the CodeStyle is one of the defined styles,
// and a list of validation errors if it is not.
func (s CodeStyle) IsValid() (bool, []error) {
	switch s {
	case CodeStyleAuto, CodeStyleDark, CodeStyleLight, CodeStyleNoTTY:
		return true, nil
	default:
		return false, []error{&InvalidCodeStyleError{Value: s}}
	}
}

// Error implements the error interface for InvalidCodeStyleError.
func (e *InvalidCodeStyleError) Error() string {
	return fmt.Sprintf("invalid code style %q (valid: auto, dark, light, notty)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidCodeStyleError) Unwrap() error { return ErrInvalidCodeStyle }

// Error implements the error interface for InvalidPortError.
func (e *InvalidPortError) Error() string {
	return fmt.Sprintf("invalid port %d (valid: 1-65535)", e.Value)
}

// Unwrap returns ErrInvalidPort for errors.Is() compatibility.
func (e *InvalidPortError) Unwrap() error { return ErrInvalidPort }

// Error implements the error interface for InvalidHostError.
func (e *InvalidHostError) Error() string {
	return fmt.Sprintf("invalid host %q: must be non-empty", e.Value)
}

// Unwrap returns ErrInvalidHost for errors.Is() compatibility.
func (e *InvalidHostError) Unwrap() error { return ErrInvalidHost }

// IsValid returns whether the UIConfig has valid fields.
// It delegates to Theme.Validate() and CodeStyle.IsValid(); bool fields need
// no validation. StartComponent is checked against the catalog by the caller.
func (c UIConfig) IsValid() (bool, []error) {
	var errs []error
	if err := c.Theme.Validate(); err != nil {
		errs = append(errs, err)
	}
	if valid, fieldErrs := c.CodeStyle.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidUIConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidUIConfigError.
func (e *InvalidUIConfigError) Error() string {
	return fmt.Sprintf("invalid UI config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidUIConfig for errors.Is() compatibility.
func (e *InvalidUIConfigError) Unwrap() error { return ErrInvalidUIConfig }

// IsValid returns whether the LogConfig has valid fields.
func (c LogConfig) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.Level.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidLogConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidLogConfigError.
func (e *InvalidLogConfigError) Error() string {
	return fmt.Sprintf("invalid log config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidLogConfig for errors.Is() compatibility.
func (e *InvalidLogConfigError) Unwrap() error { return ErrInvalidLogConfig }

// IsValid returns whether the SSHConfig has valid fields.
func (c SSHConfig) IsValid() (bool, []error) {
	var errs []error
	if strings.TrimSpace(c.Host) == "" {
		errs = append(errs, &InvalidHostError{Value: c.Host})
	}
	if c.Port < 1 || c.Port > 65535 {
		errs = append(errs, &InvalidPortError{Value: c.Port})
	}
	if len(errs) > 0 {
		return false, []error{&InvalidSSHConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidSSHConfigError.
func (e *InvalidSSHConfigError) Error() string {
	return fmt.Sprintf("invalid SSH config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidSSHConfig for errors.Is() compatibility.
func (e *InvalidSSHConfigError) Unwrap() error { return ErrInvalidSSHConfig }

// IsValid returns whether the Config has valid fields.
// It delegates to UI.IsValid(), Log.IsValid() and SSH.IsValid().
func (c Config) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.UI.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.Log.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.SSH.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	msgs := make([]string, 0, len(e.FieldErrors))
	for _, fe := range e.FieldErrors {
		msgs = append(msgs, fe.Error())
	}
	return fmt.Sprintf("invalid config: %s", strings.Join(msgs, "; "))
}

// Unwrap returns ErrInvalidConfig for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		UI: UIConfig{
			Theme:          tui.ThemeDefault,
			Accessible:     false,
			Mouse:          true,
			StartComponent: "",
			CodeStyle:      CodeStyleAuto,
		},
		Log: LogConfig{
			Level: LogLevelInfo,
			File:  "",
		},
		SSH: SSHConfig{
			Host:        DefaultSSHHost,
			Port:        DefaultSSHPort,
			HostKeyPath: "",
		},
	}
}
