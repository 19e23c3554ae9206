// SPDX-License-Identifier: MPL-2.0

package tui

import (
	"errors"

	"github.com/charmbracelet/huh"
)

// ErrCancelled is returned when the user aborts a prompt.
var ErrCancelled = errors.New("prompt cancelled")

type (
	// Option is a selectable option with a display title and value.
	Option[T comparable] struct {
		// Title is the display text for the option.
		Title string
		// Value is the underlying value of the option.
		Value T
	}

	// ChooseOptions configures Choose.
	ChooseOptions[T comparable] struct {
		// Title is the prompt displayed above the options.
		Title string
		// Description provides additional context below the title.
		Description string
		// Options is the list of options to choose from.
		Options []Option[T]
		// Initial is the option highlighted when the prompt opens.
		Initial T
		// Height limits the number of visible options (0 for auto).
		Height int
		// Config holds common TUI configuration.
		Config Config
	}
)

// Choose prompts the user to select one option from a list. In accessible
// mode huh asks for the option number on a plain line instead of drawing a
// list. Aborting the prompt returns ErrCancelled.
func Choose[T comparable](opts ChooseOptions[T]) (T, error) {
	result := opts.Initial
	form := newChooseForm(opts, &result)
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return result, ErrCancelled
		}
		return result, err
	}
	return result, nil
}

// ChooseStrings is Choose for plain strings, used as both title and value.
func ChooseStrings(title string, options []string, cfg Config) (string, error) {
	opts := make([]Option[string], len(options))
	for i, o := range options {
		opts[i] = Option[string]{Title: o, Value: o}
	}
	return Choose(ChooseOptions[string]{Title: title, Options: opts, Config: cfg})
}

func newChooseForm[T comparable](opts ChooseOptions[T], result *T) *huh.Form {
	huhOpts := make([]huh.Option[T], len(opts.Options))
	for i, opt := range opts.Options {
		huhOpts[i] = huh.NewOption(opt.Title, opt.Value)
	}

	sel := huh.NewSelect[T]().
		Title(opts.Title).
		Description(opts.Description).
		Options(huhOpts...).
		Value(result)
	if opts.Height > 0 {
		sel = sel.Height(opts.Height)
	}

	form := huh.NewForm(huh.NewGroup(sel)).
		WithTheme(HuhTheme(opts.Config.Theme)).
		WithAccessible(ShouldUseAccessible(opts.Config)).
		WithOutput(getOutputWriter(opts.Config))
	if opts.Config.Width > 0 {
		form = form.WithWidth(opts.Config.Width)
	}
	return form
}
