// SPDX-License-Identifier: MPL-2.0

package focus

import (
	"io"

	"github.com/charmbracelet/log"
)

type (
	// controllerOptions holds the optional collaborators of a controller.
	// Each controller reads only the fields that apply to it.
	controllerOptions struct {
		logger       *log.Logger
		onClose      func()
		onChange     func(value string)
		onOpenChange func(open bool)
	}

	// Option configures a controller.
	Option func(*controllerOptions)
)

func defaultOptions() controllerOptions {
	return controllerOptions{
		logger: log.New(io.Discard),
	}
}

func applyOptions(opts []Option) controllerOptions {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithLogger sets the logger used for debug output about degenerate states.
func WithLogger(l *log.Logger) Option {
	return func(o *controllerOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithOnClose registers the callback a FocusTrap invokes on the dismiss key.
// The callback owns closing the overlay and deactivating the trap.
func WithOnClose(fn func()) Option {
	return func(o *controllerOptions) {
		o.onClose = fn
	}
}

// WithOnChange registers the callback a RovingSelection invokes whenever the
// selected value changes.
func WithOnChange(fn func(value string)) Option {
	return func(o *controllerOptions) {
		o.onChange = fn
	}
}

// WithOnOpenChange registers the callback a Dropdown invokes when it opens or
// closes. On open it runs before the menu items are enumerated, so the host
// can reveal the menu first.
func WithOnOpenChange(fn func(open bool)) Option {
	return func(o *controllerOptions) {
		o.onOpenChange = fn
	}
}
