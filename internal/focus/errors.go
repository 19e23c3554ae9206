// SPDX-License-Identifier: MPL-2.0

package focus

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidOption is the sentinel error wrapped by InvalidOptionError.
	ErrInvalidOption = errors.New("invalid option")
	// ErrDetachedFocusTarget is the sentinel error wrapped by DetachedFocusTargetError.
	ErrDetachedFocusTarget = errors.New("detached focus target")
)

type (
	// InvalidOptionError is returned when a selection names a value that is
	// not configured or whose option is disabled. The selection is unchanged.
	InvalidOptionError struct {
		Value    string
		Disabled bool
	}

	// DetachedFocusTargetError is returned by hosts when a focus move targets
	// an element that is no longer attached. Controllers skip the move.
	DetachedFocusTargetError struct {
		Handle Handle
	}
)

// Error implements the error interface for InvalidOptionError.
func (e *InvalidOptionError) Error() string {
	if e.Disabled {
		return fmt.Sprintf("invalid option %q: option is disabled", e.Value)
	}
	return fmt.Sprintf("invalid option %q: not among configured options", e.Value)
}

// Unwrap returns ErrInvalidOption for errors.Is() compatibility.
func (e *InvalidOptionError) Unwrap() error { return ErrInvalidOption }

// Error implements the error interface for DetachedFocusTargetError.
func (e *DetachedFocusTargetError) Error() string {
	return fmt.Sprintf("cannot focus %q: element is not attached", string(e.Handle))
}

// Unwrap returns ErrDetachedFocusTarget for errors.Is() compatibility.
func (e *DetachedFocusTargetError) Unwrap() error { return ErrDetachedFocusTarget }
