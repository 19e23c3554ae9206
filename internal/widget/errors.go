// SPDX-License-Identifier: MPL-2.0

package widget

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidVariant is the sentinel error wrapped by InvalidVariantError.
	ErrInvalidVariant = errors.New("invalid variant")
	// ErrInvalidSize is the sentinel error wrapped by InvalidSizeError.
	ErrInvalidSize = errors.New("invalid size")
	// ErrAlreadyMounted is returned when mounting a widget twice.
	ErrAlreadyMounted = errors.New("widget already mounted")
)

type (
	// InvalidVariantError is returned when a widget variant is not recognized.
	InvalidVariantError struct {
		Widget string
		Value  string
	}

	// InvalidSizeError is returned when a widget size is not sm, md or lg.
	InvalidSizeError struct {
		Value Size
	}
)

// Error implements the error interface.
func (e *InvalidVariantError) Error() string {
	return fmt.Sprintf("invalid %s variant %q", e.Widget, e.Value)
}

// Unwrap returns ErrInvalidVariant for errors.Is() compatibility.
func (e *InvalidVariantError) Unwrap() error { return ErrInvalidVariant }

// Error implements the error interface.
func (e *InvalidSizeError) Error() string {
	return fmt.Sprintf("invalid size %q (valid: sm, md, lg)", string(e.Value))
}

// Unwrap returns ErrInvalidSize for errors.Is() compatibility.
func (e *InvalidSizeError) Unwrap() error { return ErrInvalidSize }
