// SPDX-License-Identifier: MPL-2.0

package dom

import (
	"errors"
	"fmt"

	"github.com/a11yterm/a11yterm/internal/focus"
)

var (
	// ErrDuplicateID is returned when a node id is already attached.
	ErrDuplicateID = errors.New("duplicate node id")
	// ErrUnknownParent is returned when appending under a detached parent.
	ErrUnknownParent = errors.New("unknown parent node")
	// ErrNotFocusable is returned when focusing a disabled or hidden node.
	ErrNotFocusable = errors.New("node is not focusable")
)

// NodeError reports a tree operation that failed for a specific node.
type NodeError struct {
	Op  string
	ID  focus.Handle
	Err error
}

// Error implements the error interface.
func (e *NodeError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Op, string(e.ID), e.Err)
}

// Unwrap returns the underlying sentinel.
func (e *NodeError) Unwrap() error { return e.Err }
