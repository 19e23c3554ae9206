// SPDX-License-Identifier: MPL-2.0

// Package focustest provides an in-memory focus.Host for unit tests.
package focustest

import (
	"slices"

	"github.com/a11yterm/a11yterm/internal/focus"
)

type (
	// Host is a fake focus.Host. Containers map to an ordered list of
	// focusable children; any handle added through AddContainer or Attach is
	// attached until Detach is called.
	Host struct {
		containers map[focus.Handle][]focus.Handle
		attached   map[focus.Handle]bool
		focused    focus.Handle

		// ScrollSuppressed mirrors the last SuppressBackgroundScroll call.
		ScrollSuppressed bool
		// SuppressCalls records every SuppressBackgroundScroll argument.
		SuppressCalls []bool
		// FocusCalls records every successful Focus target.
		FocusCalls []focus.Handle
	}
)

var _ focus.ContainmentHost = (*Host)(nil)

// NewHost creates an empty fake host.
func NewHost() *Host {
	return &Host{
		containers: make(map[focus.Handle][]focus.Handle),
		attached:   make(map[focus.Handle]bool),
	}
}

// AddContainer registers container with children as its focusable
// descendants, in order, replacing any previous registration.
func (h *Host) AddContainer(container focus.Handle, children ...focus.Handle) {
	h.containers[container] = slices.Clone(children)
	h.attached[container] = true
	for _, c := range children {
		h.attached[c] = true
	}
}

// Attach marks handles as attached without placing them in a container.
func (h *Host) Attach(handles ...focus.Handle) {
	for _, el := range handles {
		h.attached[el] = true
	}
}

// Detach removes el from the document and from every container. If el had
// focus, focus falls back to none.
func (h *Host) Detach(el focus.Handle) {
	delete(h.attached, el)
	for c, children := range h.containers {
		h.containers[c] = slices.DeleteFunc(children, func(x focus.Handle) bool { return x == el })
	}
	if h.focused == el {
		h.focused = focus.NoHandle
	}
}

// SetFocus sets the focused element without recording a Focus call.
func (h *Host) SetFocus(el focus.Handle) {
	h.focused = el
}

// EnumerateFocusable implements focus.Host.
func (h *Host) EnumerateFocusable(container focus.Handle) []focus.Handle {
	return slices.Clone(h.containers[container])
}

// Focus implements focus.Host.
func (h *Host) Focus(el focus.Handle) error {
	if !h.attached[el] {
		return &focus.DetachedFocusTargetError{Handle: el}
	}
	h.focused = el
	h.FocusCalls = append(h.FocusCalls, el)
	return nil
}

// CurrentFocus implements focus.Host.
func (h *Host) CurrentFocus() focus.Handle {
	return h.focused
}

// SuppressBackgroundScroll implements focus.Host.
func (h *Host) SuppressBackgroundScroll(enable bool) {
	h.ScrollSuppressed = enable
	h.SuppressCalls = append(h.SuppressCalls, enable)
}

// Contains implements focus.ContainmentHost.
func (h *Host) Contains(ancestor, el focus.Handle) bool {
	if ancestor == el {
		return h.attached[el]
	}
	return slices.Contains(h.containers[ancestor], el)
}
