// SPDX-License-Identifier: MPL-2.0

package focus

import "slices"

const (
	// CloseProgrammatic is a close requested by the owner (toggle, item
	// activation). Focus is not moved.
	CloseProgrammatic CloseReason = iota
	// CloseKeyboard is a close from the dismiss key. Focus returns to the anchor.
	CloseKeyboard
	// CloseBoundary is a close from arrow navigation past the edge of the
	// menu. Focus returns to the anchor.
	CloseBoundary
	// CloseOutside is a close from a pointer press outside the anchor and the
	// menu. Focus stays wherever the user pressed.
	CloseOutside
)

type (
	// CloseReason records why a Dropdown closed. It decides whether focus
	// returns to the anchor.
	CloseReason int

	// Dropdown manages the open state of a single-level submenu and roving
	// focus among its items. The anchor is a disclosure control: activating
	// it reveals the menu instead of navigating.
	Dropdown struct {
		host   Host
		opts   controllerOptions
		anchor Handle
		menu   Handle
		open   bool
		items  []Handle
	}
)

// String returns the reason name.
func (r CloseReason) String() string {
	switch r {
	case CloseKeyboard:
		return "keyboard"
	case CloseBoundary:
		return "boundary"
	case CloseOutside:
		return "outside"
	default:
		return "programmatic"
	}
}

// returnsFocus reports whether closing for this reason moves focus to the anchor.
func (r CloseReason) returnsFocus() bool {
	return r == CloseKeyboard || r == CloseBoundary
}

// NewDropdown creates a closed dropdown whose trigger is anchor and whose
// items are the focusable descendants of menu.
func NewDropdown(host Host, anchor, menu Handle, opts ...Option) *Dropdown {
	return &Dropdown{
		host:   host,
		opts:   applyOptions(opts),
		anchor: anchor,
		menu:   menu,
	}
}

// IsOpen reports whether the menu is open.
func (d *Dropdown) IsOpen() bool { return d.open }

// Anchor returns the triggering control.
func (d *Dropdown) Anchor() Handle { return d.anchor }

// Menu returns the submenu container.
func (d *Dropdown) Menu() Handle { return d.menu }

// Items returns the menu items captured when the menu last opened. It is
// empty while closed.
func (d *Dropdown) Items() []Handle { return slices.Clone(d.items) }

// Toggle opens a closed menu and closes an open one without moving focus.
func (d *Dropdown) Toggle() {
	if d.open {
		d.Close(CloseProgrammatic)
		return
	}
	d.Open()
}

// Open opens the menu and recomputes its items. Opening an open menu is a
// no-op. A menu without items is recorded as open; focus moves then do nothing.
func (d *Dropdown) Open() {
	if d.open {
		return
	}
	d.open = true
	if d.opts.onOpenChange != nil {
		d.opts.onOpenChange(true)
	}
	d.items = d.host.EnumerateFocusable(d.menu)
	if len(d.items) == 0 {
		d.opts.logger.Debug("dropdown opened without items", "anchor", d.anchor)
	}
}

// Close closes the menu. Focus returns to the anchor only for keyboard and
// boundary closes. Closing a closed menu is a no-op.
func (d *Dropdown) Close(reason CloseReason) {
	if !d.open {
		return
	}
	d.open = false
	d.items = nil
	if d.opts.onOpenChange != nil {
		d.opts.onOpenChange(false)
	}
	if reason.returnsFocus() {
		d.moveTo(d.anchor)
	}
}

// HandleAnchorKeyDown handles keys pressed while the anchor has focus.
// Enter and Space toggle the menu and suppress the default link activation.
// Escape closes an open menu and keeps focus on the anchor. ArrowDown moves
// into an open menu.
func (d *Dropdown) HandleAnchorKeyDown(ev *KeyEvent) Result {
	switch ev.Key {
	case KeyEnter, KeySpace:
		ev.PreventDefault()
		d.Toggle()
		return Handled
	case KeyEscape:
		if d.open {
			d.Close(CloseKeyboard)
			return Handled
		}
	case KeyArrowDown:
		if d.open {
			ev.PreventDefault()
			d.focusItem(0)
			return Handled
		}
	}
	return Ignored
}

// HandleItemKeyDown handles keys pressed while items[index] has focus.
// ArrowDown moves to the next item and stops at the last one; there is no
// wraparound. ArrowUp moves to the previous item, or back to the anchor from
// the first item while the menu stays open. Home and End jump to the first
// and last item. Escape closes the menu and returns focus to the anchor.
func (d *Dropdown) HandleItemKeyDown(ev *KeyEvent, index int) Result {
	if !d.open {
		return Ignored
	}

	switch ev.Key {
	case KeyArrowDown:
		ev.PreventDefault()
		d.focusItem(index + 1)
		return Handled
	case KeyArrowUp:
		ev.PreventDefault()
		if index <= 0 {
			d.moveTo(d.anchor)
		} else {
			d.focusItem(index - 1)
		}
		return Handled
	case KeyHome:
		ev.PreventDefault()
		d.focusItem(0)
		return Handled
	case KeyEnd:
		ev.PreventDefault()
		d.focusItem(len(d.items) - 1)
		return Handled
	case KeyEscape:
		d.Close(CloseKeyboard)
		return Handled
	}
	return Ignored
}

// HandlePointerDown closes an open menu when the press lands outside both the
// anchor and the menu. Focus is not moved, so it stays on whatever the user
// pressed.
func (d *Dropdown) HandlePointerDown(ev PointerEvent) Result {
	if !d.open || d.inside(ev.Target) {
		return Ignored
	}
	d.Close(CloseOutside)
	return Handled
}

// ItemIndex returns the position of h among the open menu's items, or -1.
func (d *Dropdown) ItemIndex(h Handle) int {
	return indexOf(d.items, h)
}

func (d *Dropdown) inside(target Handle) bool {
	if target.IsNone() {
		return false
	}
	if target == d.anchor || target == d.menu || indexOf(d.items, target) >= 0 {
		return true
	}
	if ch, ok := d.host.(ContainmentHost); ok {
		return ch.Contains(d.anchor, target) || ch.Contains(d.menu, target)
	}
	return false
}

func (d *Dropdown) focusItem(i int) {
	if i < 0 || i >= len(d.items) {
		return
	}
	d.moveTo(d.items[i])
}

func (d *Dropdown) moveTo(h Handle) {
	if err := d.host.Focus(h); err != nil {
		d.opts.logger.Debug("focus move skipped", "target", h, "error", err)
	}
}
