// SPDX-License-Identifier: MPL-2.0

package widget

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/a11yterm/a11yterm/internal/dom"
	"github.com/a11yterm/a11yterm/internal/focus"
)

type (
	// CheckboxOptions configures a Checkbox.
	CheckboxOptions struct {
		Label       string
		Description string
		Checked     bool
		Disabled    bool
		OnChange    func(checked bool)
	}

	// Checkbox is a two-state toggle. Space toggles it; Enter does not, as
	// with native checkboxes.
	Checkbox struct {
		id   focus.Handle
		opts CheckboxOptions
		doc  *dom.Document
		node *dom.Node
	}
)

// NewCheckbox creates an unmounted checkbox.
func NewCheckbox(id focus.Handle, opts CheckboxOptions) *Checkbox {
	return &Checkbox{id: id, opts: opts}
}

// Mount implements Widget.
func (cb *Checkbox) Mount(doc *dom.Document, parent focus.Handle) error {
	if cb.doc != nil {
		return ErrAlreadyMounted
	}
	n := dom.NewFocusable(cb.id, dom.RoleCheckbox, cb.opts.Label)
	n.SetDisabled(cb.opts.Disabled)
	n.SetBoolAttr(dom.AttrChecked, cb.opts.Checked)
	if err := doc.Append(parent, n); err != nil {
		return err
	}
	if cb.opts.Description != "" {
		desc := dom.NewNode(cb.id+"-description", dom.RoleGeneric, cb.opts.Description)
		if err := doc.Append(cb.id, desc); err != nil {
			return err
		}
		n.SetAttr(dom.AttrDescribedBy, string(desc.ID()))
	}
	cb.doc, cb.node = doc, n
	return nil
}

// Root implements Widget.
func (cb *Checkbox) Root() focus.Handle { return cb.id }

// Checked reports the current state.
func (cb *Checkbox) Checked() bool { return cb.opts.Checked }

// SetChecked sets the state and fires the change callback on a change.
func (cb *Checkbox) SetChecked(v bool) {
	if cb.opts.Checked == v {
		return
	}
	cb.opts.Checked = v
	if cb.node != nil {
		cb.node.SetBoolAttr(dom.AttrChecked, v)
	}
	if cb.opts.OnChange != nil {
		cb.opts.OnChange(v)
	}
}

// Toggle flips the state unless the checkbox is disabled.
func (cb *Checkbox) Toggle() {
	if cb.opts.Disabled {
		return
	}
	cb.SetChecked(!cb.opts.Checked)
}

// HandleKey implements Widget.
func (cb *Checkbox) HandleKey(msg tea.KeyMsg) focus.Result {
	if cb.doc == nil || cb.doc.CurrentFocus() != cb.id {
		return focus.Ignored
	}
	if focus.ParseKey(msg.String()) == focus.KeySpace {
		cb.Toggle()
		return focus.Handled
	}
	return focus.Ignored
}

// HandlePointer implements Widget. The box and its label share one region.
func (cb *Checkbox) HandlePointer(ev focus.PointerEvent) focus.Result {
	if ev.Target != cb.id || cb.opts.Disabled {
		return focus.Ignored
	}
	cb.Toggle()
	return focus.Handled
}

// Render implements Widget.
func (cb *Checkbox) Render(c *Canvas) {
	focused := cb.doc != nil && cb.doc.CurrentFocus() == cb.id
	box := "[ ]"
	if cb.opts.Checked {
		box = "[x]"
	}
	line := box + " " + labelStyle.Render(cb.opts.Label)
	switch {
	case cb.opts.Disabled:
		line = disabledStyle.Render(box + " " + cb.opts.Label)
	case focused:
		line = focusStyle.Render(box) + " " + labelStyle.Render(cb.opts.Label)
	}
	c.Write(cb.id, focusMarker(focused)+line)
	if cb.opts.Description != "" {
		c.Write(cb.id, "      "+helperStyle.Render(cb.opts.Description))
	}
}
