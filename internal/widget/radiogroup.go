// SPDX-License-Identifier: MPL-2.0

package widget

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/a11yterm/a11yterm/internal/dom"
	"github.com/a11yterm/a11yterm/internal/focus"
)

type (
	// RadioOption is one choice of a RadioGroup.
	RadioOption struct {
		Value       string
		Label       string
		Description string
		Disabled    bool
	}

	// RadioGroupOptions configures a RadioGroup.
	RadioGroupOptions struct {
		Legend   string
		Options  []RadioOption
		Value    string
		Required bool
		Error    string
		OnChange func(value string)
	}

	// RadioGroup is a set of mutually exclusive options with a single tab
	// stop. Arrow keys move focus and selection together, skipping disabled
	// options and wrapping at both ends.
	RadioGroup struct {
		id     focus.Handle
		opts   RadioGroupOptions
		roving *focus.RovingSelection
		doc    *dom.Document
		group  *dom.Node
		errEl  *dom.Node
		nodes  []*dom.Node
	}
)

// NewRadioGroup creates an unmounted radio group. An initial Value that is
// unknown or disabled is ignored.
func NewRadioGroup(id focus.Handle, opts RadioGroupOptions) *RadioGroup {
	rg := &RadioGroup{id: id, opts: opts}
	choices := make([]focus.Choice, len(opts.Options))
	for i, o := range opts.Options {
		choices[i] = focus.Choice{Value: o.Value, Disabled: o.Disabled}
	}
	rg.roving = focus.NewRovingSelection(choices, focus.WithOnChange(rg.selectionChanged))
	if opts.Value != "" {
		// The initial value is not a change.
		rg.opts.OnChange = nil
		_ = rg.roving.Select(opts.Value)
		rg.opts.OnChange = opts.OnChange
	}
	return rg
}

// Mount implements Widget.
func (rg *RadioGroup) Mount(doc *dom.Document, parent focus.Handle) error {
	if rg.doc != nil {
		return ErrAlreadyMounted
	}
	group := dom.NewNode(rg.id, dom.RoleRadioGroup, rg.opts.Legend)
	if rg.opts.Required {
		group.SetBoolAttr(dom.AttrRequired, true)
	}
	if err := doc.Append(parent, group); err != nil {
		return err
	}
	rg.nodes = make([]*dom.Node, len(rg.opts.Options))
	for i, o := range rg.opts.Options {
		n := dom.NewNode(rg.optionID(i), dom.RoleRadio, o.Label)
		n.SetDisabled(o.Disabled)
		if err := doc.Append(rg.id, n); err != nil {
			return err
		}
		if o.Description != "" {
			desc := dom.NewNode(n.ID()+"-description", dom.RoleGeneric, o.Description)
			if err := doc.Append(n.ID(), desc); err != nil {
				return err
			}
			n.SetAttr(dom.AttrDescribedBy, string(desc.ID()))
		}
		rg.nodes[i] = n
	}
	errEl := dom.NewNode(rg.id+"-error", dom.RoleAlert, "")
	if err := doc.Append(rg.id, errEl); err != nil {
		return err
	}
	rg.doc, rg.group, rg.errEl = doc, group, errEl
	rg.sync()
	return nil
}

// Root implements Widget.
func (rg *RadioGroup) Root() focus.Handle { return rg.id }

// Value returns the selected value.
func (rg *RadioGroup) Value() (string, bool) { return rg.roving.Selected() }

// Select selects value. Unknown and disabled values fail with an error
// wrapping focus.ErrInvalidOption.
func (rg *RadioGroup) Select(value string) error {
	return rg.roving.Select(value)
}

// SetError sets or clears the group error.
func (rg *RadioGroup) SetError(msg string) {
	rg.opts.Error = msg
	rg.sync()
}

// HandleKey implements Widget.
func (rg *RadioGroup) HandleKey(msg tea.KeyMsg) focus.Result {
	if rg.doc == nil {
		return focus.Ignored
	}
	idx := rg.indexOf(rg.doc.CurrentFocus())
	if idx < 0 {
		return focus.Ignored
	}
	rg.roving.SetFocusedIndex(idx)

	res := rg.roving.HandleKeyDown(focus.NewKeyEvent(focus.ParseKey(msg.String())))
	if res == focus.Handled {
		rg.focusRoving()
	}
	return res
}

// HandlePointer implements Widget. Clicking an enabled option selects it.
func (rg *RadioGroup) HandlePointer(ev focus.PointerEvent) focus.Result {
	idx := rg.indexOf(ev.Target)
	if idx < 0 || rg.opts.Options[idx].Disabled {
		return focus.Ignored
	}
	_ = rg.roving.Select(rg.opts.Options[idx].Value)
	rg.roving.SetFocusedIndex(idx)
	return focus.Handled
}

// Render implements Widget.
func (rg *RadioGroup) Render(c *Canvas) {
	legend := labelStyle.Render(rg.opts.Legend)
	if rg.opts.Required {
		legend += requiredStyle.Render(" *")
	}
	c.Write(focus.NoHandle, legend)

	selected, has := rg.roving.Selected()
	focused := focus.NoHandle
	if rg.doc != nil {
		focused = rg.doc.CurrentFocus()
	}
	for i, o := range rg.opts.Options {
		id := rg.optionID(i)
		mark := "( )"
		if has && selected == o.Value {
			mark = "(•)"
		}
		line := mark + " " + o.Label
		switch {
		case o.Disabled:
			line = disabledStyle.Render(line)
		case id == focused:
			line = focusStyle.Render(mark) + " " + labelStyle.Render(o.Label)
		}
		c.Write(id, focusMarker(id == focused)+line)
		if o.Description != "" {
			c.Write(id, "      "+helperStyle.Render(o.Description))
		}
	}
	if rg.opts.Error != "" {
		c.Write(focus.NoHandle, errorStyle.Render("✗ "+rg.opts.Error))
	}
}

func (rg *RadioGroup) selectionChanged(value string) {
	rg.sync()
	if rg.opts.OnChange != nil {
		rg.opts.OnChange(value)
	}
}

// focusRoving moves document focus to the roving focused option.
func (rg *RadioGroup) focusRoving() {
	i := rg.roving.FocusedIndex()
	if i < 0 || rg.doc == nil {
		return
	}
	rg.sync()
	_ = rg.doc.Focus(rg.nodes[i].ID())
}

// sync mirrors the selection into aria-checked and keeps exactly one option
// in the tab order: the selected one, else the first enabled one.
func (rg *RadioGroup) sync() {
	if rg.group == nil {
		return
	}
	selected, has := rg.roving.Selected()
	stop := -1
	for i, o := range rg.opts.Options {
		checked := has && selected == o.Value
		rg.nodes[i].SetBoolAttr(dom.AttrChecked, checked)
		if checked {
			stop = i
		}
	}
	if stop < 0 {
		for i, o := range rg.opts.Options {
			if !o.Disabled {
				stop = i
				break
			}
		}
	}
	for i, n := range rg.nodes {
		n.SetFocusable(i == stop)
	}

	rg.group.SetBoolAttr(dom.AttrInvalid, rg.opts.Error != "")
	rg.errEl.SetLabel(rg.opts.Error)
	rg.errEl.SetHidden(rg.opts.Error == "")
	if rg.opts.Error != "" {
		rg.group.SetAttr(dom.AttrDescribedBy, string(rg.errEl.ID()))
	} else {
		rg.group.SetAttr(dom.AttrDescribedBy, "")
	}
}

func (rg *RadioGroup) optionID(i int) focus.Handle {
	return rg.id + focus.Handle("-"+rg.opts.Options[i].Value)
}

func (rg *RadioGroup) indexOf(h focus.Handle) int {
	for i, n := range rg.nodes {
		if n.ID() == h {
			return i
		}
	}
	return -1
}
