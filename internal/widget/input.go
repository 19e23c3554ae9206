// SPDX-License-Identifier: MPL-2.0

package widget

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/a11yterm/a11yterm/internal/dom"
	"github.com/a11yterm/a11yterm/internal/focus"
)

type (
	// InputOptions configures an Input.
	InputOptions struct {
		Label       string
		Placeholder string
		Value       string
		HelperText  string
		Error       string
		Required    bool
		Disabled    bool
		Password    bool
		CharLimit   int
		// Validate derives the error message from the value after every edit.
		// An empty result clears the error.
		Validate func(value string) string
		OnChange func(value string)
	}

	// Input is a labelled single-line text field. The error message is
	// announced through aria-describedby and aria-invalid; helper text is
	// shown only while there is no error.
	Input struct {
		id     focus.Handle
		opts   InputOptions
		model  textinput.Model
		doc    *dom.Document
		node   *dom.Node
		errEl  *dom.Node
		helpEl *dom.Node
	}
)

// NewInput creates an unmounted input.
func NewInput(id focus.Handle, opts InputOptions) *Input {
	m := textinput.New()
	m.Placeholder = opts.Placeholder
	m.Prompt = ""
	m.SetValue(opts.Value)
	if opts.CharLimit > 0 {
		m.CharLimit = opts.CharLimit
	}
	if opts.Password {
		m.EchoMode = textinput.EchoPassword
		m.EchoCharacter = '•'
	}
	return &Input{id: id, opts: opts, model: m}
}

// Mount implements Widget.
func (in *Input) Mount(doc *dom.Document, parent focus.Handle) error {
	if in.doc != nil {
		return ErrAlreadyMounted
	}
	field := dom.NewNode(in.id+"-field", dom.RoleGroup, "")
	n := dom.NewFocusable(in.id, dom.RoleTextbox, in.opts.Label)
	n.SetDisabled(in.opts.Disabled)
	if in.opts.Required {
		n.SetBoolAttr(dom.AttrRequired, true)
	}
	errEl := dom.NewNode(in.id+"-error", dom.RoleAlert, "")
	helpEl := dom.NewNode(in.id+"-helper", dom.RoleGeneric, in.opts.HelperText)
	if err := doc.Append(parent, field); err != nil {
		return err
	}
	for _, child := range []*dom.Node{n, errEl, helpEl} {
		if err := doc.Append(field.ID(), child); err != nil {
			return err
		}
	}
	in.doc, in.node, in.errEl, in.helpEl = doc, n, errEl, helpEl
	in.syncAttrs()
	return nil
}

// Root implements Widget.
func (in *Input) Root() focus.Handle { return in.id + "-field" }

// Value returns the current text.
func (in *Input) Value() string { return in.model.Value() }

// SetValue replaces the text and re-runs validation.
func (in *Input) SetValue(v string) {
	in.model.SetValue(v)
	in.changed()
}

// Error returns the current error message.
func (in *Input) Error() string { return in.opts.Error }

// SetError sets or clears (empty string) the error message.
func (in *Input) SetError(msg string) {
	in.opts.Error = msg
	in.syncAttrs()
}

// HandleKey implements Widget. Printable keys and editing keys go to the
// text model; Tab, Shift+Tab and Escape are left to the surface.
func (in *Input) HandleKey(msg tea.KeyMsg) focus.Result {
	if in.doc == nil || in.doc.CurrentFocus() != in.id || in.opts.Disabled {
		return focus.Ignored
	}
	switch focus.ParseKey(msg.String()) {
	case focus.KeyTab, focus.KeyShiftTab, focus.KeyEscape, focus.KeyArrowUp, focus.KeyArrowDown:
		return focus.Ignored
	}
	if !in.model.Focused() {
		in.model.Focus()
	}
	before := in.model.Value()
	in.model, _ = in.model.Update(msg)
	if in.model.Value() != before {
		in.changed()
	}
	return focus.Handled
}

// HandlePointer implements Widget.
func (in *Input) HandlePointer(focus.PointerEvent) focus.Result { return focus.Ignored }

// Render implements Widget.
func (in *Input) Render(c *Canvas) {
	focused := in.doc != nil && in.doc.CurrentFocus() == in.id
	if focused && !in.model.Focused() {
		in.model.Focus()
	} else if !focused && in.model.Focused() {
		in.model.Blur()
	}

	label := labelStyle.Render(in.opts.Label)
	if in.opts.Required {
		label += requiredStyle.Render(" *")
	}
	c.Write(in.id, label)

	box := fieldStyle
	switch {
	case in.opts.Error != "":
		box = fieldErrorStyle
	case focused:
		box = fieldFocusStyle
	}
	width := max(c.Width()-box.GetHorizontalFrameSize(), 10)
	in.model.Width = width - box.GetHorizontalPadding() - 1
	body := in.model.View()
	if in.opts.Disabled {
		body = disabledStyle.Render(in.model.Value())
	}
	c.Write(in.id, box.Width(width).Render(body))

	switch {
	case in.opts.Error != "":
		c.Write(focus.NoHandle, errorStyle.Render("✗ "+in.opts.Error))
	case in.opts.HelperText != "":
		c.Write(focus.NoHandle, helperStyle.Render(in.opts.HelperText))
	}
}

func (in *Input) changed() {
	if in.opts.Validate != nil {
		in.opts.Error = in.opts.Validate(in.model.Value())
	}
	in.syncAttrs()
	if in.opts.OnChange != nil {
		in.opts.OnChange(in.model.Value())
	}
}

func (in *Input) syncAttrs() {
	if in.node == nil {
		return
	}
	in.node.SetBoolAttr(dom.AttrInvalid, in.opts.Error != "")
	in.errEl.SetLabel(in.opts.Error)
	in.errEl.SetHidden(in.opts.Error == "")
	in.helpEl.SetHidden(in.opts.HelperText == "" || in.opts.Error != "")

	var refs []string
	if in.opts.Error != "" {
		refs = append(refs, string(in.errEl.ID()))
	}
	if in.opts.HelperText != "" {
		refs = append(refs, string(in.helpEl.ID()))
	}
	in.node.SetAttr(dom.AttrDescribedBy, strings.Join(refs, " "))
}
