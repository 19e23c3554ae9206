// SPDX-License-Identifier: MPL-2.0

package widget

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/a11yterm/a11yterm/internal/dom"
	"github.com/a11yterm/a11yterm/internal/focus"
)

type (
	// SelectOption is one entry of a Select.
	SelectOption struct {
		Value    string
		Label    string
		Disabled bool
	}

	// SelectOptions configures a Select.
	SelectOptions struct {
		Label       string
		Placeholder string
		Options     []SelectOption
		Value       string
		HelperText  string
		Error       string
		Required    bool
		Disabled    bool
		OnChange    func(value string)
	}

	// Select is a single-choice combobox with a popup listbox. While
	// collapsed, arrows change the value directly; Enter or Space opens the
	// list, where arrows move a highlight that Enter commits and Escape
	// discards. Neither direction wraps.
	Select struct {
		id        focus.Handle
		opts      SelectOptions
		value     int
		highlight int
		popup     *focus.Dropdown
		doc       *dom.Document
		node      *dom.Node
		listbox   *dom.Node
		optNodes  []*dom.Node
		errEl     *dom.Node
		helpEl    *dom.Node
	}
)

// NewSelect creates an unmounted select. An initial Value that is unknown or
// disabled leaves the placeholder showing.
func NewSelect(id focus.Handle, opts SelectOptions) *Select {
	s := &Select{id: id, opts: opts, value: -1, highlight: -1}
	if i := s.indexOfValue(opts.Value); i >= 0 && !opts.Options[i].Disabled {
		s.value = i
	}
	return s
}

// Mount implements Widget.
func (s *Select) Mount(doc *dom.Document, parent focus.Handle) error {
	if s.doc != nil {
		return ErrAlreadyMounted
	}
	field := dom.NewNode(s.Root(), dom.RoleGroup, "")
	n := dom.NewFocusable(s.id, dom.RoleCombobox, s.opts.Label)
	n.SetDisabled(s.opts.Disabled)
	n.SetAttr(dom.AttrHasPopup, string(dom.RoleListbox))
	n.SetBoolAttr(dom.AttrExpanded, false)
	if s.opts.Required {
		n.SetBoolAttr(dom.AttrRequired, true)
	}
	listbox := dom.NewNode(s.id+"-listbox", dom.RoleListbox, s.opts.Label)
	listbox.SetHidden(true)
	s.errEl = dom.NewNode(s.id+"-error", dom.RoleAlert, "")
	s.helpEl = dom.NewNode(s.id+"-helper", dom.RoleGeneric, s.opts.HelperText)

	if err := doc.Append(parent, field); err != nil {
		return err
	}
	for _, child := range []*dom.Node{n, listbox, s.errEl, s.helpEl} {
		if err := doc.Append(field.ID(), child); err != nil {
			return err
		}
	}
	s.optNodes = make([]*dom.Node, len(s.opts.Options))
	for i, o := range s.opts.Options {
		on := dom.NewNode(s.optionID(i), dom.RoleOption, o.Label)
		on.SetDisabled(o.Disabled)
		if err := doc.Append(listbox.ID(), on); err != nil {
			return err
		}
		s.optNodes[i] = on
	}
	s.doc, s.node, s.listbox = doc, n, listbox
	s.popup = focus.NewDropdown(doc, s.id, listbox.ID(), focus.WithOnOpenChange(s.openChanged))
	s.sync()
	return nil
}

// Root implements Widget.
func (s *Select) Root() focus.Handle { return s.id + "-field" }

// Value returns the selected value, or "" while the placeholder shows.
func (s *Select) Value() string {
	if s.value < 0 {
		return ""
	}
	return s.opts.Options[s.value].Value
}

// Expanded reports whether the listbox is open.
func (s *Select) Expanded() bool { return s.popup != nil && s.popup.IsOpen() }

// SetValue selects value. Unknown and disabled values fail with an error
// wrapping focus.ErrInvalidOption.
func (s *Select) SetValue(value string) error {
	i := s.indexOfValue(value)
	if i < 0 {
		return &focus.InvalidOptionError{Value: value}
	}
	if s.opts.Options[i].Disabled {
		return &focus.InvalidOptionError{Value: value, Disabled: true}
	}
	s.commit(i)
	return nil
}

// SetError sets or clears the error message.
func (s *Select) SetError(msg string) {
	s.opts.Error = msg
	s.sync()
}

// HandleKey implements Widget.
func (s *Select) HandleKey(msg tea.KeyMsg) focus.Result {
	if s.doc == nil || s.doc.CurrentFocus() != s.id || s.opts.Disabled {
		return focus.Ignored
	}
	key := focus.ParseKey(msg.String())
	if s.popup.IsOpen() {
		return s.handleExpanded(key)
	}

	switch key {
	case focus.KeyEnter, focus.KeySpace:
		s.popup.Open()
		return focus.Handled
	case focus.KeyArrowDown:
		s.commit(s.step(s.value, 1))
		return focus.Handled
	case focus.KeyArrowUp:
		s.commit(s.step(s.value, -1))
		return focus.Handled
	case focus.KeyHome:
		s.commit(s.step(-1, 1))
		return focus.Handled
	case focus.KeyEnd:
		s.commit(s.step(len(s.opts.Options), -1))
		return focus.Handled
	case focus.KeyUnknown:
		if i := s.typeAhead(msg); i >= 0 {
			s.commit(i)
			return focus.Handled
		}
	}
	return focus.Ignored
}

func (s *Select) handleExpanded(key focus.Key) focus.Result {
	switch key {
	case focus.KeyArrowDown:
		s.moveHighlight(s.step(s.highlight, 1))
	case focus.KeyArrowUp:
		s.moveHighlight(s.step(s.highlight, -1))
	case focus.KeyHome:
		s.moveHighlight(s.step(-1, 1))
	case focus.KeyEnd:
		s.moveHighlight(s.step(len(s.opts.Options), -1))
	case focus.KeyEnter, focus.KeySpace:
		if s.highlight >= 0 {
			s.commit(s.highlight)
		}
		s.popup.Close(focus.CloseKeyboard)
	case focus.KeyEscape:
		s.popup.Close(focus.CloseKeyboard)
	case focus.KeyTab, focus.KeyShiftTab:
		s.popup.Close(focus.CloseProgrammatic)
		return focus.Ignored
	default:
		return focus.Ignored
	}
	return focus.Handled
}

// HandlePointer implements Widget.
func (s *Select) HandlePointer(ev focus.PointerEvent) focus.Result {
	if s.doc == nil || s.opts.Disabled {
		return focus.Ignored
	}
	if ev.Target == s.id {
		s.popup.Toggle()
		return focus.Handled
	}
	if i := s.indexOfNode(ev.Target); i >= 0 {
		if !s.opts.Options[i].Disabled {
			s.commit(i)
			s.popup.Close(focus.CloseKeyboard)
		}
		return focus.Handled
	}
	return s.popup.HandlePointerDown(ev)
}

// Render implements Widget.
func (s *Select) Render(c *Canvas) {
	focused := s.doc != nil && s.doc.CurrentFocus() == s.id

	label := labelStyle.Render(s.opts.Label)
	if s.opts.Required {
		label += requiredStyle.Render(" *")
	}
	c.Write(s.id, label)

	box := fieldStyle
	switch {
	case s.opts.Error != "":
		box = fieldErrorStyle
	case focused:
		box = fieldFocusStyle
	}
	width := max(c.Width()-box.GetHorizontalFrameSize(), 12)
	text := helperStyle.Render(s.opts.Placeholder)
	if s.value >= 0 {
		text = s.opts.Options[s.value].Label
	}
	arrow := "▾"
	if s.Expanded() {
		arrow = "▴"
	}
	pad := max(width-box.GetHorizontalPadding()-lipgloss.Width(text)-1, 1)
	body := text + strings.Repeat(" ", pad) + arrow
	if s.opts.Disabled {
		body = disabledStyle.Render(body)
	}
	c.Write(s.id, box.Width(width).Render(body))

	if s.Expanded() {
		for i, o := range s.opts.Options {
			line := "  " + o.Label
			switch {
			case o.Disabled:
				line = disabledStyle.Render(line)
			case i == s.highlight:
				line = focusStyle.Render("› " + o.Label)
			case i == s.value:
				line = "✓ " + o.Label
			}
			c.Write(s.optionID(i), "  "+line)
		}
	}

	switch {
	case s.opts.Error != "":
		c.Write(focus.NoHandle, errorStyle.Render("✗ "+s.opts.Error))
	case s.opts.HelperText != "":
		c.Write(focus.NoHandle, helperStyle.Render(s.opts.HelperText))
	}
}

func (s *Select) openChanged(open bool) {
	s.listbox.SetHidden(!open)
	s.node.SetBoolAttr(dom.AttrExpanded, open)
	if open {
		s.moveHighlight(s.value)
		if s.highlight < 0 {
			s.moveHighlight(s.step(-1, 1))
		}
	} else {
		s.moveHighlight(-1)
	}
}

func (s *Select) moveHighlight(i int) {
	for j, n := range s.optNodes {
		n.SetBoolAttr(dom.AttrSelected, j == i)
	}
	s.highlight = i
}

func (s *Select) commit(i int) {
	if i < 0 || i == s.value {
		return
	}
	s.value = i
	s.sync()
	if s.opts.OnChange != nil {
		s.opts.OnChange(s.opts.Options[i].Value)
	}
}

// step returns the nearest enabled option from "from" in direction dir,
// or from itself when there is none.
func (s *Select) step(from, dir int) int {
	for i := from + dir; i >= 0 && i < len(s.opts.Options); i += dir {
		if !s.opts.Options[i].Disabled {
			return i
		}
	}
	return from
}

// typeAhead finds the next enabled option whose label starts with the typed
// letter, searching after the current value and wrapping.
func (s *Select) typeAhead(msg tea.KeyMsg) int {
	if msg.Type != tea.KeyRunes || len(msg.Runes) != 1 {
		return -1
	}
	prefix := strings.ToLower(string(msg.Runes))
	n := len(s.opts.Options)
	for k := 1; k <= n; k++ {
		i := (s.value + k + n) % n
		o := s.opts.Options[i]
		if !o.Disabled && strings.HasPrefix(strings.ToLower(o.Label), prefix) {
			return i
		}
	}
	return -1
}

func (s *Select) sync() {
	if s.node == nil {
		return
	}
	for i, n := range s.optNodes {
		n.SetBoolAttr(dom.AttrChecked, i == s.value)
	}
	s.node.SetBoolAttr(dom.AttrInvalid, s.opts.Error != "")
	s.errEl.SetLabel(s.opts.Error)
	s.errEl.SetHidden(s.opts.Error == "")
	s.helpEl.SetHidden(s.opts.HelperText == "" || s.opts.Error != "")

	var refs []string
	if s.opts.Error != "" {
		refs = append(refs, string(s.errEl.ID()))
	}
	if s.opts.HelperText != "" {
		refs = append(refs, string(s.helpEl.ID()))
	}
	s.node.SetAttr(dom.AttrDescribedBy, strings.Join(refs, " "))
}

func (s *Select) optionID(i int) focus.Handle {
	return s.id + focus.Handle("-option-"+s.opts.Options[i].Value)
}

func (s *Select) indexOfValue(v string) int {
	for i, o := range s.opts.Options {
		if o.Value == v {
			return i
		}
	}
	return -1
}

func (s *Select) indexOfNode(h focus.Handle) int {
	for i, n := range s.optNodes {
		if n.ID() == h {
			return i
		}
	}
	return -1
}
