// SPDX-License-Identifier: MPL-2.0

package widget

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/a11yterm/a11yterm/internal/dom"
	"github.com/a11yterm/a11yterm/internal/focus"
)

const (
	ButtonPrimary   ButtonVariant = "primary"
	ButtonSecondary ButtonVariant = "secondary"
	ButtonDanger    ButtonVariant = "danger"

	SizeSmall  Size = "sm"
	SizeMedium Size = "md"
	SizeLarge  Size = "lg"
)

type (
	// ButtonVariant selects the button's color scheme.
	ButtonVariant string

	// Size is a widget size.
	Size string

	// ButtonOptions configures a Button.
	ButtonOptions struct {
		Label   string
		Variant ButtonVariant
		Size    Size
		// AriaLabel overrides the accessible name, for icon-only buttons.
		AriaLabel string
		Disabled  bool
		OnPress   func()
	}

	// Button is a push button. Enter, Space and clicks activate it.
	Button struct {
		id   focus.Handle
		opts ButtonOptions
		doc  *dom.Document
		node *dom.Node
	}
)

// Validate returns an error if the variant is not recognized.
// The zero value is treated as primary.
func (v ButtonVariant) Validate() error {
	switch v {
	case "", ButtonPrimary, ButtonSecondary, ButtonDanger:
		return nil
	default:
		return &InvalidVariantError{Widget: "button", Value: string(v)}
	}
}

// Validate returns an error if the size is not recognized.
// The zero value is treated as md.
func (s Size) Validate() error {
	switch s {
	case "", SizeSmall, SizeMedium, SizeLarge:
		return nil
	default:
		return &InvalidSizeError{Value: s}
	}
}

// NewButton creates an unmounted button.
func NewButton(id focus.Handle, opts ButtonOptions) *Button {
	if opts.Variant == "" {
		opts.Variant = ButtonPrimary
	}
	if opts.Size == "" {
		opts.Size = SizeMedium
	}
	return &Button{id: id, opts: opts}
}

// Mount implements Widget.
func (b *Button) Mount(doc *dom.Document, parent focus.Handle) error {
	if b.doc != nil {
		return ErrAlreadyMounted
	}
	if err := b.opts.Variant.Validate(); err != nil {
		return err
	}
	if err := b.opts.Size.Validate(); err != nil {
		return err
	}
	n := dom.NewFocusable(b.id, dom.RoleButton, b.opts.Label)
	n.SetAttr(dom.AttrLabel, b.opts.AriaLabel)
	n.SetDisabled(b.opts.Disabled)
	if err := doc.Append(parent, n); err != nil {
		return err
	}
	b.doc, b.node = doc, n
	return nil
}

// Root implements Widget.
func (b *Button) Root() focus.Handle { return b.id }

// Label returns the visible label.
func (b *Button) Label() string { return b.opts.Label }

// Disabled reports whether the button is disabled.
func (b *Button) Disabled() bool { return b.opts.Disabled }

// SetDisabled enables or disables the button.
func (b *Button) SetDisabled(v bool) {
	b.opts.Disabled = v
	if b.node != nil {
		b.node.SetDisabled(v)
	}
}

// SetOnPress replaces the activation callback.
func (b *Button) SetOnPress(fn func()) { b.opts.OnPress = fn }

// Press activates the button unless it is disabled.
func (b *Button) Press() bool {
	if b.opts.Disabled || b.opts.OnPress == nil {
		return false
	}
	b.opts.OnPress()
	return true
}

// HandleKey implements Widget.
func (b *Button) HandleKey(msg tea.KeyMsg) focus.Result {
	if b.doc == nil || b.doc.CurrentFocus() != b.id {
		return focus.Ignored
	}
	switch focus.ParseKey(msg.String()) {
	case focus.KeyEnter, focus.KeySpace:
		b.Press()
		return focus.Handled
	}
	return focus.Ignored
}

// HandlePointer implements Widget.
func (b *Button) HandlePointer(ev focus.PointerEvent) focus.Result {
	if ev.Target != b.id || b.opts.Disabled {
		return focus.Ignored
	}
	b.Press()
	return focus.Handled
}

// Render implements Widget.
func (b *Button) Render(c *Canvas) {
	c.Write(b.id, b.View())
}

// View returns the styled button.
func (b *Button) View() string {
	focused := b.doc != nil && b.doc.CurrentFocus() == b.id
	return b.style(focused).Render(b.opts.Label)
}

func (b *Button) style(focused bool) lipgloss.Style {
	s := lipgloss.NewStyle().Bold(true)
	switch b.opts.Size {
	case SizeSmall:
		s = s.Padding(0, 1)
	case SizeLarge:
		s = s.Padding(1, 3)
	default:
		s = s.Padding(0, 2)
	}
	switch b.opts.Variant {
	case ButtonSecondary:
		s = s.Foreground(lipgloss.Color("#111827")).Background(ColorSecondary)
	case ButtonDanger:
		s = s.Foreground(ColorText).Background(ColorDanger)
	default:
		s = s.Foreground(ColorText).Background(ColorPrimary)
	}
	if b.opts.Disabled {
		s = s.Faint(true).Background(lipgloss.Color("#374151"))
	}
	if focused {
		s = s.Underline(true).Border(lipgloss.NormalBorder(), false, true).BorderForeground(ColorFocus)
	} else {
		s = s.Border(lipgloss.HiddenBorder(), false, true)
	}
	return s
}
