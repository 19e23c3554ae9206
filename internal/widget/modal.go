// SPDX-License-Identifier: MPL-2.0

package widget

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/a11yterm/a11yterm/internal/dom"
	"github.com/a11yterm/a11yterm/internal/focus"
)

type (
	// ModalAction is a button in the modal footer. Activating it runs
	// OnPress and then closes the dialog.
	ModalAction struct {
		Label   string
		Variant ButtonVariant
		OnPress func()
	}

	// ModalOptions configures a Modal.
	ModalOptions struct {
		Title   string
		Body    string
		Size    Size
		Actions []ModalAction
		OnClose func()
		Logger  *log.Logger
	}

	// Modal is a dialog that traps focus while open. Opening captures the
	// focused element and returns focus to it on close. Escape, the close
	// button, any action and a press on the backdrop all close it.
	Modal struct {
		id      focus.Handle
		opts    ModalOptions
		trap    *focus.FocusTrap
		doc     *dom.Document
		dialog  *dom.Node
		close   *Button
		actions []*Button
	}
)

// NewModal creates an unmounted, closed modal.
func NewModal(id focus.Handle, opts ModalOptions) *Modal {
	if opts.Size == "" {
		opts.Size = SizeMedium
	}
	return &Modal{id: id, opts: opts}
}

// Mount implements Widget. The dialog subtree is attached hidden.
func (m *Modal) Mount(doc *dom.Document, parent focus.Handle) error {
	if m.doc != nil {
		return ErrAlreadyMounted
	}
	if err := m.opts.Size.Validate(); err != nil {
		return err
	}
	backdrop := dom.NewNode(m.backdropID(), dom.RoleGeneric, "")
	backdrop.SetHidden(true)
	dialog := dom.NewNode(m.id, dom.RoleDialog, m.opts.Title)
	dialog.SetBoolAttr(dom.AttrModal, true)
	dialog.SetAttr(dom.AttrLabelledBy, string(m.id)+"-title")
	if err := doc.Append(parent, backdrop); err != nil {
		return err
	}
	if err := doc.Append(backdrop.ID(), dialog); err != nil {
		return err
	}
	if err := doc.Append(m.id, dom.NewNode(m.id+"-title", dom.RoleGeneric, m.opts.Title)); err != nil {
		return err
	}
	if m.opts.Body != "" {
		body := dom.NewNode(m.id+"-body", dom.RoleGeneric, m.opts.Body)
		if err := doc.Append(m.id, body); err != nil {
			return err
		}
		dialog.SetAttr(dom.AttrDescribedBy, string(body.ID()))
	}

	m.close = NewButton(m.id+"-close", ButtonOptions{
		Label:     "✕",
		Variant:   ButtonSecondary,
		Size:      SizeSmall,
		AriaLabel: "Close modal",
		OnPress:   m.Close,
	})
	if err := m.close.Mount(doc, m.id); err != nil {
		return err
	}
	for i, a := range m.opts.Actions {
		b := NewButton(m.id+focus.Handle("-action-"+itoa(i)), ButtonOptions{
			Label:   a.Label,
			Variant: a.Variant,
			Size:    SizeSmall,
			OnPress: m.runAction(a),
		})
		if err := b.Mount(doc, m.id); err != nil {
			return err
		}
		m.actions = append(m.actions, b)
	}

	opts := []focus.Option{focus.WithOnClose(m.Close)}
	if m.opts.Logger != nil {
		opts = append(opts, focus.WithLogger(m.opts.Logger))
	}
	m.trap = focus.NewFocusTrap(doc, opts...)
	m.doc, m.dialog = doc, dialog
	return nil
}

// Root implements Widget.
func (m *Modal) Root() focus.Handle { return m.backdropID() }

// IsOpen reports whether the dialog is showing.
func (m *Modal) IsOpen() bool { return m.trap != nil && m.trap.Active() }

// Capturing implements Capturer.
func (m *Modal) Capturing() bool { return m.IsOpen() }

// Open shows the dialog and activates the focus trap.
func (m *Modal) Open() {
	if m.doc == nil || m.IsOpen() {
		return
	}
	m.doc.Node(m.backdropID()).SetHidden(false)
	m.trap.Activate(m.id)
}

// Close hides the dialog, releases the trap and restores focus. When there
// is nothing to restore, focus left inside the hidden dialog is dropped.
// Closing a closed modal is a no-op.
func (m *Modal) Close() {
	if !m.IsOpen() {
		return
	}
	m.trap.Deactivate()
	m.doc.Node(m.backdropID()).SetHidden(true)
	if m.opts.OnClose != nil {
		m.opts.OnClose()
	}
}

// HandleKey implements Widget.
func (m *Modal) HandleKey(msg tea.KeyMsg) focus.Result {
	if !m.IsOpen() {
		return focus.Ignored
	}
	if m.close.HandleKey(msg) == focus.Handled {
		return focus.Handled
	}
	for _, b := range m.actions {
		if b.HandleKey(msg) == focus.Handled {
			return focus.Handled
		}
	}
	ev := focus.NewKeyEvent(focus.ParseKey(msg.String()))
	if m.trap.HandleKeyDown(ev) == focus.Handled {
		return focus.Handled
	}
	// Keys the dialog does not use must not reach the page behind it;
	// mid-sequence Tab is left to the surface's sequential navigation.
	switch ev.Key {
	case focus.KeyTab, focus.KeyShiftTab:
		return focus.Ignored
	}
	return focus.Handled
}

// HandlePointer implements Widget.
func (m *Modal) HandlePointer(ev focus.PointerEvent) focus.Result {
	if !m.IsOpen() {
		return focus.Ignored
	}
	switch {
	case ev.Target == m.backdropID():
		m.Close()
		return focus.Handled
	case m.close.HandlePointer(ev) == focus.Handled:
		return focus.Handled
	}
	for _, b := range m.actions {
		if b.HandlePointer(ev) == focus.Handled {
			return focus.Handled
		}
	}
	return focus.Handled
}

// Render implements Widget. A closed modal draws nothing.
func (m *Modal) Render(c *Canvas) {
	if !m.IsOpen() {
		return
	}
	frame := dialogStyle.Width(m.width(c.Width()))
	c.Float(m.backdropID(), frame, func(inner *Canvas) {
		title := lipgloss.NewStyle().Bold(true).Foreground(ColorText).Render(m.opts.Title)
		gap := max(inner.Width()-lipgloss.Width(title)-lipgloss.Width(m.close.View()), 1)
		inner.Row(spaces(gap), Segment{Text: title}, Segment{ID: m.close.id, Text: m.close.View()})
		inner.Blank()
		if m.opts.Body != "" {
			inner.Write(focus.NoHandle, lipgloss.NewStyle().Width(inner.Width()).Render(m.opts.Body))
			inner.Blank()
		}
		if len(m.actions) > 0 {
			segs := make([]Segment, len(m.actions))
			for i, b := range m.actions {
				segs[i] = Segment{ID: b.id, Text: b.View()}
			}
			inner.Row(" ", segs...)
		}
	})
}

// width maps the modal size to an outer width bounded by the canvas.
func (m *Modal) width(avail int) int {
	w := 56
	switch m.opts.Size {
	case SizeSmall:
		w = 44
	case SizeLarge:
		w = 72
	}
	return max(min(w, avail-2), 20)
}

func (m *Modal) runAction(a ModalAction) func() {
	return func() {
		if a.OnPress != nil {
			a.OnPress()
		}
		m.Close()
	}
}

func (m *Modal) backdropID() focus.Handle { return m.id + "-backdrop" }
