// SPDX-License-Identifier: MPL-2.0

package widget

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/a11yterm/a11yterm/internal/dom"
	"github.com/a11yterm/a11yterm/internal/focus"
)

const (
	AlertInfo    AlertVariant = "info"
	AlertSuccess AlertVariant = "success"
	AlertWarning AlertVariant = "warning"
	AlertError   AlertVariant = "error"
)

type (
	// AlertVariant selects the alert's urgency.
	AlertVariant string

	// AlertOptions configures an Alert.
	AlertOptions struct {
		Variant     AlertVariant
		Title       string
		Message     string
		Dismissible bool
		OnDismiss   func()
	}

	// Alert is a status message. Errors and warnings are announced
	// assertively (role alert); info and success politely (role status).
	// Every variant pairs its color with a distinct icon and a text prefix.
	Alert struct {
		id        focus.Handle
		opts      AlertOptions
		doc       *dom.Document
		node      *dom.Node
		dismiss   *Button
		dismissed bool
	}
)

// Validate returns an error if the variant is not recognized.
// The zero value is treated as info.
func (v AlertVariant) Validate() error {
	switch v {
	case "", AlertInfo, AlertSuccess, AlertWarning, AlertError:
		return nil
	default:
		return &InvalidVariantError{Widget: "alert", Value: string(v)}
	}
}

// Urgent reports whether the variant interrupts the user.
func (v AlertVariant) Urgent() bool { return v == AlertWarning || v == AlertError }

// Icon returns the variant's glyph.
func (v AlertVariant) Icon() string {
	switch v {
	case AlertSuccess:
		return "✔"
	case AlertWarning:
		return "⚠"
	case AlertError:
		return "✖"
	default:
		return "ℹ"
	}
}

// Prefix returns the word read before the message, so the variant does not
// depend on color alone.
func (v AlertVariant) Prefix() string {
	switch v {
	case AlertSuccess:
		return "Success"
	case AlertWarning:
		return "Warning"
	case AlertError:
		return "Error"
	default:
		return "Info"
	}
}

func (v AlertVariant) color() lipgloss.Color {
	switch v {
	case AlertSuccess:
		return ColorSuccess
	case AlertWarning:
		return ColorWarning
	case AlertError:
		return ColorDanger
	default:
		return ColorInfo
	}
}

// NewAlert creates an unmounted alert.
func NewAlert(id focus.Handle, opts AlertOptions) *Alert {
	if opts.Variant == "" {
		opts.Variant = AlertInfo
	}
	return &Alert{id: id, opts: opts}
}

// Mount implements Widget.
func (a *Alert) Mount(doc *dom.Document, parent focus.Handle) error {
	if a.doc != nil {
		return ErrAlreadyMounted
	}
	if err := a.opts.Variant.Validate(); err != nil {
		return err
	}
	role, live := dom.RoleStatus, "polite"
	if a.opts.Variant.Urgent() {
		role, live = dom.RoleAlert, "assertive"
	}
	label := a.opts.Variant.Prefix() + ": "
	if a.opts.Title != "" {
		label += a.opts.Title + ". "
	}
	n := dom.NewNode(a.id, role, label+a.opts.Message)
	n.SetAttr(dom.AttrLive, live)
	n.SetBoolAttr(dom.AttrAtomic, true)
	if err := doc.Append(parent, n); err != nil {
		return err
	}
	a.doc, a.node = doc, n

	if a.opts.Dismissible && a.opts.OnDismiss != nil {
		a.dismiss = NewButton(a.id+"-dismiss", ButtonOptions{
			Label:     "✕",
			Variant:   ButtonSecondary,
			Size:      SizeSmall,
			AriaLabel: "Dismiss alert",
			OnPress:   a.Dismiss,
		})
		if err := a.dismiss.Mount(doc, a.id); err != nil {
			return err
		}
	}
	return nil
}

// Root implements Widget.
func (a *Alert) Root() focus.Handle { return a.id }

// Dismissed reports whether the alert was dismissed.
func (a *Alert) Dismissed() bool { return a.dismissed }

// Dismiss hides the alert and runs the dismiss callback. Focus that was on
// the dismiss button is dropped along with the alert.
func (a *Alert) Dismiss() {
	if a.dismissed {
		return
	}
	a.dismissed = true
	if a.node != nil {
		a.node.SetHidden(true)
	}
	if a.opts.OnDismiss != nil {
		a.opts.OnDismiss()
	}
}

// Reset shows a dismissed alert again.
func (a *Alert) Reset() {
	a.dismissed = false
	if a.node != nil {
		a.node.SetHidden(false)
	}
}

// HandleKey implements Widget.
func (a *Alert) HandleKey(msg tea.KeyMsg) focus.Result {
	if a.dismiss == nil || a.dismissed {
		return focus.Ignored
	}
	return a.dismiss.HandleKey(msg)
}

// HandlePointer implements Widget.
func (a *Alert) HandlePointer(ev focus.PointerEvent) focus.Result {
	if a.dismiss == nil || a.dismissed {
		return focus.Ignored
	}
	return a.dismiss.HandlePointer(ev)
}

// Render implements Widget. A dismissed alert draws nothing.
func (a *Alert) Render(c *Canvas) {
	if a.dismissed {
		return
	}
	color := a.opts.Variant.color()
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color).
		Padding(0, 1)
	width := max(c.Width()-box.GetHorizontalBorderSize(), 12)
	inner := width - box.GetHorizontalPadding()

	head := lipgloss.NewStyle().Foreground(color).Bold(true).
		Render(a.opts.Variant.Icon() + " " + a.opts.Variant.Prefix())
	if a.opts.Title != "" {
		head += lipgloss.NewStyle().Bold(true).Render(" · " + a.opts.Title)
	}
	body := lipgloss.NewStyle().Width(inner).Render(a.opts.Message)

	if a.dismiss == nil {
		c.Write(focus.NoHandle, box.Width(width).Render(head+"\n"+body))
		return
	}

	btn := a.dismiss.View()
	gap := max(inner-lipgloss.Width(head)-lipgloss.Width(btn), 1)
	x := box.GetBorderLeftSize() + box.GetPaddingLeft() + lipgloss.Width(head) + gap
	y := c.Height() + box.GetBorderTopSize()
	c.addRegion(a.dismiss.id, x, y, lipgloss.Width(btn), 1)
	c.Write(focus.NoHandle, box.Width(width).Render(head+spaces(gap)+btn+"\n"+body))
}
