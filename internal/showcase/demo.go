// SPDX-License-Identifier: MPL-2.0

package showcase

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/a11yterm/a11yterm/internal/dom"
	"github.com/a11yterm/a11yterm/internal/widget"
)

type (
	// demo is the live example of one component. It owns its document, so
	// focus inside the demo never leaks into the rest of the page.
	demo struct {
		surface *widget.Surface
		// status is the last thing the demo reported, shown under it.
		status string
	}

	demoBuilder func(d *demo, logger *log.Logger) []widget.Widget
)

var demoBuilders = map[string]demoBuilder{
	"button":      buttonDemo,
	"input":       inputDemo,
	"checkbox":    checkboxDemo,
	"radio-group": radioGroupDemo,
	"select":      selectDemo,
	"modal":       modalDemo,
	"alert":       alertDemo,
	"navigation":  navigationDemo,
}

// newDemo builds the demo for a component id. Components without a builder
// get an empty demo.
func newDemo(id string, logger *log.Logger) (*demo, error) {
	d := &demo{surface: widget.NewSurface(dom.NewDocument(dom.WithLogger(logger)))}
	build, ok := demoBuilders[id]
	if !ok {
		return d, nil
	}
	for _, w := range build(d, logger) {
		if err := d.surface.Add(dom.RootID, w); err != nil {
			return nil, fmt.Errorf("mount %s demo: %w", id, err)
		}
	}
	return d, nil
}

// empty reports whether the demo has no widgets.
func (d *demo) empty() bool { return len(d.surface.Widgets()) == 0 }

// capturing reports whether a widget (an open dialog) takes every key.
func (d *demo) capturing() bool {
	for _, w := range d.surface.Widgets() {
		if c, ok := w.(widget.Capturer); ok && c.Capturing() {
			return true
		}
	}
	return false
}

// focusFirst moves focus into the demo when nothing in it is focused.
func (d *demo) focusFirst() {
	doc := d.surface.Document()
	if doc.CurrentFocus().IsNone() {
		doc.FocusNext()
	}
}

// announcement returns what a screen reader would read for the focused node.
func (d *demo) announcement() string {
	doc := d.surface.Document()
	h := doc.CurrentFocus()
	if h.IsNone() {
		return ""
	}
	return doc.Describe(h)
}

func (d *demo) report(format string, args ...any) func() {
	return func() { d.status = fmt.Sprintf(format, args...) }
}

func buttonDemo(d *demo, _ *log.Logger) []widget.Widget {
	return []widget.Widget{
		widget.NewButton("save", widget.ButtonOptions{
			Label: "Save changes", Variant: widget.ButtonPrimary, OnPress: d.report("Saved"),
		}),
		widget.NewButton("cancel", widget.ButtonOptions{
			Label: "Cancel", Variant: widget.ButtonSecondary, Size: widget.SizeSmall, OnPress: d.report("Cancelled"),
		}),
		widget.NewButton("delete", widget.ButtonOptions{
			Label: "Delete account", Variant: widget.ButtonDanger, Size: widget.SizeLarge, OnPress: d.report("Deleted"),
		}),
		widget.NewButton("close", widget.ButtonOptions{
			Label: "×", AriaLabel: "Close panel", OnPress: d.report("Closed panel"),
		}),
		widget.NewButton("locked", widget.ButtonOptions{Label: "Unavailable", Disabled: true}),
	}
}

func inputDemo(d *demo, _ *log.Logger) []widget.Widget {
	return []widget.Widget{
		widget.NewInput("email", widget.InputOptions{
			Label:       "Email address",
			Placeholder: "you@example.com",
			HelperText:  "We never share your email.",
			Required:    true,
			Validate: func(v string) string {
				if v != "" && !strings.Contains(v, "@") {
					return "Enter an email address containing @."
				}
				return ""
			},
			OnChange: func(v string) { d.status = fmt.Sprintf("Email: %q", v) },
		}),
		widget.NewInput("password", widget.InputOptions{
			Label:      "Password",
			Password:   true,
			CharLimit:  64,
			HelperText: "At least 8 characters.",
			Validate: func(v string) string {
				if v != "" && len(v) < 8 {
					return "Password is too short."
				}
				return ""
			},
		}),
	}
}

func checkboxDemo(d *demo, _ *log.Logger) []widget.Widget {
	changed := func(name string) func(bool) {
		return func(v bool) { d.status = fmt.Sprintf("%s: %t", name, v) }
	}
	return []widget.Widget{
		widget.NewCheckbox("newsletter", widget.CheckboxOptions{
			Label:       "Subscribe to the newsletter",
			Description: "One email a month, no tracking.",
			OnChange:    changed("Newsletter"),
		}),
		widget.NewCheckbox("terms", widget.CheckboxOptions{
			Label:    "I accept the terms",
			Checked:  true,
			OnChange: changed("Terms"),
		}),
		widget.NewCheckbox("beta", widget.CheckboxOptions{Label: "Beta features (unavailable)", Disabled: true}),
	}
}

func radioGroupDemo(d *demo, _ *log.Logger) []widget.Widget {
	return []widget.Widget{
		widget.NewRadioGroup("plan", widget.RadioGroupOptions{
			Legend:   "Choose a plan",
			Required: true,
			Options: []widget.RadioOption{
				{Value: "free", Label: "Free", Description: "For personal projects"},
				{Value: "pro", Label: "Pro", Description: "For small teams"},
				{Value: "enterprise", Label: "Enterprise", Description: "Contact sales", Disabled: true},
				{Value: "custom", Label: "Custom", Description: "Pick your own limits"},
			},
			OnChange: func(v string) { d.status = "Plan: " + v },
		}),
	}
}

func selectDemo(d *demo, _ *log.Logger) []widget.Widget {
	return []widget.Widget{
		widget.NewSelect("country", widget.SelectOptions{
			Label:       "Country",
			Placeholder: "Select a country",
			HelperText:  "Type a letter to jump.",
			Options: []widget.SelectOption{
				{Value: "ar", Label: "Argentina"},
				{Value: "br", Label: "Brazil"},
				{Value: "ca", Label: "Canada"},
				{Value: "de", Label: "Germany", Disabled: true},
				{Value: "jp", Label: "Japan"},
				{Value: "pt", Label: "Portugal"},
			},
			OnChange: func(v string) { d.status = "Country: " + v },
		}),
	}
}

func modalDemo(d *demo, logger *log.Logger) []widget.Widget {
	modal := widget.NewModal("confirm", widget.ModalOptions{
		Title: "Delete project?",
		Body:  "This removes the project and its history. You cannot undo this.",
		Size:  widget.SizeMedium,
		Actions: []widget.ModalAction{
			{Label: "Cancel", Variant: widget.ButtonSecondary, OnPress: d.report("Kept the project")},
			{Label: "Delete", Variant: widget.ButtonDanger, OnPress: d.report("Deleted the project")},
		},
		OnClose: func() {
			if d.status == "" {
				d.status = "Dialog closed"
			}
		},
		Logger: logger,
	})
	open := widget.NewButton("open-dialog", widget.ButtonOptions{
		Label: "Open dialog",
		OnPress: func() {
			d.status = ""
			modal.Open()
		},
	})
	return []widget.Widget{open, modal}
}

func alertDemo(d *demo, _ *log.Logger) []widget.Widget {
	alerts := []*widget.Alert{
		widget.NewAlert("info", widget.AlertOptions{
			Variant: widget.AlertInfo, Message: "A new version is available.",
		}),
		widget.NewAlert("success", widget.AlertOptions{
			Variant: widget.AlertSuccess, Title: "Saved", Message: "Your changes were saved.",
		}),
		widget.NewAlert("warning", widget.AlertOptions{
			Variant: widget.AlertWarning, Message: "Your session expires in 5 minutes.", Dismissible: true,
			OnDismiss: d.report("Dismissed the warning"),
		}),
		widget.NewAlert("error", widget.AlertOptions{
			Variant: widget.AlertError, Title: "Upload failed", Message: "The file is larger than 10 MB.",
			Dismissible: true, OnDismiss: d.report("Dismissed the error"),
		}),
	}
	out := make([]widget.Widget, 0, len(alerts)+1)
	for _, a := range alerts {
		out = append(out, a)
	}
	out = append(out, widget.NewButton("reset-alerts", widget.ButtonOptions{
		Label:   "Show all alerts",
		Variant: widget.ButtonSecondary,
		OnPress: func() {
			for _, a := range alerts {
				a.Reset()
			}
			d.status = "Alerts restored"
		},
	}))
	return out
}

func navigationDemo(d *demo, logger *log.Logger) []widget.Widget {
	return []widget.Widget{
		widget.NewNavigation("site-nav", widget.NavigationOptions{
			AriaLabel: "Main navigation",
			Items: []widget.NavItem{
				{Label: "Home", Href: "/"},
				{Label: "Products", Items: []widget.NavItem{
					{Label: "Widgets", Href: "/products/widgets"},
					{Label: "Themes", Href: "/products/themes"},
					{Label: "Pricing", Href: "/pricing"},
				}},
				{Label: "Resources", Items: []widget.NavItem{
					{Label: "Guides", Href: "/guides"},
					{Label: "Changelog", Href: "/changelog"},
				}},
				{Label: "Contact", Href: "/contact"},
			},
			OnNavigate: func(item widget.NavItem) { d.status = "Navigated to " + item.Href },
			Logger:     logger,
		}),
	}
}

// render draws the demo at the given screen origin.
func (d *demo) render(originX, originY, width int) string {
	return d.surface.Render(originX, originY, width)
}

