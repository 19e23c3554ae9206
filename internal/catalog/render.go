// SPDX-License-Identifier: MPL-2.0

package catalog

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
)

const (
	// StyleAuto picks the dark or light glamour style from the terminal background.
	StyleAuto = "auto"
	// StyleDark is glamour's dark style.
	StyleDark = "dark"
	// StyleLight is glamour's light style.
	StyleLight = "light"
	// StyleNoTTY renders without colors, for pipes and screen readers.
	StyleNoTTY = "notty"
)

// Markdown renders a component page as Markdown.
func Markdown(c *Component) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# %s\n\n", c.Name)
	if c.Description != "" {
		sb.WriteString(c.Description)
		sb.WriteString("\n\n")
	}

	if len(c.Features) > 0 {
		sb.WriteString("## Accessibility features\n\n")
		for _, f := range c.Features {
			fmt.Fprintf(&sb, "- %s\n", f)
		}
		sb.WriteString("\n")
	}

	if len(c.WCAG) > 0 {
		sb.WriteString("## WCAG 2.1 success criteria\n\n")
		for _, cr := range c.WCAG {
			fmt.Fprintf(&sb, "- **%s %s** (Level %s): %s\n", cr.ID, cr.Title, cr.Level, cr.Description)
		}
		sb.WriteString("\n")
	}

	if len(c.ARIA) > 0 {
		sb.WriteString("## ARIA attributes\n\n")
		sb.WriteString("| Attribute | Purpose | Usage |\n")
		sb.WriteString("|-----------|---------|-------|\n")
		for _, a := range c.ARIA {
			fmt.Fprintf(&sb, "| `%s` | %s | %s |\n", a.Name, cell(a.Purpose), cell(a.Usage))
		}
		sb.WriteString("\n")
	}

	if len(c.Keyboard) > 0 {
		sb.WriteString("## Keyboard support\n\n")
		sb.WriteString("| Key | Action |\n")
		sb.WriteString("|-----|--------|\n")
		for _, k := range c.Keyboard {
			fmt.Fprintf(&sb, "| %s | %s |\n", cell(k.Key), cell(k.Action))
		}
		sb.WriteString("\n")
	}

	if c.Example != "" {
		sb.WriteString("## Example\n\n")
		sb.WriteString("```go\n")
		sb.WriteString(strings.TrimRight(c.Example, "\n"))
		sb.WriteString("\n```\n")
	}

	return sb.String()
}

// Render renders a component page for the terminal with the given glamour
// style. A width of zero disables word wrapping.
func Render(c *Component, style string, width int) (string, error) {
	return RenderMarkdown(Markdown(c), style, width)
}

// RenderMarkdown renders arbitrary Markdown with the given glamour style.
func RenderMarkdown(md, style string, width int) (string, error) {
	var opts []glamour.TermRendererOption
	switch style {
	case "", StyleAuto:
		opts = append(opts, glamour.WithAutoStyle())
	default:
		opts = append(opts, glamour.WithStandardStyle(style))
	}
	if width > 0 {
		opts = append(opts, glamour.WithWordWrap(width))
	}

	renderer, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	out, err := renderer.Render(md)
	if err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return out, nil
}

// cell escapes table separators inside a Markdown table cell.
func cell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
