// SPDX-License-Identifier: MPL-2.0

package showcase

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/wordwrap"

	"github.com/a11yterm/a11yterm/internal/catalog"
	"github.com/a11yterm/a11yterm/internal/dom"
	"github.com/a11yterm/a11yterm/internal/widget"
)

const (
	copyLabel   = "[ Copy ]"
	copiedLabel = "[ Copied! ]"
)

var (
	titleBarStyle = lipgloss.NewStyle().Bold(true).Foreground(widget.ColorText).Background(widget.ColorDialog).Padding(0, 1)
	regionStyle   = lipgloss.NewStyle().Foreground(widget.ColorText).Background(widget.ColorDialog).Padding(0, 1)

	sidebarStyle = lipgloss.NewStyle().
			Width(sidebarWidth - 1).
			BorderStyle(lipgloss.NormalBorder()).
			BorderRight(true).
			BorderForeground(widget.ColorMuted)
	sidebarFocusStyle = sidebarStyle.BorderForeground(widget.ColorFocus)
	sidebarHeading    = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	entryStyle        = lipgloss.NewStyle()
	currentEntryStyle = lipgloss.NewStyle().Bold(true).Foreground(widget.ColorPrimary)
	focusEntryStyle   = lipgloss.NewStyle().Underline(true).Foreground(widget.ColorFocus)

	pageTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(widget.ColorPrimary)
	headingStyle   = lipgloss.NewStyle().Bold(true)
	focusHeading   = headingStyle.Foreground(widget.ColorFocus).Underline(true)
	mutedStyle     = lipgloss.NewStyle().Foreground(widget.ColorMuted)
	statusStyle    = lipgloss.NewStyle().Foreground(widget.ColorSuccess)
	copyStyle      = lipgloss.NewStyle().Bold(true).Foreground(widget.ColorPrimary)
	copiedStyle    = lipgloss.NewStyle().Bold(true).Foreground(widget.ColorSuccess)

	tableHeaderStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	tableCellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

// View implements tea.Model.
func (m *Model) View() string {
	if !m.ready {
		return "Loading…"
	}

	title := titleBarStyle.Render("a11yterm · accessible terminal components")
	region := regionStyle.Render("Focus: " + m.region.String())
	gap := max(m.width-lipgloss.Width(title)-lipgloss.Width(region), 0)
	bar := title + regionStyle.Render(strings.Repeat(" ", max(gap-2, 0))) + region
	bar = ansi.Truncate(bar, m.width, "")

	body := lipgloss.JoinHorizontal(lipgloss.Top, m.sidebarView, m.viewport.View())

	return lipgloss.JoinVertical(lipgloss.Left, bar, body, m.statusLine(), m.help.View(m.helpKeys()))
}

// statusLine is what a screen reader would announce in the demo, otherwise
// the last status message.
func (m *Model) statusLine() string {
	if m.region == RegionDemo {
		if s := m.demo.announcement(); s != "" {
			return ansi.Truncate(mutedStyle.Render("Focused: ")+s, m.width, "…")
		}
	}
	return ansi.Truncate(statusStyle.Render(m.status), m.width, "…")
}

func (m *Model) renderSidebar() string {
	lines := []string{sidebarHeading.Render("Components")}
	focused := m.sidebar.CurrentFocus()
	labelWidth := sidebarWidth - 4

	for i, c := range m.catalog.Components {
		id := entryID(c.ID)
		node := m.sidebar.Node(id)

		marker, current := "  ", " "
		style := entryStyle
		if v, ok := node.Attr(dom.AttrCurrent); ok && v == "page" {
			current = "•"
			style = currentEntryStyle
		}
		if m.region == RegionSidebar && focused == id {
			marker = "› "
			style = style.Inherit(focusEntryStyle)
		}
		row := marker + current + " " + style.Render(ansi.Truncate(c.Name, labelWidth, "…"))
		lines = append(lines, row)
		m.hits.AddRect(id, 0, titleHeight+1+i, sidebarWidth, 1)
	}

	style := sidebarStyle
	if m.region == RegionSidebar {
		style = sidebarFocusStyle
	}
	return style.Height(m.viewport.Height).MaxHeight(m.viewport.Height).Render(strings.Join(lines, "\n"))
}

// renderPage renders the component page for a viewport scrolled to offset.
// Clickable regions are registered at the screen rows they will occupy.
func (m *Model) renderPage(offset int) string {
	c := &m.catalog.Components[m.active]
	width := max(m.viewport.Width-1, 10)

	var lines []string
	add := func(s string) { lines = append(lines, strings.Split(s, "\n")...) }
	screenRow := func() int { return titleHeight + len(lines) - offset }

	add(pageTitleStyle.Render(c.Name))
	add(wordwrap.String(c.Description, width))
	add("")

	heading := headingStyle
	if m.region == RegionDemo {
		heading = focusHeading
	}
	add(heading.Render("Live demo"))
	if m.demo.empty() {
		add(mutedStyle.Render("No live demo for this component."))
	} else {
		add(m.demo.render(sidebarWidth, screenRow(), width))
		if m.demo.status != "" {
			add(statusStyle.Render("Status: " + m.demo.status))
		}
	}

	if len(c.Features) > 0 {
		add("")
		add(headingStyle.Render("Accessibility features"))
		for _, f := range c.Features {
			add(bullet(f, width))
		}
	}

	if len(c.WCAG) > 0 {
		add("")
		add(headingStyle.Render("WCAG 2.1 success criteria"))
		rows := make([][]string, 0, len(c.WCAG))
		for _, cr := range c.WCAG {
			rows = append(rows, []string{cr.ID, string(cr.Level), cr.Title})
		}
		add(renderTable([]string{"Criterion", "Level", "Title"}, rows, width))
	}

	if len(c.ARIA) > 0 {
		add("")
		add(headingStyle.Render("ARIA attributes"))
		rows := make([][]string, 0, len(c.ARIA))
		for _, a := range c.ARIA {
			rows = append(rows, []string{a.Name, a.Purpose})
		}
		add(renderTable([]string{"Attribute", "Purpose"}, rows, width))
	}

	add("")
	add(headingStyle.Render("Keyboard support"))
	rows := make([][]string, 0, len(c.Keyboard))
	for _, k := range c.Keyboard {
		rows = append(rows, []string{k.Key, k.Action})
	}
	add(renderTable([]string{"Key", "Action"}, rows, width))

	add("")
	add(headingStyle.Render("Example"))
	if c.Example == "" {
		add(mutedStyle.Render("No example."))
		return strings.Join(lines, "\n")
	}
	label, style := copyLabel, copyStyle
	if m.copied {
		label, style = copiedLabel, copiedStyle
	}
	if row := screenRow(); row >= titleHeight && row < titleHeight+m.viewport.Height {
		m.hits.AddRect(copyButtonID, sidebarWidth, row, lipgloss.Width(label), 1)
	}
	add(style.Render(label))
	add(m.renderCode(c, width))

	return strings.Join(lines, "\n")
}

// renderCode highlights the example through glamour, caching the result per
// component and width.
func (m *Model) renderCode(c *catalog.Component, width int) string {
	if m.code.id == c.ID && m.code.width == width {
		return m.code.out
	}
	out, err := catalog.RenderMarkdown("```go\n"+c.Example+"\n```\n", m.codeStyle, width)
	if err != nil {
		m.logger.Warn("code highlighting failed", "component", c.ID, "error", err)
		out = c.Example
	}
	out = strings.Trim(out, "\n")
	m.code = renderedCode{id: c.ID, width: width, out: out}
	return out
}

func bullet(text string, width int) string {
	wrapped := wordwrap.String(text, max(width-2, 1))
	return "• " + strings.ReplaceAll(wrapped, "\n", "\n  ")
}

func renderTable(headers []string, rows [][]string, width int) string {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(mutedStyle).
		Headers(headers...).
		Rows(rows...).
		Width(width).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return tableHeaderStyle
			}
			return tableCellStyle
		}).
		String()
}
