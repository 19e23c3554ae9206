// SPDX-License-Identifier: MPL-2.0

package tui

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type (
	// PagerOptions configures the Pager component.
	PagerOptions struct {
		// Content is the text content to display.
		Content string
		// Title is the title displayed at the top.
		Title string
		// Height limits the visible height (0 for auto).
		Height int
		// Width limits the visible width (0 for auto).
		Width int
		// Config holds common TUI configuration.
		Config Config
	}

	// pagerModel is the bubbletea model for the pager component.
	pagerModel struct {
		viewport viewport.Model
		title    string
		done     bool
		width    int
		height   int
	}
)

// newPagerModel creates a pager with 80x20 defaults.
func newPagerModel(opts PagerOptions) *pagerModel {
	height := opts.Height
	if height == 0 {
		height = 20
	}
	width := opts.Width
	if width == 0 {
		width = 80
	}

	vp := viewport.New(width, max(height-2, 1))
	vp.SetContent(opts.Content)

	return &pagerModel{viewport: vp, title: opts.Title, width: width, height: height}
}

func (m *pagerModel) Init() tea.Cmd { return nil }

func (m *pagerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.done = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-2, 1)
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *pagerModel) View() string {
	if m.done {
		return ""
	}
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")).Padding(0, 1)
	footerStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	title := ""
	if m.title != "" {
		title = titleStyle.Render(m.title)
	}
	footer := footerStyle.Render("↑/↓ pgup/pgdn: scroll • q: close")
	return lipgloss.NewStyle().MaxWidth(m.width).Render(
		lipgloss.JoinVertical(lipgloss.Left, title, m.viewport.View(), footer),
	)
}

// Pager displays content in a scrollable viewport on the alternate screen.
// In accessible mode the content is written out as-is, since a screen reader
// follows plain output better than a redrawn viewport.
func Pager(opts PagerOptions) error {
	if ShouldUseAccessible(opts.Config) {
		_, err := getOutputWriter(opts.Config).Write([]byte(opts.Content))
		return err
	}
	p := tea.NewProgram(newPagerModel(opts), tea.WithAltScreen(), tea.WithOutput(getOutputWriter(opts.Config)))
	_, err := p.Run()
	return err
}
