// SPDX-License-Identifier: MPL-2.0

package widget

import "github.com/charmbracelet/lipgloss"

// Color palette shared by all widgets. The pairs are chosen to keep at least
// 4.5:1 contrast on dark terminal backgrounds.
const (
	ColorPrimary   = lipgloss.Color("#3B82F6")
	ColorSecondary = lipgloss.Color("#9CA3AF")
	ColorDanger    = lipgloss.Color("#EF4444")
	ColorSuccess   = lipgloss.Color("#10B981")
	ColorWarning   = lipgloss.Color("#F59E0B")
	ColorInfo      = lipgloss.Color("#60A5FA")
	ColorMuted     = lipgloss.Color("#6B7280")
	ColorFocus     = lipgloss.Color("#FBBF24")
	ColorText      = lipgloss.Color("#F9FAFB")
	ColorDialog    = lipgloss.Color("#7C3AED")
)

var (
	labelStyle    = lipgloss.NewStyle().Bold(true)
	requiredStyle = lipgloss.NewStyle().Foreground(ColorDanger)
	helperStyle   = lipgloss.NewStyle().Foreground(ColorMuted)
	errorStyle    = lipgloss.NewStyle().Foreground(ColorDanger)
	disabledStyle = lipgloss.NewStyle().Foreground(ColorMuted).Faint(true)

	// focusStyle marks the focused element. It changes the text itself, not
	// only its color, so focus stays visible without color support.
	focusStyle = lipgloss.NewStyle().Foreground(ColorFocus).Bold(true).Underline(true)

	fieldStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorMuted).
			Padding(0, 1)

	fieldFocusStyle = fieldStyle.BorderForeground(ColorFocus)

	fieldErrorStyle = fieldStyle.BorderForeground(ColorDanger)

	dialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorDialog).
			Padding(1, 2)

	menuStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(ColorMuted)
)

// focusMarker prefixes a focused row.
func focusMarker(focused bool) string {
	if focused {
		return "› "
	}
	return "  "
}
