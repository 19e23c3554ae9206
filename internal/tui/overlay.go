// SPDX-License-Identifier: MPL-2.0

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/ansi"
	"github.com/muesli/reflow/truncate"
)

const ansiReset = "\x1b[0m"

// PlaceOverlay draws overlay on top of base with its top-left corner at
// column x, row y. The base stays visible around the overlay. Every output row
// is padded to width and ends with an ANSI reset so styles do not leak from
// one row into the next. Both strings may contain ANSI escape sequences.
func PlaceOverlay(base, overlay string, x, y, width int) string {
	baseLines := strings.Split(base, "\n")
	overlayLines := strings.Split(overlay, "\n")

	for len(baseLines) < y+len(overlayLines) {
		baseLines = append(baseLines, "")
	}

	result := make([]string, len(baseLines))
	for i, line := range baseLines {
		if i >= y && i < y+len(overlayLines) {
			result[i] = compositeLine(line, overlayLines[i-y], x, width)
		} else {
			result[i] = padLineToWidth(line, width)
		}
	}
	return strings.Join(result, "\n")
}

// compositeLine overlays overlayLine onto baseLine at startX.
func compositeLine(baseLine, overlayLine string, startX, maxWidth int) string {
	baseWidth := lipgloss.Width(baseLine)
	overlayWidth := lipgloss.Width(overlayLine)

	var b strings.Builder
	if startX > 0 {
		if baseWidth >= startX {
			b.WriteString(truncate.String(baseLine, uint(startX)))
		} else {
			b.WriteString(baseLine)
			b.WriteString(strings.Repeat(" ", startX-baseWidth))
		}
	}
	b.WriteString(ansiReset)
	b.WriteString(overlayLine)

	end := startX + overlayWidth
	if end < maxWidth {
		b.WriteString(ansiReset)
		if baseWidth > end {
			b.WriteString(ansiSuffix(baseLine, end))
		} else {
			b.WriteString(strings.Repeat(" ", maxWidth-end))
		}
	}
	b.WriteString(ansiReset)
	return b.String()
}

// ansiSuffix returns what is left of s after skipping skipWidth visible
// characters. Escape sequences after the cut are kept.
func ansiSuffix(s string, skipWidth int) string {
	var (
		out      strings.Builder
		esc      strings.Builder
		visible  int
		inEscape bool
	)
	for _, r := range s {
		if inEscape {
			esc.WriteRune(r)
			if ansi.IsTerminator(r) {
				inEscape = false
				if visible >= skipWidth {
					out.WriteString(esc.String())
				}
				esc.Reset()
			}
			continue
		}
		if r == ansi.Marker {
			inEscape = true
			esc.WriteRune(r)
			continue
		}
		if visible >= skipWidth {
			out.WriteRune(r)
		}
		visible++
	}
	return out.String()
}

// padLineToWidth pads line to width columns and terminates it with a reset.
func padLineToWidth(line string, width int) string {
	w := lipgloss.Width(line)
	if w >= width {
		return line + ansiReset
	}
	return line + ansiReset + strings.Repeat(" ", width-w)
}
