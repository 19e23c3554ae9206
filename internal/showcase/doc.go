// SPDX-License-Identifier: MPL-2.0

// Package showcase implements the interactive component documentation shell.
//
// The screen is split into a sidebar listing every catalog component and a
// scrollable page for the selected one: its description, a live demo, the
// feature list, WCAG criteria, ARIA attributes, keyboard support and a code
// sample that can be copied to the clipboard.
//
// Keyboard focus moves between three regions (sidebar, demo and page) with
// ctrl+n and ctrl+p. Inside the demo every key goes to the demo's widgets, so
// Tab walks the widgets exactly as it would in a standalone program. Each demo
// owns its document; switching components discards the previous one.
package showcase
