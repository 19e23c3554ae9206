// SPDX-License-Identifier: MPL-2.0

// Package focus implements the keyboard and focus behavior shared by the
// interactive widgets: a focus trap for modal overlays, a dropdown menu
// controller for disclosure navigation items, and a roving selection
// controller for radio-style groups.
//
// Controllers never touch a terminal or a widget tree directly. They consume a
// Host, which enumerates focusable elements, moves focus, reports the current
// focus and toggles background scroll suppression. Any rendering layer can
// provide one; internal/dom does so for the terminal showcase and
// internal/focus/focustest provides an in-memory fake for unit tests.
//
// All controllers are driven synchronously by the goroutine that delivers
// input events and are not safe for concurrent use.
package focus
