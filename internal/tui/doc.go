// SPDX-License-Identifier: MPL-2.0

// Package tui holds the terminal plumbing shared by the showcase and the CLI:
// theme selection, accessible-mode detection, an ANSI-aware overlay
// compositor, and the huh-based chooser and viewport pager used outside the
// showcase.
package tui
