// SPDX-License-Identifier: MPL-2.0

// Package dom provides a minimal element tree for terminal widgets.
//
// A Document tracks nodes with roles, labels and ARIA attributes, owns the
// current keyboard focus and implements focus.Host so the interaction
// controllers in internal/focus can drive it. A HitMap maps screen cells back
// to nodes for mouse support.
//
// Documents are not safe for concurrent use; each Bubble Tea model owns its own.
package dom
