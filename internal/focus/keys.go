// SPDX-License-Identifier: MPL-2.0

package focus

import "strings"

// Logical keys understood by the controllers.
const (
	KeyUnknown Key = iota
	KeyTab
	KeyShiftTab
	KeyEscape
	KeyArrowUp
	KeyArrowDown
	KeyArrowLeft
	KeyArrowRight
	KeyEnter
	KeySpace
	KeyHome
	KeyEnd
)

const (
	// Ignored means the handler did not act on the event; the host may apply
	// its default behavior.
	Ignored Result = iota
	// Handled means the handler consumed the event.
	Handled
)

type (
	// Key is a logical key identifier, independent of the terminal or
	// toolkit that produced the key press.
	Key int

	// Result reports whether a handler consumed an event.
	Result int

	// KeyEvent is a key press delivered to a controller. Handlers call
	// PreventDefault when the host must not apply its own default action
	// (for example sequential Tab navigation or activating a link).
	KeyEvent struct {
		Key Key

		defaultPrevented bool
	}

	// PointerEvent is a pointer press. Only the target is needed: the
	// controllers use it to detect interactions outside their elements.
	PointerEvent struct {
		Target Handle
	}
)

// NewKeyEvent returns a KeyEvent for k.
func NewKeyEvent(k Key) *KeyEvent {
	return &KeyEvent{Key: k}
}

// PreventDefault marks the event so the host skips its default action.
func (e *KeyEvent) PreventDefault() { e.defaultPrevented = true }

// DefaultPrevented reports whether a handler called PreventDefault.
func (e *KeyEvent) DefaultPrevented() bool { return e.defaultPrevented }

// ParseKey maps a terminal key name (as produced by Bubble Tea's
// KeyMsg.String) to a logical key. Unrecognized names map to KeyUnknown.
func ParseKey(name string) Key {
	switch strings.ToLower(name) {
	case "tab":
		return KeyTab
	case "shift+tab":
		return KeyShiftTab
	case "esc", "escape":
		return KeyEscape
	case "up":
		return KeyArrowUp
	case "down":
		return KeyArrowDown
	case "left":
		return KeyArrowLeft
	case "right":
		return KeyArrowRight
	case "enter":
		return KeyEnter
	case " ", "space":
		return KeySpace
	case "home":
		return KeyHome
	case "end":
		return KeyEnd
	default:
		return KeyUnknown
	}
}

// String returns a human-readable key name.
func (k Key) String() string {
	switch k {
	case KeyTab:
		return "Tab"
	case KeyShiftTab:
		return "Shift+Tab"
	case KeyEscape:
		return "Escape"
	case KeyArrowUp:
		return "ArrowUp"
	case KeyArrowDown:
		return "ArrowDown"
	case KeyArrowLeft:
		return "ArrowLeft"
	case KeyArrowRight:
		return "ArrowRight"
	case KeyEnter:
		return "Enter"
	case KeySpace:
		return "Space"
	case KeyHome:
		return "Home"
	case KeyEnd:
		return "End"
	default:
		return "Unknown"
	}
}

// String returns "handled" or "ignored".
func (r Result) String() string {
	if r == Handled {
		return "handled"
	}
	return "ignored"
}
