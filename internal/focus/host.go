// SPDX-License-Identifier: MPL-2.0

package focus

// NoHandle is the zero Handle. It stands for "no element", e.g. when nothing
// has focus.
const NoHandle Handle = ""

type (
	// Handle identifies an element owned by a Host. Handles are opaque to the
	// controllers; they are only compared and passed back to the Host.
	Handle string

	// Host is the capability a rendering layer provides to the controllers.
	Host interface {
		// EnumerateFocusable returns the keyboard-focusable descendants of
		// container in document order. The order is stable between calls
		// unless the subtree changes.
		EnumerateFocusable(container Handle) []Handle

		// Focus moves focus to h. It returns an error wrapping
		// ErrDetachedFocusTarget when h is no longer attached.
		Focus(h Handle) error

		// CurrentFocus returns the focused element, or NoHandle.
		CurrentFocus() Handle

		// SuppressBackgroundScroll enables or releases scroll suppression of
		// the content behind an overlay.
		SuppressBackgroundScroll(enable bool)
	}

	// ContainmentHost is implemented by hosts that can answer subtree
	// containment. Controllers use it when present to classify pointer
	// targets that are not themselves focusable.
	ContainmentHost interface {
		Host

		// Contains reports whether h is ancestor or one of its descendants.
		Contains(ancestor, h Handle) bool
	}
)

// String returns the handle as a string.
func (h Handle) String() string { return string(h) }

// IsNone reports whether h is NoHandle.
func (h Handle) IsNone() bool { return h == NoHandle }

func indexOf(seq []Handle, h Handle) int {
	if h == NoHandle {
		return -1
	}
	for i, el := range seq {
		if el == h {
			return i
		}
	}
	return -1
}
