// SPDX-License-Identifier: MPL-2.0

package focus

import "slices"

const (
	// Next moves toward the end of the options, wrapping to the start.
	Next Direction = iota
	// Previous moves toward the start of the options, wrapping to the end.
	Previous
)

type (
	// Direction is a roving focus direction.
	Direction int

	// Choice is one option of a RovingSelection.
	Choice struct {
		Value    string
		Disabled bool
	}

	// RovingSelection keeps a single selected value among mutually exclusive
	// options and a focused position that arrow keys move. Under arrow
	// navigation focus and selection are coupled, as with native radio
	// buttons: landing on an option selects it.
	RovingSelection struct {
		opts     controllerOptions
		choices  []Choice
		selected string
		has      bool
		focused  int
	}
)

// NewRovingSelection creates a group over choices with no selection and no
// focused option.
func NewRovingSelection(choices []Choice, opts ...Option) *RovingSelection {
	return &RovingSelection{
		opts:    applyOptions(opts),
		choices: slices.Clone(choices),
		focused: -1,
	}
}

// Choices returns a copy of the configured options.
func (r *RovingSelection) Choices() []Choice { return slices.Clone(r.choices) }

// Selected returns the selected value and whether there is one.
func (r *RovingSelection) Selected() (string, bool) { return r.selected, r.has }

// FocusedIndex returns the focused option index, or -1.
func (r *RovingSelection) FocusedIndex() int { return r.focused }

// SetChoices replaces the options. A selection whose option disappeared or
// became disabled is cleared (without a change callback) and the focused
// index is dropped if it no longer points at an enabled option.
func (r *RovingSelection) SetChoices(choices []Choice) {
	r.choices = slices.Clone(choices)
	if r.has {
		if i := r.indexOf(r.selected); i < 0 || r.choices[i].Disabled {
			r.selected, r.has = "", false
		}
	}
	if r.focused >= len(r.choices) || (r.focused >= 0 && r.choices[r.focused].Disabled) {
		r.focused = -1
	}
}

// Select makes value the selected option. It fails with an
// *InvalidOptionError when value is unknown or its option is disabled, and
// leaves the state unchanged. Selecting does not move focus.
func (r *RovingSelection) Select(value string) error {
	i := r.indexOf(value)
	if i < 0 {
		return &InvalidOptionError{Value: value}
	}
	if r.choices[i].Disabled {
		return &InvalidOptionError{Value: value, Disabled: true}
	}
	r.setSelected(value)
	return nil
}

// MoveFocus advances the focused index circularly to the next enabled option
// in direction and selects it. Without a focused option, Next starts at the
// first option and Previous at the last. It returns false when there is no
// enabled option to land on.
func (r *RovingSelection) MoveFocus(dir Direction) bool {
	n := len(r.choices)
	if n == 0 {
		return false
	}

	step, start := 1, r.focused
	if dir == Previous {
		step = -1
		if start < 0 {
			start = n
		}
	}

	for i := 1; i <= n; i++ {
		idx := ((start+step*i)%n + n) % n
		if !r.choices[idx].Disabled {
			r.focusAndSelect(idx)
			return true
		}
	}
	return false
}

// FocusEntry positions focus for a Tab into the group: on the selected
// option if there is one, otherwise on the first enabled option. Entering
// does not change the selection. It returns the focused index or -1.
func (r *RovingSelection) FocusEntry() int {
	if r.has {
		if i := r.indexOf(r.selected); i >= 0 {
			r.focused = i
			return i
		}
	}
	for i, c := range r.choices {
		if !c.Disabled {
			r.focused = i
			return i
		}
	}
	return -1
}

// SetFocusedIndex moves focus to option i without selecting it, as when the
// host moves focus there by other means (a click or Tab). It returns false,
// leaving focus unchanged, for an out-of-range or disabled index.
func (r *RovingSelection) SetFocusedIndex(i int) bool {
	if i < 0 || i >= len(r.choices) || r.choices[i].Disabled {
		return false
	}
	r.focused = i
	return true
}

// HandleKeyDown applies the radio group keyboard contract: ArrowDown and
// ArrowRight move to the next option, ArrowUp and ArrowLeft to the previous,
// Home and End to the first and last enabled option, and Space selects the
// focused option.
func (r *RovingSelection) HandleKeyDown(ev *KeyEvent) Result {
	switch ev.Key {
	case KeyArrowDown, KeyArrowRight:
		ev.PreventDefault()
		r.MoveFocus(Next)
		return Handled
	case KeyArrowUp, KeyArrowLeft:
		ev.PreventDefault()
		r.MoveFocus(Previous)
		return Handled
	case KeyHome:
		ev.PreventDefault()
		r.moveFromEdge(Next)
		return Handled
	case KeyEnd:
		ev.PreventDefault()
		r.moveFromEdge(Previous)
		return Handled
	case KeySpace:
		if r.focused < 0 || r.choices[r.focused].Disabled {
			return Ignored
		}
		ev.PreventDefault()
		r.setSelected(r.choices[r.focused].Value)
		return Handled
	}
	return Ignored
}

// moveFromEdge lands on the first (Next) or last (Previous) enabled option.
func (r *RovingSelection) moveFromEdge(dir Direction) {
	prev := r.focused
	r.focused = -1
	if !r.MoveFocus(dir) {
		r.focused = prev
	}
}

func (r *RovingSelection) focusAndSelect(i int) {
	r.focused = i
	r.setSelected(r.choices[i].Value)
}

func (r *RovingSelection) setSelected(value string) {
	if r.has && r.selected == value {
		return
	}
	r.selected, r.has = value, true
	if r.opts.onChange != nil {
		r.opts.onChange(value)
	}
}

func (r *RovingSelection) indexOf(value string) int {
	for i, c := range r.choices {
		if c.Value == value {
			return i
		}
	}
	return -1
}
