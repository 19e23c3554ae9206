// SPDX-License-Identifier: MPL-2.0

package focus

type (
	// FocusTrap confines keyboard focus to a container while active and
	// restores the previously focused element when deactivated.
	//
	// The trap has two states. Activate moves it from inactive to active,
	// Deactivate moves it back; HandleKeyDown never changes the state.
	FocusTrap struct {
		host    Host
		opts    controllerOptions
		session *trapSession
	}

	// trapSession is the state of one activation.
	trapSession struct {
		container         Handle
		previouslyFocused Handle
	}
)

// NewFocusTrap creates an inactive trap bound to host.
func NewFocusTrap(host Host, opts ...Option) *FocusTrap {
	return &FocusTrap{
		host: host,
		opts: applyOptions(opts),
	}
}

// Active reports whether the trap currently confines focus.
func (t *FocusTrap) Active() bool { return t.session != nil }

// Container returns the trapping container, or NoHandle when inactive.
func (t *FocusTrap) Container() Handle {
	if t.session == nil {
		return NoHandle
	}
	return t.session.container
}

// PreviouslyFocused returns the element focus returns to on deactivation,
// or NoHandle when inactive or when nothing was focused at activation.
func (t *FocusTrap) PreviouslyFocused() Handle {
	if t.session == nil {
		return NoHandle
	}
	return t.session.previouslyFocused
}

// Activate starts confining focus to container. It captures the current
// focus for later restoration, suppresses background scrolling and focuses
// the first focusable element of container. A container without focusable
// elements is a valid degenerate state: focus is left where it is.
//
// Activating again for the same container is a no-op. Activating for a
// different container replaces the session but keeps the original restore
// target, since focus at that point is inside the old container.
func (t *FocusTrap) Activate(container Handle) {
	if t.session != nil {
		if t.session.container == container {
			return
		}
		t.opts.logger.Debug("focus trap moved", "from", t.session.container, "to", container)
		t.session.container = container
		t.focusFirst()
		return
	}

	t.session = &trapSession{
		container:         container,
		previouslyFocused: t.host.CurrentFocus(),
	}
	t.host.SuppressBackgroundScroll(true)
	t.focusFirst()
}

// Deactivate ends the session. Scroll suppression is always released and
// focus returns to the element captured at activation if it is still
// attached; otherwise focus stays at the document default. Calling
// Deactivate on an inactive trap is a no-op.
func (t *FocusTrap) Deactivate() {
	if t.session == nil {
		return
	}
	s := t.session
	t.session = nil

	t.host.SuppressBackgroundScroll(false)
	if s.previouslyFocused.IsNone() {
		return
	}
	if err := t.host.Focus(s.previouslyFocused); err != nil {
		t.opts.logger.Debug("focus restore skipped", "target", s.previouslyFocused, "error", err)
	}
}

// HandleKeyDown applies the trap's keyboard contract while active:
//
//   - Tab on the last focusable element wraps to the first.
//   - Shift+Tab on the first focusable element wraps to the last.
//   - Escape invokes the close callback. The trap stays active until the
//     owner actually closes and calls Deactivate.
//
// Tab and Shift+Tab elsewhere in the sequence are left to the host's default
// sequential navigation. When focus has escaped the container, both keys pull
// it back in.
func (t *FocusTrap) HandleKeyDown(ev *KeyEvent) Result {
	if t.session == nil {
		return Ignored
	}

	switch ev.Key {
	case KeyEscape:
		if t.opts.onClose != nil {
			t.opts.onClose()
		}
		return Handled

	case KeyTab, KeyShiftTab:
		seq := t.host.EnumerateFocusable(t.session.container)
		if len(seq) == 0 {
			// Nothing to cycle through, but focus must not leave.
			ev.PreventDefault()
			return Handled
		}
		idx := indexOf(seq, t.host.CurrentFocus())
		if ev.Key == KeyTab {
			if idx != -1 && idx != len(seq)-1 {
				return Ignored
			}
			t.moveTo(seq[0])
		} else {
			if idx > 0 {
				return Ignored
			}
			t.moveTo(seq[len(seq)-1])
		}
		ev.PreventDefault()
		return Handled
	}

	return Ignored
}

func (t *FocusTrap) focusFirst() {
	seq := t.host.EnumerateFocusable(t.session.container)
	if len(seq) == 0 {
		t.opts.logger.Debug("focus trap container has no focusable elements", "container", t.session.container)
		return
	}
	t.moveTo(seq[0])
}

func (t *FocusTrap) moveTo(h Handle) {
	if err := t.host.Focus(h); err != nil {
		t.opts.logger.Debug("focus move skipped", "target", h, "error", err)
	}
}
