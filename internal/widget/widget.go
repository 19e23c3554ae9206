// SPDX-License-Identifier: MPL-2.0

package widget

import (
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/a11yterm/a11yterm/internal/dom"
	"github.com/a11yterm/a11yterm/internal/focus"
	"github.com/a11yterm/a11yterm/internal/tui"
)

type (
	// Widget is an accessible component mounted into a document.
	Widget interface {
		// Mount creates the widget's nodes under parent. A widget is mounted once.
		Mount(doc *dom.Document, parent focus.Handle) error
		// Root returns the outermost node the widget owns.
		Root() focus.Handle
		// HandleKey handles a key press while focus is inside the widget.
		HandleKey(msg tea.KeyMsg) focus.Result
		// HandlePointer is called for every pointer press on the surface,
		// including presses outside the widget.
		HandlePointer(ev focus.PointerEvent) focus.Result
		// Render draws the widget onto c.
		Render(c *Canvas)
	}

	// Capturer is implemented by widgets that take every key while they are
	// capturing, regardless of where focus is (an open modal dialog).
	Capturer interface {
		Capturing() bool
	}

	// Segment is one piece of a rendered row; a non-empty ID makes it clickable.
	Segment struct {
		ID   focus.Handle
		Text string
	}

	// Canvas collects rendered rows and registers hit regions relative to an
	// origin on screen.
	Canvas struct {
		lines   []string
		hits    *dom.HitMap
		originX int
		originY int
		width   int
	}

	// Surface hosts a set of widgets in one document.
	Surface struct {
		doc     *dom.Document
		widgets []Widget
		hits    *dom.HitMap
	}
)

// NewCanvas creates a canvas whose top-left cell is (originX, originY) on
// screen. width bounds overlays such as the modal backdrop; hits may be nil.
func NewCanvas(hits *dom.HitMap, originX, originY, width int) *Canvas {
	return &Canvas{hits: hits, originX: originX, originY: originY, width: width}
}

// Width returns the canvas width.
func (c *Canvas) Width() int { return c.width }

// Height returns the number of rows written so far.
func (c *Canvas) Height() int { return len(c.lines) }

// Write appends text (possibly several rows). When id is set, the block is
// registered as a clickable region.
func (c *Canvas) Write(id focus.Handle, text string) {
	rows := strings.Split(text, "\n")
	if !id.IsNone() {
		c.addRegion(id, 0, len(c.lines), lipgloss.Width(text), len(rows))
	}
	c.lines = append(c.lines, rows...)
}

// WriteAt appends text indented by x columns; the region, if any, covers
// only the text.
func (c *Canvas) WriteAt(id focus.Handle, x int, text string) {
	rows := strings.Split(text, "\n")
	if !id.IsNone() {
		c.addRegion(id, x, len(c.lines), lipgloss.Width(text), len(rows))
	}
	for _, r := range rows {
		c.lines = append(c.lines, spaces(x)+r)
	}
}

// Row appends one row made of segments separated by sep, registering a
// region for each segment with an ID.
func (c *Canvas) Row(sep string, segs ...Segment) {
	var b strings.Builder
	x := 0
	y := len(c.lines)
	for i, s := range segs {
		if i > 0 {
			b.WriteString(sep)
			x += lipgloss.Width(sep)
		}
		w := lipgloss.Width(s.Text)
		if !s.ID.IsNone() {
			c.addRegion(s.ID, x, y, w, 1)
		}
		b.WriteString(s.Text)
		x += w
	}
	c.lines = append(c.lines, b.String())
}

// Blank appends an empty row.
func (c *Canvas) Blank() { c.lines = append(c.lines, "") }

// Float draws a framed box produced by fn centered over the rows already
// written, the way a dialog sits over its page. Every cell of the covered
// area is registered for backdrop first, so presses outside the box hit the
// backdrop while presses inside hit the box's own regions.
func (c *Canvas) Float(backdrop focus.Handle, frame lipgloss.Style, fn func(*Canvas)) {
	innerWidth := max(c.width-frame.GetHorizontalFrameSize(), 1)
	if w := frame.GetWidth(); w > 0 {
		innerWidth = max(w-frame.GetHorizontalPadding(), 1)
	}
	measure := &Canvas{width: innerWidth}
	fn(measure)
	box := frame.Render(measure.String())
	boxW, boxH := lipgloss.Width(box), lipgloss.Height(box)

	height := max(len(c.lines), boxH)
	x := max((c.width-boxW)/2, 0)
	y := max((height-boxH)/2, 0)
	c.addRegion(backdrop, 0, 0, max(c.width, boxW), height)

	inner := &Canvas{
		hits:    c.hits,
		originX: c.originX + x + frame.GetBorderLeftSize() + frame.GetPaddingLeft(),
		originY: c.originY + y + frame.GetBorderTopSize() + frame.GetPaddingTop(),
		width:   innerWidth,
	}
	fn(inner)
	box = frame.Render(inner.String())

	for len(c.lines) < height {
		c.lines = append(c.lines, "")
	}
	c.lines = strings.Split(tui.PlaceOverlay(strings.Join(c.lines, "\n"), box, x, y, max(c.width, boxW)), "\n")
}

// Lines appends pre-rendered rows without regions.
func (c *Canvas) Lines(rows []string) { c.lines = append(c.lines, rows...) }

// String returns the rendered rows.
func (c *Canvas) String() string { return strings.Join(c.lines, "\n") }

func (c *Canvas) addRegion(id focus.Handle, x, y, w, h int) {
	if c.hits == nil {
		return
	}
	c.hits.AddRect(id, c.originX+x, c.originY+y, w, h)
}

// NewSurface creates an empty surface with its own document.
func NewSurface(doc *dom.Document) *Surface {
	return &Surface{doc: doc, hits: dom.NewHitMap()}
}

// Document returns the surface document.
func (s *Surface) Document() *dom.Document { return s.doc }

// HitMap returns the regions registered by the last Render.
func (s *Surface) HitMap() *dom.HitMap { return s.hits }

// Widgets returns the mounted widgets in mount order.
func (s *Surface) Widgets() []Widget { return slices.Clone(s.widgets) }

// Add mounts w under parent and registers it for event routing.
func (s *Surface) Add(parent focus.Handle, w Widget) error {
	if err := w.Mount(s.doc, parent); err != nil {
		return err
	}
	s.widgets = append(s.widgets, w)
	return nil
}

// HandleKey routes a key press. A capturing widget gets it first, otherwise
// the widget owning the focused node. Unhandled Tab and Shift+Tab perform
// sequential navigation.
func (s *Surface) HandleKey(msg tea.KeyMsg) focus.Result {
	if w := s.target(); w != nil {
		if w.HandleKey(msg) == focus.Handled {
			return focus.Handled
		}
	}
	switch focus.ParseKey(msg.String()) {
	case focus.KeyTab:
		s.doc.FocusNext()
		return focus.Handled
	case focus.KeyShiftTab:
		s.doc.FocusPrevious()
		return focus.Handled
	}
	return focus.Ignored
}

// HandleClick moves focus to the pressed node if it is focusable, then
// dispatches the press to every widget. Focus lands first so a widget that
// opens a dialog from the press records it as the element to return to.
// While a dialog captures input, presses outside it never take focus.
func (s *Surface) HandleClick(x, y int) focus.Result {
	target := s.hits.Target(x, y)
	ev := focus.PointerEvent{Target: target}

	res := focus.Ignored
	if n := s.doc.Node(target); n != nil && n.Focusable() {
		if c := s.capturing(); c == nil || s.doc.Contains(c.Root(), target) {
			if s.doc.Focus(target) == nil {
				res = focus.Handled
			}
		}
	}
	for _, w := range slices.Backward(s.widgets) {
		if w.HandlePointer(ev) == focus.Handled {
			res = focus.Handled
		}
	}
	return res
}

// Render draws all widgets, separated by blank rows, rebuilding the hit map.
func (s *Surface) Render(originX, originY, width int) string {
	s.hits.Clear()
	c := NewCanvas(s.hits, originX, originY, width)
	var capturing []Widget
	for i, w := range s.widgets {
		if cw, ok := w.(Capturer); ok && cw.Capturing() {
			capturing = append(capturing, w)
			continue
		}
		if i > 0 && c.Height() > 0 {
			c.Blank()
		}
		w.Render(c)
	}
	// Capturing widgets draw last so their regions win.
	for _, w := range capturing {
		w.Render(c)
	}
	return c.String()
}

func (s *Surface) capturing() Widget {
	for _, w := range slices.Backward(s.widgets) {
		if cw, ok := w.(Capturer); ok && cw.Capturing() {
			return w
		}
	}
	return nil
}

func (s *Surface) target() Widget {
	if w := s.capturing(); w != nil {
		return w
	}
	focused := s.doc.CurrentFocus()
	if focused.IsNone() {
		return nil
	}
	for _, w := range s.widgets {
		if s.doc.Contains(w.Root(), focused) {
			return w
		}
	}
	return nil
}
