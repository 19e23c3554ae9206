// SPDX-License-Identifier: MPL-2.0

package showcase

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/a11yterm/a11yterm/internal/catalog"
	"github.com/a11yterm/a11yterm/internal/dom"
	"github.com/a11yterm/a11yterm/internal/focus"
)

var errNoClipboard = errors.New("no clipboard")

func key(t tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: t} }

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func click(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

// newModel builds a 100x40 showcase whose clipboard writes are recorded.
func newModel(t *testing.T, opts Options) (*Model, *[]string) {
	t.Helper()

	cat, err := catalog.Load()
	if err != nil {
		t.Fatalf("catalog.Load() error = %v", err)
	}
	var copied []string
	if opts.Clipboard == nil {
		opts.Clipboard = func(s string) error {
			copied = append(copied, s)
			return nil
		}
	}
	opts.CodeStyle = catalog.StyleNoTTY
	opts.Width, opts.Height = 100, 40

	m, err := New(cat, opts)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return m, &copied
}

func send(m *Model, msg tea.Msg) tea.Cmd {
	_, cmd := m.Update(msg)
	return cmd
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestNew(t *testing.T) {
	t.Parallel()

	m, _ := newModel(t, Options{StartComponent: "modal"})
	if got := m.Active(); got != "modal" {
		t.Errorf("Active() = %q, want modal", got)
	}
	if m.Region() != RegionSidebar {
		t.Errorf("Region() = %s, want sidebar", m.Region())
	}
	if v, _ := m.sidebar.Node(entryID("modal")).Attr(dom.AttrCurrent); v != "page" {
		t.Errorf("aria-current on active entry = %q, want page", v)
	}
	if _, ok := m.sidebar.Node(entryID("button")).Attr(dom.AttrCurrent); ok {
		t.Error("inactive entry carries aria-current")
	}
	if got := m.sidebar.CurrentFocus(); got != entryID("modal") {
		t.Errorf("sidebar focus = %q", got)
	}
	if !strings.Contains(m.View(), "Components") {
		t.Error("View() is missing the sidebar")
	}
}

func TestNew_Errors(t *testing.T) {
	t.Parallel()

	cat, err := catalog.Load()
	if err != nil {
		t.Fatal(err)
	}

	_, err = New(cat, Options{StartComponent: "carousel", CodeStyle: catalog.StyleNoTTY})
	if !errors.Is(err, catalog.ErrComponentNotFound) {
		t.Errorf("unknown start error = %v, want ErrComponentNotFound", err)
	}
	if _, err := New(nil, Options{}); !errors.Is(err, ErrEmptyCatalog) {
		t.Errorf("nil catalog error = %v, want ErrEmptyCatalog", err)
	}
	if _, err := New(&catalog.Catalog{}, Options{}); !errors.Is(err, ErrEmptyCatalog) {
		t.Errorf("empty catalog error = %v, want ErrEmptyCatalog", err)
	}
}

func TestNew_NotReadyUntilSized(t *testing.T) {
	t.Parallel()

	cat, err := catalog.Load()
	if err != nil {
		t.Fatal(err)
	}
	m, err := New(cat, Options{CodeStyle: catalog.StyleNoTTY})
	if err != nil {
		t.Fatal(err)
	}
	if got := m.View(); got != "Loading…" {
		t.Errorf("View() before size = %q", got)
	}
	send(m, tea.WindowSizeMsg{Width: 90, Height: 30})
	if !strings.Contains(m.View(), "Focus: sidebar") {
		t.Error("View() after size is missing the title bar")
	}
}

func TestSidebar_ArrowsAndEnter(t *testing.T) {
	t.Parallel()

	m, _ := newModel(t, Options{})
	cat := m.catalog

	send(m, key(tea.KeyDown))
	send(m, key(tea.KeyDown))
	if got := m.sidebar.CurrentFocus(); got != entryID(cat.Components[2].ID) {
		t.Fatalf("sidebar focus = %q", got)
	}
	if m.Active() != cat.Components[0].ID {
		t.Error("moving the cursor must not open the component")
	}

	send(m, key(tea.KeyEnter))
	if got := m.Active(); got != cat.Components[2].ID {
		t.Errorf("Active() = %q, want %q", got, cat.Components[2].ID)
	}
	if _, ok := m.sidebar.Node(entryID(cat.Components[0].ID)).Attr(dom.AttrCurrent); ok {
		t.Error("previous entry still carries aria-current")
	}

	send(m, key(tea.KeyUp))
	if got := m.sidebar.CurrentFocus(); got != entryID(cat.Components[1].ID) {
		t.Errorf("Up focus = %q", got)
	}
}

func TestRegions_Cycle(t *testing.T) {
	t.Parallel()

	m, _ := newModel(t, Options{})

	want := []Region{RegionDemo, RegionPage, RegionSidebar}
	for i, w := range want {
		send(m, key(tea.KeyCtrlN))
		if m.Region() != w {
			t.Fatalf("ctrl+n #%d region = %s, want %s", i, m.Region(), w)
		}
	}
	send(m, key(tea.KeyCtrlP))
	if m.Region() != RegionPage {
		t.Errorf("ctrl+p region = %s, want page", m.Region())
	}
	if !strings.Contains(m.View(), "Focus: page") {
		t.Error("title bar does not name the focused region")
	}
}

func TestRegions_SkipEmptyDemo(t *testing.T) {
	t.Parallel()

	cat := &catalog.Catalog{Components: []catalog.Component{{
		ID:       "tooltip",
		Name:     "Tooltip",
		Keyboard: []catalog.KeyBinding{{Key: "Escape", Action: "Hides the tooltip"}},
	}}}
	m, err := New(cat, Options{CodeStyle: catalog.StyleNoTTY, Width: 80, Height: 24})
	if err != nil {
		t.Fatal(err)
	}

	send(m, key(tea.KeyCtrlN))
	if m.Region() != RegionPage {
		t.Errorf("region = %s, want page", m.Region())
	}
	if !strings.Contains(m.renderPage(0), "No live demo") {
		t.Error("page does not say there is no demo")
	}
	if !strings.Contains(m.renderPage(0), "No example.") {
		t.Error("page does not say there is no example")
	}
}

func TestDemo_ReceivesKeys(t *testing.T) {
	t.Parallel()

	m, _ := newModel(t, Options{StartComponent: "button"})
	send(m, key(tea.KeyCtrlN))

	doc := m.demo.surface.Document()
	if got := doc.CurrentFocus(); got != "save" {
		t.Fatalf("entering the demo focused %q, want save", got)
	}
	if !strings.Contains(m.statusLine(), "Save changes") {
		t.Errorf("statusLine() = %q, want the focused button announced", m.statusLine())
	}

	send(m, key(tea.KeyEnter))
	if m.demo.status != "Saved" {
		t.Errorf("demo status = %q, want Saved", m.demo.status)
	}

	send(m, key(tea.KeyTab))
	if got := doc.CurrentFocus(); got != "cancel" {
		t.Errorf("Tab focus = %q, want cancel", got)
	}

	if isQuit(send(m, runes("q"))) {
		t.Error("q inside the demo must not quit")
	}
	if !isQuit(send(m, key(tea.KeyCtrlC))) {
		t.Error("ctrl+c inside the demo should quit")
	}
}

func TestDemo_OpenDialogHoldsFocus(t *testing.T) {
	t.Parallel()

	m, _ := newModel(t, Options{StartComponent: "modal"})
	send(m, key(tea.KeyCtrlN))
	send(m, key(tea.KeyEnter))
	if !m.demo.capturing() {
		t.Fatal("Enter on the trigger did not open the dialog")
	}

	send(m, key(tea.KeyCtrlN))
	if m.Region() != RegionDemo {
		t.Errorf("ctrl+n escaped an open dialog, region = %s", m.Region())
	}

	send(m, key(tea.KeyEscape))
	if m.demo.capturing() {
		t.Fatal("Escape did not close the dialog")
	}
	if got := m.demo.surface.Document().CurrentFocus(); got != "open-dialog" {
		t.Errorf("focus after close = %q, want open-dialog", got)
	}
	if m.demo.status != "Dialog closed" {
		t.Errorf("demo status = %q", m.demo.status)
	}

	send(m, key(tea.KeyCtrlN))
	if m.Region() != RegionPage {
		t.Errorf("region after close = %s, want page", m.Region())
	}
}

func TestDemo_OpenDialogLocksPageScroll(t *testing.T) {
	t.Parallel()

	m, _ := newModel(t, Options{StartComponent: "modal", Mouse: true})
	send(m, tea.WindowSizeMsg{Width: 100, Height: 14})
	wheel := tea.MouseMsg{X: 40, Y: 8, Action: tea.MouseActionPress, Button: tea.MouseButtonWheelDown}

	send(m, wheel)
	if m.viewport.YOffset == 0 {
		t.Fatal("page did not scroll with no dialog open")
	}
	m.viewport.GotoTop()

	send(m, key(tea.KeyCtrlN))
	send(m, key(tea.KeyEnter))
	if !m.demo.capturing() {
		t.Fatal("Enter on the trigger did not open the dialog")
	}
	send(m, wheel)
	if got := m.viewport.YOffset; got != 0 {
		t.Errorf("wheel scrolled the page behind an open dialog, YOffset = %d", got)
	}

	send(m, key(tea.KeyEscape))
	send(m, wheel)
	if m.viewport.YOffset == 0 {
		t.Error("page scroll stayed locked after the dialog closed")
	}
}

func TestCopy_RevertsOnlyOnLatestTick(t *testing.T) {
	t.Parallel()

	m, copied := newModel(t, Options{StartComponent: "checkbox"})
	send(m, key(tea.KeyCtrlP))
	if m.Region() != RegionPage {
		t.Fatalf("region = %s, want page", m.Region())
	}

	if cmd := send(m, runes("c")); cmd == nil {
		t.Fatal("copy returned no revert tick")
	}
	first := m.copySeq
	if cmd := send(m, runes("c")); cmd == nil {
		t.Fatal("second copy returned no revert tick")
	}
	second := m.copySeq

	want, _ := m.catalog.Find("checkbox")
	if len(*copied) != 2 || (*copied)[0] != want.Example {
		t.Fatalf("clipboard writes = %d, want the example twice", len(*copied))
	}
	if !m.copied || !strings.Contains(m.renderPage(0), copiedLabel) {
		t.Fatal("copy button does not read Copied!")
	}

	send(m, copyResetMsg{seq: first})
	if !m.copied {
		t.Error("a stale tick reverted the newer copy")
	}
	send(m, copyResetMsg{seq: second})
	if m.copied {
		t.Error("the latest tick did not revert the label")
	}
	if !strings.Contains(m.renderPage(0), copyLabel) {
		t.Error("copy button label not restored")
	}
}

func TestCopy_SwitchingComponentResets(t *testing.T) {
	t.Parallel()

	m, _ := newModel(t, Options{})
	send(m, key(tea.KeyCtrlP))
	send(m, runes("c"))
	seq := m.copySeq

	send(m, key(tea.KeyCtrlN))
	send(m, key(tea.KeyDown))
	send(m, key(tea.KeyEnter))
	if m.copied {
		t.Error("copied state survived a component switch")
	}
	send(m, copyResetMsg{seq: seq})
	if m.copied {
		t.Error("stale tick changed state")
	}
}

func TestCopy_ClipboardFailure(t *testing.T) {
	t.Parallel()

	m, _ := newModel(t, Options{Clipboard: func(string) error { return errNoClipboard }})
	send(m, key(tea.KeyCtrlP))

	if cmd := send(m, runes("c")); cmd != nil {
		t.Error("failed copy should not schedule a revert")
	}
	if m.copied {
		t.Error("failed copy flipped the label")
	}
	if !strings.Contains(m.Status(), "Copy failed") {
		t.Errorf("Status() = %q", m.Status())
	}
}

func TestQuit(t *testing.T) {
	t.Parallel()

	m, _ := newModel(t, Options{})
	if !isQuit(send(m, runes("q"))) {
		t.Error("q in the sidebar should quit")
	}
}

func TestHelp_Toggle(t *testing.T) {
	t.Parallel()

	m, _ := newModel(t, Options{})
	before := m.viewport.Height
	send(m, runes("?"))
	if !m.help.ShowAll {
		t.Fatal("? did not expand the help")
	}
	if m.viewport.Height >= before {
		t.Errorf("viewport height %d did not shrink from %d", m.viewport.Height, before)
	}
	send(m, runes("?"))
	if m.viewport.Height != before {
		t.Errorf("viewport height = %d, want %d", m.viewport.Height, before)
	}
}

func TestMouse_SidebarClick(t *testing.T) {
	t.Parallel()

	m, _ := newModel(t, Options{Mouse: true})
	target := m.catalog.Components[3]
	send(m, key(tea.KeyCtrlP))

	send(m, click(2, titleHeight+1+3))
	if m.Active() != target.ID {
		t.Errorf("Active() = %q, want %q", m.Active(), target.ID)
	}
	if m.Region() != RegionSidebar {
		t.Errorf("region = %s, want sidebar", m.Region())
	}
}

func TestMouse_Disabled(t *testing.T) {
	t.Parallel()

	m, _ := newModel(t, Options{Mouse: false})
	send(m, click(2, titleHeight+1+3))
	if m.Active() != m.catalog.Components[0].ID {
		t.Errorf("click with mouse disabled opened %q", m.Active())
	}
}

func TestMouse_DemoClick(t *testing.T) {
	t.Parallel()

	m, _ := newModel(t, Options{Mouse: true, StartComponent: "button"})

	var save *dom.Region
	for _, r := range m.demo.surface.HitMap().Regions() {
		if r.ID == "save" {
			save = &r
			break
		}
	}
	if save == nil {
		t.Fatal("save button has no region")
	}

	send(m, click(save.Rect.X, save.Rect.Y))
	if m.Region() != RegionDemo {
		t.Errorf("region = %s, want demo", m.Region())
	}
	if got := m.demo.surface.Document().CurrentFocus(); got != focus.Handle("save") {
		t.Errorf("focus = %q, want save", got)
	}
	if m.demo.status != "Saved" {
		t.Errorf("demo status = %q, want Saved", m.demo.status)
	}
}

func TestMouse_CopyButton(t *testing.T) {
	t.Parallel()

	m, copied := newModel(t, Options{Mouse: true, StartComponent: "alert"})

	// Scroll until the copy button is on screen.
	for range 200 {
		if regionFor(m, copyButtonID) != nil {
			break
		}
		send(m, tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonWheelDown})
	}
	r := regionFor(m, copyButtonID)
	if r == nil {
		t.Fatal("copy button never became visible")
	}

	if cmd := send(m, click(r.Rect.X, r.Rect.Y)); cmd == nil {
		t.Fatal("clicking copy returned no tick")
	}
	if len(*copied) != 1 {
		t.Errorf("clipboard writes = %d, want 1", len(*copied))
	}
	if m.Region() != RegionPage {
		t.Errorf("region = %s, want page", m.Region())
	}
}

func regionFor(m *Model, id focus.Handle) *dom.Region {
	for _, r := range m.hits.Regions() {
		if r.ID == id {
			return &r
		}
	}
	return nil
}

func TestDemos_EveryComponent(t *testing.T) {
	t.Parallel()

	cat, err := catalog.Load()
	if err != nil {
		t.Fatal(err)
	}
	for _, id := range cat.IDs() {
		d, err := newDemo(id, nil)
		if err != nil {
			t.Errorf("newDemo(%q) error = %v", id, err)
			continue
		}
		if d.empty() {
			t.Errorf("newDemo(%q) has no widgets", id)
		}
		if out := d.render(0, 0, 80); out == "" {
			t.Errorf("demo %q renders nothing", id)
		}
	}

	d, err := newDemo("tooltip", nil)
	if err != nil || !d.empty() {
		t.Errorf("unknown id: demo empty = %v, err = %v", d != nil && d.empty(), err)
	}
}

func TestRegion_String(t *testing.T) {
	t.Parallel()

	tests := map[Region]string{
		RegionSidebar: "sidebar",
		RegionDemo:    "demo",
		RegionPage:    "page",
		Region(9):     "unknown(9)",
	}
	for r, want := range tests {
		if got := r.String(); got != want {
			t.Errorf("Region(%d).String() = %q, want %q", int(r), got, want)
		}
	}
}

func TestProgramOptions(t *testing.T) {
	t.Parallel()

	withMouse, _ := newModel(t, Options{Mouse: true})
	without, _ := newModel(t, Options{})
	if len(withMouse.ProgramOptions()) != 2 || len(without.ProgramOptions()) != 1 {
		t.Errorf("ProgramOptions() lengths = %d, %d", len(withMouse.ProgramOptions()), len(without.ProgramOptions()))
	}
}
