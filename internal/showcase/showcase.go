// SPDX-License-Identifier: MPL-2.0

package showcase

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/a11yterm/a11yterm/internal/catalog"
	"github.com/a11yterm/a11yterm/internal/dom"
	"github.com/a11yterm/a11yterm/internal/focus"
)

const (
	// RegionSidebar is the component list.
	RegionSidebar Region = iota
	// RegionDemo is the live demo of the selected component.
	RegionDemo
	// RegionPage is the scrollable documentation page.
	RegionPage
)

const (
	sidebarWidth = 26
	titleHeight  = 1

	// copiedDuration is how long the copy button reads "Copied!".
	copiedDuration = 2 * time.Second

	sidebarID    focus.Handle = "components"
	copyButtonID focus.Handle = "copy-code"
)

// ErrEmptyCatalog is returned by New for a catalog without components.
var ErrEmptyCatalog = errors.New("catalog has no components")

type (
	// Region is one of the three keyboard focus regions of the screen.
	Region int

	// Options configures a Model.
	Options struct {
		// StartComponent is the id shown first. Empty selects the first component.
		StartComponent string
		// Mouse enables click and wheel handling.
		Mouse bool
		// CodeStyle is the glamour style of the code sample. Empty or "auto"
		// picks dark or light from the terminal background.
		CodeStyle string
		// Width and Height set the initial size; otherwise the first
		// tea.WindowSizeMsg does.
		Width, Height int
		// Clipboard writes the copied code. Defaults to the system clipboard.
		Clipboard func(text string) error
		Logger    *log.Logger
	}

	// Model is the Bubble Tea model of the showcase.
	Model struct {
		catalog   *catalog.Catalog
		opts      Options
		codeStyle string
		logger    *log.Logger

		keys     keyMap
		help     help.Model
		viewport viewport.Model
		ready    bool
		width    int
		height   int

		region  Region
		sidebar *dom.Document
		hits    *dom.HitMap
		active  int
		demo    *demo
		status  string

		copied  bool
		copySeq int

		sidebarView string
		code        renderedCode
	}

	renderedCode struct {
		id    string
		width int
		out   string
	}

	copyResetMsg struct {
		seq int
	}
)

// String returns the region name.
func (r Region) String() string {
	switch r {
	case RegionSidebar:
		return "sidebar"
	case RegionDemo:
		return "demo"
	case RegionPage:
		return "page"
	default:
		return fmt.Sprintf("unknown(%d)", int(r))
	}
}

// New creates a showcase over cat. An unknown StartComponent returns a
// *catalog.ComponentNotFoundError.
func New(cat *catalog.Catalog, opts Options) (*Model, error) {
	if cat == nil || len(cat.Components) == 0 {
		return nil, ErrEmptyCatalog
	}
	if opts.Clipboard == nil {
		opts.Clipboard = clipboard.WriteAll
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	start := 0
	if opts.StartComponent != "" {
		if _, err := cat.Find(opts.StartComponent); err != nil {
			return nil, err
		}
		start = indexOf(cat, opts.StartComponent)
	}

	m := &Model{
		catalog:   cat,
		opts:      opts,
		codeStyle: resolveCodeStyle(opts.CodeStyle),
		logger:    logger,
		keys:      defaultKeyMap(),
		help:      help.New(),
		sidebar:   newSidebar(cat, logger),
		hits:      dom.NewHitMap(),
		active:    -1,
	}

	if err := m.open(start); err != nil {
		return nil, err
	}
	if opts.Width > 0 && opts.Height > 0 {
		m.resize(opts.Width, opts.Height)
	}
	return m, nil
}

// ProgramOptions returns the tea options the model expects to run with.
func (m *Model) ProgramOptions() []tea.ProgramOption {
	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if m.opts.Mouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	return opts
}

// Active returns the id of the component on screen.
func (m *Model) Active() string { return m.catalog.Components[m.active].ID }

// Region returns the region holding keyboard focus.
func (m *Model) Region() Region { return m.region }

// Status returns the last status line message.
func (m *Model) Status() string { return m.status }

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case copyResetMsg:
		// A tick from an earlier copy must not revert a newer one.
		if msg.seq == m.copySeq && m.copied {
			m.copied = false
			m.refresh()
		}
	case CatalogReloadedMsg:
		m.reload(msg.Catalog)
	case CatalogReloadFailedMsg:
		m.logger.Warn("catalog reload failed", "error", msg.Err)
		first, _, _ := strings.Cut(msg.Err.Error(), "\n")
		m.status = "Catalog reload failed: " + first
		m.refresh()
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	case tea.MouseMsg:
		return m, m.handleMouse(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, m.keys.ForceQuit) {
		return tea.Quit
	}

	if m.region == RegionDemo {
		// An open dialog keeps focus inside the demo until it closes.
		if !m.demo.capturing() {
			switch {
			case key.Matches(msg, m.keys.NextRegion):
				m.cycle(1)
				return nil
			case key.Matches(msg, m.keys.PrevRegion):
				m.cycle(-1)
				return nil
			}
		}
		m.demo.surface.HandleKey(msg)
		m.refresh()
		return nil
	}

	switch {
	case key.Matches(msg, m.keys.NextRegion):
		m.cycle(1)
	case key.Matches(msg, m.keys.PrevRegion):
		m.cycle(-1)
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.layout()
	case m.region == RegionSidebar:
		m.handleSidebarKey(msg)
	default:
		return m.handlePageKey(msg)
	}
	return nil
}

func (m *Model) handleSidebarKey(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.sidebar.FocusPrevious()
	case key.Matches(msg, m.keys.Down):
		m.sidebar.FocusNext()
	case key.Matches(msg, m.keys.Select):
		if i := m.sidebarIndex(m.sidebar.CurrentFocus()); i >= 0 {
			m.openOrReport(i)
		}
	default:
		return
	}
	m.refresh()
}

func (m *Model) handlePageKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, m.keys.Copy) {
		return m.copyCode()
	}
	if m.scrollLocked() {
		return nil
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	m.refresh()
	return cmd
}

// scrollLocked reports whether an open dialog holds the page still.
func (m *Model) scrollLocked() bool { return m.demo.surface.Document().ScrollSuppressed() }

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if !m.opts.Mouse || !m.ready || msg.Action != tea.MouseActionPress {
		return nil
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp, tea.MouseButtonWheelDown:
		if m.scrollLocked() {
			return nil
		}
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		m.refresh()
		return cmd
	case tea.MouseButtonLeft:
	default:
		return nil
	}

	// While a dialog is open only the demo receives presses.
	if !m.demo.capturing() {
		target := m.hits.Target(msg.X, msg.Y)
		if target == copyButtonID {
			m.region = RegionPage
			return m.copyCode()
		}
		if i := m.sidebarIndex(target); i >= 0 {
			m.region = RegionSidebar
			m.openOrReport(i)
			m.layout()
			return nil
		}
	}

	if !m.inViewport(msg.X, msg.Y) {
		return nil
	}
	m.demo.surface.HandleClick(msg.X, msg.Y)
	if m.demo.surface.Document().CurrentFocus().IsNone() {
		m.region = RegionPage
	} else {
		m.region = RegionDemo
	}
	m.layout()
	return nil
}

// cycle moves keyboard focus to the next region, skipping an empty demo.
func (m *Model) cycle(delta int) {
	const regions = 3
	next := Region((int(m.region) + delta + regions) % regions)
	if next == RegionDemo && m.demo.empty() {
		next = Region((int(next) + delta + regions) % regions)
	}
	m.region = next
	if next == RegionDemo {
		m.demo.focusFirst()
	}
	m.layout()
}

// open shows component i with a fresh demo.
func (m *Model) open(i int) error {
	c := &m.catalog.Components[i]
	d, err := newDemo(c.ID, m.logger)
	if err != nil {
		return err
	}

	if m.active >= 0 {
		if n := m.sidebar.Node(entryID(m.Active())); n != nil {
			n.SetAttr(dom.AttrCurrent, "")
		}
	}
	m.sidebar.Node(entryID(c.ID)).SetAttr(dom.AttrCurrent, "page")
	_ = m.sidebar.Focus(entryID(c.ID)) // Entries are always focusable

	m.active = i
	m.demo = d
	m.status = ""
	m.copied = false
	m.copySeq++
	if m.ready {
		m.viewport.GotoTop()
	}
	m.logger.Debug("component opened", "component", c.ID)
	m.refresh()
	return nil
}

func (m *Model) openOrReport(i int) {
	if err := m.open(i); err != nil {
		m.logger.Error("failed to open component", "error", err)
		m.status = "Could not open component: " + err.Error()
	}
}

func (m *Model) copyCode() tea.Cmd {
	c := &m.catalog.Components[m.active]
	if err := m.opts.Clipboard(c.Example); err != nil {
		m.logger.Warn("clipboard write failed", "error", err)
		m.status = "Copy failed: clipboard unavailable"
		m.refresh()
		return nil
	}

	m.copySeq++
	m.copied = true
	m.status = "Code copied to clipboard"
	m.refresh()

	seq := m.copySeq
	return tea.Tick(copiedDuration, func(time.Time) tea.Msg {
		return copyResetMsg{seq: seq}
	})
}

func (m *Model) resize(width, height int) {
	m.width, m.height = width, height
	if !m.ready {
		m.viewport = viewport.New(0, 0)
		m.ready = true
	}
	m.layout()
}

// layout sizes the viewport around the title and the footer, whose height
// depends on the help mode.
func (m *Model) layout() {
	if !m.ready {
		return
	}
	m.help.Width = m.width
	footer := lipgloss.Height(m.help.View(m.helpKeys())) + 1
	m.viewport.Width = max(m.width-sidebarWidth, 1)
	m.viewport.Height = max(m.height-titleHeight-footer, 1)
	m.refresh()
}

// refresh re-renders the sidebar and the page and rebuilds every hit region.
func (m *Model) refresh() {
	if !m.ready {
		return
	}
	m.hits.Clear()
	m.sidebarView = m.renderSidebar()

	offset := m.viewport.YOffset
	m.viewport.SetContent(m.renderPage(offset))
	if m.viewport.YOffset != offset {
		// The content shrank below the old offset; regions must follow.
		m.hits.Clear()
		m.sidebarView = m.renderSidebar()
		m.viewport.SetContent(m.renderPage(m.viewport.YOffset))
	}
}

func (m *Model) helpKeys() regionHelp {
	return regionHelp{keys: m.keys, region: m.region}
}

func (m *Model) inViewport(x, y int) bool {
	return x >= sidebarWidth && x < sidebarWidth+m.viewport.Width &&
		y >= titleHeight && y < titleHeight+m.viewport.Height
}

func (m *Model) sidebarIndex(h focus.Handle) int {
	id, ok := strings.CutPrefix(string(h), "nav-")
	if !ok {
		return -1
	}
	return indexOf(m.catalog, id)
}

func entryID(componentID string) focus.Handle {
	return focus.Handle("nav-" + componentID)
}

func indexOf(cat *catalog.Catalog, id string) int {
	for i := range cat.Components {
		if cat.Components[i].ID == id {
			return i
		}
	}
	return -1
}

// resolveCodeStyle turns "auto" into a concrete glamour style up front, so the
// terminal is not queried for its background while the program runs.
func resolveCodeStyle(style string) string {
	switch style {
	case "", catalog.StyleAuto:
		if lipgloss.HasDarkBackground() {
			return catalog.StyleDark
		}
		return catalog.StyleLight
	default:
		return style
	}
}
