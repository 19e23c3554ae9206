// SPDX-License-Identifier: MPL-2.0

package widget

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/a11yterm/a11yterm/internal/dom"
	"github.com/a11yterm/a11yterm/internal/focus"
)

const defaultNavLabel = "Main navigation"

type (
	// NavItem is a navigation entry. An item with Items is a disclosure
	// button for a submenu; any other item is a link.
	NavItem struct {
		Label string
		Href  string
		Items []NavItem
	}

	// NavigationOptions configures a Navigation.
	NavigationOptions struct {
		// AriaLabel names the landmark. Defaults to "Main navigation".
		AriaLabel string
		Items     []NavItem
		// OnNavigate is called when a link is activated.
		OnNavigate func(item NavItem)
		Logger     *log.Logger
	}

	// Navigation is a horizontal navigation landmark with optional dropdown
	// submenus. Left and Right move between top-level entries.
	Navigation struct {
		id    focus.Handle
		opts  NavigationOptions
		doc   *dom.Document
		top   []*navEntry
	}

	navEntry struct {
		item   NavItem
		node   *dom.Node
		menu   *dom.Node
		sub    []*dom.Node
		drop   *focus.Dropdown
		offset int
	}
)

// NewNavigation creates an unmounted navigation bar.
func NewNavigation(id focus.Handle, opts NavigationOptions) *Navigation {
	if opts.AriaLabel == "" {
		opts.AriaLabel = defaultNavLabel
	}
	return &Navigation{id: id, opts: opts}
}

// Mount implements Widget.
func (nv *Navigation) Mount(doc *dom.Document, parent focus.Handle) error {
	if nv.doc != nil {
		return ErrAlreadyMounted
	}
	root := dom.NewNode(nv.id, dom.RoleNavigation, nv.opts.AriaLabel)
	root.SetAttr(dom.AttrLabel, nv.opts.AriaLabel)
	if err := doc.Append(parent, root); err != nil {
		return err
	}
	nv.doc = doc

	for i, item := range nv.opts.Items {
		e := &navEntry{item: item}
		id := nv.id + focus.Handle("-"+itoa(i))
		if len(item.Items) == 0 {
			e.node = dom.NewFocusable(id, dom.RoleLink, item.Label)
			if err := doc.Append(nv.id, e.node); err != nil {
				return err
			}
			nv.top = append(nv.top, e)
			continue
		}

		e.node = dom.NewFocusable(id, dom.RoleButton, item.Label)
		e.node.SetAttr(dom.AttrHasPopup, "true")
		e.node.SetBoolAttr(dom.AttrExpanded, false)
		e.menu = dom.NewNode(id+"-menu", dom.RoleMenu, item.Label)
		e.menu.SetHidden(true)
		if err := doc.Append(nv.id, e.node); err != nil {
			return err
		}
		if err := doc.Append(nv.id, e.menu); err != nil {
			return err
		}
		for j, sub := range item.Items {
			sn := dom.NewFocusable(e.menu.ID()+focus.Handle("-"+itoa(j)), dom.RoleMenuItem, sub.Label)
			if err := doc.Append(e.menu.ID(), sn); err != nil {
				return err
			}
			e.sub = append(e.sub, sn)
		}

		opts := []focus.Option{focus.WithOnOpenChange(nv.openChanged(e))}
		if nv.opts.Logger != nil {
			opts = append(opts, focus.WithLogger(nv.opts.Logger))
		}
		e.drop = focus.NewDropdown(doc, e.node.ID(), e.menu.ID(), opts...)
		nv.top = append(nv.top, e)
	}
	return nil
}

// Root implements Widget.
func (nv *Navigation) Root() focus.Handle { return nv.id }

// OpenMenu returns the index of the open submenu, or -1.
func (nv *Navigation) OpenMenu() int {
	for i, e := range nv.top {
		if e.drop != nil && e.drop.IsOpen() {
			return i
		}
	}
	return -1
}

// HandleKey implements Widget.
func (nv *Navigation) HandleKey(msg tea.KeyMsg) focus.Result {
	if nv.doc == nil {
		return focus.Ignored
	}
	cur := nv.doc.CurrentFocus()
	ev := focus.NewKeyEvent(focus.ParseKey(msg.String()))

	for i, e := range nv.top {
		if cur == e.node.ID() {
			return nv.handleTopKey(i, e, ev)
		}
		if e.drop == nil {
			continue
		}
		if idx := e.drop.ItemIndex(cur); idx >= 0 {
			if ev.Key == focus.KeyEnter || ev.Key == focus.KeySpace {
				nv.navigate(e.item.Items[idx])
				e.drop.Close(focus.CloseKeyboard)
				return focus.Handled
			}
			return e.drop.HandleItemKeyDown(ev, idx)
		}
	}
	return focus.Ignored
}

func (nv *Navigation) handleTopKey(i int, e *navEntry, ev *focus.KeyEvent) focus.Result {
	if e.drop != nil {
		if e.drop.HandleAnchorKeyDown(ev) == focus.Handled {
			return focus.Handled
		}
	} else if ev.Key == focus.KeyEnter {
		nv.navigate(e.item)
		return focus.Handled
	}

	switch ev.Key {
	case focus.KeyArrowRight:
		nv.moveTop(i, 1)
		return focus.Handled
	case focus.KeyArrowLeft:
		nv.moveTop(i, -1)
		return focus.Handled
	}
	return focus.Ignored
}

// moveTop moves focus between top-level entries, wrapping, and closes any
// open submenu on the way.
func (nv *Navigation) moveTop(from, delta int) {
	n := len(nv.top)
	to := ((from+delta)%n + n) % n
	nv.closeAll(nil)
	_ = nv.doc.Focus(nv.top[to].node.ID())
}

// HandlePointer implements Widget.
func (nv *Navigation) HandlePointer(ev focus.PointerEvent) focus.Result {
	res := focus.Ignored
	for _, e := range nv.top {
		if ev.Target == e.node.ID() {
			if e.drop != nil {
				e.drop.Toggle()
			} else {
				nv.navigate(e.item)
			}
			res = focus.Handled
			continue
		}
		if e.drop == nil {
			continue
		}
		if idx := e.drop.ItemIndex(ev.Target); idx >= 0 {
			nv.navigate(e.item.Items[idx])
			e.drop.Close(focus.CloseProgrammatic)
			res = focus.Handled
			continue
		}
		if e.drop.HandlePointerDown(ev) == focus.Handled {
			res = focus.Handled
		}
	}
	return res
}

// Render implements Widget.
func (nv *Navigation) Render(c *Canvas) {
	focused := focus.NoHandle
	if nv.doc != nil {
		focused = nv.doc.CurrentFocus()
	}
	bar := lipgloss.NewStyle().Foreground(ColorMuted).Render("≡ " + nv.opts.AriaLabel)
	c.Write(focus.NoHandle, bar)

	segs := make([]Segment, len(nv.top))
	x := 0
	for i, e := range nv.top {
		text := e.item.Label
		if e.drop != nil {
			text += " ▾"
			if e.drop.IsOpen() {
				text = e.item.Label + " ▴"
			}
		}
		text = " " + text + " "
		if e.node.ID() == focused {
			text = focusStyle.Render(text)
		}
		e.offset = x
		x += lipgloss.Width(text) + 1
		segs[i] = Segment{ID: e.node.ID(), Text: text}
	}
	c.Row(" ", segs...)

	for _, e := range nv.top {
		if e.drop == nil || !e.drop.IsOpen() {
			continue
		}
		lines := make([]string, len(e.sub))
		for j, sn := range e.sub {
			lines[j] = " " + e.item.Items[j].Label + " "
			if sn.ID() == focused {
				lines[j] = focusStyle.Render(lines[j])
			}
		}
		y := c.Height() + menuStyle.GetBorderTopSize()
		for j, sn := range e.sub {
			c.addRegion(sn.ID(), e.offset+menuStyle.GetBorderLeftSize(), y+j, lipgloss.Width(lines[j]), 1)
		}
		c.WriteAt(focus.NoHandle, e.offset, menuStyle.Render(strings.Join(lines, "\n")))
	}
}

func (nv *Navigation) openChanged(e *navEntry) func(bool) {
	return func(open bool) {
		e.node.SetBoolAttr(dom.AttrExpanded, open)
		e.menu.SetHidden(!open)
		if open {
			nv.closeAll(e)
		}
	}
}

// closeAll closes every open submenu except keep.
func (nv *Navigation) closeAll(keep *navEntry) {
	for _, e := range nv.top {
		if e != keep && e.drop != nil {
			e.drop.Close(focus.CloseProgrammatic)
		}
	}
}

func (nv *Navigation) navigate(item NavItem) {
	if nv.opts.OnNavigate != nil {
		nv.opts.OnNavigate(item)
	}
}
