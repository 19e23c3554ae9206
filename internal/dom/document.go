// SPDX-License-Identifier: MPL-2.0

package dom

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/a11yterm/a11yterm/internal/focus"
)

// RootID is the handle of every document's root node.
const RootID focus.Handle = "root"

var _ focus.ContainmentHost = (*Document)(nil)

type (
	// Document is a tree of nodes with a single focused element.
	Document struct {
		root        *Node
		index       map[focus.Handle]*Node
		focused     focus.Handle
		scrollLocks int
		logger      *log.Logger
	}

	// Option configures a Document.
	Option func(*Document)
)

// WithLogger sets the document logger.
func WithLogger(l *log.Logger) Option {
	return func(d *Document) {
		if l != nil {
			d.logger = l
		}
	}
}

// NewDocument creates a document holding only the root node.
func NewDocument(opts ...Option) *Document {
	d := &Document{
		index:  make(map[focus.Handle]*Node),
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.root = NewNode(RootID, RoleGeneric, "")
	d.root.doc = d
	d.index[RootID] = d.root
	return d
}

// Root returns the root node.
func (d *Document) Root() *Node { return d.root }

// Node returns the attached node for h, or nil.
func (d *Document) Node(h focus.Handle) *Node { return d.index[h] }

// Attached reports whether h names an attached node.
func (d *Document) Attached(h focus.Handle) bool {
	_, ok := d.index[h]
	return ok
}

// Append attaches n (and its subtree) as the last child of parent.
func (d *Document) Append(parent focus.Handle, n *Node) error {
	p, ok := d.index[parent]
	if !ok {
		return &NodeError{Op: "append", ID: parent, Err: ErrUnknownParent}
	}
	var dup focus.Handle
	walk(n, func(x *Node) bool {
		if _, exists := d.index[x.id]; exists && dup.IsNone() {
			dup = x.id
		}
		return true
	})
	if !dup.IsNone() {
		return &NodeError{Op: "append", ID: dup, Err: ErrDuplicateID}
	}

	n.parent = p
	p.children = append(p.children, n)
	walk(n, func(x *Node) bool {
		x.doc = d
		d.index[x.id] = x
		return true
	})
	return nil
}

// MustAppend is Append for widget construction, where a failure is a
// programming error.
func (d *Document) MustAppend(parent focus.Handle, n *Node) *Node {
	if err := d.Append(parent, n); err != nil {
		panic(err)
	}
	return n
}

// Remove detaches h and its subtree. Focus inside the subtree falls back to
// none. Removing the root or an unknown handle is a no-op.
func (d *Document) Remove(h focus.Handle) {
	n, ok := d.index[h]
	if !ok || n == d.root {
		return
	}
	if !d.focused.IsNone() && d.Contains(h, d.focused) {
		d.focused = focus.NoHandle
	}
	p := n.parent
	for i, c := range p.children {
		if c == n {
			p.children = append(p.children[:i], p.children[i+1:]...)
			break
		}
	}
	n.parent = nil
	walk(n, func(x *Node) bool {
		x.doc = nil
		delete(d.index, x.id)
		return true
	})
}

// Contains reports whether h is ancestor itself or one of its descendants.
func (d *Document) Contains(ancestor, h focus.Handle) bool {
	a, ok := d.index[ancestor]
	if !ok {
		return false
	}
	for n := d.index[h]; n != nil; n = n.parent {
		if n == a {
			return true
		}
	}
	return false
}

// EnumerateFocusable implements focus.Host. It returns the tabbable
// descendants of container in depth-first document order, skipping hidden
// subtrees and disabled nodes. The container itself is not included.
func (d *Document) EnumerateFocusable(container focus.Handle) []focus.Handle {
	c, ok := d.index[container]
	if !ok || !c.visible() {
		return nil
	}
	var out []focus.Handle
	for _, child := range c.children {
		walk(child, func(x *Node) bool {
			if x.hidden {
				return false
			}
			if x.focusable && !x.disabled {
				out = append(out, x.id)
			}
			return true
		})
	}
	return out
}

// Focus implements focus.Host. Any attached, visible, enabled node can take
// focus programmatically, focusable or not.
func (d *Document) Focus(h focus.Handle) error {
	n, ok := d.index[h]
	if !ok {
		return &focus.DetachedFocusTargetError{Handle: h}
	}
	if n.disabled || !n.visible() {
		return &NodeError{Op: "focus", ID: h, Err: ErrNotFocusable}
	}
	d.focused = h
	return nil
}

// CurrentFocus implements focus.Host.
func (d *Document) CurrentFocus() focus.Handle { return d.focused }

// Focused returns the focused node, or nil.
func (d *Document) Focused() *Node { return d.index[d.focused] }

// Blur drops focus.
func (d *Document) Blur() { d.focused = focus.NoHandle }

// SuppressBackgroundScroll implements focus.Host. Suppression is counted so
// nested dialogs release it only when the outermost one closes.
func (d *Document) SuppressBackgroundScroll(enable bool) {
	if enable {
		d.scrollLocks++
		return
	}
	if d.scrollLocks > 0 {
		d.scrollLocks--
	}
}

// ScrollSuppressed reports whether any dialog holds the scroll lock.
func (d *Document) ScrollSuppressed() bool { return d.scrollLocks > 0 }

// FocusNext moves focus to the next tabbable node in the document, wrapping
// at the end, and returns the new focus. This is the default Tab behavior.
func (d *Document) FocusNext() focus.Handle { return d.step(1) }

// FocusPrevious is FocusNext in reverse (default Shift+Tab behavior).
func (d *Document) FocusPrevious() focus.Handle { return d.step(-1) }

func (d *Document) step(delta int) focus.Handle {
	seq := d.EnumerateFocusable(RootID)
	if len(seq) == 0 {
		return d.focused
	}
	idx := -1
	for i, h := range seq {
		if h == d.focused {
			idx = i
			break
		}
	}
	var next int
	switch {
	case idx < 0 && delta > 0:
		next = 0
	case idx < 0:
		next = len(seq) - 1
	default:
		next = ((idx+delta)%len(seq) + len(seq)) % len(seq)
	}
	if err := d.Focus(seq[next]); err != nil {
		d.logger.Debug("sequential focus skipped", "target", seq[next], "error", err)
	}
	return d.focused
}

// Describe returns what a screen reader would announce for h: label, role
// and the states carried in its ARIA attributes.
func (d *Document) Describe(h focus.Handle) string {
	n, ok := d.index[h]
	if !ok {
		return ""
	}
	parts := make([]string, 0, 6)
	if l := n.Label(); l != "" {
		parts = append(parts, l)
	}
	if n.role != RoleGeneric {
		parts = append(parts, string(n.role))
	}
	if _, ok := n.attrs[AttrExpanded]; ok {
		parts = append(parts, pick(n.BoolAttr(AttrExpanded), "expanded", "collapsed"))
	}
	if _, ok := n.attrs[AttrChecked]; ok {
		parts = append(parts, pick(n.BoolAttr(AttrChecked), "checked", "not checked"))
	}
	if n.BoolAttr(AttrSelected) {
		parts = append(parts, "selected")
	}
	if v, ok := n.attrs[AttrCurrent]; ok && v != "false" {
		parts = append(parts, fmt.Sprintf("current %s", v))
	}
	if n.BoolAttr(AttrRequired) {
		parts = append(parts, "required")
	}
	if n.BoolAttr(AttrInvalid) {
		parts = append(parts, "invalid entry")
	}
	if n.disabled {
		parts = append(parts, "dimmed")
	}
	for _, ref := range strings.Fields(n.attrs[AttrDescribedBy]) {
		if desc, ok := d.index[focus.Handle(ref)]; ok && !desc.hidden && desc.Label() != "" {
			parts = append(parts, desc.Label())
		}
	}
	return strings.Join(parts, ", ")
}

func pick(cond bool, yes, no string) string {
	if cond {
		return yes
	}
	return no
}

// walk visits n and its descendants depth-first. Returning false from fn
// skips the visited node's children.
func walk(n *Node, fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.children {
		walk(c, fn)
	}
}
