// SPDX-License-Identifier: MPL-2.0

package dom

import (
	"maps"
	"strconv"

	"github.com/a11yterm/a11yterm/internal/focus"
)

// ARIA attribute names used by the widgets.
const (
	AttrAtomic      = "aria-atomic"
	AttrChecked     = "aria-checked"
	AttrCurrent     = "aria-current"
	AttrDescribedBy = "aria-describedby"
	AttrDisabled    = "aria-disabled"
	AttrExpanded    = "aria-expanded"
	AttrHasPopup    = "aria-haspopup"
	AttrInvalid     = "aria-invalid"
	AttrLabel       = "aria-label"
	AttrLabelledBy  = "aria-labelledby"
	AttrLive        = "aria-live"
	AttrModal       = "aria-modal"
	AttrRequired    = "aria-required"
	AttrSelected    = "aria-selected"
)

// Roles assigned to nodes.
const (
	RoleGeneric    Role = ""
	RoleAlert      Role = "alert"
	RoleButton     Role = "button"
	RoleCheckbox   Role = "checkbox"
	RoleCombobox   Role = "combobox"
	RoleComplement Role = "complementary"
	RoleDialog     Role = "dialog"
	RoleGroup      Role = "group"
	RoleLink       Role = "link"
	RoleList       Role = "list"
	RoleListbox    Role = "listbox"
	RoleMain       Role = "main"
	RoleMenu       Role = "menu"
	RoleMenuItem   Role = "menuitem"
	RoleNavigation Role = "navigation"
	RoleOption     Role = "option"
	RoleRadio      Role = "radio"
	RoleRadioGroup Role = "radiogroup"
	RoleStatus     Role = "status"
	RoleTextbox    Role = "textbox"
)

type (
	// Role is a WAI-ARIA role name.
	Role string

	// Node is one element of a Document. A node is attached once it has been
	// appended to a document and detached again by Document.Remove.
	Node struct {
		id        focus.Handle
		role      Role
		label     string
		attrs     map[string]string
		focusable bool
		disabled  bool
		hidden    bool

		parent   *Node
		children []*Node
		doc      *Document
	}
)

// NewNode creates a detached node.
func NewNode(id focus.Handle, role Role, label string) *Node {
	return &Node{id: id, role: role, label: label, attrs: make(map[string]string)}
}

// NewFocusable creates a detached node that takes part in sequential focus
// navigation.
func NewFocusable(id focus.Handle, role Role, label string) *Node {
	n := NewNode(id, role, label)
	n.focusable = true
	return n
}

// ID returns the node's handle.
func (n *Node) ID() focus.Handle { return n.id }

// Role returns the node's role.
func (n *Node) Role() Role { return n.role }

// Label returns the accessible name. An explicit aria-label wins over the
// label given at construction.
func (n *Node) Label() string {
	if l, ok := n.attrs[AttrLabel]; ok && l != "" {
		return l
	}
	return n.label
}

// SetLabel replaces the label given at construction.
func (n *Node) SetLabel(label string) { n.label = label }

// Attr returns the value of attribute name.
func (n *Node) Attr(name string) (string, bool) {
	v, ok := n.attrs[name]
	return v, ok
}

// Attrs returns a copy of all attributes.
func (n *Node) Attrs() map[string]string { return maps.Clone(n.attrs) }

// SetAttr sets attribute name. An empty value removes it.
func (n *Node) SetAttr(name, value string) {
	if value == "" {
		delete(n.attrs, name)
		return
	}
	n.attrs[name] = value
}

// SetBoolAttr sets attribute name to "true" or "false".
func (n *Node) SetBoolAttr(name string, v bool) {
	n.attrs[name] = strconv.FormatBool(v)
}

// BoolAttr reports whether attribute name is "true".
func (n *Node) BoolAttr(name string) bool { return n.attrs[name] == "true" }

// Focusable reports whether the node takes part in sequential navigation.
func (n *Node) Focusable() bool { return n.focusable }

// SetFocusable changes whether the node takes part in sequential navigation.
func (n *Node) SetFocusable(v bool) { n.focusable = v }

// Disabled reports whether the node is disabled.
func (n *Node) Disabled() bool { return n.disabled }

// SetDisabled disables or enables the node and mirrors the state into
// aria-disabled.
func (n *Node) SetDisabled(v bool) {
	n.disabled = v
	if v {
		n.SetBoolAttr(AttrDisabled, true)
	} else {
		delete(n.attrs, AttrDisabled)
	}
}

// Hidden reports whether the node (and so its subtree) is hidden.
func (n *Node) Hidden() bool { return n.hidden }

// SetHidden hides or reveals the node's subtree. Hiding a subtree that holds
// focus drops focus.
func (n *Node) SetHidden(v bool) {
	n.hidden = v
	if v && n.doc != nil && n.doc.focused != focus.NoHandle && n.doc.Contains(n.id, n.doc.focused) {
		n.doc.focused = focus.NoHandle
	}
}

// Parent returns the parent node, or nil for the root and detached nodes.
func (n *Node) Parent() *Node { return n.parent }

// Children returns the child nodes in document order.
func (n *Node) Children() []*Node {
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

// Attached reports whether the node belongs to a document.
func (n *Node) Attached() bool { return n.doc != nil }

// visible reports whether neither the node nor any ancestor is hidden.
func (n *Node) visible() bool {
	for p := n; p != nil; p = p.parent {
		if p.hidden {
			return false
		}
	}
	return true
}

// tabbable reports whether the node is in the sequential focus order.
func (n *Node) tabbable() bool {
	return n.focusable && !n.disabled && n.visible()
}
