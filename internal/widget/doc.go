// SPDX-License-Identifier: MPL-2.0

// Package widget implements the accessible terminal widgets shown by the
// showcase: Button, Input, Checkbox, RadioGroup, Select, Modal, Alert and
// Navigation.
//
// Each widget mounts its nodes into a dom.Document, keeps its own state and
// renders itself onto a Canvas that records clickable regions. Keyboard
// behavior that needs focus management is delegated to the controllers in
// internal/focus: Modal uses a FocusTrap, Navigation a Dropdown per submenu
// and RadioGroup a RovingSelection.
//
// A Surface owns one document and routes Bubble Tea key and mouse messages to
// the widget that holds focus, falling back to sequential Tab navigation.
package widget
