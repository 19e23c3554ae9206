// SPDX-License-Identifier: MPL-2.0

// Package catalog holds the component documentation: WCAG success criteria,
// ARIA attributes, keyboard bindings, features and a Go usage example for
// each widget. The built-in catalog is embedded CUE validated against an
// embedded schema; user catalogs can be loaded from disk with the same
// schema. Pages render to Markdown and, through glamour, to the terminal.
package catalog
