// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable error handling with user-friendly messages.
//
// This package defines error types that include remediation steps and Markdown-formatted
// guides, rendered with glamour, for the failures a user can fix: a broken config file,
// an unknown component id, a missing terminal or clipboard, and SSH server problems.
package issue
