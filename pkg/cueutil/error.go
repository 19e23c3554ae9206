// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	cueerrors "cuelang.org/go/cue/errors"
)

// ErrFileTooLarge is the sentinel behind FileTooLargeError.
var ErrFileTooLarge = errors.New("document exceeds the size limit")

type (
	// FileTooLargeError reports a document rejected before compilation.
	FileTooLargeError struct {
		Filename string
		Size     int64
		Limit    int64
	}

	// ValidationError is one rule violation found in a decoded document.
	// Path uses JSON notation, e.g. "components[2].wcag[0].level".
	ValidationError struct {
		File       string
		Path       string
		Message    string
		Suggestion string
	}
)

func (e *FileTooLargeError) Error() string {
	return fmt.Sprintf("%s: %d bytes exceeds the %d byte limit", e.Filename, e.Size, e.Limit)
}

func (e *FileTooLargeError) Unwrap() error { return ErrFileTooLarge }

func (e *ValidationError) Error() string {
	var b strings.Builder
	b.WriteString(e.File)
	if e.Path != "" {
		b.WriteString(": ")
		b.WriteString(e.Path)
	}
	b.WriteString(": ")
	b.WriteString(e.Message)
	if e.Suggestion != "" {
		b.WriteString(" (")
		b.WriteString(e.Suggestion)
		b.WriteString(")")
	}
	return b.String()
}

// formatError flattens a CUE error into one line per problem, each led by
// the JSON path of the offending field.
func formatError(err error, filename string) error {
	list := cueerrors.Errors(err)
	if len(list) == 0 {
		return fmt.Errorf("%s: %w", filename, err)
	}

	lines := make([]string, 0, len(list))
	for _, e := range list {
		path := jsonPath(cueerrors.Path(e))
		msg := e.Error()
		if path == "" {
			lines = append(lines, msg)
			continue
		}
		// CUE often repeats the path at the start of the message.
		if rest, ok := strings.CutPrefix(msg, path); ok {
			msg = strings.TrimSpace(strings.TrimPrefix(rest, ":"))
		}
		lines = append(lines, path+": "+msg)
	}
	if len(lines) == 1 {
		return fmt.Errorf("%s: %s", filename, lines[0])
	}
	return fmt.Errorf("%s: %d problems:\n  %s", filename, len(lines), strings.Join(lines, "\n  "))
}

// jsonPath renders CUE path selectors such as ["components", "0", "id"]
// as "components[0].id".
func jsonPath(sels []string) string {
	var b strings.Builder
	for i, s := range sels {
		if _, err := strconv.Atoi(s); err == nil && i > 0 {
			b.WriteString("[" + s + "]")
			continue
		}
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(s)
	}
	return b.String()
}
