// SPDX-License-Identifier: MPL-2.0

package tui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/huh"
)

func TestNewChooseForm(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	result := "modal"
	form := newChooseForm(ChooseOptions[string]{
		Title:   "Component",
		Options: []Option[string]{{Title: "Button", Value: "button"}, {Title: "Modal", Value: "modal"}},
		Config:  Config{Theme: ThemeDracula, Output: &out, Width: 40},
	}, &result)

	if form == nil {
		t.Fatal("expected non-nil form")
	}
	if form.State != huh.StateNormal {
		t.Errorf("State = %v, want StateNormal", form.State)
	}
	form.Init()
	if view := form.View(); !strings.Contains(view, "Component") {
		t.Errorf("View() should contain the title, got:\n%s", view)
	}
	if result != "modal" {
		t.Errorf("building the form changed the result to %q", result)
	}
}

func TestGetOutputWriter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if w := getOutputWriter(Config{Output: &buf}); w != &buf {
		t.Error("explicit Output should be used as-is")
	}
}
