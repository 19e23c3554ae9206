// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"errors"
	"strings"
	"testing"
)

const testSchema = `
#Widget: {
	id:    string & =~"^[a-z][a-z-]*$"
	name:  string
	level: "A" | "AA" | "AAA"
	keys: [...string]
	description?: string
}

#Settings: {
	theme?: string
	mouse:  bool | *true
}
`

type testWidget struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Level       string   `json:"level"`
	Keys        []string `json:"keys"`
	Description string   `json:"description,omitempty"`
}

func TestDecode(t *testing.T) {
	t.Parallel()

	data := []byte(`
id: "radio-group"
name: "Radio Group"
level: "AA"
keys: ["Tab", "ArrowDown"]
`)
	w, err := Decode[testWidget]([]byte(testSchema), "#Widget", data)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if w.ID != "radio-group" || w.Level != "AA" || len(w.Keys) != 2 || w.Description != "" {
		t.Errorf("decoded = %+v", w)
	}
}

func TestDecode_Rejects(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		data     string
		wantPath string
	}{
		{"pattern", `id: "Button", name: "b", level: "AA", keys: []`, "id"},
		{"disjunction", `id: "button", name: "b", level: "AAAA", keys: []`, "level"},
		{"missing field", `id: "button", level: "A", keys: []`, "name"},
		{"closed definition", `id: "button", name: "b", level: "A", keys: [], color: "red"`, "color"},
		{"syntax", `id: "button`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Decode[testWidget]([]byte(testSchema), "#Widget", []byte(tt.data), WithFilename("widgets.cue"))
			if err == nil {
				t.Fatal("Decode() should fail")
			}
			if !strings.Contains(err.Error(), "widgets.cue") {
				t.Errorf("error should name the file, got: %v", err)
			}
			if !strings.Contains(err.Error(), tt.wantPath) {
				t.Errorf("error should name %q, got: %v", tt.wantPath, err)
			}
		})
	}
}

func TestDecode_PartialMap(t *testing.T) {
	t.Parallel()

	got, err := Decode[map[string]any]([]byte(testSchema), "#Settings", []byte(`theme: "dark"`), WithPartial())
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	m := *got
	if m["theme"] != "dark" || m["mouse"] != true {
		t.Errorf("decoded = %v", m)
	}
}

func TestDecode_MaxSize(t *testing.T) {
	t.Parallel()

	data := []byte(`name: "` + strings.Repeat("x", 200) + `"`)
	_, err := Decode[testWidget]([]byte(testSchema), "#Widget", data, WithMaxSize(100), WithFilename("big.cue"))
	if !errors.Is(err, ErrFileTooLarge) {
		t.Fatalf("Decode() error = %v, want ErrFileTooLarge", err)
	}
	var tooLarge *FileTooLargeError
	if !errors.As(err, &tooLarge) || tooLarge.Filename != "big.cue" || tooLarge.Limit != 100 {
		t.Errorf("error = %#v", err)
	}
}

func TestDecode_UnknownDefinition(t *testing.T) {
	t.Parallel()

	_, err := Decode[testWidget]([]byte(testSchema), "#Gadget", []byte(`id: "x"`))
	if err == nil || !strings.Contains(err.Error(), "#Gadget") {
		t.Errorf("Decode() error = %v, want one naming #Gadget", err)
	}
}
