// SPDX-License-Identifier: MPL-2.0

package catalog

import (
	"errors"
	"fmt"
)

const (
	// LevelA is WCAG conformance level A.
	LevelA WCAGLevel = "A"
	// LevelAA is WCAG conformance level AA.
	LevelAA WCAGLevel = "AA"
	// LevelAAA is WCAG conformance level AAA.
	LevelAAA WCAGLevel = "AAA"
)

var (
	// ErrComponentNotFound is the sentinel error wrapped by ComponentNotFoundError.
	ErrComponentNotFound = errors.New("component not found")
	// ErrInvalidWCAGLevel is the sentinel error wrapped by InvalidWCAGLevelError.
	ErrInvalidWCAGLevel = errors.New("invalid WCAG level")
	// ErrInvalidCatalog is returned when a catalog passes the schema but breaks
	// a cross-entry rule (duplicate ids, missing keyboard support).
	ErrInvalidCatalog = errors.New("invalid catalog")
)

type (
	// WCAGLevel is a WCAG 2.1 conformance level.
	WCAGLevel string

	// InvalidWCAGLevelError is returned when a WCAGLevel value is not recognized.
	// It wraps ErrInvalidWCAGLevel for errors.Is() compatibility.
	InvalidWCAGLevelError struct {
		Value WCAGLevel
	}

	// ComponentNotFoundError is returned by Catalog.Find for an unknown id.
	ComponentNotFoundError struct {
		ID string
		// Known lists the ids that do exist, for suggestions.
		Known []string
	}

	// Criterion is one WCAG success criterion a component satisfies.
	Criterion struct {
		ID          string    `json:"id"`
		Level       WCAGLevel `json:"level"`
		Title       string    `json:"title"`
		Description string    `json:"description"`
	}

	// ARIAAttribute documents one ARIA attribute or role a component sets.
	ARIAAttribute struct {
		Name    string `json:"name"`
		Purpose string `json:"purpose"`
		Usage   string `json:"usage"`
	}

	// KeyBinding documents one keyboard interaction.
	KeyBinding struct {
		Key    string `json:"key"`
		Action string `json:"action"`
	}

	// Component is the documentation page of one widget.
	Component struct {
		ID          string          `json:"id"`
		Name        string          `json:"name"`
		Description string          `json:"description"`
		WCAG        []Criterion     `json:"wcag"`
		ARIA        []ARIAAttribute `json:"aria"`
		Keyboard    []KeyBinding    `json:"keyboard"`
		Features    []string        `json:"features"`
		Example     string          `json:"example"`
	}

	// Catalog is an ordered set of component pages.
	Catalog struct {
		Components []Component `json:"components"`
	}
)

// Validate returns an error if the level is not A, AA or AAA.
func (l WCAGLevel) Validate() error {
	switch l {
	case LevelA, LevelAA, LevelAAA:
		return nil
	default:
		return &InvalidWCAGLevelError{Value: l}
	}
}

// rank orders levels from A (1) to AAA (3).
func (l WCAGLevel) rank() int {
	switch l {
	case LevelA:
		return 1
	case LevelAA:
		return 2
	case LevelAAA:
		return 3
	default:
		return 0
	}
}

// Error implements the error interface for InvalidWCAGLevelError.
func (e *InvalidWCAGLevelError) Error() string {
	return fmt.Sprintf("invalid WCAG level %q (valid: A, AA, AAA)", e.Value)
}

// Unwrap returns ErrInvalidWCAGLevel for errors.Is() compatibility.
func (e *InvalidWCAGLevelError) Unwrap() error { return ErrInvalidWCAGLevel }

// Error implements the error interface for ComponentNotFoundError.
func (e *ComponentNotFoundError) Error() string {
	return fmt.Sprintf("component %q not found", e.ID)
}

// Unwrap returns ErrComponentNotFound for errors.Is() compatibility.
func (e *ComponentNotFoundError) Unwrap() error { return ErrComponentNotFound }

// Levels returns the distinct WCAG levels the component's criteria cover,
// from A to AAA.
func (c *Component) Levels() []WCAGLevel {
	var out []WCAGLevel
	for _, l := range []WCAGLevel{LevelA, LevelAA, LevelAAA} {
		for _, cr := range c.WCAG {
			if cr.Level == l {
				out = append(out, l)
				break
			}
		}
	}
	return out
}

// HighestLevel returns the strictest level among the component's criteria,
// or "" when it lists none.
func (c *Component) HighestLevel() WCAGLevel {
	var best WCAGLevel
	for _, cr := range c.WCAG {
		if cr.Level.rank() > best.rank() {
			best = cr.Level
		}
	}
	return best
}
