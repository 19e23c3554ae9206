// SPDX-License-Identifier: MPL-2.0

package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"regexp"
	"slices"
	"sync"

	"github.com/a11yterm/a11yterm/pkg/cueutil"
)

const (
	// BuiltinFilename is the name reported in errors about the embedded catalog.
	BuiltinFilename = "components.cue"

	// MaxFileSize caps user catalog files read by LoadFile.
	MaxFileSize int64 = 1 << 20
)

var (
	//go:embed schema.cue
	catalogSchema []byte

	//go:embed components.cue
	builtinComponents []byte

	criterionIDPattern = regexp.MustCompile(`^[0-9]+\.[0-9]+\.[0-9]+$`)

	builtinOnce sync.Once
	builtin     *Catalog
	builtinErr  error
)

// Load returns the embedded catalog. It is parsed once and shared; callers
// must not modify it.
func Load() (*Catalog, error) {
	builtinOnce.Do(func() {
		builtin, builtinErr = Parse(builtinComponents, BuiltinFilename)
	})
	return builtin, builtinErr
}

// LoadFile parses a catalog file from disk against the embedded schema.
// Files larger than MaxFileSize are rejected unread by the CUE compiler.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	return parse(data, path, cueutil.WithMaxSize(MaxFileSize))
}

// Parse decodes CUE catalog data, validates it against the schema and then
// checks the rules the schema cannot express.
func Parse(data []byte, filename string) (*Catalog, error) {
	return parse(data, filename)
}

func parse(data []byte, filename string, opts ...cueutil.Option) (*Catalog, error) {
	opts = append(opts, cueutil.WithFilename(filename))
	c, err := cueutil.Decode[Catalog](catalogSchema, "#Catalog", data, opts...)
	if err != nil {
		return nil, err
	}
	if err := c.validate(filename); err != nil {
		return nil, err
	}
	return c, nil
}

// Find returns the component with the given id.
func (c *Catalog) Find(id string) (*Component, error) {
	for i := range c.Components {
		if c.Components[i].ID == id {
			return &c.Components[i], nil
		}
	}
	return nil, &ComponentNotFoundError{ID: id, Known: c.IDs()}
}

// IDs returns the component ids in catalog order.
func (c *Catalog) IDs() []string {
	ids := make([]string, 0, len(c.Components))
	for i := range c.Components {
		ids = append(ids, c.Components[i].ID)
	}
	return ids
}

// validate checks cross-entry rules. Every violation is reported as a
// cueutil.ValidationError joined under ErrInvalidCatalog.
func (c *Catalog) validate(filename string) error {
	var errs []error
	add := func(path, msg, suggestion string) {
		errs = append(errs, &cueutil.ValidationError{
			File:       filename,
			Path:       path,
			Message:    msg,
			Suggestion: suggestion,
		})
	}

	if len(c.Components) == 0 {
		add("components", "catalog has no components", "add at least one component")
	}

	var seen []string
	for i := range c.Components {
		comp := &c.Components[i]
		base := fmt.Sprintf("components[%d]", i)
		if slices.Contains(seen, comp.ID) {
			add(base+".id", fmt.Sprintf("duplicate component id %q", comp.ID), "component ids must be unique")
		}
		seen = append(seen, comp.ID)

		if len(comp.Keyboard) == 0 {
			add(base+".keyboard", "component documents no keyboard interaction", "list at least one key binding")
		}
		for j, cr := range comp.WCAG {
			if !criterionIDPattern.MatchString(cr.ID) {
				add(fmt.Sprintf("%s.wcag[%d].id", base, j),
					fmt.Sprintf("criterion id %q is not of the form principle.guideline.criterion", cr.ID),
					`use the numeric WCAG reference, e.g. "2.1.1"`)
			}
			if err := cr.Level.Validate(); err != nil {
				add(fmt.Sprintf("%s.wcag[%d].level", base, j), err.Error(), "")
			}
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errors.Join(append([]error{ErrInvalidCatalog}, errs...)...)
}
