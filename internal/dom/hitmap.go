// SPDX-License-Identifier: MPL-2.0

package dom

import "github.com/a11yterm/a11yterm/internal/focus"

type (
	// Rect is a screen rectangle in cells. Width and height are exclusive.
	Rect struct {
		X, Y, W, H int
	}

	// Region is a clickable rectangle bound to a node.
	Region struct {
		ID   focus.Handle
		Rect Rect
	}

	// HitMap maps screen positions to regions. It is rebuilt on every render;
	// regions added later take priority over earlier overlapping ones.
	HitMap struct {
		regions []Region
	}
)

// Contains reports whether (x, y) falls inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// NewHitMap creates an empty hit map.
func NewHitMap() *HitMap { return &HitMap{} }

// AddRect registers a region for id.
func (m *HitMap) AddRect(id focus.Handle, x, y, w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	m.regions = append(m.regions, Region{ID: id, Rect: Rect{X: x, Y: y, W: w, H: h}})
}

// Test returns the topmost region at (x, y), or nil.
func (m *HitMap) Test(x, y int) *Region {
	for i := len(m.regions) - 1; i >= 0; i-- {
		if m.regions[i].Rect.Contains(x, y) {
			return &m.regions[i]
		}
	}
	return nil
}

// Target returns the handle of the topmost region at (x, y), or NoHandle.
func (m *HitMap) Target(x, y int) focus.Handle {
	if r := m.Test(x, y); r != nil {
		return r.ID
	}
	return focus.NoHandle
}

// Regions returns the registered regions in insertion order.
func (m *HitMap) Regions() []Region {
	out := make([]Region, len(m.regions))
	copy(out, m.regions)
	return out
}

// Clear removes all regions.
func (m *HitMap) Clear() { m.regions = m.regions[:0] }
