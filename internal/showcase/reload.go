// SPDX-License-Identifier: MPL-2.0

package showcase

import (
	"github.com/charmbracelet/log"

	"github.com/a11yterm/a11yterm/internal/catalog"
	"github.com/a11yterm/a11yterm/internal/dom"
)

type (
	// CatalogReloadedMsg replaces the catalog of a running showcase. The
	// component on screen stays open when the new catalog still has it.
	CatalogReloadedMsg struct {
		Catalog *catalog.Catalog
	}

	// CatalogReloadFailedMsg reports a catalog that could not be loaded. The
	// showcase keeps the catalog it has.
	CatalogReloadFailedMsg struct {
		Err error
	}
)

func newSidebar(cat *catalog.Catalog, logger *log.Logger) *dom.Document {
	doc := dom.NewDocument(dom.WithLogger(logger))
	doc.MustAppend(dom.RootID, dom.NewNode(sidebarID, dom.RoleNavigation, "Components"))
	for _, c := range cat.Components {
		doc.MustAppend(sidebarID, dom.NewFocusable(entryID(c.ID), dom.RoleLink, c.Name))
	}
	return doc
}

func (m *Model) reload(cat *catalog.Catalog) {
	if cat == nil || len(cat.Components) == 0 {
		m.status = "Catalog reload failed: " + ErrEmptyCatalog.Error()
		m.refresh()
		return
	}

	i := max(indexOf(cat, m.Active()), 0)
	m.catalog = cat
	m.sidebar = newSidebar(cat, m.logger)
	m.active = -1
	m.code = renderedCode{}
	if err := m.open(i); err != nil {
		// The page stays readable without its demo.
		m.logger.Error("failed to open component", "error", err)
		m.active = i
		m.demo, _ = newDemo("", m.logger)
	}

	if m.region == RegionDemo && m.demo.empty() {
		m.region = RegionSidebar
		m.layout()
	}
	m.logger.Info("catalog reloaded", "components", len(cat.Components))
	m.status = "Catalog reloaded"
	m.refresh()
}
