// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/a11yterm/a11yterm/internal/catalog"
)

func newListCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all components",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cat, err := app.loadCatalog()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(app.stdout, renderComponentTable(cat))
			return err
		},
	}
}

// renderComponentTable renders one row per component: id, name, the WCAG
// levels its criteria cover and how many keyboard interactions it documents.
func renderComponentTable(cat *catalog.Catalog) string {
	rows := make([][]string, 0, len(cat.Components))
	for i := range cat.Components {
		c := &cat.Components[i]
		levels := make([]string, 0, 3)
		for _, l := range c.Levels() {
			levels = append(levels, string(l))
		}
		rows = append(rows, []string{
			c.ID,
			c.Name,
			strings.Join(levels, ", "),
			fmt.Sprintf("%d", len(c.Keyboard)),
		})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(SubtitleStyle).
		Headers("ID", "Component", "WCAG levels", "Keys").
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return tableHeaderStyle
			}
			return tableCellStyle
		}).
		String()
}
