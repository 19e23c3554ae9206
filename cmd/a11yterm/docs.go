// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/a11yterm/a11yterm/internal/catalog"
	"github.com/a11yterm/a11yterm/internal/tui"
)

const defaultDocsWidth = 80

// ErrComponentRequired is returned by docs when no component is given and
// the user cannot be asked for one.
var ErrComponentRequired = errors.New("a component id is required")

type docsOptions struct {
	raw   bool
	pager bool
	style string
	width int
}

func newDocsCommand(app *App) *cobra.Command {
	var opts docsOptions

	docsCmd := &cobra.Command{
		Use:   "docs [component]",
		Short: "Print a component's documentation page",
		Long: `Print a component's documentation page: description, accessibility
features, WCAG 2.1 success criteria, ARIA attributes, keyboard support and a
code sample.

Without a component id you are asked to pick one (on a terminal).`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDocs(app, args, opts)
		},
	}

	docsCmd.Flags().BoolVar(&opts.raw, "raw", false, "print Markdown instead of rendering it")
	docsCmd.Flags().BoolVar(&opts.pager, "pager", false, "show the page in a scrollable pager")
	docsCmd.Flags().StringVar(&opts.style, "style", "", "rendering style: auto, dark, light or notty (default from ui.code_style)")
	docsCmd.Flags().IntVar(&opts.width, "width", 0, "wrap width (default is the terminal width)")

	return docsCmd
}

func runDocs(app *App, args []string, opts docsOptions) error {
	cat, err := app.loadCatalog()
	if err != nil {
		return err
	}

	var c *catalog.Component
	if len(args) == 1 {
		if c, err = app.findComponent(cat, args[0]); err != nil {
			return err
		}
	} else {
		if c, err = pickComponent(app, cat); err != nil {
			return err
		}
	}

	if opts.raw {
		_, err := fmt.Fprint(app.stdout, catalog.Markdown(c))
		return err
	}

	style := opts.style
	if style == "" {
		style = string(app.cfg.UI.CodeStyle)
	}
	if !tui.IsTerminal(app.stdout) && (style == "" || style == catalog.StyleAuto) {
		style = catalog.StyleNoTTY
	}

	width := opts.width
	if width == 0 {
		width = terminalWidth(app)
	}

	page, err := catalog.Render(c, style, width)
	if err != nil {
		return err
	}

	tuiCfg := app.tuiConfig()
	if opts.pager && tui.IsTerminal(app.stdout) && !tui.ShouldUseAccessible(tuiCfg) {
		return tui.Pager(tui.PagerOptions{Content: page, Title: c.Name, Config: tuiCfg})
	}
	_, err = fmt.Fprint(app.stdout, page)
	return err
}

// pickComponent asks for a component with a huh select. Accessible mode turns
// the prompt into a numbered question; without a terminal there is no one to
// ask.
func pickComponent(app *App, cat *catalog.Catalog) (*catalog.Component, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return nil, ErrComponentRequired
	}

	options := make([]tui.Option[string], 0, len(cat.Components))
	for _, c := range cat.Components {
		options = append(options, tui.Option[string]{Title: c.Name, Value: c.ID})
	}
	id, err := tui.Choose(tui.ChooseOptions[string]{
		Title:       "Which component?",
		Description: "Pick the page to print.",
		Options:     options,
		Initial:     cat.Components[0].ID,
		Config:      app.tuiConfig(),
	})
	if err != nil {
		return nil, err
	}
	return cat.Find(id)
}

func terminalWidth(app *App) int {
	if f, ok := app.stdout.(*os.File); ok {
		if w, _, err := term.GetSize(int(f.Fd())); err == nil && w > 0 {
			return w
		}
	}
	return defaultDocsWidth
}
