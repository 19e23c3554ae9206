// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/a11yterm/a11yterm/internal/catalog"
	"github.com/a11yterm/a11yterm/internal/issue"
	"github.com/a11yterm/a11yterm/internal/showcase"
	"github.com/a11yterm/a11yterm/internal/tui"
	"github.com/a11yterm/a11yterm/internal/watch"
)

var (
	// ErrNotATerminal is returned when the showcase is started without a terminal.
	ErrNotATerminal = errors.New("the showcase needs an interactive terminal")

	// ErrWatchRequiresCatalog is returned by run --watch without --catalog.
	ErrWatchRequiresCatalog = errors.New("--watch needs a catalog file given with --catalog")
)

func newRunCommand(app *App) *cobra.Command {
	var watchCatalog bool

	runCmd := &cobra.Command{
		Use:   "run [component]",
		Short: "Browse the component showcase",
		Long: `Browse the component showcase.

The showcase lists every component in a sidebar and shows the selected one
with a live demo. Move between the sidebar, the demo and the page with
ctrl+n and ctrl+p; inside the demo, Tab and the arrow keys drive the widgets.

In accessible mode (--accessible, ACCESSIBLE=1 or no terminal on stdin) the
component page is printed as plain Markdown instead.

With --watch and --catalog the showcase reloads the catalog file whenever it
is saved, which makes it a live preview while writing component pages.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShowcase(cmd.Context(), app, args, watchCatalog)
		},
	}

	runCmd.Flags().BoolVarP(&watchCatalog, "watch", "w", false, "reload the --catalog file when it changes")

	return runCmd
}

func runShowcase(ctx context.Context, app *App, args []string, watchCatalog bool) error {
	if watchCatalog && app.flags.catalogFile == "" {
		return ErrWatchRequiresCatalog
	}

	cat, err := app.loadCatalog()
	if err != nil {
		return err
	}

	start := app.cfg.UI.StartComponent
	if len(args) == 1 {
		start = args[0]
	}
	if start != "" {
		if _, err := app.findComponent(cat, start); err != nil {
			return err
		}
	}

	if tui.ShouldUseAccessible(app.tuiConfig()) {
		return printPlainPage(app, cat, start)
	}
	if !tui.IsTerminal(app.stdout) {
		app.renderIssue(issue.NotATerminalId)
		return &ExitError{Code: 1, Err: ErrNotATerminal}
	}

	// stderr shares the screen with the showcase; only a log file is kept.
	logger := app.logger
	if app.cfg.Log.File == "" {
		logger = log.New(io.Discard)
	}

	m, err := showcase.New(cat, showcase.Options{
		StartComponent: start,
		Mouse:          app.cfg.UI.Mouse,
		CodeStyle:      string(app.cfg.UI.CodeStyle),
		Logger:         logger,
	})
	if err != nil {
		return err
	}

	opts := append(m.ProgramOptions(), tea.WithContext(ctx), tea.WithOutput(app.stdout))
	p := tea.NewProgram(m, opts...)
	if watchCatalog {
		stop, err := watchCatalogFile(ctx, app.flags.catalogFile, p, logger)
		if err != nil {
			return err
		}
		defer stop()
	}

	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("showcase: %w", err)
	}
	return nil
}

// printPlainPage writes the Markdown page of id (or the first component),
// which screen readers follow better than a redrawn full-screen view.
func printPlainPage(app *App, cat *catalog.Catalog, id string) error {
	c := &cat.Components[0]
	if id != "" {
		found, err := app.findComponent(cat, id)
		if err != nil {
			return err
		}
		c = found
	}
	app.logger.Debug("accessible mode, printing plain page", "component", c.ID)
	_, err := fmt.Fprint(app.stdout, catalog.Markdown(c))
	return err
}

// watchCatalogFile sends the catalog at path to p every time the file is
// saved. The returned func stops the watcher and waits for it.
func watchCatalogFile(ctx context.Context, path string, p *tea.Program, logger *log.Logger) (func(), error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	w, err := watch.New(watch.Config{
		BaseDir:  filepath.Dir(abs),
		Patterns: []string{watch.LiteralPattern(filepath.Base(abs))},
		Logger:   logger,
		OnChange: func(context.Context, []string) error {
			cat, err := catalog.LoadFile(abs)
			if err != nil {
				p.Send(showcase.CatalogReloadFailedMsg{Err: err})
				return err
			}
			p.Send(showcase.CatalogReloadedMsg{Catalog: cat})
			return nil
		},
	})
	if err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("watch catalog").
			WithResource(abs).
			Wrap(err).
			BuildError()
	}

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := w.Run(ctx); err != nil {
			logger.Error("catalog watcher stopped", "error", err)
		}
	}()
	logger.Info("watching catalog", "path", abs)

	return func() {
		cancel()
		<-done
	}, nil
}
