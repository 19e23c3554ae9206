// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/a11yterm/a11yterm/internal/catalog"
	"github.com/a11yterm/a11yterm/internal/config"
	"github.com/a11yterm/a11yterm/internal/issue"
	"github.com/a11yterm/a11yterm/internal/tui"
)

type (
	// App wires CLI services and shared dependencies. It is the composition root for
	// the CLI layer: all Cobra command handlers receive an App reference, and the root
	// command's pre-run fills in the effective configuration and logger.
	App struct {
		Config config.Provider
		stdout io.Writer
		stderr io.Writer

		flags   globalFlags
		cfg     *config.Config
		logger  *log.Logger
		logFile io.Closer
	}

	// Dependencies defines the injection points for building an App. Nil fields are
	// replaced with production defaults by NewApp.
	Dependencies struct {
		Config config.Provider
		Stdout io.Writer
		Stderr io.Writer
	}

	// globalFlags holds the persistent flags of the root command.
	globalFlags struct {
		configFile  string
		catalogFile string
		logLevel    string
		logFile     string
		verbose     bool
		accessible  bool
		noMouse     bool
	}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) *App {
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}

	return &App{
		Config: deps.Config,
		stdout: deps.Stdout,
		stderr: deps.Stderr,
		cfg:    config.DefaultConfig(),
		logger: log.New(io.Discard),
	}
}

// setup loads the configuration, applies flag overrides and opens the logger.
// A configuration that fails to load is reported and replaced by defaults, so
// a broken file never locks the user out of the showcase.
func (a *App) setup(ctx context.Context) error {
	cfg, err := a.Config.Load(ctx, config.LoadOptions{ConfigFilePath: a.flags.configFile})
	if err != nil {
		fmt.Fprintln(a.stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, a.flags.verbose))
		cfg = config.DefaultConfig()
	}

	if a.flags.accessible {
		cfg.UI.Accessible = true
	}
	if a.flags.noMouse {
		cfg.UI.Mouse = false
	}
	if a.flags.logLevel != "" {
		level := config.LogLevel(a.flags.logLevel)
		if ok, errs := level.IsValid(); !ok {
			return errs[0]
		}
		cfg.Log.Level = level
	}
	if a.flags.verbose {
		cfg.Log.Level = config.LogLevelDebug
	}
	if a.flags.logFile != "" {
		cfg.Log.File = a.flags.logFile
	}

	logger, closer, err := newLogger(cfg.Log, a.stderr)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = logger
	a.logFile = closer
	a.logger.Debug("configuration ready", "accessible", cfg.UI.Accessible, "mouse", cfg.UI.Mouse, "level", cfg.Log.Level)
	return nil
}

// teardown releases what setup opened.
func (a *App) teardown() {
	if a.logFile != nil {
		_ = a.logFile.Close() // Best-effort close of the log file
		a.logFile = nil
	}
}

// loadCatalog returns the built-in catalog, or the one given with --catalog.
func (a *App) loadCatalog() (*catalog.Catalog, error) {
	if a.flags.catalogFile == "" {
		cat, err := catalog.Load()
		if err != nil {
			return nil, fmt.Errorf("built-in catalog is invalid: %w", err)
		}
		return cat, nil
	}

	cat, err := catalog.LoadFile(a.flags.catalogFile)
	if err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("load catalog").
			WithResource(a.flags.catalogFile).
			WithSuggestion("Check the file against the component schema").
			WithSuggestion("Omit --catalog to use the built-in components").
			Wrap(err).
			BuildError()
	}
	a.logger.Debug("catalog loaded", "path", a.flags.catalogFile, "components", len(cat.Components))
	return cat, nil
}

// findComponent looks up id and turns a miss into an actionable error.
func (a *App) findComponent(cat *catalog.Catalog, id string) (*catalog.Component, error) {
	c, err := cat.Find(id)
	if err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("open component").
			WithResource(id).
			WithSuggestion("Available components: " + strings.Join(cat.IDs(), ", ")).
			WithSuggestion("Run 'a11yterm list' to see every component").
			Wrap(err).
			BuildError()
	}
	return c, nil
}

// tuiConfig derives prompt settings from the effective configuration.
func (a *App) tuiConfig() tui.Config {
	cfg := tui.DefaultConfig()
	cfg.Theme = a.cfg.UI.Theme
	cfg.Accessible = cfg.Accessible || a.cfg.UI.Accessible
	cfg.Output = a.stdout
	return cfg
}

// renderIssue writes the guide for id to stderr. Rendering problems are
// logged, not returned: the guide only accompanies the real error.
func (a *App) renderIssue(id issue.Id) {
	out, err := issue.Get(id).Render("auto")
	if err != nil {
		a.logger.Debug("failed to render issue guide", "issue", id, "error", err)
		return
	}
	fmt.Fprint(a.stderr, out)
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}
