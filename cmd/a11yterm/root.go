// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// newRootCommand builds the command tree around app. Without a subcommand the
// root command launches the showcase, like `a11yterm run`.
func newRootCommand(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "a11yterm [component]",
		Short: "Accessible terminal UI components and their documentation",
		Long: TitleStyle.Render("a11yterm") + SubtitleStyle.Render(" - Accessible terminal UI components") + `

a11yterm is a showcase of keyboard- and screen-reader-friendly terminal
widgets: buttons, inputs, checkboxes, radio groups, selects, modal dialogs,
alerts and navigation menus. Every component comes with a live demo, its
WCAG 2.1 success criteria, ARIA attributes, keyboard support and a code
sample you can copy.

` + SubtitleStyle.Render("Examples:") + `
  a11yterm                  Browse the showcase
  a11yterm run modal        Open the showcase on the modal dialog
  a11yterm list             List all components
  a11yterm docs select      Print the select component page
  a11yterm serve            Serve the showcase over SSH`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return app.setup(cmd.Context())
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			app.teardown()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShowcase(cmd.Context(), app, args, false)
		},
	}

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&app.flags.configFile, "config", "", "config file (default is $XDG_CONFIG_HOME/a11yterm/config.cue)")
	flags.StringVar(&app.flags.catalogFile, "catalog", "", "component catalog file (default is the built-in catalog)")
	flags.BoolVarP(&app.flags.verbose, "verbose", "v", false, "enable verbose output (same as --log-level debug)")
	flags.StringVar(&app.flags.logLevel, "log-level", "", "log level: debug, info, warn or error")
	flags.StringVar(&app.flags.logFile, "log-file", "", "write logs to this file instead of stderr")
	flags.BoolVar(&app.flags.accessible, "accessible", false, "plain, screen-reader-friendly output instead of full-screen views")
	flags.BoolVar(&app.flags.noMouse, "no-mouse", false, "disable mouse support")

	// Add subcommands
	rootCmd.AddCommand(newRunCommand(app))
	rootCmd.AddCommand(newListCommand(app))
	rootCmd.AddCommand(newDocsCommand(app))
	rootCmd.AddCommand(newConfigCommand(app))
	rootCmd.AddCommand(newServeCommand(app))

	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute builds the command tree and runs it. This is called by main.main().
func Execute() {
	app := NewApp(Dependencies{})
	rootCmd := newRootCommand(app)

	// Pass version via fang.WithVersion() since fang overrides rootCmd.Version
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}
