// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/a11yterm/a11yterm/internal/config"
	"github.com/a11yterm/a11yterm/internal/issue"
)

// newConfigCommand creates the `a11yterm config` command tree.
func newConfigCommand(app *App) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage a11yterm configuration",
		Long: `Manage a11yterm configuration.

Configuration is stored in:
  - Linux: ~/.config/a11yterm/config.cue
  - macOS: ~/Library/Application Support/a11yterm/config.cue
  - Windows: %APPDATA%\a11yterm\config.cue`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(cmd.Context(), app)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(app)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfigPath(app)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Output effective configuration as CUE",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprint(app.stdout, config.GenerateCUE(app.cfg))
			return err
		},
	})

	return cfgCmd
}

// showConfig loads the configuration again, without falling back to
// defaults, so a broken file is reported with its guide.
func showConfig(ctx context.Context, app *App) error {
	opts := config.LoadOptions{ConfigFilePath: app.flags.configFile}
	cfg, err := app.Config.Load(ctx, opts)
	if err != nil {
		app.renderIssue(issue.ConfigLoadFailedId)
		return err
	}

	keyStyle := CmdStyle
	valueStyle := SuccessStyle
	out := app.stdout

	fmt.Fprintln(out, TitleStyle.Render("Current Configuration"))
	fmt.Fprintln(out)

	path, err := app.Config.Path(opts)
	if err == nil && path != "" {
		fmt.Fprintf(out, "%s: %s\n", keyStyle.Render("Config file"), path)
	} else {
		fmt.Fprintf(out, "%s: %s\n", keyStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	}
	fmt.Fprintln(out)

	startComponent := cfg.UI.StartComponent
	if startComponent == "" {
		startComponent = "(first component)"
	}
	fmt.Fprintf(out, "%s:\n", keyStyle.Render("ui"))
	fmt.Fprintf(out, "  theme: %s\n", valueStyle.Render(string(cfg.UI.Theme)))
	fmt.Fprintf(out, "  accessible: %s\n", valueStyle.Render(fmt.Sprintf("%v", cfg.UI.Accessible)))
	fmt.Fprintf(out, "  mouse: %s\n", valueStyle.Render(fmt.Sprintf("%v", cfg.UI.Mouse)))
	fmt.Fprintf(out, "  start_component: %s\n", valueStyle.Render(startComponent))
	fmt.Fprintf(out, "  code_style: %s\n", valueStyle.Render(string(cfg.UI.CodeStyle)))

	logFile := cfg.Log.File
	if logFile == "" {
		logFile = "(stderr)"
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "%s:\n", keyStyle.Render("log"))
	fmt.Fprintf(out, "  level: %s\n", valueStyle.Render(string(cfg.Log.Level)))
	fmt.Fprintf(out, "  file: %s\n", valueStyle.Render(logFile))

	hostKey := cfg.SSH.HostKeyPath
	if hostKey == "" {
		hostKey = "(default)"
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "%s:\n", keyStyle.Render("ssh"))
	fmt.Fprintf(out, "  host: %s\n", valueStyle.Render(cfg.SSH.Host))
	fmt.Fprintf(out, "  port: %s\n", valueStyle.Render(fmt.Sprintf("%d", cfg.SSH.Port)))
	fmt.Fprintf(out, "  host_key_path: %s\n", valueStyle.Render(hostKey))

	return nil
}

func initConfig(app *App) error {
	path, created, err := config.CreateDefaultConfig()
	if err != nil {
		return issue.NewErrorContext().
			WithOperation("create configuration").
			WithSuggestion("Check that the configuration directory is writable").
			Wrap(err).
			BuildError()
	}

	if !created {
		fmt.Fprintf(app.stdout, "%s Configuration already exists at %s\n", WarningStyle.Render("!"), path)
		return nil
	}
	fmt.Fprintf(app.stdout, "%s Created default configuration at %s\n", SuccessStyle.Render("✓"), path)
	return nil
}

func showConfigPath(app *App) error {
	cfgDir, err := config.ConfigDir()
	if err != nil {
		return err
	}

	fmt.Fprintf(app.stdout, "Config directory: %s\n", cfgDir)

	path, err := app.Config.Path(config.LoadOptions{ConfigFilePath: app.flags.configFile})
	if err != nil {
		return err
	}
	if path == "" {
		fmt.Fprintf(app.stdout, "Config file: %s\n", SubtitleStyle.Render("(none, using defaults)"))
		return nil
	}
	fmt.Fprintf(app.stdout, "Config file: %s\n", path)
	return nil
}
