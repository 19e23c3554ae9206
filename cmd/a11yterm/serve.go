// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/ssh"
	bm "github.com/charmbracelet/wish/bubbletea"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/a11yterm/a11yterm/internal/catalog"
	"github.com/a11yterm/a11yterm/internal/config"
	"github.com/a11yterm/a11yterm/internal/issue"
	"github.com/a11yterm/a11yterm/internal/showcase"
	"github.com/a11yterm/a11yterm/internal/sshserver"
)

type serveOptions struct {
	host    string
	port    int
	hostKey string
}

func newServeCommand(app *App) *cobra.Command {
	var opts serveOptions

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the showcase over SSH",
		Long: `Serve the showcase over SSH.

Every connection gets its own showcase session sized to the client's
terminal. Sessions without a terminal are refused. Copying a code sample
sends it to the client's clipboard with OSC 52.

Examples:
  a11yterm serve
  a11yterm serve --host 0.0.0.0 --port 2222
  ssh -p 23234 localhost`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), app, opts)
		},
	}

	serveCmd.Flags().StringVar(&opts.host, "host", "", "interface to bind (default from ssh.host)")
	serveCmd.Flags().IntVar(&opts.port, "port", 0, "port to listen on (default from ssh.port)")
	serveCmd.Flags().StringVar(&opts.hostKey, "host-key", "", "server private key, created when missing (default from ssh.host_key_path)")

	return serveCmd
}

func runServe(ctx context.Context, app *App, opts serveOptions) error {
	cat, err := app.loadCatalog()
	if err != nil {
		return err
	}

	srvCfg, err := app.serverConfig(opts)
	if err != nil {
		return err
	}

	srv, err := sshserver.New(srvCfg, sessionHandler(app, cat), sshserver.WithLogger(app.logger))
	if err != nil {
		return err
	}

	if err := srv.Start(ctx); err != nil {
		app.renderIssue(issue.SSHServerStartFailedId)
		return issue.NewErrorContext().
			WithOperation("start SSH server").
			WithResource(srvCfg.Address()).
			WithSuggestion("Pick another port with --port").
			Wrap(err).
			BuildError()
	}

	fmt.Fprintf(app.stdout, "%s Serving the showcase on %s\n", SuccessStyle.Render("✓"), CmdStyle.Render(srv.Address()))
	fmt.Fprintf(app.stdout, "  Connect with: %s\n", CmdStyle.Render(fmt.Sprintf("ssh -p %d %s", srv.Port(), srv.Host())))

	var serveErr error
	select {
	case <-ctx.Done():
	case serveErr = <-srv.Err():
	}

	if err := srv.Stop(); err != nil {
		app.logger.Warn("stopping SSH server", "error", err)
	}
	return serveErr
}

// serverConfig merges the command flags over the ssh section of the
// configuration and makes sure a host key location exists.
func (a *App) serverConfig(opts serveOptions) (sshserver.Config, error) {
	host := a.cfg.SSH.Host
	if opts.host != "" {
		host = opts.host
	}
	port := a.cfg.SSH.Port
	if opts.port != 0 {
		port = opts.port
	}
	hostKey := a.cfg.SSH.HostKeyPath
	if opts.hostKey != "" {
		hostKey = opts.hostKey
	}

	if hostKey == "" {
		path, err := config.DefaultHostKeyPath()
		if err == nil {
			err = config.EnsureConfigDir()
		}
		if err != nil {
			a.renderIssue(issue.HostKeyUnavailableId)
			return sshserver.Config{}, issue.NewErrorContext().
				WithOperation("prepare SSH host key").
				WithSuggestion("Pass an explicit key location with --host-key").
				Wrap(err).
				BuildError()
		}
		hostKey = path
	}

	cfg := sshserver.Config{
		Host:        sshserver.HostAddress(host),
		Port:        sshserver.ListenPort(port),
		HostKeyPath: hostKey,
	}
	if err := cfg.Validate(); err != nil {
		return sshserver.Config{}, err
	}
	return cfg, nil
}

// sessionHandler builds one showcase per SSH session. Returning a nil model
// makes the middleware close the session.
func sessionHandler(app *App, cat *catalog.Catalog) sshserver.SessionHandler {
	return func(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
		pty, _, _ := sess.Pty()
		logger := app.logger.With("user", sess.User(), "remote", sess.RemoteAddr().String())

		style := string(app.cfg.UI.CodeStyle)
		if style == "" || style == catalog.StyleAuto {
			style = catalog.StyleLight
			if bm.MakeRenderer(sess).HasDarkBackground() {
				style = catalog.StyleDark
			}
		}

		out := termenv.NewOutput(sess)
		m, err := showcase.New(cat, showcase.Options{
			StartComponent: app.cfg.UI.StartComponent,
			Mouse:          app.cfg.UI.Mouse,
			CodeStyle:      style,
			Width:          pty.Window.Width,
			Height:         pty.Window.Height,
			Clipboard: func(text string) error {
				out.Copy(text)
				return nil
			},
			Logger: logger,
		})
		if err != nil {
			logger.Error("creating showcase session", "error", err)
			return nil, nil
		}
		logger.Info("session started", "term", pty.Term, "width", pty.Window.Width, "height", pty.Window.Height)
		return m, m.ProgramOptions()
	}
}
