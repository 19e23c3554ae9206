// SPDX-License-Identifier: MPL-2.0

package sshserver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"strconv"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	bm "github.com/charmbracelet/wish/bubbletea"
	"github.com/charmbracelet/wish/logging"
)

type (
	// SessionHandler creates the program for one SSH session.
	SessionHandler func(sess ssh.Session) (tea.Model, []tea.ProgramOption)

	// Option configures a Server.
	Option func(*Server)

	// Server serves a Bubble Tea program per SSH session.
	// A Server instance is single-use: once stopped or failed, create a new instance.
	Server struct {
		*lifecycle

		// Immutable configuration (set at creation, never modified)
		cfg     Config
		handler SessionHandler
		logger  *log.Logger

		// Initialized during Start() - protected by srvMu
		srvMu    sync.Mutex
		srv      *ssh.Server
		listener net.Listener
		addr     string
	}
)

// WithLogger sets the server logger. Lifecycle events are logged at info,
// sessions at debug.
func WithLogger(logger *log.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New creates a new SSH server instance.
// The server is not started; call Start() to begin accepting connections.
func New(cfg Config, handler SessionHandler, opts ...Option) (*Server, error) {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if handler == nil {
		return nil, ErrNoHandler
	}

	s := &Server{
		lifecycle: newLifecycle(),
		cfg:       cfg,
		handler:   handler,
		logger:    log.NewWithOptions(io.Discard, log.Options{Prefix: "ssh-server"}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Start starts the SSH server and blocks until either:
//   - The server is ready to accept connections (returns nil)
//   - The server fails to start (returns error)
//   - The context is cancelled (returns context error)
//   - The startup timeout is exceeded (returns error)
//
// After Start() returns nil, use Err() to monitor for runtime errors.
func (s *Server) Start(ctx context.Context) error {
	if err := s.begin(ctx); err != nil {
		return err
	}

	startupCtx, startupCancel := context.WithTimeout(ctx, s.cfg.StartupTimeout)
	defer startupCancel()

	addr := s.cfg.Address()
	var lc net.ListenConfig
	listener, err := lc.Listen(startupCtx, "tcp", addr)
	if err != nil {
		s.fail(fmt.Errorf("failed to listen on %s: %w", addr, err))
		return s.err()
	}

	srvOpts := []ssh.Option{
		wish.WithAddress(addr),
		wish.WithIdleTimeout(s.cfg.IdleTimeout),
		wish.WithMiddleware(
			// Middlewares run last to first.
			bm.Middleware(bm.Handler(s.handler)),
			activeterm.Middleware(),
			logging.StructuredMiddlewareWithLogger(s.logger, log.DebugLevel),
		),
	}
	if s.cfg.HostKeyPath != "" {
		srvOpts = append(srvOpts, wish.WithHostKeyPath(s.cfg.HostKeyPath))
	}

	srv, err := wish.NewServer(srvOpts...)
	if err != nil {
		_ = listener.Close() // Best-effort cleanup on error
		s.fail(fmt.Errorf("failed to create SSH server: %w", err))
		return s.err()
	}

	s.srvMu.Lock()
	s.srv = srv
	s.listener = listener
	s.addr = listener.Addr().String()
	s.srvMu.Unlock()

	s.wg.Add(1)
	go s.serve()

	select {
	case <-s.startedCh:
		s.logger.Info("SSH server started", "address", s.addr)
		return nil
	case err := <-s.errCh:
		s.fail(err)
		return err
	case <-startupCtx.Done():
		_ = listener.Close() // Unblocks serve
		s.fail(fmt.Errorf("startup timeout: %w", startupCtx.Err()))
		return s.err()
	}
}

// Stop gracefully stops the SSH server.
// It blocks until all sessions are closed or the shutdown timeout is reached.
// Safe to call multiple times; subsequent calls are no-ops.
func (s *Server) Stop() error {
	if !s.stopping() {
		s.wg.Wait()
		return nil
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer shutdownCancel()

	var shutdownErr error
	s.srvMu.Lock()
	if s.srv != nil {
		if err := s.srv.Shutdown(shutdownCtx); err != nil && !isClosedConnError(err) {
			s.logger.Error("shutdown error", "error", err)
			shutdownErr = err
		}
	}
	if s.listener != nil {
		_ = s.listener.Close() // Best-effort cleanup during shutdown
	}
	s.srvMu.Unlock()

	s.wg.Wait()
	s.stopped()
	s.logger.Info("SSH server stopped")

	return shutdownErr
}

// Err returns a channel that receives fatal server errors.
// The channel is closed when the server stops.
func (s *Server) Err() <-chan error {
	return s.errCh
}

// State returns the current server state.
func (s *Server) State() State {
	return s.current()
}

// IsRunning returns whether the server is currently accepting sessions.
func (s *Server) IsRunning() bool {
	return s.State() == StateRunning
}

// Address returns the server's bound address (host:port). It is empty until
// the server is running and after it failed.
func (s *Server) Address() string {
	select {
	case <-s.startedCh:
		s.srvMu.Lock()
		defer s.srvMu.Unlock()
		return s.addr
	default:
		return ""
	}
}

// Port returns the server's listening port, or 0 if it is not running.
func (s *Server) Port() int {
	_, portStr, err := net.SplitHostPort(s.Address())
	if err != nil {
		return 0
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return 0
	}
	return port
}

// Host returns the server's configured host address.
func (s *Server) Host() string {
	return s.cfg.Host.String()
}

// Wait blocks until the server stops (either gracefully or due to error).
// Returns the error if the server failed, nil otherwise.
func (s *Server) Wait() error {
	s.wg.Wait()

	if s.State() == StateFailed {
		return s.err()
	}
	return nil
}

// serve runs the SSH server until it is shut down.
func (s *Server) serve() {
	defer s.wg.Done()

	s.srvMu.Lock()
	srv := s.srv
	listener := s.listener
	s.srvMu.Unlock()

	s.running()

	err := srv.Serve(listener)
	if err == nil || errors.Is(err, ssh.ErrServerClosed) || errors.Is(err, net.ErrClosed) {
		return
	}
	s.logger.Error("serve error", "error", err)
	s.report(fmt.Errorf("serve error: %w", err))
}

// isClosedConnError checks if the error is a "use of closed network connection" error.
func isClosedConnError(err error) bool {
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return errors.Is(opErr.Err, net.ErrClosed)
	}
	return false
}
