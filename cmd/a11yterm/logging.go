// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/a11yterm/a11yterm/internal/config"
)

// newLogger builds the application logger. With a log file, records go to the
// file (appending) instead of stderr so they never tear through the TUI; the
// returned closer is nil otherwise.
func newLogger(cfg config.LogConfig, stderr io.Writer) (*log.Logger, io.Closer, error) {
	opts := log.Options{
		Level:           cfg.Level.Level(),
		Prefix:          config.AppName,
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
	}

	if cfg.File == "" {
		return log.NewWithOptions(stderr, opts), nil, nil
	}

	if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	opts.TimeFormat = time.RFC3339
	return log.NewWithOptions(f, opts), f, nil
}
