// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/a11yterm/a11yterm/internal/catalog"
	"github.com/a11yterm/a11yterm/internal/config"
	"github.com/a11yterm/a11yterm/internal/sshserver"
)

var errBrokenConfig = errors.New("broken config")

// stubProvider serves a fixed configuration without touching the disk.
type stubProvider struct {
	cfg  *config.Config
	path string
	err  error
}

func (p *stubProvider) Load(context.Context, config.LoadOptions) (*config.Config, error) {
	if p.err != nil {
		return nil, p.err
	}
	cfg := config.DefaultConfig()
	if p.cfg != nil {
		*cfg = *p.cfg
	}
	return cfg, nil
}

func (p *stubProvider) Path(config.LoadOptions) (string, error) {
	return p.path, nil
}

// execute runs the command tree with args and returns what it wrote.
func execute(t *testing.T, provider config.Provider, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	if provider == nil {
		provider = &stubProvider{}
	}
	var out, errOut bytes.Buffer
	root := newRootCommand(NewApp(Dependencies{Config: provider, Stdout: &out, Stderr: &errOut}))
	root.SetArgs(args)
	root.SetOut(&out)
	root.SetErr(&errOut)
	err = root.ExecuteContext(t.Context())
	return out.String(), errOut.String(), err
}

func TestList(t *testing.T) {
	t.Parallel()

	out, _, err := execute(t, nil, "list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	cat, err := catalog.Load()
	if err != nil {
		t.Fatalf("catalog.Load: %v", err)
	}
	for _, c := range cat.Components {
		if !strings.Contains(out, c.ID) || !strings.Contains(out, c.Name) {
			t.Errorf("list output misses %s (%s):\n%s", c.ID, c.Name, out)
		}
	}
}

func TestDocs_Raw(t *testing.T) {
	t.Parallel()

	out, _, err := execute(t, nil, "docs", "button", "--raw")
	if err != nil {
		t.Fatalf("docs: %v", err)
	}
	if !strings.HasPrefix(out, "# Button\n") {
		t.Errorf("docs --raw output = %q, want Markdown page", out)
	}
	if !strings.Contains(out, "## Accessibility features") {
		t.Errorf("docs --raw output misses the features section:\n%s", out)
	}
}

func TestDocs_Rendered(t *testing.T) {
	t.Parallel()

	out, _, err := execute(t, nil, "docs", "select", "--style", "notty", "--width", "60")
	if err != nil {
		t.Fatalf("docs: %v", err)
	}
	if !strings.Contains(out, "Select") {
		t.Errorf("rendered page misses the title:\n%s", out)
	}
}

func TestDocs_UnknownComponent(t *testing.T) {
	t.Parallel()

	_, _, err := execute(t, nil, "docs", "slider")
	if !errors.Is(err, catalog.ErrComponentNotFound) {
		t.Fatalf("docs slider error = %v, want ErrComponentNotFound", err)
	}
	if !strings.Contains(err.Error(), "open component") {
		t.Errorf("error %q lacks the operation", err)
	}
}

func TestDocs_CatalogFile(t *testing.T) {
	t.Parallel()

	_, _, err := execute(t, nil, "docs", "button", "--catalog", filepath.Join(t.TempDir(), "missing.cue"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("docs --catalog error = %v, want os.ErrNotExist", err)
	}
}

func TestRun_Accessible(t *testing.T) {
	t.Parallel()

	out, _, err := execute(t, nil, "run", "modal", "--accessible")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.HasPrefix(out, "# Modal") {
		t.Errorf("accessible run output = %q, want the modal page", out)
	}
}

func TestRun_StartComponentFromConfig(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.UI.StartComponent = "alert"
	out, _, err := execute(t, &stubProvider{cfg: cfg}, "--accessible")
	if err != nil {
		t.Fatalf("root: %v", err)
	}
	if !strings.HasPrefix(out, "# Alert") {
		t.Errorf("output = %q, want the alert page", out)
	}
}

func TestRun_UnknownComponent(t *testing.T) {
	t.Parallel()

	_, _, err := execute(t, nil, "run", "slider", "--accessible")
	if !errors.Is(err, catalog.ErrComponentNotFound) {
		t.Fatalf("run slider error = %v, want ErrComponentNotFound", err)
	}
}

func TestSetup_InvalidLogLevel(t *testing.T) {
	t.Parallel()

	_, _, err := execute(t, nil, "list", "--log-level", "loud")
	if !errors.Is(err, config.ErrInvalidLogLevel) {
		t.Fatalf("error = %v, want ErrInvalidLogLevel", err)
	}
}

func TestSetup_BrokenConfigFallsBack(t *testing.T) {
	t.Parallel()

	out, stderr, err := execute(t, &stubProvider{err: errBrokenConfig}, "list")
	if err != nil {
		t.Fatalf("list with broken config: %v", err)
	}
	if !strings.Contains(stderr, "broken config") {
		t.Errorf("stderr = %q, want the load warning", stderr)
	}
	if !strings.Contains(out, "button") {
		t.Errorf("list output = %q, want components", out)
	}
}

func TestSetup_LogFile(t *testing.T) {
	t.Parallel()

	logPath := filepath.Join(t.TempDir(), "logs", "a11yterm.log")
	if _, _, err := execute(t, nil, "list", "--verbose", "--log-file", logPath); err != nil {
		t.Fatalf("list: %v", err)
	}

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	if !strings.Contains(string(data), "configuration ready") {
		t.Errorf("log file = %q, want the setup entry", data)
	}
}

func TestConfigShow(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.SSH.Port = 2222
	cfg.UI.StartComponent = "navigation"
	out, _, err := execute(t, &stubProvider{cfg: cfg, path: "/etc/a11yterm.cue"}, "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	for _, want := range []string{"/etc/a11yterm.cue", "2222", "navigation"} {
		if !strings.Contains(out, want) {
			t.Errorf("config show output misses %q:\n%s", want, out)
		}
	}
}

func TestConfigShow_LoadError(t *testing.T) {
	t.Parallel()

	_, _, err := execute(t, &stubProvider{err: errBrokenConfig}, "config", "show")
	if !errors.Is(err, errBrokenConfig) {
		t.Fatalf("config show error = %v, want %v", err, errBrokenConfig)
	}
}

func TestConfigDump(t *testing.T) {
	t.Parallel()

	out, _, err := execute(t, nil, "config", "dump")
	if err != nil {
		t.Fatalf("config dump: %v", err)
	}
	if out != config.GenerateCUE(config.DefaultConfig()) {
		t.Errorf("config dump output = %q", out)
	}
}

func TestConfigInitAndPath(t *testing.T) {
	// Not parallel: the config directory override is package-level state.
	dir := t.TempDir()
	config.SetConfigDirOverride(dir)
	t.Cleanup(config.Reset)

	out, _, err := execute(t, nil, "config", "init")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	if !strings.Contains(out, "Created default configuration") {
		t.Errorf("first init output = %q", out)
	}
	if _, err := os.Stat(filepath.Join(dir, "config.cue")); err != nil {
		t.Errorf("config file not written: %v", err)
	}

	out, _, err = execute(t, nil, "config", "init")
	if err != nil {
		t.Fatalf("second config init: %v", err)
	}
	if !strings.Contains(out, "already exists") {
		t.Errorf("second init output = %q", out)
	}

	out, _, err = execute(t, nil, "config", "path")
	if err != nil {
		t.Fatalf("config path: %v", err)
	}
	if !strings.Contains(out, dir) || !strings.Contains(out, "using defaults") {
		t.Errorf("config path output = %q", out)
	}
}

func TestServe_InvalidPort(t *testing.T) {
	t.Parallel()

	hostKey := filepath.Join(t.TempDir(), "host_key")
	_, _, err := execute(t, nil, "serve", "--port", "70000", "--host-key", hostKey)
	if !errors.Is(err, sshserver.ErrInvalidSSHConfig) {
		t.Fatalf("serve error = %v, want ErrInvalidSSHConfig", err)
	}
}

func TestServe_RejectsArgs(t *testing.T) {
	t.Parallel()

	if _, _, err := execute(t, nil, "serve", "extra"); err == nil {
		t.Fatal("serve extra: want an error")
	}
}

func TestRun_WatchRequiresCatalog(t *testing.T) {
	t.Parallel()

	_, _, err := execute(t, nil, "run", "--watch", "--accessible")
	if !errors.Is(err, ErrWatchRequiresCatalog) {
		t.Fatalf("run --watch error = %v, want ErrWatchRequiresCatalog", err)
	}
}
