// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/a11yterm/a11yterm/internal/issue"
	"github.com/a11yterm/a11yterm/internal/tui"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()

	path := filepath.Join(dir, ConfigFileName+"."+ConfigFileExt)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	if cfg.UI.Theme != tui.ThemeDefault {
		t.Errorf("expected default theme, got %s", cfg.UI.Theme)
	}
	if cfg.UI.Accessible {
		t.Error("expected accessible to be false by default")
	}
	if !cfg.UI.Mouse {
		t.Error("expected mouse to be enabled by default")
	}
	if cfg.UI.StartComponent != "" {
		t.Errorf("expected empty start component, got %q", cfg.UI.StartComponent)
	}
	if cfg.UI.CodeStyle != CodeStyleAuto {
		t.Errorf("expected auto code style, got %s", cfg.UI.CodeStyle)
	}
	if cfg.Log.Level != LogLevelInfo {
		t.Errorf("expected info log level, got %s", cfg.Log.Level)
	}
	if cfg.SSH.Host != DefaultSSHHost || cfg.SSH.Port != DefaultSSHPort {
		t.Errorf("expected %s:%d, got %s:%d", DefaultSSHHost, DefaultSSHPort, cfg.SSH.Host, cfg.SSH.Port)
	}
	if valid, errs := cfg.IsValid(); !valid {
		t.Errorf("default config should be valid, got %v", errs)
	}
}

func TestConfigDir(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG_CONFIG_HOME is only consulted on Linux")
	}

	t.Setenv("XDG_CONFIG_HOME", "/tmp/test-xdg-config")

	dir, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir() returned error: %v", err)
	}
	if want := filepath.Join("/tmp/test-xdg-config", AppName); dir != want {
		t.Errorf("ConfigDir() = %s, want %s", dir, want)
	}

	t.Setenv("XDG_CONFIG_HOME", "")
	dir, err = ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir() returned error: %v", err)
	}
	home, _ := os.UserHomeDir()
	if want := filepath.Join(home, ".config", AppName); dir != want {
		t.Errorf("ConfigDir() = %s, want %s", dir, want)
	}
}

func TestConfigDirOverride(t *testing.T) {
	dir := t.TempDir()
	SetConfigDirOverride(dir)
	t.Cleanup(Reset)

	got, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir() returned error: %v", err)
	}
	if got != dir {
		t.Errorf("ConfigDir() = %s, want %s", got, dir)
	}

	key, err := DefaultHostKeyPath()
	if err != nil {
		t.Fatalf("DefaultHostKeyPath() returned error: %v", err)
	}
	if want := filepath.Join(dir, HostKeyFileName); key != want {
		t.Errorf("DefaultHostKeyPath() = %s, want %s", key, want)
	}

	Reset()
	if configDirOverride != "" {
		t.Error("Reset() should clear the override")
	}
}

func TestLoad_ReturnsDefaultsWhenNoConfigFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfg, path, err := loadWithOptions(context.Background(), LoadOptions{ConfigDirPath: dir, BaseDir: dir})
	if err != nil {
		t.Fatalf("loadWithOptions() returned error: %v", err)
	}
	if path != "" {
		t.Errorf("resolved path = %q, want empty", path)
	}
	if *cfg != *DefaultConfig() {
		t.Errorf("config = %+v, want defaults", cfg)
	}
}

func TestLoad_MergesFileOverDefaults(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	want := writeConfig(t, dir, `
ui: {
	theme: "dracula"
	mouse: false
	start_component: "modal"
}
log: level: "debug"
ssh: port: 2222
`)

	cfg, path, err := loadWithOptions(context.Background(), LoadOptions{ConfigDirPath: dir})
	if err != nil {
		t.Fatalf("loadWithOptions() returned error: %v", err)
	}
	if path != want {
		t.Errorf("resolved path = %q, want %q", path, want)
	}
	if cfg.UI.Theme != tui.ThemeDracula {
		t.Errorf("theme = %s, want dracula", cfg.UI.Theme)
	}
	if cfg.UI.Mouse {
		t.Error("mouse should be disabled")
	}
	if cfg.UI.StartComponent != "modal" {
		t.Errorf("start component = %q, want modal", cfg.UI.StartComponent)
	}
	if cfg.UI.CodeStyle != CodeStyleAuto {
		t.Errorf("code style = %s, want the auto default", cfg.UI.CodeStyle)
	}
	if cfg.Log.Level != LogLevelDebug {
		t.Errorf("log level = %s, want debug", cfg.Log.Level)
	}
	if cfg.SSH.Port != 2222 || cfg.SSH.Host != DefaultSSHHost {
		t.Errorf("ssh = %+v, want default host on port 2222", cfg.SSH)
	}
}

func TestLoad_FallsBackToBaseDir(t *testing.T) {
	t.Parallel()

	cfgDir := t.TempDir()
	baseDir := t.TempDir()
	want := writeConfig(t, baseDir, `ui: code_style: "notty"`)

	cfg, path, err := loadWithOptions(context.Background(), LoadOptions{ConfigDirPath: cfgDir, BaseDir: baseDir})
	if err != nil {
		t.Fatalf("loadWithOptions() returned error: %v", err)
	}
	if path != want {
		t.Errorf("resolved path = %q, want %q", path, want)
	}
	if cfg.UI.CodeStyle != CodeStyleNoTTY {
		t.Errorf("code style = %s, want notty", cfg.UI.CodeStyle)
	}
}

func TestLoad_CustomPath(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	custom := filepath.Join(dir, "custom.cue")
	if err := os.WriteFile(custom, []byte(`ui: accessible: true`), 0o644); err != nil {
		t.Fatal(err)
	}
	// A file in the config directory must be ignored when --config is set.
	writeConfig(t, dir, `ui: accessible: false`)

	cfg, path, err := loadWithOptions(context.Background(), LoadOptions{ConfigFilePath: custom, ConfigDirPath: dir})
	if err != nil {
		t.Fatalf("loadWithOptions() returned error: %v", err)
	}
	if path != custom {
		t.Errorf("resolved path = %q, want %q", path, custom)
	}
	if !cfg.UI.Accessible {
		t.Error("accessible should come from the custom file")
	}
}

func TestLoad_CustomPath_NotFound(t *testing.T) {
	t.Parallel()

	missing := filepath.Join(t.TempDir(), "missing.cue")
	_, _, err := loadWithOptions(context.Background(), LoadOptions{ConfigFilePath: missing})
	if err == nil {
		t.Fatal("expected error for a missing config file")
	}

	var ae *issue.ActionableError
	if !errors.As(err, &ae) {
		t.Fatalf("expected *issue.ActionableError, got %T", err)
	}
	if ae.Resource != missing {
		t.Errorf("Resource = %q, want %q", ae.Resource, missing)
	}
	if !ae.HasSuggestions() {
		t.Error("expected suggestions")
	}
}

func TestLoad_InvalidFiles(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		wantMsg string
	}{
		{"syntax error", `ui: {`, ""},
		{"unknown theme", `ui: theme: "solarized"`, "ui.theme"},
		{"unknown field", `ui: colors: true`, "ui.colors"},
		{"port out of range", `ssh: port: 70000`, "ssh.port"},
		{"wrong type", `ui: mouse: "yes"`, "ui.mouse"},
		{"uppercase start component", `ui: start_component: "Modal"`, "ui.start_component"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			writeConfig(t, dir, tt.content)

			_, _, err := loadWithOptions(context.Background(), LoadOptions{ConfigDirPath: dir})
			if err == nil {
				t.Fatal("expected an error")
			}
			var ae *issue.ActionableError
			if !errors.As(err, &ae) {
				t.Fatalf("expected *issue.ActionableError, got %T", err)
			}
			if ae.Operation != "load configuration" {
				t.Errorf("Operation = %q, want load configuration", ae.Operation)
			}
			if tt.wantMsg != "" && !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q should mention %q", err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestLoad_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := loadWithOptions(ctx, LoadOptions{ConfigDirPath: t.TempDir()})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestGenerateCUE_RoundTrip(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.UI.Theme = tui.ThemeCatppuccin
	cfg.UI.StartComponent = "select"
	cfg.Log.File = "/tmp/a11yterm.log"
	cfg.SSH.HostKeyPath = "/tmp/key"

	content := GenerateCUE(cfg)
	for _, want := range []string{
		`theme: "catppuccin"`,
		`start_component: "select"`,
		`file: "/tmp/a11yterm.log"`,
		`port: 23234`,
		`host_key_path: "/tmp/key"`,
	} {
		if !strings.Contains(content, want) {
			t.Errorf("GenerateCUE() missing %q:\n%s", want, content)
		}
	}

	dir := t.TempDir()
	writeConfig(t, dir, content)
	loaded, _, err := loadWithOptions(context.Background(), LoadOptions{ConfigDirPath: dir})
	if err != nil {
		t.Fatalf("generated config does not load: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("loaded = %+v, want %+v", loaded, cfg)
	}
}

func TestGenerateCUE_OmitsEmptyOptionalFields(t *testing.T) {
	t.Parallel()

	content := GenerateCUE(DefaultConfig())
	for _, unwanted := range []string{"start_component", "file:", "host_key_path"} {
		if strings.Contains(content, unwanted) {
			t.Errorf("GenerateCUE() should omit %q:\n%s", unwanted, content)
		}
	}
}

func TestCreateDefaultConfig(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	SetConfigDirOverride(dir)
	t.Cleanup(Reset)

	path, created, err := CreateDefaultConfig()
	if err != nil {
		t.Fatalf("CreateDefaultConfig() returned error: %v", err)
	}
	if !created {
		t.Error("expected the file to be created")
	}
	if want := filepath.Join(dir, "config.cue"); path != want {
		t.Errorf("path = %s, want %s", path, want)
	}

	// A second call leaves the existing file alone.
	if err := os.WriteFile(path, []byte(`ui: mouse: false`), 0o644); err != nil {
		t.Fatal(err)
	}
	_, created, err = CreateDefaultConfig()
	if err != nil {
		t.Fatalf("second CreateDefaultConfig() returned error: %v", err)
	}
	if created {
		t.Error("existing file should not be overwritten")
	}
	data, _ := os.ReadFile(path)
	if string(data) != `ui: mouse: false` {
		t.Errorf("file content changed: %s", data)
	}
}

func TestSave(t *testing.T) {
	dir := t.TempDir()
	SetConfigDirOverride(dir)
	t.Cleanup(Reset)

	cfg := DefaultConfig()
	cfg.UI.Accessible = true
	if err := Save(cfg); err != nil {
		t.Fatalf("Save() returned error: %v", err)
	}

	loaded, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: dir})
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if !loaded.UI.Accessible {
		t.Error("saved accessible flag was not loaded back")
	}
}

func TestLogLevel_Level(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   LogLevel
		want log.Level
	}{
		{LogLevelDebug, log.DebugLevel},
		{LogLevelInfo, log.InfoLevel},
		{LogLevelWarn, log.WarnLevel},
		{LogLevelError, log.ErrorLevel},
		{LogLevel("loud"), log.InfoLevel},
	}
	for _, tt := range tests {
		if got := tt.in.Level(); got != tt.want {
			t.Errorf("%q.Level() = %v, want %v", tt.in, got, tt.want)
		}
	}
}
