// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"testing"

	"github.com/a11yterm/a11yterm/internal/tui"
)

func TestLogLevel_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		level LogLevel
		want  bool
	}{
		{LogLevelDebug, true},
		{LogLevelInfo, true},
		{LogLevelWarn, true},
		{LogLevelError, true},
		{"", false},
		{"trace", false},
		{"INFO", false},
	}
	for _, tt := range tests {
		valid, errs := tt.level.IsValid()
		if valid != tt.want {
			t.Errorf("LogLevel(%q).IsValid() = %v, want %v", tt.level, valid, tt.want)
		}
		if !tt.want {
			if len(errs) == 0 || !errors.Is(errs[0], ErrInvalidLogLevel) {
				t.Errorf("LogLevel(%q) errors = %v, want ErrInvalidLogLevel", tt.level, errs)
			}
		}
	}
}

func TestCodeStyle_IsValid(t *testing.T) {
	t.Parallel()

	for _, s := range []CodeStyle{CodeStyleAuto, CodeStyleDark, CodeStyleLight, CodeStyleNoTTY} {
		if valid, errs := s.IsValid(); !valid {
			t.Errorf("CodeStyle(%q).IsValid() = false: %v", s, errs)
		}
	}

	valid, errs := CodeStyle("dracula").IsValid()
	if valid {
		t.Fatal("dracula is a theme, not a code style")
	}
	var styleErr *InvalidCodeStyleError
	if !errors.As(errs[0], &styleErr) || styleErr.Value != "dracula" {
		t.Errorf("errors = %v, want *InvalidCodeStyleError for dracula", errs)
	}
}

func TestSSHConfig_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		cfg       SSHConfig
		wantValid bool
		wantIs    []error
	}{
		{"defaults", SSHConfig{Host: DefaultSSHHost, Port: DefaultSSHPort}, true, nil},
		{"port zero", SSHConfig{Host: "localhost", Port: 0}, false, []error{ErrInvalidPort}},
		{"blank host", SSHConfig{Host: "  ", Port: 22}, false, []error{ErrInvalidHost}},
		{"both", SSHConfig{Port: 70000}, false, []error{ErrInvalidHost, ErrInvalidPort}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			valid, errs := tt.cfg.IsValid()
			if valid != tt.wantValid {
				t.Fatalf("IsValid() = %v, want %v", valid, tt.wantValid)
			}
			if tt.wantValid {
				return
			}
			if !errors.Is(errs[0], ErrInvalidSSHConfig) {
				t.Fatalf("error should wrap ErrInvalidSSHConfig, got %v", errs[0])
			}
			var sshErr *InvalidSSHConfigError
			if !errors.As(errs[0], &sshErr) {
				t.Fatalf("error should be *InvalidSSHConfigError, got %T", errs[0])
			}
			if len(sshErr.FieldErrors) != len(tt.wantIs) {
				t.Fatalf("got %d field errors, want %d", len(sshErr.FieldErrors), len(tt.wantIs))
			}
			for i, want := range tt.wantIs {
				if !errors.Is(sshErr.FieldErrors[i], want) {
					t.Errorf("field error %d = %v, want %v", i, sshErr.FieldErrors[i], want)
				}
			}
		})
	}
}

func TestConfig_IsValid_CollectsAllSections(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.UI.Theme = "solarized"
	cfg.Log.Level = "loud"
	cfg.SSH.Port = -1

	valid, errs := cfg.IsValid()
	if valid {
		t.Fatal("config should be invalid")
	}
	if !errors.Is(errs[0], ErrInvalidConfig) {
		t.Fatalf("error should wrap ErrInvalidConfig, got %v", errs[0])
	}
	var cfgErr *InvalidConfigError
	if !errors.As(errs[0], &cfgErr) {
		t.Fatalf("error should be *InvalidConfigError, got %T", errs[0])
	}
	if len(cfgErr.FieldErrors) != 3 {
		t.Fatalf("got %d section errors, want 3", len(cfgErr.FieldErrors))
	}

	var uiErr *InvalidUIConfigError
	if !errors.As(cfgErr.FieldErrors[0], &uiErr) {
		t.Fatalf("first section error should be *InvalidUIConfigError, got %T", cfgErr.FieldErrors[0])
	}
	if !errors.Is(uiErr.FieldErrors[0], tui.ErrInvalidTheme) {
		t.Errorf("UI field error = %v, want tui.ErrInvalidTheme", uiErr.FieldErrors[0])
	}
	if !errors.Is(cfgErr.FieldErrors[1], ErrInvalidLogConfig) {
		t.Errorf("second section error = %v, want ErrInvalidLogConfig", cfgErr.FieldErrors[1])
	}
	if !errors.Is(cfgErr.FieldErrors[2], ErrInvalidSSHConfig) {
		t.Errorf("third section error = %v, want ErrInvalidSSHConfig", cfgErr.FieldErrors[2])
	}
}
