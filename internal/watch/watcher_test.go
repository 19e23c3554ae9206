// SPDX-License-Identifier: MPL-2.0

package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"testing"
	"time"
)

const testDebounce = 50 * time.Millisecond

// startWatcher runs w until the test ends and returns its Run result channel.
func startWatcher(t *testing.T, w *Watcher) (cancel context.CancelFunc, errCh <-chan error) {
	t.Helper()

	ctx, cancelFn := context.WithCancel(t.Context())
	ch := make(chan error, 1)
	go func() { ch <- w.Run(ctx) }()
	t.Cleanup(cancelFn)
	return cancelFn, ch
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func waitChanged(t *testing.T, ch <-chan []string) []string {
	t.Helper()
	select {
	case changed := <-ch:
		return changed
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for callback")
		return nil
	}
}

func TestWatcher_Debounce(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	var (
		mu    sync.Mutex
		calls int
	)
	changedCh := make(chan []string, 4)

	w, err := New(Config{
		BaseDir:  dir,
		Debounce: 150 * time.Millisecond,
		OnChange: func(_ context.Context, changed []string) error {
			mu.Lock()
			calls++
			mu.Unlock()
			changedCh <- changed
			return nil
		},
	})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	cancel, errCh := startWatcher(t, w)

	for _, name := range []string{"c.cue", "a.cue", "b.cue"} {
		writeFile(t, filepath.Join(dir, name), "x")
		time.Sleep(10 * time.Millisecond)
	}

	changed := waitChanged(t, changedCh)
	if want := []string{"a.cue", "b.cue", "c.cue"}; !slices.Equal(changed, want) {
		t.Errorf("changed = %v, want %v", changed, want)
	}

	time.Sleep(300 * time.Millisecond)
	cancel()
	if err := <-errCh; err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if calls != 1 {
		t.Errorf("callbacks = %d, want 1", calls)
	}
}

func TestWatcher_Patterns(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	changedCh := make(chan []string, 4)

	w, err := New(Config{
		BaseDir:  dir,
		Patterns: []string{LiteralPattern("catalog.cue")},
		Debounce: testDebounce,
		OnChange: func(_ context.Context, changed []string) error {
			changedCh <- changed
			return nil
		},
	})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	startWatcher(t, w)

	writeFile(t, filepath.Join(dir, "notes.txt"), "x")
	time.Sleep(4 * testDebounce)
	writeFile(t, filepath.Join(dir, "catalog.cue"), "x")

	changed := waitChanged(t, changedCh)
	if !slices.Equal(changed, []string{"catalog.cue"}) {
		t.Errorf("changed = %v, want [catalog.cue]", changed)
	}
}

func TestWatcher_Ignore(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	changedCh := make(chan []string, 4)

	w, err := New(Config{
		BaseDir:  dir,
		Ignore:   []string{"**/*.log"},
		Debounce: testDebounce,
		OnChange: func(_ context.Context, changed []string) error {
			changedCh <- changed
			return nil
		},
	})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	startWatcher(t, w)

	writeFile(t, filepath.Join(dir, "debug.log"), "x")
	writeFile(t, filepath.Join(dir, ".catalog.cue.swp"), "x")
	time.Sleep(4 * testDebounce)
	writeFile(t, filepath.Join(dir, "catalog.cue"), "x")

	changed := waitChanged(t, changedCh)
	if !slices.Equal(changed, []string{"catalog.cue"}) {
		t.Errorf("changed = %v, want [catalog.cue]", changed)
	}
}

func TestWatcher_Recursive(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	sub := filepath.Join(dir, "components")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	changedCh := make(chan []string, 4)

	w, err := New(Config{
		BaseDir:   dir,
		Patterns:  []string{"**/*.cue"},
		Recursive: true,
		Debounce:  testDebounce,
		OnChange: func(_ context.Context, changed []string) error {
			changedCh <- changed
			return nil
		},
	})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	startWatcher(t, w)

	writeFile(t, filepath.Join(sub, "button.cue"), "x")

	changed := waitChanged(t, changedCh)
	if !slices.Equal(changed, []string{"components/button.cue"}) {
		t.Errorf("changed = %v, want [components/button.cue]", changed)
	}
}

func TestWatcher_CallbackErrorKeepsRunning(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	changedCh := make(chan []string, 4)

	w, err := New(Config{
		BaseDir:  dir,
		Debounce: testDebounce,
		OnChange: func(_ context.Context, changed []string) error {
			changedCh <- changed
			return errors.New("reload failed")
		},
	})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	startWatcher(t, w)

	writeFile(t, filepath.Join(dir, "one.cue"), "x")
	waitChanged(t, changedCh)
	writeFile(t, filepath.Join(dir, "two.cue"), "x")
	if changed := waitChanged(t, changedCh); !slices.Contains(changed, "two.cue") {
		t.Errorf("changed = %v, want two.cue", changed)
	}
}

func TestWatcher_ContextCancel(t *testing.T) {
	t.Parallel()

	w, err := New(Config{BaseDir: t.TempDir()})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	cancel, errCh := startWatcher(t, w)
	cancel()

	select {
	case err := <-errCh:
		if err != nil {
			t.Fatalf("Run() = %v, want nil", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run() did not return after cancellation")
	}
}

func TestWatcher_DoubleRun(t *testing.T) {
	t.Parallel()

	w, err := New(Config{BaseDir: t.TempDir()})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	if err := w.Run(ctx); err != nil {
		t.Fatalf("first Run() = %v, want nil", err)
	}
	if err := w.Run(t.Context()); !errors.Is(err, ErrAlreadyRunning) {
		t.Fatalf("second Run() = %v, want ErrAlreadyRunning", err)
	}
}

func TestNew_Errors(t *testing.T) {
	t.Parallel()

	if _, err := New(Config{BaseDir: t.TempDir(), Patterns: []string{"[invalid"}}); !errors.Is(err, ErrInvalidPattern) {
		t.Errorf("New(invalid pattern) = %v, want ErrInvalidPattern", err)
	}
	if _, err := New(Config{BaseDir: t.TempDir(), Ignore: []string{"a/[b"}}); !errors.Is(err, ErrInvalidPattern) {
		t.Errorf("New(invalid ignore) = %v, want ErrInvalidPattern", err)
	}
	if _, err := New(Config{BaseDir: filepath.Join(t.TempDir(), "missing")}); err == nil {
		t.Error("New(missing dir) = nil, want error")
	}
}

func TestNew_BaseDirIsAbsolute(t *testing.T) {
	t.Parallel()

	w, err := New(Config{BaseDir: t.TempDir()})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	t.Cleanup(func() { _ = w.fsw.Close() })

	if !filepath.IsAbs(w.BaseDir()) {
		t.Errorf("BaseDir() = %q, want an absolute path", w.BaseDir())
	}
}

func TestDefaultIgnores(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path    string
		ignored bool
	}{
		{"catalog.cue.swp", true},
		{"sub/.catalog.cue.swo", true},
		{"catalog.cue~", true},
		{".#catalog.cue", true},
		{"4913", true},
		{".DS_Store", true},
		{"catalog.cue", false},
		{"components/button.cue", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()
			if got := matchAny(defaultIgnores, tt.path); got != tt.ignored {
				t.Errorf("matchAny(defaultIgnores, %q) = %v, want %v", tt.path, got, tt.ignored)
			}
		})
	}
}

func TestLiteralPattern(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		match string
		other string
	}{
		{name: "catalog.cue", match: "catalog.cue", other: "catalog-cue"},
		{name: "my[1].cue", match: "my[1].cue", other: "my1.cue"},
		{name: "*.cue", match: "*.cue", other: "a.cue"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			pat := LiteralPattern(tt.name)
			if !matchAny([]string{pat}, tt.match) {
				t.Errorf("%q does not match %q", pat, tt.match)
			}
			if matchAny([]string{pat}, tt.other) {
				t.Errorf("%q matches %q", pat, tt.other)
			}
		})
	}
}
