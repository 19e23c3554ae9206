// SPDX-License-Identifier: MPL-2.0

package sshserver

import (
	"context"
	"errors"
	"testing"
)

func TestState_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		state State
		want  string
	}{
		{StateCreated, "created"},
		{StateStarting, "starting"},
		{StateRunning, "running"},
		{StateStopping, "stopping"},
		{StateStopped, "stopped"},
		{StateFailed, "failed"},
		{State(42), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("State(%d).String() = %q, want %q", tt.state, got, tt.want)
		}
	}
}

func TestState_Validate(t *testing.T) {
	t.Parallel()

	for s := StateCreated; s <= StateFailed; s++ {
		if err := s.Validate(); err != nil {
			t.Errorf("State(%d).Validate() = %v, want nil", s, err)
		}
	}

	err := State(-1).Validate()
	if !errors.Is(err, ErrInvalidState) {
		t.Fatalf("State(-1).Validate() = %v, want ErrInvalidState", err)
	}
	var stateErr *InvalidStateError
	if !errors.As(err, &stateErr) || stateErr.Value != -1 {
		t.Errorf("errors.As() got %+v", stateErr)
	}
}

func TestState_IsTerminal(t *testing.T) {
	t.Parallel()

	for s := StateCreated; s <= StateFailed; s++ {
		want := s == StateStopped || s == StateFailed
		if got := s.IsTerminal(); got != want {
			t.Errorf("%s.IsTerminal() = %v, want %v", s, got, want)
		}
	}
}

func TestLifecycle_Transitions(t *testing.T) {
	t.Parallel()

	l := newLifecycle()
	if l.current() != StateCreated {
		t.Fatalf("initial state = %s", l.current())
	}
	if err := l.begin(context.Background()); err != nil {
		t.Fatalf("begin() error = %v", err)
	}
	if err := l.begin(context.Background()); err == nil {
		t.Error("second begin() should fail")
	}

	l.running()
	select {
	case <-l.startedCh:
	default:
		t.Fatal("startedCh not closed after running()")
	}
	// A second call must not close the channel twice.
	l.running()

	if !l.stopping() {
		t.Fatal("stopping() = false for a running lifecycle")
	}
	if l.stopping() {
		t.Error("stopping() should only succeed once")
	}
	l.stopped()
	if l.current() != StateStopped {
		t.Errorf("state = %s, want stopped", l.current())
	}
	if _, ok := <-l.errCh; ok {
		t.Error("errCh should be closed after stopped()")
	}
}

func TestLifecycle_StopBeforeStart(t *testing.T) {
	t.Parallel()

	l := newLifecycle()
	if l.stopping() {
		t.Error("stopping() = true for a created lifecycle")
	}
	if l.current() != StateStopped {
		t.Errorf("state = %s, want stopped", l.current())
	}
	if err := l.begin(context.Background()); err == nil {
		t.Error("begin() after stop should fail")
	}
}

func TestLifecycle_BeginCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	l := newLifecycle()
	err := l.begin(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("begin() error = %v, want context.Canceled", err)
	}
	if l.current() != StateFailed {
		t.Errorf("state = %s, want failed", l.current())
	}
	if got := <-l.errCh; !errors.Is(got, context.Canceled) {
		t.Errorf("errCh = %v", got)
	}
}

func TestLifecycle_ReportDoesNotBlock(t *testing.T) {
	t.Parallel()

	l := newLifecycle()
	l.report(errors.New("first"))
	l.report(errors.New("second"))

	if got := <-l.errCh; got.Error() != "first" {
		t.Errorf("errCh = %v, want first", got)
	}
}
