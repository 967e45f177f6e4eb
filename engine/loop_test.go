package engine

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func newTestLoop(t *testing.T) *Loop {
	t.Helper()
	s := newTestSession(Normal)
	l, err := NewLoop(s, NewBufferSurface(32, 24, nil), zerolog.Nop())
	if err != nil {
		t.Fatalf("new loop: %v", err)
	}
	return l
}

func TestNewLoopValidation(t *testing.T) {
	if _, err := NewLoop(nil, NewBufferSurface(4, 4, nil), zerolog.Nop()); err == nil {
		t.Error("nil session should be rejected")
	}
	if _, err := NewLoop(newTestSession(Normal), nil, zerolog.Nop()); err == nil {
		t.Error("nil surface should be rejected")
	}
}

func TestStepClampsDelta(t *testing.T) {
	l := newTestLoop(t)
	l.Step(1.0) // a one second hitch simulates only the cap
	if got := l.sess.GameTime(); math.Abs(got-maxFrameDelta) > 1e-9 {
		t.Errorf("game time after clamped step = %f, want %f", got, maxFrameDelta)
	}
	l.Step(-1.0)
	if got := l.sess.GameTime(); math.Abs(got-maxFrameDelta) > 1e-9 {
		t.Errorf("negative delta should simulate nothing, time=%f", got)
	}
}

func TestStepReportsSessionEnd(t *testing.T) {
	l := newTestLoop(t)
	if l.Step(0.016) {
		t.Error("healthy session should keep running")
	}
	l.sess.Input.Exit = true
	if !l.Step(0.016) {
		t.Error("exit should end the frame loop")
	}
}

func TestStepSurvivesPresentFailure(t *testing.T) {
	s := newTestSession(Normal)
	surf := NewBufferSurface(32, 24, func(*FrameBuffer) error {
		return errors.New("display gone")
	})
	l, err := NewLoop(s, surf, zerolog.Nop())
	if err != nil {
		t.Fatalf("new loop: %v", err)
	}
	l.Step(0.016) // frame dropped, simulation continues
	if s.GameTime() == 0 {
		t.Error("simulation should advance despite present failure")
	}
}

func TestRunHonorsContext(t *testing.T) {
	l := newTestLoop(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := l.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("canceled context should surface, got %v", err)
	}
	if l.Running() {
		t.Error("loop should not report running after return")
	}
}

func TestStopBeforeRun(t *testing.T) {
	l := newTestLoop(t)
	l.sess.Input.Fire = true
	l.Stop()
	if l.sess.Input.Fire {
		t.Error("stop should clear input latches")
	}
	if err := l.Run(context.Background()); err != nil {
		t.Errorf("run after stop should return immediately, got %v", err)
	}
}

func TestRunStopsOnSessionEnd(t *testing.T) {
	l := newTestLoop(t)
	l.interval = time.Millisecond
	l.sess.Input.Exit = true

	done := make(chan error, 1)
	go func() { done <- l.Run(context.Background()) }()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("run should end cleanly when the session exits, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("run did not stop after session end")
	}
}
