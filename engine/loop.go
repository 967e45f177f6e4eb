package engine

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

const (
	// Stalled frames simulate at most this much time, bounding
	// integration error after a hitch.
	maxFrameDelta = 0.05

	defaultFrameInterval = time.Second / 60
)

// Loop drives a session: measure delta time, update, render, repeat
// until stopped. It owns the renderer; the session and surface come
// from the host.
type Loop struct {
	sess *Session
	rend *Renderer
	surf Surface
	log  zerolog.Logger

	interval time.Duration
	now      func() time.Time

	running atomic.Bool
	stopped atomic.Bool
}

// NewLoop wires a session to a surface. Missing either is fatal here,
// before any frame runs.
func NewLoop(s *Session, surf Surface, log zerolog.Logger) (*Loop, error) {
	if s == nil {
		return nil, errors.New("loop: nil session")
	}
	if surf == nil {
		return nil, errors.New("loop: nil surface")
	}
	return &Loop{
		sess:     s,
		rend:     NewRenderer(),
		surf:     surf,
		log:      log,
		interval: defaultFrameInterval,
		now:      time.Now,
	}, nil
}

// Step runs a single frame with an explicit delta time in seconds:
// clamp, update, render. A failed present is logged and that frame's
// output dropped; the simulation result stands. Returns true when the
// session ended this frame.
func (l *Loop) Step(dt float64) bool {
	if dt > maxFrameDelta {
		dt = maxFrameDelta
	}
	if dt < 0 {
		dt = 0
	}
	over := l.sess.Update(dt)
	if err := l.rend.Render(l.sess, l.surf); err != nil {
		l.log.Warn().Err(err).Msg("present failed, frame skipped")
	}
	return over
}

// Run blocks, ticking frames until the context is canceled, Stop is
// called, or the session ends. A panic inside the engine is caught
// here, surfaced as an error, and followed by a forced Stop.
func (l *Loop) Run(ctx context.Context) (err error) {
	if !l.running.CompareAndSwap(false, true) {
		return errors.New("loop: already running")
	}
	defer l.running.Store(false)
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("loop: engine fault: %v", r)
			l.log.Error().Err(err).Msg("engine fault")
			l.Stop()
		}
	}()

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	last := l.now()
	for !l.stopped.Load() {
		select {
		case <-ctx.Done():
			l.Stop()
			return ctx.Err()
		case <-ticker.C:
		}
		if l.stopped.Load() {
			break
		}
		now := l.now()
		dt := now.Sub(last).Seconds()
		last = now
		if l.Step(dt) {
			l.Stop()
			break
		}
	}
	return nil
}

// Stop ends the loop. Idempotent and safe before Run: the flag is
// checked before every frame, and all transient input latches are
// cleared so a future session starts clean.
func (l *Loop) Stop() {
	if l.stopped.CompareAndSwap(false, true) {
		l.sess.Input.Reset()
		l.log.Debug().Msg("loop stopped")
	}
}

// Running reports whether Run is currently active.
func (l *Loop) Running() bool {
	return l.running.Load()
}
