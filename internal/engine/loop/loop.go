// Package loop runs the per-frame task that drives updates and rendering.
package loop

import (
	"context"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/gotham-story/internal/logger"
)

// Frame describes one tick of the loop.
type Frame struct {
	// Index counts frames from zero.
	Index uint64
	// Elapsed is the time since the first frame.
	Elapsed time.Duration
	// Delta is the time since the previous frame.
	Delta time.Duration
}

// Seconds returns Delta in seconds.
func (f Frame) Seconds() float64 {
	return f.Delta.Seconds()
}

// Func is called once per frame. A non-nil error ends the loop.
type Func func(Frame) error

// Loop repeatedly calls a Func until stopped or cancelled.
type Loop struct {
	fn Func

	// Now is the clock used by Run. Defaults to time.Now.
	Now func() time.Time
	// Report adds fields to the once-a-second fps line.
	Report func() []zap.Field

	start   time.Time
	last    time.Time
	elapsed time.Duration
	index   uint64
	stopped atomic.Bool

	log *zap.Logger
}

// New creates a loop around fn.
func New(fn Func) *Loop {
	return &Loop{
		fn:  fn,
		Now: time.Now,
		log: logger.Named("loop"),
	}
}

// Run calls the frame function until ctx is cancelled, Stop is called or the
// function returns an error. Cancellation and Stop are not errors.
func (l *Loop) Run(ctx context.Context) error {
	l.stopped.Store(false)
	l.start = l.Now()
	l.last = l.start

	fpsFrames := 0
	fpsTimer := l.start

	l.log.Debug("loop started")
	for {
		select {
		case <-ctx.Done():
			l.log.Debug("loop cancelled", zap.Uint64("frames", l.index))
			return nil
		default:
		}
		if l.stopped.Load() {
			l.log.Debug("loop stopped", zap.Uint64("frames", l.index))
			return nil
		}

		now := l.Now()
		frame := Frame{
			Index:   l.index,
			Elapsed: now.Sub(l.start),
			Delta:   now.Sub(l.last),
		}
		l.last = now
		l.elapsed = frame.Elapsed

		if err := l.fn(frame); err != nil {
			return err
		}
		l.index++

		fpsFrames++
		if now.Sub(fpsTimer) >= time.Second {
			fields := []zap.Field{zap.Int("count", fpsFrames), zap.Duration("dt", frame.Delta)}
			if l.Report != nil {
				fields = append(fields, l.Report()...)
			}
			l.log.Debug("fps", fields...)
			fpsFrames = 0
			fpsTimer = now
		}
	}
}

// Step runs exactly n frames, each delta apart, without consulting the
// clock. Elapsed continues from any previous Step.
func (l *Loop) Step(n int, delta time.Duration) error {
	for i := 0; i < n; i++ {
		if l.stopped.Load() {
			return nil
		}
		if l.index > 0 {
			l.elapsed += delta
		}
		frame := Frame{Index: l.index, Elapsed: l.elapsed}
		if l.index > 0 {
			frame.Delta = delta
		}
		if err := l.fn(frame); err != nil {
			return err
		}
		l.index++
	}
	return nil
}

// Stop ends the loop after the current frame.
func (l *Loop) Stop() {
	l.stopped.Store(true)
}

// Frames returns the number of frames run so far.
func (l *Loop) Frames() uint64 {
	return l.index
}
