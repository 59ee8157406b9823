package engine

import (
	"time"

	"go.uber.org/zap"
)

// Recorder receives engine activity, typically to export it as metrics.
type Recorder interface {
	// Materialized is called for every element bound to a dataset index.
	// recycled reports whether the element came from the pool.
	Materialized(recycled bool)
	// Released is called for every element detached to the pool.
	Released()
	// SelectionChanged is called with the new absolute selection.
	SelectionChanged(index int)
	// TouchTransition is called when the touch state changes.
	TouchTransition(from, to TouchState)
	// WindowSize is called after every pass with the window length.
	WindowSize(n int)
}

type nopRecorder struct{}

func (nopRecorder) Materialized(bool) {}
func (nopRecorder) Released() {}
func (nopRecorder) SelectionChanged(int) {}
func (nopRecorder) TouchTransition(TouchState, TouchState) {}
func (nopRecorder) WindowSize(int) {}

// Option configures an Engine.
type Option func(*options)

type options struct {
	logger       *zap.Logger
	recorder     Recorder
	velocity     VelocityTracker
	clock        func() time.Time
	poolCapacity int
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithRecorder sets the activity recorder.
func WithRecorder(recorder Recorder) Option {
	return func(o *options) {
		if recorder != nil {
			o.recorder = recorder
		}
	}
}

// WithVelocityTracker replaces the default windowed velocity estimator.
func WithVelocityTracker(tracker VelocityTracker) Option {
	return func(o *options) {
		if tracker != nil {
			o.velocity = tracker
		}
	}
}

// WithClock sets the time source used by programmatic flings.
func WithClock(clock func() time.Time) Option {
	return func(o *options) {
		if clock != nil {
			o.clock = clock
		}
	}
}

// WithPoolCapacity bounds the recycling pool.
func WithPoolCapacity(capacity int) Option {
	return func(o *options) {
		o.poolCapacity = capacity
	}
}
