package engine

import (
	"math"
	"time"
)

// VelocityTracker estimates pointer velocity from a stream of samples.
type VelocityTracker interface {
	// Add records the pointer position at t.
	Add(x, y int, t time.Time)
	// Velocity returns the estimate in units per second.
	Velocity() (vx, vy float64)
	// Reset drops all samples.
	Reset()
}

type sample struct {
	x, y int
	t    time.Time
}

// WindowedTracker estimates velocity from the displacement across the samples
// of a trailing time window.
type WindowedTracker struct {
	window      time.Duration
	maxVelocity float64
	samples     []sample
}

// NewWindowedTracker returns a tracker over the given trailing window whose
// per-axis estimate is capped at maxVelocity. A non-positive cap disables it.
func NewWindowedTracker(window time.Duration, maxVelocity float64) *WindowedTracker {
	return &WindowedTracker{window: window, maxVelocity: maxVelocity}
}

func (w *WindowedTracker) Add(x, y int, t time.Time) {
	w.samples = append(w.samples, sample{x: x, y: y, t: t})
	cutoff := t.Add(-w.window)
	drop := 0
	for drop < len(w.samples)-1 && w.samples[drop].t.Before(cutoff) {
		drop++
	}
	if drop > 0 {
		w.samples = append(w.samples[:0], w.samples[drop:]...)
	}
}

func (w *WindowedTracker) Velocity() (vx, vy float64) {
	if len(w.samples) < 2 {
		return 0, 0
	}
	first, last := w.samples[0], w.samples[len(w.samples)-1]
	dt := last.t.Sub(first.t).Seconds()
	if dt <= 0 {
		return 0, 0
	}
	vx = float64(last.x-first.x) / dt
	vy = float64(last.y-first.y) / dt
	return w.cap(vx), w.cap(vy)
}

func (w *WindowedTracker) Reset() {
	w.samples = w.samples[:0]
}

func (w *WindowedTracker) cap(v float64) float64 {
	if w.maxVelocity <= 0 {
		return v
	}
	return math.Copysign(math.Min(math.Abs(v), w.maxVelocity), v)
}
