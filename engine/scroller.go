package engine

import (
	"math"
	"time"
)

// Scroller animates a fling along the scroll axis under constant
// deceleration. Time is passed in explicitly.
type Scroller struct {
	deceleration float64

	start    time.Time
	duration time.Duration
	velocity float64 // initial speed, always >= 0
	sign     int

	startY, finalY, currY int
	minY, maxY            int

	finished bool
}

// NewScroller returns a finished scroller.
func NewScroller(deceleration float64) *Scroller {
	return &Scroller{deceleration: deceleration, finished: true}
}

// Fling starts an animation at startY with velocityY units per second. The
// path never leaves [minY, maxY].
func (s *Scroller) Fling(startY int, velocityY float64, minY, maxY int, now time.Time) {
	s.start = now
	s.startY, s.currY = startY, startY
	s.minY, s.maxY = minY, maxY
	s.velocity = math.Abs(velocityY)
	s.sign = 1
	if velocityY < 0 {
		s.sign = -1
	}

	seconds := s.velocity / s.deceleration
	s.duration = time.Duration(seconds * float64(time.Second))
	distance := s.velocity * s.velocity / (2 * s.deceleration)
	s.finalY = clampInt(addSaturated(startY, s.sign*int(math.Round(distance))), minY, maxY)
	s.finished = s.finalY == startY
}

// ComputeScrollOffset advances the animation to now. It returns false when
// the animation had already finished before this call.
func (s *Scroller) ComputeScrollOffset(now time.Time) bool {
	if s.finished {
		return false
	}

	elapsed := now.Sub(s.start)
	if elapsed >= s.duration {
		s.currY = s.finalY
		s.finished = true
		return true
	}

	t := elapsed.Seconds()
	distance := s.velocity*t - s.deceleration*t*t/2
	y := addSaturated(s.startY, s.sign*int(math.Round(distance)))
	// The path stops at finalY even if SetFinalY moved it closer.
	if s.sign > 0 {
		y = min(y, s.finalY)
	} else {
		y = max(y, s.finalY)
	}
	s.currY = clampInt(y, s.minY, s.maxY)
	if s.currY == s.finalY {
		s.finished = true
	}
	return true
}

// SetFinalY moves the resting position of a running animation.
func (s *Scroller) SetFinalY(y int) {
	s.finalY = y
}

// ForceFinished stops the animation where it is.
func (s *Scroller) ForceFinished() {
	s.finished = true
	s.finalY = s.currY
}

// IsFinished reports whether the animation is over.
func (s *Scroller) IsFinished() bool {
	return s.finished
}

// CurrY returns the position of the last computed step.
func (s *Scroller) CurrY() int {
	return s.currY
}

// FinalY returns the position the animation ends at.
func (s *Scroller) FinalY() int {
	return s.finalY
}

// Duration returns the length of the current animation.
func (s *Scroller) Duration() time.Duration {
	return s.duration
}

func clampInt(v, lo, hi int) int {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}

// addSaturated adds without wrapping around.
func addSaturated(a, b int) int {
	if b > 0 && a > math.MaxInt-b {
		return math.MaxInt
	}
	if b < 0 && a < math.MinInt-b {
		return math.MinInt
	}
	return a + b
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
