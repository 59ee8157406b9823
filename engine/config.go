package engine

import (
	"errors"
	"fmt"

	"github.com/ayn2op/carousel/perspective"
)

// Config holds the layout and physics settings of an Engine. Lengths are in
// layout units (pixels, or cells for a terminal host) and velocities in
// units per second.
type Config struct {
	// Spacing is the stacking step between adjacent elements as a fraction of
	// ElementHeight. Below 1 elements overlap, above 1 they leave a gap.
	Spacing float64

	ElementWidth  int
	ElementHeight int

	// SlowDownCoefficient divides drag deltas and fling velocities. Must be
	// at least 1.
	SlowDownCoefficient int

	// InitialSelection is the index seeded by the first layout.
	InitialSelection int

	// TouchSlop is the displacement a pointer must travel before a drag
	// starts.
	TouchSlop int

	// MinimumVelocity is the |vx|+|vy| a release must exceed to fling.
	MinimumVelocity float64
	// MaximumVelocity caps the estimated release velocity per axis.
	MaximumVelocity float64
	// Deceleration of a fling, in units per second squared.
	Deceleration float64

	// ShrinkOnRefill evicts elements that left the viewport to the recycling
	// pool during refill. When false the window only grows, except that a
	// scroll landing more than a viewport past the window rebuilds it.
	ShrinkOnRefill bool

	// AlignOnRest springs the selected element to the viewport center when a
	// drag or fling ends.
	AlignOnRest bool
	// AlignFrequency is the angular frequency of the alignment spring.
	AlignFrequency float64
	// FrameRate is the tick rate the host drives ComputeScroll at.
	FrameRate int

	// Perspective enables the cover-flow transform. Nil lays elements out
	// flat.
	Perspective *perspective.Params
}

// DefaultConfig returns the flat variant with stock settings.
func DefaultConfig() Config {
	return Config{
		Spacing:             0.5,
		ElementWidth:        360,
		ElementHeight:       240,
		SlowDownCoefficient: 1,
		TouchSlop:           8,
		MinimumVelocity:     50,
		MaximumVelocity:     8000,
		Deceleration:        2000,
		AlignFrequency:      6,
		FrameRate:           60,
	}
}

// Validate reports every violated constraint, joined.
func (c Config) Validate() error {
	var errs []error
	invalid := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfiguration}, args...)...))
	}

	if c.SlowDownCoefficient < 1 {
		invalid("slow-down coefficient must be at least 1, got %d", c.SlowDownCoefficient)
	}
	if c.Spacing <= 0 {
		invalid("spacing must be positive, got %v", c.Spacing)
	}
	if c.ElementWidth <= 0 || c.ElementHeight <= 0 {
		invalid("element size must be positive, got %dx%d", c.ElementWidth, c.ElementHeight)
	} else if c.Spacing > 0 && c.step() < 1 {
		invalid("spacing %v leaves no step between elements of height %d", c.Spacing, c.ElementHeight)
	}
	if c.InitialSelection < 0 {
		invalid("initial selection must not be negative, got %d", c.InitialSelection)
	}
	if c.TouchSlop < 0 {
		invalid("touch slop must not be negative, got %d", c.TouchSlop)
	}
	if c.Deceleration <= 0 {
		invalid("deceleration must be positive, got %v", c.Deceleration)
	}
	if c.MaximumVelocity < c.MinimumVelocity {
		invalid("maximum velocity %v is below minimum velocity %v", c.MaximumVelocity, c.MinimumVelocity)
	}
	if c.FrameRate <= 0 {
		invalid("frame rate must be positive, got %d", c.FrameRate)
	}
	if c.AlignFrequency <= 0 {
		invalid("align frequency must be positive, got %v", c.AlignFrequency)
	}
	if c.Perspective != nil && c.Perspective.Radius < 1 {
		invalid("perspective radius must be at least 1, got %v", c.Perspective.Radius)
	}

	return errors.Join(errs...)
}

// step is the axial distance between the tops of adjacent elements.
func (c Config) step() int {
	return int(float64(c.ElementHeight) * c.Spacing)
}

// overlap is the part of an element covered by its sibling; the window is
// kept filled this far beyond both viewport edges.
func (c Config) overlap() int {
	if c.Perspective != nil {
		return 0
	}
	return max(0, int(float64(c.ElementHeight)*(1-c.Spacing)))
}
