// Package perspective maps an element's distance from the viewport center to
// a rotation, scale, position adjustment and depth offset. Elements are
// modelled as following a circular arc whose radius is expressed in units of
// half the viewport height.
package perspective

import "math"

// Params holds the tuning of the transform.
type Params struct {
	// TuningReferenceSize is the viewport height the thresholds were tuned
	// for. Thresholds are scaled by TuningReferenceSize/viewportHeight.
	TuningReferenceSize float64

	// Distances from center, as fractions of half the viewport, at which the
	// respective effect saturates.
	RotationThreshold float64
	ScalingThreshold  float64
	AdjustThreshold   float64

	// AdjustMultiplier widens spacing near the center so adjacent elements
	// can pass each other.
	AdjustMultiplier float64

	MaxRotationDegrees float64
	MaxScale           float64

	// Radius of the circular path. The viewport spans -1..1, so values below
	// 1 are rejected by configuration validation.
	Radius float64

	PerspectiveMultiplier float64
}

// DefaultParams returns the stock cover-flow tuning.
func DefaultParams() Params {
	return Params{
		TuningReferenceSize:   1280,
		RotationThreshold:     0.3,
		ScalingThreshold:      0.3,
		AdjustThreshold:       0.1,
		AdjustMultiplier:      0.8,
		MaxRotationDegrees:    70,
		MaxScale:              1.2,
		Radius:                2,
		PerspectiveMultiplier: 1,
	}
}

// Transform is the per-element result of [Params.Compute].
type Transform struct {
	// Rotation around the horizontal axis, in degrees.
	Rotation float64
	// Scale before the depth offset is applied.
	Scale float64
	// PositionAdjust is an axial translation in layout units.
	PositionAdjust float64
	// Depth is subtracted from Scale to simulate receding elements.
	Depth float64
}

// Identity is the transform of an element drawn without perspective.
func Identity() Transform {
	return Transform{Scale: 1}
}

// EffectiveScale returns the scale the element is drawn at.
func (t Transform) EffectiveScale() float64 {
	return t.Scale - t.Depth
}

// RelativePosition normalizes center, an absolute axial position including the
// scroll offset, to the viewport half-height. The result is 0 at the viewport
// center, ±1 at its edges and unbounded beyond them.
func RelativePosition(center, scrollOffset, viewportHeight int) float64 {
	half := viewportHeight / 2
	if half == 0 {
		return 0
	}
	return float64(center-(scrollOffset+half)) / float64(half)
}

// Clamp ramps position linearly to ±1, saturating once |position| exceeds
// threshold. A non-positive threshold saturates immediately.
func Clamp(position, threshold float64) float64 {
	if threshold <= 0 {
		switch {
		case position < 0:
			return -1
		case position > 0:
			return 1
		}
		return 0
	}
	if position < -threshold {
		return -1
	}
	if position > threshold {
		return 1
	}
	return position / threshold
}

// Compute returns the transform for an element at relative position rel in a
// viewport of the given height. elementHeight and spacing are the layout
// values the position adjustment is proportional to.
func (p Params) Compute(rel float64, viewportHeight, elementHeight int, spacing float64) Transform {
	m := p.sizeMultiplier(viewportHeight)
	onCircle := p.circleRatio(rel)

	return Transform{
		Rotation:       p.MaxRotationDegrees*Clamp(rel, p.RotationThreshold*m) - angleOnCircle(onCircle),
		Scale:          1 + (p.MaxScale-1)*(1-math.Abs(Clamp(rel, p.ScalingThreshold*m))),
		PositionAdjust: float64(elementHeight) * p.AdjustMultiplier * spacing * Clamp(rel, p.AdjustThreshold*m) * math.Sin(math.Acos(onCircle)),
		Depth:          p.PerspectiveMultiplier * (1 - math.Sin(math.Acos(onCircle))),
	}
}

func (p Params) sizeMultiplier(viewportHeight int) float64 {
	if viewportHeight <= 0 || p.TuningReferenceSize <= 0 {
		return 1
	}
	return p.TuningReferenceSize / float64(viewportHeight)
}

// circleRatio is rel/radius clamped to the domain of acos.
func (p Params) circleRatio(rel float64) float64 {
	radius := p.Radius
	if radius < 1 {
		radius = 1
	}
	return min(max(rel/radius, -1), 1)
}

func angleOnCircle(ratio float64) float64 {
	return math.Acos(ratio)/math.Pi*180 - 90
}
