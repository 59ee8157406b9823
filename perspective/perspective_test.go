package perspective

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeAtCenter(t *testing.T) {
	p := DefaultParams()
	tr := p.Compute(0, 1280, 240, 0.5)

	assert.InDelta(t, 0, tr.Rotation, 1e-9)
	assert.InDelta(t, p.MaxScale, tr.Scale, 1e-9)
	assert.InDelta(t, 0, tr.Depth, 1e-9)
	assert.InDelta(t, 0, tr.PositionAdjust, 1e-9)
	assert.InDelta(t, p.MaxScale, tr.EffectiveScale(), 1e-9)
}

func TestClamp(t *testing.T) {
	tests := []struct {
		name      string
		position  float64
		threshold float64
		want      float64
	}{
		{name: "inside ramp", position: 0.15, threshold: 0.3, want: 0.5},
		{name: "negative inside ramp", position: -0.15, threshold: 0.3, want: -0.5},
		{name: "saturates high", position: 0.9, threshold: 0.3, want: 1},
		{name: "saturates low", position: -4, threshold: 0.3, want: -1},
		{name: "zero threshold positive", position: 0.01, threshold: 0, want: 1},
		{name: "zero threshold negative", position: -0.01, threshold: 0, want: -1},
		{name: "zero threshold at center", position: 0, threshold: 0, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Clamp(tt.position, tt.threshold), 1e-9)
		})
	}
}

func TestRelativePosition(t *testing.T) {
	assert.InDelta(t, 0, RelativePosition(400, 0, 800), 1e-9)
	assert.InDelta(t, 1, RelativePosition(800, 0, 800), 1e-9)
	assert.InDelta(t, -1, RelativePosition(100, 100, 800), 1e-9)
	assert.InDelta(t, 2.5, RelativePosition(1400, 0, 800), 1e-9)
	assert.Zero(t, RelativePosition(10, 0, 1))
}

func TestComputeNeverProducesNaN(t *testing.T) {
	p := DefaultParams()
	for _, rel := range []float64{-1e6, -3, -2, -1.999, -0.5, 0.5, 1.999, 2, 3, 1e6} {
		tr := p.Compute(rel, 800, 240, 0.5)
		for _, v := range []float64{tr.Rotation, tr.Scale, tr.PositionAdjust, tr.Depth} {
			require.False(t, math.IsNaN(v), "rel=%v produced NaN", rel)
		}
	}
}

func TestComputeIsSymmetric(t *testing.T) {
	p := DefaultParams()
	a := p.Compute(0.4, 800, 240, 0.5)
	b := p.Compute(-0.4, 800, 240, 0.5)

	assert.InDelta(t, a.Scale, b.Scale, 1e-9)
	assert.InDelta(t, a.Depth, b.Depth, 1e-9)
	assert.InDelta(t, a.PositionAdjust, -b.PositionAdjust, 1e-9)
	assert.InDelta(t, a.Rotation, -b.Rotation, 1e-9)
}

func TestComputeOnCircleEdge(t *testing.T) {
	p := DefaultParams()
	tr := p.Compute(p.Radius, 1280, 240, 0.5)

	// At the end of the arc the element is fully receded.
	assert.InDelta(t, p.PerspectiveMultiplier, tr.Depth, 1e-9)
	assert.InDelta(t, 1, tr.Scale, 1e-9)
	assert.InDelta(t, p.MaxRotationDegrees+90, tr.Rotation, 1e-9)
}

func TestThresholdsScaleWithViewport(t *testing.T) {
	p := DefaultParams()
	// On a viewport half the tuning size thresholds double, so the same
	// relative position is further from saturation.
	small := p.Compute(0.3, 640, 240, 0.5)
	tuned := p.Compute(0.3, 1280, 240, 0.5)
	assert.Greater(t, small.Scale, tuned.Scale)
}
