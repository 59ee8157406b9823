package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTouchTransitions(t *testing.T) {
	policy := TouchPolicy{MinimumVelocity: 50}
	aligning := TouchPolicy{MinimumVelocity: 50, AlignOnRest: true}

	tests := []struct {
		name       string
		policy     TouchPolicy
		state      TouchState
		event      TouchEvent
		wantState  TouchState
		wantEffect Effect
	}{
		{"down at rest", policy, Resting, TouchEvent{Kind: TouchDown}, Resting, NoEffect},
		{"down catches fling", policy, Flinging, TouchEvent{Kind: TouchDown, Animating: true}, Dragging, StopAnimation | EnableCache},
		{"down catches alignment", policy, Aligning, TouchEvent{Kind: TouchDown, Animating: true}, Dragging, StopAnimation | EnableCache},
		{"move within slop", policy, Resting, TouchEvent{Kind: TouchMove}, Resting, NoEffect},
		{"move past slop", policy, Resting, TouchEvent{Kind: TouchMove, SlopExceeded: true}, Dragging, EnableCache | Scroll},
		{"move while dragging", policy, Dragging, TouchEvent{Kind: TouchMove}, Dragging, Scroll},
		{"tap", policy, Resting, TouchEvent{Kind: TouchUp, Velocity: 1000}, Resting, ClearCache},
		{"fast release", policy, Dragging, TouchEvent{Kind: TouchUp, Velocity: 51}, Flinging, Fling},
		{"release at threshold", policy, Dragging, TouchEvent{Kind: TouchUp, Velocity: 50}, Resting, ClearCache},
		{"slow release aligns", aligning, Dragging, TouchEvent{Kind: TouchUp}, Aligning, Align},
		{"cancel drag", policy, Dragging, TouchEvent{Kind: TouchCancel}, Resting, ClearCache},
		{"cancel fling", policy, Flinging, TouchEvent{Kind: TouchCancel}, Resting, ClearCache},
		{"fling done", policy, Flinging, TouchEvent{Kind: AnimationDone}, Resting, ClearCache},
		{"fling done aligns", aligning, Flinging, TouchEvent{Kind: AnimationDone}, Aligning, Align},
		{"alignment done", aligning, Aligning, TouchEvent{Kind: AnimationDone}, Resting, ClearCache},
		{"stale animation done", policy, Resting, TouchEvent{Kind: AnimationDone}, Resting, NoEffect},
		{"programmatic fling", policy, Resting, TouchEvent{Kind: FlingRequested, Velocity: 100}, Flinging, StopAnimation | Fling},
		{"slow programmatic fling", policy, Resting, TouchEvent{Kind: FlingRequested, Velocity: 10}, Resting, NoEffect},
		{"programmatic fling while dragging", policy, Dragging, TouchEvent{Kind: FlingRequested, Velocity: 100}, Dragging, NoEffect},
		{"align request", policy, Flinging, TouchEvent{Kind: AlignRequested}, Aligning, StopAnimation | Align},
		{"align request while dragging", policy, Dragging, TouchEvent{Kind: AlignRequested}, Dragging, NoEffect},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state, effect := tt.policy.Transition(tt.state, tt.event)
			assert.Equal(t, tt.wantState, state)
			assert.Equal(t, tt.wantEffect, effect)
		})
	}
}

func TestEffectHas(t *testing.T) {
	e := StopAnimation | Fling
	assert.True(t, e.Has(StopAnimation))
	assert.True(t, e.Has(Fling))
	assert.True(t, e.Has(StopAnimation|Fling))
	assert.False(t, e.Has(Scroll))
	assert.False(t, e.Has(Fling|Scroll))
	assert.True(t, NoEffect.Has(NoEffect))
}

func TestTouchStateString(t *testing.T) {
	assert.Equal(t, "resting", Resting.String())
	assert.Equal(t, "dragging", Dragging.String())
	assert.Equal(t, "flinging", Flinging.String())
	assert.Equal(t, "aligning", Aligning.String())
	assert.Equal(t, "unknown", TouchState(42).String())
}
