package engine

// TouchState is the state of the pointer interaction.
type TouchState int

const (
	Resting TouchState = iota
	Dragging
	Flinging
	Aligning
)

func (s TouchState) String() string {
	switch s {
	case Resting:
		return "resting"
	case Dragging:
		return "dragging"
	case Flinging:
		return "flinging"
	case Aligning:
		return "aligning"
	}
	return "unknown"
}

// TouchEventKind identifies an input to the touch state machine.
type TouchEventKind int

const (
	// TouchDown is a pointer press.
	TouchDown TouchEventKind = iota
	// TouchMove is a pointer motion while pressed.
	TouchMove
	// TouchUp is a pointer release.
	TouchUp
	// TouchCancel aborts the gesture.
	TouchCancel
	// AnimationDone reports that the running fling or alignment finished.
	AnimationDone
	// FlingRequested is a programmatic fling.
	FlingRequested
	// AlignRequested is a programmatic request to center an element.
	AlignRequested
)

// TouchEvent is the input of [TouchPolicy.Transition].
type TouchEvent struct {
	Kind TouchEventKind
	// Animating reports, for TouchDown, whether a fling or alignment was
	// running when the pointer went down.
	Animating bool
	// SlopExceeded reports, for TouchMove, whether the pointer travelled
	// farther than the touch slop since it went down.
	SlopExceeded bool
	// Velocity is |vx|+|vy| for TouchUp and FlingRequested.
	Velocity float64
}

// Effect is a set of side effects requested by a transition.
type Effect uint8

const (
	// StopAnimation aborts the running fling or alignment.
	StopAnimation Effect = 1 << iota
	// EnableCache marks window elements as cached.
	EnableCache
	// ClearCache clears the cached mark.
	ClearCache
	// Scroll applies the pointer displacement.
	Scroll
	// Fling starts the deceleration animator.
	Fling
	// Align starts the alignment spring.
	Align

	NoEffect Effect = 0
)

// Has reports whether every effect in flag is set.
func (e Effect) Has(flag Effect) bool {
	return e&flag == flag
}

// TouchPolicy holds the thresholds the state machine depends on.
type TouchPolicy struct {
	MinimumVelocity float64
	AlignOnRest     bool
}

// Transition returns the state that follows state on ev and the effects the
// caller must apply. It has no side effects.
func (p TouchPolicy) Transition(state TouchState, ev TouchEvent) (TouchState, Effect) {
	switch ev.Kind {
	case TouchDown:
		if ev.Animating {
			// Catching a running animation starts a drag right away.
			return Dragging, StopAnimation | EnableCache
		}
		return Resting, NoEffect

	case TouchMove:
		if state == Dragging {
			return Dragging, Scroll
		}
		if ev.SlopExceeded {
			return Dragging, EnableCache | Scroll
		}
		return state, NoEffect

	case TouchUp:
		if state != Dragging {
			return Resting, ClearCache
		}
		if ev.Velocity > p.MinimumVelocity {
			return Flinging, Fling
		}
		return p.settle()

	case TouchCancel:
		return Resting, ClearCache

	case AnimationDone:
		switch state {
		case Flinging:
			return p.settle()
		case Aligning:
			return Resting, ClearCache
		}
		return state, NoEffect

	case FlingRequested:
		if state == Dragging {
			return state, NoEffect
		}
		if ev.Velocity > p.MinimumVelocity {
			return Flinging, StopAnimation | Fling
		}
		return state, NoEffect

	case AlignRequested:
		if state == Dragging {
			return state, NoEffect
		}
		return Aligning, StopAnimation | Align
	}
	return state, NoEffect
}

func (p TouchPolicy) settle() (TouchState, Effect) {
	if p.AlignOnRest {
		return Aligning, Align
	}
	return Resting, ClearCache
}
