package engine

import (
	"math"
	"time"

	"go.uber.org/zap"
)

// PointerKind identifies a raw pointer event.
type PointerKind int

const (
	PointerDown PointerKind = iota
	PointerMove
	PointerUp
	PointerCancel
)

// PointerEvent is a raw pointer event in viewport coordinates.
type PointerEvent struct {
	Kind PointerKind
	X, Y int
	Time time.Time
}

// scrollBounds returns the scroll offsets at which the first and the last
// element sit at the viewport center. Unknown edges map to extremes with
// enough headroom that adding the viewport or element height cannot
// overflow.
func (e *Engine[V]) scrollBounds() (lower, upper int) {
	centerItemTop := e.height/2 - e.cfg.ElementHeight/2
	centerItemBottom := centerItemTop + e.cfg.ElementHeight
	headroom := e.height + e.cfg.ElementHeight

	lower = math.MinInt + headroom
	if e.bottomEdge != NoValue {
		lower = e.bottomEdge - centerItemBottom
	}
	upper = math.MaxInt - headroom
	if e.topEdge != NoValue {
		upper = e.topEdge - centerItemTop
	}
	return lower, upper
}

// ScrollByDelta scrolls by d divided by the slow-down coefficient, clamped so
// neither boundary element passes the viewport center, and runs a pass.
func (e *Engine[V]) ScrollByDelta(d int) {
	d /= e.cfg.SlowDownCoefficient
	lower, upper := e.scrollBounds()

	target := addSaturated(e.scrollY, d)
	if target > upper {
		target = upper
	}
	if target < lower {
		target = lower
	}
	e.scrollY = target
	e.reseedFar()
	e.clampToEdges()
}

// clampToEdges runs a pass and pulls the offset back inside the scroll
// bounds when that pass recorded an edge the offset already lies beyond.
func (e *Engine[V]) clampToEdges() {
	e.pass()
	lower, upper := e.scrollBounds()
	y := clampInt(e.scrollY, lower, upper)
	if y == e.scrollY {
		return
	}
	e.log.Debug("offset clamped to new edge", zap.Int("from", e.scrollY), zap.Int("to", y))
	e.scrollY = y
	if !e.scroller.IsFinished() {
		e.scroller.SetFinalY(y)
	}
	e.pass()
}

// reseedFar rebuilds the window around the element nearest the viewport
// center when the offset left the materialized span by more than a
// viewport, so a long jump does not materialize every element in between.
// Elements keep their grid positions, so recorded edges stay valid.
func (e *Engine[V]) reseedFar() {
	anchor := e.Selected()
	if anchor == nil {
		return
	}
	first, last := e.window[0], e.window[len(e.window)-1]
	if e.scrollY-e.height <= last.Bottom && e.scrollY+e.height >= first.Top-e.height {
		return
	}

	step := e.cfg.step()
	d := addSaturated(e.scrollY+e.height/2, -anchor.Center())
	k := addSaturated(d, step/2) / step
	if d < 0 {
		k = addSaturated(d, -step/2) / step
	}
	index := clampInt(addSaturated(anchor.Index, k), 0, e.count()-1)
	left, top := anchor.Left, anchor.Top+(index-anchor.Index)*step

	previous := e.selection
	e.clearWindow()
	e.selection = index
	e.seedAt(left, top)
	e.log.Debug("window reseeded", zap.Int("from", previous), zap.Int("index", index))
	if previous != index {
		e.notifySelection()
	}
}

// Fling starts a decelerating scroll with the given velocity in units per
// second. Positive vy scrolls toward higher indices. A velocity at or below
// the minimum velocity is ignored.
func (e *Engine[V]) Fling(vx, vy float64) {
	eff := e.dispatch(TouchEvent{Kind: FlingRequested, Velocity: math.Abs(vx) + math.Abs(vy)})
	if eff.Has(Fling) {
		e.startFling(vy, e.clock())
	}
}

func (e *Engine[V]) startFling(vy float64, now time.Time) {
	vy /= float64(e.cfg.SlowDownCoefficient)
	lower, upper := e.scrollBounds()
	e.scroller.Fling(e.scrollY, vy, lower, upper+1, now)
	e.log.Debug("fling",
		zap.Float64("velocity", vy),
		zap.Int("from", e.scrollY),
		zap.Int("to", e.scroller.FinalY()),
	)
}

// ComputeScroll advances the animations to now and runs a pass. Hosts call it
// once per frame while Animating reports true.
func (e *Engine[V]) ComputeScroll(now time.Time) {
	lower, upper := e.scrollBounds()
	if e.topEdge != NoValue && e.scroller.FinalY() > upper {
		e.scroller.SetFinalY(upper)
	}
	if e.bottomEdge != NoValue && e.scroller.FinalY() < lower {
		e.scroller.SetFinalY(lower)
	}

	if e.scroller.ComputeScrollOffset(now) {
		e.scrollY = e.scroller.CurrY()
		if e.scroller.CurrY() == e.scroller.FinalY() {
			e.scroller.ForceFinished()
			e.dispatch(TouchEvent{Kind: AnimationDone})
		}
	} else if e.touchState == Flinging {
		e.dispatch(TouchEvent{Kind: AnimationDone})
	}

	if e.touchState == Aligning {
		e.stepAlignment()
	}

	e.clampToEdges()
}

// HandlePointer feeds one pointer event through the touch state machine.
func (e *Engine[V]) HandlePointer(ev PointerEvent) {
	switch ev.Kind {
	case PointerDown:
		e.velocity.Reset()
		e.velocity.Add(ev.X, ev.Y, ev.Time)
		e.downX, e.downY = ev.X, ev.Y
		e.lastY = ev.Y
		e.dispatch(TouchEvent{Kind: TouchDown, Animating: e.Animating()})

	case PointerMove:
		e.velocity.Add(ev.X, ev.Y, ev.Time)
		slop := max(abs(ev.X-e.downX), abs(ev.Y-e.downY)) > e.cfg.TouchSlop
		eff := e.dispatch(TouchEvent{Kind: TouchMove, SlopExceeded: slop})
		if eff.Has(Scroll) {
			d := e.lastY - ev.Y
			e.lastY = ev.Y
			e.ScrollByDelta(d)
		}

	case PointerUp:
		e.velocity.Add(ev.X, ev.Y, ev.Time)
		vx, vy := e.velocity.Velocity()
		eff := e.dispatch(TouchEvent{Kind: TouchUp, Velocity: math.Abs(vx) + math.Abs(vy)})
		if eff.Has(Fling) {
			// Content follows the pointer, so the scroll runs against it.
			e.startFling(-vy, ev.Time)
		}
		e.velocity.Reset()

	case PointerCancel:
		e.dispatch(TouchEvent{Kind: TouchCancel})
		e.velocity.Reset()
	}
}

// dispatch runs the touch state machine and applies the effects that need
// no event data.
func (e *Engine[V]) dispatch(ev TouchEvent) Effect {
	next, eff := e.policy.Transition(e.touchState, ev)
	e.setTouchState(next)

	if eff.Has(StopAnimation) {
		e.stopAnimations()
	}
	if eff.Has(EnableCache) {
		e.setCached(true)
	}
	if eff.Has(ClearCache) {
		e.setCached(false)
	}
	if eff.Has(Align) {
		if ev.Kind != AlignRequested {
			e.align.target = e.selection
		}
		e.align.start(e.scrollY)
	}
	return eff
}

func (e *Engine[V]) setTouchState(state TouchState) {
	if state == e.touchState {
		return
	}
	e.log.Debug("touch state", zap.Stringer("from", e.touchState), zap.Stringer("to", state))
	e.recorder.TouchTransition(e.touchState, state)
	e.touchState = state
}

func (e *Engine[V]) stopAnimations() {
	e.scroller.ForceFinished()
	e.align.stop()
}
