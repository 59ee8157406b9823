package engine

import (
	"math"

	"github.com/charmbracelet/harmonica"
	"go.uber.org/zap"
)

// alignment settles an element on the viewport center with a critically
// damped spring, advanced one frame per ComputeScroll.
type alignment struct {
	spring   harmonica.Spring
	pos, vel float64
	target   int
	active   bool
}

func newAlignment(fps int, frequency float64) alignment {
	return alignment{
		spring: harmonica.NewSpring(harmonica.FPS(fps), frequency, 1.0),
		target: -1,
	}
}

func (a *alignment) start(scrollY int) {
	a.pos = float64(scrollY)
	a.vel = 0
	a.active = true
}

func (a *alignment) stop() {
	a.vel = 0
	a.active = false
}

// alignTarget returns the scroll offset that centers the target element, or
// false when it is not materialized.
func (e *Engine[V]) alignTarget() (int, bool) {
	i := e.align.target - e.firstVisible
	if i < 0 || i >= len(e.window) {
		return 0, false
	}
	lower, upper := e.scrollBounds()
	return clampInt(e.window[i].Center()-e.height/2, lower, upper), true
}

// stepAlignment advances the spring one frame. Reaching the target, or losing
// it from the window, ends the alignment.
func (e *Engine[V]) stepAlignment() {
	target, ok := e.alignTarget()
	if !e.align.active || !ok {
		e.align.stop()
		e.dispatch(TouchEvent{Kind: AnimationDone})
		return
	}

	e.align.pos, e.align.vel = e.align.spring.Update(e.align.pos, e.align.vel, float64(target))
	if math.Abs(e.align.pos-float64(target)) < 0.5 && math.Abs(e.align.vel) < 1 {
		e.scrollY = target
		e.align.stop()
		e.log.Debug("aligned", zap.Int("index", e.align.target), zap.Int("scrollY", target))
		e.dispatch(TouchEvent{Kind: AnimationDone})
		return
	}
	e.scrollY = int(math.Round(e.align.pos))
}
