package engine

import (
	"go.uber.org/zap"
)

// seed materializes the selection centered in the viewport.
func (e *Engine[V]) seed() {
	left := e.width/2 - e.cfg.ElementWidth/2
	top := e.scrollY + e.height/2 - e.cfg.ElementHeight/2
	e.seedAt(left, top)
}

// seedAt materializes the selection alone at (left, top).
func (e *Engine[V]) seedAt(left, top int) {
	count := e.count()
	e.selection = clampInt(e.selection, 0, count-1)

	el := e.materialize(e.selection)
	el.layout(left, top, e.cfg.ElementWidth, e.cfg.ElementHeight)
	el.Selected = true
	el.Cached = e.cached

	e.window = append(e.window[:0], el)
	e.firstVisible, e.lastVisible = e.selection, e.selection
	e.reverseOrderIndex = 0
	e.drawOrder = DrawOrder(1, 0)

	if e.lastVisible == count-1 {
		e.topEdge = el.Top
	}
	if e.firstVisible == 0 {
		e.bottomEdge = el.Bottom
	}
	e.log.Debug("seeded window", zap.Int("index", e.selection), zap.Int("top", top))
}

// refill grows the window until it covers the viewport plus the overlap
// margin on both sides.
func (e *Engine[V]) refill() {
	if e.dataset == nil || len(e.window) == 0 {
		return
	}
	before := len(e.window)
	if e.cfg.ShrinkOnRefill {
		e.shrinkBack()
		e.shrinkFront()
	}
	e.refillBottomToTop()
	e.refillTopToBottom()
	if n := len(e.window); n != before {
		e.log.Debug("window refilled",
			zap.Int("first", e.firstVisible),
			zap.Int("last", e.lastVisible),
			zap.Int("size", n),
		)
	}
}

// refillBottomToTop appends elements of increasing index while the far
// viewport edge is uncovered.
func (e *Engine[V]) refillBottomToTop() {
	limit := e.scrollY + e.height + e.cfg.overlap()
	count := e.count()
	step := e.cfg.step()

	last := e.window[len(e.window)-1]
	for last.Bottom < limit && e.lastVisible < count-1 {
		e.lastVisible++
		el := e.materialize(e.lastVisible)
		el.layout(last.Left, last.Top+step, e.cfg.ElementWidth, e.cfg.ElementHeight)
		el.Cached = e.cached
		e.window = append(e.window, el)

		if e.lastVisible >= count-1 {
			e.topEdge = el.Top
		}
		last = el
	}
}

// refillTopToBottom prepends elements of decreasing index while the near
// viewport edge is uncovered.
func (e *Engine[V]) refillTopToBottom() {
	limit := e.scrollY - e.cfg.overlap()
	step := e.cfg.step()

	first := e.window[0]
	for first.Top > limit && e.firstVisible > 0 {
		e.firstVisible--
		el := e.materialize(e.firstVisible)
		el.layout(first.Left, first.Top-step, e.cfg.ElementWidth, e.cfg.ElementHeight)
		el.Cached = e.cached
		e.window = append(e.window, nil)
		copy(e.window[1:], e.window)
		e.window[0] = el
		e.reverseOrderIndex++

		if e.firstVisible <= 0 {
			e.bottomEdge = el.Bottom
		}
		first = el
	}
}

// shrinkFront evicts leading elements that lie wholly above the viewport
// margin and that refill would not bring back. The selection is never
// evicted.
func (e *Engine[V]) shrinkFront() {
	limit := e.scrollY - e.cfg.overlap()
	for len(e.window) > 1 && e.reverseOrderIndex > 0 &&
		e.window[0].Bottom < limit && e.window[1].Top <= limit {
		e.release(e.window[0])
		e.window[0] = nil
		e.window = e.window[1:]
		e.firstVisible++
		e.reverseOrderIndex--
	}
}

// shrinkBack evicts trailing elements that lie wholly below the viewport
// margin and that refill would not bring back. The selection is never
// evicted.
func (e *Engine[V]) shrinkBack() {
	limit := e.scrollY + e.height + e.cfg.overlap()
	for len(e.window) > 1 && e.reverseOrderIndex < len(e.window)-1 {
		n := len(e.window)
		if e.window[n-1].Top <= limit || e.window[n-2].Bottom < limit {
			return
		}
		e.release(e.window[n-1])
		e.window[n-1] = nil
		e.window = e.window[:n-1]
		e.lastVisible--
	}
}

// reset rebuilds the window from scratch: every element goes to the pool,
// both edges are forgotten and the selection is re-seeded on the rectangle
// the selected element occupied. An empty window is left for the next
// layout to seed.
func (e *Engine[V]) reset() {
	count := e.count()
	if count == 0 {
		e.clearWindow()
		e.topEdge, e.bottomEdge = NoValue, NoValue
		return
	}

	previous := e.selection
	e.selection = clampInt(e.selection, 0, count-1)

	anchor := e.Selected()
	if anchor == nil {
		e.clearWindow()
		e.topEdge, e.bottomEdge = NoValue, NoValue
		if previous != e.selection {
			e.notifySelection()
		}
		return
	}
	left, top := anchor.Left, anchor.Top

	e.clearWindow()
	e.topEdge, e.bottomEdge = NoValue, NoValue
	e.seedAt(left, top)
	e.log.Debug("window reset", zap.Int("selection", e.selection))
	if previous != e.selection {
		e.notifySelection()
	}
}

// invalidate drops the window without a replacement.
func (e *Engine[V]) invalidate() {
	e.clearWindow()
	e.topEdge, e.bottomEdge = NoValue, NoValue
	e.recorder.WindowSize(0)
}

// clearWindow releases every element to the pool.
func (e *Engine[V]) clearWindow() {
	for i, el := range e.window {
		e.release(el)
		e.window[i] = nil
	}
	e.window = e.window[:0]
	e.firstVisible, e.lastVisible = 0, -1
	e.reverseOrderIndex = -1
	e.drawOrder = e.drawOrder[:0]
}

func (e *Engine[V]) materialize(index int) *Element[V] {
	el, recycled := e.pool.Acquire()
	var reuse V
	if recycled {
		reuse = el.View
	} else {
		el = &Element[V]{}
	}
	view := e.dataset.Materialize(index, reuse)
	*el = Element[V]{Index: index, View: view}
	el.Transform.Scale = 1
	e.recorder.Materialized(recycled)
	return el
}

func (e *Engine[V]) release(el *Element[V]) {
	if el == nil {
		return
	}
	el.Selected = false
	el.Cached = false
	e.pool.Release(el)
	e.recorder.Released()
}
