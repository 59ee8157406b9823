// Package engine implements a virtualized carousel: a window of materialized
// elements around the scroll position, grown on demand from a Dataset and
// recycled through a weak pool, scrolled by drags and decelerating flings
// clamped to the dataset boundaries, with the element nearest the viewport
// center tracked as the selection.
//
// An Engine is not safe for concurrent use. Hosts drive it from one
// goroutine: pointer input, then ComputeScroll once per frame.
package engine

import (
	"fmt"
	"math"
	"time"

	"github.com/ayn2op/carousel/perspective"
	"github.com/ayn2op/carousel/pool"
	"go.uber.org/zap"
)

// NoValue marks an edge that is not known yet. Layout arithmetic never
// produces it.
const NoValue = math.MinInt + 1777

// velocityWindow is the trailing window of the default velocity tracker.
const velocityWindow = 100 * time.Millisecond

// Engine windows a Dataset of V.
type Engine[V any] struct {
	cfg      Config
	policy   TouchPolicy
	log      *zap.Logger
	recorder Recorder
	clock    func() time.Time

	pool *pool.Pool[Element[V]]

	dataset      Dataset[V]
	subscription Subscription

	width, height int

	// window holds indices firstVisible..lastVisible. Empty windows keep
	// lastVisible == firstVisible-1.
	window                    []*Element[V]
	firstVisible, lastVisible int
	reverseOrderIndex         int
	selection                 int
	drawOrder                 []int

	topEdge, bottomEdge int
	scrollY             int

	touchState   TouchState
	scroller     *Scroller
	velocity     VelocityTracker
	downX, downY int
	lastY        int
	cached       bool

	align alignment

	listeners  []selectionListener[V]
	listenerID uint64
}

type selectionListener[V any] struct {
	id uint64
	fn func(SelectionEvent[V])
}

// New returns an Engine without a dataset.
func New[V any](cfg Config, opts ...Option) (*Engine[V], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := options{
		logger:   zap.NewNop(),
		recorder: nopRecorder{},
		clock:    time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.velocity == nil {
		o.velocity = NewWindowedTracker(velocityWindow, cfg.MaximumVelocity)
	}

	var poolOpts []pool.Option
	if o.poolCapacity > 0 {
		poolOpts = append(poolOpts, pool.WithCapacity(o.poolCapacity))
	}

	e := &Engine[V]{
		log:      o.logger,
		recorder: o.recorder,
		clock:    o.clock,
		velocity: o.velocity,
		pool:     pool.New[Element[V]](poolOpts...),
	}
	e.applyConfig(cfg)
	e.selection = cfg.InitialSelection
	e.topEdge, e.bottomEdge = NoValue, NoValue
	e.clearWindow()
	return e, nil
}

func (e *Engine[V]) applyConfig(cfg Config) {
	e.cfg = cfg
	e.policy = TouchPolicy{MinimumVelocity: cfg.MinimumVelocity, AlignOnRest: cfg.AlignOnRest}
	e.scroller = NewScroller(cfg.Deceleration)
	e.align = newAlignment(cfg.FrameRate, cfg.AlignFrequency)
}

// Reconfigure validates and applies cfg, stopping any animation and
// rebuilding the window around the current selection.
func (e *Engine[V]) Reconfigure(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	e.applyConfig(cfg)
	e.touchState = Resting
	e.setCached(false)
	e.reset()
	e.pass()
	return nil
}

// Config returns the active configuration.
func (e *Engine[V]) Config() Config {
	return e.cfg
}

// SetDataset binds ds, unsubscribing from the previous dataset. A nil ds
// unbinds and clears the window.
func (e *Engine[V]) SetDataset(ds Dataset[V]) {
	if e.subscription != nil {
		e.subscription.Unsubscribe()
		e.subscription = nil
	}
	e.dataset = ds
	if ds == nil {
		e.clearWindow()
		e.topEdge, e.bottomEdge = NoValue, NoValue
		return
	}
	e.subscription = ds.Subscribe(e.handleChanged, e.handleInvalidated)
	e.log.Debug("dataset bound", zap.Int("count", ds.Count()))
	e.reset()
}

// Dataset returns the bound dataset, or nil.
func (e *Engine[V]) Dataset() Dataset[V] {
	return e.dataset
}

func (e *Engine[V]) handleChanged() {
	e.log.Debug("dataset changed", zap.Int("count", e.count()))
	e.reset()
}

func (e *Engine[V]) handleInvalidated() {
	e.log.Debug("dataset invalidated")
	e.invalidate()
}

func (e *Engine[V]) count() int {
	if e.dataset == nil {
		return 0
	}
	return e.dataset.Count()
}

// Layout sizes the viewport and runs a pass. The first layout with a
// non-empty dataset seeds the selected element centered in the viewport.
func (e *Engine[V]) Layout(width, height int) error {
	if e.dataset == nil {
		return ErrNoAdapterBound
	}
	if width != e.width {
		left := width/2 - e.cfg.ElementWidth/2
		for _, el := range e.window {
			el.layout(left, el.Top, e.cfg.ElementWidth, e.cfg.ElementHeight)
		}
	}
	e.width, e.height = width, height

	if len(e.window) == 0 && e.count() > 0 {
		e.seed()
	}
	e.pass()
	return nil
}

// Size returns the viewport size of the last layout.
func (e *Engine[V]) Size() (width, height int) {
	return e.width, e.height
}

// pass runs one layout pass: refill, selection, transforms.
func (e *Engine[V]) pass() {
	if len(e.window) == 0 {
		e.recorder.WindowSize(0)
		return
	}
	e.refill()
	e.updateSelection()
	e.applyTransforms()
	e.recorder.WindowSize(len(e.window))
}

func (e *Engine[V]) applyTransforms() {
	p := e.cfg.Perspective
	for _, el := range e.window {
		if p == nil {
			el.Transform = perspective.Identity()
			continue
		}
		rel := perspective.RelativePosition(el.Center(), e.scrollY, e.height)
		el.Transform = p.Compute(rel, e.height, e.cfg.ElementHeight, e.cfg.Spacing)
	}
}

// SetSelection jumps to index: any animation stops and the window is rebuilt
// with index on the rectangle of the previous selection.
func (e *Engine[V]) SetSelection(index int) error {
	if e.dataset == nil {
		return ErrNoAdapterBound
	}
	if count := e.count(); index < 0 || index >= count {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, index, count)
	}

	e.stopAnimations()
	e.setTouchState(Resting)
	e.setCached(false)

	previous := e.selection
	e.selection = index
	e.reset()
	e.pass()
	if previous != index {
		e.notifySelection()
	}
	return nil
}

// ScrollToIndex animates index to the viewport center when it is
// materialized, and jumps to it otherwise.
func (e *Engine[V]) ScrollToIndex(index int) error {
	if e.dataset == nil {
		return ErrNoAdapterBound
	}
	if count := e.count(); index < 0 || index >= count {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, index, count)
	}
	if index < e.firstVisible || index > e.lastVisible {
		return e.SetSelection(index)
	}
	e.align.target = index
	e.dispatch(TouchEvent{Kind: AlignRequested})
	return nil
}

// OnSelectionChanged registers fn for selection changes.
func (e *Engine[V]) OnSelectionChanged(fn func(SelectionEvent[V])) Subscription {
	e.listenerID++
	id := e.listenerID
	e.listeners = append(e.listeners, selectionListener[V]{id: id, fn: fn})
	return SubscriptionFunc(func() {
		for i, l := range e.listeners {
			if l.id == id {
				e.listeners = append(e.listeners[:i], e.listeners[i+1:]...)
				return
			}
		}
	})
}

func (e *Engine[V]) notifySelection() {
	ev := SelectionEvent[V]{Index: e.selection}
	if e.reverseOrderIndex >= 0 && e.reverseOrderIndex < len(e.window) {
		ev.Element = e.window[e.reverseOrderIndex]
	}
	e.log.Debug("selection changed", zap.Int("index", e.selection))
	e.recorder.SelectionChanged(e.selection)
	for _, l := range append([]selectionListener[V](nil), e.listeners...) {
		l.fn(ev)
	}
}

// Selection returns the absolute selected index.
func (e *Engine[V]) Selection() int {
	return e.selection
}

// Selected returns the selected element, or nil when nothing is materialized.
func (e *Engine[V]) Selected() *Element[V] {
	if e.reverseOrderIndex < 0 || e.reverseOrderIndex >= len(e.window) {
		return nil
	}
	return e.window[e.reverseOrderIndex]
}

// Window returns the materialized elements in index order. The slice is a
// copy; the elements are shared.
func (e *Engine[V]) Window() []*Element[V] {
	out := make([]*Element[V], len(e.window))
	copy(out, e.window)
	return out
}

// FirstVisible returns the dataset index of the first window element.
func (e *Engine[V]) FirstVisible() int {
	return e.firstVisible
}

// LastVisible returns the dataset index of the last window element.
func (e *Engine[V]) LastVisible() int {
	return e.lastVisible
}

// ReverseOrderIndex returns the window position of the selected element, or
// -1 for an empty window.
func (e *Engine[V]) ReverseOrderIndex() int {
	return e.reverseOrderIndex
}

// Edges returns the recorded top and bottom edges. Unknown edges are NoValue.
func (e *Engine[V]) Edges() (top, bottom int) {
	return e.topEdge, e.bottomEdge
}

// ScrollY returns the content coordinate shown at the top of the viewport.
func (e *Engine[V]) ScrollY() int {
	return e.scrollY
}

// TouchState returns the current touch state.
func (e *Engine[V]) TouchState() TouchState {
	return e.touchState
}

// DrawOrder returns window positions in the order they should be drawn, the
// selected element last.
func (e *Engine[V]) DrawOrder() []int {
	out := make([]int, len(e.drawOrder))
	copy(out, e.drawOrder)
	return out
}

// Animating reports whether ComputeScroll still has work to do.
func (e *Engine[V]) Animating() bool {
	return !e.scroller.IsFinished() || e.touchState == Flinging || e.touchState == Aligning
}

// PoolSize returns the number of handles in the recycling pool.
func (e *Engine[V]) PoolSize() int {
	return e.pool.Len()
}

func (e *Engine[V]) setCached(cached bool) {
	e.cached = cached
	for _, el := range e.window {
		el.Cached = cached
	}
}
