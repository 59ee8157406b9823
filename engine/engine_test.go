package engine

import (
	"fmt"
	"testing"
	"time"

	"github.com/ayn2op/carousel/perspective"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

const (
	testWidth  = 1000
	testHeight = 800
)

type testDataset struct {
	Notifier
	count int
	calls []int
}

func (d *testDataset) Count() int {
	return d.count
}

func (d *testDataset) Materialize(index int, reuse string) string {
	d.calls = append(d.calls, index)
	return fmt.Sprintf("item-%d", index)
}

type countingRecorder struct {
	materialized int
	recycled     int
	released     int
	selections   []int
	transitions  [][2]TouchState
	windowSize   int
}

func (r *countingRecorder) Materialized(recycled bool) {
	r.materialized++
	if recycled {
		r.recycled++
	}
}

func (r *countingRecorder) Released() {
	r.released++
}

func (r *countingRecorder) SelectionChanged(index int) {
	r.selections = append(r.selections, index)
}

func (r *countingRecorder) TouchTransition(from, to TouchState) {
	r.transitions = append(r.transitions, [2]TouchState{from, to})
}

func (r *countingRecorder) WindowSize(n int) {
	r.windowSize = n
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) time.Time {
	c.now = c.now.Add(d)
	return c.now
}

type testEngine struct {
	*Engine[string]
	ds       *testDataset
	recorder *countingRecorder
	clock    *fakeClock
}

func newTestEngine(t *testing.T, count int, cfg Config) *testEngine {
	t.Helper()

	te := &testEngine{
		ds:       &testDataset{count: count},
		recorder: &countingRecorder{},
		clock:    &fakeClock{now: time.Unix(1_700_000_000, 0)},
	}
	e, err := New[string](cfg,
		WithLogger(zaptest.NewLogger(t)),
		WithRecorder(te.recorder),
		WithClock(te.clock.Now),
	)
	require.NoError(t, err)
	te.Engine = e
	te.SetDataset(te.ds)
	return te
}

func newLaidOutEngine(t *testing.T, count int, cfg Config) *testEngine {
	t.Helper()
	te := newTestEngine(t, count, cfg)
	require.NoError(t, te.Layout(testWidth, testHeight))
	return te
}

// requireConsistent checks the structural guarantees that hold after every
// pass.
func requireConsistent(t *testing.T, te *testEngine) {
	t.Helper()

	window := te.Window()
	require.Equal(t, te.LastVisible()-te.FirstVisible()+1, len(window))
	if len(window) == 0 {
		return
	}

	step := te.Config().step()
	selected := 0
	for i, el := range window {
		assert.Equal(t, te.FirstVisible()+i, el.Index, "index at window position %d", i)
		assert.Equal(t, fmt.Sprintf("item-%d", el.Index), el.View)
		if i > 0 {
			assert.Equal(t, step, el.Top-window[i-1].Top, "step at window position %d", i)
		}
		if el.Selected {
			selected++
		}
	}
	require.Equal(t, 1, selected, "exactly one element is selected")
	require.True(t, window[te.ReverseOrderIndex()].Selected)
	require.Equal(t, te.FirstVisible()+te.ReverseOrderIndex(), te.Selection())

	// Brute force: the selection is the element nearest the viewport center,
	// the lower index on ties.
	mid := te.ScrollY() + testHeight/2
	want := 0
	for i, el := range window {
		if abs(el.Center()-mid) < abs(window[want].Center()-mid) {
			want = i
		}
	}
	require.Equal(t, want, te.ReverseOrderIndex())

	order := te.DrawOrder()
	require.Len(t, order, len(window))
	require.Equal(t, te.ReverseOrderIndex(), order[len(order)-1])
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SlowDownCoefficient = 0

	e, err := New[string](cfg)
	require.ErrorIs(t, err, ErrInvalidConfiguration)
	require.Nil(t, e)
}

func TestLayoutWithoutDataset(t *testing.T) {
	e, err := New[string](DefaultConfig())
	require.NoError(t, err)

	require.ErrorIs(t, e.Layout(testWidth, testHeight), ErrNoAdapterBound)
	require.ErrorIs(t, e.SetSelection(0), ErrNoAdapterBound)
	require.ErrorIs(t, e.ScrollToIndex(0), ErrNoAdapterBound)
	require.Nil(t, e.Selected())
}

func TestSeedCentersSelection(t *testing.T) {
	te := newTestEngine(t, 10, DefaultConfig())
	te.width, te.height = testWidth, testHeight

	te.seed()

	require.Equal(t, 0, te.FirstVisible())
	require.Equal(t, 0, te.LastVisible())
	el := te.Selected()
	require.NotNil(t, el)
	assert.Equal(t, 320, el.Left)
	assert.Equal(t, 280, el.Top)
	assert.Equal(t, 680, el.Right)
	assert.Equal(t, 520, el.Bottom)

	top, bottom := te.Edges()
	assert.Equal(t, NoValue, top)
	assert.Equal(t, 520, bottom)
}

func TestLayoutFillsViewport(t *testing.T) {
	te := newLaidOutEngine(t, 10, DefaultConfig())

	require.Equal(t, 0, te.FirstVisible())
	require.Equal(t, 4, te.LastVisible())
	require.Equal(t, 0, te.Selection())
	require.Equal(t, 5, te.recorder.windowSize)
	requireConsistent(t, te)

	tops := make([]int, 0, 5)
	for _, el := range te.Window() {
		tops = append(tops, el.Top)
	}
	assert.Equal(t, []int{280, 400, 520, 640, 760}, tops)
}

func TestRefillIsIdempotent(t *testing.T) {
	te := newLaidOutEngine(t, 10, DefaultConfig())
	calls := len(te.ds.calls)

	te.refill()
	te.refill()
	require.NoError(t, te.Layout(testWidth, testHeight))

	require.Len(t, te.ds.calls, calls)
	require.Equal(t, 4, te.LastVisible())
}

func TestLayoutWithEmptyDataset(t *testing.T) {
	te := newLaidOutEngine(t, 0, DefaultConfig())

	require.Empty(t, te.Window())
	require.Nil(t, te.Selected())
	require.Equal(t, -1, te.ReverseOrderIndex())

	te.ds.count = 3
	te.ds.NotifyChanged()
	require.NoError(t, te.Layout(testWidth, testHeight))
	require.Equal(t, 0, te.FirstVisible())
	require.Equal(t, 2, te.LastVisible())
	requireConsistent(t, te)
}

func TestSingleItemKnowsBothEdges(t *testing.T) {
	te := newLaidOutEngine(t, 1, DefaultConfig())

	top, bottom := te.Edges()
	assert.Equal(t, 280, top)
	assert.Equal(t, 520, bottom)

	te.ScrollByDelta(500)
	assert.Equal(t, 0, te.ScrollY())
	te.ScrollByDelta(-500)
	assert.Equal(t, 0, te.ScrollY())
}

func TestLayoutWidthChangeRecenters(t *testing.T) {
	te := newLaidOutEngine(t, 10, DefaultConfig())

	require.NoError(t, te.Layout(2000, testHeight))
	for _, el := range te.Window() {
		assert.Equal(t, 820, el.Left)
		assert.Equal(t, 360, el.Width())
	}
}

func TestDatasetChangeResetsAroundSelection(t *testing.T) {
	te := newLaidOutEngine(t, 10, DefaultConfig())
	te.ScrollByDelta(120)
	require.Equal(t, 1, te.Selection())
	anchor := te.Selected()
	left, top := anchor.Left, anchor.Top
	released := te.recorder.released

	te.ds.NotifyChanged()

	window := te.Window()
	require.Len(t, window, 1)
	assert.Equal(t, 1, window[0].Index)
	assert.Equal(t, left, window[0].Left)
	assert.Equal(t, top, window[0].Top)
	assert.True(t, window[0].Selected)
	assert.Equal(t, released+6, te.recorder.released)

	edgeTop, edgeBottom := te.Edges()
	assert.Equal(t, NoValue, edgeTop)
	assert.Equal(t, NoValue, edgeBottom)

	te.ScrollByDelta(0)
	require.Equal(t, 0, te.FirstVisible())
	require.Equal(t, 5, te.LastVisible())
	requireConsistent(t, te)
	_, edgeBottom = te.Edges()
	assert.Equal(t, 520, edgeBottom)
}

func TestDatasetChangeDuringFling(t *testing.T) {
	te := newLaidOutEngine(t, 100, DefaultConfig())

	te.Fling(0, 4000)
	for range 3 {
		te.ComputeScroll(te.clock.Advance(frame))
	}
	require.Equal(t, Flinging, te.TouchState())
	selection := te.Selection()

	te.ds.NotifyChanged()
	window := te.Window()
	require.Len(t, window, 1)
	assert.Equal(t, selection, window[0].Index)
	edgeTop, edgeBottom := te.Edges()
	assert.Equal(t, NoValue, edgeTop)
	assert.Equal(t, NoValue, edgeBottom)
	assert.True(t, te.Animating())

	runFrames(t, te, 600)
	assert.Equal(t, Resting, te.TouchState())
	assert.Equal(t, 4000, te.ScrollY())
	window = te.Window()
	assert.LessOrEqual(t, window[0].Top, te.ScrollY())
	assert.GreaterOrEqual(t, window[len(window)-1].Bottom, te.ScrollY()+testHeight)
	requireConsistent(t, te)
}

func TestDatasetShrinkClampsSelection(t *testing.T) {
	te := newLaidOutEngine(t, 10, DefaultConfig())
	require.NoError(t, te.SetSelection(7))

	var events []int
	te.OnSelectionChanged(func(ev SelectionEvent[string]) {
		events = append(events, ev.Index)
	})

	te.ds.count = 3
	te.ds.NotifyChanged()

	require.Equal(t, 2, te.Selection())
	require.Equal(t, []int{2}, events)
	te.ScrollByDelta(0)
	require.Equal(t, 0, te.FirstVisible())
	require.Equal(t, 2, te.LastVisible())
	requireConsistent(t, te)
}

func TestDatasetInvalidateClearsWindow(t *testing.T) {
	te := newLaidOutEngine(t, 10, DefaultConfig())

	te.ds.NotifyInvalidated()

	require.Empty(t, te.Window())
	require.Nil(t, te.Selected())
	require.Equal(t, -1, te.ReverseOrderIndex())
	require.Equal(t, 0, te.recorder.windowSize)

	require.NoError(t, te.Layout(testWidth, testHeight))
	require.NotEmpty(t, te.Window())
	requireConsistent(t, te)
}

func TestSetDatasetUnsubscribesPrevious(t *testing.T) {
	te := newLaidOutEngine(t, 10, DefaultConfig())
	old := te.ds

	next := &testDataset{count: 4}
	te.SetDataset(next)
	require.NoError(t, te.Layout(testWidth, testHeight))
	require.Equal(t, 3, te.LastVisible())

	old.count = 0
	old.NotifyInvalidated()
	require.Len(t, te.Window(), 4)

	te.SetDataset(nil)
	require.Empty(t, te.Window())
	require.Nil(t, te.Dataset())
}

func TestSetSelection(t *testing.T) {
	te := newLaidOutEngine(t, 10, DefaultConfig())

	var events []SelectionEvent[string]
	te.OnSelectionChanged(func(ev SelectionEvent[string]) {
		events = append(events, ev)
	})

	require.NoError(t, te.SetSelection(7))

	require.Equal(t, 7, te.Selection())
	require.Equal(t, 3, te.FirstVisible())
	require.Equal(t, 9, te.LastVisible())
	require.Equal(t, 280, te.Selected().Top)
	requireConsistent(t, te)

	top, bottom := te.Edges()
	assert.Equal(t, 520, top)
	assert.Equal(t, NoValue, bottom)

	require.Len(t, events, 1)
	assert.Equal(t, 7, events[0].Index)
	require.NotNil(t, events[0].Element)
	assert.Equal(t, 7, events[0].Element.Index)

	require.NoError(t, te.SetSelection(7))
	require.Len(t, events, 1, "selecting the current index does not notify")
}

func TestSetSelectionOutOfRange(t *testing.T) {
	te := newLaidOutEngine(t, 10, DefaultConfig())

	for _, index := range []int{-1, 10, 1 << 40} {
		err := te.SetSelection(index)
		require.ErrorIs(t, err, ErrIndexOutOfRange)
		err = te.ScrollToIndex(index)
		require.ErrorIs(t, err, ErrIndexOutOfRange)
	}
	require.Equal(t, 0, te.Selection())
}

func TestSelectionListenerUnsubscribe(t *testing.T) {
	te := newLaidOutEngine(t, 10, DefaultConfig())

	calls := 0
	sub := te.OnSelectionChanged(func(SelectionEvent[string]) { calls++ })
	te.ScrollByDelta(120)
	require.Equal(t, 1, calls)

	sub.Unsubscribe()
	te.ScrollByDelta(120)
	require.Equal(t, 1, calls)
	require.Equal(t, []int{1, 2}, te.recorder.selections)
}

func TestSelectionNotifiesOncePerChange(t *testing.T) {
	te := newLaidOutEngine(t, 10, DefaultConfig())

	var events []int
	te.OnSelectionChanged(func(ev SelectionEvent[string]) {
		events = append(events, ev.Index)
	})

	for range 20 {
		te.ScrollByDelta(30)
	}
	// 600 units at a step of 120 crosses five midpoints.
	require.Equal(t, []int{1, 2, 3, 4, 5}, events)
}

func TestScrollKeepsWindowConsistent(t *testing.T) {
	for _, shrink := range []bool{false, true} {
		t.Run(fmt.Sprintf("shrink=%v", shrink), func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.ShrinkOnRefill = shrink
			te := newLaidOutEngine(t, 50, cfg)

			deltas := []int{37, 120, 5, 400, -90, 1000, -33, 61, 2500, -1800, 7, 3000, -5000}
			for _, d := range deltas {
				te.ScrollByDelta(d)
				requireConsistent(t, te)
			}
		})
	}
}

func TestShrinkBoundsWindow(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ShrinkOnRefill = true
	te := newLaidOutEngine(t, 100, cfg)

	for range 100 {
		te.ScrollByDelta(97)
		requireConsistent(t, te)
		// The viewport plus both margins never needs more than this many
		// elements at a step of 120.
		require.LessOrEqual(t, len(te.Window()), (testHeight+2*cfg.overlap())/cfg.step()+3)
	}
	require.Greater(t, te.FirstVisible(), 0)
	require.Greater(t, te.recorder.released, 0)
}

func TestGrowOnlyWindowKeepsElements(t *testing.T) {
	te := newLaidOutEngine(t, 30, DefaultConfig())

	for range 20 {
		te.ScrollByDelta(100)
	}
	require.Equal(t, 0, te.FirstVisible())
	require.Equal(t, 0, te.recorder.released)
	requireConsistent(t, te)
}

func TestDrawOrder(t *testing.T) {
	tests := []struct {
		n, selected int
		want        []int
	}{
		{n: 0, selected: 0, want: []int{}},
		{n: 1, selected: 0, want: []int{0}},
		{n: 5, selected: 0, want: []int{4, 3, 2, 1, 0}},
		{n: 5, selected: 2, want: []int{0, 1, 4, 3, 2}},
		{n: 5, selected: 4, want: []int{0, 1, 2, 3, 4}},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d/%d", tt.n, tt.selected), func(t *testing.T) {
			require.Equal(t, tt.want, DrawOrder(tt.n, tt.selected))
		})
	}
}

func TestPerspectiveVariant(t *testing.T) {
	cfg := DefaultConfig()
	params := perspective.DefaultParams()
	cfg.Perspective = &params
	te := newLaidOutEngine(t, 10, cfg)

	require.Equal(t, 0, cfg.overlap())
	require.Equal(t, 3, te.LastVisible())
	requireConsistent(t, te)

	window := te.Window()
	selected := window[te.ReverseOrderIndex()]
	assert.InDelta(t, 0, selected.Transform.Rotation, 1e-9)
	assert.InDelta(t, params.MaxScale, selected.Transform.EffectiveScale(), 1e-9)
	for _, el := range window[1:] {
		assert.Less(t, el.Transform.EffectiveScale(), selected.Transform.EffectiveScale())
	}
}

func TestFlatVariantUsesIdentity(t *testing.T) {
	te := newLaidOutEngine(t, 10, DefaultConfig())
	for _, el := range te.Window() {
		assert.Equal(t, perspective.Identity(), el.Transform)
	}
}

func TestReconfigure(t *testing.T) {
	te := newLaidOutEngine(t, 10, DefaultConfig())
	te.ScrollByDelta(240)
	require.Equal(t, 2, te.Selection())

	cfg := DefaultConfig()
	cfg.Spacing = 1
	require.NoError(t, te.Reconfigure(cfg))
	require.Equal(t, 2, te.Selection())
	require.Equal(t, 240, te.Config().step())
	requireConsistent(t, te)

	bad := cfg
	bad.Deceleration = 0
	require.ErrorIs(t, te.Reconfigure(bad), ErrInvalidConfiguration)
	require.Equal(t, cfg, te.Config())
}
