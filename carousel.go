// Package carousel is a terminal host for the carousel engine: a Carousel
// primitive that draws a virtualized, flingable stack of cards with tcell,
// plus the Application event loop that drives its animations.
package carousel

import (
	"math"
	"time"

	"github.com/ayn2op/carousel/engine"
	"github.com/ayn2op/carousel/keybind"
	"github.com/ayn2op/carousel/perspective"
	"github.com/gdamore/tcell/v3"
)

// DefaultConfig returns engine settings scaled for terminal cells: cards of
// 40x7 cells stacked every 3 rows, with physics tuned for cell units.
func DefaultConfig() engine.Config {
	cfg := engine.DefaultConfig()
	cfg.ElementWidth = 40
	cfg.ElementHeight = 7
	cfg.Spacing = 0.5
	cfg.TouchSlop = 1
	cfg.MinimumVelocity = 4
	cfg.MaximumVelocity = 400
	cfg.Deceleration = 60
	cfg.AlignFrequency = 8
	return cfg
}

// PerspectiveParams returns cover-flow tuning for viewports measured in rows.
func PerspectiveParams() perspective.Params {
	p := perspective.DefaultParams()
	p.TuningReferenceSize = 40
	p.MaxScale = 1.1
	p.PerspectiveMultiplier = 0.6
	return p
}

// Carousel draws the window of an engine.Engine and turns keys, wheel and
// mouse drags into engine input.
type Carousel struct {
	*Box

	engine    *engine.Engine[Primitive]
	indicator *Indicator
	keys      KeyMap

	showIndicator bool
	flingVelocity float64
	wheelStep     int

	// pending is the index of the last ScrollToIndex, so repeated key presses
	// step from the running alignment instead of the old selection.
	pending  int
	dragging bool

	changed func(index int, view Primitive)
}

// NewCarousel returns a carousel without a dataset.
func NewCarousel(cfg engine.Config, opts ...engine.Option) (*Carousel, error) {
	e, err := engine.New[Primitive](cfg, opts...)
	if err != nil {
		return nil, err
	}

	c := &Carousel{
		Box:           NewBox(),
		engine:        e,
		indicator:     NewIndicator(),
		keys:          DefaultKeyMap(),
		showIndicator: true,
		flingVelocity: 40,
		wheelStep:     1,
	}
	e.OnSelectionChanged(c.selectionChanged)
	return c, nil
}

// Engine returns the underlying engine.
func (c *Carousel) Engine() *engine.Engine[Primitive] {
	return c.engine
}

// SetDataset binds ds. Views it returns are drawn as the carousel's cards.
func (c *Carousel) SetDataset(ds engine.Dataset[Primitive]) *Carousel {
	c.engine.SetDataset(ds)
	c.pending = c.engine.Selection()
	c.syncIndicator()
	c.MarkDirty()
	return c
}

// SetConfig replaces the engine configuration.
func (c *Carousel) SetConfig(cfg engine.Config) error {
	if err := c.engine.Reconfigure(cfg); err != nil {
		return err
	}
	c.MarkDirty()
	return nil
}

// SetChangedFunc sets a handler called with the index and view of every new
// selection. view is nil when the selection moved while nothing was
// materialized.
func (c *Carousel) SetChangedFunc(handler func(index int, view Primitive)) *Carousel {
	c.changed = handler
	return c
}

// SetKeyMap replaces the key bindings.
func (c *Carousel) SetKeyMap(keys KeyMap) *Carousel {
	c.keys = keys
	return c
}

// KeyMap returns the key bindings.
func (c *Carousel) KeyMap() KeyMap {
	return c.keys
}

// SetIndicator shows or hides the position indicator in the last column.
func (c *Carousel) SetIndicator(show bool) *Carousel {
	if c.showIndicator != show {
		c.showIndicator = show
		c.MarkDirty()
	}
	return c
}

// SetFlingVelocity sets the velocity, in rows per second, of the fling keys.
func (c *Carousel) SetFlingVelocity(velocity float64) *Carousel {
	c.flingVelocity = velocity
	return c
}

// SetWheelStep sets how many rows one wheel notch scrolls.
func (c *Carousel) SetWheelStep(rows int) *Carousel {
	c.wheelStep = max(rows, 1)
	return c
}

// Selection returns the selected index.
func (c *Carousel) Selection() int {
	return c.engine.Selection()
}

// SetSelection jumps to index without animation.
func (c *Carousel) SetSelection(index int) error {
	if err := c.engine.SetSelection(index); err != nil {
		return err
	}
	c.pending = index
	c.MarkDirty()
	return nil
}

// ScrollToIndex animates index to the center.
func (c *Carousel) ScrollToIndex(index int) error {
	if err := c.engine.ScrollToIndex(index); err != nil {
		return err
	}
	c.pending = index
	c.MarkDirty()
	return nil
}

// Animating implements Animator.
func (c *Carousel) Animating() bool {
	return c.engine.Animating()
}

// Tick implements Animator.
func (c *Carousel) Tick(now time.Time) Command {
	if !c.engine.Animating() {
		return nil
	}
	c.engine.ComputeScroll(now)
	c.MarkDirty()
	return RedrawCommand{}
}

func (c *Carousel) selectionChanged(ev engine.SelectionEvent[Primitive]) {
	c.syncIndicator()
	c.MarkDirty()
	if c.changed == nil {
		return
	}
	var view Primitive
	if ev.Element != nil {
		view = ev.Element.View
	}
	c.changed(ev.Index, view)
}

func (c *Carousel) syncIndicator() {
	count := 0
	if ds := c.engine.Dataset(); ds != nil {
		count = ds.Count()
	}
	c.indicator.SetPosition(c.engine.Selection(), count)
}

// viewport returns the rectangle cards are laid out in.
func (c *Carousel) viewport() (x, y, width, height int) {
	x, y, width, height = c.GetInnerRect()
	if c.showIndicator && width > 1 {
		width--
	}
	return x, y, width, height
}

// Draw draws the carousel.
func (c *Carousel) Draw(screen tcell.Screen) {
	c.DrawForSubclass(screen, c)

	x, y, width, height := c.viewport()
	if c.engine.Dataset() == nil || width <= 0 || height <= 0 {
		return
	}
	// Layout runs a pass, which also refills a window reset by a dataset
	// change.
	if err := c.engine.Layout(width, height); err != nil {
		return
	}

	clip := newClippedScreen(screen, x, y, width, height)
	window := c.engine.Window()
	scrollY := c.engine.ScrollY()
	for _, i := range c.engine.DrawOrder() {
		c.drawElement(clip, window[i], x, y, scrollY)
	}

	if c.showIndicator {
		ix, iy, iw, ih := c.GetInnerRect()
		c.syncIndicator()
		c.indicator.SetBackgroundColor(c.backgroundColor)
		c.indicator.SetRect(ix+iw-1, iy, 1, ih)
		c.indicator.Draw(screen)
	}
}

// elementRect maps an element from content coordinates to the screen,
// applying the perspective scale and position adjustment around its center.
func elementRect(el *engine.Element[Primitive], originX, originY, scrollY int) (x, y, width, height int) {
	scale := el.Transform.EffectiveScale()
	width = max(1, int(math.Round(float64(el.Width())*scale)))
	height = max(1, int(math.Round(float64(el.Height())*scale)))

	cx := originX + el.Left + el.Width()/2
	cy := originY + el.Center() - scrollY + int(math.Round(el.Transform.PositionAdjust))
	return cx - width/2, cy - height/2, width, height
}

func (c *Carousel) drawElement(screen tcell.Screen, el *engine.Element[Primitive], originX, originY, scrollY int) {
	view := el.View
	if view == nil {
		return
	}
	view.SetRect(elementRect(el, originX, originY, scrollY))
	if s, ok := view.(Stateful); ok {
		s.SetElementState(ElementState{
			Index:    el.Index,
			Selected: el.Selected,
			Cached:   el.Cached,
			Depth:    el.Transform.Depth,
		})
	}
	view.Draw(screen)
}

// indexAt returns the index of the topmost element drawn at (x, y), or -1.
func (c *Carousel) indexAt(x, y int) int {
	window := c.engine.Window()
	order := c.engine.DrawOrder()
	for i := len(order) - 1; i >= 0; i-- {
		el := window[order[i]]
		if el.View == nil {
			continue
		}
		rx, ry, rw, rh := el.View.GetRect()
		if x >= rx && x < rx+rw && y >= ry && y < ry+rh {
			return el.Index
		}
	}
	return -1
}

func (c *Carousel) stepSelection(delta int) Command {
	ds := c.engine.Dataset()
	if ds == nil || ds.Count() == 0 {
		return nil
	}
	base := c.engine.Selection()
	if c.engine.TouchState() == engine.Aligning {
		base = c.pending
	}
	target := min(max(base+delta, 0), ds.Count()-1)
	if target == base && !c.engine.Animating() {
		return nil
	}
	if err := c.ScrollToIndex(target); err != nil {
		return nil
	}
	return RedrawCommand{}
}

func (c *Carousel) jump(index int) Command {
	if err := c.SetSelection(index); err != nil {
		return nil
	}
	return RedrawCommand{}
}

// InputHandler handles key events.
func (c *Carousel) InputHandler(event *tcell.EventKey) Command {
	switch {
	case keybind.Matches(event, c.keys.Next):
		return c.stepSelection(1)
	case keybind.Matches(event, c.keys.Prev):
		return c.stepSelection(-1)
	case keybind.Matches(event, c.keys.FlingDown):
		c.engine.Fling(0, c.flingVelocity)
		return RedrawCommand{}
	case keybind.Matches(event, c.keys.FlingUp):
		c.engine.Fling(0, -c.flingVelocity)
		return RedrawCommand{}
	case keybind.Matches(event, c.keys.First):
		return c.jump(0)
	case keybind.Matches(event, c.keys.Last):
		if ds := c.engine.Dataset(); ds != nil {
			return c.jump(ds.Count() - 1)
		}
	}
	return nil
}

// MouseHandler turns a left-button drag into pointer input for the engine,
// the wheel into scrolling and a click on a card into an alignment.
func (c *Carousel) MouseHandler(action MouseAction, event *tcell.EventMouse) (Primitive, Command) {
	x, y := event.Position()
	pointer := func(kind engine.PointerKind) {
		c.engine.HandlePointer(engine.PointerEvent{Kind: kind, X: x, Y: y, Time: event.When()})
		c.MarkDirty()
	}

	switch action {
	case MouseLeftDown:
		if !c.InInnerRect(x, y) {
			return nil, nil
		}
		c.dragging = true
		pointer(engine.PointerDown)
		return c, AppendCommand(SetFocusCommand{Target: c}, RedrawCommand{})

	case MouseMove:
		if !c.dragging {
			return nil, nil
		}
		pointer(engine.PointerMove)
		return c, RedrawCommand{}

	case MouseLeftUp:
		if !c.dragging {
			return nil, nil
		}
		c.dragging = false
		pointer(engine.PointerUp)
		return nil, RedrawCommand{}

	case MouseLeftClick:
		if index := c.indexAt(x, y); index >= 0 && index != c.engine.Selection() {
			if err := c.ScrollToIndex(index); err == nil {
				return nil, RedrawCommand{}
			}
		}
		return nil, nil

	case MouseScrollUp, MouseScrollDown:
		if !c.InRect(x, y) {
			return nil, nil
		}
		delta := c.wheelStep
		if action == MouseScrollUp {
			delta = -delta
		}
		c.engine.ScrollByDelta(delta)
		c.MarkDirty()
		return nil, RedrawCommand{}
	}
	return nil, nil
}

var (
	_ Primitive = &Carousel{}
	_ Animator  = &Carousel{}
)
