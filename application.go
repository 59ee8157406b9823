package carousel

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/gdamore/tcell/v3"
	"go.uber.org/zap"
)

const (
	updatesQueueSize = 100
	defaultFrameRate = 60
)

// DoubleClickInterval is the longest gap between two clicks that still
// counts as a double click.
var DoubleClickInterval = 500 * time.Millisecond

// MouseAction is what the mouse is logically doing, derived from the raw
// button state of consecutive events.
type MouseAction int16

const (
	MouseMove MouseAction = iota
	MouseLeftDown
	MouseLeftUp
	MouseLeftClick
	MouseLeftDoubleClick
	MouseScrollUp
	MouseScrollDown
)

type queuedUpdate struct {
	f    func()
	done chan struct{}
}

// mouseState turns raw tcell mouse events into MouseActions.
type mouseState struct {
	// capture receives every action until its MouseHandler releases it.
	capture Primitive

	lastX, lastY int
	downX, downY int
	lastClick    time.Time
	buttons      tcell.ButtonMask
}

// Application owns the terminal screen and runs the event loop. It routes
// key, paste and mouse events to the root primitive and, while the root is an
// Animator that reports Animating, ticks it once per frame. No frame timer
// runs while nothing animates.
//
// The following displays a carousel c until a QuitCommand is executed:
//
//	if err := carousel.NewApplication().SetRoot(c).Run(ctx); err != nil {
//	    return err
//	}
type Application struct {
	mu sync.RWMutex

	screen tcell.Screen
	root   Primitive
	focus  Primitive

	updates  chan queuedUpdate
	quit     chan struct{}
	quitOnce sync.Once

	mouse mouseState
	// forceRedraw clears the screen before the next frame.
	forceRedraw bool

	frameRate int
	logger    *zap.Logger
}

// NewApplication returns an application without a root.
func NewApplication() *Application {
	return &Application{
		updates:   make(chan queuedUpdate, updatesQueueSize),
		quit:      make(chan struct{}),
		frameRate: defaultFrameRate,
		logger:    zap.NewNop(),
	}
}

// SetLogger sets the logger the event loop reports to.
func (a *Application) SetLogger(logger *zap.Logger) *Application {
	a.mu.Lock()
	defer a.mu.Unlock()
	if logger == nil {
		logger = zap.NewNop()
	}
	a.logger = logger
	return a
}

// SetFrameRate sets how many times per second an animating root is ticked.
// It must be called before Run.
func (a *Application) SetFrameRate(fps int) *Application {
	a.mu.Lock()
	defer a.mu.Unlock()
	if fps > 0 {
		a.frameRate = fps
	}
	return a
}

// SetScreen makes Run use screen instead of opening the terminal. It has no
// effect once a screen is set.
func (a *Application) SetScreen(screen tcell.Screen) *Application {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.screen == nil {
		a.screen = screen
		a.forceRedraw = true
	}
	return a
}

// SetRoot sets the primitive that fills the screen and gives it focus.
func (a *Application) SetRoot(root Primitive) *Application {
	a.mu.Lock()
	a.root = root
	a.forceRedraw = true
	a.mu.Unlock()

	a.SetFocus(root)
	return a
}

// SetFocus moves keyboard focus to p, blurring the previous holder. p may
// delegate focus to a child.
func (a *Application) SetFocus(p Primitive) *Application {
	a.mu.Lock()
	previous := a.focus
	a.focus = p
	if a.screen != nil {
		a.screen.HideCursor()
	}
	a.mu.Unlock()

	if previous != nil && previous != p {
		previous.Blur()
	}
	if p != nil {
		p.Focus(func(p Primitive) {
			a.SetFocus(p)
		})
	}
	return a
}

// Focus returns the primitive holding keyboard focus, or nil.
func (a *Application) Focus() Primitive {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.focus
}

// Run opens the screen and processes events until Stop is called, a
// QuitCommand is executed or ctx is done. The terminal is restored before
// Run returns. While running, the application owns stdin and stdout; log
// to a file instead.
func (a *Application) Run(ctx context.Context) error {
	select {
	case <-a.quit:
		return nil
	default:
	}

	screen, err := a.openScreen()
	if err != nil {
		return err
	}
	defer a.Stop()
	// Also runs on panic, which would otherwise leave the terminal in raw
	// mode.
	defer screen.Fini()

	a.mu.RLock()
	frame := time.Second / time.Duration(a.frameRate)
	logger := a.logger
	a.mu.RUnlock()

	ticker := &frameTicker{frame: frame}
	defer ticker.stop()

	a.draw()
	logger.Debug("event loop started", zap.Duration("frame", frame))
	defer logger.Debug("event loop stopped")

	var paste pasteState
	events := screen.EventQ()
	for {
		ticker.update(a.animating())
		select {
		case <-ctx.Done():
			return nil

		case <-a.quit:
			return nil

		case event := <-events:
			if event == nil {
				return nil
			}
			redraw, err := a.handleEvent(event, &paste)
			if err != nil {
				logger.Error("screen error", zap.Error(err))
				return err
			}
			if redraw {
				a.draw()
			}

		case now := <-ticker.C():
			if a.tick(now) {
				a.draw()
			}

		case update := <-a.updates:
			update.f()
			if update.done != nil {
				close(update.done)
			}
		}
	}
}

func (a *Application) openScreen() (tcell.Screen, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.screen == nil {
		screen, err := tcell.NewScreen()
		if err != nil {
			return nil, err
		}
		if err := screen.Init(); err != nil {
			return nil, err
		}
		a.screen = screen
	}
	a.screen.EnableMouse()
	a.screen.EnablePaste()
	a.forceRedraw = true
	return a.screen, nil
}

// pasteState collects the keys of a bracketed paste.
type pasteState struct {
	active bool
	buf    strings.Builder
}

// handleEvent dispatches one screen event and reports whether the screen
// needs a redraw.
func (a *Application) handleEvent(event tcell.Event, paste *pasteState) (bool, error) {
	switch event := event.(type) {
	case *tcell.EventKey:
		if paste.active {
			switch event.Key() {
			case tcell.KeyRune:
				paste.buf.WriteString(event.Str())
			case tcell.KeyEnter:
				paste.buf.WriteByte('\n')
			case tcell.KeyTab:
				paste.buf.WriteByte('\t')
			}
			return false, nil
		}
		root := a.rootPrimitive()
		if root == nil || !root.HasFocus() {
			return false, nil
		}
		return a.executeCommand(root.InputHandler(event)), nil

	case *tcell.EventPaste:
		if event.Start() {
			paste.active = true
			paste.buf.Reset()
			return false, nil
		}
		paste.active = false
		root := a.rootPrimitive()
		if root == nil || !root.HasFocus() || paste.buf.Len() == 0 {
			return false, nil
		}
		return a.executeCommand(root.PasteHandler(paste.buf.String())), nil

	case *tcell.EventResize:
		a.mu.Lock()
		a.forceRedraw = true
		a.mu.Unlock()
		return true, nil

	case *tcell.EventMouse:
		return a.fireMouseActions(event), nil

	case *tcell.EventError:
		return false, event
	}
	return false, nil
}

func (a *Application) rootPrimitive() Primitive {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.root
}

// animating reports whether the root is an Animator with work to do.
func (a *Application) animating() bool {
	animator, ok := a.rootPrimitive().(Animator)
	return ok && animator.Animating()
}

// tick advances the root by one frame if it is animating.
func (a *Application) tick(now time.Time) bool {
	if !a.animating() {
		return false
	}
	return a.executeCommand(a.rootPrimitive().(Animator).Tick(now))
}

// frameTicker delivers frame ticks only while it is running.
type frameTicker struct {
	frame  time.Duration
	ticker *time.Ticker
}

// C returns the tick channel, or nil while stopped.
func (f *frameTicker) C() <-chan time.Time {
	if f.ticker == nil {
		return nil
	}
	return f.ticker.C
}

func (f *frameTicker) update(running bool) {
	switch {
	case running && f.ticker == nil:
		f.ticker = time.NewTicker(f.frame)
	case !running && f.ticker != nil:
		f.ticker.Stop()
		f.ticker = nil
	}
}

func (f *frameTicker) stop() {
	f.update(false)
}

// fireMouseActions derives mouse actions from event and sends them to the
// capturing primitive, or the root when nothing captures the mouse. It
// reports whether any handler asked for a redraw.
func (a *Application) fireMouseActions(event *tcell.EventMouse) (redraw bool) {
	m := &a.mouse
	fire := func(action MouseAction) {
		target := m.capture
		if target == nil {
			target = a.rootPrimitive()
		}
		if target == nil {
			return
		}
		capture, cmd := target.MouseHandler(action, event)
		if a.executeCommand(cmd) {
			redraw = true
		}
		m.capture = capture
	}

	x, y := event.Position()
	buttons := event.Buttons()

	if x != m.lastX || y != m.lastY {
		fire(MouseMove)
		m.lastX, m.lastY = x, y
	}

	if (buttons^m.buttons)&tcell.ButtonPrimary != 0 {
		if buttons&tcell.ButtonPrimary != 0 {
			m.downX, m.downY = x, y
			fire(MouseLeftDown)
		} else {
			fire(MouseLeftUp)
			if x == m.downX && y == m.downY {
				now := time.Now()
				if now.Sub(m.lastClick) > DoubleClickInterval {
					fire(MouseLeftClick)
					m.lastClick = now
				} else {
					fire(MouseLeftDoubleClick)
					m.lastClick = time.Time{}
				}
			}
		}
	}

	if buttons&tcell.WheelUp != 0 {
		fire(MouseScrollUp)
	}
	if buttons&tcell.WheelDown != 0 {
		fire(MouseScrollDown)
	}

	m.buttons = buttons
	return redraw
}

// Stop ends Run. It is safe to call from any goroutine, more than once, and
// before Run starts.
func (a *Application) Stop() {
	a.quitOnce.Do(func() {
		close(a.quit)
	})
}

func (a *Application) draw() {
	a.mu.Lock()
	screen, root, force := a.screen, a.root, a.forceRedraw
	a.forceRedraw = false
	a.mu.Unlock()

	if screen == nil || root == nil {
		return
	}

	width, height := screen.Size()
	root.SetRect(0, 0, width, height)
	// tcell diffs against its back buffer in Show, so only forced redraws
	// clear.
	if force {
		screen.Clear()
	}
	root.Draw(screen)
	screen.Show()
}

// QueueUpdate runs f on the event loop and waits for it. Primitives and
// datasets bound to them must only be touched from the event loop. It
// reports false, without running f, when the application stopped.
func (a *Application) QueueUpdate(f func()) bool {
	done := make(chan struct{})
	select {
	case a.updates <- queuedUpdate{f: f, done: done}:
	case <-a.quit:
		return false
	}
	select {
	case <-done:
		return true
	case <-a.quit:
		return false
	}
}

// QueueUpdateDraw is QueueUpdate followed by a redraw.
func (a *Application) QueueUpdateDraw(f func()) bool {
	return a.QueueUpdate(func() {
		f()
		a.draw()
	})
}

// executeCommand applies cmd and reports whether it needs a redraw.
func (a *Application) executeCommand(cmd Command) bool {
	switch c := cmd.(type) {
	case nil:
		return false
	case BatchCommand:
		redraw := false
		for _, item := range c {
			if a.executeCommand(item) {
				redraw = true
			}
		}
		return redraw
	case RedrawCommand:
		return true
	case QuitCommand:
		a.Stop()
		return false
	case SetFocusCommand:
		if c.Target == nil {
			return false
		}
		changed := a.Focus() != c.Target
		a.SetFocus(c.Target)
		return changed
	case SetTitleCommand:
		a.mu.RLock()
		screen := a.screen
		a.mu.RUnlock()
		if screen != nil {
			screen.SetTitle(string(c))
		}
		return false
	}
	return false
}
