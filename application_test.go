package carousel

import (
	"context"
	"testing"
	"time"

	"github.com/gdamore/tcell/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mouseRecorder records the mouse actions it receives and captures the
// mouse while the left button is down.
type mouseRecorder struct {
	*Box
	actions []MouseAction
}

func (r *mouseRecorder) MouseHandler(action MouseAction, event *tcell.EventMouse) (Primitive, Command) {
	r.actions = append(r.actions, action)
	if action == MouseLeftDown {
		return r, RedrawCommand{}
	}
	return nil, nil
}

func TestFireMouseActions(t *testing.T) {
	root := &mouseRecorder{Box: NewBox()}
	app := NewApplication().SetRoot(root)

	events := []*tcell.EventMouse{
		tcell.NewEventMouse(2, 3, tcell.ButtonPrimary, tcell.ModNone),
		tcell.NewEventMouse(2, 5, tcell.ButtonPrimary, tcell.ModNone),
		tcell.NewEventMouse(2, 5, tcell.ButtonNone, tcell.ModNone),
		tcell.NewEventMouse(4, 4, tcell.ButtonPrimary, tcell.ModNone),
		tcell.NewEventMouse(4, 4, tcell.ButtonNone, tcell.ModNone),
		tcell.NewEventMouse(4, 4, tcell.ButtonPrimary, tcell.ModNone),
		tcell.NewEventMouse(4, 4, tcell.ButtonNone, tcell.ModNone),
		tcell.NewEventMouse(4, 4, tcell.WheelDown, tcell.ModNone),
	}
	redraws := 0
	for _, ev := range events {
		if app.fireMouseActions(ev) {
			redraws++
		}
	}

	assert.Equal(t, []MouseAction{
		MouseMove, MouseLeftDown,
		MouseMove,
		MouseLeftUp, // moved since the press, so no click
		MouseMove, MouseLeftDown,
		MouseLeftUp, MouseLeftClick,
		MouseLeftDown,
		MouseLeftUp, MouseLeftDoubleClick,
		MouseScrollDown,
	}, root.actions)
	assert.Equal(t, 3, redraws)
	assert.Nil(t, app.mouse.capture)
}

func TestExecuteCommand(t *testing.T) {
	a, b := NewBox(), NewBox()
	app := NewApplication().SetRoot(a)
	require.Equal(t, a, app.Focus())
	assert.True(t, a.HasFocus())

	assert.False(t, app.executeCommand(nil))
	assert.True(t, app.executeCommand(RedrawCommand{}))
	assert.False(t, app.executeCommand(SetTitleCommand("carousel")))
	assert.True(t, app.executeCommand(BatchCommand{SetTitleCommand("x"), RedrawCommand{}}))

	assert.True(t, app.executeCommand(SetFocusCommand{Target: b}))
	assert.False(t, app.executeCommand(SetFocusCommand{Target: b}))
	assert.False(t, a.HasFocus())
	assert.True(t, b.HasFocus())
}

func TestApplicationStop(t *testing.T) {
	app := NewApplication()
	assert.False(t, app.executeCommand(QuitCommand{}))
	app.Stop()

	// A stopped application neither opens the terminal nor runs updates.
	assert.NoError(t, app.Run(context.Background()))
	ran := false
	assert.False(t, app.QueueUpdate(func() { ran = true }))
	assert.False(t, ran)
}

func TestApplicationTicksAnimatingRoot(t *testing.T) {
	c, _ := newTestCarousel(t, 5)
	app := NewApplication().SetRoot(c)
	Capture(c, 42, 21)

	now := time.Now()
	assert.False(t, app.tick(now))

	c.InputHandler(tcell.NewEventKey(tcell.KeyDown, "", tcell.ModNone))
	for i := 1; c.Animating(); i++ {
		require.Less(t, i, 2000)
		assert.True(t, app.tick(now.Add(time.Duration(i)*16*time.Millisecond)))
	}
	assert.Equal(t, 1, c.Selection())
	assert.False(t, app.tick(now))
}

func TestApplicationTickIgnoresPlainRoot(t *testing.T) {
	app := NewApplication().SetRoot(NewBox())
	assert.False(t, app.tick(time.Now()))
}

func TestFrameTickerRunsOnlyWhileAnimating(t *testing.T) {
	f := &frameTicker{frame: time.Millisecond}
	assert.Nil(t, f.C())

	f.update(true)
	c := f.C()
	require.NotNil(t, c)
	f.update(true)
	assert.Equal(t, c, f.C())
	select {
	case <-c:
	case <-time.After(time.Second):
		t.Fatal("no tick while running")
	}

	f.update(false)
	assert.Nil(t, f.C())
	f.stop()
	assert.Nil(t, f.C())
}

func TestApplicationAnimating(t *testing.T) {
	c, _ := newTestCarousel(t, 5)
	app := NewApplication().SetRoot(c)
	Capture(c, 42, 21)
	assert.False(t, app.animating())

	c.InputHandler(tcell.NewEventKey(tcell.KeyDown, "", tcell.ModNone))
	assert.True(t, app.animating())

	assert.False(t, NewApplication().SetRoot(NewBox()).animating())
	assert.False(t, NewApplication().animating())
}
