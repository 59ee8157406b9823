package carousel

import (
	"time"

	"github.com/gdamore/tcell/v3"
)

// Primitive is anything the application can draw and route input to. Views
// handed out by a Dataset are primitives too.
type Primitive interface {
	// Draw draws this primitive onto the screen.
	Draw(screen tcell.Screen)

	// GetRect returns the current position of the primitive, x, y, width, and
	// height.
	GetRect() (int, int, int, int)
	// SetRect sets a new position of the primitive.
	SetRect(x, y, width, height int)

	// InputHandler receives key events when this primitive has focus.
	InputHandler(event *tcell.EventKey) Command
	// MouseHandler receives mouse events. The returned capture primitive (if
	// non-nil) receives follow-up mouse events until the capture is released.
	MouseHandler(action MouseAction, event *tcell.EventMouse) (Primitive, Command)
	// PasteHandler receives pasted text.
	PasteHandler(text string) Command

	// HasFocus determines if the primitive has focus.
	HasFocus() bool
	// Focus is called by the application when the primitive receives focus.
	Focus(delegate func(p Primitive))
	// Blur is called by the application when the primitive loses focus.
	Blur()
}

// Animator is implemented by primitives that move on their own. While
// Animating reports true the application calls Tick once per frame.
type Animator interface {
	Animating() bool
	Tick(now time.Time) Command
}

// ElementState is what a view learns about the element it is bound to.
type ElementState struct {
	Index    int
	Selected bool
	Cached   bool
	// Depth is 0 for an element drawn at full size and grows as the
	// perspective transform pushes it back.
	Depth float64
}

// Stateful views receive their ElementState before every draw.
type Stateful interface {
	SetElementState(state ElementState)
}
