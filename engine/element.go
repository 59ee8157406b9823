package engine

import "github.com/ayn2op/carousel/perspective"

// Element is one materialized dataset item. Rectangles are in content
// coordinates: y grows downward and includes the scroll offset.
type Element[V any] struct {
	Index int

	Left, Top, Right, Bottom int

	// Selected is set on the element nearest the viewport center.
	Selected bool
	// Cached is set while the carousel is being dragged, letting hosts draw
	// a cheaper rendition.
	Cached bool

	// Transform is the perspective transform of the last pass; the identity
	// in the flat variant.
	Transform perspective.Transform

	View V
}

// Center returns the axial center of the element.
func (e *Element[V]) Center() int {
	return e.Top + (e.Bottom-e.Top)/2
}

// Width returns the laid out width.
func (e *Element[V]) Width() int {
	return e.Right - e.Left
}

// Height returns the laid out height.
func (e *Element[V]) Height() int {
	return e.Bottom - e.Top
}

func (e *Element[V]) layout(left, top, width, height int) {
	e.Left, e.Top = left, top
	e.Right, e.Bottom = left+width, top+height
}

// SelectionEvent is delivered to selection listeners.
type SelectionEvent[V any] struct {
	// Element is the newly selected element. It is nil when the selection
	// moved while nothing was materialized.
	Element *Element[V]
	// Index is the absolute dataset index.
	Index int
}
