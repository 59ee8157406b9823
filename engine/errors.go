package engine

import "errors"

var (
	// ErrNoAdapterBound is returned by operations that need a dataset when
	// none is attached.
	ErrNoAdapterBound = errors.New("no dataset bound")
	// ErrIndexOutOfRange is returned when a requested index is outside
	// [0, count-1].
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrInvalidConfiguration wraps every configuration violation.
	ErrInvalidConfiguration = errors.New("invalid configuration")
)
