// Package pool implements a recycling pool of detached values. The pool only
// holds weak references: the garbage collector may reclaim a pooled value at
// any time, and callers must treat a miss as "create a fresh one".
package pool

import (
	"weak"

	"github.com/eapache/queue"
)

// Pool is a FIFO of weakly held *T. It is not safe for concurrent use.
type Pool[T any] struct {
	entries  *queue.Queue
	capacity int
}

// Option configures a Pool.
type Option func(*config)

type config struct {
	capacity int
}

// WithCapacity bounds the number of handles kept. Releasing into a full pool
// evicts the oldest handle. Zero or negative means unbounded.
func WithCapacity(capacity int) Option {
	return func(c *config) {
		c.capacity = capacity
	}
}

// New returns an empty pool.
func New[T any](options ...Option) *Pool[T] {
	var c config
	for _, option := range options {
		option(&c)
	}
	return &Pool[T]{
		entries:  queue.New(),
		capacity: c.capacity,
	}
}

// Release appends a weak handle to v. Nil values are ignored. Release never
// deduplicates, so releasing the same value twice makes it available twice.
func (p *Pool[T]) Release(v *T) {
	if v == nil {
		return
	}
	if p.capacity > 0 {
		for p.entries.Length() >= p.capacity {
			p.entries.Remove()
		}
	}
	p.entries.Add(weak.Make(v))
}

// Acquire returns the oldest pooled value that is still alive. Reclaimed
// handles met on the way are dropped.
func (p *Pool[T]) Acquire() (*T, bool) {
	for p.entries.Length() > 0 {
		handle := p.entries.Remove().(weak.Pointer[T])
		if v := handle.Value(); v != nil {
			return v, true
		}
	}
	return nil, false
}

// Len returns the number of handles held, including ones whose value may
// already have been reclaimed.
func (p *Pool[T]) Len() int {
	return p.entries.Length()
}

// Clear drops every handle.
func (p *Pool[T]) Clear() {
	for p.entries.Length() > 0 {
		p.entries.Remove()
	}
}
