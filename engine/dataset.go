package engine

import "sync"

// Dataset supplies the items an Engine windows over.
type Dataset[V any] interface {
	// Count returns the number of items.
	Count() int
	// Materialize returns the visual for index. reuse is a previously
	// detached visual taken from the recycling pool, or the zero value when
	// none was available.
	Materialize(index int, reuse V) V
	// Subscribe registers change and invalidation callbacks. Either may be
	// nil.
	Subscribe(onChanged, onInvalidated func()) Subscription
}

// Subscription cancels a registration.
type Subscription interface {
	Unsubscribe()
}

// SubscriptionFunc adapts a function to Subscription.
type SubscriptionFunc func()

// Unsubscribe calls f.
func (f SubscriptionFunc) Unsubscribe() {
	if f != nil {
		f()
	}
}

type observer struct {
	id            uint64
	onChanged     func()
	onInvalidated func()
}

// Notifier implements the subscription half of Dataset. Embed it in a
// dataset and call NotifyChanged or NotifyInvalidated after mutations.
// Callbacks run on the notifying goroutine, in subscription order.
type Notifier struct {
	mu        sync.Mutex
	nextID    uint64
	observers []observer
}

// Subscribe registers callbacks.
func (n *Notifier) Subscribe(onChanged, onInvalidated func()) Subscription {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.nextID++
	id := n.nextID
	n.observers = append(n.observers, observer{id: id, onChanged: onChanged, onInvalidated: onInvalidated})
	return SubscriptionFunc(func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		for i, o := range n.observers {
			if o.id == id {
				n.observers = append(n.observers[:i], n.observers[i+1:]...)
				return
			}
		}
	})
}

// NotifyChanged tells every subscriber the data changed.
func (n *Notifier) NotifyChanged() {
	for _, o := range n.snapshot() {
		if o.onChanged != nil {
			o.onChanged()
		}
	}
}

// NotifyInvalidated tells every subscriber the data is no longer valid.
func (n *Notifier) NotifyInvalidated() {
	for _, o := range n.snapshot() {
		if o.onInvalidated != nil {
			o.onInvalidated()
		}
	}
}

func (n *Notifier) snapshot() []observer {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]observer, len(n.observers))
	copy(out, n.observers)
	return out
}
