package carousel

import (
	"fmt"
	"sync"

	"github.com/ayn2op/carousel/engine"
)

// Item is one entry of a SliceDataset.
type Item struct {
	Title string
	Body  string
}

// SliceDataset is a Dataset over a slice of items rendered as Cards.
// Mutations notify the bound carousel; when the carousel runs inside an
// Application, mutate from QueueUpdate.
type SliceDataset struct {
	engine.Notifier

	mu    sync.RWMutex
	items []Item
}

// NewSliceDataset returns a dataset over items.
func NewSliceDataset(items ...Item) *SliceDataset {
	return &SliceDataset{items: items}
}

// Count implements engine.Dataset.
func (d *SliceDataset) Count() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.items)
}

// Item returns the item at index.
func (d *SliceDataset) Item(index int) (Item, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if index < 0 || index >= len(d.items) {
		return Item{}, false
	}
	return d.items[index], true
}

// Materialize implements engine.Dataset. A recycled Card is rebound in
// place. The footer shows the card's position in the dataset.
func (d *SliceDataset) Materialize(index int, reuse Primitive) Primitive {
	d.mu.RLock()
	var item Item
	if index >= 0 && index < len(d.items) {
		item = d.items[index]
	}
	count := len(d.items)
	d.mu.RUnlock()

	card, ok := reuse.(*Card)
	if !ok {
		card = NewCard()
	}
	title := item.Title
	if title == "" {
		title = CardTitle(index)
	}
	card.SetContent(title, item.Body)
	card.SetFooter(fmt.Sprintf("%d/%d", index+1, count))
	return card
}

// Set replaces every item.
func (d *SliceDataset) Set(items ...Item) {
	d.mu.Lock()
	d.items = items
	d.mu.Unlock()
	d.NotifyChanged()
}

// Append adds items at the end.
func (d *SliceDataset) Append(items ...Item) {
	d.mu.Lock()
	d.items = append(d.items, items...)
	d.mu.Unlock()
	d.NotifyChanged()
}

// Remove deletes the item at index. It reports false for an index out of
// range.
func (d *SliceDataset) Remove(index int) bool {
	d.mu.Lock()
	if index < 0 || index >= len(d.items) {
		d.mu.Unlock()
		return false
	}
	d.items = append(d.items[:index], d.items[index+1:]...)
	d.mu.Unlock()
	d.NotifyChanged()
	return true
}

// Invalidate tells the carousel the current views are stale without
// changing the items.
func (d *SliceDataset) Invalidate() {
	d.NotifyInvalidated()
}

var _ engine.Dataset[Primitive] = (*SliceDataset)(nil)
