package todos

import "github.com/idilsaglam/tada/internal/model"

// DefaultIDFloor is the smallest id handed out by Add when the seed data
// sits below it.
const DefaultIDFloor = 101

// Engine owns an ordered collection of items and the counter used to assign
// ids. The zero value is not usable; build one with New.
//
// Every operation returns a fresh collection. Slices returned earlier stay
// valid and unchanged.
type Engine struct {
	items  []model.Item
	nextID int
}

// New seeds an engine with a copy of seed. The first id assigned by Add is
// max(floor, highest seed id + 1).
func New(seed []model.Item, floor int) *Engine {
	items := make([]model.Item, len(seed))
	copy(items, seed)

	next := floor
	for _, it := range items {
		if it.ID >= next {
			next = it.ID + 1
		}
	}
	return &Engine{items: items, nextID: next}
}

// Items returns the current collection. Callers must treat it as read-only.
func (e *Engine) Items() []model.Item { return e.items }

// Add appends a pending item titled title and returns the new collection and
// the id it was given.
func (e *Engine) Add(title string) ([]model.Item, int) {
	id := e.nextID
	e.nextID++
	e.items = Reduce(e.items, Added{ID: id, Title: title})
	return e.items, id
}

// Update replaces the item sharing it.ID. Unknown ids leave the collection as is.
func (e *Engine) Update(it model.Item) []model.Item {
	e.items = Reduce(e.items, Changed{Item: it})
	return e.items
}

// Remove deletes the item with id. Unknown ids leave the collection as is.
func (e *Engine) Remove(id int) []model.Item {
	e.items = Reduce(e.items, Deleted{ID: id})
	return e.items
}

// Toggle flips Completed on the item with id, routed through Update.
func (e *Engine) Toggle(id int) []model.Item {
	idx := indexOf(e.items, id)
	if idx < 0 {
		return e.items
	}
	it := e.items[idx]
	it.Completed = !it.Completed
	return e.Update(it)
}

// Stats counts completed and pending items.
func Stats(items []model.Item) (done, pending int) {
	for _, it := range items {
		if it.Completed {
			done++
		} else {
			pending++
		}
	}
	return
}
