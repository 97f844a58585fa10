package todos

import (
	"fmt"

	"github.com/idilsaglam/tada/internal/model"
)

// Event is one named edit applied to a collection. The set of variants is
// closed: Added, Changed and Deleted.
type Event interface {
	isEvent()
}

// Added appends a new pending item. The id is assigned by the Engine before
// the event is reduced.
type Added struct {
	ID    int
	Title string
}

// Changed replaces the item carrying the same id, keeping its position.
type Changed struct {
	Item model.Item
}

// Deleted drops the item with ID, if present.
type Deleted struct {
	ID int
}

func (Added) isEvent()   {}
func (Changed) isEvent() {}
func (Deleted) isEvent() {}

// Reduce applies ev to items and returns the resulting collection.
// items is never written to; when ev has no effect the input slice itself is
// returned so callers can detect the no-op by identity.
func Reduce(items []model.Item, ev Event) []model.Item {
	switch e := ev.(type) {
	case Added:
		out := make([]model.Item, len(items), len(items)+1)
		copy(out, items)
		return append(out, model.Item{ID: e.ID, Title: e.Title})

	case Changed:
		idx := indexOf(items, e.Item.ID)
		if idx < 0 || items[idx] == e.Item {
			return items
		}
		out := make([]model.Item, len(items))
		copy(out, items)
		out[idx] = e.Item
		return out

	case Deleted:
		idx := indexOf(items, e.ID)
		if idx < 0 {
			return items
		}
		out := make([]model.Item, 0, len(items)-1)
		out = append(out, items[:idx]...)
		return append(out, items[idx+1:]...)
	}
	panic(fmt.Sprintf("todos: unhandled event %T", ev))
}

func indexOf(items []model.Item, id int) int {
	for i, it := range items {
		if it.ID == id {
			return i
		}
	}
	return -1
}
