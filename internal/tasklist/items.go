package tasklist

import (
	"fmt"
	"strings"
)

// Items is an immutable ordered collection of task item states keyed by task ID.
//
// There is at most one item per task ID. Every change returns a new collection, the
// receiver is never modified so snapshots can be shared.
type Items struct {
	ids  []string
	byID map[string]TaskItemState
}

// NewItems returns a collection with the items in order. An item replaces a
// previous one with the same task ID.
func NewItems(items ...TaskItemState) Items {
	is := Items{
		ids:  make([]string, 0, len(items)),
		byID: make(map[string]TaskItemState, len(items)),
	}
	for _, item := range items {
		id := item.TaskSnapshot().ID
		if _, ok := is.byID[id]; !ok {
			is.ids = append(is.ids, id)
		}
		is.byID[id] = item
	}
	return is
}

// Len returns the number of items.
func (i Items) Len() int { return len(i.ids) }

// Get returns the item of a task ID.
func (i Items) Get(id string) (TaskItemState, bool) {
	item, ok := i.byID[id]
	return item, ok
}

// Put returns a collection with the item set. An existing item with the same task
// ID is replaced keeping its position, otherwise the item is appended.
func (i Items) Put(item TaskItemState) Items {
	id := item.TaskSnapshot().ID
	next := i.clone()
	if _, ok := next.byID[id]; !ok {
		next.ids = append(next.ids, id)
	}
	next.byID[id] = item
	return next
}

// Remove returns a collection without the item of the task ID.
func (i Items) Remove(id string) Items {
	if _, ok := i.byID[id]; !ok {
		return i
	}

	next := Items{
		ids:  make([]string, 0, len(i.ids)),
		byID: make(map[string]TaskItemState, len(i.byID)),
	}
	for _, itemID := range i.ids {
		if itemID == id {
			continue
		}
		next.ids = append(next.ids, itemID)
		next.byID[itemID] = i.byID[itemID]
	}
	return next
}

// List returns the items in order.
func (i Items) List() []TaskItemState {
	items := make([]TaskItemState, 0, len(i.ids))
	for _, id := range i.ids {
		items = append(items, i.byID[id])
	}
	return items
}

func (i Items) String() string {
	items := make([]string, 0, len(i.ids))
	for _, id := range i.ids {
		items = append(items, fmt.Sprintf("%s(%s)", i.byID[id].Kind(), id))
	}
	return "[" + strings.Join(items, " ") + "]"
}

func (i Items) clone() Items {
	next := Items{
		ids:  make([]string, len(i.ids), len(i.ids)+1),
		byID: make(map[string]TaskItemState, len(i.byID)+1),
	}
	copy(next.ids, i.ids)
	for id, item := range i.byID {
		next.byID[id] = item
	}
	return next
}
