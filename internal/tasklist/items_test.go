package tasklist_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/slok/tasklist/internal/model"
	"github.com/slok/tasklist/internal/tasklist"
)

func incomplete(id, title string) tasklist.IncompleteTask {
	return tasklist.IncompleteTask{
		Task:             model.Task{ID: id, Title: title},
		MarkCompleteNext: tasklist.MarkTaskComplete{TaskID: id},
	}
}

func completed(id, title string) tasklist.CompletedTask {
	return tasklist.CompletedTask{
		Task:               model.Task{ID: id, Title: title, IsComplete: true},
		MarkIncompleteNext: tasklist.MarkTaskIncomplete{TaskID: id},
	}
}

func TestItems(t *testing.T) {
	tests := map[string]struct {
		items    func() tasklist.Items
		expItems []tasklist.TaskItemState
	}{
		"Empty items should be empty.": {
			items:    func() tasklist.Items { return tasklist.NewItems() },
			expItems: []tasklist.TaskItemState{},
		},

		"Items should keep the order.": {
			items: func() tasklist.Items {
				return tasklist.NewItems(incomplete("a", "A"), completed("b", "B"), incomplete("c", "C"))
			},
			expItems: []tasklist.TaskItemState{incomplete("a", "A"), completed("b", "B"), incomplete("c", "C")},
		},

		"Items with the same ID should keep only the latest one in the first position.": {
			items: func() tasklist.Items {
				return tasklist.NewItems(incomplete("a", "A"), completed("b", "B"), completed("a", "A"))
			},
			expItems: []tasklist.TaskItemState{completed("a", "A"), completed("b", "B")},
		},

		"Putting a new item should append it.": {
			items: func() tasklist.Items {
				return tasklist.NewItems(incomplete("a", "A")).Put(incomplete("b", "B"))
			},
			expItems: []tasklist.TaskItemState{incomplete("a", "A"), incomplete("b", "B")},
		},

		"Putting an existing item should replace it in place.": {
			items: func() tasklist.Items {
				return tasklist.NewItems(incomplete("a", "A"), incomplete("b", "B")).Put(completed("a", "A"))
			},
			expItems: []tasklist.TaskItemState{completed("a", "A"), incomplete("b", "B")},
		},

		"Removing an item should remove only that item.": {
			items: func() tasklist.Items {
				return tasklist.NewItems(incomplete("a", "A"), incomplete("b", "B"), incomplete("c", "C")).Remove("b")
			},
			expItems: []tasklist.TaskItemState{incomplete("a", "A"), incomplete("c", "C")},
		},

		"Removing a missing item should not change anything.": {
			items: func() tasklist.Items {
				return tasklist.NewItems(incomplete("a", "A")).Remove("z")
			},
			expItems: []tasklist.TaskItemState{incomplete("a", "A")},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			items := test.items()
			assert.Equal(t, test.expItems, items.List())
			assert.Equal(t, len(test.expItems), items.Len())
		})
	}
}

func TestItemsAreImmutable(t *testing.T) {
	assert := assert.New(t)

	original := tasklist.NewItems(incomplete("a", "A"), incomplete("b", "B"))

	_ = original.Put(completed("a", "A"))
	_ = original.Put(incomplete("c", "C"))
	_ = original.Remove("b")

	assert.Equal([]tasklist.TaskItemState{incomplete("a", "A"), incomplete("b", "B")}, original.List())

	item, ok := original.Get("a")
	assert.True(ok)
	assert.Equal(incomplete("a", "A"), item)

	_, ok = original.Get("c")
	assert.False(ok)
}

func TestItemsString(t *testing.T) {
	items := tasklist.NewItems(incomplete("a", "A"), completed("b", "B"))

	assert.Equal(t, "[incomplete(a) completed(b)]", items.String())
}
