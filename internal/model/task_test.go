package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/slok/tasklist/internal/model"
)

func TestTaskValidate(t *testing.T) {
	tests := map[string]struct {
		task   model.Task
		expErr error
	}{
		"A task with ID and title should be valid.": {
			task: model.Task{ID: "t1", Title: "Buy milk"},
		},

		"A task without ID should fail.": {
			task:   model.Task{Title: "Buy milk"},
			expErr: model.ErrNotValid,
		},

		"A task without title should fail.": {
			task:   model.Task{ID: "t1"},
			expErr: model.ErrNotValid,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			err := test.task.Validate()
			if test.expErr != nil {
				assert.ErrorIs(t, err, test.expErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTaskWithComplete(t *testing.T) {
	task := model.Task{ID: "t1", Title: "Buy milk"}

	done := task.WithComplete(true)

	assert.True(t, done.IsComplete)
	assert.False(t, task.IsComplete)
	assert.Equal(t, task.ID, done.ID)
}
