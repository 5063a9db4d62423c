package taskservice

import (
	"context"

	"github.com/slok/tasklist/internal/model"
)

// Service is the asynchronous task backend the task list depends on.
//
// Every call either succeeds or returns an error, calls are independent and
// can complete in any order relative to each other.
type Service interface {
	// LoadTasks returns all the tasks in display order.
	LoadTasks(ctx context.Context) ([]model.Task, error)

	// AddTask stores a new task.
	AddTask(ctx context.Context, task model.Task) error

	// MarkComplete marks a task as completed.
	MarkComplete(ctx context.Context, taskID string) error

	// MarkIncomplete marks a task as not completed.
	MarkIncomplete(ctx context.Context, taskID string) error
}
