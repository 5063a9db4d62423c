package tasklist

import (
	"github.com/oklog/ulid/v2"

	"github.com/slok/tasklist/internal/model"
)

// Intent is a request to change the task list.
//
// The set of intents is closed: every intent selects its own reducer stream
// so a new intent can't exist without one.
type Intent interface {
	reducerStream(f *ReducerFactory) ReducerStream
}

// RetryLoadingTasks loads the tasks again, used after a failed load.
type RetryLoadingTasks struct{}

// UpdateTaskDraft reports the current text of the new task draft.
type UpdateTaskDraft struct {
	Content string
}

// AddTaskRequest adds a new incomplete task. RequestID is the ID the task gets
// once added and identifies the submission while it is pending or failed.
type AddTaskRequest struct {
	Title     string
	RequestID string
}

// NewAddTaskRequest returns an add request with a newly generated request ID.
func NewAddTaskRequest(title string) AddTaskRequest {
	return AddTaskRequest{
		Title:     title,
		RequestID: ulid.Make().String(),
	}
}

// MarkTaskComplete marks an incomplete task as completed.
type MarkTaskComplete struct {
	TaskID string
}

// MarkTaskIncomplete marks a completed task as incomplete.
type MarkTaskIncomplete struct {
	TaskID string
}

// RetryAddTaskRequest retries a failed add.
type RetryAddTaskRequest struct {
	Task model.Task
}

// RetryMarkTaskComplete retries a failed mark as completed.
type RetryMarkTaskComplete struct {
	Task model.Task
}

// RetryMarkTaskIncomplete retries a failed mark as incomplete.
type RetryMarkTaskIncomplete struct {
	Task model.Task
}

// ClearFailedAddTaskRequest dismisses a failed add, removing the task.
type ClearFailedAddTaskRequest struct {
	RequestID string
}

// ClearFailedMarkCompleteRequest dismisses a failed mark as completed, the task goes back to incomplete.
type ClearFailedMarkCompleteRequest struct {
	RequestID string
}

// ClearFailedMarkIncompleteRequest dismisses a failed mark as incomplete, the task goes back to completed.
type ClearFailedMarkIncompleteRequest struct {
	RequestID string
}

func (i RetryLoadingTasks) reducerStream(f *ReducerFactory) ReducerStream {
	return f.LoadTasks()
}

func (i UpdateTaskDraft) reducerStream(f *ReducerFactory) ReducerStream {
	return f.UpdateTaskDraft(i)
}

func (i AddTaskRequest) reducerStream(f *ReducerFactory) ReducerStream {
	return f.AddTask(i)
}

func (i MarkTaskComplete) reducerStream(f *ReducerFactory) ReducerStream {
	return f.MarkTaskComplete(i)
}

func (i MarkTaskIncomplete) reducerStream(f *ReducerFactory) ReducerStream {
	return f.MarkTaskIncomplete(i)
}

func (i RetryAddTaskRequest) reducerStream(f *ReducerFactory) ReducerStream {
	return f.RetryAddTask(i)
}

func (i RetryMarkTaskComplete) reducerStream(f *ReducerFactory) ReducerStream {
	return f.RetryMarkTaskComplete(i)
}

func (i RetryMarkTaskIncomplete) reducerStream(f *ReducerFactory) ReducerStream {
	return f.RetryMarkTaskIncomplete(i)
}

func (i ClearFailedAddTaskRequest) reducerStream(f *ReducerFactory) ReducerStream {
	return f.ClearFailedAddTask(i)
}

func (i ClearFailedMarkCompleteRequest) reducerStream(f *ReducerFactory) ReducerStream {
	return f.ClearFailedMarkComplete(i)
}

func (i ClearFailedMarkIncompleteRequest) reducerStream(f *ReducerFactory) ReducerStream {
	return f.ClearFailedMarkIncomplete(i)
}
