package tasklist

import "github.com/slok/tasklist/internal/model"

// State is a snapshot of the task list.
type State interface {
	isState()
}

// LoadingTasks is the state while there is no task data yet.
type LoadingTasks struct{}

// ErrorLoadingTasks is the state after the tasks load failed.
type ErrorLoadingTasks struct{}

// TasksLoaded is the state once the tasks have been loaded.
type TasksLoaded struct {
	Tasks Items
	// IsTaskDraftValid tells if the new task draft can be added (not blank).
	IsTaskDraftValid bool
}

func (LoadingTasks) isState()      {}
func (ErrorLoadingTasks) isState() {}
func (TasksLoaded) isState()       {}

// FailureKind identifies the operation that failed.
type FailureKind string

const (
	LoadFailure           FailureKind = "load"
	AddFailure            FailureKind = "add"
	MarkCompleteFailure   FailureKind = "mark-complete"
	MarkIncompleteFailure FailureKind = "mark-incomplete"
)

// ItemKind identifies a task item state variant.
type ItemKind string

const (
	ItemKindPending               ItemKind = "pending"
	ItemKindIncomplete            ItemKind = "incomplete"
	ItemKindMarkingComplete       ItemKind = "marking-complete"
	ItemKindCompleted             ItemKind = "completed"
	ItemKindMarkingIncomplete     ItemKind = "marking-incomplete"
	ItemKindAddFailure            ItemKind = "add-failure"
	ItemKindMarkCompleteFailure   ItemKind = "mark-complete-failure"
	ItemKindMarkIncompleteFailure ItemKind = "mark-incomplete-failure"
)

// TaskItemState is the state of a single task slot in the list.
type TaskItemState interface {
	// TaskSnapshot returns the task the item represents.
	TaskSnapshot() model.Task
	Kind() ItemKind
	isTaskItemState()
}

// FailedItem is a task item whose last operation failed, it can be retried or cleared.
type FailedItem interface {
	TaskItemState
	FailureKind() FailureKind
	RetryIntent() Intent
	ClearIntent() Intent
	Err() error
}

// PendingTask is a task being added.
type PendingTask struct {
	Task    model.Task
	Request AddTaskRequest
	// OperationID identifies the operation owning the slot, only its result resolves it.
	OperationID string
}

// IncompleteTask is a task not completed yet.
type IncompleteTask struct {
	Task             model.Task
	MarkCompleteNext MarkTaskComplete
}

// MarkingTaskComplete is a task being marked as completed.
type MarkingTaskComplete struct {
	Task        model.Task
	Request     MarkTaskComplete
	OperationID string
}

// CompletedTask is a completed task.
type CompletedTask struct {
	Task               model.Task
	MarkIncompleteNext MarkTaskIncomplete
}

// MarkingTaskIncomplete is a task being marked as incomplete.
type MarkingTaskIncomplete struct {
	Task        model.Task
	Request     MarkTaskIncomplete
	OperationID string
}

// AddTaskFailure is a task that could not be added.
type AddTaskFailure struct {
	Task    model.Task
	Request AddTaskRequest
	Cause   error
	Retry   RetryAddTaskRequest
	Clear   ClearFailedAddTaskRequest
}

// MarkTaskCompleteFailure is a task that could not be marked as completed.
type MarkTaskCompleteFailure struct {
	Task    model.Task
	Request MarkTaskComplete
	Cause   error
	Retry   RetryMarkTaskComplete
	Clear   ClearFailedMarkCompleteRequest
}

// MarkTaskIncompleteFailure is a task that could not be marked as incomplete.
type MarkTaskIncompleteFailure struct {
	Task    model.Task
	Request MarkTaskIncomplete
	Cause   error
	Retry   RetryMarkTaskIncomplete
	Clear   ClearFailedMarkIncompleteRequest
}

func (s PendingTask) TaskSnapshot() model.Task               { return s.Task }
func (s IncompleteTask) TaskSnapshot() model.Task            { return s.Task }
func (s MarkingTaskComplete) TaskSnapshot() model.Task       { return s.Task }
func (s CompletedTask) TaskSnapshot() model.Task             { return s.Task }
func (s MarkingTaskIncomplete) TaskSnapshot() model.Task     { return s.Task }
func (s AddTaskFailure) TaskSnapshot() model.Task            { return s.Task }
func (s MarkTaskCompleteFailure) TaskSnapshot() model.Task   { return s.Task }
func (s MarkTaskIncompleteFailure) TaskSnapshot() model.Task { return s.Task }

func (PendingTask) Kind() ItemKind               { return ItemKindPending }
func (IncompleteTask) Kind() ItemKind            { return ItemKindIncomplete }
func (MarkingTaskComplete) Kind() ItemKind       { return ItemKindMarkingComplete }
func (CompletedTask) Kind() ItemKind             { return ItemKindCompleted }
func (MarkingTaskIncomplete) Kind() ItemKind     { return ItemKindMarkingIncomplete }
func (AddTaskFailure) Kind() ItemKind            { return ItemKindAddFailure }
func (MarkTaskCompleteFailure) Kind() ItemKind   { return ItemKindMarkCompleteFailure }
func (MarkTaskIncompleteFailure) Kind() ItemKind { return ItemKindMarkIncompleteFailure }

func (PendingTask) isTaskItemState()               {}
func (IncompleteTask) isTaskItemState()            {}
func (MarkingTaskComplete) isTaskItemState()       {}
func (CompletedTask) isTaskItemState()             {}
func (MarkingTaskIncomplete) isTaskItemState()     {}
func (AddTaskFailure) isTaskItemState()            {}
func (MarkTaskCompleteFailure) isTaskItemState()   {}
func (MarkTaskIncompleteFailure) isTaskItemState() {}

// inProgressItem is a task item owned by the operation that is resolving it.
type inProgressItem interface {
	TaskItemState
	operationID() string
}

func (s PendingTask) operationID() string           { return s.OperationID }
func (s MarkingTaskComplete) operationID() string   { return s.OperationID }
func (s MarkingTaskIncomplete) operationID() string { return s.OperationID }

func (AddTaskFailure) FailureKind() FailureKind            { return AddFailure }
func (MarkTaskCompleteFailure) FailureKind() FailureKind   { return MarkCompleteFailure }
func (MarkTaskIncompleteFailure) FailureKind() FailureKind { return MarkIncompleteFailure }

func (s AddTaskFailure) RetryIntent() Intent            { return s.Retry }
func (s MarkTaskCompleteFailure) RetryIntent() Intent   { return s.Retry }
func (s MarkTaskIncompleteFailure) RetryIntent() Intent { return s.Retry }

func (s AddTaskFailure) ClearIntent() Intent            { return s.Clear }
func (s MarkTaskCompleteFailure) ClearIntent() Intent   { return s.Clear }
func (s MarkTaskIncompleteFailure) ClearIntent() Intent { return s.Clear }

func (s AddTaskFailure) Err() error            { return s.Cause }
func (s MarkTaskCompleteFailure) Err() error   { return s.Cause }
func (s MarkTaskIncompleteFailure) Err() error { return s.Cause }

// itemFromTask returns the resolved item state for a stored task.
func itemFromTask(t model.Task) TaskItemState {
	if t.IsComplete {
		return CompletedTask{Task: t, MarkIncompleteNext: MarkTaskIncomplete{TaskID: t.ID}}
	}
	return IncompleteTask{Task: t, MarkCompleteNext: MarkTaskComplete{TaskID: t.ID}}
}
