package tasklist

import (
	"context"
	"fmt"

	"github.com/oklog/ulid/v2"

	"github.com/slok/tasklist/internal/log"
	"github.com/slok/tasklist/internal/model"
	"github.com/slok/tasklist/internal/taskservice"
)

// ReducerFactoryConfig is the configuration for the reducer factory.
type ReducerFactoryConfig struct {
	Service taskservice.Service
	// NewOperationID returns the ID of each task operation, by default a ULID.
	NewOperationID func() string
	Logger         log.Logger
}

func (c *ReducerFactoryConfig) defaults() error {
	if c.Service == nil {
		return fmt.Errorf("task service is required")
	}
	if c.NewOperationID == nil {
		c.NewOperationID = func() string { return ulid.Make().String() }
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "tasklist.ReducerFactory"})
	return nil
}

// ReducerFactory creates the reducer stream of each intent.
//
// Streams that call the task service follow the same shape: a submit reducer that
// moves the task to its in progress variant, the service call, and a success or
// error reducer that resolves it. Every run gets its own operation ID stored in
// the in progress item, resolving reducers only apply while the item is still
// owned by the same operation.
type ReducerFactory struct {
	svc            taskservice.Service
	newOperationID func() string
	logger         log.Logger
}

// NewReducerFactory returns a new reducer factory.
func NewReducerFactory(cfg ReducerFactoryConfig) (*ReducerFactory, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &ReducerFactory{
		svc:            cfg.Service,
		newOperationID: cfg.NewOperationID,
		logger:         cfg.Logger,
	}, nil
}

// operation is a single optimistic task operation.
type operation struct {
	submit    Reducer
	call      func(ctx context.Context) error
	onSuccess Reducer
	onError   func(err error) Reducer
}

// optimistic returns a stream that builds the operation with a new operation ID,
// emits submit, calls the service and emits the success or the error reducer.
func (f *ReducerFactory) optimistic(kind FailureKind, newOp func(opID string) operation) ReducerStream {
	return func(ctx context.Context, emit func(Reducer)) {
		opID := f.newOperationID()
		op := newOp(opID)

		emit(op.submit)

		if err := op.call(ctx); err != nil {
			f.logger.WithValues(log.Kv{"failure": kind, "operation": opID}).Warningf("Task operation failed: %s", err)
			emit(op.onError(err))
			return
		}

		emit(op.onSuccess)
	}
}

// LoadTasks returns the stream that loads the tasks, used at start and on retry loading.
func (f *ReducerFactory) LoadTasks() ReducerStream {
	return func(ctx context.Context, emit func(Reducer)) {
		emit(func(State) State { return LoadingTasks{} })

		tasks, err := f.svc.LoadTasks(ctx)
		if err != nil {
			f.logger.WithValues(log.Kv{"failure": LoadFailure}).Errorf("Error loading tasks: %s", err)
			emit(func(State) State { return ErrorLoadingTasks{} })
			return
		}

		emit(func(s State) State {
			items := make([]TaskItemState, 0, len(tasks))
			for _, t := range tasks {
				items = append(items, itemFromTask(t))
			}

			// Don't lose the draft flag if the tasks were already loaded.
			draftValid := false
			if loaded, ok := s.(TasksLoaded); ok {
				draftValid = loaded.IsTaskDraftValid
			}

			return TasksLoaded{Tasks: NewItems(items...), IsTaskDraftValid: draftValid}
		})
	}
}

// UpdateTaskDraft returns the stream that updates the draft validity.
func (f *ReducerFactory) UpdateTaskDraft(i UpdateTaskDraft) ReducerStream {
	return just(onLoaded(func(s TasksLoaded) TasksLoaded {
		s.IsTaskDraftValid = isNotBlank(i.Content)
		return s
	}))
}

// AddTask returns the stream that adds a new task.
func (f *ReducerFactory) AddTask(i AddTaskRequest) ReducerStream {
	task := model.Task{ID: i.RequestID, Title: i.Title, IsComplete: false}

	return f.optimistic(AddFailure, func(opID string) operation {
		return operation{
			submit: onLoaded(func(s TasksLoaded) TasksLoaded {
				if _, ok := s.Tasks.Get(task.ID); ok {
					return s
				}
				s.Tasks = s.Tasks.Put(PendingTask{Task: task, Request: i, OperationID: opID})
				return s
			}),
			call:      func(ctx context.Context) error { return f.svc.AddTask(ctx, task) },
			onSuccess: addSucceeded(task.ID, opID),
			onError:   func(err error) Reducer { return addFailed(task.ID, opID, err) },
		}
	})
}

// RetryAddTask returns the stream that retries a failed add.
func (f *ReducerFactory) RetryAddTask(i RetryAddTaskRequest) ReducerStream {
	return f.optimistic(AddFailure, func(opID string) operation {
		return operation{
			submit: transitionSlot(i.Task.ID, func(from AddTaskFailure) TaskItemState {
				task := model.Task{ID: from.Request.RequestID, Title: from.Request.Title, IsComplete: false}
				return PendingTask{Task: task, Request: from.Request, OperationID: opID}
			}),
			call:      func(ctx context.Context) error { return f.svc.AddTask(ctx, i.Task) },
			onSuccess: addSucceeded(i.Task.ID, opID),
			onError:   func(err error) Reducer { return addFailed(i.Task.ID, opID, err) },
		}
	})
}

func addSucceeded(id, opID string) Reducer {
	return resolveSlot(id, opID, func(from PendingTask) TaskItemState {
		task := from.Task.WithComplete(false)
		return IncompleteTask{Task: task, MarkCompleteNext: MarkTaskComplete{TaskID: task.ID}}
	})
}

func addFailed(id, opID string, err error) Reducer {
	return resolveSlot(id, opID, func(from PendingTask) TaskItemState {
		task := model.Task{ID: from.Request.RequestID, Title: from.Request.Title, IsComplete: false}
		return AddTaskFailure{
			Task:    task,
			Request: from.Request,
			Cause:   err,
			Retry:   RetryAddTaskRequest{Task: task},
			Clear:   ClearFailedAddTaskRequest{RequestID: from.Request.RequestID},
		}
	})
}

// MarkTaskComplete returns the stream that marks an incomplete task as completed.
func (f *ReducerFactory) MarkTaskComplete(i MarkTaskComplete) ReducerStream {
	return f.optimistic(MarkCompleteFailure, func(opID string) operation {
		return operation{
			submit: transitionSlot(i.TaskID, func(from IncompleteTask) TaskItemState {
				return MarkingTaskComplete{Task: from.Task.WithComplete(true), Request: i, OperationID: opID}
			}),
			call:      func(ctx context.Context) error { return f.svc.MarkComplete(ctx, i.TaskID) },
			onSuccess: markCompleteSucceeded(i.TaskID, opID),
			onError:   func(err error) Reducer { return markCompleteFailed(i.TaskID, opID, err) },
		}
	})
}

// RetryMarkTaskComplete returns the stream that retries a failed mark as completed.
func (f *ReducerFactory) RetryMarkTaskComplete(i RetryMarkTaskComplete) ReducerStream {
	return f.optimistic(MarkCompleteFailure, func(opID string) operation {
		return operation{
			submit: transitionSlot(i.Task.ID, func(from MarkTaskCompleteFailure) TaskItemState {
				return MarkingTaskComplete{Task: from.Task.WithComplete(true), Request: MarkTaskComplete{TaskID: i.Task.ID}, OperationID: opID}
			}),
			call:      func(ctx context.Context) error { return f.svc.MarkComplete(ctx, i.Task.ID) },
			onSuccess: markCompleteSucceeded(i.Task.ID, opID),
			onError:   func(err error) Reducer { return markCompleteFailed(i.Task.ID, opID, err) },
		}
	})
}

func markCompleteSucceeded(id, opID string) Reducer {
	return resolveSlot(id, opID, func(from MarkingTaskComplete) TaskItemState {
		return CompletedTask{Task: from.Task.WithComplete(true), MarkIncompleteNext: MarkTaskIncomplete{TaskID: id}}
	})
}

func markCompleteFailed(id, opID string, err error) Reducer {
	return resolveSlot(id, opID, func(from MarkingTaskComplete) TaskItemState {
		task := from.Task.WithComplete(false)
		return MarkTaskCompleteFailure{
			Task:    task,
			Request: from.Request,
			Cause:   err,
			Retry:   RetryMarkTaskComplete{Task: task},
			Clear:   ClearFailedMarkCompleteRequest{RequestID: id},
		}
	})
}

// MarkTaskIncomplete returns the stream that marks a completed task as incomplete.
func (f *ReducerFactory) MarkTaskIncomplete(i MarkTaskIncomplete) ReducerStream {
	return f.optimistic(MarkIncompleteFailure, func(opID string) operation {
		return operation{
			submit: transitionSlot(i.TaskID, func(from CompletedTask) TaskItemState {
				return MarkingTaskIncomplete{Task: from.Task.WithComplete(false), Request: i, OperationID: opID}
			}),
			call:      func(ctx context.Context) error { return f.svc.MarkIncomplete(ctx, i.TaskID) },
			onSuccess: markIncompleteSucceeded(i.TaskID, opID),
			onError:   func(err error) Reducer { return markIncompleteFailed(i.TaskID, opID, err) },
		}
	})
}

// RetryMarkTaskIncomplete returns the stream that retries a failed mark as incomplete.
func (f *ReducerFactory) RetryMarkTaskIncomplete(i RetryMarkTaskIncomplete) ReducerStream {
	return f.optimistic(MarkIncompleteFailure, func(opID string) operation {
		return operation{
			submit: transitionSlot(i.Task.ID, func(from MarkTaskIncompleteFailure) TaskItemState {
				return MarkingTaskIncomplete{Task: from.Task.WithComplete(false), Request: MarkTaskIncomplete{TaskID: i.Task.ID}, OperationID: opID}
			}),
			call:      func(ctx context.Context) error { return f.svc.MarkIncomplete(ctx, i.Task.ID) },
			onSuccess: markIncompleteSucceeded(i.Task.ID, opID),
			onError:   func(err error) Reducer { return markIncompleteFailed(i.Task.ID, opID, err) },
		}
	})
}

func markIncompleteSucceeded(id, opID string) Reducer {
	return resolveSlot(id, opID, func(from MarkingTaskIncomplete) TaskItemState {
		return IncompleteTask{Task: from.Task.WithComplete(false), MarkCompleteNext: MarkTaskComplete{TaskID: id}}
	})
}

func markIncompleteFailed(id, opID string, err error) Reducer {
	return resolveSlot(id, opID, func(from MarkingTaskIncomplete) TaskItemState {
		task := from.Task.WithComplete(true)
		return MarkTaskIncompleteFailure{
			Task:    task,
			Request: from.Request,
			Cause:   err,
			Retry:   RetryMarkTaskIncomplete{Task: task},
			Clear:   ClearFailedMarkIncompleteRequest{RequestID: id},
		}
	})
}

// ClearFailedAddTask returns the stream that removes a failed add from the list.
func (f *ReducerFactory) ClearFailedAddTask(i ClearFailedAddTaskRequest) ReducerStream {
	return just(removeSlot[AddTaskFailure](i.RequestID))
}

// ClearFailedMarkComplete returns the stream that sets a failed mark as completed back to incomplete.
func (f *ReducerFactory) ClearFailedMarkComplete(i ClearFailedMarkCompleteRequest) ReducerStream {
	return just(transitionSlot(i.RequestID, func(from MarkTaskCompleteFailure) TaskItemState {
		return itemFromTask(from.Task.WithComplete(false))
	}))
}

// ClearFailedMarkIncomplete returns the stream that sets a failed mark as incomplete back to completed.
func (f *ReducerFactory) ClearFailedMarkIncomplete(i ClearFailedMarkIncompleteRequest) ReducerStream {
	return just(transitionSlot(i.RequestID, func(from MarkTaskIncompleteFailure) TaskItemState {
		return itemFromTask(from.Task.WithComplete(true))
	}))
}
