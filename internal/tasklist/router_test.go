package tasklist_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/slok/tasklist/internal/log"
	"github.com/slok/tasklist/internal/model"
	"github.com/slok/tasklist/internal/tasklist"
	"github.com/slok/tasklist/internal/taskservice/taskservicemock"
)

func TestNewRouter(t *testing.T) {
	f, err := tasklist.NewReducerFactory(tasklist.ReducerFactoryConfig{Service: &taskservicemock.MockService{}})
	require.NoError(t, err)

	tests := map[string]struct {
		cfg    tasklist.RouterConfig
		expErr bool
	}{
		"Valid config should not fail.": {
			cfg: tasklist.RouterConfig{Factory: f, Logger: log.Noop},
		},

		"Missing logger should use Noop.": {
			cfg: tasklist.RouterConfig{Factory: f},
		},

		"Missing factory should fail.": {
			cfg:    tasklist.RouterConfig{Logger: log.Noop},
			expErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			r, err := tasklist.NewRouter(test.cfg)
			if test.expErr {
				assert.Error(t, err)
				assert.Nil(t, r)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, r)
			}
		})
	}
}

func TestRouterRoute(t *testing.T) {
	a := model.Task{ID: "a", Title: "A"}

	tests := map[string]struct {
		intent    tasklist.Intent
		mock      func(m *taskservicemock.MockService)
		initial   tasklist.State
		expStates []tasklist.State
	}{
		"Retry loading tasks should load the tasks.": {
			intent: tasklist.RetryLoadingTasks{},
			mock: func(m *taskservicemock.MockService) {
				m.On("LoadTasks", mock.Anything).Once().Return([]model.Task{a}, nil)
			},
			initial:   tasklist.ErrorLoadingTasks{},
			expStates: []tasklist.State{tasklist.LoadingTasks{}, loaded(false, incomplete("a", "A"))},
		},

		"Update task draft should update the draft.": {
			intent:    tasklist.UpdateTaskDraft{Content: "something"},
			initial:   loaded(false),
			expStates: []tasklist.State{loaded(true)},
		},

		"Add task request should add the task.": {
			intent: tasklist.AddTaskRequest{Title: "A", RequestID: "a"},
			mock: func(m *taskservicemock.MockService) {
				m.On("AddTask", mock.Anything, a).Once().Return(nil)
			},
			initial: loaded(false),
			expStates: []tasklist.State{
				loaded(false, tasklist.PendingTask{Task: a, Request: tasklist.AddTaskRequest{Title: "A", RequestID: "a"}, OperationID: testOperationID}),
				loaded(false, incomplete("a", "A")),
			},
		},

		"Mark task complete should mark the task.": {
			intent: tasklist.MarkTaskComplete{TaskID: "a"},
			mock: func(m *taskservicemock.MockService) {
				m.On("MarkComplete", mock.Anything, "a").Once().Return(nil)
			},
			initial: loaded(false, incomplete("a", "A")),
			expStates: []tasklist.State{
				loaded(false, tasklist.MarkingTaskComplete{Task: a.WithComplete(true), Request: tasklist.MarkTaskComplete{TaskID: "a"}, OperationID: testOperationID}),
				loaded(false, completed("a", "A")),
			},
		},

		"Mark task incomplete should unmark the task.": {
			intent: tasklist.MarkTaskIncomplete{TaskID: "a"},
			mock: func(m *taskservicemock.MockService) {
				m.On("MarkIncomplete", mock.Anything, "a").Once().Return(nil)
			},
			initial: loaded(false, completed("a", "A")),
			expStates: []tasklist.State{
				loaded(false, tasklist.MarkingTaskIncomplete{Task: a, Request: tasklist.MarkTaskIncomplete{TaskID: "a"}, OperationID: testOperationID}),
				loaded(false, incomplete("a", "A")),
			},
		},

		"Clear failed add should remove the failure.": {
			intent:    tasklist.ClearFailedAddTaskRequest{RequestID: "a"},
			initial:   loaded(false, tasklist.AddTaskFailure{Task: a}),
			expStates: []tasklist.State{loaded(false)},
		},

		"Clear failed mark complete should restore the incomplete task.": {
			intent:    tasklist.ClearFailedMarkCompleteRequest{RequestID: "a"},
			initial:   loaded(false, tasklist.MarkTaskCompleteFailure{Task: a}),
			expStates: []tasklist.State{loaded(false, incomplete("a", "A"))},
		},

		"Clear failed mark incomplete should restore the completed task.": {
			intent:    tasklist.ClearFailedMarkIncompleteRequest{RequestID: "a"},
			initial:   loaded(false, tasklist.MarkTaskIncompleteFailure{Task: a.WithComplete(true)}),
			expStates: []tasklist.State{loaded(false, completed("a", "A"))},
		},

		"Retry add task should add the task again.": {
			intent: tasklist.RetryAddTaskRequest{Task: a},
			mock: func(m *taskservicemock.MockService) {
				m.On("AddTask", mock.Anything, a).Once().Return(nil)
			},
			initial: loaded(false, tasklist.AddTaskFailure{Task: a, Request: tasklist.AddTaskRequest{Title: "A", RequestID: "a"}}),
			expStates: []tasklist.State{
				loaded(false, tasklist.PendingTask{Task: a, Request: tasklist.AddTaskRequest{Title: "A", RequestID: "a"}, OperationID: testOperationID}),
				loaded(false, incomplete("a", "A")),
			},
		},

		"Retry mark task complete should mark the task again.": {
			intent: tasklist.RetryMarkTaskComplete{Task: a},
			mock: func(m *taskservicemock.MockService) {
				m.On("MarkComplete", mock.Anything, "a").Once().Return(nil)
			},
			initial: loaded(false, tasklist.MarkTaskCompleteFailure{Task: a}),
			expStates: []tasklist.State{
				loaded(false, tasklist.MarkingTaskComplete{Task: a.WithComplete(true), Request: tasklist.MarkTaskComplete{TaskID: "a"}, OperationID: testOperationID}),
				loaded(false, completed("a", "A")),
			},
		},

		"Retry mark task incomplete should unmark the task again.": {
			intent: tasklist.RetryMarkTaskIncomplete{Task: a.WithComplete(true)},
			mock: func(m *taskservicemock.MockService) {
				m.On("MarkIncomplete", mock.Anything, "a").Once().Return(nil)
			},
			initial: loaded(false, tasklist.MarkTaskIncompleteFailure{Task: a.WithComplete(true)}),
			expStates: []tasklist.State{
				loaded(false, tasklist.MarkingTaskIncomplete{Task: a, Request: tasklist.MarkTaskIncomplete{TaskID: "a"}, OperationID: testOperationID}),
				loaded(false, incomplete("a", "A")),
			},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			m := &taskservicemock.MockService{}
			if test.mock != nil {
				test.mock(m)
			}
			f := newTestFactory(t, m)
			r, err := tasklist.NewRouter(tasklist.RouterConfig{Factory: f, Logger: log.Noop})
			require.NoError(t, err)

			gotStates := runStream(r.Route(test.intent), test.initial)

			assert.Equal(t, test.expStates, gotStates)
			m.AssertExpectations(t)
		})
	}
}
