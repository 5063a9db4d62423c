package list_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/slok/tasklist/internal/app/list"
	"github.com/slok/tasklist/internal/log"
	"github.com/slok/tasklist/internal/model"
	"github.com/slok/tasklist/internal/tasklist"
	"github.com/slok/tasklist/internal/taskservice/taskservicemock"
)

func TestNewService(t *testing.T) {
	tests := map[string]struct {
		config list.ServiceConfig
		expErr bool
	}{
		"valid config should create service": {
			config: list.ServiceConfig{
				TaskService: &taskservicemock.MockService{},
				Logger:      log.Noop,
			},
			expErr: false,
		},
		"missing task service should fail": {
			config: list.ServiceConfig{
				Logger: log.Noop,
			},
			expErr: true,
		},
		"nil logger should default to noop": {
			config: list.ServiceConfig{
				TaskService: &taskservicemock.MockService{},
			},
			expErr: false,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			svc, err := list.NewService(test.config)
			if test.expErr {
				assert.Error(t, err)
				assert.Nil(t, svc)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, svc)
			}
		})
	}
}

func TestServiceRun(t *testing.T) {
	tests := map[string]struct {
		mock     func(m *taskservicemock.MockService)
		expState tasklist.State
	}{
		"loaded tasks should return the loaded state": {
			mock: func(m *taskservicemock.MockService) {
				m.On("LoadTasks", mock.Anything).Once().Return([]model.Task{
					{ID: "a", Title: "A"},
					{ID: "b", Title: "B", IsComplete: true},
				}, nil)
			},
			expState: tasklist.TasksLoaded{Tasks: tasklist.NewItems(
				tasklist.IncompleteTask{Task: model.Task{ID: "a", Title: "A"}, MarkCompleteNext: tasklist.MarkTaskComplete{TaskID: "a"}},
				tasklist.CompletedTask{Task: model.Task{ID: "b", Title: "B", IsComplete: true}, MarkIncompleteNext: tasklist.MarkTaskIncomplete{TaskID: "b"}},
			)},
		},
		"load error should return the error loading state": {
			mock: func(m *taskservicemock.MockService) {
				m.On("LoadTasks", mock.Anything).Once().Return(nil, errors.New("whatever"))
			},
			expState: tasklist.ErrorLoadingTasks{},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			m := &taskservicemock.MockService{}
			test.mock(m)

			svc, err := list.NewService(list.ServiceConfig{TaskService: m})
			require.NoError(t, err)

			gotState, err := svc.Run(context.Background(), list.Request{})
			require.NoError(t, err)

			assert.Equal(t, test.expState, gotState)
			m.AssertExpectations(t)
		})
	}
}

func TestServiceRunCancelled(t *testing.T) {
	m := &taskservicemock.MockService{}
	m.On("LoadTasks", mock.Anything).Maybe().Return(nil, context.Canceled)

	svc, err := list.NewService(list.ServiceConfig{TaskService: m})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = svc.Run(ctx, list.Request{})
	assert.ErrorIs(t, err, context.Canceled)
}
