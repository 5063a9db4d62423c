package taskservicemock

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/slok/tasklist/internal/model"
	"github.com/slok/tasklist/internal/taskservice"
)

var _ taskservice.Service = &MockService{}

// MockService is a mock implementation of taskservice.Service.
type MockService struct {
	mock.Mock
}

// LoadTasks provides a mock function.
func (m *MockService) LoadTasks(ctx context.Context) ([]model.Task, error) {
	args := m.Called(ctx)
	tasks, _ := args.Get(0).([]model.Task)
	return tasks, args.Error(1)
}

// AddTask provides a mock function.
func (m *MockService) AddTask(ctx context.Context, task model.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

// MarkComplete provides a mock function.
func (m *MockService) MarkComplete(ctx context.Context, taskID string) error {
	args := m.Called(ctx, taskID)
	return args.Error(0)
}

// MarkIncomplete provides a mock function.
func (m *MockService) MarkIncomplete(ctx context.Context, taskID string) error {
	args := m.Called(ctx, taskID)
	return args.Error(0)
}
