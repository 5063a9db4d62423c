package list

import (
	"context"
	"fmt"

	"github.com/slok/tasklist/internal/log"
	"github.com/slok/tasklist/internal/tasklist"
	"github.com/slok/tasklist/internal/taskservice"
)

// ServiceConfig is the configuration for the list service.
type ServiceConfig struct {
	TaskService taskservice.Service
	Logger      log.Logger
}

func (c *ServiceConfig) defaults() error {
	if c.TaskService == nil {
		return fmt.Errorf("task service is required")
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.List"})
	return nil
}

// Service loads the task list once.
type Service struct {
	taskSvc taskservice.Service
	logger  log.Logger
}

// NewService creates a new list service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		taskSvc: cfg.TaskService,
		logger:  cfg.Logger,
	}, nil
}

// Request represents the list request parameters.
type Request struct{}

// Run runs the task list model without intents and returns the settled state, either
// tasklist.TasksLoaded or tasklist.ErrorLoadingTasks.
func (s *Service) Run(ctx context.Context, _ Request) (tasklist.State, error) {
	m, err := tasklist.NewModel(tasklist.ModelConfig{Service: s.taskSvc, Logger: s.logger})
	if err != nil {
		return nil, fmt.Errorf("could not create task list model: %w", err)
	}

	intents := make(chan tasklist.Intent)
	close(intents)

	var state tasklist.State
	for st := range m.Run(ctx, intents) {
		state = st
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.logger.Debugf("Task list settled: %T", state)
	return state, nil
}
