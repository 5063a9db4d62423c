package memory

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/slok/tasklist/internal/log"
	"github.com/slok/tasklist/internal/model"
)

// ErrInjectedFailure is the cause of the failures injected by the failure rate.
var ErrInjectedFailure = errors.New("injected failure")

const (
	// DemoLatency is the latency of the demo service.
	DemoLatency = 2 * time.Second
	// DemoFailureRate is the failure rate of the demo service.
	DemoFailureRate = 0.4
)

// DemoTasks returns the tasks the demo service starts with.
func DemoTasks() []model.Task {
	completions := []bool{false, true, true, false, true, false}
	tasks := make([]model.Task, 0, len(completions))
	for _, c := range completions {
		tasks = append(tasks, model.Task{ID: ulid.Make().String(), Title: "do talk", IsComplete: c})
	}
	return tasks
}

// ServiceConfig is the configuration for the memory task service.
type ServiceConfig struct {
	// Tasks are the initial tasks.
	Tasks []model.Task
	// Latency is the time every call takes.
	Latency time.Duration
	// FailureRate is the probability [0, 1] of a call failing.
	FailureRate float64
	// Random returns a number in [0, 1), used to decide failures.
	Random func() float64
	Logger log.Logger
}

func (c *ServiceConfig) defaults() error {
	if c.Latency < 0 {
		return fmt.Errorf("latency can't be negative")
	}
	if c.FailureRate < 0 || c.FailureRate > 1 {
		return fmt.Errorf("failure rate must be between 0 and 1")
	}
	if c.Random == nil {
		c.Random = rand.Float64
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "taskservice.Memory"})
	return nil
}

// Service is an in-memory implementation of taskservice.Service.
type Service struct {
	ids         []string
	tasks       map[string]model.Task
	mu          sync.RWMutex
	latency     time.Duration
	failureRate float64
	random      func() float64
	logger      log.Logger
}

// NewService creates a new memory task service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	s := &Service{
		tasks:       make(map[string]model.Task, len(cfg.Tasks)),
		latency:     cfg.Latency,
		failureRate: cfg.FailureRate,
		random:      cfg.Random,
		logger:      cfg.Logger,
	}
	for _, t := range cfg.Tasks {
		if err := t.Validate(); err != nil {
			return nil, fmt.Errorf("invalid task: %w", err)
		}
		if _, ok := s.tasks[t.ID]; ok {
			return nil, fmt.Errorf("task %s: %w", t.ID, model.ErrAlreadyExists)
		}
		s.ids = append(s.ids, t.ID)
		s.tasks[t.ID] = t
	}

	return s, nil
}

// LoadTasks returns all the tasks in insertion order.
func (s *Service) LoadTasks(ctx context.Context) ([]model.Task, error) {
	if err := s.call(ctx, "unable to get tasks"); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	tasks := make([]model.Task, 0, len(s.ids))
	for _, id := range s.ids {
		tasks = append(tasks, s.tasks[id])
	}
	return tasks, nil
}

// AddTask stores a new task.
func (s *Service) AddTask(ctx context.Context, task model.Task) error {
	if err := task.Validate(); err != nil {
		return err
	}
	if err := s.call(ctx, "pick a better task"); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[task.ID]; ok {
		return fmt.Errorf("task %s: %w", task.ID, model.ErrAlreadyExists)
	}
	s.ids = append(s.ids, task.ID)
	s.tasks[task.ID] = task
	s.logger.Debugf("Task added: %s", task.ID)

	return nil
}

// MarkComplete marks a task as completed.
func (s *Service) MarkComplete(ctx context.Context, taskID string) error {
	if err := s.call(ctx, "can't complete this task"); err != nil {
		return err
	}
	return s.setComplete(taskID, true)
}

// MarkIncomplete marks a task as not completed.
func (s *Service) MarkIncomplete(ctx context.Context, taskID string) error {
	if err := s.call(ctx, "can't mark this task incomplete"); err != nil {
		return err
	}
	return s.setComplete(taskID, false)
}

func (s *Service) setComplete(taskID string, complete bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[taskID]
	if !ok {
		return fmt.Errorf("task %s: %w", taskID, model.ErrNotFound)
	}
	s.tasks[taskID] = t.WithComplete(complete)
	s.logger.Debugf("Task %s completion set to %t", taskID, complete)

	return nil
}

// call waits the configured latency and decides if the call fails.
func (s *Service) call(ctx context.Context, failMsg string) error {
	if s.latency > 0 {
		timer := time.NewTimer(s.latency)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}

	if s.failureRate > 0 && s.random() < s.failureRate {
		return fmt.Errorf("%s: %w", failMsg, ErrInjectedFailure)
	}

	return nil
}
