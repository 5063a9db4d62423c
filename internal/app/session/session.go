package session

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/slok/tasklist/internal/log"
	"github.com/slok/tasklist/internal/printer"
	"github.com/slok/tasklist/internal/tasklist"
	"github.com/slok/tasklist/internal/taskservice"
)

// ServiceConfig is the configuration for the session service.
type ServiceConfig struct {
	TaskService taskservice.Service
	Printer     printer.Printer
	Logger      log.Logger
}

func (c *ServiceConfig) defaults() error {
	if c.TaskService == nil {
		return fmt.Errorf("task service is required")
	}
	if c.Printer == nil {
		return fmt.Errorf("printer is required")
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.Session"})
	return nil
}

// Service runs interactive task list sessions driven by text commands.
type Service struct {
	taskSvc taskservice.Service
	printer printer.Printer
	logger  log.Logger
}

// NewService creates a new session service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		taskSvc: cfg.TaskService,
		printer: cfg.Printer,
		logger:  cfg.Logger,
	}, nil
}

// Request represents the session request parameters.
type Request struct {
	// Input has one command per line.
	Input io.Reader
}

// Run prints every task list snapshot while the input commands are sent as intents.
//
// Commands are read once the first load settles. Run returns when the input ends
// (or quit is received) and every operation in flight finished, or when the
// context is cancelled.
func (s *Service) Run(ctx context.Context, req Request) error {
	if req.Input == nil {
		return fmt.Errorf("input is required")
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m, err := tasklist.NewModel(tasklist.ModelConfig{Service: s.taskSvc, Logger: s.logger})
	if err != nil {
		return fmt.Errorf("could not create task list model: %w", err)
	}

	intents := make(chan tasklist.Intent)
	states := m.Run(ctx, intents)

	latest := newLatestState()
	messages := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		defer close(intents)
		readErr <- s.readCommands(ctx, req.Input, latest, intents, messages)
	}()

	for {
		select {
		case msg := <-messages:
			if err := s.printer.PrintMessage(msg); err != nil {
				return fmt.Errorf("could not print message: %w", err)
			}
		case st, ok := <-states:
			if !ok {
				if err := ctx.Err(); err != nil {
					return err
				}
				return <-readErr
			}
			latest.set(st)
			if err := s.printer.PrintState(st); err != nil {
				return fmt.Errorf("could not print state: %w", err)
			}
		}
	}
}

func (s *Service) readCommands(ctx context.Context, r io.Reader, latest *latestState, intents chan<- tasklist.Intent, messages chan<- string) error {
	send := func(msg string) bool {
		select {
		case <-ctx.Done():
			return false
		case messages <- msg:
			return true
		}
	}

	select {
	case <-ctx.Done():
		return nil
	case <-latest.ready:
	}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}

		cmd, err := parseCommand(line, latest.get())
		if err != nil {
			s.logger.Debugf("Invalid command %q: %s", line, err)
			if !send("Error: " + err.Error()) {
				return nil
			}
			continue
		}

		switch {
		case cmd.quit:
			return nil
		case cmd.help:
			if !send(Help) {
				return nil
			}
		default:
			select {
			case <-ctx.Done():
				return nil
			case intents <- cmd.intent:
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("could not read input: %w", err)
	}
	return nil
}

// latestState is the last printed snapshot, ready is closed once the first load settled.
type latestState struct {
	mu        sync.RWMutex
	state     tasklist.State
	ready     chan struct{}
	readyOnce sync.Once
}

func newLatestState() *latestState {
	return &latestState{state: tasklist.LoadingTasks{}, ready: make(chan struct{})}
}

func (l *latestState) set(s tasklist.State) {
	l.mu.Lock()
	l.state = s
	l.mu.Unlock()

	if _, loading := s.(tasklist.LoadingTasks); !loading {
		l.readyOnce.Do(func() { close(l.ready) })
	}
}

func (l *latestState) get() tasklist.State {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.state
}
