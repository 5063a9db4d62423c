package tasklist

import (
	"context"
	"fmt"
	"sync"

	"github.com/slok/tasklist/internal/log"
	"github.com/slok/tasklist/internal/taskservice"
)

// ModelConfig is the configuration for the task list model.
type ModelConfig struct {
	Service taskservice.Service
	Logger  log.Logger
}

func (c *ModelConfig) defaults() error {
	if c.Service == nil {
		return fmt.Errorf("task service is required")
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	return nil
}

// Model folds the reducers of all the in flight operations over the task list state.
type Model struct {
	factory *ReducerFactory
	router  *Router
	logger  log.Logger
}

// NewModel returns a new task list model.
func NewModel(cfg ModelConfig) (*Model, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	factory, err := NewReducerFactory(ReducerFactoryConfig{
		Service: cfg.Service,
		Logger:  cfg.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create reducer factory: %w", err)
	}

	router, err := NewRouter(RouterConfig{
		Factory: factory,
		Logger:  cfg.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create router: %w", err)
	}

	return &Model{
		factory: factory,
		router:  router,
		logger:  cfg.Logger.WithValues(log.Kv{"svc": "tasklist.Model"}),
	}, nil
}

// Run starts the model and returns the state snapshots, starting with LoadingTasks
// and followed by one snapshot per applied reducer.
//
// The tasks are loaded at start, then every received intent starts its reducer
// stream concurrently with the others. Reducers are applied one at a time in the
// order they are emitted.
//
// The returned channel is closed once intents is closed and every operation
// finished, or when the context is cancelled. Snapshots must be received, the
// model doesn't progress while a snapshot is waiting to be delivered.
func (m *Model) Run(ctx context.Context, intents <-chan Intent) <-chan State {
	reducers := make(chan Reducer)
	states := make(chan State)

	emit := func(r Reducer) {
		select {
		case <-ctx.Done():
		case reducers <- r:
		}
	}

	var wg sync.WaitGroup
	start := func(stream ReducerStream) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			stream(ctx, emit)
		}()
	}

	// Intake.
	wg.Add(1)
	go func() {
		defer wg.Done()

		start(m.factory.LoadTasks())
		for {
			select {
			case <-ctx.Done():
				return
			case intent, ok := <-intents:
				if !ok {
					m.logger.Debugf("Intents finished")
					return
				}
				start(m.router.Route(intent))
			}
		}
	}()

	go func() {
		wg.Wait()
		close(reducers)
	}()

	// Fold.
	go func() {
		defer close(states)

		publish := func(s State) bool {
			select {
			case <-ctx.Done():
				return false
			case states <- s:
				return true
			}
		}

		var state State = LoadingTasks{}
		if !publish(state) {
			return
		}

		for {
			select {
			case <-ctx.Done():
				return
			case reduce, ok := <-reducers:
				if !ok {
					return
				}
				newState := reduce(state)
				m.logger.Debugf("State reduced: %+v -> %+v", state, newState)
				state = newState
				if !publish(state) {
					return
				}
			}
		}
	}()

	return states
}
