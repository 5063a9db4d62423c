package tasklist

import (
	"fmt"

	"github.com/slok/tasklist/internal/log"
)

// RouterConfig is the configuration for the intent router.
type RouterConfig struct {
	Factory *ReducerFactory
	Logger  log.Logger
}

func (c *RouterConfig) defaults() error {
	if c.Factory == nil {
		return fmt.Errorf("reducer factory is required")
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "tasklist.Router"})
	return nil
}

// Router dispatches intents to their reducer stream. It doesn't hold any state.
type Router struct {
	factory *ReducerFactory
	logger  log.Logger
}

// NewRouter returns a new router.
func NewRouter(cfg RouterConfig) (*Router, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Router{
		factory: cfg.Factory,
		logger:  cfg.Logger,
	}, nil
}

// Route returns the reducer stream of the intent.
func (r *Router) Route(i Intent) ReducerStream {
	r.logger.Debugf("Routing intent %T: %+v", i, i)
	return i.reducerStream(r.factory)
}
