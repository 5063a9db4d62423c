package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/slok/tasklist/internal/model"
	"github.com/slok/tasklist/internal/taskservice"
	"github.com/slok/tasklist/internal/taskservice/googletasks"
	"github.com/slok/tasklist/internal/taskservice/memory"
	"github.com/slok/tasklist/internal/taskservice/seed"
	"github.com/slok/tasklist/internal/taskservice/sqlite"
	"github.com/slok/tasklist/internal/taskservice/traced"
)

// newTaskService returns the traced task service of the selected backend and its close func.
func newTaskService(ctx context.Context, root RootCommand) (taskservice.Service, func() error, error) {
	logger := root.Logger
	noClose := func() error { return nil }

	seedTasks, err := loadSeed(ctx, root.SeedFile)
	if err != nil {
		return nil, nil, err
	}

	var svc taskservice.Service
	closeSvc := noClose
	switch root.Backend {
	case BackendMemory:
		if seedTasks == nil {
			seedTasks = memory.DemoTasks()
		}
		svc, err = memory.NewService(memory.ServiceConfig{
			Tasks:       seedTasks,
			Latency:     root.MemoryLatency,
			FailureRate: root.MemoryFailureRate,
			Logger:      logger,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("could not create memory task service: %w", err)
		}

	case BackendSQLite:
		sqliteSvc, err := sqlite.NewService(ctx, sqlite.ServiceConfig{
			DBPath: root.DBPath,
			Logger: logger,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("could not create sqlite task service: %w", err)
		}
		if err := addSeed(ctx, sqliteSvc, seedTasks); err != nil {
			_ = sqliteSvc.Close()
			return nil, nil, err
		}
		svc, closeSvc = sqliteSvc, sqliteSvc.Close

	case BackendGoogle:
		googleSvc, err := googletasks.NewService(ctx, googletasks.ServiceConfig{
			ConfigDir: root.GoogleConfigDir,
			ListID:    root.GoogleListID,
			Logger:    logger,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("could not create google tasks task service: %w", err)
		}
		if err := addSeed(ctx, googleSvc, seedTasks); err != nil {
			return nil, nil, err
		}
		svc = googleSvc

	default:
		return nil, nil, fmt.Errorf("unknown backend %q", root.Backend)
	}

	tracedSvc, err := traced.NewService(traced.ServiceConfig{Service: svc})
	if err != nil {
		_ = closeSvc()
		return nil, nil, fmt.Errorf("could not create traced task service: %w", err)
	}

	return tracedSvc, closeSvc, nil
}

func loadSeed(ctx context.Context, path string) ([]model.Task, error) {
	if path == "" {
		return nil, nil
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("could not resolve seed file path: %w", err)
	}

	tasks, err := seed.NewYAMLLoader(os.DirFS("/")).Load(ctx, absPath[1:])
	if err != nil {
		return nil, fmt.Errorf("could not load seed file: %w", err)
	}

	return tasks, nil
}

// addSeed adds the seed tasks that the service doesn't have yet.
func addSeed(ctx context.Context, svc taskservice.Service, tasks []model.Task) error {
	for _, t := range tasks {
		err := svc.AddTask(ctx, t)
		if err != nil && !errors.Is(err, model.ErrAlreadyExists) {
			return fmt.Errorf("could not add seed task %s: %w", t.ID, err)
		}
	}
	return nil
}
