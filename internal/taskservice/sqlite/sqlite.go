package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/slok/tasklist/internal/log"
	"github.com/slok/tasklist/internal/model"
	"github.com/slok/tasklist/internal/taskservice/sqlite/migrations"
)

// ServiceConfig is the configuration for the SQLite task service.
type ServiceConfig struct {
	DBPath string
	Logger log.Logger
	// TimeNow is used to set the row timestamps.
	TimeNow func() time.Time
}

func (c *ServiceConfig) defaults() error {
	if c.DBPath == "" {
		return fmt.Errorf("db path is required")
	}
	if c.TimeNow == nil {
		c.TimeNow = time.Now
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "taskservice.SQLite"})
	return nil
}

// Service is a SQLite implementation of taskservice.Service.
type Service struct {
	db      *sql.DB
	timeNow func() time.Time
	logger  log.Logger
}

// NewService opens (creating it if required) the database and applies the migrations.
func NewService(ctx context.Context, cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	dir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("could not create db directory: %w", err)
	}

	dsn := fmt.Sprintf("%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", cfg.DBPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("could not open database: %w", err)
	}

	migrator, err := migrations.NewMigrator(db, cfg.Logger)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("could not create migrator: %w", err)
	}
	if err := migrator.Up(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("could not run migrations: %w", err)
	}

	cfg.Logger.Debugf("SQLite task service initialized at %s", cfg.DBPath)

	return &Service{db: db, timeNow: cfg.TimeNow, logger: cfg.Logger}, nil
}

// Close closes the database connection.
func (s *Service) Close() error { return s.db.Close() }

// LoadTasks returns all the tasks in insertion order.
func (s *Service) LoadTasks(ctx context.Context) ([]model.Task, error) {
	query := `SELECT id, title, is_complete FROM tasks ORDER BY seq ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("could not query tasks: %w", err)
	}
	defer rows.Close()

	tasks := []model.Task{}
	for rows.Next() {
		var t model.Task
		if err := rows.Scan(&t.ID, &t.Title, &t.IsComplete); err != nil {
			return nil, fmt.Errorf("could not scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("could not iterate tasks: %w", err)
	}

	return tasks, nil
}

// AddTask stores a new task.
func (s *Service) AddTask(ctx context.Context, task model.Task) error {
	if err := task.Validate(); err != nil {
		return err
	}

	query := `
		INSERT INTO tasks (id, title, is_complete, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`
	now := s.timeNow().Unix()
	_, err := s.db.ExecContext(ctx, query, task.ID, task.Title, task.IsComplete, now, now)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed: tasks.") {
			return fmt.Errorf("task %s: %w", task.ID, model.ErrAlreadyExists)
		}
		return fmt.Errorf("could not insert task: %w", err)
	}

	s.logger.Debugf("Task added: %s", task.ID)
	return nil
}

// MarkComplete marks a task as completed.
func (s *Service) MarkComplete(ctx context.Context, taskID string) error {
	return s.setComplete(ctx, taskID, true)
}

// MarkIncomplete marks a task as not completed.
func (s *Service) MarkIncomplete(ctx context.Context, taskID string) error {
	return s.setComplete(ctx, taskID, false)
}

func (s *Service) setComplete(ctx context.Context, taskID string, complete bool) error {
	query := `UPDATE tasks SET is_complete = ?, updated_at = ? WHERE id = ?`

	res, err := s.db.ExecContext(ctx, query, complete, s.timeNow().Unix(), taskID)
	if err != nil {
		return fmt.Errorf("could not update task: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not get affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("task %s: %w", taskID, model.ErrNotFound)
	}

	s.logger.Debugf("Task %s completion set to %t", taskID, complete)
	return nil
}
