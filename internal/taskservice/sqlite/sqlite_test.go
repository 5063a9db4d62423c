package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slok/tasklist/internal/log"
	"github.com/slok/tasklist/internal/model"
	"github.com/slok/tasklist/internal/taskservice/sqlite"
)

func newService(t *testing.T, dbPath string) *sqlite.Service {
	t.Helper()
	svc, err := sqlite.NewService(context.Background(), sqlite.ServiceConfig{
		DBPath: dbPath,
		Logger: log.Noop,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = svc.Close() })
	return svc
}

func TestNewServiceRequiresDBPath(t *testing.T) {
	_, err := sqlite.NewService(context.Background(), sqlite.ServiceConfig{})
	assert.Error(t, err)
}

func TestServiceOperations(t *testing.T) {
	ctx := context.Background()
	svc := newService(t, filepath.Join(t.TempDir(), "tasks.db"))

	got, err := svc.LoadTasks(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)

	require.NoError(t, svc.AddTask(ctx, model.Task{ID: "b", Title: "B"}))
	require.NoError(t, svc.AddTask(ctx, model.Task{ID: "a", Title: "A", IsComplete: true}))
	require.NoError(t, svc.AddTask(ctx, model.Task{ID: "c", Title: "C"}))
	require.NoError(t, svc.MarkComplete(ctx, "b"))
	require.NoError(t, svc.MarkIncomplete(ctx, "a"))

	got, err = svc.LoadTasks(ctx)
	require.NoError(t, err)
	exp := []model.Task{
		{ID: "b", Title: "B", IsComplete: true},
		{ID: "a", Title: "A"},
		{ID: "c", Title: "C"},
	}
	assert.Equal(t, exp, got)
}

func TestServiceErrors(t *testing.T) {
	tests := map[string]struct {
		call   func(ctx context.Context, svc *sqlite.Service) error
		expErr error
	}{
		"Adding an existing task should fail.": {
			call: func(ctx context.Context, svc *sqlite.Service) error {
				return svc.AddTask(ctx, model.Task{ID: "a", Title: "Other"})
			},
			expErr: model.ErrAlreadyExists,
		},

		"Adding an invalid task should fail.": {
			call: func(ctx context.Context, svc *sqlite.Service) error {
				return svc.AddTask(ctx, model.Task{ID: "b"})
			},
			expErr: model.ErrNotValid,
		},

		"Marking a missing task complete should fail.": {
			call: func(ctx context.Context, svc *sqlite.Service) error {
				return svc.MarkComplete(ctx, "missing")
			},
			expErr: model.ErrNotFound,
		},

		"Marking a missing task incomplete should fail.": {
			call: func(ctx context.Context, svc *sqlite.Service) error {
				return svc.MarkIncomplete(ctx, "missing")
			},
			expErr: model.ErrNotFound,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			svc := newService(t, filepath.Join(t.TempDir(), "tasks.db"))
			require.NoError(t, svc.AddTask(ctx, model.Task{ID: "a", Title: "A"}))

			err := test.call(ctx, svc)

			assert.ErrorIs(t, err, test.expErr)
		})
	}
}

func TestServicePersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "nested", "tasks.db")

	svc, err := sqlite.NewService(ctx, sqlite.ServiceConfig{DBPath: dbPath})
	require.NoError(t, err)
	require.NoError(t, svc.AddTask(ctx, model.Task{ID: "a", Title: "A"}))
	require.NoError(t, svc.MarkComplete(ctx, "a"))
	require.NoError(t, svc.Close())

	svc = newService(t, dbPath)
	got, err := svc.LoadTasks(ctx)
	require.NoError(t, err)
	assert.Equal(t, []model.Task{{ID: "a", Title: "A", IsComplete: true}}, got)
}
