package seed_test

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slok/tasklist/internal/model"
	"github.com/slok/tasklist/internal/taskservice/seed"
)

func TestYAMLLoaderLoad(t *testing.T) {
	tests := map[string]struct {
		fs       fstest.MapFS
		path     string
		expTasks []model.Task
		expErr   bool
	}{
		"Valid seed with IDs should load in order.": {
			fs: fstest.MapFS{
				"seed.yaml": &fstest.MapFile{Data: []byte(`tasks:
  - id: b
    title: Buy milk
  - id: a
    title: Do talk
    complete: true
`)},
			},
			path: "seed.yaml",
			expTasks: []model.Task{
				{ID: "b", Title: "Buy milk"},
				{ID: "a", Title: "Do talk", IsComplete: true},
			},
		},

		"Empty seed should load no tasks.": {
			fs: fstest.MapFS{
				"seed.yaml": &fstest.MapFile{Data: []byte("---\n")},
			},
			path:     "seed.yaml",
			expTasks: []model.Task{},
		},

		"Missing file should fail.": {
			fs:     fstest.MapFS{},
			path:   "seed.yaml",
			expErr: true,
		},

		"Invalid YAML should fail.": {
			fs: fstest.MapFS{
				"seed.yaml": &fstest.MapFile{Data: []byte("tasks: [")},
			},
			path:   "seed.yaml",
			expErr: true,
		},

		"Blank titles should fail.": {
			fs: fstest.MapFS{
				"seed.yaml": &fstest.MapFile{Data: []byte("tasks:\n  - title: '  '\n")},
			},
			path:   "seed.yaml",
			expErr: true,
		},

		"Duplicated IDs should fail.": {
			fs: fstest.MapFS{
				"seed.yaml": &fstest.MapFile{Data: []byte("tasks:\n  - id: a\n    title: A\n  - id: a\n    title: B\n")},
			},
			path:   "seed.yaml",
			expErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			l := seed.NewYAMLLoader(test.fs)

			gotTasks, err := l.Load(context.Background(), test.path)

			if test.expErr {
				assert.Error(t, err)
			} else if assert.NoError(t, err) {
				assert.Equal(t, test.expTasks, gotTasks)
			}
		})
	}
}

func TestYAMLLoaderGeneratesIDs(t *testing.T) {
	fs := fstest.MapFS{
		"seed.yaml": &fstest.MapFile{Data: []byte("tasks:\n  - title: A\n  - title: B\n")},
	}

	got, err := seed.NewYAMLLoader(fs).Load(context.Background(), "seed.yaml")
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.NotEmpty(t, got[0].ID)
	assert.NotEqual(t, got[0].ID, got[1].ID)
	for _, task := range got {
		assert.NoError(t, task.Validate())
	}
}
