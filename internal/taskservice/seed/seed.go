package seed

import (
	"context"
	"fmt"
	"io/fs"
	"strings"

	"github.com/oklog/ulid/v2"
	"gopkg.in/yaml.v3"

	"github.com/slok/tasklist/internal/model"
)

// YAMLLoader loads seed tasks from YAML files.
type YAMLLoader struct {
	fs fs.FS
}

// NewYAMLLoader creates a new YAML seed loader.
func NewYAMLLoader(filesystem fs.FS) *YAMLLoader {
	return &YAMLLoader{fs: filesystem}
}

// Load loads the seed tasks of a YAML file in file order. Tasks without ID get a new one.
func (l *YAMLLoader) Load(ctx context.Context, path string) ([]model.Task, error) {
	data, err := fs.ReadFile(l.fs, path)
	if err != nil {
		return nil, fmt.Errorf("reading seed file: %w", err)
	}

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}

	if err := file.validate(); err != nil {
		return nil, fmt.Errorf("invalid seed: %w", err)
	}

	return file.toModel(), nil
}

// File represents the YAML structure of a seed file.
type File struct {
	Tasks []Task `yaml:"tasks"`
}

// Task represents the YAML structure of a seed task.
type Task struct {
	ID       string `yaml:"id,omitempty"`
	Title    string `yaml:"title"`
	Complete bool   `yaml:"complete"`
}

func (f File) validate() error {
	ids := map[string]struct{}{}
	for i, t := range f.Tasks {
		if strings.TrimSpace(t.Title) == "" {
			return fmt.Errorf("task %d: title is required: %w", i, model.ErrNotValid)
		}
		if t.ID == "" {
			continue
		}
		if _, ok := ids[t.ID]; ok {
			return fmt.Errorf("task %d: id %s: %w", i, t.ID, model.ErrAlreadyExists)
		}
		ids[t.ID] = struct{}{}
	}
	return nil
}

func (f File) toModel() []model.Task {
	tasks := make([]model.Task, 0, len(f.Tasks))
	for _, t := range f.Tasks {
		id := t.ID
		if id == "" {
			id = ulid.Make().String()
		}
		tasks = append(tasks, model.Task{ID: id, Title: t.Title, IsComplete: t.Complete})
	}
	return tasks
}
