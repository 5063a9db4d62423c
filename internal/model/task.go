package model

import "fmt"

// Task is a single todo item.
//
// Tasks are values, updating a task means creating a new one with the same ID.
type Task struct {
	ID         string
	Title      string
	IsComplete bool
}

// Validate checks the task has the required fields.
func (t Task) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("task id is required: %w", ErrNotValid)
	}
	if t.Title == "" {
		return fmt.Errorf("task title is required: %w", ErrNotValid)
	}
	return nil
}

// WithComplete returns a copy of the task with the completion flag set.
func (t Task) WithComplete(complete bool) Task {
	t.IsComplete = complete
	return t
}
