package model

import "errors"

var (
	// ErrNotFound is returned when a task is missing.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists is returned when a task with the same ID is already stored.
	ErrAlreadyExists = errors.New("already exists")
	// ErrNotValid is returned when a task is not valid.
	ErrNotValid = errors.New("not valid")
)
