package printer

import "github.com/slok/tasklist/internal/tasklist"

// Printer knows how to print task list snapshots in different formats.
type Printer interface {
	PrintState(s tasklist.State) error
	PrintMessage(msg string) error
}

// FailureMessage returns the user message of a failed operation.
func FailureMessage(k tasklist.FailureKind) string {
	switch k {
	case tasklist.LoadFailure:
		return "Error loading tasks"
	case tasklist.AddFailure:
		return "Error adding task"
	case tasklist.MarkCompleteFailure:
		return "Error marking task complete"
	case tasklist.MarkIncompleteFailure:
		return "Error marking task incomplete"
	}
	return "Error"
}

// progressMessage returns the message of an item with an operation in flight.
func progressMessage(k tasklist.ItemKind) string {
	switch k {
	case tasklist.ItemKindPending:
		return "adding..."
	case tasklist.ItemKindMarkingComplete:
		return "completing..."
	case tasklist.ItemKindMarkingIncomplete:
		return "reopening..."
	}
	return ""
}
