package printer

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/slok/tasklist/internal/tasklist"
)

// JSONPrinter prints task list snapshots in JSON format, one document per snapshot.
type JSONPrinter struct {
	writer io.Writer
}

// NewJSONPrinter creates a new JSON printer.
func NewJSONPrinter(w io.Writer) *JSONPrinter {
	return &JSONPrinter{writer: w}
}

// stateOutput represents a snapshot output.
type stateOutput struct {
	State      string       `json:"state"`
	Message    string       `json:"message,omitempty"`
	Tasks      []taskOutput `json:"tasks,omitempty"`
	AddEnabled bool         `json:"add_enabled"`
}

// taskOutput represents a task row output.
type taskOutput struct {
	Row        int    `json:"row"`
	ID         string `json:"id"`
	Title      string `json:"title"`
	Complete   bool   `json:"complete"`
	Kind       string `json:"kind"`
	InProgress bool   `json:"in_progress"`
	Error      string `json:"error,omitempty"`
	Cause      string `json:"cause,omitempty"`
}

// messageOutput represents a simple message output.
type messageOutput struct {
	Message string `json:"message"`
}

// PrintState prints a snapshot in JSON format.
func (j *JSONPrinter) PrintState(s tasklist.State) error {
	var output stateOutput
	switch s := s.(type) {
	case tasklist.LoadingTasks:
		output = stateOutput{State: "loading"}
	case tasklist.ErrorLoadingTasks:
		output = stateOutput{State: "error", Message: FailureMessage(tasklist.LoadFailure)}
	case tasklist.TasksLoaded:
		output = stateOutput{
			State:      "loaded",
			Tasks:      []taskOutput{},
			AddEnabled: s.IsTaskDraftValid,
		}
		for i, item := range s.Tasks.List() {
			output.Tasks = append(output.Tasks, toTaskOutput(i+1, item))
		}
	default:
		return fmt.Errorf("unknown state %T", s)
	}

	return j.encode(output)
}

// PrintMessage prints a simple message in JSON format.
func (j *JSONPrinter) PrintMessage(msg string) error {
	return j.encode(messageOutput{Message: msg})
}

func (j *JSONPrinter) encode(v any) error {
	enc := json.NewEncoder(j.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func toTaskOutput(row int, item tasklist.TaskItemState) taskOutput {
	task := item.TaskSnapshot()
	out := taskOutput{
		Row:        row,
		ID:         task.ID,
		Title:      task.Title,
		Complete:   task.IsComplete,
		Kind:       string(item.Kind()),
		InProgress: progressMessage(item.Kind()) != "",
	}

	if f, ok := item.(tasklist.FailedItem); ok {
		out.Error = FailureMessage(f.FailureKind())
		if f.Err() != nil {
			out.Cause = f.Err().Error()
		}
	}

	return out
}
