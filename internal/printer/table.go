package printer

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/slok/tasklist/internal/tasklist"
)

// TablePrinter prints task list snapshots in a table format.
type TablePrinter struct {
	writer io.Writer
}

// NewTablePrinter creates a new table printer.
func NewTablePrinter(w io.Writer) *TablePrinter {
	return &TablePrinter{writer: w}
}

// PrintState prints a snapshot, loaded tasks are printed as numbered rows.
func (t *TablePrinter) PrintState(s tasklist.State) error {
	switch s := s.(type) {
	case tasklist.LoadingTasks:
		fmt.Fprintln(t.writer, "Loading tasks...")
	case tasklist.ErrorLoadingTasks:
		fmt.Fprintf(t.writer, "%s (reload to retry)\n", FailureMessage(tasklist.LoadFailure))
	case tasklist.TasksLoaded:
		t.printLoaded(s)
	default:
		return fmt.Errorf("unknown state %T", s)
	}

	return nil
}

func (t *TablePrinter) printLoaded(s tasklist.TasksLoaded) {
	items := s.Tasks.List()
	if len(items) == 0 {
		fmt.Fprintln(t.writer, "No tasks")
	} else {
		tw := tabwriter.NewWriter(t.writer, 0, 0, 2, ' ', 0)

		// Print header.
		fmt.Fprintln(tw, "#\tDONE\tTASK\tSTATUS")

		// Print rows.
		for i, item := range items {
			task := item.TaskSnapshot()
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", i+1, checkbox(task.IsComplete), task.Title, itemStatus(i+1, item))
		}
		tw.Flush()
	}

	fmt.Fprintf(t.writer, "Add enabled: %s\n", yesNo(s.IsTaskDraftValid))
}

// PrintMessage prints a simple message.
func (t *TablePrinter) PrintMessage(msg string) error {
	_, err := fmt.Fprintln(t.writer, msg)
	return err
}

func itemStatus(row int, item tasklist.TaskItemState) string {
	if f, ok := item.(tasklist.FailedItem); ok {
		return fmt.Sprintf("%s (retry %d, clear %d)", FailureMessage(f.FailureKind()), row, row)
	}
	return progressMessage(item.Kind())
}

func checkbox(checked bool) string {
	if checked {
		return "[x]"
	}
	return "[ ]"
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
