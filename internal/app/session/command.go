package session

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/slok/tasklist/internal/tasklist"
)

// Help is the session commands usage.
const Help = `Commands:
  add <title>   add a new task
  draft <text>  check if a task draft can be added
  done <n>      mark task n as completed
  undo <n>      mark task n as incomplete
  retry <n>     retry the failed operation of task n
  clear <n>     clear the failed operation of task n
  reload        load the tasks again
  help          show this help
  quit          finish the session`

var errNotLoaded = errors.New("tasks are not loaded")

// command is a parsed session line.
type command struct {
	intent tasklist.Intent
	help   bool
	quit   bool
}

// parseCommand maps a line to its command, row numbers are resolved on the state.
func parseCommand(line string, state tasklist.State) (command, error) {
	name, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	arg = strings.TrimSpace(arg)

	switch name {
	case "add":
		if arg == "" {
			return command{}, fmt.Errorf("task title is required")
		}
		return command{intent: tasklist.NewAddTaskRequest(arg)}, nil
	case "draft":
		return command{intent: tasklist.UpdateTaskDraft{Content: arg}}, nil
	case "reload":
		return command{intent: tasklist.RetryLoadingTasks{}}, nil
	case "help":
		return command{help: true}, nil
	case "quit", "exit":
		return command{quit: true}, nil
	case "done", "undo", "retry", "clear":
		item, err := rowItem(arg, state)
		if err != nil {
			return command{}, err
		}
		intent, err := rowIntent(name, item)
		if err != nil {
			return command{}, fmt.Errorf("task %s: %w", arg, err)
		}
		return command{intent: intent}, nil
	}

	return command{}, fmt.Errorf("unknown command %q, use help", name)
}

func rowItem(arg string, state tasklist.State) (tasklist.TaskItemState, error) {
	loaded, ok := state.(tasklist.TasksLoaded)
	if !ok {
		return nil, errNotLoaded
	}

	row, err := strconv.Atoi(arg)
	if err != nil {
		return nil, fmt.Errorf("invalid task number %q", arg)
	}

	items := loaded.Tasks.List()
	if row < 1 || row > len(items) {
		return nil, fmt.Errorf("task %d doesn't exist", row)
	}

	return items[row-1], nil
}

func rowIntent(name string, item tasklist.TaskItemState) (tasklist.Intent, error) {
	switch name {
	case "done":
		if i, ok := item.(tasklist.IncompleteTask); ok {
			return i.MarkCompleteNext, nil
		}
		return nil, fmt.Errorf("can't be completed while %s", item.Kind())
	case "undo":
		if i, ok := item.(tasklist.CompletedTask); ok {
			return i.MarkIncompleteNext, nil
		}
		return nil, fmt.Errorf("can't be marked incomplete while %s", item.Kind())
	case "retry":
		if f, ok := item.(tasklist.FailedItem); ok {
			return f.RetryIntent(), nil
		}
		return nil, fmt.Errorf("has nothing to retry")
	case "clear":
		if f, ok := item.(tasklist.FailedItem); ok {
			return f.ClearIntent(), nil
		}
		return nil, fmt.Errorf("has nothing to clear")
	}

	return nil, fmt.Errorf("unknown command %q", name)
}
