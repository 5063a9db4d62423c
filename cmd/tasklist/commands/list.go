package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/tasklist/internal/app/list"
)

type ListCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	format string
}

// NewListCommand returns the list command.
func NewListCommand(rootCmd *RootCommand, app *kingpin.Application) *ListCommand {
	c := &ListCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("list", "Load and print the tasks.")
	c.Cmd.Flag("format", "Output format (table, json).").Default("table").EnumVar(&c.format, "table", "json")

	return c
}

func (c ListCommand) Name() string { return c.Cmd.FullCommand() }

func (c ListCommand) Run(ctx context.Context) (err error) {
	logger := c.rootCmd.Logger

	taskSvc, closeSvc, err := newTaskService(ctx, *c.rootCmd)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closeSvc(); cerr != nil && err == nil {
			err = fmt.Errorf("could not close task service: %w", cerr)
		}
	}()

	svc, err := list.NewService(list.ServiceConfig{
		TaskService: taskSvc,
		Logger:      logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	state, err := svc.Run(ctx, list.Request{})
	if err != nil {
		return fmt.Errorf("could not list tasks: %w", err)
	}

	if err := newPrinter(c.format, *c.rootCmd).PrintState(state); err != nil {
		return fmt.Errorf("could not print tasks: %w", err)
	}

	return nil
}
