package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/tasklist/internal/app/session"
	"github.com/slok/tasklist/internal/printer"
)

type RunCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	format string
}

// NewRunCommand returns the run command.
func NewRunCommand(rootCmd *RootCommand, app *kingpin.Application) *RunCommand {
	c := &RunCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("run", "Run an interactive task list session reading commands from stdin.")
	c.Cmd.Flag("format", "Output format (table, json).").Default("table").EnumVar(&c.format, "table", "json")

	return c
}

func (c RunCommand) Name() string { return c.Cmd.FullCommand() }

func (c RunCommand) Run(ctx context.Context) (err error) {
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

	svc, err := session.NewService(session.ServiceConfig{
		TaskService: taskSvc,
		Printer:     newPrinter(c.format, *c.rootCmd),
		Logger:      logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	if c.format != "json" {
		fmt.Fprintln(c.rootCmd.Stdout, session.Help)
	}

	if err := svc.Run(ctx, session.Request{Input: c.rootCmd.Stdin}); err != nil {
		return fmt.Errorf("session failed: %w", err)
	}

	return nil
}

func newPrinter(format string, root RootCommand) printer.Printer {
	switch format {
	case "json":
		return printer.NewJSONPrinter(root.Stdout)
	default: // table
		return printer.NewTablePrinter(root.Stdout)
	}
}
