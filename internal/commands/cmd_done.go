package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/taskdock/taskdock/internal/taskdock"
)

type DoneCmd struct {
	flags *Flags
	app   *taskdock.App
}

// NewDoneCmd creates a new done command
func NewDoneCmd(flags *Flags, app *taskdock.App) *DoneCmd {
	return &DoneCmd{flags: flags, app: app}
}

// Register adds the done command to the application
func (cmd *DoneCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "done",
		Usage:     "Toggle a todo's completed state",
		UsageText: "taskdock done <id|position>",
		Description: `Toggles completion for one todo. Completing a todo arms the
auto-delete countdown when auto_delete_completed is enabled; running done
again before it fires reopens the todo and cancels the countdown.

Examples:
  taskdock done 2
  taskdock done h7x2k9f1`,
		Action: cmd.run,
	})

	return app
}

func (cmd *DoneCmd) run(ctx context.Context, c *cli.Command) error {
	if c.NArg() < 1 {
		return fmt.Errorf("usage: taskdock done <id|position>")
	}

	scope, err := cmd.flags.Scope()
	if err != nil {
		return fmt.Errorf("resolve scope: %w", err)
	}

	todos, err := cmd.app.Repo.Todos(ctx, scope)
	if err != nil {
		return fmt.Errorf("list todos: %w", err)
	}

	item, err := findTodo(todos, c.Args().Get(0))
	if err != nil {
		return err
	}

	if err := cmd.app.Orchestrator.ToggleComplete(ctx, item.Target()); err != nil {
		return fmt.Errorf("toggle todo: %w", err)
	}

	if item.Completed {
		_, _ = fmt.Fprintln(c.Root().Writer, "reopened")
	} else {
		_, _ = fmt.Fprintln(c.Root().Writer, "completed")
	}
	return nil
}
