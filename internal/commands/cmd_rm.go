package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/taskdock/taskdock/internal/taskdock"
)

type RmCmd struct {
	flags *Flags
	app   *taskdock.App
}

// NewRmCmd creates a new rm command
func NewRmCmd(flags *Flags, app *taskdock.App) *RmCmd {
	return &RmCmd{flags: flags, app: app}
}

// Register adds the rm command to the application
func (cmd *RmCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "rm",
		Usage:     "Remove a todo",
		UsageText: "taskdock rm <id|position>",
		Description: `Removes one todo. An undo prompt is offered for a short
window after the removal; accepting it restores the scope's previous list.

Examples:
  taskdock rm 3`,
		Action: cmd.run,
	})

	return app
}

func (cmd *RmCmd) run(ctx context.Context, c *cli.Command) error {
	if c.NArg() < 1 {
		return fmt.Errorf("usage: taskdock rm <id|position>")
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

	if err := cmd.app.Orchestrator.RemoveWithUndo(ctx, item.Target()); err != nil {
		return fmt.Errorf("remove todo: %w", err)
	}

	// Keep the process alive while the undo offer is open.
	cmd.app.Orchestrator.WaitUndo()
	return nil
}
