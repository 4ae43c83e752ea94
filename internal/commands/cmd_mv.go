package commands

import (
	"context"
	"fmt"
	"strconv"

	"github.com/urfave/cli/v3"

	"github.com/taskdock/taskdock/internal/taskdock"
)

type MvCmd struct {
	flags *Flags
	app   *taskdock.App
}

// NewMvCmd creates a new mv command
func NewMvCmd(flags *Flags, app *taskdock.App) *MvCmd {
	return &MvCmd{flags: flags, app: app}
}

// Register adds the mv command to the application
func (cmd *MvCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "mv",
		Usage:     "Move a todo to a new position",
		UsageText: "taskdock mv <id|position> <new-position>",
		Description: `Moves one todo to a 1-based position; the rest of the list
shifts around it.

Examples:
  taskdock mv 4 1`,
		Action: cmd.run,
	})

	return app
}

func (cmd *MvCmd) run(ctx context.Context, c *cli.Command) error {
	if c.NArg() < 2 {
		return fmt.Errorf("usage: taskdock mv <id|position> <new-position>")
	}

	newPos, err := strconv.Atoi(c.Args().Get(1))
	if err != nil || newPos < 1 {
		return fmt.Errorf("new position must be a positive number")
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

	// Build the full id order with the item moved to its new slot.
	order := make([]string, 0, len(todos))
	for _, t := range todos {
		if t.ID != item.ID {
			order = append(order, t.ID)
		}
	}
	if newPos > len(order) {
		order = append(order, item.ID)
	} else {
		order = append(order[:newPos-1], append([]string{item.ID}, order[newPos-1:]...)...)
	}

	if err := cmd.app.Orchestrator.Reorder(ctx, scope, order); err != nil {
		return fmt.Errorf("reorder todos: %w", err)
	}

	_, _ = fmt.Fprintln(c.Root().Writer, "moved")
	return nil
}
