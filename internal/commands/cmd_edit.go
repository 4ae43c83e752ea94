package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/taskdock/taskdock/internal/core/todo"
	"github.com/taskdock/taskdock/internal/taskdock"
)

type EditCmd struct {
	flags *Flags
	app   *taskdock.App
}

// NewEditCmd creates a new edit command
func NewEditCmd(flags *Flags, app *taskdock.App) *EditCmd {
	return &EditCmd{flags: flags, app: app}
}

// Register adds the edit command to the application
func (cmd *EditCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "edit",
		Usage:     "Replace a todo's title",
		UsageText: "taskdock edit <id|position> <new title>",
		Description: `Replaces the title of one todo.

Examples:
  taskdock edit 2 Buy oat milk instead`,
		Action: cmd.run,
	})

	return app
}

func (cmd *EditCmd) run(ctx context.Context, c *cli.Command) error {
	if c.NArg() < 2 {
		return fmt.Errorf("usage: taskdock edit <id|position> <new title>")
	}

	title := strings.TrimSpace(strings.Join(c.Args().Slice()[1:], " "))
	if title == "" {
		return fmt.Errorf("usage: taskdock edit <id|position> <new title>")
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

	target := todo.TodoTarget{ScopeTarget: scope, TodoID: item.ID}
	if err := cmd.app.Orchestrator.Edit(ctx, target, title); err != nil {
		return fmt.Errorf("edit todo: %w", err)
	}

	_, _ = fmt.Fprintln(c.Root().Writer, "updated")
	return nil
}
