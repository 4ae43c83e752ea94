package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/taskdock/taskdock/internal/taskdock"
)

type AddCmd struct {
	flags *Flags
	app   *taskdock.App
}

// NewAddCmd creates a new add command
func NewAddCmd(flags *Flags, app *taskdock.App) *AddCmd {
	return &AddCmd{flags: flags, app: app}
}

// Register adds the add command to the application
func (cmd *AddCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "add",
		Usage:     "Add a todo to a scope",
		UsageText: "taskdock add [--global|--workspace <dir>] <title>",
		Description: `Adds a todo at the end of the selected scope's list.

The title may be given as multiple arguments; they are joined with spaces.

Examples:
  taskdock add Buy milk
  taskdock add --global "Review quarterly goals"`,
		Action: cmd.run,
	})

	return app
}

func (cmd *AddCmd) run(ctx context.Context, c *cli.Command) error {
	title := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if title == "" {
		return fmt.Errorf("usage: taskdock add <title>")
	}

	scope, err := cmd.flags.Scope()
	if err != nil {
		return fmt.Errorf("resolve scope: %w", err)
	}

	if err := cmd.app.Orchestrator.Add(ctx, scope, title); err != nil {
		return fmt.Errorf("add todo: %w", err)
	}

	_, _ = fmt.Fprintln(c.Root().Writer, "added")
	return nil
}
