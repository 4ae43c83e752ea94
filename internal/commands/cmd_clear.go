package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/taskdock/taskdock/internal/taskdock"
)

type ClearCmd struct {
	flags *Flags
	app   *taskdock.App
}

// NewClearCmd creates a new clear command
func NewClearCmd(flags *Flags, app *taskdock.App) *ClearCmd {
	return &ClearCmd{flags: flags, app: app}
}

// Register adds the clear command to the application
func (cmd *ClearCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "clear",
		Usage:     "Remove every todo in a scope",
		UsageText: "taskdock clear [--global|--workspace <dir>]",
		Description: `Empties the selected scope after confirmation. The undo
prompt restores the full list if accepted in time.

Use the root --yes flag to skip confirmation in scripts.`,
		Action: cmd.run,
	})

	return app
}

func (cmd *ClearCmd) run(ctx context.Context, c *cli.Command) error {
	scope, err := cmd.flags.Scope()
	if err != nil {
		return fmt.Errorf("resolve scope: %w", err)
	}

	if err := cmd.app.Orchestrator.ClearScope(ctx, scope); err != nil {
		return fmt.Errorf("clear scope: %w", err)
	}

	cmd.app.Orchestrator.WaitUndo()
	return nil
}
