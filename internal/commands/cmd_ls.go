package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/taskdock/taskdock/internal/core/todo"
	"github.com/taskdock/taskdock/internal/taskdock"
	"github.com/taskdock/taskdock/pkg/iojson"
)

type LsCmd struct {
	flags *Flags
	app   *taskdock.App

	// flags
	jsonOutput bool
	allScopes  bool
}

// NewLsCmd creates a new ls command
func NewLsCmd(flags *Flags, app *taskdock.App) *LsCmd {
	return &LsCmd{flags: flags, app: app}
}

// Register adds the ls command to the application
func (cmd *LsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "ls",
		Usage:     "List todos in a scope",
		UsageText: "taskdock ls [--all] [--json]",
		Description: `Displays the selected scope's todos in position order.

Use --all to include the global list alongside the workspace list, and
--json for line-delimited JSON output.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON lines",
				Destination: &cmd.jsonOutput,
			},
			&cli.BoolFlag{
				Name:        "all",
				Aliases:     []string{"a"},
				Usage:       "include the global scope",
				Destination: &cmd.allScopes,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *LsCmd) run(ctx context.Context, c *cli.Command) error {
	scope, err := cmd.flags.Scope()
	if err != nil {
		return fmt.Errorf("resolve scope: %w", err)
	}

	scopes := []todo.ScopeTarget{scope}
	if cmd.allScopes && scope.Scope != todo.ScopeGlobal {
		scopes = append([]todo.ScopeTarget{todo.GlobalTarget()}, scopes...)
	}

	out := c.Root().Writer
	empty := true

	for _, s := range scopes {
		todos, err := cmd.app.Repo.Todos(ctx, s)
		if err != nil {
			return fmt.Errorf("list todos: %w", err)
		}
		if len(todos) == 0 {
			continue
		}
		empty = false

		if cmd.jsonOutput {
			for _, item := range todos {
				if err := iojson.WriteLine(out, item); err != nil {
					return fmt.Errorf("encode todo: %w", err)
				}
			}
			continue
		}

		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		_, _ = fmt.Fprintf(w, "%s\n", scopeHeading(s))
		for _, item := range todos {
			mark := " "
			if item.Completed {
				mark = "x"
			}
			_, _ = fmt.Fprintf(w, "%d\t[%s]\t%s\t%s\n", item.Position, mark, item.ID, item.Title)
		}
		_ = w.Flush()
	}

	if empty && !cmd.jsonOutput {
		fmt.Fprintf(os.Stderr, "No todos found\n")
	}

	return nil
}

func scopeHeading(s todo.ScopeTarget) string {
	if s.Scope == todo.ScopeGlobal {
		return "GLOBAL"
	}
	return s.WorkspaceFolder
}
