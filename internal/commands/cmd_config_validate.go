package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/hay-kot/criterio"
	"github.com/urfave/cli/v3"
)

type ConfigValidateCmd struct {
	flags  *Flags
	format string
}

// NewConfigValidateCmd creates a new config validate command.
func NewConfigValidateCmd(flags *Flags) *ConfigValidateCmd {
	return &ConfigValidateCmd{flags: flags}
}

// Register adds the config validate command to the application.
func (cmd *ConfigValidateCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "config",
		Usage: "Configuration management commands",
		Commands: []*cli.Command{
			{
				Name:        "validate",
				Usage:       "Validate configuration file",
				UsageText:   "taskdock config validate [options]",
				Description: "Validates the configuration file, checking storage backend, data directory, and ignore globs.",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:        "format",
						Usage:       "output format (text, json)",
						Value:       "text",
						Destination: &cmd.format,
					},
				},
				Action: cmd.run,
			},
		},
	})

	return app
}

func (cmd *ConfigValidateCmd) run(ctx context.Context, c *cli.Command) error {
	out := c.Root().Writer
	err := cmd.flags.Config.Validate()

	if cmd.format == "json" {
		return cmd.outputJSON(c, err)
	}

	if err == nil {
		_, _ = fmt.Fprintln(out, "Configuration is valid")
		return nil
	}

	var fieldErrs criterio.FieldErrors
	if errors.As(err, &fieldErrs) {
		for _, fe := range fieldErrs {
			fmt.Fprintf(os.Stderr, "%s: %s\n", fe.Field, fe.Err)
		}
		fmt.Fprintf(os.Stderr, "%d error(s) found\n", len(fieldErrs))
	} else {
		fmt.Fprintf(os.Stderr, "%s\n", err)
	}
	return cli.Exit("", 1)
}

func (cmd *ConfigValidateCmd) outputJSON(c *cli.Command, vErr error) error {
	out := struct {
		Valid  bool     `json:"valid"`
		Errors []string `json:"errors,omitempty"`
	}{Valid: vErr == nil}

	if vErr != nil {
		var fieldErrs criterio.FieldErrors
		if errors.As(vErr, &fieldErrs) {
			for _, fe := range fieldErrs {
				out.Errors = append(out.Errors, fmt.Sprintf("%s: %s", fe.Field, fe.Err))
			}
		} else {
			out.Errors = append(out.Errors, vErr.Error())
		}
	}

	enc := json.NewEncoder(c.Root().Writer)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return err
	}
	if !out.Valid {
		return cli.Exit("", 1)
	}
	return nil
}
