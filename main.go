package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/taskdock/taskdock/internal/commands"
	"github.com/taskdock/taskdock/internal/core/config"
	"github.com/taskdock/taskdock/internal/core/eventbus"
	"github.com/taskdock/taskdock/internal/host"
	"github.com/taskdock/taskdock/internal/taskdock"
	"github.com/taskdock/taskdock/pkg/logutils"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	// When installed via `go install module@version`, build() populates
	// these from runtime/debug.BuildInfo instead.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func build() string {
	v, c, d := version, commit, date

	// When installed via `go install module@version`, ldflags aren't set
	// so version remains "dev". Fall back to runtime/debug.BuildInfo which
	// Go populates automatically with the module version and VCS metadata.
	if v == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			if mv := info.Main.Version; mv != "" && mv != "(devel)" {
				v = mv
			}
			for _, s := range info.Settings {
				switch s.Key {
				case "vcs.revision":
					c = s.Value
				case "vcs.time":
					d = s.Value
				}
			}
		}
	}

	short := c
	if len(c) > 7 {
		short = c[:7]
	}

	return fmt.Sprintf("%s (%s) %s", v, short, d)
}

func main() {
	ctx := context.Background()

	var (
		logCloser func()
		dockApp   = &taskdock.App{}
		busCancel context.CancelFunc
	)

	flags := &commands.Flags{}

	app := &cli.Command{
		Name:      "taskdock",
		Usage:     "Scope-aware todo lists for your workspaces",
		UsageText: "taskdock [global options] command [command options]",
		Description: `Taskdock keeps one global todo list plus one list per workspace
folder, with undo for destructive actions and auto-delete of completed items.

Run 'taskdock' with no arguments to open the interactive panel.
Run 'taskdock add <title>' to capture a todo for the current directory.`,
		Version: build(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("TASKDOCK_LOG_LEVEL"),
				Value:       "info",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file (defaults to <data-dir>/taskdock.log)",
				Sources:     cli.EnvVars("TASKDOCK_LOG_FILE"),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("TASKDOCK_CONFIG"),
				Value:       commands.DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "data-dir",
				Usage:       "path to data directory",
				Sources:     cli.EnvVars("TASKDOCK_DATA_DIR"),
				Value:       commands.DefaultDataDir(),
				Destination: &flags.DataDir,
			},
			&cli.BoolFlag{
				Name:        "global",
				Aliases:     []string{"g"},
				Usage:       "act on the global todo list",
				Destination: &flags.Global,
			},
			&cli.StringFlag{
				Name:        "workspace",
				Aliases:     []string{"w"},
				Usage:       "act on a specific workspace folder (defaults to the current directory)",
				Destination: &flags.Workspace,
			},
			&cli.BoolFlag{
				Name:        "yes",
				Aliases:     []string{"y"},
				Usage:       "skip confirmations (for scripts)",
				Destination: &flags.Yes,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			// Always log to a file; use explicit path or default to <datadir>/taskdock.log
			logFile := flags.LogFile
			if logFile == "" {
				logFile = filepath.Join(flags.DataDir, "taskdock.log")
			}

			logger, closer, err := logutils.New(flags.LogLevel, logFile)
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			log.Logger = logger
			logCloser = closer

			cfg, err := config.Load(flags.ConfigPath, flags.DataDir)
			if err != nil {
				return ctx, fmt.Errorf("load config: %w", err)
			}
			flags.Config = cfg

			store, closeStore, err := taskdock.OpenStore(cfg)
			if err != nil {
				return ctx, err
			}

			var prompter host.Prompter = commands.TerminalPrompter{}
			if flags.Yes {
				prompter = commands.ScriptPrompter{}
			}

			cwd, err := os.Getwd()
			if err != nil {
				return ctx, fmt.Errorf("resolve working directory: %w", err)
			}

			// Populate the pre-allocated App struct (commands already hold a pointer to it)
			*dockApp = *taskdock.NewApp(cfg, store, closeStore, prompter, host.StaticWorkspaces{cwd}, logger)

			busCtx, cancel := context.WithCancel(context.Background())
			busCancel = cancel
			eventbus.RegisterDebugLogger(dockApp.Bus, logger)
			go dockApp.Bus.Start(busCtx)

			dockApp.Orchestrator.Start()

			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if busCancel != nil {
				busCancel()
			}

			if dockApp.Orchestrator != nil {
				if err := dockApp.Close(); err != nil {
					log.Error().Err(err).Msg("failed to close storage")
					return err
				}
			}

			if logCloser != nil {
				logCloser()
			}
			return nil
		},
	}

	tuiCmd := commands.NewTuiCmd(flags, dockApp)

	app = commands.NewAddCmd(flags, dockApp).Register(app)
	app = commands.NewLsCmd(flags, dockApp).Register(app)
	app = commands.NewDoneCmd(flags, dockApp).Register(app)
	app = commands.NewEditCmd(flags, dockApp).Register(app)
	app = commands.NewRmCmd(flags, dockApp).Register(app)
	app = commands.NewMvCmd(flags, dockApp).Register(app)
	app = commands.NewClearCmd(flags, dockApp).Register(app)
	app = commands.NewConfigValidateCmd(flags).Register(app)
	app = tuiCmd.Register(app)

	// Open the panel when no subcommand is provided
	app.Action = func(ctx context.Context, c *cli.Command) error {
		if c.Args().Len() > 0 {
			return fmt.Errorf("unknown command %q. Run 'taskdock --help' for usage", c.Args().First())
		}
		return tuiCmd.Run(ctx, c)
	}

	exitCode := 0
	runErr := app.Run(ctx, os.Args)
	if runErr != nil {
		fmt.Println()
		fmt.Println(runErr.Error())
		exitCode = 1
	}

	os.Exit(exitCode)
}
