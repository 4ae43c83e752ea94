package commands

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/taskdock/taskdock/internal/core/config"
	"github.com/taskdock/taskdock/internal/host"
	"github.com/taskdock/taskdock/internal/taskdock"
	"github.com/taskdock/taskdock/internal/tui"
)

type TuiCmd struct {
	flags *Flags
	app   *taskdock.App
}

// NewTuiCmd creates a new tui command
func NewTuiCmd(flags *Flags, app *taskdock.App) *TuiCmd {
	return &TuiCmd{flags: flags, app: app}
}

// Register adds the tui command to the application
func (cmd *TuiCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "tui",
		Usage:     "Open the interactive todo panel",
		UsageText: "taskdock tui",
		Action:    cmd.Run,
	})

	return app
}

// Run executes the TUI. Exported for use as default command.
func (cmd *TuiCmd) Run(ctx context.Context, _ *cli.Command) error {
	m := tui.New(tui.Deps{
		UI:   cmd.app.UI,
		Orch: cmd.app.Orchestrator,
	})
	p := tea.NewProgram(m, tea.WithAltScreen())

	// Route state broadcasts and orchestrator prompts into the program.
	unsub := cmd.app.UI.OnOutbound(func(msg host.Outbound) {
		p.Send(tui.OutboundMsg{Msg: msg})
	})
	defer unsub()

	cmd.app.Orchestrator.SetPrompter(tui.NewPanelPrompter(p.Send))
	defer cmd.app.Orchestrator.SetPrompter(TerminalPrompter{})

	// Long-running surface: follow config file edits while the panel is up.
	watcher, err := config.Watch(cmd.flags.ConfigPath, cmd.flags.DataDir, log.Logger, func(cfg *config.Config) {
		cmd.app.SetConfig(cfg)
	})
	if err != nil {
		log.Warn().Err(err).Msg("config watcher unavailable")
	} else {
		defer watcher.Close()
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
