package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/taskdock/taskdock/internal/host"
)

// ToastMsg shows a transient message at the bottom of the panel.
type ToastMsg struct {
	Text string
}

type clearToastMsg struct{}

// PanelPrompter adapts the mutation layer's prompts to the panel. The panel
// has its own affordances for everything interactive, so confirmations pass
// through and notifications become toasts; the undo action is reachable via
// the u key rather than the notification itself.
type PanelPrompter struct {
	send func(tea.Msg)
}

var _ host.Prompter = (*PanelPrompter)(nil)

// NewPanelPrompter creates a prompter that posts toasts through send,
// typically Program.Send.
func NewPanelPrompter(send func(tea.Msg)) *PanelPrompter {
	return &PanelPrompter{send: send}
}

func (p *PanelPrompter) PickOne(_ context.Context, _ string, options []host.Option) (string, bool) {
	if len(options) == 0 {
		return "", false
	}
	return options[0].Value, true
}

func (p *PanelPrompter) Confirm(_ context.Context, _ string, _ string) bool {
	return true
}

func (p *PanelPrompter) Notify(_ context.Context, message, actionLabel string) (string, bool) {
	text := message
	if actionLabel != "" {
		text += "  (press u to " + actionLabel + ")"
	}
	p.send(ToastMsg{Text: text})
	return "", false
}

func clearToastAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return clearToastMsg{} })
}
