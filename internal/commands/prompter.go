package commands

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"

	"github.com/taskdock/taskdock/internal/host"
)

// TerminalPrompter implements host.Prompter with interactive huh forms.
// Every prompt treats huh.ErrUserAborted as a plain cancellation.
type TerminalPrompter struct{}

var _ host.Prompter = TerminalPrompter{}

// PickOne shows a select form for the options.
func (TerminalPrompter) PickOne(ctx context.Context, title string, options []host.Option) (string, bool) {
	huhOptions := make([]huh.Option[string], 0, len(options))
	for _, opt := range options {
		huhOptions = append(huhOptions, huh.NewOption(opt.Label, opt.Value))
	}

	var value string
	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title(title).
			Options(huhOptions...).
			Value(&value),
	))

	if err := form.RunWithContext(ctx); err != nil {
		if !errors.Is(err, huh.ErrUserAborted) && !errors.Is(err, context.DeadlineExceeded) {
			fmt.Fprintf(os.Stderr, "prompt failed: %v\n", err)
		}
		return "", false
	}
	return value, true
}

// Confirm shows a yes/no form with a custom affirmative label.
func (TerminalPrompter) Confirm(ctx context.Context, message, confirmLabel string) bool {
	if confirmLabel == "" {
		confirmLabel = "Yes"
	}

	var confirmed bool
	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(message).
			Affirmative(confirmLabel).
			Negative("Cancel").
			Value(&confirmed),
	))

	if err := form.RunWithContext(ctx); err != nil {
		return false
	}
	return confirmed
}

// Notify prints the message and, when an action is offered, asks whether to
// take it. The ctx deadline bounds how long the offer stays open.
func (TerminalPrompter) Notify(ctx context.Context, message, actionLabel string) (string, bool) {
	if actionLabel == "" {
		fmt.Fprintln(os.Stderr, message)
		return "", false
	}

	var take bool
	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(message).
			Affirmative(actionLabel).
			Negative("Dismiss").
			Value(&take),
	))

	if err := form.RunWithContext(ctx); err != nil {
		return "", false
	}
	if !take {
		return "", false
	}
	return actionLabel, true
}

// ScriptPrompter is the non-interactive prompter used for --yes runs:
// confirmations pass, pickers take the first option, and notifications are
// printed without offering their action.
type ScriptPrompter struct{}

var _ host.Prompter = ScriptPrompter{}

func (ScriptPrompter) PickOne(_ context.Context, _ string, options []host.Option) (string, bool) {
	if len(options) == 0 {
		return "", false
	}
	return options[0].Value, true
}

func (ScriptPrompter) Confirm(_ context.Context, _ string, _ string) bool { return true }

func (ScriptPrompter) Notify(_ context.Context, message, _ string) (string, bool) {
	fmt.Fprintln(os.Stderr, message)
	return "", false
}
