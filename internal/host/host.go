// Package host defines the collaborator interfaces the mutation layer talks
// to: user prompts, the panel UI message channel, and the set of open
// workspace folders. Implementations live at the edges (CLI, TUI); the core
// depends only on these contracts.
package host

import "context"

// Option is one selectable entry in a picker.
type Option struct {
	Label string
	Value string
}

// Prompter surfaces user-facing prompts. Every method reports cancellation
// explicitly; the mutation layer treats a cancelled prompt as a silent no-op.
type Prompter interface {
	// PickOne asks the user to choose one option. ok is false when the
	// picker was cancelled.
	PickOne(ctx context.Context, title string, options []Option) (value string, ok bool)

	// Confirm asks a yes/no question with a custom confirm label.
	Confirm(ctx context.Context, message, confirmLabel string) bool

	// Notify shows a message with an optional action button. Returns the
	// chosen action label, or ok=false if dismissed or timed out.
	Notify(ctx context.Context, message, actionLabel string) (action string, ok bool)
}

// Workspaces reports the project roots currently open in the host.
type Workspaces interface {
	Folders() []string
}

// StaticWorkspaces is a fixed folder list, used by the CLI surface where the
// "workspace" is the working directory.
type StaticWorkspaces []string

// Folders returns the fixed list.
func (s StaticWorkspaces) Folders() []string { return s }

// UIHost is the panel-side message channel. PostMessage delivers outbound
// state to whatever UI is attached; Subscribe registers an observer for
// inbound UI messages and returns its unsubscribe function.
type UIHost interface {
	PostMessage(msg Outbound)
	Subscribe(fn func(Inbound)) (unsubscribe func())
}
