package host

import (
	"github.com/taskdock/taskdock/internal/core/todo"
)

// Outbound message kinds (core -> panel).
const (
	KindStateUpdate       = "stateUpdate"
	KindStartInlineCreate = "startInlineCreate"
	KindStartInlineEdit   = "startInlineEdit"
	KindAutoDeleteCue     = "autoDeleteCue"
)

// Inbound message kinds (panel -> core).
const (
	KindWebviewReady   = "webviewReady"
	KindCommitCreate   = "commitCreate"
	KindCommitEdit     = "commitEdit"
	KindToggleComplete = "toggleComplete"
	KindRemoveTodo     = "removeTodo"
	KindReorderTodos   = "reorderTodos"
	KindClearScope     = "clearScope"
)

// WireScope is the wire-level scope descriptor carried by UI messages.
type WireScope struct {
	Kind            string `json:"kind"` // "global" or "workspace"
	WorkspaceFolder string `json:"workspaceFolder,omitempty"`
}

// ScopeOf converts a target to its wire descriptor.
func ScopeOf(target todo.ScopeTarget) *WireScope {
	return &WireScope{
		Kind:            string(target.Scope),
		WorkspaceFolder: target.WorkspaceFolder,
	}
}

// StatePayload is the full state snapshot broadcast on every change.
type StatePayload struct {
	Global     []todo.Todo            `json:"global"`
	Workspaces map[string][]todo.Todo `json:"workspaces"`
}

// Outbound is a message from the core to the panel UI. Kind discriminates
// which of the optional fields are set; the field names are a compatibility
// contract with the panel and must not change.
type Outbound struct {
	Kind       string        `json:"kind"`
	Payload    *StatePayload `json:"payload,omitempty"`    // stateUpdate
	Scope      *WireScope    `json:"scope,omitempty"`      // startInlineCreate, startInlineEdit, autoDeleteCue
	TodoID     string        `json:"todoId,omitempty"`     // startInlineEdit, autoDeleteCue
	DurationMs int           `json:"durationMs,omitempty"` // autoDeleteCue
}

// Inbound is a message from the panel UI to the core.
type Inbound struct {
	Kind   string     `json:"kind"`
	Scope  *WireScope `json:"scope,omitempty"`
	TodoID string     `json:"todoId,omitempty"` // commitEdit, toggleComplete, removeTodo
	Title  string     `json:"title,omitempty"`  // commitCreate, commitEdit
	Order  []string   `json:"order,omitempty"`  // reorderTodos
}
