// Package todo defines the todo item domain model and the ordering rules
// shared by every storage scope.
package todo

import (
	"errors"
	"time"
)

var (
	// ErrNotFound is returned when a todo item does not exist in its scope.
	ErrNotFound = errors.New("todo item not found")
	// ErrEmptyTitle is returned when a create or edit carries a blank title.
	ErrEmptyTitle = errors.New("todo title is empty")
)

// Scope identifies which storage partition a todo belongs to.
type Scope string

const (
	// ScopeGlobal is the profile-wide list shared across all projects.
	ScopeGlobal Scope = "global"
	// ScopeWorkspace is a per-project list tied to one workspace folder.
	ScopeWorkspace Scope = "workspace"
)

// Todo represents a single task item. The JSON field names are part of the
// wire contract with the panel UI and must not change.
type Todo struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Completed       bool      `json:"completed"`
	Position        int       `json:"position"`
	Scope           Scope     `json:"scope"`
	WorkspaceFolder string    `json:"workspaceFolder,omitempty"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// ScopeTarget identifies one storage partition. WorkspaceFolder is set iff
// Scope is ScopeWorkspace. Targets are transient and never persisted.
type ScopeTarget struct {
	Scope           Scope
	WorkspaceFolder string
}

// GlobalTarget returns the target for the profile-wide list.
func GlobalTarget() ScopeTarget {
	return ScopeTarget{Scope: ScopeGlobal}
}

// WorkspaceTarget returns the target for the given workspace folder.
func WorkspaceTarget(folder string) ScopeTarget {
	return ScopeTarget{Scope: ScopeWorkspace, WorkspaceFolder: folder}
}

// Valid reports whether the target names exactly one storage partition.
func (t ScopeTarget) Valid() bool {
	switch t.Scope {
	case ScopeGlobal:
		return t.WorkspaceFolder == ""
	case ScopeWorkspace:
		return t.WorkspaceFolder != ""
	default:
		return false
	}
}

// Key returns the deterministic storage key for the partition: "global" for
// the global scope, the workspace folder identifier otherwise. Undo snapshots
// and auto-delete timers are keyed by this value.
func (t ScopeTarget) Key() string {
	if t.Scope == ScopeGlobal {
		return string(ScopeGlobal)
	}
	return t.WorkspaceFolder
}

// TodoTarget names a single todo inside a scope.
type TodoTarget struct {
	ScopeTarget
	TodoID string
}

// Target returns the TodoTarget addressing this item.
func (t Todo) Target() TodoTarget {
	st := GlobalTarget()
	if t.Scope == ScopeWorkspace {
		st = WorkspaceTarget(t.WorkspaceFolder)
	}
	return TodoTarget{ScopeTarget: st, TodoID: t.ID}
}

// Clone returns a deep copy of the list. The repository hands out and accepts
// copies only, so callers can never alias its cached state.
func Clone(todos []Todo) []Todo {
	if todos == nil {
		return nil
	}
	out := make([]Todo, len(todos))
	copy(out, todos)
	return out
}
