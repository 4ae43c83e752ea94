package taskdock

import (
	"context"

	"github.com/taskdock/taskdock/internal/core/todo"
	"github.com/taskdock/taskdock/internal/host"
)

// ResolveWireScope maps a wire-level scope descriptor to a target. Returns
// ok=false for nil or malformed descriptors; the caller treats that as a
// silent no-op.
func ResolveWireScope(ws *host.WireScope) (todo.ScopeTarget, bool) {
	if ws == nil {
		return todo.ScopeTarget{}, false
	}

	target := todo.ScopeTarget{
		Scope:           todo.Scope(ws.Kind),
		WorkspaceFolder: ws.WorkspaceFolder,
	}
	if !target.Valid() {
		return todo.ScopeTarget{}, false
	}
	return target, true
}

// resolveScope determines which partition a command acts on. An explicit
// target is used as-is; otherwise the user picks between the global list and
// the open workspace folders. A single candidate short-circuits the picker,
// and a cancelled picker resolves to nothing.
func (o *Orchestrator) resolveScope(ctx context.Context, explicit *todo.ScopeTarget) (todo.ScopeTarget, bool) {
	if explicit != nil {
		if !explicit.Valid() {
			return todo.ScopeTarget{}, false
		}
		return *explicit, true
	}

	folders := o.openFolders()
	if len(folders) == 0 {
		return todo.GlobalTarget(), true
	}

	options := make([]host.Option, 0, len(folders)+1)
	options = append(options, host.Option{Label: "Global", Value: string(todo.ScopeGlobal)})
	for _, folder := range folders {
		options = append(options, host.Option{Label: folder, Value: folder})
	}

	value, ok := o.prompt().PickOne(ctx, "Add todo to", options)
	if !ok {
		return todo.ScopeTarget{}, false
	}
	if value == string(todo.ScopeGlobal) {
		return todo.GlobalTarget(), true
	}
	return todo.WorkspaceTarget(value), true
}

// openFolders returns the host's workspace folders minus any matching the
// configured ignore globs.
func (o *Orchestrator) openFolders() []string {
	cfg := o.cfg()
	var folders []string
	for _, folder := range o.workspaces.Folders() {
		if cfg.IsIgnoredFolder(folder) {
			continue
		}
		folders = append(folders, folder)
	}
	return folders
}
