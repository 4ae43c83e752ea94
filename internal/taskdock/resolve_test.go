package taskdock

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskdock/taskdock/internal/core/todo"
	"github.com/taskdock/taskdock/internal/host"
)

func TestResolveWireScope(t *testing.T) {
	tests := []struct {
		name string
		in   *host.WireScope
		want todo.ScopeTarget
		ok   bool
	}{
		{
			name: "nil scope",
			in:   nil,
			ok:   false,
		},
		{
			name: "global",
			in:   &host.WireScope{Kind: "global"},
			want: todo.GlobalTarget(),
			ok:   true,
		},
		{
			name: "workspace with folder",
			in:   &host.WireScope{Kind: "workspace", WorkspaceFolder: "/home/dev/project"},
			want: todo.WorkspaceTarget("/home/dev/project"),
			ok:   true,
		},
		{
			name: "workspace without folder",
			in:   &host.WireScope{Kind: "workspace"},
			ok:   false,
		},
		{
			name: "global with stray folder",
			in:   &host.WireScope{Kind: "global", WorkspaceFolder: "/home/dev/project"},
			ok:   false,
		},
		{
			name: "unknown kind",
			in:   &host.WireScope{Kind: "galaxy"},
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ResolveWireScope(tt.in)
			require.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestOpenFoldersIgnoresConfiguredGlobs(t *testing.T) {
	f := newOrchFixture(t, "/home/dev/project", "/tmp/scratch", "/home/dev/other")
	f.cfg.IgnoreFolders = []string{"/tmp/**"}

	folders := f.orch.openFolders()
	assert.Equal(t, []string{"/home/dev/project", "/home/dev/other"}, folders)
}

func TestResolveScopeExplicitInvalid(t *testing.T) {
	f := newOrchFixture(t)

	bad := todo.ScopeTarget{Scope: todo.ScopeWorkspace}
	_, ok := f.orch.resolveScope(context.Background(), &bad)
	assert.False(t, ok)
}
