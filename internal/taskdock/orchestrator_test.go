package taskdock

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskdock/taskdock/internal/core/config"
	"github.com/taskdock/taskdock/internal/core/eventbus"
	"github.com/taskdock/taskdock/internal/core/eventbus/testbus"
	"github.com/taskdock/taskdock/internal/core/todo"
	"github.com/taskdock/taskdock/internal/host"
	"github.com/taskdock/taskdock/internal/store/jsonfile"
)

type fakePrompter struct {
	mu            sync.Mutex
	pickValue     string
	pickOK        bool
	confirmResult bool
	notifyAction  string
	notifyOK      bool

	confirms      []string
	notifications []string
}

func (p *fakePrompter) PickOne(_ context.Context, _ string, _ []host.Option) (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pickValue, p.pickOK
}

func (p *fakePrompter) Confirm(_ context.Context, message, _ string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.confirms = append(p.confirms, message)
	return p.confirmResult
}

func (p *fakePrompter) Notify(_ context.Context, message, _ string) (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.notifications = append(p.notifications, message)
	return p.notifyAction, p.notifyOK
}

func (p *fakePrompter) notified() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.notifications))
	copy(out, p.notifications)
	return out
}

type orchFixture struct {
	orch     *Orchestrator
	repo     *Repository
	ui       *host.MessageBus
	bus      *testbus.Bus
	prompter *fakePrompter
	cfg      *config.Config

	mu       sync.Mutex
	outbound []host.Outbound
}

func newOrchFixture(t *testing.T, folders ...string) *orchFixture {
	t.Helper()

	cfgVal := config.DefaultConfig()
	cfgVal.DataDir = t.TempDir()
	cfgVal.AutoDeleteCompleted = false
	cfgVal.AutoDeleteDelayMs = 20
	cfgVal.AutoDeleteFadeMs = 10
	cfg := &cfgVal

	store, err := jsonfile.New(cfg.DataDir)
	require.NoError(t, err)

	f := &orchFixture{
		ui:       host.NewMessageBus(),
		bus:      testbus.New(t),
		prompter: &fakePrompter{},
		cfg:      cfg,
		repo:     NewRepository(store, zerolog.Nop()),
	}

	f.ui.OnOutbound(func(msg host.Outbound) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.outbound = append(f.outbound, msg)
	})

	f.orch = NewOrchestrator(
		f.repo,
		func() *config.Config { return cfg },
		f.prompter,
		f.ui,
		host.StaticWorkspaces(folders),
		f.bus.EventBus,
		zerolog.Nop(),
	)
	f.orch.Start()
	t.Cleanup(f.orch.Close)

	return f
}

func (f *orchFixture) messages(kind string) []host.Outbound {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []host.Outbound
	for _, msg := range f.outbound {
		if msg.Kind == kind {
			out = append(out, msg)
		}
	}
	return out
}

func (f *orchFixture) lastState() *host.StatePayload {
	updates := f.messages(host.KindStateUpdate)
	if len(updates) == 0 {
		return nil
	}
	return updates[len(updates)-1].Payload
}

func (f *orchFixture) mustTodos(t *testing.T, scope todo.ScopeTarget) []todo.Todo {
	t.Helper()
	todos, err := f.repo.Todos(context.Background(), scope)
	require.NoError(t, err)
	return todos
}

func TestOrchestratorAdd(t *testing.T) {
	ctx := context.Background()
	scope := todo.GlobalTarget()

	t.Run("creates todo at end of list and broadcasts", func(t *testing.T) {
		f := newOrchFixture(t)

		require.NoError(t, f.orch.Add(ctx, scope, "Buy milk"))
		require.NoError(t, f.orch.Add(ctx, scope, "Walk dog"))

		todos := f.mustTodos(t, scope)
		require.Len(t, todos, 2)
		assert.Equal(t, "Buy milk", todos[0].Title)
		assert.Equal(t, 1, todos[0].Position)
		assert.Equal(t, "Walk dog", todos[1].Title)
		assert.Equal(t, 2, todos[1].Position)

		state := f.lastState()
		require.NotNil(t, state)
		assert.Len(t, state.Global, 2)

		f.bus.AssertPublished(t, eventbus.EventTodoCreated)
	})

	t.Run("blank title is a silent no-op", func(t *testing.T) {
		f := newOrchFixture(t)

		require.NoError(t, f.orch.Add(ctx, scope, "   "))

		assert.Empty(t, f.mustTodos(t, scope))
		assert.Empty(t, f.messages(host.KindStateUpdate))
	})

	t.Run("invalid scope is a silent no-op", func(t *testing.T) {
		f := newOrchFixture(t)

		bad := todo.ScopeTarget{Scope: todo.ScopeWorkspace} // missing folder
		require.NoError(t, f.orch.Add(ctx, bad, "Buy milk"))
		assert.Empty(t, f.messages(host.KindStateUpdate))
	})
}

func TestOrchestratorEdit(t *testing.T) {
	ctx := context.Background()
	scope := todo.GlobalTarget()

	f := newOrchFixture(t)
	require.NoError(t, f.orch.Add(ctx, scope, "Buy milk"))
	id := f.mustTodos(t, scope)[0].ID

	t.Run("replaces title and trims whitespace", func(t *testing.T) {
		target := todo.TodoTarget{ScopeTarget: scope, TodoID: id}
		require.NoError(t, f.orch.Edit(ctx, target, "  Buy oat milk  "))

		todos := f.mustTodos(t, scope)
		assert.Equal(t, "Buy oat milk", todos[0].Title)
	})

	t.Run("unknown id is a silent no-op", func(t *testing.T) {
		target := todo.TodoTarget{ScopeTarget: scope, TodoID: "missing"}
		require.NoError(t, f.orch.Edit(ctx, target, "New title"))

		todos := f.mustTodos(t, scope)
		assert.Equal(t, "Buy oat milk", todos[0].Title)
	})

	t.Run("blank title is a silent no-op", func(t *testing.T) {
		target := todo.TodoTarget{ScopeTarget: scope, TodoID: id}
		require.NoError(t, f.orch.Edit(ctx, target, "   "))

		todos := f.mustTodos(t, scope)
		assert.Equal(t, "Buy oat milk", todos[0].Title)
	})
}

func TestOrchestratorToggleComplete(t *testing.T) {
	ctx := context.Background()
	scope := todo.GlobalTarget()

	t.Run("toggles the completed flag", func(t *testing.T) {
		f := newOrchFixture(t)
		require.NoError(t, f.orch.Add(ctx, scope, "Buy milk"))
		target := f.mustTodos(t, scope)[0].Target()

		require.NoError(t, f.orch.ToggleComplete(ctx, target))
		assert.True(t, f.mustTodos(t, scope)[0].Completed)
		f.bus.AssertPublished(t, eventbus.EventTodoCompleted)

		require.NoError(t, f.orch.ToggleComplete(ctx, target))
		assert.False(t, f.mustTodos(t, scope)[0].Completed)
	})

	t.Run("completion schedules auto-delete when enabled", func(t *testing.T) {
		f := newOrchFixture(t)
		f.cfg.AutoDeleteCompleted = true

		require.NoError(t, f.orch.Add(ctx, scope, "Buy milk"))
		target := f.mustTodos(t, scope)[0].Target()

		require.NoError(t, f.orch.ToggleComplete(ctx, target))
		assert.True(t, f.orch.AutoDelete().Pending(target))

		require.Eventually(t, func() bool {
			return len(f.mustTodos(t, scope)) == 0
		}, time.Second, 5*time.Millisecond)

		cues := f.messages(host.KindAutoDeleteCue)
		require.Len(t, cues, 1)
		assert.Equal(t, target.TodoID, cues[0].TodoID)
		assert.Equal(t, 10, cues[0].DurationMs)
	})

	t.Run("reopening cancels the pending auto-delete", func(t *testing.T) {
		f := newOrchFixture(t)
		f.cfg.AutoDeleteCompleted = true
		f.cfg.AutoDeleteDelayMs = 5000 // long enough to toggle back in time

		require.NoError(t, f.orch.Add(ctx, scope, "Buy milk"))
		target := f.mustTodos(t, scope)[0].Target()

		require.NoError(t, f.orch.ToggleComplete(ctx, target))
		require.True(t, f.orch.AutoDelete().Pending(target))

		require.NoError(t, f.orch.ToggleComplete(ctx, target))
		assert.False(t, f.orch.AutoDelete().Pending(target))
		assert.Len(t, f.mustTodos(t, scope), 1)
	})
}

func TestOrchestratorRemoveWithUndo(t *testing.T) {
	ctx := context.Background()
	scope := todo.GlobalTarget()

	t.Run("removes and renumbers survivors", func(t *testing.T) {
		f := newOrchFixture(t)
		require.NoError(t, f.orch.Add(ctx, scope, "one"))
		require.NoError(t, f.orch.Add(ctx, scope, "two"))
		require.NoError(t, f.orch.Add(ctx, scope, "three"))
		target := f.mustTodos(t, scope)[0].Target()

		require.NoError(t, f.orch.RemoveWithUndo(ctx, target))
		f.orch.WaitUndo()

		todos := f.mustTodos(t, scope)
		require.Len(t, todos, 2)
		assert.Equal(t, "two", todos[0].Title)
		assert.Equal(t, 1, todos[0].Position)
		assert.Equal(t, 2, todos[1].Position)

		f.bus.AssertPublished(t, eventbus.EventTodoRemoved)
	})

	t.Run("accepting the undo notification restores the list", func(t *testing.T) {
		f := newOrchFixture(t)
		f.prompter.notifyAction = "Undo"
		f.prompter.notifyOK = true

		require.NoError(t, f.orch.Add(ctx, scope, "Buy milk"))
		target := f.mustTodos(t, scope)[0].Target()

		require.NoError(t, f.orch.RemoveWithUndo(ctx, target))
		f.orch.WaitUndo()

		todos := f.mustTodos(t, scope)
		require.Len(t, todos, 1)
		assert.Equal(t, "Buy milk", todos[0].Title)
		f.bus.AssertPublished(t, eventbus.EventTodoRestored)
	})

	t.Run("dismissed notification leaves the removal in place", func(t *testing.T) {
		f := newOrchFixture(t)

		require.NoError(t, f.orch.Add(ctx, scope, "Buy milk"))
		target := f.mustTodos(t, scope)[0].Target()

		require.NoError(t, f.orch.RemoveWithUndo(ctx, target))
		f.orch.WaitUndo()

		assert.Empty(t, f.mustTodos(t, scope))
		assert.Contains(t, f.prompter.notified()[0], "Buy milk")
	})
}

func TestOrchestratorClearScope(t *testing.T) {
	ctx := context.Background()
	scope := todo.GlobalTarget()

	t.Run("declined confirmation keeps the list", func(t *testing.T) {
		f := newOrchFixture(t)
		require.NoError(t, f.orch.Add(ctx, scope, "one"))
		require.NoError(t, f.orch.Add(ctx, scope, "two"))

		require.NoError(t, f.orch.ClearScope(ctx, scope))
		assert.Len(t, f.mustTodos(t, scope), 2)
	})

	t.Run("confirmed clear empties the scope", func(t *testing.T) {
		f := newOrchFixture(t)
		f.prompter.confirmResult = true

		require.NoError(t, f.orch.Add(ctx, scope, "one"))
		require.NoError(t, f.orch.Add(ctx, scope, "two"))

		require.NoError(t, f.orch.ClearScope(ctx, scope))
		f.orch.WaitUndo()

		assert.Empty(t, f.mustTodos(t, scope))
		f.bus.AssertPublished(t, eventbus.EventScopeCleared)
	})

	t.Run("single item skips confirmation", func(t *testing.T) {
		f := newOrchFixture(t)
		require.NoError(t, f.orch.Add(ctx, scope, "only"))

		require.NoError(t, f.orch.ClearScope(ctx, scope))
		f.orch.WaitUndo()

		assert.Empty(t, f.mustTodos(t, scope))
		assert.Empty(t, f.prompter.confirms)
	})

	t.Run("empty scope notifies instead of clearing", func(t *testing.T) {
		f := newOrchFixture(t)

		require.NoError(t, f.orch.ClearScope(ctx, scope))
		require.Len(t, f.prompter.notified(), 1)
		assert.Contains(t, f.prompter.notified()[0], "No todos")
	})

	t.Run("only affects the named scope", func(t *testing.T) {
		f := newOrchFixture(t)
		f.prompter.confirmResult = true
		ws := todo.WorkspaceTarget("/home/dev/project")

		require.NoError(t, f.orch.Add(ctx, scope, "global task"))
		require.NoError(t, f.orch.Add(ctx, ws, "workspace task"))

		require.NoError(t, f.orch.ClearScope(ctx, ws))
		f.orch.WaitUndo()

		assert.Len(t, f.mustTodos(t, scope), 1)
		assert.Empty(t, f.mustTodos(t, ws))
	})
}

func TestOrchestratorUndo(t *testing.T) {
	ctx := context.Background()
	scope := todo.GlobalTarget()

	t.Run("without a snapshot it is a no-op", func(t *testing.T) {
		f := newOrchFixture(t)
		require.NoError(t, f.orch.Add(ctx, scope, "Buy milk"))

		require.NoError(t, f.orch.Undo(ctx, scope))
		assert.Len(t, f.mustTodos(t, scope), 1)
	})

	t.Run("restores the cleared scope once", func(t *testing.T) {
		f := newOrchFixture(t)
		f.prompter.confirmResult = true

		require.NoError(t, f.orch.Add(ctx, scope, "one"))
		require.NoError(t, f.orch.Add(ctx, scope, "two"))
		require.NoError(t, f.orch.ClearScope(ctx, scope))
		f.orch.WaitUndo()
		require.Empty(t, f.mustTodos(t, scope))

		require.NoError(t, f.orch.Undo(ctx, scope))
		assert.Len(t, f.mustTodos(t, scope), 2)

		// second undo has nothing to consume
		require.NoError(t, f.orch.ClearScope(ctx, scope))
		f.orch.WaitUndo()
		require.NoError(t, f.orch.Undo(ctx, scope))
		require.NoError(t, f.orch.Undo(ctx, scope))
		assert.Len(t, f.mustTodos(t, scope), 2)
	})
}

func TestOrchestratorHandleMessage(t *testing.T) {
	globalWire := &host.WireScope{Kind: "global"}

	t.Run("webviewReady triggers a state broadcast", func(t *testing.T) {
		f := newOrchFixture(t)

		f.ui.Dispatch(host.Inbound{Kind: host.KindWebviewReady})
		require.Len(t, f.messages(host.KindStateUpdate), 1)
	})

	t.Run("commitCreate adds a todo", func(t *testing.T) {
		f := newOrchFixture(t)

		f.ui.Dispatch(host.Inbound{Kind: host.KindCommitCreate, Scope: globalWire, Title: "Buy milk"})

		todos := f.mustTodos(t, todo.GlobalTarget())
		require.Len(t, todos, 1)
		assert.Equal(t, "Buy milk", todos[0].Title)
	})

	t.Run("reorderTodos applies the new order", func(t *testing.T) {
		f := newOrchFixture(t)
		ctx := context.Background()
		scope := todo.GlobalTarget()

		require.NoError(t, f.orch.Add(ctx, scope, "one"))
		require.NoError(t, f.orch.Add(ctx, scope, "two"))
		before := f.mustTodos(t, scope)

		f.ui.Dispatch(host.Inbound{
			Kind:  host.KindReorderTodos,
			Scope: globalWire,
			Order: []string{before[1].ID, before[0].ID},
		})

		after := f.mustTodos(t, scope)
		assert.Equal(t, "two", after[0].Title)
		assert.Equal(t, "one", after[1].Title)
	})

	t.Run("missing scope is dropped", func(t *testing.T) {
		f := newOrchFixture(t)

		f.ui.Dispatch(host.Inbound{Kind: host.KindCommitCreate, Title: "orphan"})
		assert.Empty(t, f.mustTodos(t, todo.GlobalTarget()))
	})

	t.Run("workspace scope with no folder is dropped", func(t *testing.T) {
		f := newOrchFixture(t)

		f.ui.Dispatch(host.Inbound{
			Kind:  host.KindCommitCreate,
			Scope: &host.WireScope{Kind: "workspace"},
			Title: "orphan",
		})
		assert.Empty(t, f.messages(host.KindStateUpdate))
	})
}

func TestOrchestratorStartCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("explicit scope posts inline create", func(t *testing.T) {
		f := newOrchFixture(t)
		scope := todo.WorkspaceTarget("/home/dev/project")

		f.orch.StartCreate(ctx, &scope)

		msgs := f.messages(host.KindStartInlineCreate)
		require.Len(t, msgs, 1)
		require.NotNil(t, msgs[0].Scope)
		assert.Equal(t, "workspace", msgs[0].Scope.Kind)
		assert.Equal(t, "/home/dev/project", msgs[0].Scope.WorkspaceFolder)
	})

	t.Run("no open folders defaults to global", func(t *testing.T) {
		f := newOrchFixture(t)

		f.orch.StartCreate(ctx, nil)

		msgs := f.messages(host.KindStartInlineCreate)
		require.Len(t, msgs, 1)
		assert.Equal(t, "global", msgs[0].Scope.Kind)
	})

	t.Run("cancelled picker posts nothing", func(t *testing.T) {
		f := newOrchFixture(t, "/home/dev/project")
		f.prompter.pickOK = false

		f.orch.StartCreate(ctx, nil)
		assert.Empty(t, f.messages(host.KindStartInlineCreate))
	})

	t.Run("picked folder becomes the workspace scope", func(t *testing.T) {
		f := newOrchFixture(t, "/home/dev/project")
		f.prompter.pickValue = "/home/dev/project"
		f.prompter.pickOK = true

		f.orch.StartCreate(ctx, nil)

		msgs := f.messages(host.KindStartInlineCreate)
		require.Len(t, msgs, 1)
		assert.Equal(t, "/home/dev/project", msgs[0].Scope.WorkspaceFolder)
	})
}

func TestOrchestratorBroadcast(t *testing.T) {
	ctx := context.Background()
	f := newOrchFixture(t, "/home/dev/project")

	require.NoError(t, f.orch.Add(ctx, todo.GlobalTarget(), "global task"))
	require.NoError(t, f.orch.Add(ctx, todo.WorkspaceTarget("/home/dev/project"), "workspace task"))

	state := f.lastState()
	require.NotNil(t, state)
	require.Len(t, state.Global, 1)
	require.Len(t, state.Workspaces["/home/dev/project"], 1)
	assert.Equal(t, "workspace task", state.Workspaces["/home/dev/project"][0].Title)
}
