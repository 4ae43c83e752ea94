package taskdock

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskdock/taskdock/internal/core/config"
	"github.com/taskdock/taskdock/internal/core/eventbus"
	"github.com/taskdock/taskdock/internal/core/todo"
	"github.com/taskdock/taskdock/internal/host"
)

// Orchestrator is the command and message handling layer: it resolves what
// a user action targets, applies the mutation through the repository, keeps
// the auto-delete coordinator and undo snapshots in sync, and broadcasts
// fresh state to the panel UI.
//
// Read-mutate-persist sequences are not atomic across prompt awaits; an
// interleaved mutation on the same scope wins last-write. See the package
// tests for the exact guarantees.
type Orchestrator struct {
	repo       *Repository
	coord      *Coordinator
	cfg        func() *config.Config
	promptMu   sync.RWMutex
	prompter   host.Prompter
	ui         host.UIHost
	workspaces host.Workspaces
	bus        *eventbus.EventBus
	log        zerolog.Logger

	unsubscribe func()
	undoWG      sync.WaitGroup
}

// NewOrchestrator wires the mutation layer. The auto-delete coordinator is
// owned by the orchestrator since its deletions re-enter the mutation path.
func NewOrchestrator(
	repo *Repository,
	cfg func() *config.Config,
	prompter host.Prompter,
	ui host.UIHost,
	workspaces host.Workspaces,
	bus *eventbus.EventBus,
	log zerolog.Logger,
) *Orchestrator {
	o := &Orchestrator{
		repo:       repo,
		cfg:        cfg,
		prompter:   prompter,
		ui:         ui,
		workspaces: workspaces,
		bus:        bus,
		log:        log.With().Str("cmp", "orchestrator").Logger(),
	}
	o.coord = NewCoordinator(cfg, o.removeAuto, o.postCue, log)
	return o
}

// SetPrompter swaps the prompt surface. The TUI installs its own prompter
// while the panel is open so prompts render as toasts instead of forms.
func (o *Orchestrator) SetPrompter(p host.Prompter) {
	o.promptMu.Lock()
	defer o.promptMu.Unlock()
	o.prompter = p
}

func (o *Orchestrator) prompt() host.Prompter {
	o.promptMu.RLock()
	defer o.promptMu.RUnlock()
	return o.prompter
}

// Start subscribes to inbound UI messages. Called once at startup.
func (o *Orchestrator) Start() {
	o.unsubscribe = o.ui.Subscribe(o.HandleMessage)
}

// Close unsubscribes from the UI and tears down all timers.
func (o *Orchestrator) Close() {
	if o.unsubscribe != nil {
		o.unsubscribe()
		o.unsubscribe = nil
	}
	o.coord.Close()
	o.repo.Close()
}

// WaitUndo blocks until pending undo offers conclude. One-shot surfaces
// call this before exiting so the notification can still be acted on.
func (o *Orchestrator) WaitUndo() {
	o.undoWG.Wait()
}

// AutoDelete exposes the coordinator for surfaces that need to inspect
// timer state (and for tests).
func (o *Orchestrator) AutoDelete() *Coordinator {
	return o.coord
}

// StartCreate resolves a scope and asks the panel to open its inline create
// field. A cancelled picker is a silent no-op.
func (o *Orchestrator) StartCreate(ctx context.Context, explicit *todo.ScopeTarget) {
	scope, ok := o.resolveScope(ctx, explicit)
	if !ok {
		return
	}
	o.ui.PostMessage(host.Outbound{Kind: host.KindStartInlineCreate, Scope: host.ScopeOf(scope)})
}

// StartEdit asks the panel to open inline editing for a todo.
func (o *Orchestrator) StartEdit(ctx context.Context, target todo.TodoTarget) {
	if !target.Valid() || target.TodoID == "" {
		return
	}
	o.ui.PostMessage(host.Outbound{
		Kind:   host.KindStartInlineEdit,
		Scope:  host.ScopeOf(target.ScopeTarget),
		TodoID: target.TodoID,
	})
}

// Add creates a todo at the end of the scope's list. Blank titles are
// rejected silently.
func (o *Orchestrator) Add(ctx context.Context, scope todo.ScopeTarget, title string) error {
	if !scope.Valid() || strings.TrimSpace(title) == "" {
		return nil
	}

	todos, err := o.repo.Todos(ctx, scope)
	if err != nil {
		return err
	}

	item := o.repo.CreateTodo(title, scope)
	todos = append(todos, item)
	todo.NormalizePositions(todos)

	if err := o.repo.SaveTodos(ctx, scope, todos); err != nil {
		return err
	}

	o.bus.PublishTodoCreated(eventbus.TodoCreatedPayload{Item: item})
	o.Broadcast(ctx)
	return nil
}

// Edit replaces a todo's title. Blank titles and unknown ids are silent
// no-ops.
func (o *Orchestrator) Edit(ctx context.Context, target todo.TodoTarget, title string) error {
	title = strings.TrimSpace(title)
	if !target.Valid() || title == "" {
		return nil
	}

	todos, err := o.repo.Todos(ctx, target.ScopeTarget)
	if err != nil {
		return err
	}

	i := indexOf(todos, target.TodoID)
	if i < 0 {
		return nil
	}

	todos[i].Title = title
	todos[i].UpdatedAt = time.Now()
	todo.NormalizePositions(todos)

	if err := o.repo.SaveTodos(ctx, target.ScopeTarget, todos); err != nil {
		return err
	}

	o.Broadcast(ctx)
	return nil
}

// ToggleComplete flips a todo's completed flag. Completion schedules the
// auto-delete timer; reopening cancels it.
func (o *Orchestrator) ToggleComplete(ctx context.Context, target todo.TodoTarget) error {
	if !target.Valid() {
		return nil
	}

	todos, err := o.repo.Todos(ctx, target.ScopeTarget)
	if err != nil {
		return err
	}

	i := indexOf(todos, target.TodoID)
	if i < 0 {
		return nil
	}

	todos[i].Completed = !todos[i].Completed
	todos[i].UpdatedAt = time.Now()
	item := todos[i]
	todo.NormalizePositions(todos)

	if err := o.repo.SaveTodos(ctx, target.ScopeTarget, todos); err != nil {
		return err
	}

	if item.Completed {
		o.coord.Schedule(target)
		o.bus.PublishTodoCompleted(eventbus.TodoCompletedPayload{Item: item})
	} else {
		o.coord.Cancel(target)
	}

	o.Broadcast(ctx)
	return nil
}

// RemoveWithUndo removes a todo and offers a bounded undo opportunity. The
// pre-removal list is snapshotted; the snapshot expires after its TTL if
// the user never accepts.
func (o *Orchestrator) RemoveWithUndo(ctx context.Context, target todo.TodoTarget) error {
	if !target.Valid() {
		return nil
	}

	todos, err := o.repo.Todos(ctx, target.ScopeTarget)
	if err != nil {
		return err
	}

	i := indexOf(todos, target.TodoID)
	if i < 0 {
		return nil
	}
	removed := todos[i]

	key := o.repo.ScopeKey(target.ScopeTarget)
	o.repo.CaptureSnapshot(key, todos)

	todos = append(todos[:i], todos[i+1:]...)
	todo.NormalizePositions(todos)

	if err := o.repo.SaveTodos(ctx, target.ScopeTarget, todos); err != nil {
		// The mutation never happened; drop the stale snapshot.
		o.repo.ConsumeSnapshot(key)
		return err
	}

	o.coord.Cancel(target)
	o.bus.PublishTodoRemoved(eventbus.TodoRemovedPayload{Item: removed})
	o.Broadcast(ctx)

	o.undoWG.Add(1)
	go o.offerUndo(target.ScopeTarget, fmt.Sprintf("Removed %q", removed.Title))
	return nil
}

// ClearScope empties an entire scope after optional confirmation, with the
// same undo opportunity as a single removal.
func (o *Orchestrator) ClearScope(ctx context.Context, scope todo.ScopeTarget) error {
	if !scope.Valid() {
		return nil
	}

	todos, err := o.repo.Todos(ctx, scope)
	if err != nil {
		return err
	}

	if len(todos) == 0 {
		o.prompt().Notify(ctx, "No todos to clear", "")
		return nil
	}

	if len(todos) > 1 && o.cfg().ConfirmDestructive {
		message := fmt.Sprintf("Clear all %d todos?", len(todos))
		if !o.prompt().Confirm(ctx, message, "Clear") {
			return nil
		}
	}

	key := o.repo.ScopeKey(scope)
	o.repo.CaptureSnapshot(key, todos)
	o.coord.CancelScope(scope, todos)

	if err := o.repo.SaveTodos(ctx, scope, []todo.Todo{}); err != nil {
		o.repo.ConsumeSnapshot(key)
		return err
	}

	o.bus.PublishScopeCleared(eventbus.ScopeClearedPayload{Scope: scope, Count: len(todos)})
	o.Broadcast(ctx)

	o.undoWG.Add(1)
	go o.offerUndo(scope, fmt.Sprintf("Cleared %d todos", len(todos)))
	return nil
}

// Undo restores the scope's snapshot if one is still consumable.
func (o *Orchestrator) Undo(ctx context.Context, scope todo.ScopeTarget) error {
	if !scope.Valid() {
		return nil
	}

	restored, ok := o.repo.ConsumeSnapshot(o.repo.ScopeKey(scope))
	if !ok {
		return nil
	}

	todo.NormalizePositions(restored)
	if err := o.repo.SaveTodos(ctx, scope, restored); err != nil {
		return err
	}

	o.bus.PublishTodoRestored(eventbus.TodoRestoredPayload{Scope: scope, Count: len(restored)})
	o.Broadcast(ctx)
	return nil
}

// Reorder applies an explicit id ordering to the scope's list.
func (o *Orchestrator) Reorder(ctx context.Context, scope todo.ScopeTarget, order []string) error {
	if !scope.Valid() || len(order) == 0 {
		return nil
	}

	todos, err := o.repo.Todos(ctx, scope)
	if err != nil {
		return err
	}

	if !todo.ReorderByOrder(todos, order) {
		return nil
	}

	if err := o.repo.SaveTodos(ctx, scope, todos); err != nil {
		return err
	}

	o.Broadcast(ctx)
	return nil
}

// HandleMessage dispatches one inbound UI message. Malformed messages are
// dropped; storage failures are logged and surfaced as a generic notice,
// never as a crash of the message loop.
func (o *Orchestrator) HandleMessage(msg host.Inbound) {
	ctx := context.Background()

	if msg.Kind == host.KindWebviewReady {
		o.Broadcast(ctx)
		return
	}

	scope, ok := ResolveWireScope(msg.Scope)
	if !ok {
		o.log.Debug().Str("kind", msg.Kind).Msg("dropping message with unresolvable scope")
		return
	}

	var err error
	switch msg.Kind {
	case host.KindCommitCreate:
		err = o.Add(ctx, scope, msg.Title)
	case host.KindCommitEdit:
		err = o.Edit(ctx, todo.TodoTarget{ScopeTarget: scope, TodoID: msg.TodoID}, msg.Title)
	case host.KindToggleComplete:
		err = o.ToggleComplete(ctx, todo.TodoTarget{ScopeTarget: scope, TodoID: msg.TodoID})
	case host.KindRemoveTodo:
		err = o.RemoveWithUndo(ctx, todo.TodoTarget{ScopeTarget: scope, TodoID: msg.TodoID})
	case host.KindReorderTodos:
		err = o.Reorder(ctx, scope, msg.Order)
	case host.KindClearScope:
		err = o.ClearScope(ctx, scope)
	default:
		o.log.Debug().Str("kind", msg.Kind).Msg("unknown message kind")
		return
	}

	if err != nil {
		o.log.Error().Err(err).Str("kind", msg.Kind).Msg("mutation failed")
		o.prompt().Notify(ctx, "Updating todos failed", "")
	}
}

// Broadcast posts the full state snapshot to the panel UI.
func (o *Orchestrator) Broadcast(ctx context.Context) {
	payload := host.StatePayload{Workspaces: make(map[string][]todo.Todo)}

	global, err := o.repo.Todos(ctx, todo.GlobalTarget())
	if err != nil {
		o.log.Error().Err(err).Msg("broadcast: loading global scope failed")
		return
	}
	payload.Global = global

	for _, folder := range o.openFolders() {
		todos, err := o.repo.Todos(ctx, todo.WorkspaceTarget(folder))
		if err != nil {
			o.log.Error().Err(err).Str("folder", folder).Msg("broadcast: loading workspace scope failed")
			continue
		}
		payload.Workspaces[folder] = todos
	}

	o.ui.PostMessage(host.Outbound{Kind: host.KindStateUpdate, Payload: &payload})
}

// removeAuto is the coordinator's deletion callback: remove without undo.
func (o *Orchestrator) removeAuto(ctx context.Context, target todo.TodoTarget) error {
	todos, err := o.repo.Todos(ctx, target.ScopeTarget)
	if err != nil {
		return err
	}

	i := indexOf(todos, target.TodoID)
	if i < 0 {
		return nil
	}
	removed := todos[i]

	todos = append(todos[:i], todos[i+1:]...)
	todo.NormalizePositions(todos)

	if err := o.repo.SaveTodos(ctx, target.ScopeTarget, todos); err != nil {
		return err
	}

	o.bus.PublishTodoRemoved(eventbus.TodoRemovedPayload{Item: removed, Auto: true})
	o.Broadcast(ctx)
	return nil
}

// postCue forwards the coordinator's fade cue onto the UI channel.
func (o *Orchestrator) postCue(target todo.TodoTarget, fade time.Duration) {
	o.ui.PostMessage(host.Outbound{
		Kind:       host.KindAutoDeleteCue,
		Scope:      host.ScopeOf(target.ScopeTarget),
		TodoID:     target.TodoID,
		DurationMs: int(fade.Milliseconds()),
	})
}

// offerUndo surfaces the undo action with a bounded wait. Runs on its own
// goroutine; by the time the user reacts the snapshot may already have
// expired, in which case Undo is a no-op.
func (o *Orchestrator) offerUndo(scope todo.ScopeTarget, message string) {
	defer o.undoWG.Done()

	ctx, cancel := context.WithTimeout(context.Background(), snapshotTTL)
	defer cancel()

	action, ok := o.prompt().Notify(ctx, message, "Undo")
	if !ok || action != "Undo" {
		return
	}

	if err := o.Undo(context.Background(), scope); err != nil {
		o.log.Error().Err(err).Msg("undo failed")
	}
}

func indexOf(todos []todo.Todo, id string) int {
	for i, t := range todos {
		if t.ID == id {
			return i
		}
	}
	return -1
}
