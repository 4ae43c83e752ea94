package eventbus

import (
	"github.com/taskdock/taskdock/internal/core/todo"
)

// Event names, one constant per typed Publish/Subscribe pair.
const (
	// Keep list sorted A-Z
	EventConfigReloaded Event = "config.reloaded"
	EventScopeCleared   Event = "scope.cleared"
	EventTodoCompleted  Event = "todo.completed"
	EventTodoCreated    Event = "todo.created"
	EventTodoRemoved    Event = "todo.removed"
	EventTodoRestored   Event = "todo.restored"
)

// TodoCreatedPayload is emitted when a new todo item is created.
type TodoCreatedPayload struct {
	Item todo.Todo
}

// TodoCompletedPayload is emitted when a todo is toggled to completed.
type TodoCompletedPayload struct {
	Item todo.Todo
}

// TodoRemovedPayload is emitted when a todo is removed. Auto is true when
// the removal came from the auto-delete timer rather than a user action.
type TodoRemovedPayload struct {
	Item todo.Todo
	Auto bool
}

// TodoRestoredPayload is emitted when an undo restores a scope's list.
type TodoRestoredPayload struct {
	Scope todo.ScopeTarget
	Count int
}

// ScopeClearedPayload is emitted when an entire scope is cleared.
type ScopeClearedPayload struct {
	Scope todo.ScopeTarget
	Count int
}

// ConfigReloadedPayload is emitted when configuration is reloaded from disk.
type ConfigReloadedPayload struct{}

// PublishTodoCreated enqueues a todo.created event.
func (bus *EventBus) PublishTodoCreated(p TodoCreatedPayload) {
	bus.send(EventTodoCreated, p)
}

// SubscribeTodoCreated registers a subscriber for todo.created.
func (bus *EventBus) SubscribeTodoCreated(fn func(TodoCreatedPayload)) {
	bus.subscribe(EventTodoCreated, func(v any) { fn(v.(TodoCreatedPayload)) })
}

// PublishTodoCompleted enqueues a todo.completed event.
func (bus *EventBus) PublishTodoCompleted(p TodoCompletedPayload) {
	bus.send(EventTodoCompleted, p)
}

// SubscribeTodoCompleted registers a subscriber for todo.completed.
func (bus *EventBus) SubscribeTodoCompleted(fn func(TodoCompletedPayload)) {
	bus.subscribe(EventTodoCompleted, func(v any) { fn(v.(TodoCompletedPayload)) })
}

// PublishTodoRemoved enqueues a todo.removed event.
func (bus *EventBus) PublishTodoRemoved(p TodoRemovedPayload) {
	bus.send(EventTodoRemoved, p)
}

// SubscribeTodoRemoved registers a subscriber for todo.removed.
func (bus *EventBus) SubscribeTodoRemoved(fn func(TodoRemovedPayload)) {
	bus.subscribe(EventTodoRemoved, func(v any) { fn(v.(TodoRemovedPayload)) })
}

// PublishTodoRestored enqueues a todo.restored event.
func (bus *EventBus) PublishTodoRestored(p TodoRestoredPayload) {
	bus.send(EventTodoRestored, p)
}

// SubscribeTodoRestored registers a subscriber for todo.restored.
func (bus *EventBus) SubscribeTodoRestored(fn func(TodoRestoredPayload)) {
	bus.subscribe(EventTodoRestored, func(v any) { fn(v.(TodoRestoredPayload)) })
}

// PublishScopeCleared enqueues a scope.cleared event.
func (bus *EventBus) PublishScopeCleared(p ScopeClearedPayload) {
	bus.send(EventScopeCleared, p)
}

// SubscribeScopeCleared registers a subscriber for scope.cleared.
func (bus *EventBus) SubscribeScopeCleared(fn func(ScopeClearedPayload)) {
	bus.subscribe(EventScopeCleared, func(v any) { fn(v.(ScopeClearedPayload)) })
}

// PublishConfigReloaded enqueues a config.reloaded event.
func (bus *EventBus) PublishConfigReloaded(p ConfigReloadedPayload) {
	bus.send(EventConfigReloaded, p)
}

// SubscribeConfigReloaded registers a subscriber for config.reloaded.
func (bus *EventBus) SubscribeConfigReloaded(fn func(ConfigReloadedPayload)) {
	bus.subscribe(EventConfigReloaded, func(v any) { fn(v.(ConfigReloadedPayload)) })
}
