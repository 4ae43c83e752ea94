package eventbus

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskdock/taskdock/internal/core/todo"
)

func startBus(t *testing.T, buffer int) *EventBus {
	t.Helper()
	bus := New(buffer)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go bus.Start(ctx)
	return bus
}

func TestEventBus_PublishSubscribe(t *testing.T) {
	bus := startBus(t, 8)

	var got atomic.Value
	bus.SubscribeTodoCreated(func(p TodoCreatedPayload) {
		got.Store(p.Item.ID)
	})

	bus.PublishTodoCreated(TodoCreatedPayload{Item: todo.Todo{ID: "abc"}})

	require.Eventually(t, func() bool {
		v, ok := got.Load().(string)
		return ok && v == "abc"
	}, time.Second, 5*time.Millisecond)
}

func TestEventBus_DropsWhenFull(t *testing.T) {
	// No Start loop, so the single-slot buffer fills immediately.
	bus := New(1)

	var dropped atomic.Int32
	bus.OnDrop(func(Event, any) { dropped.Add(1) })

	bus.PublishScopeCleared(ScopeClearedPayload{})
	bus.PublishScopeCleared(ScopeClearedPayload{})

	assert.Equal(t, int32(1), dropped.Load())
}

func TestEventBus_PanicRecovery(t *testing.T) {
	bus := startBus(t, 8)

	var panicked atomic.Int32
	bus.OnPanic(func(Event, any, any) { panicked.Add(1) })

	bus.SubscribeTodoRemoved(func(TodoRemovedPayload) { panic("boom") })

	var delivered atomic.Int32
	bus.SubscribeTodoRemoved(func(TodoRemovedPayload) { delivered.Add(1) })

	bus.PublishTodoRemoved(TodoRemovedPayload{})

	require.Eventually(t, func() bool {
		return panicked.Load() == 1 && delivered.Load() == 1
	}, time.Second, 5*time.Millisecond)
}
