// Package eventbus provides a typed publish/subscribe event bus for
// cross-component communication within taskdock.
package eventbus

import (
	"context"
	"sync"
)

// DefaultBuffer is the channel depth used by the application wiring.
const DefaultBuffer = 64

// Event names a domain event type.
type Event string

type envelope struct {
	event   Event
	payload any
}

// EventBus dispatches typed events to subscribers from a single goroutine.
// Publishing is non-blocking: events are dropped (and the OnDrop hook fired)
// when the buffer is full.
type EventBus struct {
	ch chan envelope

	mu          sync.RWMutex
	subscribers map[Event][]func(any)

	hookMu    sync.RWMutex
	onPublish []func(Event, any)
	onDrop    []func(Event, any)
	onPanic   []func(Event, any, any)
}

// New creates an event bus with the given buffer size.
func New(buffer int) *EventBus {
	return &EventBus{
		ch:          make(chan envelope, buffer),
		subscribers: make(map[Event][]func(any)),
	}
}

// Start runs the dispatch loop until ctx is cancelled. Subscriber panics are
// recovered and reported through the OnPanic hook so one bad subscriber
// cannot take the process down.
func (bus *EventBus) Start(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case env := <-bus.ch:
			bus.dispatch(env)
		}
	}
}

// OnPublish registers a hook fired after an event is successfully enqueued.
func (bus *EventBus) OnPublish(fn func(Event, any)) {
	bus.hookMu.Lock()
	bus.onPublish = append(bus.onPublish, fn)
	bus.hookMu.Unlock()
}

// OnDrop registers a hook fired when an event is dropped due to a full buffer.
func (bus *EventBus) OnDrop(fn func(Event, any)) {
	bus.hookMu.Lock()
	bus.onDrop = append(bus.onDrop, fn)
	bus.hookMu.Unlock()
}

// OnPanic registers a hook fired when a subscriber panics.
func (bus *EventBus) OnPanic(fn func(Event, any, any)) {
	bus.hookMu.Lock()
	bus.onPanic = append(bus.onPanic, fn)
	bus.hookMu.Unlock()
}

func (bus *EventBus) subscribe(event Event, fn func(any)) {
	bus.mu.Lock()
	bus.subscribers[event] = append(bus.subscribers[event], fn)
	bus.mu.Unlock()
}

func (bus *EventBus) send(event Event, payload any) {
	select {
	case bus.ch <- envelope{event: event, payload: payload}:
		bus.hookMu.RLock()
		hooks := make([]func(Event, any), len(bus.onPublish))
		copy(hooks, bus.onPublish)
		bus.hookMu.RUnlock()
		for _, fn := range hooks {
			fn(event, payload)
		}
	default:
		bus.hookMu.RLock()
		hooks := make([]func(Event, any), len(bus.onDrop))
		copy(hooks, bus.onDrop)
		bus.hookMu.RUnlock()
		for _, fn := range hooks {
			fn(event, payload)
		}
	}
}

func (bus *EventBus) dispatch(env envelope) {
	bus.mu.RLock()
	subs := make([]func(any), len(bus.subscribers[env.event]))
	copy(subs, bus.subscribers[env.event])
	bus.mu.RUnlock()

	for _, fn := range subs {
		bus.call(env, fn)
	}
}

func (bus *EventBus) call(env envelope, fn func(any)) {
	defer func() {
		if r := recover(); r != nil {
			bus.hookMu.RLock()
			hooks := make([]func(Event, any, any), len(bus.onPanic))
			copy(hooks, bus.onPanic)
			bus.hookMu.RUnlock()
			for _, hook := range hooks {
				hook(env.event, env.payload, r)
			}
		}
	}()
	fn(env.payload)
}
