package host

import "sync"

// MessageBus is an in-process UIHost: the panel dispatches inbound messages
// with Dispatch and observes outbound ones with OnOutbound. Both directions
// use explicit subscriptions with unsubscribe functions, so no component
// holds ambient global callbacks.
type MessageBus struct {
	mu       sync.Mutex
	nextID   int
	inbound  map[int]func(Inbound)
	outbound map[int]func(Outbound)
}

var _ UIHost = (*MessageBus)(nil)

// NewMessageBus creates an empty bus.
func NewMessageBus() *MessageBus {
	return &MessageBus{
		inbound:  make(map[int]func(Inbound)),
		outbound: make(map[int]func(Outbound)),
	}
}

// PostMessage delivers an outbound message to all attached UI observers.
func (b *MessageBus) PostMessage(msg Outbound) {
	for _, fn := range b.snapshotOutbound() {
		fn(msg)
	}
}

// Subscribe registers an observer for inbound UI messages.
func (b *MessageBus) Subscribe(fn func(Inbound)) (unsubscribe func()) {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.inbound[id] = fn
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		delete(b.inbound, id)
		b.mu.Unlock()
	}
}

// Dispatch delivers an inbound message from the UI to all subscribers.
func (b *MessageBus) Dispatch(msg Inbound) {
	b.mu.Lock()
	subs := make([]func(Inbound), 0, len(b.inbound))
	for _, fn := range b.inbound {
		subs = append(subs, fn)
	}
	b.mu.Unlock()

	for _, fn := range subs {
		fn(msg)
	}
}

// OnOutbound registers a UI-side observer for outbound messages.
func (b *MessageBus) OnOutbound(fn func(Outbound)) (unsubscribe func()) {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.outbound[id] = fn
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		delete(b.outbound, id)
		b.mu.Unlock()
	}
}

func (b *MessageBus) snapshotOutbound() []func(Outbound) {
	b.mu.Lock()
	defer b.mu.Unlock()
	subs := make([]func(Outbound), 0, len(b.outbound))
	for _, fn := range b.outbound {
		subs = append(subs, fn)
	}
	return subs
}
