package event

import (
	"sort"
	"sync"
	"time"

	"github.com/guidepost/guidepost/id"
	"github.com/guidepost/guidepost/nav"
)

// Handler receives navigation notifications. Handlers run synchronously
// on the emitting goroutine and must not block.
type Handler func(Notification)

// Bus is an in-process fan-out of navigation notifications. Safe for
// concurrent use. Subscription order is delivery order.
type Bus struct {
	mu       sync.RWMutex
	handlers map[int]Handler
	next     int
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{handlers: make(map[int]Handler)}
}

// Subscribe registers a handler and returns a detach function.
func (b *Bus) Subscribe(h Handler) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	key := b.next
	b.next++
	b.handlers[key] = h

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.handlers, key)
	}
}

// Emit builds a notification for the given state and delivers it to all
// subscribers.
func (b *Bus) Emit(kind Kind, state nav.State) Notification {
	n := Notification{
		ID:    id.NewSignalID(),
		Kind:  kind,
		State: state,
		At:    time.Now().UTC(),
	}

	b.mu.RLock()
	keys := make([]int, 0, len(b.handlers))
	for k := range b.handlers {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	handlers := make([]Handler, 0, len(keys))
	for _, k := range keys {
		handlers = append(handlers, b.handlers[k])
	}
	b.mu.RUnlock()

	for _, h := range handlers {
		h(n)
	}
	return n
}

// Close detaches all subscribers.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers = make(map[int]Handler)
}

// Len returns the number of active subscribers.
func (b *Bus) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.handlers)
}
