package event

import (
	"reflect"
	"sync"
)

type queued struct {
	typ reflect.Type
	ev  any
}

// Bus is a double-buffered event bus. Events emitted in tick N are readable
// in tick N+1. SwapBuffers() is called at tick start by the dispatch system,
// then DispatchAll delivers the front buffer in emit order.
type Bus struct {
	mu       sync.Mutex // only protects handler registration
	front    []queued
	back     []queued
	handlers map[reflect.Type][]func(any)
}

func NewBus() *Bus {
	return &Bus{
		front:    make([]queued, 0, 64),
		back:     make([]queued, 0, 64),
		handlers: make(map[reflect.Type][]func(any)),
	}
}

// Emit queues an event into the back buffer (will be readable next tick).
func Emit[T any](b *Bus, event T) {
	b.back = append(b.back, queued{typ: reflect.TypeFor[T](), ev: event})
}

// Subscribe registers a typed handler for events of type T. The handler is
// matched on the exact type parameter used by Emit.
func Subscribe[T any](b *Bus, fn func(T)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	t := reflect.TypeFor[T]()
	b.handlers[t] = append(b.handlers[t], func(ev any) { fn(ev.(T)) })
}

// SwapBuffers rotates back→front and clears the new back buffer.
// Called once at tick start.
func (b *Bus) SwapBuffers() {
	b.front, b.back = b.back, b.front
	clear(b.back)
	b.back = b.back[:0]
}

// DispatchAll delivers all front-buffer events to their subscribed handlers
// in the order they were emitted.
func (b *Bus) DispatchAll() {
	for _, q := range b.front {
		for _, h := range b.handlers[q.typ] {
			h(q.ev)
		}
	}
}

// Pending returns the number of events waiting in the back buffer.
func (b *Bus) Pending() int { return len(b.back) }
