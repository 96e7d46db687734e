// Package store owns the event and task collections, mirrors them to
// storage after every mutation and notifies subscribers of changes.
package store

import "sync"

// Collection names the store a Change came from.
type Collection string

const (
	CollectionEvents Collection = "events"
	CollectionTasks  Collection = "tasks"
)

// Op is the kind of mutation.
type Op string

const (
	OpLoad   Op = "load"
	OpAdd    Op = "add"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

// Change describes one mutation.
type Change struct {
	Collection Collection
	Op         Op
	ID         string
}

// Bus fans changes out to subscribers. Handlers run synchronously on the
// publishing goroutine and must not call back into the publishing store.
type Bus struct {
	mu     sync.RWMutex
	nextID int
	subs   map[int]func(Change)
}

// NewBus returns a Bus with no subscribers.
func NewBus() *Bus {
	return &Bus{subs: make(map[int]func(Change))}
}

// Subscribe registers fn and returns a function that removes it.
func (b *Bus) Subscribe(fn func(Change)) (unsubscribe func()) {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.subs[id] = fn
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, id)
			b.mu.Unlock()
		})
	}
}

// Publish delivers c to every subscriber.
func (b *Bus) Publish(c Change) {
	if b == nil {
		return
	}
	b.mu.RLock()
	handlers := make([]func(Change), 0, len(b.subs))
	for _, fn := range b.subs {
		handlers = append(handlers, fn)
	}
	b.mu.RUnlock()

	for _, fn := range handlers {
		fn(c)
	}
}
