package store

import (
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/hy4ri/integral/internal/datekey"
	"github.com/hy4ri/integral/internal/model"
	"github.com/hy4ri/integral/internal/storage"
	"go.uber.org/zap"
)

// EventStore is the single source of truth for calendar events.
type EventStore struct {
	mu      sync.RWMutex
	events  []model.Event
	backend storage.Backend
	bus     *Bus
	log     *zap.Logger
	newID   func() string
}

// NewEventStore loads events from backend, falling back to the built-in
// seed set when the entry is absent or cannot be decoded.
func NewEventStore(backend storage.Backend, bus *Bus, log *zap.Logger) *EventStore {
	if log == nil {
		log = zap.NewNop()
	}
	s := &EventStore{
		backend: backend,
		bus:     bus,
		log:     log,
		newID:   func() string { return "event-" + uuid.NewString() },
	}

	var stored []model.Event
	_, err := storage.Load(backend, storage.KeyEvents, &stored)
	switch {
	case err == nil:
		s.events = stored
	case errors.Is(err, storage.ErrNotFound):
		s.events = SeedEvents()
	default:
		log.Warn("stored events are unreadable, using seed data", zap.Error(err))
		s.events = SeedEvents()
	}
	if s.events == nil {
		s.events = []model.Event{}
	}

	bus.Publish(Change{Collection: CollectionEvents, Op: OpLoad})
	return s
}

// All returns a copy of every event in insertion order.
func (s *EventStore) All() []model.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Event, len(s.events))
	for i, e := range s.events {
		out[i] = e.Clone()
	}
	return out
}

// Len returns the number of events.
func (s *EventStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.events)
}

// Get returns the event with id.
func (s *EventStore) Get(id string) (model.Event, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.events {
		if e.ID == id {
			return e.Clone(), true
		}
	}
	return model.Event{}, false
}

// Add assigns a fresh ID, appends the event and persists. No validation is
// performed here; a blank title is accepted.
func (s *EventStore) Add(draft model.EventDraft) model.Event {
	s.mu.Lock()
	ev := draft.WithID(s.newID())
	s.events = append(s.events, ev)
	s.persistLocked()
	s.mu.Unlock()

	s.bus.Publish(Change{Collection: CollectionEvents, Op: OpAdd, ID: ev.ID})
	return ev.Clone()
}

// Update merges patch into the event with id. It reports false, and
// persists nothing, when no such event exists.
func (s *EventStore) Update(id string, patch model.EventPatch) (model.Event, bool) {
	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return model.Event{}, false
	}
	patch.Apply(&s.events[idx])
	ev := s.events[idx].Clone()
	s.persistLocked()
	s.mu.Unlock()

	s.bus.Publish(Change{Collection: CollectionEvents, Op: OpUpdate, ID: id})
	return ev, true
}

// Delete removes the event with id. Deleting an unknown ID is a no-op.
func (s *EventStore) Delete(id string) {
	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx >= 0 {
		s.events = append(s.events[:idx], s.events[idx+1:]...)
	}
	s.persistLocked()
	s.mu.Unlock()

	s.bus.Publish(Change{Collection: CollectionEvents, Op: OpDelete, ID: id})
}

// ForDate returns the events whose date equals key, in insertion order.
func (s *EventStore) ForDate(key datekey.Key) []model.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.Event
	for _, e := range s.events {
		if e.Date == key {
			out = append(out, e.Clone())
		}
	}
	return out
}

// ForDay is ForDate with a 0-indexed month.
func (s *EventStore) ForDay(day, month0, year int) []model.Event {
	return s.ForDate(datekey.FromDay(day, month0, year))
}

// Between returns events dated from..to inclusive, in insertion order.
func (s *EventStore) Between(from, to datekey.Key) []model.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.Event
	for _, e := range s.events {
		if !e.Date.Before(from) && !e.Date.After(to) {
			out = append(out, e.Clone())
		}
	}
	return out
}

// Flush writes the full collection to the backend.
func (s *EventStore) Flush() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return storage.Save(s.backend, storage.KeyEvents, s.events)
}

func (s *EventStore) indexLocked(id string) int {
	for i := range s.events {
		if s.events[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *EventStore) persistLocked() {
	if err := storage.Save(s.backend, storage.KeyEvents, s.events); err != nil {
		s.log.Error("failed to persist events", zap.Error(err))
	}
}
