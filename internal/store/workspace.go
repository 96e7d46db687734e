package store

import (
	"errors"
	"time"

	"github.com/hy4ri/integral/internal/storage"
	"go.uber.org/zap"
)

// Workspace is the application state: one bus and one store per collection,
// created at startup and flushed on shutdown.
type Workspace struct {
	Backend storage.Backend
	Bus     *Bus
	Events  *EventStore
	Tasks   *TaskStore
	log     *zap.Logger
}

// Open builds a Workspace over backend. now may be nil to use time.Now.
func Open(backend storage.Backend, now func() time.Time, log *zap.Logger) *Workspace {
	if log == nil {
		log = zap.NewNop()
	}
	bus := NewBus()
	return &Workspace{
		Backend: backend,
		Bus:     bus,
		Events:  NewEventStore(backend, bus, log.Named("events")),
		Tasks:   NewTaskStore(backend, bus, now, log.Named("tasks")),
		log:     log,
	}
}

// Close flushes both collections and closes the backend.
func (w *Workspace) Close() error {
	var errs []error
	if err := w.Events.Flush(); err != nil {
		errs = append(errs, err)
	}
	if err := w.Tasks.Flush(); err != nil {
		errs = append(errs, err)
	}
	if err := w.Backend.Close(); err != nil {
		errs = append(errs, err)
	}
	if err := errors.Join(errs...); err != nil {
		w.log.Error("workspace shutdown incomplete", zap.Error(err))
		return err
	}
	return nil
}
