package store

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hy4ri/integral/internal/datekey"
	"github.com/hy4ri/integral/internal/model"
	"github.com/hy4ri/integral/internal/storage"
	"go.uber.org/zap"
)

// TaskStore is the single source of truth for board tasks.
type TaskStore struct {
	mu      sync.RWMutex
	tasks   []model.Task
	backend storage.Backend
	bus     *Bus
	log     *zap.Logger
	now     func() time.Time
	newID   func() string
}

// NewTaskStore loads tasks from backend, falling back to the seed set.
// now supplies the wall clock used for completion dates and stats.
func NewTaskStore(backend storage.Backend, bus *Bus, now func() time.Time, log *zap.Logger) *TaskStore {
	if log == nil {
		log = zap.NewNop()
	}
	if now == nil {
		now = time.Now
	}
	s := &TaskStore{
		backend: backend,
		bus:     bus,
		log:     log,
		now:     now,
		newID:   func() string { return "task-" + uuid.NewString() },
	}

	var stored []model.Task
	_, err := storage.Load(backend, storage.KeyTasks, &stored)
	switch {
	case err == nil:
		s.tasks = stored
	case errors.Is(err, storage.ErrNotFound):
		s.tasks = SeedTasks(datekey.Today(now()))
	default:
		log.Warn("stored tasks are unreadable, using seed data", zap.Error(err))
		s.tasks = SeedTasks(datekey.Today(now()))
	}
	if s.tasks == nil {
		s.tasks = []model.Task{}
	}

	bus.Publish(Change{Collection: CollectionTasks, Op: OpLoad})
	return s
}

// All returns a copy of every task, newest first.
func (s *TaskStore) All() []model.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Task, len(s.tasks))
	for i, t := range s.tasks {
		out[i] = t.Clone()
	}
	return out
}

// ByCategory returns the tasks in category, in board order.
func (s *TaskStore) ByCategory(category string) []model.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.Task
	for _, t := range s.tasks {
		if t.Category == category {
			out = append(out, t.Clone())
		}
	}
	return out
}

// Get returns the task with id.
func (s *TaskStore) Get(id string) (model.Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.tasks {
		if t.ID == id {
			return t.Clone(), true
		}
	}
	return model.Task{}, false
}

// Add assigns a fresh ID and puts the task at the top of the board.
func (s *TaskStore) Add(draft model.TaskDraft) model.Task {
	s.mu.Lock()
	task := draft.WithID(s.newID())
	if task.Completed {
		today := datekey.Today(s.now())
		task.CompletedDate = &today
	}
	s.tasks = append([]model.Task{task}, s.tasks...)
	s.persistLocked()
	s.mu.Unlock()

	s.bus.Publish(Change{Collection: CollectionTasks, Op: OpAdd, ID: task.ID})
	return task.Clone()
}

// Update merges patch into the task with id. A change of Completed sets or
// clears CompletedDate. Reports false when id is unknown.
func (s *TaskStore) Update(id string, patch model.TaskPatch) (model.Task, bool) {
	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return model.Task{}, false
	}
	task := &s.tasks[idx]
	wasCompleted := task.Completed
	patch.Apply(task)
	if task.Completed != wasCompleted {
		s.stampCompletion(task)
	}
	updated := task.Clone()
	s.persistLocked()
	s.mu.Unlock()

	s.bus.Publish(Change{Collection: CollectionTasks, Op: OpUpdate, ID: id})
	return updated, true
}

// Toggle flips the completion state of the task with id.
func (s *TaskStore) Toggle(id string) (model.Task, bool) {
	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return model.Task{}, false
	}
	task := &s.tasks[idx]
	task.Completed = !task.Completed
	s.stampCompletion(task)
	updated := task.Clone()
	s.persistLocked()
	s.mu.Unlock()

	s.bus.Publish(Change{Collection: CollectionTasks, Op: OpUpdate, ID: id})
	return updated, true
}

// Delete removes the task with id. Unknown IDs are ignored.
func (s *TaskStore) Delete(id string) {
	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx >= 0 {
		s.tasks = append(s.tasks[:idx], s.tasks[idx+1:]...)
	}
	s.persistLocked()
	s.mu.Unlock()

	s.bus.Publish(Change{Collection: CollectionTasks, Op: OpDelete, ID: id})
}

// Stats counts active tasks, tasks completed today and the assigned and
// received buckets. "Today" is read from the clock on every call.
func (s *TaskStore) Stats() model.TaskStats {
	today := datekey.Today(s.now())

	s.mu.RLock()
	defer s.mu.RUnlock()
	var st model.TaskStats
	for _, t := range s.tasks {
		if !t.Completed {
			st.ActiveTasks++
		}
		if t.Completed && t.CompletedDate != nil && *t.CompletedDate == today {
			st.CompletedToday++
		}
		switch t.Category {
		case model.CategoryAssigned:
			st.TasksAssigned++
		case model.CategoryReceived:
			st.TasksReceived++
		}
	}
	return st
}

// Mirror builds a calendar event draft from a task with a due date and
// marks the task as added to the calendar. The event is not linked back to
// the task: later edits to either side are not propagated.
func (s *TaskStore) Mirror(id string) (model.EventDraft, bool) {
	task, ok := s.Get(id)
	if !ok || task.DueDate == nil {
		return model.EventDraft{}, false
	}

	added := true
	s.Update(id, model.TaskPatch{AddedToCalendar: &added})

	completed := task.Completed
	return model.EventDraft{
		Title:     task.Text,
		Date:      *task.DueDate,
		Type:      model.EventTask,
		Completed: &completed,
		Priority:  task.Priority,
	}, true
}

// Flush writes the full collection to the backend.
func (s *TaskStore) Flush() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return storage.Save(s.backend, storage.KeyTasks, s.tasks)
}

func (s *TaskStore) stampCompletion(task *model.Task) {
	if task.Completed {
		today := datekey.Today(s.now())
		task.CompletedDate = &today
	} else {
		task.CompletedDate = nil
	}
}

func (s *TaskStore) indexLocked(id string) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *TaskStore) persistLocked() {
	if err := storage.Save(s.backend, storage.KeyTasks, s.tasks); err != nil {
		s.log.Error("failed to persist tasks", zap.Error(err))
	}
}
