package state

import (
	"sort"

	"github.com/hy4ri/integral/internal/calendar"
	"github.com/hy4ri/integral/internal/model"
)

// VisibleEvents returns the filtered events inside the calendar's visible
// range in store insertion order. Month cells take their first events from
// this order.
func (s *State) VisibleEvents() []model.Event {
	if s.Workspace == nil {
		return nil
	}
	from, to := s.Calendar.VisibleRange()
	return calendar.Filter(s.Workspace.Events.Between(from, to), s.Calendar.FilterOptions())
}

// CursorEvents returns the visible events in the order the event cursor
// walks them: by date, then untimed events, then by start time.
func (s *State) CursorEvents() []model.Event {
	events := s.VisibleEvents()
	sort.SliceStable(events, func(i, j int) bool {
		if c := events[i].Date.Compare(events[j].Date); c != 0 {
			return c < 0
		}
		return startMinutes(events[i]) < startMinutes(events[j])
	})
	return events
}

// startMinutes is minutes past midnight, or -1 for events without a
// parsable start time.
func startMinutes(ev model.Event) int {
	h, m, ok := model.ParseClock(ev.StartTime)
	if !ok {
		return -1
	}
	return h*60 + m
}

// SelectedEvent returns the event under the calendar cursor.
func (s *State) SelectedEvent() (model.Event, bool) {
	events := s.CursorEvents()
	if s.EventCursor < 0 || s.EventCursor >= len(events) {
		return model.Event{}, false
	}
	return events[s.EventCursor], true
}

// BoardTasks returns every task grouped by board column: pending, received,
// assigned, then any other category. Order within a column is store order.
func (s *State) BoardTasks() []model.Task {
	if s.Workspace == nil {
		return nil
	}
	tasks := s.Workspace.Tasks.All()
	rank := func(category string) int {
		for i, c := range Categories {
			if c == category {
				return i
			}
		}
		return len(Categories)
	}
	sort.SliceStable(tasks, func(i, j int) bool {
		return rank(tasks[i].Category) < rank(tasks[j].Category)
	})
	return tasks
}

// SelectedTask returns the task under the board cursor.
func (s *State) SelectedTask() (model.Task, bool) {
	tasks := s.BoardTasks()
	if s.TaskCursor < 0 || s.TaskCursor >= len(tasks) {
		return model.Task{}, false
	}
	return tasks[s.TaskCursor], true
}

// ClampCursors keeps both cursors inside their lists after data changes.
func (s *State) ClampCursors() {
	s.EventCursor = clamp(s.EventCursor, len(s.CursorEvents()))
	s.TaskCursor = clamp(s.TaskCursor, len(s.BoardTasks()))
}

func clamp(cursor, n int) int {
	if cursor >= n {
		cursor = n - 1
	}
	if cursor < 0 {
		cursor = 0
	}
	return cursor
}
