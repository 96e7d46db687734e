package store

import (
	"github.com/hy4ri/integral/internal/datekey"
	"github.com/hy4ri/integral/internal/model"
)

// SeedEvents is the starter calendar used on first run or after corruption.
func SeedEvents() []model.Event {
	notDone := false
	return []model.Event{
		{
			ID:          "event1",
			Title:       "Team Meeting",
			Date:        datekey.MustParse("2025-03-15"),
			StartTime:   "10:00",
			EndTime:     "11:00",
			Type:        model.EventMeeting,
			Description: "Weekly team sync",
		},
		{
			ID:          "event2",
			Title:       "Client Call",
			Date:        datekey.MustParse("2025-03-18"),
			StartTime:   "14:00",
			EndTime:     "15:00",
			Type:        model.EventMeeting,
			Description: "Discuss project requirements",
		},
		{
			ID:          "event3",
			Title:       "Prepare Presentation",
			Date:        datekey.MustParse("2025-03-20"),
			StartTime:   "09:00",
			EndTime:     "12:00",
			Type:        model.EventTask,
			Completed:   &notDone,
			Priority:    model.PriorityHigh,
			Description: "Prepare slides for client meeting",
		},
	}
}

// SeedTasks is the starter board. Two of the completed tasks carry today's
// date so the dashboard counters are non-empty on first run.
func SeedTasks(today datekey.Key) []model.Task {
	due := func(s string) *datekey.Key {
		k := datekey.MustParse(s)
		return &k
	}
	todayPtr := func() *datekey.Key {
		k := today
		return &k
	}

	return []model.Task{
		{ID: "task1", Text: "Prepare for client meeting", DueDate: due("2025-03-15"), Priority: model.PriorityHigh, Category: model.CategoryPending, AddedToCalendar: true},
		{ID: "task2", Text: "Send meeting agenda to team", Completed: true, DueDate: due("2025-03-10"), Priority: model.PriorityMedium, Category: model.CategoryPending, AddedToCalendar: true, CompletedDate: todayPtr()},
		{ID: "task3", Text: "Review marketing materials from Sarah", DueDate: due("2025-03-18"), Priority: model.PriorityMedium, Category: model.CategoryReceived, AddedToCalendar: true},
		{ID: "task4", Text: "David - Financial report analysis", DueDate: due("2025-03-25"), Priority: model.PriorityHigh, Category: model.CategoryAssigned, AddedToCalendar: true},
		{ID: "task5", Text: "Update project timeline", Completed: true, DueDate: due("2025-03-12"), Priority: model.PriorityMedium, Category: model.CategoryPending, CompletedDate: todayPtr()},
		{ID: "task6", Text: "Review quarterly goals", Completed: true, DueDate: due("2025-03-05"), Priority: model.PriorityLow, Category: model.CategoryPending, CompletedDate: due("2025-03-05")},
		{ID: "task7", Text: "Prepare sales presentation", DueDate: due("2025-03-20"), Priority: model.PriorityHigh, Category: model.CategoryPending},
		{ID: "task8", Text: "Team performance reviews", DueDate: due("2025-03-28"), Priority: model.PriorityMedium, Category: model.CategoryAssigned},
		{ID: "task9", Text: "Client feedback implementation", DueDate: due("2025-03-22"), Priority: model.PriorityHigh, Category: model.CategoryReceived},
		{ID: "task10", Text: "Update website content", DueDate: due("2025-03-17"), Priority: model.PriorityMedium, Category: model.CategoryReceived},
	}
}
