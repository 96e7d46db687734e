package model

import "github.com/hy4ri/integral/internal/datekey"

// Well-known task categories. Category is free text; these are the buckets
// the board and the stats know about.
const (
	CategoryPending  = "pending"
	CategoryReceived = "received"
	CategoryAssigned = "assigned"
)

// Task is a to-do item on the task board.
type Task struct {
	ID              string       `json:"id"`
	Text            string       `json:"text"`
	Completed       bool         `json:"completed"`
	DueDate         *datekey.Key `json:"dueDate,omitempty"`
	Priority        Priority     `json:"priority,omitempty"`
	Category        string       `json:"category"`
	AddedToCalendar bool         `json:"addedToCalendar,omitempty"`
	CompletedDate   *datekey.Key `json:"completedDate,omitempty"`
}

// TaskDraft is a Task before the store assigns it an ID.
type TaskDraft struct {
	Text            string
	Completed       bool
	DueDate         *datekey.Key
	Priority        Priority
	Category        string
	AddedToCalendar bool
}

// TaskPatch holds the fields of a partial task update.
type TaskPatch struct {
	Text            *string
	Completed       *bool
	DueDate         *datekey.Key
	ClearDueDate    bool
	Priority        *Priority
	Category        *string
	AddedToCalendar *bool
}

// WithID turns the draft into a Task.
func (d TaskDraft) WithID(id string) Task {
	return Task{
		ID:              id,
		Text:            d.Text,
		Completed:       d.Completed,
		DueDate:         d.DueDate,
		Priority:        d.Priority,
		Category:        d.Category,
		AddedToCalendar: d.AddedToCalendar,
	}.Clone()
}

// Clone returns a copy of t that shares no pointers with it.
func (t Task) Clone() Task {
	if t.DueDate != nil {
		d := *t.DueDate
		t.DueDate = &d
	}
	if t.CompletedDate != nil {
		d := *t.CompletedDate
		t.CompletedDate = &d
	}
	return t
}

// Apply merges the patch into t. Completion date bookkeeping is the store's job.
func (p TaskPatch) Apply(t *Task) {
	if p.Text != nil {
		t.Text = *p.Text
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
	if p.ClearDueDate {
		t.DueDate = nil
	} else if p.DueDate != nil {
		d := *p.DueDate
		t.DueDate = &d
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.Category != nil {
		t.Category = *p.Category
	}
	if p.AddedToCalendar != nil {
		t.AddedToCalendar = *p.AddedToCalendar
	}
}

// TaskStats are the dashboard counters.
type TaskStats struct {
	ActiveTasks    int `json:"activeTasks"`
	CompletedToday int `json:"completedToday"`
	TasksAssigned  int `json:"tasksAssigned"`
	TasksReceived  int `json:"tasksReceived"`
}

// User is the logged-in profile.
type User struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar,omitempty"`
}
