package state

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hy4ri/integral/internal/datekey"
	"github.com/hy4ri/integral/internal/model"
)

// Task form fields, in focus order.
const (
	TaskFieldText = iota
	TaskFieldDue
	TaskFieldPriority
	TaskFieldCategory
	TaskFieldSubmit
)

const taskFieldCount = 5

// ErrEmptyText is returned when a task is submitted without text.
var ErrEmptyText = errors.New("task text is required")

// Priorities is the cycle order used by the form priority pickers.
var Priorities = []model.Priority{model.PriorityNone, model.PriorityLow, model.PriorityMedium, model.PriorityHigh}

// Categories is the cycle order of the task board columns.
var Categories = []string{model.CategoryPending, model.CategoryReceived, model.CategoryAssigned}

// TaskForm represents the state of the task creation/editing form.
type TaskForm struct {
	Text     textinput.Model
	Due      textinput.Model
	Priority model.Priority
	Category string

	FocusIndex int

	// TaskID is set when editing an existing task.
	TaskID string
}

// NewTaskForm creates an empty task form in the given board category.
func NewTaskForm(category string) *TaskForm {
	text := textinput.New()
	text.Placeholder = "What needs doing?"
	text.Focus()
	text.CharLimit = 500
	text.Width = 50

	due := textinput.New()
	due.Placeholder = "Due date (YYYY-MM-DD, optional)"
	due.CharLimit = 10
	due.Width = 20

	if category == "" {
		category = model.CategoryPending
	}

	return &TaskForm{
		Text:     text,
		Due:      due,
		Category: category,
	}
}

// NewEditTaskForm creates a form pre-filled from t.
func NewEditTaskForm(t model.Task) *TaskForm {
	f := NewTaskForm(t.Category)
	f.TaskID = t.ID
	f.Text.SetValue(t.Text)
	if t.DueDate != nil {
		f.Due.SetValue(t.DueDate.String())
	}
	f.Priority = t.Priority
	return f
}

// Editing reports whether the form edits an existing task.
func (f *TaskForm) Editing() bool {
	return f.TaskID != ""
}

// Update updates the form models.
func (f *TaskForm) Update(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "tab", "down":
			f.NextField()
			return nil
		case "shift+tab", "up":
			f.PrevField()
			return nil
		}

		switch f.FocusIndex {
		case TaskFieldPriority:
			f.Priority = cyclePriority(f.Priority, msg.String())
			return nil
		case TaskFieldCategory:
			switch msg.String() {
			case "h", "left":
				f.Category = cycle(Categories, f.Category, -1)
			case "l", "right", " ":
				f.Category = cycle(Categories, f.Category, 1)
			}
			return nil
		}
	}

	var cmd tea.Cmd
	switch f.FocusIndex {
	case TaskFieldText:
		f.Text, cmd = f.Text.Update(msg)
	case TaskFieldDue:
		f.Due, cmd = f.Due.Update(msg)
	}
	return cmd
}

// NextField moves focus to the next field.
func (f *TaskForm) NextField() {
	f.Focus((f.FocusIndex + 1) % taskFieldCount)
}

// PrevField moves focus to the previous field.
func (f *TaskForm) PrevField() {
	f.Focus((f.FocusIndex - 1 + taskFieldCount) % taskFieldCount)
}

// Focus moves focus to the field at index.
func (f *TaskForm) Focus(index int) {
	f.FocusIndex = index
	f.Text.Blur()
	f.Due.Blur()

	switch index {
	case TaskFieldText:
		f.Text.Focus()
	case TaskFieldDue:
		f.Due.Focus()
	}
}

// SetWidth sets width of inputs.
func (f *TaskForm) SetWidth(width int) {
	f.Text.Width = width
}

// Draft validates the form and converts it to a new task.
func (f *TaskForm) Draft() (model.TaskDraft, error) {
	text := strings.TrimSpace(f.Text.Value())
	if text == "" {
		return model.TaskDraft{}, ErrEmptyText
	}
	due, err := parseOptionalDate(f.Due.Value())
	if err != nil {
		return model.TaskDraft{}, err
	}
	return model.TaskDraft{
		Text:     text,
		DueDate:  due,
		Priority: f.Priority,
		Category: f.Category,
	}, nil
}

// Patch validates the form and converts it to an update of the edited task.
func (f *TaskForm) Patch() (model.TaskPatch, error) {
	d, err := f.Draft()
	if err != nil {
		return model.TaskPatch{}, err
	}
	return model.TaskPatch{
		Text:         &d.Text,
		DueDate:      d.DueDate,
		ClearDueDate: d.DueDate == nil,
		Priority:     &d.Priority,
		Category:     &d.Category,
	}, nil
}

func parseOptionalDate(s string) (*datekey.Key, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	k, err := datekey.Parse(s)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return &k, nil
}

// cyclePriority handles the priority picker keys: 1-3 jump to high, medium
// and low, 0 clears, h/l step through the cycle.
func cyclePriority(p model.Priority, key string) model.Priority {
	switch key {
	case "1":
		return model.PriorityHigh
	case "2":
		return model.PriorityMedium
	case "3":
		return model.PriorityLow
	case "0":
		return model.PriorityNone
	case "h", "left":
		return cycle(Priorities, p, -1)
	case "l", "right", " ":
		return cycle(Priorities, p, 1)
	}
	return p
}

func cycle[T comparable](values []T, current T, dir int) T {
	idx := 0
	for i, v := range values {
		if v == current {
			idx = i
			break
		}
	}
	n := len(values)
	return values[((idx+dir)%n+n)%n]
}
