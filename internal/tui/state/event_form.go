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

// Event form fields, in focus order.
const (
	EventFieldTitle = iota
	EventFieldDate
	EventFieldStart
	EventFieldEnd
	EventFieldDescription
	EventFieldType
	EventFieldPriority
	EventFieldSubmit
)

const eventFieldCount = 8

// Event form validation errors.
var (
	ErrEmptyTitle = errors.New("event title is required")
	ErrEmptyDate  = errors.New("event date is required")
)

// EventForm represents the state of the event creation/editing form.
type EventForm struct {
	Title       textinput.Model
	Date        textinput.Model
	Start       textinput.Model
	End         textinput.Model
	Description textinput.Model
	Type        model.EventType
	Priority    model.Priority

	FocusIndex int

	// EventID is set when editing an existing event.
	EventID string
	// Completed is carried through edits untouched.
	Completed *bool
}

// NewEventForm creates an empty event form on day.
func NewEventForm(day datekey.Key) *EventForm {
	title := textinput.New()
	title.Placeholder = "Event title"
	title.Focus()
	title.CharLimit = 200
	title.Width = 50

	date := textinput.New()
	date.Placeholder = "YYYY-MM-DD"
	date.CharLimit = 10
	date.Width = 12
	date.SetValue(day.String())

	start := textinput.New()
	start.Placeholder = "HH:MM"
	start.CharLimit = 5
	start.Width = 6

	end := textinput.New()
	end.Placeholder = "HH:MM"
	end.CharLimit = 5
	end.Width = 6

	desc := textinput.New()
	desc.Placeholder = "Description"
	desc.CharLimit = 1000
	desc.Width = 50

	return &EventForm{
		Title:       title,
		Date:        date,
		Start:       start,
		End:         end,
		Description: desc,
		Type:        model.EventMeeting,
	}
}

// NewEditEventForm creates a form pre-filled from ev.
func NewEditEventForm(ev model.Event) *EventForm {
	f := NewEventForm(ev.Date)
	f.EventID = ev.ID
	f.Title.SetValue(ev.Title)
	f.Start.SetValue(ev.StartTime)
	f.End.SetValue(ev.EndTime)
	f.Description.SetValue(ev.Description)
	if ev.Type.Valid() {
		f.Type = ev.Type
	}
	f.Priority = ev.Priority
	f.Completed = ev.Completed
	return f
}

// Editing reports whether the form edits an existing event.
func (f *EventForm) Editing() bool {
	return f.EventID != ""
}

// Update updates the form models.
func (f *EventForm) Update(msg tea.Msg) tea.Cmd {
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
		case EventFieldType:
			switch msg.String() {
			case "h", "left":
				f.Type = cycle(model.EventTypes, f.Type, -1)
			case "l", "right", " ":
				f.Type = cycle(model.EventTypes, f.Type, 1)
			}
			return nil
		case EventFieldPriority:
			f.Priority = cyclePriority(f.Priority, msg.String())
			return nil
		}
	}

	var cmd tea.Cmd
	if in := f.input(f.FocusIndex); in != nil {
		*in, cmd = in.Update(msg)
	}
	return cmd
}

func (f *EventForm) input(index int) *textinput.Model {
	switch index {
	case EventFieldTitle:
		return &f.Title
	case EventFieldDate:
		return &f.Date
	case EventFieldStart:
		return &f.Start
	case EventFieldEnd:
		return &f.End
	case EventFieldDescription:
		return &f.Description
	}
	return nil
}

// NextField moves focus to the next field.
func (f *EventForm) NextField() {
	f.Focus((f.FocusIndex + 1) % eventFieldCount)
}

// PrevField moves focus to the previous field.
func (f *EventForm) PrevField() {
	f.Focus((f.FocusIndex - 1 + eventFieldCount) % eventFieldCount)
}

// Focus moves focus to the field at index.
func (f *EventForm) Focus(index int) {
	f.FocusIndex = index
	for i := EventFieldTitle; i <= EventFieldDescription; i++ {
		f.input(i).Blur()
	}
	if in := f.input(index); in != nil {
		in.Focus()
	}
}

// SetWidth sets width of the free-text inputs.
func (f *EventForm) SetWidth(width int) {
	f.Title.Width = width
	f.Description.Width = width
}

// Draft validates the form and converts it to a new event. Title and date
// are required; times are optional but must be given together as HH:MM with
// the end after the start.
func (f *EventForm) Draft() (model.EventDraft, error) {
	title := strings.TrimSpace(f.Title.Value())
	if title == "" {
		return model.EventDraft{}, ErrEmptyTitle
	}
	rawDate := strings.TrimSpace(f.Date.Value())
	if rawDate == "" {
		return model.EventDraft{}, ErrEmptyDate
	}
	date, err := datekey.Parse(rawDate)
	if err != nil {
		return model.EventDraft{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", rawDate)
	}

	start := strings.TrimSpace(f.Start.Value())
	end := strings.TrimSpace(f.End.Value())
	if err := validateTimes(start, end); err != nil {
		return model.EventDraft{}, err
	}

	return model.EventDraft{
		Title:       title,
		Date:        date,
		StartTime:   start,
		EndTime:     end,
		Type:        f.Type,
		Description: strings.TrimSpace(f.Description.Value()),
		Completed:   f.Completed,
		Priority:    f.Priority,
	}, nil
}

// Patch validates the form and converts it to an update of the edited event.
func (f *EventForm) Patch() (model.EventPatch, error) {
	d, err := f.Draft()
	if err != nil {
		return model.EventPatch{}, err
	}
	return model.EventPatch{
		Title:       &d.Title,
		Date:        &d.Date,
		StartTime:   &d.StartTime,
		EndTime:     &d.EndTime,
		Type:        &d.Type,
		Description: &d.Description,
		Priority:    &d.Priority,
	}, nil
}

func validateTimes(start, end string) error {
	if start == "" && end == "" {
		return nil
	}
	sh, sm, ok := model.ParseClock(start)
	if !ok {
		return fmt.Errorf("invalid start time %q, expected HH:MM", start)
	}
	eh, em, ok := model.ParseClock(end)
	if !ok {
		return fmt.Errorf("invalid end time %q, expected HH:MM", end)
	}
	if eh*60+em <= sh*60+sm {
		return errors.New("end time must be after start time")
	}
	return nil
}
