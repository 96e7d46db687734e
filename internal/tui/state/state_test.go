package state

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hy4ri/integral/internal/calendar"
	"github.com/hy4ri/integral/internal/config"
	"github.com/hy4ri/integral/internal/datekey"
	"github.com/hy4ri/integral/internal/model"
	"github.com/hy4ri/integral/internal/storage"
	"github.com/hy4ri/integral/internal/store"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestKeyState_GG(t *testing.T) {
	ks := &KeyState{}
	km := DefaultKeymap()

	if action, ok := ks.HandleKey(runes("g"), km); action != "" || !ok {
		t.Fatalf("first g should be consumed silently, got %q %v", action, ok)
	}
	if action, _ := ks.HandleKey(runes("g"), km); action != "top" {
		t.Errorf("expected top, got %q", action)
	}

	ks.HandleKey(runes("g"), km)
	if action, _ := ks.HandleKey(runes("j"), km); action != "down" {
		t.Errorf("g followed by j should move down, got %q", action)
	}
}

func TestKeyState_Actions(t *testing.T) {
	tests := []struct {
		key  tea.KeyMsg
		want string
	}{
		{runes("h"), "left"},
		{runes("l"), "right"},
		{runes("t"), "today"},
		{runes("m"), "mode_month"},
		{runes("w"), "mode_week"},
		{runes("d"), "mode_day"},
		{runes("s"), "sidebar"},
		{runes("/"), "search"},
		{runes("T"), "task_events"},
		{runes("F"), "focus_blocks"},
		{runes("y"), "copy"},
		{runes("c"), "mirror"},
		{runes("R"), "recommend"},
		{runes("2"), "tab_calendar"},
		{tea.KeyMsg{Type: tea.KeySpace}, "toggle"},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, "quit"},
		{tea.KeyMsg{Type: tea.KeyTab}, "next_tab"},
	}
	ks := &KeyState{}
	km := DefaultKeymap()
	for _, tt := range tests {
		if got, _ := ks.HandleKey(tt.key, km); got != tt.want {
			t.Errorf("%q: expected %q, got %q", tt.key.String(), tt.want, got)
		}
	}

	if _, ok := ks.HandleKey(runes("z"), km); ok {
		t.Error("unbound key should not be consumed")
	}
}

func TestEventForm_Draft(t *testing.T) {
	day := datekey.MustParse("2025-03-15")

	tests := []struct {
		name    string
		title   string
		date    string
		start   string
		end     string
		wantErr error
		ok      bool
	}{
		{"untimed", "Dentist", "2025-03-15", "", "", nil, true},
		{"timed", "Standup", "2025-03-15", "09:00", "09:30", nil, true},
		{"empty title", "  ", "2025-03-15", "", "", ErrEmptyTitle, false},
		{"empty date", "Standup", "", "", "", ErrEmptyDate, false},
		{"bad date", "Standup", "15/03/2025", "", "", nil, false},
		{"start only", "Standup", "2025-03-15", "09:00", "", nil, false},
		{"end before start", "Standup", "2025-03-15", "10:00", "09:00", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewEventForm(day)
			f.Title.SetValue(tt.title)
			f.Date.SetValue(tt.date)
			f.Start.SetValue(tt.start)
			f.End.SetValue(tt.end)

			d, err := f.Draft()
			if tt.ok {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if d.Date != day || d.Type != model.EventMeeting {
					t.Errorf("unexpected draft %+v", d)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestEventForm_EditAndCycle(t *testing.T) {
	done := true
	ev := model.Event{
		ID: "e1", Title: "Gym", Date: datekey.MustParse("2025-03-16"),
		StartTime: "07:00", EndTime: "08:00", Type: model.EventPersonal, Completed: &done,
	}
	f := NewEditEventForm(ev)
	if !f.Editing() || f.Title.Value() != "Gym" || f.Date.Value() != "2025-03-16" {
		t.Fatalf("form not pre-filled: %+v", f)
	}

	f.Focus(EventFieldType)
	f.Update(runes("l"))
	if f.Type != model.EventOther {
		t.Errorf("expected other after personal, got %s", f.Type)
	}
	f.Update(runes("l"))
	if f.Type != model.EventMeeting {
		t.Errorf("type cycle should wrap, got %s", f.Type)
	}

	f.Focus(EventFieldPriority)
	f.Update(runes("1"))
	if f.Priority != model.PriorityHigh {
		t.Errorf("expected high priority, got %q", f.Priority)
	}

	p, err := f.Patch()
	if err != nil {
		t.Fatal(err)
	}
	if *p.Type != model.EventMeeting || *p.Priority != model.PriorityHigh || p.Completed != nil {
		t.Errorf("unexpected patch %+v", p)
	}
}

func TestEventForm_Typing(t *testing.T) {
	f := NewEventForm(datekey.MustParse("2025-03-15"))
	f.Update(runes("Lunch"))
	if f.Title.Value() != "Lunch" {
		t.Errorf("expected typed title, got %q", f.Title.Value())
	}
	f.Update(tea.KeyMsg{Type: tea.KeyTab})
	if f.FocusIndex != EventFieldDate || !f.Date.Focused() || f.Title.Focused() {
		t.Error("tab should move focus to the date field")
	}
	f.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	f.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	if f.FocusIndex != EventFieldSubmit {
		t.Errorf("focus should wrap to submit, got %d", f.FocusIndex)
	}
}

func TestTaskForm(t *testing.T) {
	f := NewTaskForm("")
	if f.Category != model.CategoryPending {
		t.Errorf("expected default category, got %q", f.Category)
	}
	if _, err := f.Draft(); !errors.Is(err, ErrEmptyText) {
		t.Errorf("expected ErrEmptyText, got %v", err)
	}

	f.Text.SetValue("  Ship release  ")
	f.Due.SetValue("2025-04-01")
	f.Focus(TaskFieldCategory)
	f.Update(runes("l"))
	d, err := f.Draft()
	if err != nil {
		t.Fatal(err)
	}
	if d.Text != "Ship release" || d.DueDate == nil || d.DueDate.String() != "2025-04-01" || d.Category != model.CategoryReceived {
		t.Errorf("unexpected draft %+v", d)
	}

	f.Due.SetValue("tomorrow")
	if _, err := f.Draft(); err == nil {
		t.Error("expected invalid date error")
	}
}

func TestTaskForm_PatchClearsDueDate(t *testing.T) {
	due := datekey.MustParse("2025-04-01")
	f := NewEditTaskForm(model.Task{ID: "t1", Text: "x", DueDate: &due, Category: model.CategoryAssigned})
	if !f.Editing() || f.Due.Value() != "2025-04-01" {
		t.Fatal("form not pre-filled")
	}
	f.Due.SetValue("")
	p, err := f.Patch()
	if err != nil {
		t.Fatal(err)
	}
	if !p.ClearDueDate || p.DueDate != nil || *p.Category != model.CategoryAssigned {
		t.Errorf("unexpected patch %+v", p)
	}
}

func TestLoginForm(t *testing.T) {
	f := NewLoginForm()
	if f.FocusIndex != LoginFieldEmail || !f.Remember {
		t.Fatalf("unexpected initial form %+v", f)
	}

	f.Update(runes("demo@example.com"))
	f.Update(tea.KeyMsg{Type: tea.KeyTab})
	f.Update(runes("password"))
	f.Update(tea.KeyMsg{Type: tea.KeyTab})
	f.Update(tea.KeyMsg{Type: tea.KeySpace})
	if f.Remember {
		t.Error("space on remember should toggle it off")
	}

	_, email, password := f.Values()
	if email != "demo@example.com" || password != "password" {
		t.Errorf("unexpected values %q %q", email, password)
	}

	f.ToggleMode()
	if !f.Signup || f.FocusIndex != LoginFieldName {
		t.Error("signup mode should focus the name field")
	}
	f.PrevField()
	if f.FocusIndex != LoginFieldSubmit {
		t.Errorf("signup cycle should skip remember, got %d", f.FocusIndex)
	}
}

func TestNew(t *testing.T) {
	now := func() time.Time { return time.Date(2025, 3, 15, 9, 0, 0, 0, time.UTC) }
	cfg := config.DefaultConfig()
	cfg.UI.ShowTasks = false

	s := New(Deps{Config: cfg}, calendar.ViewMonth, now)
	if s.CurrentView != ViewMain || s.CurrentTab != TabDashboard {
		t.Errorf("unexpected initial view %v/%v", s.CurrentView, s.CurrentTab)
	}
	if s.Calendar.ShowTasks || s.Calendar.Mode != calendar.ViewMonth || s.Calendar.Ref.String() != "2025-03-15" {
		t.Errorf("unexpected calendar %+v", s.Calendar)
	}

	s.Width = 80
	if !s.Narrow() {
		t.Error("80 columns should be narrow")
	}
	s.Width = 120
	if s.Narrow() {
		t.Error("120 columns should be wide")
	}
}

func TestEventOrdering(t *testing.T) {
	now := func() time.Time { return time.Date(2025, 3, 15, 9, 0, 0, 0, time.Local) }
	backend := storage.NewMemory()
	if err := storage.Save(backend, storage.KeyEvents, []model.Event{}); err != nil {
		t.Fatal(err)
	}
	ws := store.Open(backend, now, nil)
	s := New(Deps{Workspace: ws}, calendar.ViewWeek, now)

	day := datekey.MustParse("2025-03-15")
	for _, d := range []model.EventDraft{
		{Title: "late", Date: day, StartTime: "10:00", EndTime: "11:00"},
		{Title: "early", Date: day, StartTime: "9:00", EndTime: "9:30"},
		{Title: "untimed", Date: day},
		{Title: "yesterday", Date: day.AddDays(-1), StartTime: "18:00", EndTime: "19:00"},
	} {
		ws.Events.Add(d)
	}

	titles := func(events []model.Event) []string {
		var out []string
		for _, ev := range events {
			out = append(out, ev.Title)
		}
		return out
	}

	visible := titles(s.VisibleEvents())
	if want := []string{"late", "early", "untimed", "yesterday"}; !equalStrings(visible, want) {
		t.Errorf("VisibleEvents should keep insertion order, got %v", visible)
	}

	cursor := titles(s.CursorEvents())
	if want := []string{"yesterday", "untimed", "early", "late"}; !equalStrings(cursor, want) {
		t.Errorf("unexpected cursor order %v", cursor)
	}

	if ev, ok := s.SelectedEvent(); !ok || ev.Title != "yesterday" {
		t.Errorf("cursor 0 should select the earliest event, got %q", ev.Title)
	}
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
