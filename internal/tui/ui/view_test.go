package ui

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/hy4ri/integral/internal/ai"
	"github.com/hy4ri/integral/internal/auth"
	"github.com/hy4ri/integral/internal/calendar"
	"github.com/hy4ri/integral/internal/config"
	"github.com/hy4ri/integral/internal/datekey"
	"github.com/hy4ri/integral/internal/model"
	"github.com/hy4ri/integral/internal/storage"
	"github.com/hy4ri/integral/internal/store"
	"github.com/hy4ri/integral/internal/tui/state"
)

var fixedNow = time.Date(2025, 3, 15, 9, 0, 0, 0, time.Local)

func newTestRenderer(t *testing.T, mode calendar.ViewMode, width int) *Renderer {
	t.Helper()
	backend := storage.NewMemory()
	if err := storage.Save(backend, storage.KeyEvents, []model.Event{}); err != nil {
		t.Fatal(err)
	}
	if err := storage.Save(backend, storage.KeyTasks, []model.Task{}); err != nil {
		t.Fatal(err)
	}
	now := func() time.Time { return fixedNow }
	svc := auth.NewService(backend, nil)
	if _, err := svc.Login(auth.DemoEmail, auth.DemoPassword, false); err != nil {
		t.Fatal(err)
	}

	s := state.New(state.Deps{
		Workspace: store.Open(backend, now, nil),
		Auth:      svc,
		AI:        ai.NewClient(ai.Config{}, nil),
		Config:    config.DefaultConfig(),
	}, mode, now)
	s.Width = width
	s.Height = 40
	return NewRenderer(s)
}

func addEvents(r *Renderer, day string, n int) {
	for i := 0; i < n; i++ {
		r.Workspace.Events.Add(model.EventDraft{
			Title:     "Ev" + string(rune('A'+i)),
			Date:      datekey.MustParse(day),
			StartTime: "10:00",
			EndTime:   "11:00",
			Type:      model.EventMeeting,
		})
	}
}

func TestView_Loading(t *testing.T) {
	r := newTestRenderer(t, calendar.ViewWeek, 0)
	if got := r.View(); got != "Loading..." {
		t.Errorf("expected loading placeholder, got %q", got)
	}
}

func TestMonthGrid_Overflow(t *testing.T) {
	tests := []struct {
		name  string
		width int
		want  string
	}{
		{"wide shows three", 140, "+2 more"},
		{"narrow shows two", 80, "+3 more"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRenderer(t, calendar.ViewMonth, tt.width)
			addEvents(r, "2025-03-15", 5)

			out := r.renderCalendar(tt.width, 38)
			if !strings.Contains(out, tt.want) {
				t.Errorf("expected %q in:\n%s", tt.want, out)
			}
			if !strings.Contains(out, "March 2025") || !strings.Contains(out, "SUN") {
				t.Errorf("missing month header:\n%s", out)
			}
		})
	}
}

func TestTimeline_WeekView(t *testing.T) {
	r := newTestRenderer(t, calendar.ViewWeek, 140)
	r.Workspace.Events.Add(model.EventDraft{
		Title: "Standup", Date: datekey.MustParse("2025-03-14"),
		StartTime: "09:00", EndTime: "10:30", Type: model.EventMeeting,
	})
	r.Workspace.Events.Add(model.EventDraft{
		Title: "Holiday", Date: datekey.MustParse("2025-03-10"), Type: model.EventPersonal,
	})

	out := r.renderCalendar(140, 30)
	for _, want := range []string{"■ Standup", "│", "9 AM", "10 AM", "Holiday", "SAT 15", "SUN 9"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in:\n%s", want, out)
		}
	}
}

func TestTimeline_NowRowKeepsHourLabel(t *testing.T) {
	r := newTestRenderer(t, calendar.ViewDay, 140)

	out := r.renderCalendar(140, 30)
	var nowLine string
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, nowGutter) {
			nowLine = line
			break
		}
	}
	if nowLine == "" {
		t.Fatalf("expected a current-time marker in:\n%s", out)
	}
	if !strings.Contains(nowLine, "9 AM") {
		t.Errorf("marker row lost its hour label: %q", nowLine)
	}
}

func TestMonthGrid_ShortTerminalKeepsMore(t *testing.T) {
	r := newTestRenderer(t, calendar.ViewMonth, 140)
	r.Height = 24
	addEvents(r, "2025-03-15", 5)

	out := r.renderCalendar(140, 24)
	for _, want := range []string{"EvA", "+4 more"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in:\n%s", want, out)
		}
	}
	if strings.Contains(out, "EvB") {
		t.Errorf("second event should give way to the overflow line:\n%s", out)
	}
}

func TestMonthGrid_FirstInserted(t *testing.T) {
	r := newTestRenderer(t, calendar.ViewMonth, 140)
	for i, start := range []string{"15:00", "14:00", "13:00", "12:00"} {
		r.Workspace.Events.Add(model.EventDraft{
			Title:     "In" + string(rune('1'+i)),
			Date:      datekey.MustParse("2025-03-15"),
			StartTime: start,
			EndTime:   "16:00",
			Type:      model.EventMeeting,
		})
	}
	r.Calendar.ToggleSidebar()

	out := r.renderCalendar(140, 38)
	for _, want := range []string{"In1", "In2", "In3", "+1 more"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in:\n%s", want, out)
		}
	}
	if strings.Contains(out, "In4") {
		t.Errorf("last inserted event should be hidden:\n%s", out)
	}
}

func TestFitCell(t *testing.T) {
	events := make([]model.Event, 5)
	for i := range events {
		events[i] = model.Event{ID: string(rune('a' + i))}
	}
	tests := []struct {
		name      string
		events    []model.Event
		narrow    bool
		slots     int
		wantShown int
		wantMore  int
	}{
		{"room for all", events[:3], false, 4, 3, 0},
		{"wide overflow", events, false, 4, 3, 2},
		{"narrow overflow", events, true, 4, 2, 3},
		{"short cell", events, false, 2, 1, 4},
		{"short cell without overflow", events[:3], false, 2, 1, 2},
		{"no room", events, false, 0, 0, 5},
		{"empty", nil, false, 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shown, more := fitCell(tt.events, tt.narrow, tt.slots)
			if len(shown) != tt.wantShown || more != tt.wantMore {
				t.Errorf("got %d shown +%d, want %d +%d", len(shown), more, tt.wantShown, tt.wantMore)
			}
		})
	}
}

func TestTimeline_DayView(t *testing.T) {
	r := newTestRenderer(t, calendar.ViewDay, 140)
	r.Workspace.Events.Add(model.EventDraft{
		Title: "Review", Date: datekey.MustParse("2025-03-15"),
		StartTime: "14:00", EndTime: "15:00", Type: model.EventTask, Description: "Q1 numbers",
	})

	out := r.renderCalendar(140, 30)
	for _, want := range []string{"Saturday, March 15", "■ Review  14:00 - 15:00  Q1 numbers", "2 PM"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in:\n%s", want, out)
		}
	}
}

func TestCalendarSidebar(t *testing.T) {
	r := newTestRenderer(t, calendar.ViewWeek, 140)
	r.Workspace.Events.Add(model.EventDraft{
		Title: "Dentist", Date: datekey.MustParse("2025-03-12"), StartTime: "08:00", EndTime: "09:00",
		Type: model.EventPersonal, Priority: model.PriorityHigh,
	})

	out := r.renderCalendar(140, 30)
	for _, want := range []string{"Su Mo Tu We Th Fr Sa", "Selected", "Wed, Mar 12 08:00 - 09:00", "high priority"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in:\n%s", want, out)
		}
	}

	r.Calendar.ToggleSidebar()
	if out := r.renderCalendar(140, 30); strings.Contains(out, "Su Mo Tu") {
		t.Error("sidebar should be hidden")
	}
}

func TestDashboard(t *testing.T) {
	r := newTestRenderer(t, calendar.ViewWeek, 120)
	r.Workspace.Tasks.Add(model.TaskDraft{Text: "Ship it", Category: model.CategoryAssigned})
	addEvents(r, "2025-03-15", 1)

	out := r.renderDashboard(120, 36)
	for _, want := range []string{"Good morning, Demo User", "Active Tasks", "Tasks Assigned", "Today's Schedule", "10:00 - 11:00", "EvA", "focus blocks", "OPENAI_API_KEY"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in:\n%s", want, out)
		}
	}

	r.Recommendations = []string{"Book venue"}
	if out := r.renderDashboard(120, 36); !strings.Contains(out, "• Book venue") {
		t.Error("recommendations should be listed")
	}

	r.Analysis = "Most tasks are assigned to you."
	if out := r.renderDashboard(120, 36); !strings.Contains(out, "Task Analysis") || !strings.Contains(out, "Most tasks are assigned") {
		t.Error("analysis should be shown")
	}
}

func TestTaskBoard(t *testing.T) {
	r := newTestRenderer(t, calendar.ViewWeek, 120)
	due := datekey.MustParse("2025-03-10")
	r.Workspace.Tasks.Add(model.TaskDraft{Text: "Overdue report", DueDate: &due, Category: model.CategoryPending})
	r.Workspace.Tasks.Add(model.TaskDraft{Text: "Done thing", Completed: true, Category: model.CategoryReceived})

	out := r.renderTaskBoard(120, 36)
	for _, want := range []string{"Pending (1)", "Received (1)", "Assigned (0)", "Overdue report", "Mar 10", "[x] Done thing", "No tasks"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in:\n%s", want, out)
		}
	}
}

func TestMainView(t *testing.T) {
	r := newTestRenderer(t, calendar.ViewWeek, 120)
	r.CurrentTab = state.TabCalendar
	r.Err = errors.New("boom")

	out := r.View()
	for _, want := range []string{"Dashboard", "Calendar", "Tasks", "Error: boom", "?:help"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in:\n%s", want, out)
		}
	}
}

func TestOverlays(t *testing.T) {
	r := newTestRenderer(t, calendar.ViewWeek, 120)

	r.CurrentView = state.ViewLogin
	r.LoginForm = state.NewLoginForm()
	if out := r.View(); !strings.Contains(out, "Demo account") || !strings.Contains(out, "Remember me") {
		t.Errorf("unexpected login view:\n%s", out)
	}

	r.CurrentView = state.ViewEventForm
	r.EventForm = state.NewEventForm(datekey.MustParse("2025-03-15"))
	if out := r.View(); !strings.Contains(out, "Add Event") || !strings.Contains(out, "meeting") {
		t.Errorf("unexpected event form:\n%s", out)
	}

	r.CurrentView = state.ViewTaskForm
	r.TaskForm = state.NewTaskForm(model.CategoryReceived)
	if out := r.View(); !strings.Contains(out, "Add Task") || !strings.Contains(out, "Received") {
		t.Errorf("unexpected task form:\n%s", out)
	}

	r.CurrentView = state.ViewHelp
	if out := r.View(); !strings.Contains(out, "Keyboard Shortcuts") {
		t.Errorf("unexpected help view:\n%s", out)
	}

	r.CurrentView = state.ViewWriter
	r.Writer = state.NewWriter("rough notes", "ev-1", "Offsite")
	r.Writer.Output.WriteString("Polished notes.")
	out := r.View()
	for _, want := range []string{"AI Writing Assistant", "Description of Offsite", "AI Improved Version", "Polished notes.", "Ctrl+S: apply"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in writer:\n%s", want, out)
		}
	}
}

func TestHelp_Scrolls(t *testing.T) {
	r := newTestRenderer(t, calendar.ViewWeek, 120)
	r.Height = 12
	r.CurrentView = state.ViewHelp

	if out := r.View(); !strings.Contains(out, "j/k scroll") {
		t.Errorf("short help should be scrollable:\n%s", out)
	}
	if r.HelpView.AtBottom() {
		t.Error("help should not fit in a short terminal")
	}
}

func TestTimeline_ManualScroll(t *testing.T) {
	r := newTestRenderer(t, calendar.ViewDay, 140)

	out := r.renderCalendar(140, 12)
	if !strings.Contains(out, "8 AM") || strings.Contains(out, "6 PM") {
		t.Fatalf("expected the working day first:\n%s", out)
	}

	r.TimelineManual = true
	r.Timeline.LineDown(3)
	out = r.renderCalendar(140, 12)
	if strings.Contains(out, "8 AM") || !strings.Contains(out, "6 PM") {
		t.Errorf("expected rows from 11 AM:\n%s", out)
	}

	r.TimelineManual = false
	if out := r.renderCalendar(140, 12); !strings.Contains(out, "8 AM") {
		t.Errorf("expected the selection to take the rows back:\n%s", out)
	}
}

func TestTruncateString(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"hello", 10, "hello"},
		{"hello world", 5, "hell…"},
		{"日本語テキスト", 5, "日本…"},
		{"abc", 0, ""},
	}
	for _, tt := range tests {
		if got := truncateString(tt.in, tt.max); got != tt.want {
			t.Errorf("truncateString(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}

	if got := fitString("ab", 4); got != "ab  " {
		t.Errorf("fitString should pad, got %q", got)
	}
}
