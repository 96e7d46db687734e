package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/hy4ri/integral/internal/datekey"
	"github.com/hy4ri/integral/internal/model"
)

// ViewMode is the calendar layout.
type ViewMode int

const (
	ViewDay ViewMode = iota
	ViewWeek
	ViewMonth
)

func (m ViewMode) String() string {
	switch m {
	case ViewDay:
		return "day"
	case ViewWeek:
		return "week"
	default:
		return "month"
	}
}

// ParseViewMode accepts "day", "week" or "month" (any case).
func ParseViewMode(s string) (ViewMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "day":
		return ViewDay, nil
	case "week":
		return ViewWeek, nil
	case "month":
		return ViewMonth, nil
	}
	return ViewWeek, fmt.Errorf("unknown view mode %q", s)
}

// Controller holds the calendar's UI state. All transitions are synchronous.
type Controller struct {
	Ref         datekey.Key
	Mode        ViewMode
	SidebarOpen bool
	Search      string
	ShowTasks   bool

	now func() time.Time
}

// NewController starts on today's date in mode, sidebar open, task events visible.
func NewController(mode ViewMode, now func() time.Time) *Controller {
	if now == nil {
		now = time.Now
	}
	return &Controller{
		Ref:         datekey.Today(now()),
		Mode:        mode,
		SidebarOpen: true,
		ShowTasks:   true,
		now:         now,
	}
}

// Now returns the controller's wall clock reading.
func (c *Controller) Now() time.Time {
	return c.now()
}

// Today returns the real current date.
func (c *Controller) Today() datekey.Key {
	return datekey.Today(c.now())
}

// Previous steps back one month, week or day depending on the current mode.
func (c *Controller) Previous() {
	c.step(-1)
}

// Next steps forward one month, week or day depending on the current mode.
func (c *Controller) Next() {
	c.step(1)
}

func (c *Controller) step(dir int) {
	switch c.Mode {
	case ViewMonth:
		c.Ref = c.Ref.AddMonths(dir)
	case ViewWeek:
		c.Ref = c.Ref.AddDays(7 * dir)
	default:
		c.Ref = c.Ref.AddDays(dir)
	}
}

// GoToday resets the reference date to the current date.
func (c *Controller) GoToday() {
	c.Ref = c.Today()
}

// SetMode switches the layout without moving the reference date.
func (c *Controller) SetMode(m ViewMode) {
	c.Mode = m
}

// Select moves the reference date to d.
func (c *Controller) Select(d datekey.Key) {
	c.Ref = d
}

func (c *Controller) ToggleSidebar() { c.SidebarOpen = !c.SidebarOpen }
func (c *Controller) ToggleTasks()   { c.ShowTasks = !c.ShowTasks }
func (c *Controller) SetSearch(q string) {
	c.Search = q
}

// FilterOptions returns the active filters.
func (c *Controller) FilterOptions() FilterOptions {
	return FilterOptions{Query: c.Search, ShowTasks: c.ShowTasks}
}

// VisibleRange returns the first and last date shown by the current mode.
func (c *Controller) VisibleRange() (from, to datekey.Key) {
	switch c.Mode {
	case ViewMonth:
		cells := MonthGrid(c.Ref, c.Today())
		return cells[0].Date, cells[len(cells)-1].Date
	case ViewWeek:
		week := WeekGrid(c.Ref)
		return week[0], week[6]
	default:
		return c.Ref, c.Ref
	}
}

// Title is the header text: "March 2025", "March 15" or "Saturday, March 15".
func (c *Controller) Title() string {
	t := c.Ref.Time(nil)
	switch c.Mode {
	case ViewMonth:
		return t.Format("January 2006")
	case ViewWeek:
		return t.Format("January 2")
	default:
		return t.Format("Monday, January 2")
	}
}

// FocusSuggestionThreshold is the event count under which focus blocks are offered.
const FocusSuggestionThreshold = 5

// ShouldSuggestFocusBlocks reports whether a calendar with eventCount events
// is sparse enough to offer focus blocks.
func ShouldSuggestFocusBlocks(eventCount int) bool {
	return eventCount < FocusSuggestionThreshold
}

// SuggestFocusBlocks returns the two focus blocks offered for day.
func SuggestFocusBlocks(day datekey.Key) []model.EventDraft {
	return []model.EventDraft{
		{
			Title:       "Focus Block: Deep Work",
			Date:        day,
			StartTime:   "10:00",
			EndTime:     "12:00",
			Type:        model.EventPersonal,
			Description: "Uninterrupted deep work session",
		},
		{
			Title:       "Focus Block: Planning",
			Date:        day,
			StartTime:   "14:00",
			EndTime:     "15:30",
			Type:        model.EventPersonal,
			Description: "Strategic planning and organization",
		},
	}
}
