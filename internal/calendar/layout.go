package calendar

import (
	"strings"
	"time"

	"github.com/hy4ri/integral/internal/model"
)

// PixelsPerHour is the vertical scale of the day and week timelines.
const PixelsPerHour = 60

// Month cells show this many events before collapsing the rest into "+K more".
const (
	MonthCellLimitWide   = 3
	MonthCellLimitNarrow = 2
)

// Placement is the vertical position of a timed event in a day column.
type Placement struct {
	Top    float64
	Height float64
}

// Place computes the placement of ev: top = start hours * 60 and
// height = duration hours * 60. Events without a parsable start and end
// are not placed.
func Place(ev model.Event) (Placement, bool) {
	sh, sm, ok := model.ParseClock(ev.StartTime)
	if !ok {
		return Placement{}, false
	}
	eh, em, ok := model.ParseClock(ev.EndTime)
	if !ok {
		return Placement{}, false
	}
	start := float64(sh) + float64(sm)/60
	end := float64(eh) + float64(em)/60
	return Placement{
		Top:    start * PixelsPerHour,
		Height: (end - start) * PixelsPerHour,
	}, true
}

// Positioned is a timed event with its placement.
type Positioned struct {
	Event     model.Event
	Placement Placement
}

// DayColumn splits a day's events into placed timed events and the untimed
// remainder, both in the order given.
func DayColumn(events []model.Event) (timed []Positioned, untimed []model.Event) {
	for _, ev := range events {
		if p, ok := Place(ev); ok {
			timed = append(timed, Positioned{Event: ev, Placement: p})
		} else {
			untimed = append(untimed, ev)
		}
	}
	return timed, untimed
}

// Overflow returns the events a month cell shows and how many are hidden.
func Overflow(events []model.Event, narrow bool) (shown []model.Event, more int) {
	limit := MonthCellLimitWide
	if narrow {
		limit = MonthCellLimitNarrow
	}
	if len(events) <= limit {
		return events, 0
	}
	return events[:limit], len(events) - limit
}

// NowOffset is the current-time marker position for now: minutes since
// midnight at one pixel per minute.
func NowOffset(now time.Time) float64 {
	return float64(now.Hour()*PixelsPerHour + now.Minute())
}

// FilterOptions are the calendar surface filters.
type FilterOptions struct {
	Query     string
	ShowTasks bool
}

// Filter keeps events matching the search query (case-insensitive, title or
// description) and drops task events when ShowTasks is off.
func Filter(events []model.Event, opts FilterOptions) []model.Event {
	query := strings.ToLower(strings.TrimSpace(opts.Query))
	out := make([]model.Event, 0, len(events))
	for _, ev := range events {
		if query != "" &&
			!strings.Contains(strings.ToLower(ev.Title), query) &&
			!strings.Contains(strings.ToLower(ev.Description), query) {
			continue
		}
		if !opts.ShowTasks && ev.Type == model.EventTask {
			continue
		}
		out = append(out, ev)
	}
	return out
}
