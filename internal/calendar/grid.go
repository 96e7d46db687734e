// Package calendar generates month, week and day grids and positions events on them.
package calendar

import (
	"fmt"

	"github.com/hy4ri/integral/internal/datekey"
)

// MonthCells is the fixed size of a month grid: 6 rows of 7 days.
const MonthCells = 42

// Cell is one day of a month grid.
type Cell struct {
	Date        datekey.Key
	InMonth     bool
	IsPrevMonth bool
	IsNextMonth bool
	IsToday     bool
}

// MonthGrid returns the 42 Sunday-first cells covering ref's month: the tail
// of the previous month, every day of the month (today flagged), and the
// head of the next month.
func MonthGrid(ref, today datekey.Key) []Cell {
	first := ref.FirstOfMonth()
	lead := first.Weekday()
	days := first.DaysInMonth()

	cells := make([]Cell, 0, MonthCells)

	prev := first.AddDays(-lead)
	for i := 0; i < lead; i++ {
		cells = append(cells, Cell{Date: prev.AddDays(i), IsPrevMonth: true})
	}

	for d := 1; d <= days; d++ {
		k := datekey.Key{Year: first.Year, Month: first.Month, Day: d}
		cells = append(cells, Cell{Date: k, InMonth: true, IsToday: k == today})
	}

	next := first.AddMonths(1)
	for i := 0; len(cells) < MonthCells; i++ {
		cells = append(cells, Cell{Date: next.AddDays(i), IsNextMonth: true})
	}

	return cells
}

// WeekGrid returns the seven dates of ref's week, starting on Sunday.
func WeekGrid(ref datekey.Key) []datekey.Key {
	start := ref.AddDays(-ref.Weekday())
	week := make([]datekey.Key, 7)
	for i := range week {
		week[i] = start.AddDays(i)
	}
	return week
}

// Hours returns the hour rows 0 through 23.
func Hours() []int {
	hours := make([]int, 24)
	for i := range hours {
		hours[i] = i
	}
	return hours
}

// HourLabel renders an hour row in 12-hour form: 0 is "12 AM", 12 is "12 PM".
func HourLabel(hour int) string {
	switch {
	case hour == 0:
		return "12 AM"
	case hour < 12:
		return fmt.Sprintf("%d AM", hour)
	case hour == 12:
		return "12 PM"
	default:
		return fmt.Sprintf("%d PM", hour-12)
	}
}

// MiniCalendar returns the compact picker layout for ref's month: nil for
// each blank before the 1st, then the day numbers.
func MiniCalendar(ref datekey.Key) []*int {
	first := ref.FirstOfMonth()
	lead := first.Weekday()
	days := first.DaysInMonth()

	out := make([]*int, 0, lead+days)
	for i := 0; i < lead; i++ {
		out = append(out, nil)
	}
	for d := 1; d <= days; d++ {
		day := d
		out = append(out, &day)
	}
	return out
}

// WeekdayAbbr returns "SUN".."SAT" for a 0-based weekday index.
func WeekdayAbbr(weekday int) string {
	return [...]string{"SUN", "MON", "TUE", "WED", "THU", "FRI", "SAT"}[((weekday%7)+7)%7]
}
