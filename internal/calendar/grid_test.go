package calendar

import (
	"testing"

	"github.com/hy4ri/integral/internal/datekey"
)

func TestMonthGrid_AlwaysFortyTwoCells(t *testing.T) {
	today := datekey.MustParse("2025-03-15")

	// Every month of a leap year and a common year, including both rollovers.
	for _, year := range []int{2024, 2025} {
		for month := 1; month <= 12; month++ {
			ref := datekey.Key{Year: year, Month: month, Day: 10}
			cells := MonthGrid(ref, today)

			if len(cells) != MonthCells {
				t.Fatalf("%s: expected %d cells, got %d", ref, MonthCells, len(cells))
			}

			inMonth := 0
			for _, c := range cells {
				if c.InMonth {
					inMonth++
				}
			}
			if inMonth != ref.DaysInMonth() {
				t.Errorf("%s: expected %d in-month cells, got %d", ref, ref.DaysInMonth(), inMonth)
			}

			if cells[0].Date.Weekday() != 0 {
				t.Errorf("%s: grid must start on Sunday, got weekday %d", ref, cells[0].Date.Weekday())
			}
			for i := 1; i < len(cells); i++ {
				if cells[i].Date != cells[i-1].Date.AddDays(1) {
					t.Fatalf("%s: cells %d and %d are not consecutive", ref, i-1, i)
				}
			}
		}
	}
}

func TestMonthGrid_Rollover(t *testing.T) {
	// January 2025 starts on a Wednesday: three December 2024 cells lead.
	cells := MonthGrid(datekey.MustParse("2025-01-20"), datekey.MustParse("2025-01-20"))
	if !cells[0].IsPrevMonth || cells[0].Date.String() != "2024-12-29" {
		t.Errorf("unexpected first cell: %+v", cells[0])
	}
	if cells[3].Date.String() != "2025-01-01" || !cells[3].InMonth {
		t.Errorf("unexpected first in-month cell: %+v", cells[3])
	}

	// December 2025 ends on a Wednesday: trailing cells are January 2026.
	cells = MonthGrid(datekey.MustParse("2025-12-05"), datekey.MustParse("2025-01-01"))
	last := cells[len(cells)-1]
	if !last.IsNextMonth || last.Date.Year != 2026 || last.Date.Month != 1 {
		t.Errorf("unexpected last cell: %+v", last)
	}
}

func TestMonthGrid_TodayFlag(t *testing.T) {
	today := datekey.MustParse("2025-03-15")
	cells := MonthGrid(today, today)

	flagged := 0
	for _, c := range cells {
		if c.IsToday {
			flagged++
			if c.Date != today {
				t.Errorf("wrong cell flagged as today: %s", c.Date)
			}
		}
	}
	if flagged != 1 {
		t.Errorf("expected exactly one today cell, got %d", flagged)
	}

	// Another month has no today cell.
	for _, c := range MonthGrid(datekey.MustParse("2025-05-01"), today) {
		if c.IsToday {
			t.Errorf("unexpected today flag in May: %s", c.Date)
		}
	}
}

func TestWeekGrid(t *testing.T) {
	refs := []string{"2025-03-15", "2025-03-16", "2025-01-01", "2024-12-31", "2024-02-29"}
	for _, s := range refs {
		ref := datekey.MustParse(s)
		week := WeekGrid(ref)

		if len(week) != 7 {
			t.Fatalf("%s: expected 7 days, got %d", s, len(week))
		}
		if week[0].Weekday() != 0 {
			t.Errorf("%s: week must start on Sunday, got %s", s, week[0])
		}
		contains := false
		for i, d := range week {
			if i > 0 && d != week[i-1].AddDays(1) {
				t.Errorf("%s: days %d and %d are not consecutive", s, i-1, i)
			}
			if d == ref {
				contains = true
			}
		}
		if !contains {
			t.Errorf("%s: week does not contain the reference date", s)
		}
	}
}

func TestHourLabel(t *testing.T) {
	tests := map[int]string{
		0:  "12 AM",
		1:  "1 AM",
		11: "11 AM",
		12: "12 PM",
		13: "1 PM",
		23: "11 PM",
	}
	for hour, want := range tests {
		if got := HourLabel(hour); got != want {
			t.Errorf("HourLabel(%d) = %q, want %q", hour, got, want)
		}
	}

	hours := Hours()
	if len(hours) != 24 || hours[0] != 0 || hours[23] != 23 {
		t.Errorf("unexpected hours: %v", hours)
	}
}

func TestMiniCalendar(t *testing.T) {
	// March 2025 starts on a Saturday.
	days := MiniCalendar(datekey.MustParse("2025-03-15"))
	if len(days) != 6+31 {
		t.Fatalf("expected %d entries, got %d", 6+31, len(days))
	}
	for i := 0; i < 6; i++ {
		if days[i] != nil {
			t.Errorf("entry %d should be a blank placeholder", i)
		}
	}
	if days[6] == nil || *days[6] != 1 {
		t.Error("expected day 1 after the blanks")
	}
	if *days[len(days)-1] != 31 {
		t.Errorf("expected last day 31, got %d", *days[len(days)-1])
	}
}

func TestWeekdayAbbr(t *testing.T) {
	if WeekdayAbbr(0) != "SUN" || WeekdayAbbr(6) != "SAT" {
		t.Error("unexpected weekday abbreviations")
	}
}
