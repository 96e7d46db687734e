// Package ics exports workspace events as an iCalendar feed.
package ics

import (
	"fmt"
	"os"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/hy4ri/integral/internal/model"
)

const (
	productID = "-//Integral//Workspace//EN"

	// floatingLayout is a DATE-TIME with no zone: the event happens at the
	// same wall-clock time wherever it is viewed.
	floatingLayout = "20060102T150405"
)

// Export builds a calendar holding events. Timed events carry floating
// DTSTART/DTEND values; the rest become all-day entries.
func Export(events []model.Event, now time.Time) *ical.Calendar {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(productID)

	for _, ev := range events {
		ve := cal.AddEvent(ev.ID + "@integral")
		ve.SetDtStampTime(now.UTC())
		ve.SetSummary(ev.Title)
		if ev.Description != "" {
			ve.SetDescription(ev.Description)
		}
		if ev.Type != "" {
			ve.AddProperty(ical.ComponentPropertyCategories, string(ev.Type))
		}
		if ev.Priority != "" {
			ve.SetProperty(ical.ComponentPropertyPriority, icalPriority(ev.Priority))
		}

		day := ev.Date.Time(time.Local)
		if start, end, ok := clockRange(ev); ok {
			ve.SetProperty(ical.ComponentPropertyDtStart, day.Add(start).Format(floatingLayout))
			ve.SetProperty(ical.ComponentPropertyDtEnd, day.Add(end).Format(floatingLayout))
			continue
		}
		ve.SetAllDayStartAt(day)
		ve.SetAllDayEndAt(day.AddDate(0, 0, 1))
	}

	return cal
}

// WriteFile serializes events to path.
func WriteFile(path string, events []model.Event, now time.Time) error {
	data := Export(events, now).Serialize()
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		return fmt.Errorf("failed to write calendar file: %w", err)
	}
	return nil
}

func clockRange(ev model.Event) (start, end time.Duration, ok bool) {
	sh, sm, ok := model.ParseClock(ev.StartTime)
	if !ok {
		return 0, 0, false
	}
	eh, em, ok := model.ParseClock(ev.EndTime)
	if !ok {
		return 0, 0, false
	}
	start = time.Duration(sh)*time.Hour + time.Duration(sm)*time.Minute
	end = time.Duration(eh)*time.Hour + time.Duration(em)*time.Minute
	return start, end, true
}

// icalPriority maps to RFC 5545 levels: 1 is highest, 9 lowest.
func icalPriority(p model.Priority) string {
	switch p {
	case model.PriorityHigh:
		return "1"
	case model.PriorityMedium:
		return "5"
	default:
		return "9"
	}
}
