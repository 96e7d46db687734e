// Package model defines the records the workspace persists: events, tasks and users.
package model

import (
	"strconv"
	"strings"

	"github.com/hy4ri/integral/internal/datekey"
)

// EventType is the closed set of calendar event kinds. It drives color and filtering.
type EventType string

const (
	EventMeeting  EventType = "meeting"
	EventTask     EventType = "task"
	EventPersonal EventType = "personal"
	EventOther    EventType = "other"
)

// EventTypes lists every EventType in display order.
var EventTypes = []EventType{EventMeeting, EventTask, EventPersonal, EventOther}

// Valid reports whether t is one of the known event types.
func (t EventType) Valid() bool {
	switch t {
	case EventMeeting, EventTask, EventPersonal, EventOther:
		return true
	}
	return false
}

// Priority is an optional importance marker. The empty value means none.
type Priority string

const (
	PriorityNone   Priority = ""
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Valid reports whether p is empty or a known priority.
func (p Priority) Valid() bool {
	switch p {
	case PriorityNone, PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// Event is a calendar entry. Date is the sole key for day bucketing.
type Event struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Date        datekey.Key `json:"date"`
	StartTime   string      `json:"startTime,omitempty"`
	EndTime     string      `json:"endTime,omitempty"`
	Type        EventType   `json:"type"`
	Description string      `json:"description,omitempty"`
	Completed   *bool       `json:"completed,omitempty"`
	Priority    Priority    `json:"priority,omitempty"`
}

// EventDraft is an Event before the store assigns it an ID.
type EventDraft struct {
	Title       string
	Date        datekey.Key
	StartTime   string
	EndTime     string
	Type        EventType
	Description string
	Completed   *bool
	Priority    Priority
}

// EventPatch holds the fields of a partial update. Nil fields are left untouched.
type EventPatch struct {
	Title       *string
	Date        *datekey.Key
	StartTime   *string
	EndTime     *string
	Type        *EventType
	Description *string
	Completed   *bool
	Priority    *Priority
}

// WithID turns the draft into an Event.
func (d EventDraft) WithID(id string) Event {
	return Event{
		ID:          id,
		Title:       d.Title,
		Date:        d.Date,
		StartTime:   d.StartTime,
		EndTime:     d.EndTime,
		Type:        d.Type,
		Description: d.Description,
		Completed:   d.Completed,
		Priority:    d.Priority,
	}.Clone()
}

// Clone returns a copy of e that shares no pointers with it.
func (e Event) Clone() Event {
	if e.Completed != nil {
		c := *e.Completed
		e.Completed = &c
	}
	return e
}

// Apply merges the patch into e.
func (p EventPatch) Apply(e *Event) {
	if p.Title != nil {
		e.Title = *p.Title
	}
	if p.Date != nil {
		e.Date = *p.Date
	}
	if p.StartTime != nil {
		e.StartTime = *p.StartTime
	}
	if p.EndTime != nil {
		e.EndTime = *p.EndTime
	}
	if p.Type != nil {
		e.Type = *p.Type
	}
	if p.Description != nil {
		e.Description = *p.Description
	}
	if p.Completed != nil {
		c := *p.Completed
		e.Completed = &c
	}
	if p.Priority != nil {
		e.Priority = *p.Priority
	}
}

// Timed reports whether the event has both a parsable start and end time.
func (e *Event) Timed() bool {
	_, _, okStart := ParseClock(e.StartTime)
	_, _, okEnd := ParseClock(e.EndTime)
	return okStart && okEnd
}

// TimeRange returns "HH:MM - HH:MM", or "" for events without both times.
func (e *Event) TimeRange() string {
	if e.StartTime == "" || e.EndTime == "" {
		return ""
	}
	return e.StartTime + " - " + e.EndTime
}

// ParseClock reads a 24-hour "HH:MM" value.
func ParseClock(s string) (hours, minutes int, ok bool) {
	h, m, found := strings.Cut(strings.TrimSpace(s), ":")
	if !found {
		return 0, 0, false
	}
	hours, err := strconv.Atoi(h)
	if err != nil || hours < 0 || hours > 23 {
		return 0, 0, false
	}
	minutes, err = strconv.Atoi(m)
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, 0, false
	}
	return hours, minutes, true
}
