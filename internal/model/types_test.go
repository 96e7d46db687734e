package model

import (
	"encoding/json"
	"testing"

	"github.com/hy4ri/integral/internal/datekey"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		in     string
		h, m   int
		wantOK bool
	}{
		{"09:00", 9, 0, true},
		{"23:59", 23, 59, true},
		{"0:05", 0, 5, true},
		{"24:00", 0, 0, false},
		{"10:60", 0, 0, false},
		{"", 0, 0, false},
		{"noon", 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			h, m, ok := ParseClock(tt.in)
			if ok != tt.wantOK {
				t.Fatalf("ParseClock(%q) ok = %v, want %v", tt.in, ok, tt.wantOK)
			}
			if ok && (h != tt.h || m != tt.m) {
				t.Errorf("ParseClock(%q) = %d:%d, want %d:%d", tt.in, h, m, tt.h, tt.m)
			}
		})
	}
}

func TestEventPatchApply(t *testing.T) {
	e := Event{ID: "1", Title: "Standup", Type: EventMeeting, StartTime: "09:00", EndTime: "09:15"}
	title := "Daily standup"
	done := true
	EventPatch{Title: &title, Completed: &done}.Apply(&e)

	if e.Title != "Daily standup" {
		t.Errorf("title not merged: %q", e.Title)
	}
	if e.StartTime != "09:00" || e.Type != EventMeeting {
		t.Error("untouched fields changed")
	}
	if e.Completed == nil || !*e.Completed {
		t.Error("completed not merged")
	}
}

func TestTaskPatchClearDueDate(t *testing.T) {
	due := datekey.MustParse("2025-03-15")
	task := Task{ID: "t", DueDate: &due}
	TaskPatch{ClearDueDate: true}.Apply(&task)
	if task.DueDate != nil {
		t.Error("expected due date to be cleared")
	}
}

func TestEventJSONFieldNames(t *testing.T) {
	data, err := json.Marshal(Event{ID: "e", Title: "Demo", Date: datekey.MustParse("2025-03-15"), StartTime: "10:00", EndTime: "11:00", Type: EventMeeting})
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	for _, key := range []string{"id", "title", "date", "startTime", "endTime", "type"} {
		if _, ok := raw[key]; !ok {
			t.Errorf("missing json key %q in %s", key, data)
		}
	}
	if raw["date"] != "2025-03-15" {
		t.Errorf("unexpected date encoding: %v", raw["date"])
	}
}

func TestTimed(t *testing.T) {
	timed := Event{StartTime: "09:00", EndTime: "10:30"}
	if !timed.Timed() {
		t.Error("expected timed event")
	}
	untimed := Event{StartTime: "09:00"}
	if untimed.Timed() {
		t.Error("event without end time should not be timed")
	}
}
