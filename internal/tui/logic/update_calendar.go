package logic

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/hy4ri/integral/internal/calendar"
	"github.com/hy4ri/integral/internal/datekey"
	"github.com/hy4ri/integral/internal/tui/state"
)

// timelineScrollStep is the number of hour rows one scroll key moves.
const timelineScrollStep = 3

func (h *Handler) handleCalendarAction(action string) tea.Cmd {
	cal := h.Calendar

	switch action {
	case "left", "right", "today", "mode_month", "mode_week", "mode_day", "up", "down", "top", "bottom":
		// Navigation hands the hour rows back to the selection.
		h.TimelineManual = false
	}

	switch action {
	case "scroll_up", "scroll_down":
		if cal.Mode == calendar.ViewMonth {
			return nil
		}
		h.TimelineManual = true
		if action == "scroll_up" {
			h.Timeline.LineUp(timelineScrollStep)
		} else {
			h.Timeline.LineDown(timelineScrollStep)
		}
	case "left":
		cal.Previous()
		h.EventCursor = 0
	case "right":
		cal.Next()
		h.EventCursor = 0
	case "today":
		cal.GoToday()
		h.EventCursor = 0
	case "mode_month":
		cal.SetMode(calendar.ViewMonth)
		h.EventCursor = 0
	case "mode_week":
		cal.SetMode(calendar.ViewWeek)
		h.EventCursor = 0
	case "mode_day":
		cal.SetMode(calendar.ViewDay)
		h.EventCursor = 0
	case "sidebar":
		cal.ToggleSidebar()
	case "task_events":
		cal.ToggleTasks()
		h.ClampCursors()
	case "search":
		h.PreviousView = h.CurrentView
		h.CurrentView = state.ViewSearch
		h.SearchInput.SetValue(cal.Search)
		h.SearchInput.Focus()
		return textinput.Blink
	case "back":
		if cal.Search != "" {
			cal.SetSearch("")
			h.StatusMsg = "Search cleared"
		}
	case "up":
		if h.EventCursor > 0 {
			h.EventCursor--
		}
	case "down":
		if h.EventCursor < len(h.CursorEvents())-1 {
			h.EventCursor++
		}
	case "top":
		h.EventCursor = 0
	case "bottom":
		h.EventCursor = len(h.CursorEvents()) - 1
		h.ClampCursors()
	case "add":
		return h.openEventForm(cal.Ref)
	case "edit", "select":
		ev, ok := h.SelectedEvent()
		if !ok {
			h.StatusMsg = "No event selected"
			return nil
		}
		h.EventForm = state.NewEditEventForm(ev)
		h.CurrentView = state.ViewEventForm
		return textinput.Blink
	case "delete":
		ev, ok := h.SelectedEvent()
		if !ok {
			h.StatusMsg = "No event selected"
			return nil
		}
		h.Workspace.Events.Delete(ev.ID)
		h.Log.Debug("event deleted", zap.String("id", ev.ID))
		h.StatusMsg = fmt.Sprintf("Deleted %q", ev.Title)
	case "copy":
		ev, ok := h.SelectedEvent()
		if !ok {
			h.StatusMsg = "No event selected"
			return nil
		}
		return copyEventCmd(ev)
	case "summarize":
		ev, ok := h.SelectedEvent()
		if !ok || ev.Description == "" {
			h.StatusMsg = "Selected event has no description"
			return nil
		}
		return h.summarize(ev)
	case "focus_blocks":
		return h.addFocusBlocks()
	}
	return nil
}

func (h *Handler) openEventForm(day datekey.Key) tea.Cmd {
	h.EventForm = state.NewEventForm(day)
	h.CurrentView = state.ViewEventForm
	return textinput.Blink
}

// addFocusBlocks adds the suggested focus blocks on the calendar's
// reference date when the calendar is sparse.
func (h *Handler) addFocusBlocks() tea.Cmd {
	if !calendar.ShouldSuggestFocusBlocks(h.Workspace.Events.Len()) {
		h.StatusMsg = "Your calendar is already busy"
		return nil
	}
	day := h.Calendar.Ref
	for _, draft := range calendar.SuggestFocusBlocks(day) {
		h.Workspace.Events.Add(draft)
	}
	h.StatusMsg = "Added focus blocks on " + day.String()
	return nil
}
