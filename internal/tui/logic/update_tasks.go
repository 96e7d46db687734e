package logic

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hy4ri/integral/internal/model"
	"github.com/hy4ri/integral/internal/tui/state"
)

func (h *Handler) handleTasksAction(action string) tea.Cmd {
	tasks := h.Workspace.Tasks

	switch action {
	case "up":
		if h.TaskCursor > 0 {
			h.TaskCursor--
		}
		return nil
	case "down":
		if h.TaskCursor < len(h.BoardTasks())-1 {
			h.TaskCursor++
		}
		return nil
	case "top":
		h.TaskCursor = 0
		return nil
	case "bottom":
		h.TaskCursor = len(h.BoardTasks()) - 1
		h.ClampCursors()
		return nil
	case "add":
		category := model.CategoryPending
		if t, ok := h.SelectedTask(); ok && t.Category != "" {
			category = t.Category
		}
		h.TaskForm = state.NewTaskForm(category)
		h.CurrentView = state.ViewTaskForm
		return textinput.Blink
	case "recommend":
		return h.recommendTasks()
	case "analyze":
		return h.analyzeTasks()
	}

	task, ok := h.SelectedTask()
	if !ok {
		switch action {
		case "edit", "select", "toggle", "delete", "mirror", "reminder":
			h.StatusMsg = "No task selected"
		}
		return nil
	}

	switch action {
	case "edit", "select":
		h.TaskForm = state.NewEditTaskForm(task)
		h.CurrentView = state.ViewTaskForm
		return textinput.Blink
	case "toggle":
		if updated, ok := tasks.Toggle(task.ID); ok {
			if updated.Completed {
				h.StatusMsg = "Task completed"
			} else {
				h.StatusMsg = "Task reopened"
			}
		}
	case "delete":
		tasks.Delete(task.ID)
		h.StatusMsg = fmt.Sprintf("Deleted %q", task.Text)
	case "mirror":
		if task.AddedToCalendar {
			h.StatusMsg = "Task is already on the calendar"
			return nil
		}
		draft, ok := tasks.Mirror(task.ID)
		if !ok {
			h.StatusMsg = "Set a due date to add this task to the calendar"
			return nil
		}
		h.Workspace.Events.Add(draft)
		h.StatusMsg = "Added to calendar on " + draft.Date.String()
	case "reminder":
		return h.suggestReminder(task)
	}
	return nil
}
