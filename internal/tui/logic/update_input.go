package logic

import (
	"errors"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hy4ri/integral/internal/auth"
	"github.com/hy4ri/integral/internal/tui/state"
)

func (h *Handler) handleLoginKey(msg tea.KeyMsg) tea.Cmd {
	if h.LoginForm == nil {
		h.LoginForm = state.NewLoginForm()
	}
	switch msg.String() {
	case "ctrl+c", "esc":
		return tea.Quit
	case "enter":
		return h.submitLogin()
	}
	return h.LoginForm.Update(msg)
}

func (h *Handler) submitLogin() tea.Cmd {
	f := h.LoginForm
	name, email, password := f.Values()

	var err error
	if f.Signup {
		_, err = h.Auth.Signup(name, email, password)
	} else {
		_, err = h.Auth.Login(email, password, f.Remember)
	}

	switch {
	case errors.Is(err, auth.ErrMissingFields):
		h.StatusMsg = "Please fill in all fields"
		return nil
	case err != nil:
		h.Err = err
		return nil
	}

	user, _ := h.Auth.Current()
	h.LoginForm = nil
	h.CurrentView = state.ViewMain
	h.CurrentTab = state.TabDashboard
	h.StatusMsg = "Welcome, " + user.Name
	return nil
}

func (h *Handler) logout() tea.Cmd {
	if err := h.Auth.Logout(); err != nil {
		h.Err = err
		return nil
	}
	h.Recommendations = nil
	h.AINote = ""
	h.LoginForm = state.NewLoginForm()
	h.CurrentView = state.ViewLogin
	return textinput.Blink
}

func (h *Handler) handleEventFormKey(msg tea.KeyMsg) tea.Cmd {
	f := h.EventForm
	if f == nil {
		h.CurrentView = state.ViewMain
		return nil
	}

	switch msg.String() {
	case "esc":
		h.EventForm = nil
		h.CurrentView = state.ViewMain
		return nil
	case "ctrl+c":
		return tea.Quit
	case "enter":
		return h.submitEventForm()
	}
	return f.Update(msg)
}

func (h *Handler) submitEventForm() tea.Cmd {
	f := h.EventForm
	events := h.Workspace.Events

	if f.Editing() {
		patch, err := f.Patch()
		if err != nil {
			h.StatusMsg = err.Error()
			return nil
		}
		if _, ok := events.Update(f.EventID, patch); !ok {
			h.StatusMsg = "Event no longer exists"
		} else {
			h.StatusMsg = "Event updated"
		}
		h.Calendar.Select(*patch.Date)
	} else {
		draft, err := f.Draft()
		if err != nil {
			h.StatusMsg = err.Error()
			return nil
		}
		ev := events.Add(draft)
		h.Calendar.Select(ev.Date)
		h.StatusMsg = "Event added"
	}

	h.EventForm = nil
	h.CurrentView = state.ViewMain
	h.ClampCursors()
	return nil
}

func (h *Handler) handleTaskFormKey(msg tea.KeyMsg) tea.Cmd {
	f := h.TaskForm
	if f == nil {
		h.CurrentView = state.ViewMain
		return nil
	}

	switch msg.String() {
	case "esc":
		h.TaskForm = nil
		h.CurrentView = state.ViewMain
		return nil
	case "ctrl+c":
		return tea.Quit
	case "enter":
		return h.submitTaskForm()
	}
	return f.Update(msg)
}

func (h *Handler) submitTaskForm() tea.Cmd {
	f := h.TaskForm
	tasks := h.Workspace.Tasks

	if f.Editing() {
		patch, err := f.Patch()
		if err != nil {
			h.StatusMsg = err.Error()
			return nil
		}
		if _, ok := tasks.Update(f.TaskID, patch); !ok {
			h.StatusMsg = "Task no longer exists"
		} else {
			h.StatusMsg = "Task updated"
		}
	} else {
		draft, err := f.Draft()
		if err != nil {
			h.StatusMsg = err.Error()
			return nil
		}
		tasks.Add(draft)
		h.TaskCursor = 0
		h.StatusMsg = "Task added"
	}

	h.TaskForm = nil
	h.CurrentView = state.ViewMain
	h.ClampCursors()
	return nil
}

// handleSearchKey filters the calendar as the query is typed. Enter keeps
// the filter, esc clears it.
func (h *Handler) handleSearchKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		h.SearchInput.Blur()
		h.SearchInput.SetValue("")
		h.Calendar.SetSearch("")
		h.CurrentView = state.ViewMain
		h.ClampCursors()
		return nil
	case "enter":
		h.SearchInput.Blur()
		h.CurrentView = state.ViewMain
		h.EventCursor = 0
		return nil
	case "ctrl+c":
		return tea.Quit
	}

	var cmd tea.Cmd
	h.SearchInput, cmd = h.SearchInput.Update(msg)
	h.Calendar.SetSearch(h.SearchInput.Value())
	h.EventCursor = 0
	return cmd
}
