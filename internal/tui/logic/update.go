// Package logic turns Bubble Tea messages into state changes and store calls.
package logic

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hy4ri/integral/internal/store"
	"github.com/hy4ri/integral/internal/tui/state"
)

// changeBuffer bounds pending bus notifications. Changes beyond it are
// dropped since every storeChangedMsg re-derives the whole view.
const changeBuffer = 64

type Handler struct {
	*state.State

	changes     chan store.Change
	unsubscribe func()
}

// NewHandler wires the handler to the workspace bus.
func NewHandler(s *state.State) *Handler {
	h := &Handler{State: s}
	if s.Workspace != nil {
		h.changes = make(chan store.Change, changeBuffer)
		h.unsubscribe = s.Workspace.Bus.Subscribe(func(c store.Change) {
			select {
			case h.changes <- c:
			default:
			}
		})
	}
	return h
}

// Close detaches the handler from the bus.
func (h *Handler) Close() {
	if h.unsubscribe != nil {
		h.unsubscribe()
	}
}

// Update implements tea.Model.
func (h *Handler) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return h.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		return h.handleWindowSizeMsg(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		h.Spinner, cmd = h.Spinner.Update(msg)
		return cmd

	case storeChangedMsg:
		h.DataVersion++
		h.ClampCursors()
		return h.waitForChange()

	case CheckDueMsg:
		return h.handleCheckDue(msg.Time())

	case errMsg:
		h.AIBusy = false
		h.Err = msg.err
		return nil

	case statusMsg:
		h.StatusMsg = msg.msg
		return nil

	case recommendationsMsg:
		h.AIBusy = false
		h.Recommendations = msg.items
		switch {
		case msg.err != nil:
			h.StatusMsg = aiFailureNotice("Could not fetch recommendations", msg.err)
		case len(msg.items) == 0:
			h.StatusMsg = "No recommendations available"
		default:
			h.StatusMsg = "Recommendations ready"
		}
		return nil

	case aiNoteMsg:
		h.AIBusy = false
		h.AINote = msg.title + ": " + msg.text
		if msg.err != nil {
			h.StatusMsg = aiFailureNotice("AI unavailable, showing a fallback", msg.err)
		}
		return nil

	case analysisMsg:
		h.AIBusy = false
		if msg.err != nil {
			h.StatusMsg = aiFailureNotice("Could not complete the task analysis", msg.err)
			return nil
		}
		h.Analysis = msg.text
		h.StatusMsg = "Your tasks have been analyzed"
		return nil

	case aiChunkMsg:
		return h.handleChunk(msg)
	}

	// Forward non-key messages (like blink) to active inputs
	switch h.CurrentView {
	case state.ViewEventForm:
		if h.EventForm != nil {
			return h.EventForm.Update(msg)
		}
	case state.ViewTaskForm:
		if h.TaskForm != nil {
			return h.TaskForm.Update(msg)
		}
	case state.ViewLogin:
		if h.LoginForm != nil {
			return h.LoginForm.Update(msg)
		}
	case state.ViewWriter:
		if h.Writer != nil {
			return h.Writer.Update(msg)
		}
	case state.ViewSearch:
		var cmd tea.Cmd
		h.SearchInput, cmd = h.SearchInput.Update(msg)
		return cmd
	}

	return nil
}

func (h *Handler) handleWindowSizeMsg(msg tea.WindowSizeMsg) tea.Cmd {
	h.Width = msg.Width
	h.Height = msg.Height

	width := h.formWidth()
	if h.TaskForm != nil {
		h.TaskForm.SetWidth(width)
	}
	if h.EventForm != nil {
		h.EventForm.SetWidth(width)
	}
	if h.Writer != nil {
		h.Writer.SetWidth(width)
	}
	return nil
}

// formWidth is the input width of dialogs for the current terminal.
func (h *Handler) formWidth() int {
	return min(max(h.Width-20, 20), 60)
}

func (h *Handler) handleKeyMsg(msg tea.KeyMsg) tea.Cmd {
	// Clear transient notices on any key
	h.Err = nil
	h.StatusMsg = ""

	switch h.CurrentView {
	case state.ViewLogin:
		return h.handleLoginKey(msg)
	case state.ViewEventForm:
		return h.handleEventFormKey(msg)
	case state.ViewTaskForm:
		return h.handleTaskFormKey(msg)
	case state.ViewSearch:
		return h.handleSearchKey(msg)
	case state.ViewWriter:
		return h.handleWriterKey(msg)
	case state.ViewHelp:
		switch msg.String() {
		case "esc", "?", "q":
			h.CurrentView = h.PreviousView
			h.HelpView.GotoTop()
			return nil
		case "ctrl+c":
			return tea.Quit
		}
		var cmd tea.Cmd
		h.HelpView, cmd = h.HelpView.Update(msg)
		return cmd
	}

	action, ok := h.KeyState.HandleKey(msg, h.Keymap)
	if !ok || action == "" {
		return nil
	}

	switch action {
	case "quit":
		return tea.Quit
	case "help":
		h.PreviousView = h.CurrentView
		h.CurrentView = state.ViewHelp
		return nil
	case "logout":
		return h.logout()
	case "writer":
		return h.openWriter()
	case "tab_dashboard":
		h.switchTab(state.TabDashboard)
		return nil
	case "tab_calendar":
		h.switchTab(state.TabCalendar)
		return nil
	case "tab_tasks":
		h.switchTab(state.TabTasks)
		return nil
	case "next_tab":
		h.switchTab((h.CurrentTab + 1) % 3)
		return nil
	case "prev_tab":
		h.switchTab((h.CurrentTab + 2) % 3)
		return nil
	}

	switch h.CurrentTab {
	case state.TabCalendar:
		return h.handleCalendarAction(action)
	case state.TabTasks:
		return h.handleTasksAction(action)
	default:
		return h.handleDashboardAction(action)
	}
}

func (h *Handler) switchTab(tab state.Tab) {
	h.CurrentTab = tab
	h.KeyState.Reset()
	h.ClampCursors()
}

func (h *Handler) handleDashboardAction(action string) tea.Cmd {
	switch action {
	case "add":
		return h.openEventForm(h.Calendar.Today())
	case "focus_blocks":
		return h.addFocusBlocks()
	case "recommend":
		return h.recommendTasks()
	case "analyze":
		return h.analyzeTasks()
	case "today":
		h.Calendar.GoToday()
		h.switchTab(state.TabCalendar)
	}
	return nil
}
