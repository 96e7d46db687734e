// Package state holds the TUI's shared application state.
package state

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"go.uber.org/zap"

	"github.com/hy4ri/integral/internal/ai"
	"github.com/hy4ri/integral/internal/auth"
	"github.com/hy4ri/integral/internal/calendar"
	"github.com/hy4ri/integral/internal/config"
	"github.com/hy4ri/integral/internal/store"
	"github.com/hy4ri/integral/internal/tui/styles"
)

// View represents the current view/screen.
type View int

const (
	ViewLogin View = iota
	ViewMain
	ViewEventForm
	ViewTaskForm
	ViewSearch
	ViewHelp
	ViewWriter
)

// Tab represents a top-level tab.
type Tab int

const (
	TabDashboard Tab = iota
	TabCalendar
	TabTasks
)

// TabInfo holds tab metadata.
type TabInfo struct {
	Tab       Tab
	Icon      string
	Name      string
	ShortName string
	Key       string
}

// GetTabDefinitions returns the tab definitions.
func GetTabDefinitions() []TabInfo {
	return []TabInfo{
		{TabDashboard, "🏠", "Dashboard", "Dash", "1"},
		{TabCalendar, "🗓️", "Calendar", "Cal", "2"},
		{TabTasks, "✅", "Tasks", "Tsk", "3"},
	}
}

// Deps are the collaborators the TUI drives.
type Deps struct {
	Workspace *store.Workspace
	Auth      *auth.Service
	AI        *ai.Client
	Config    *config.Config
	Log       *zap.Logger
}

// State holds the application state.
// All fields are exported to allow access from logic and ui packages.
type State struct {
	Deps

	// View state
	CurrentView  View
	PreviousView View
	CurrentTab   Tab

	// Calendar surface
	Calendar    *calendar.Controller
	EventCursor int
	// Timeline scrolls the hour rows of the day and week views. While
	// TimelineManual is false it follows the selected event.
	Timeline       viewport.Model
	TimelineManual bool

	// Task board
	TaskCursor int

	// AI output shown on the dashboard
	Recommendations []string
	Analysis        string
	AINote          string
	AIBusy          bool

	// Notification bookkeeping: event ID to the date it was announced for
	Notified map[string]string

	// Forms
	EventForm *EventForm
	TaskForm  *TaskForm
	LoginForm *LoginForm
	Writer    *Writer

	// Search state
	SearchInput textinput.Model

	// UI state
	Err       error
	StatusMsg string
	Width     int
	Height    int

	// DataVersion increments on every store change
	DataVersion int64

	// Components
	Spinner  spinner.Model
	HelpView viewport.Model
	Keymap   KeymapData
	KeyState *KeyState
}

// New builds the initial state. The login screen is shown when no user
// session exists.
func New(deps Deps, mode calendar.ViewMode, now func() time.Time) *State {
	if deps.Log == nil {
		deps.Log = zap.NewNop()
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.Spinner

	search := textinput.New()
	search.Placeholder = "Search events..."
	search.CharLimit = 100
	search.Width = 40

	cal := calendar.NewController(mode, now)
	if deps.Config != nil {
		cal.ShowTasks = deps.Config.UI.ShowTasks
	}

	st := &State{
		Deps:        deps,
		CurrentView: ViewMain,
		CurrentTab:  TabDashboard,
		Calendar:    cal,
		Notified:    make(map[string]string),
		SearchInput: search,
		Timeline:    viewport.New(0, 0),
		HelpView:    viewport.New(0, 0),
		Spinner:     s,
		Keymap:      DefaultKeymap(),
		KeyState:    &KeyState{},
	}

	if deps.Auth != nil {
		if _, ok := deps.Auth.Current(); !ok {
			st.CurrentView = ViewLogin
			st.LoginForm = NewLoginForm()
		}
	}

	return st
}

// Narrow reports whether the terminal is below the configured narrow width.
func (s *State) Narrow() bool {
	limit := 100
	if s.Config != nil && s.Config.UI.NarrowWidth > 0 {
		limit = s.Config.UI.NarrowWidth
	}
	return s.Width < limit
}
