// Package tui provides the terminal user interface for the workspace.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hy4ri/integral/internal/calendar"
	"github.com/hy4ri/integral/internal/tui/logic"
	"github.com/hy4ri/integral/internal/tui/state"
	"github.com/hy4ri/integral/internal/tui/ui"
)

// Deps are the collaborators the program drives.
type Deps = state.Deps

// App is the main Bubble Tea model. It shares one State between the
// handler that mutates it and the renderer that draws it.
type App struct {
	state    *state.State
	handler  *logic.Handler
	renderer *ui.Renderer
}

// NewApp builds the application model. now may be nil to use time.Now.
func NewApp(deps Deps, mode calendar.ViewMode, now func() time.Time) *App {
	s := state.New(deps, mode, now)
	return &App{
		state:    s,
		handler:  logic.NewHandler(s),
		renderer: ui.NewRenderer(s),
	}
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return a.handler.Init()
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return a, a.handler.Update(msg)
}

// View implements tea.Model.
func (a *App) View() string {
	return a.renderer.View()
}

// Close detaches the app from the workspace bus.
func (a *App) Close() {
	a.handler.Close()
}

// CheckDue returns the message that triggers an upcoming-event check.
func CheckDue(t time.Time) tea.Msg {
	return logic.CheckDueMsg(t)
}
