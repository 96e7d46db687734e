// Package ui renders the application state.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/hy4ri/integral/internal/tui/state"
	"github.com/hy4ri/integral/internal/tui/styles"
)

type Renderer struct {
	*state.State
}

func NewRenderer(s *state.State) *Renderer {
	return &Renderer{State: s}
}

func (r *Renderer) View() string {
	if r.Width == 0 {
		return "Loading..."
	}

	switch r.CurrentView {
	case state.ViewLogin:
		return r.center(r.renderLogin())
	case state.ViewHelp:
		return r.renderHelp()
	case state.ViewEventForm:
		return r.center(r.renderEventForm())
	case state.ViewTaskForm:
		return r.center(r.renderTaskForm())
	case state.ViewWriter:
		return r.center(r.renderWriter())
	default:
		return r.renderMainView()
	}
}

func (r *Renderer) center(content string) string {
	return lipgloss.Place(r.Width, r.Height, lipgloss.Center, lipgloss.Center, content)
}

// renderMainView renders the main layout with tab bar and content.
func (r *Renderer) renderMainView() string {
	tabBar := r.renderTabBar()

	bottomBar := r.renderStatusBar()
	if r.CurrentView == state.ViewSearch {
		bottomBar = lipgloss.JoinVertical(lipgloss.Left, r.renderSearch(), bottomBar)
	}

	contentHeight := r.Height - lipgloss.Height(tabBar) - lipgloss.Height(bottomBar)
	if contentHeight < 3 {
		contentHeight = 3
	}

	var content string
	switch r.CurrentTab {
	case state.TabCalendar:
		content = r.renderCalendar(r.Width, contentHeight)
	case state.TabTasks:
		content = r.renderTaskBoard(r.Width, contentHeight)
	default:
		content = r.renderDashboard(r.Width, contentHeight)
	}
	content = lipgloss.Place(r.Width, contentHeight, lipgloss.Left, lipgloss.Top, content)

	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, bottomBar)
}

// renderTabBar renders the top tab bar.
func (r *Renderer) renderTabBar() string {
	tabs := state.GetTabDefinitions()

	useShortLabels := r.Width < 60
	useMinimalLabels := r.Width < 35

	var tabStrs []string
	for _, t := range tabs {
		var label string
		switch {
		case useMinimalLabels:
			label = t.Icon
		case useShortLabels:
			label = fmt.Sprintf("%s %s", t.Icon, t.ShortName)
		default:
			label = fmt.Sprintf("%s %s", t.Icon, t.Name)
		}

		if r.CurrentTab == t.Tab {
			tabStrs = append(tabStrs, styles.TabActive.Render(label))
		} else {
			tabStrs = append(tabStrs, styles.Tab.Render(label))
		}
	}

	tabLine := strings.Join(tabStrs, " ")
	if user, ok := r.currentUser(); ok && !useShortLabels {
		name := styles.HelpDesc.Render(user)
		gap := r.Width - 4 - lipgloss.Width(tabLine) - lipgloss.Width(name)
		if gap > 0 {
			tabLine += strings.Repeat(" ", gap) + name
		}
	}

	maxWidth := r.Width - 4
	if lipgloss.Width(tabLine) > maxWidth && maxWidth > 0 {
		tabLine = lipgloss.NewStyle().MaxWidth(maxWidth).Render(tabLine)
	}

	return styles.TabBar.Width(r.Width).Render(tabLine)
}

func (r *Renderer) currentUser() (string, bool) {
	if r.Auth == nil {
		return "", false
	}
	u, ok := r.Auth.Current()
	return u.Name, ok
}

// renderStatusBar shows the error or notice on the left and key hints on
// the right.
func (r *Renderer) renderStatusBar() string {
	var hints []string
	for _, h := range r.contextualHints() {
		hints = append(hints, styles.StatusBarKey.Render(h[0])+styles.StatusBarText.Render(":"+h[1]))
	}
	right := strings.Join(hints, styles.StatusBarText.Render(" "))
	padding := styles.StatusBar.GetHorizontalFrameSize()

	room := r.Width - lipgloss.Width(right) - padding - 2
	if room < 10 {
		right = ""
		room = r.Width - padding
	}

	left := ""
	switch {
	case r.Err != nil:
		errStr := strings.ReplaceAll(r.Err.Error(), "\n", " ")
		left = styles.StatusBarError.Render(truncateString("Error: "+errStr, room))
	case r.AIBusy:
		left = r.Spinner.View() + styles.StatusBarText.Render(" Thinking...")
	case r.StatusMsg != "":
		msgStr := strings.ReplaceAll(r.StatusMsg, "\n", " ")
		left = styles.StatusBarSuccess.Render(truncateString(msgStr, room))
	}

	spacing := r.Width - lipgloss.Width(left) - lipgloss.Width(right) - padding
	if spacing < 0 {
		spacing = 0
	}

	return styles.StatusBar.Width(r.Width).Render(left + strings.Repeat(" ", spacing) + right)
}

func (r *Renderer) contextualHints() [][2]string {
	if r.CurrentView == state.ViewSearch {
		return [][2]string{{"enter", "apply"}, {"esc", "clear"}}
	}
	if r.CurrentView == state.ViewWriter {
		return [][2]string{{"ctrl+r", "improve"}, {"ctrl+s", "apply"}, {"esc", "close"}}
	}
	var hints [][2]string
	switch r.CurrentTab {
	case state.TabCalendar:
		hints = [][2]string{{"h/l", "prev/next"}, {"m/w/d", "view"}, {"a", "add"}, {"W", "writer"}, {"/", "search"}}
	case state.TabTasks:
		hints = [][2]string{{"a", "add"}, {"space", "done"}, {"c", "to calendar"}, {"A", "analyze"}}
	default:
		hints = [][2]string{{"a", "add event"}, {"R", "ideas"}, {"A", "analyze"}}
	}
	if r.Narrow() {
		hints = hints[:1]
	}
	return append(hints, [2]string{"?", "help"})
}
