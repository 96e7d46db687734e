package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/hy4ri/integral/internal/calendar"
	"github.com/hy4ri/integral/internal/tui/styles"
)

// renderDashboard shows the greeting, task counters, today's agenda, the
// focus block hint and AI recommendations.
func (r *Renderer) renderDashboard(width, height int) string {
	now := r.Calendar.Now()
	var sections []string

	greeting := "Good evening"
	switch h := now.Hour(); {
	case h < 12:
		greeting = "Good morning"
	case h < 18:
		greeting = "Good afternoon"
	}
	if name, ok := r.currentUser(); ok {
		greeting += ", " + name
	}
	sections = append(sections, styles.Title.Render(greeting)+"  "+styles.HelpDesc.Render(now.Format("Monday, January 2")))

	stats := r.Workspace.Tasks.Stats()
	cards := []struct {
		label string
		value int
	}{
		{"Active Tasks", stats.ActiveTasks},
		{"Completed Today", stats.CompletedToday},
		{"Tasks Assigned", stats.TasksAssigned},
		{"Tasks Received", stats.TasksReceived},
	}
	cardWidth := (width - 4*styles.Card.GetHorizontalFrameSize()) / 4
	if cardWidth < 12 {
		cardWidth = 12
	}
	var rendered []string
	for _, c := range cards {
		body := styles.CardValue.Render(fmt.Sprintf("%d", c.value)) + "\n" + styles.HelpDesc.Render(truncateString(c.label, cardWidth))
		rendered = append(rendered, styles.Card.Width(cardWidth).Render(body))
	}
	if r.Narrow() {
		sections = append(sections, lipgloss.JoinVertical(lipgloss.Left,
			lipgloss.JoinHorizontal(lipgloss.Top, rendered[0], rendered[1]),
			lipgloss.JoinHorizontal(lipgloss.Top, rendered[2], rendered[3])))
	} else {
		sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Top, rendered...))
	}

	sections = append(sections, r.renderAgenda(width))

	if calendar.ShouldSuggestFocusBlocks(r.Workspace.Events.Len()) {
		sections = append(sections, styles.HelpDesc.Render("Your calendar looks light. Press ")+
			styles.HelpKey.Render("F")+styles.HelpDesc.Render(" to add focus blocks for deep work and planning."))
	}

	sections = append(sections, r.renderRecommendations(width))

	return lipgloss.NewStyle().MaxHeight(height).Render(strings.Join(sections, "\n\n"))
}

func (r *Renderer) renderAgenda(width int) string {
	var b strings.Builder
	b.WriteString(styles.SectionHeader.Render("Today's Schedule") + "\n")

	events := r.Workspace.Events.ForDate(r.Calendar.Today())
	if len(events) == 0 {
		b.WriteString(styles.HelpDesc.Render("Nothing scheduled today"))
		return b.String()
	}
	sort.SliceStable(events, func(i, j int) bool { return events[i].StartTime < events[j].StartTime })

	for _, ev := range events {
		when := ev.TimeRange()
		if when == "" {
			when = "all day"
		}
		dot := lipgloss.NewStyle().Foreground(styles.EventTypeColor(ev.Type)).Render("●")
		line := fmt.Sprintf("%s %-13s %s", dot, when, truncateString(ev.Title, width-20))
		b.WriteString(line + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (r *Renderer) renderRecommendations(width int) string {
	var b strings.Builder
	b.WriteString(styles.SectionHeader.Render("AI Suggestions") + "\n")

	switch {
	case r.AIBusy:
		b.WriteString(r.Spinner.View() + " Thinking...")
	case len(r.Recommendations) > 0:
		for _, rec := range r.Recommendations {
			b.WriteString("• " + truncateString(rec, width-4) + "\n")
		}
	case r.AI == nil || !r.AI.Enabled():
		b.WriteString(styles.HelpDesc.Render("Set OPENAI_API_KEY to enable task suggestions"))
	default:
		b.WriteString(styles.HelpDesc.Render("Press ") + styles.HelpKey.Render("R") + styles.HelpDesc.Render(" for task ideas based on your list"))
	}
	if r.AINote != "" {
		b.WriteString("\n" + lipgloss.NewStyle().Width(width-2).Render(r.AINote))
	}
	if r.Analysis != "" {
		b.WriteString("\n\n" + styles.SectionHeader.Render("Task Analysis") + "\n")
		b.WriteString(lipgloss.NewStyle().Width(width-2).Render(r.Analysis))
	}
	return strings.TrimRight(b.String(), "\n")
}
