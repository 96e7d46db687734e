package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/hy4ri/integral/internal/model"
	"github.com/hy4ri/integral/internal/tui/state"
	"github.com/hy4ri/integral/internal/tui/styles"
)

var categoryTitles = map[string]string{
	model.CategoryPending:  "Pending",
	model.CategoryReceived: "Received",
	model.CategoryAssigned: "Assigned",
}

// renderTaskBoard renders one column per category, side by side on wide
// terminals and stacked on narrow ones.
func (r *Renderer) renderTaskBoard(width, height int) string {
	tasks := r.BoardTasks()
	selected, _ := r.SelectedTask()

	stats := r.Workspace.Tasks.Stats()
	header := styles.Title.Render("Tasks") + "  " + styles.HelpDesc.Render(
		fmt.Sprintf("%d active · %d done today", stats.ActiveTasks, stats.CompletedToday))

	order := append([]string(nil), state.Categories...)
	groups := make(map[string][]model.Task)
	for _, t := range tasks {
		if _, known := categoryTitles[t.Category]; !known && groups[t.Category] == nil {
			order = append(order, t.Category)
		}
		groups[t.Category] = append(groups[t.Category], t)
	}

	stacked := r.Narrow()
	colWidth := width
	if !stacked {
		colWidth = width/len(order) - 1
	}

	var columns []string
	for _, c := range order {
		columns = append(columns, r.renderTaskColumn(c, groups[c], selected.ID, colWidth))
	}

	var body string
	if stacked {
		body = strings.Join(columns, "\n\n")
	} else {
		body = lipgloss.JoinHorizontal(lipgloss.Top, joinWithGap(columns)...)
	}

	return lipgloss.NewStyle().MaxHeight(height).Render(lipgloss.JoinVertical(lipgloss.Left, header, "", body))
}

func joinWithGap(columns []string) []string {
	out := make([]string, 0, len(columns)*2)
	for i, c := range columns {
		if i > 0 {
			out = append(out, " ")
		}
		out = append(out, c)
	}
	return out
}

func (r *Renderer) renderTaskColumn(category string, tasks []model.Task, selectedID string, width int) string {
	title, ok := categoryTitles[category]
	if !ok {
		title = category
	}

	var b strings.Builder
	b.WriteString(styles.SectionHeader.Render(fmt.Sprintf("%s (%d)", title, len(tasks))) + "\n")
	if len(tasks) == 0 {
		b.WriteString(styles.HelpDesc.Render("  No tasks"))
	}

	today := r.Calendar.Today()
	for _, t := range tasks {
		b.WriteString(r.renderTaskItem(t, t.ID == selectedID, today.String(), width) + "\n")
	}
	return lipgloss.NewStyle().Width(width).Render(strings.TrimRight(b.String(), "\n"))
}

func (r *Renderer) renderTaskItem(t model.Task, selected bool, today string, width int) string {
	check := styles.CheckboxUnchecked
	if t.Completed {
		check = styles.CheckboxChecked
	}

	var suffix []string
	if t.Priority != model.PriorityNone {
		suffix = append(suffix, styles.GetPriorityStyle(t.Priority).Render(" !"+strings.ToUpper(string(t.Priority[:1]))))
	}
	if t.DueDate != nil {
		due := t.DueDate.String()
		style := styles.TaskDue
		switch {
		case t.Completed:
		case due < today:
			style = styles.TaskDueOverdue
		case due == today:
			style = styles.TaskDueToday
		}
		suffix = append(suffix, style.Render(t.DueDate.Time(nil).Format("Jan 2")))
	}
	if t.AddedToCalendar {
		suffix = append(suffix, styles.TaskOnCalendar.Render("📅"))
	}
	tail := strings.Join(suffix, "")

	textWidth := width - 6 - lipgloss.Width(tail)
	line := check + " " + truncateString(t.Text, textWidth) + tail

	switch {
	case selected:
		return styles.TaskSelected.Render(line)
	case t.Completed:
		return styles.TaskCompleted.Render(line)
	default:
		return styles.TaskItem.Render(line)
	}
}
