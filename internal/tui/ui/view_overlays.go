package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/hy4ri/integral/internal/auth"
	"github.com/hy4ri/integral/internal/model"
	"github.com/hy4ri/integral/internal/tui/state"
	"github.com/hy4ri/integral/internal/tui/styles"
)

func (r *Renderer) dialogWidth() int {
	w := r.Width - 4
	if w > 70 {
		w = 70
	}
	return w
}

// label renders a field label, highlighted when focused.
func label(text string, focused bool) string {
	if focused {
		return styles.HelpKey.Render("› " + text)
	}
	return styles.InputLabel.Render("  " + text)
}

// picker renders a cycle picker value.
func picker(value string, focused bool) string {
	if focused {
		return "  " + styles.HelpKey.Render("‹ ") + value + styles.HelpKey.Render(" ›")
	}
	return "    " + value
}

func submitButton(text string, focused bool) string {
	if focused {
		return styles.TabActive.Render(text)
	}
	return styles.Tab.Render(text)
}

func priorityLabel(p model.Priority) string {
	if p == model.PriorityNone {
		return "none"
	}
	return styles.GetPriorityStyle(p).Render(string(p))
}

func (r *Renderer) renderLogin() string {
	f := r.LoginForm
	if f == nil {
		return styles.Dialog.Render("Form not initialized")
	}

	var b strings.Builder
	b.WriteString(styles.DialogTitle.Render("Integral") + "\n")

	mode, other := "Log in", "sign up"
	if f.Signup {
		mode, other = "Sign up", "log in"
	}
	b.WriteString(styles.Subtitle.Render(mode) + "\n\n")

	if f.Signup {
		b.WriteString(label("Name", f.FocusIndex == state.LoginFieldName) + "\n")
		b.WriteString("  " + f.Name.View() + "\n\n")
	}
	b.WriteString(label("Email", f.FocusIndex == state.LoginFieldEmail) + "\n")
	b.WriteString("  " + f.Email.View() + "\n\n")
	b.WriteString(label("Password", f.FocusIndex == state.LoginFieldPassword) + "\n")
	b.WriteString("  " + f.Password.View() + "\n\n")

	if !f.Signup {
		check := styles.CheckboxUnchecked
		if f.Remember {
			check = styles.CheckboxChecked
		}
		b.WriteString(label(check+" Remember me", f.FocusIndex == state.LoginFieldRemember) + "\n\n")
	}

	b.WriteString("  " + submitButton(mode, f.FocusIndex == state.LoginFieldSubmit) + "\n\n")

	if r.Err != nil {
		b.WriteString(styles.StatusBarError.Render(r.Err.Error()) + "\n")
	} else if r.StatusMsg != "" {
		b.WriteString(styles.HelpDesc.Render(r.StatusMsg) + "\n")
	}
	b.WriteString(styles.HelpDesc.Render("Enter: submit | Tab: next field | Ctrl+N: "+other+" | Esc: quit") + "\n")
	if !f.Signup {
		b.WriteString(styles.HelpDesc.Render("Demo account: " + auth.DemoEmail + " / " + auth.DemoPassword))
	}

	return styles.Dialog.Width(r.dialogWidth()).Render(b.String())
}

func (r *Renderer) renderEventForm() string {
	f := r.EventForm
	if f == nil {
		return styles.Dialog.Width(r.dialogWidth()).Render("Form not initialized")
	}

	var b strings.Builder
	title := "Add Event"
	if f.Editing() {
		title = "Edit Event"
	}
	b.WriteString(styles.DialogTitle.Render(title) + "\n")

	b.WriteString(label("Title", f.FocusIndex == state.EventFieldTitle) + "\n")
	b.WriteString("  " + f.Title.View() + "\n\n")

	b.WriteString(label("Date", f.FocusIndex == state.EventFieldDate) + "\n")
	b.WriteString("  " + f.Date.View() + "\n\n")

	times := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.JoinVertical(lipgloss.Left, label("Start", f.FocusIndex == state.EventFieldStart), "  "+f.Start.View()),
		"    ",
		lipgloss.JoinVertical(lipgloss.Left, label("End", f.FocusIndex == state.EventFieldEnd), "  "+f.End.View()),
	)
	b.WriteString(times + "\n\n")

	b.WriteString(label("Description", f.FocusIndex == state.EventFieldDescription) + "\n")
	b.WriteString("  " + f.Description.View() + "\n\n")

	chip := styles.EventChip(f.Type).Render(" " + string(f.Type) + " ")
	b.WriteString(label("Type", f.FocusIndex == state.EventFieldType) + "\n")
	b.WriteString(picker(chip, f.FocusIndex == state.EventFieldType) + "\n\n")

	b.WriteString(label("Priority", f.FocusIndex == state.EventFieldPriority) + "\n")
	b.WriteString(picker(priorityLabel(f.Priority), f.FocusIndex == state.EventFieldPriority) + "\n\n")

	b.WriteString("  " + submitButton("Save", f.FocusIndex == state.EventFieldSubmit) + "\n\n")

	if r.StatusMsg != "" {
		b.WriteString(styles.StatusBarError.Render(r.StatusMsg) + "\n")
	}
	b.WriteString(styles.HelpDesc.Render("Enter: save | Esc: cancel | Tab: next field | h/l: change choice"))

	return styles.Dialog.Width(r.dialogWidth()).Render(b.String())
}

func (r *Renderer) renderTaskForm() string {
	f := r.TaskForm
	if f == nil {
		return styles.Dialog.Width(r.dialogWidth()).Render("Form not initialized")
	}

	var b strings.Builder
	title := "Add Task"
	if f.Editing() {
		title = "Edit Task"
	}
	b.WriteString(styles.DialogTitle.Render(title) + "\n")

	b.WriteString(label("Task", f.FocusIndex == state.TaskFieldText) + "\n")
	b.WriteString("  " + f.Text.View() + "\n\n")

	b.WriteString(label("Due Date", f.FocusIndex == state.TaskFieldDue) + "\n")
	b.WriteString("  " + f.Due.View() + "\n\n")

	b.WriteString(label("Priority (1-3, 0 for none)", f.FocusIndex == state.TaskFieldPriority) + "\n")
	b.WriteString(picker(priorityLabel(f.Priority), f.FocusIndex == state.TaskFieldPriority) + "\n\n")

	category, ok := categoryTitles[f.Category]
	if !ok {
		category = f.Category
	}
	b.WriteString(label("Column", f.FocusIndex == state.TaskFieldCategory) + "\n")
	b.WriteString(picker(category, f.FocusIndex == state.TaskFieldCategory) + "\n\n")

	b.WriteString("  " + submitButton("Save", f.FocusIndex == state.TaskFieldSubmit) + "\n\n")

	if r.StatusMsg != "" {
		b.WriteString(styles.StatusBarError.Render(r.StatusMsg) + "\n")
	}
	b.WriteString(styles.HelpDesc.Render("Enter: save | Esc: cancel | Tab: next field"))

	return styles.Dialog.Width(r.dialogWidth()).Render(b.String())
}

// renderSearch renders the search input line above the status bar.
func (r *Renderer) renderSearch() string {
	return styles.InputLabel.Render(" Search: ") + r.SearchInput.View()
}

// renderHelp renders the key binding reference in a scrollable pane.
func (r *Renderer) renderHelp() string {
	var b strings.Builder
	for _, item := range r.Keymap.HelpItems() {
		key, desc := item[0], item[1]
		switch {
		case key == "" && desc == "":
			b.WriteString("\n")
		case desc == "":
			b.WriteString(styles.SectionHeader.Render(key) + "\n")
		default:
			b.WriteString("  " + styles.HelpKey.Render(fitString(key, 14)) + styles.HelpDesc.Render(desc) + "\n")
		}
	}

	// Title, blank line and footer around the pane, plus the padding.
	vp := &r.HelpView
	vp.Width = max(r.Width-4, 10)
	vp.Height = max(r.Height-5, 3)
	vp.SetContent(strings.TrimRight(b.String(), "\n"))

	footer := "Press ? or Esc to close"
	if !vp.AtTop() || !vp.AtBottom() {
		footer = fmt.Sprintf("j/k scroll (%3.f%%) | %s", vp.ScrollPercent()*100, footer)
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(
		styles.Title.Render("Keyboard Shortcuts") + "\n" +
			vp.View() + "\n" +
			styles.HelpDesc.Render(footer))
}

// renderWriter renders the AI writing assistant.
func (r *Renderer) renderWriter() string {
	w := r.Writer
	if w == nil {
		return styles.Dialog.Width(r.dialogWidth()).Render("Writer not initialized")
	}

	var b strings.Builder
	b.WriteString(styles.DialogTitle.Render("AI Writing Assistant") + "\n")
	if w.EventTitle != "" {
		b.WriteString(styles.Subtitle.Render("Description of "+w.EventTitle) + "\n")
	}
	b.WriteString("\n" + w.Input.View() + "\n\n")

	if result := w.Result(); result != "" || w.Streaming {
		b.WriteString(styles.SectionHeader.Render("AI Improved Version") + "\n")
		text := result
		if w.Streaming {
			text += r.Spinner.View()
		}
		b.WriteString(lipgloss.NewStyle().Width(r.dialogWidth()-4).Render(text) + "\n\n")
	}

	if r.StatusMsg != "" {
		b.WriteString(styles.HelpDesc.Render(r.StatusMsg) + "\n")
	}
	target := "copy"
	if w.EventID != "" {
		target = "apply"
	}
	b.WriteString(styles.HelpDesc.Render("Ctrl+R: improve | Ctrl+S: " + target + " | Esc: close"))

	return styles.Dialog.Width(r.dialogWidth()).Render(b.String())
}
