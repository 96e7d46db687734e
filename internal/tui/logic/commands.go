package logic

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hy4ri/integral/internal/ai"
	"github.com/hy4ri/integral/internal/model"
)

// aiTimeout bounds a single AI command, limiter wait included.
const aiTimeout = 45 * time.Second

// summaryLength is the target length of event description summaries.
const summaryLength = 150

// aiUnavailable reports, with a notice, why no AI request can start now.
func (h *Handler) aiUnavailable() bool {
	if h.AI == nil || !h.AI.Enabled() {
		h.StatusMsg = "AI features need an API key (set OPENAI_API_KEY)"
		return true
	}
	if h.AIBusy {
		h.StatusMsg = "AI request already running"
		return true
	}
	return false
}

// aiFailureNotice turns an AI error into a short status line.
func aiFailureNotice(what string, err error) string {
	if apiErr, ok := ai.IsAPIError(err); ok {
		switch {
		case apiErr.IsUnauthorized():
			return what + ": API key rejected"
		case apiErr.IsRateLimited():
			return what + ": rate limited, try again shortly"
		case apiErr.IsServerError():
			return what + ": AI service unavailable"
		}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return what + ": request timed out"
	}
	return what + ": " + err.Error()
}

// startAI marks the handler busy and runs fn with the spinner ticking.
// It reports a notice instead when no API key is configured.
func (h *Handler) startAI(fn func(ctx context.Context) tea.Msg) tea.Cmd {
	if h.aiUnavailable() {
		return nil
	}
	h.AIBusy = true
	return tea.Batch(h.Spinner.Tick, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), aiTimeout)
		defer cancel()
		return fn(ctx)
	})
}

func (h *Handler) recommendTasks() tea.Cmd {
	tasks := h.Workspace.Tasks.All()
	client := h.AI
	return h.startAI(func(ctx context.Context) tea.Msg {
		items, err := client.Recommendations(ctx, tasks)
		return recommendationsMsg{items: items, err: err}
	})
}

func (h *Handler) suggestReminder(task model.Task) tea.Cmd {
	client := h.AI
	return h.startAI(func(ctx context.Context) tea.Msg {
		text, err := client.ReminderSuggestion(ctx, task)
		return aiNoteMsg{title: "Reminder for " + task.Text, text: text, err: err}
	})
}

func (h *Handler) summarize(ev model.Event) tea.Cmd {
	client := h.AI
	return h.startAI(func(ctx context.Context) tea.Msg {
		text, err := client.Summarize(ctx, ev.Description, summaryLength)
		return aiNoteMsg{title: ev.Title, text: text, err: err}
	})
}

func (h *Handler) analyzeTasks() tea.Cmd {
	tasks := h.Workspace.Tasks.All()
	if len(tasks) < ai.MinAnalysisTasks {
		h.StatusMsg = fmt.Sprintf("You need at least %d tasks for a meaningful analysis", ai.MinAnalysisTasks)
		return nil
	}
	client := h.AI
	return h.startAI(func(ctx context.Context) tea.Msg {
		text, err := client.TaskAnalysis(ctx, tasks)
		return analysisMsg{text: text, err: err}
	})
}

// copyEventCmd puts a plain-text rendering of ev on the system clipboard.
func copyEventCmd(ev model.Event) tea.Cmd {
	return copyTextCmd(eventClipboardText(ev))
}

func copyTextCmd(text string) tea.Cmd {
	return func() tea.Msg {
		if err := clipboard.WriteAll(text); err != nil {
			return errMsg{fmt.Errorf("failed to copy to clipboard: %w", err)}
		}
		return statusMsg{"Copied to clipboard"}
	}
}

func eventClipboardText(ev model.Event) string {
	var b strings.Builder
	b.WriteString(ev.Title)
	b.WriteString("\n")
	b.WriteString(ev.Date.Time(nil).Format("Monday, January 2, 2006"))
	if r := ev.TimeRange(); r != "" {
		b.WriteString(", ")
		b.WriteString(r)
	}
	if ev.Description != "" {
		b.WriteString("\n\n")
		b.WriteString(ev.Description)
	}
	return b.String()
}
