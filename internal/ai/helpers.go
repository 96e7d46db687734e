package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/hy4ri/integral/internal/model"
)

const (
	maxRecommendationTasks = 10
	minSummaryLength       = 200
	reminderMaxTokens      = 100

	// MinAnalysisTasks is the smallest task list worth analysing.
	MinAnalysisTasks = 5

	// ReminderFallback is returned when a reminder suggestion cannot be generated.
	ReminderFallback = "Consider setting a reminder before the deadline"
)

// Recommendations suggests new tasks based on the first ten of tasks,
// one suggestion per line. On failure it returns nil and the error.
func (c *Client) Recommendations(ctx context.Context, tasks []model.Task) ([]string, error) {
	if len(tasks) > maxRecommendationTasks {
		tasks = tasks[:maxRecommendationTasks]
	}

	var list strings.Builder
	for _, t := range tasks {
		status := "Pending"
		if t.Completed {
			status = "Completed"
		}
		fmt.Fprintf(&list, "- %s (%s)\n", t.Text, status)
	}

	prompt := "Based on the following list of tasks, suggest 3-5 related tasks that might be helpful " +
		"for the user to consider adding to their task list. For each suggestion, provide a clear, " +
		"concise task title that would fit well in a task management system.\n\n" +
		"Current tasks:\n" + list.String() + "\n" +
		"Respond with only the task suggestions, one per line, without numbers or bullet points."

	text, err := c.Generate(ctx, prompt, "", 0)
	if err != nil {
		c.log.Warn("task recommendations failed", zap.Error(err))
		return nil, err
	}

	var out []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out, nil
}

// Summarize condenses text to roughly maxLen characters. Text shorter than
// 200 characters is returned unchanged. On failure the truncated text comes
// back together with the error.
func (c *Client) Summarize(ctx context.Context, text string, maxLen int) (string, error) {
	if maxLen <= 0 {
		maxLen = 150
	}
	if len(strings.TrimSpace(text)) < minSummaryLength {
		return text, nil
	}

	prompt := fmt.Sprintf("Summarize the following content in a concise way, focusing on the key points.\n"+
		"The summary should be no longer than %d characters.\n\nContent:\n%s", maxLen, text)

	summary, err := c.Generate(ctx, prompt, "", 0)
	if err != nil {
		c.log.Warn("summary failed", zap.Error(err))
		return truncate(text, maxLen) + "...", err
	}
	return summary, nil
}

// ReminderSuggestion proposes when to be reminded about task. On failure
// it returns ReminderFallback and the error.
func (c *Client) ReminderSuggestion(ctx context.Context, task model.Task) (string, error) {
	priority := "not specified"
	if task.Priority != "" {
		priority = string(task.Priority)
	}
	deadline := "not specified"
	if task.DueDate != nil {
		deadline = task.DueDate.String()
	}

	prompt := fmt.Sprintf("Based on this task, suggest a smart time for a reminder. "+
		"Consider the task's priority, deadline, and type.\n"+
		"Task: %s\nPriority: %s\nDeadline: %s\n\n"+
		"Reply with only a brief, helpful suggestion for when to set a reminder, in a conversational tone.",
		task.Text, priority, deadline)

	text, err := c.Generate(ctx, prompt, "", reminderMaxTokens)
	if err != nil {
		c.log.Warn("reminder suggestion failed", zap.Error(err))
		return ReminderFallback, err
	}
	return strings.TrimSpace(text), nil
}

// ErrNotEnoughTasks is returned by TaskAnalysis for short task lists.
var ErrNotEnoughTasks = errors.New("at least 5 tasks are needed for an analysis")

// ImprovePrompt asks for a cleaner rewrite of text. It is meant for Stream.
func ImprovePrompt(text string) string {
	return "Improve the following text, making it more professional, clear, and concise " +
		"while maintaining its original meaning. Text: " + strings.TrimSpace(text)
}

type analysisTask struct {
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
	Priority  string `json:"priority"`
	DueDate   string `json:"dueDate"`
	Category  string `json:"category"`
}

// TaskAnalysis reviews productivity patterns, completion rate and priority
// mix across tasks and ends with one suggestion.
func (c *Client) TaskAnalysis(ctx context.Context, tasks []model.Task) (string, error) {
	if len(tasks) < MinAnalysisTasks {
		return "", ErrNotEnoughTasks
	}

	data := make([]analysisTask, 0, len(tasks))
	for _, t := range tasks {
		at := analysisTask{Text: t.Text, Completed: t.Completed, Priority: "none", DueDate: "unspecified", Category: t.Category}
		if t.Priority != model.PriorityNone {
			at.Priority = string(t.Priority)
		}
		if t.DueDate != nil {
			at.DueDate = t.DueDate.String()
		}
		data = append(data, at)
	}
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode tasks: %w", err)
	}

	prompt := "Analyze the following task data and provide insights on:\n" +
		"1. Productivity patterns\n2. Task completion rates\n3. Priority distribution\n" +
		"4. One actionable suggestion for improvement\n\n" +
		"Task data:\n" + string(raw) + "\n\n" +
		"Respond with a concise analysis in 3-4 paragraphs."

	text, err := c.Generate(ctx, prompt, "", 0)
	if err != nil {
		c.log.Warn("task analysis failed", zap.Error(err))
		return "", err
	}
	return strings.TrimSpace(text), nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
