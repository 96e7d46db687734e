package state

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hy4ri/integral/internal/ai"
)

// Writer is the AI writing assistant. It streams an improved version of
// Input into Output and can apply the result to the event it was opened on.
type Writer struct {
	Input  textarea.Model
	Output strings.Builder

	// EventID is the event whose description Apply replaces. Empty means
	// the result goes to the clipboard.
	EventID    string
	EventTitle string

	Streaming bool
	Stream    <-chan ai.Chunk
	cancel    context.CancelFunc
}

// NewWriter creates the assistant prefilled with text.
func NewWriter(text, eventID, eventTitle string) *Writer {
	input := textarea.New()
	input.Placeholder = "Enter your text here to improve..."
	input.CharLimit = 2000
	input.ShowLineNumbers = false
	input.SetWidth(60)
	input.SetHeight(5)
	input.SetValue(text)
	input.Focus()

	return &Writer{Input: input, EventID: eventID, EventTitle: eventTitle}
}

// Text returns the trimmed input.
func (w *Writer) Text() string {
	return strings.TrimSpace(w.Input.Value())
}

// Result returns the streamed text so far.
func (w *Writer) Result() string {
	return strings.TrimSpace(w.Output.String())
}

// Begin resets the output and tracks a new stream. cancel aborts it.
func (w *Writer) Begin(stream <-chan ai.Chunk, cancel context.CancelFunc) {
	w.Stop()
	w.Output.Reset()
	w.Stream = stream
	w.cancel = cancel
	w.Streaming = true
}

// Stop cancels a running stream.
func (w *Writer) Stop() {
	if w.cancel != nil {
		w.cancel()
		w.cancel = nil
	}
	w.Streaming = false
}

// SetWidth resizes the input.
func (w *Writer) SetWidth(width int) {
	w.Input.SetWidth(width)
}

// Update forwards a message to the input while no stream is running.
func (w *Writer) Update(msg tea.Msg) tea.Cmd {
	if w.Streaming {
		return nil
	}
	var cmd tea.Cmd
	w.Input, cmd = w.Input.Update(msg)
	return cmd
}
