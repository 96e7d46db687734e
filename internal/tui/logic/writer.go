package logic

import (
	"context"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hy4ri/integral/internal/ai"
	"github.com/hy4ri/integral/internal/model"
	"github.com/hy4ri/integral/internal/tui/state"
)

// openWriter shows the writing assistant. On the calendar it starts from
// the selected event's description and applies back to that event.
func (h *Handler) openWriter() tea.Cmd {
	var text, id, title string
	if h.CurrentTab == state.TabCalendar {
		if ev, ok := h.SelectedEvent(); ok {
			text, id, title = ev.Description, ev.ID, ev.Title
		}
	}
	h.Writer = state.NewWriter(text, id, title)
	h.Writer.SetWidth(h.formWidth())
	h.PreviousView = h.CurrentView
	h.CurrentView = state.ViewWriter
	return textarea.Blink
}

func (h *Handler) closeWriter() {
	if h.Writer != nil {
		if h.Writer.Streaming {
			h.AIBusy = false
		}
		h.Writer.Stop()
	}
	h.Writer = nil
	h.CurrentView = state.ViewMain
}

func (h *Handler) handleWriterKey(msg tea.KeyMsg) tea.Cmd {
	if h.Writer == nil {
		h.CurrentView = state.ViewMain
		return nil
	}

	switch msg.String() {
	case "esc":
		h.closeWriter()
		return nil
	case "ctrl+c":
		h.closeWriter()
		return tea.Quit
	case "ctrl+r":
		return h.improveText()
	case "ctrl+s":
		return h.applyWriter()
	}
	return h.Writer.Update(msg)
}

// improveText streams an improved version of the writer input.
func (h *Handler) improveText() tea.Cmd {
	w := h.Writer
	text := w.Text()
	if text == "" {
		h.StatusMsg = "Please provide some text to improve"
		return nil
	}
	if h.aiUnavailable() {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), aiTimeout)
	stream := h.AI.Stream(ctx, ai.ImprovePrompt(text), "")
	w.Begin(stream, cancel)
	h.AIBusy = true
	return tea.Batch(h.Spinner.Tick, waitForChunk(stream))
}

// waitForChunk delivers the next piece of stream. It is re-armed after
// every text chunk until the stream ends.
func waitForChunk(stream <-chan ai.Chunk) tea.Cmd {
	return func() tea.Msg {
		ch, ok := <-stream
		if !ok {
			ch = ai.Chunk{Done: true}
		}
		return aiChunkMsg{stream: stream, chunk: ch}
	}
}

func (h *Handler) handleChunk(msg aiChunkMsg) tea.Cmd {
	w := h.Writer
	if w == nil || !w.Streaming || w.Stream != msg.stream {
		return nil
	}

	switch {
	case msg.chunk.Err != nil:
		w.Stop()
		h.AIBusy = false
		h.StatusMsg = aiFailureNotice("Failed to stream AI response", msg.chunk.Err)
		return nil
	case msg.chunk.Done:
		w.Stop()
		h.AIBusy = false
		h.StatusMsg = "Improved text ready (ctrl+s to apply)"
		return nil
	}

	w.Output.WriteString(msg.chunk.Text)
	return waitForChunk(msg.stream)
}

// applyWriter replaces the event description with the result, or copies
// it to the clipboard when the writer has no event.
func (h *Handler) applyWriter() tea.Cmd {
	w := h.Writer
	if w.Streaming {
		h.StatusMsg = "Wait for the AI to finish"
		return nil
	}
	result := w.Result()
	if result == "" {
		h.StatusMsg = "Nothing to apply yet (ctrl+r to improve)"
		return nil
	}

	if w.EventID == "" {
		h.closeWriter()
		return copyTextCmd(result)
	}
	if _, ok := h.Workspace.Events.Update(w.EventID, model.EventPatch{Description: &result}); !ok {
		h.StatusMsg = "Event no longer exists"
		return nil
	}
	h.closeWriter()
	h.StatusMsg = "The improved text has been applied"
	return nil
}
