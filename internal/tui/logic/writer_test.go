package logic

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hy4ri/integral/internal/ai"
	"github.com/hy4ri/integral/internal/datekey"
	"github.com/hy4ri/integral/internal/model"
	"github.com/hy4ri/integral/internal/tui/state"
)

// openEventWriter adds an event, selects it and opens the writer on it.
func openEventWriter(t *testing.T) (*Handler, model.Event) {
	t.Helper()
	h := newTestHandler(t, true)
	ev := h.Workspace.Events.Add(model.EventDraft{
		Title:       "Offsite",
		Date:        datekey.MustParse("2025-03-15"),
		Description: "plan the thing",
	})

	press(h, "2", "W")
	if h.CurrentView != state.ViewWriter || h.Writer == nil {
		t.Fatalf("expected writer view, got %v", h.CurrentView)
	}
	return h, ev
}

func TestWriterOpensOnSelectedEvent(t *testing.T) {
	h, ev := openEventWriter(t)
	if h.Writer.EventID != ev.ID || h.Writer.Text() != "plan the thing" {
		t.Errorf("unexpected writer %q %q", h.Writer.EventID, h.Writer.Text())
	}

	press(h, "esc")
	if h.CurrentView != state.ViewMain || h.Writer != nil {
		t.Error("esc should close the writer")
	}
}

func TestWriterStreamsChunks(t *testing.T) {
	h, ev := openEventWriter(t)
	stream := make(chan ai.Chunk, 1)
	cancelled := false
	h.Writer.Begin(stream, func() { cancelled = true })
	h.AIBusy = true

	for _, text := range []string{"Plan ", "the offsite", "."} {
		cmd := h.Update(aiChunkMsg{stream: stream, chunk: ai.Chunk{Text: text}})
		if cmd == nil {
			t.Fatalf("chunk %q should re-arm the stream", text)
		}
	}
	if got := h.Writer.Output.String(); got != "Plan the offsite." {
		t.Errorf("unexpected output %q", got)
	}

	// the re-armed command reads the next chunk from the stream
	stream <- ai.Chunk{Text: "!"}
	msg := waitForChunk(stream)()
	if chunk, ok := msg.(aiChunkMsg); !ok || chunk.chunk.Text != "!" {
		t.Fatalf("unexpected message %#v", msg)
	}

	press(h, "x")
	if h.Writer.Text() != "plan the thing" {
		t.Error("input should be locked while streaming")
	}
	h.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	if h.StatusMsg != "Wait for the AI to finish" {
		t.Errorf("unexpected status %q", h.StatusMsg)
	}

	if cmd := h.Update(aiChunkMsg{stream: stream, chunk: ai.Chunk{Done: true}}); cmd != nil {
		t.Error("done chunk should not re-arm")
	}
	if h.Writer.Streaming || h.AIBusy || !cancelled {
		t.Error("done chunk should end the stream")
	}
	if !strings.Contains(h.StatusMsg, "ready") {
		t.Errorf("unexpected status %q", h.StatusMsg)
	}

	h.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	if h.CurrentView != state.ViewMain {
		t.Fatalf("apply should close the writer, status %q", h.StatusMsg)
	}
	got, _ := h.Workspace.Events.Get(ev.ID)
	if got.Description != "Plan the offsite." {
		t.Errorf("description not applied, got %q", got.Description)
	}
}

func TestWriterClosedStreamEnds(t *testing.T) {
	stream := make(chan ai.Chunk)
	close(stream)
	msg := waitForChunk(stream)().(aiChunkMsg)
	if !msg.chunk.Done {
		t.Error("closed stream should report done")
	}
}

func TestWriterIgnoresStaleStream(t *testing.T) {
	h, _ := openEventWriter(t)
	old := make(chan ai.Chunk)
	current := make(chan ai.Chunk)
	h.Writer.Begin(current, func() {})

	if cmd := h.Update(aiChunkMsg{stream: old, chunk: ai.Chunk{Text: "stale"}}); cmd != nil {
		t.Error("stale chunk should not re-arm")
	}
	if h.Writer.Output.Len() != 0 || !h.Writer.Streaming {
		t.Error("stale chunk should be dropped")
	}
}

func TestWriterStreamError(t *testing.T) {
	h, _ := openEventWriter(t)
	stream := make(chan ai.Chunk)
	h.Writer.Begin(stream, func() {})
	h.AIBusy = true

	h.Update(aiChunkMsg{stream: stream, chunk: ai.Chunk{Err: &ai.APIError{StatusCode: 429}}})
	if h.Writer.Streaming || h.AIBusy {
		t.Error("error should end the stream")
	}
	if !strings.Contains(h.StatusMsg, "rate limited") {
		t.Errorf("unexpected status %q", h.StatusMsg)
	}
}

func TestWriterNotices(t *testing.T) {
	h := newTestHandler(t, true)
	press(h, "W")
	if h.Writer == nil || h.Writer.EventID != "" {
		t.Fatal("dashboard writer should not be bound to an event")
	}

	h.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	if h.StatusMsg != "Please provide some text to improve" {
		t.Errorf("unexpected status %q", h.StatusMsg)
	}

	h.Writer.Input.SetValue("some text")
	h.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	if h.Writer.Streaming || !strings.Contains(h.StatusMsg, "API key") {
		t.Errorf("expected API key notice, got %q", h.StatusMsg)
	}

	h.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	if !strings.Contains(h.StatusMsg, "Nothing to apply") {
		t.Errorf("unexpected status %q", h.StatusMsg)
	}
}

func TestWriterEscCancelsStream(t *testing.T) {
	h, _ := openEventWriter(t)
	cancelled := false
	h.Writer.Begin(make(chan ai.Chunk), func() { cancelled = true })
	h.AIBusy = true

	press(h, "esc")
	if !cancelled || h.AIBusy {
		t.Error("closing the writer should cancel its stream")
	}
}

func TestAIFailureNotices(t *testing.T) {
	h := newTestHandler(t, true)

	h.AIBusy = true
	h.Update(recommendationsMsg{err: &ai.APIError{StatusCode: 401}})
	if h.AIBusy || h.StatusMsg != "Could not fetch recommendations: API key rejected" {
		t.Errorf("unexpected status %q", h.StatusMsg)
	}

	h.Update(aiNoteMsg{title: "Gym", text: ai.ReminderFallback, err: &ai.APIError{StatusCode: 503}})
	if h.AINote == "" || !strings.Contains(h.StatusMsg, "AI service unavailable") {
		t.Errorf("fallback should be shown with a notice, got %q", h.StatusMsg)
	}

	h.Update(analysisMsg{err: errors.New("boom")})
	if h.Analysis != "" || !strings.Contains(h.StatusMsg, "boom") {
		t.Errorf("unexpected status %q", h.StatusMsg)
	}

	h.Update(analysisMsg{text: "Mostly personal tasks."})
	if h.Analysis != "Mostly personal tasks." || h.StatusMsg != "Your tasks have been analyzed" {
		t.Errorf("unexpected analysis %q", h.Analysis)
	}
}

func TestAnalyzeNeedsTasks(t *testing.T) {
	h := newTestHandler(t, true)
	h.Workspace.Tasks.Add(model.TaskDraft{Text: "One", Category: model.CategoryPending})

	press(h, "3", "A")
	if h.AIBusy || !strings.Contains(h.StatusMsg, "at least 5 tasks") {
		t.Errorf("unexpected status %q", h.StatusMsg)
	}

	for i := 0; i < 4; i++ {
		h.Workspace.Tasks.Add(model.TaskDraft{Text: "More", Category: model.CategoryPending})
	}
	press(h, "A")
	if !strings.Contains(h.StatusMsg, "API key") {
		t.Errorf("expected API key notice, got %q", h.StatusMsg)
	}
}

func TestTimelineScroll(t *testing.T) {
	h := newTestHandler(t, true)
	press(h, "2")

	h.Update(tea.KeyMsg{Type: tea.KeyPgDown})
	if !h.TimelineManual {
		t.Fatal("page down should pin the timeline")
	}
	press(h, "l")
	if h.TimelineManual {
		t.Error("navigation should follow the selection again")
	}

	press(h, "m")
	h.Update(tea.KeyMsg{Type: tea.KeyPgDown})
	if h.TimelineManual {
		t.Error("month view has no timeline to scroll")
	}
}

func TestHelpForwardsScrollKeys(t *testing.T) {
	h := newTestHandler(t, true)
	h.HelpView.Width, h.HelpView.Height = 40, 2
	h.HelpView.SetContent("one\ntwo\nthree\nfour\nfive")

	press(h, "?", "j")
	if h.HelpView.YOffset != 1 {
		t.Errorf("expected help to scroll, offset %d", h.HelpView.YOffset)
	}
	press(h, "q")
	if h.CurrentView != state.ViewMain || h.HelpView.YOffset != 0 {
		t.Error("closing help should reset the scroll")
	}
}
