package logic

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hy4ri/integral/internal/ai"
	"github.com/hy4ri/integral/internal/store"
)

// Init implements tea.Model.
func (h *Handler) Init() tea.Cmd {
	return tea.Batch(
		h.Spinner.Tick,
		h.waitForChange(),
	)
}

// waitForChange blocks until the bus reports a store change. The handler
// re-arms it after every storeChangedMsg.
func (h *Handler) waitForChange() tea.Cmd {
	if h.changes == nil {
		return nil
	}
	return func() tea.Msg {
		c, ok := <-h.changes
		if !ok {
			return nil
		}
		return storeChangedMsg(c)
	}
}

// Message types
type errMsg struct{ err error }
type statusMsg struct{ msg string }
type storeChangedMsg store.Change
type recommendationsMsg struct {
	items []string
	err   error
}
type aiNoteMsg struct {
	title string
	text  string
	err   error
}
type analysisMsg struct {
	text string
	err  error
}

// aiChunkMsg carries one piece of a streamed completion. stream identifies
// the request so chunks from a cancelled stream are dropped.
type aiChunkMsg struct {
	stream <-chan ai.Chunk
	chunk  ai.Chunk
}
