package ai

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// Chunk is one piece of a streamed completion. The final chunk on a
// stream has Done set or Err non-nil.
type Chunk struct {
	Text string
	Err  error
	Done bool
}

// Stream requests a streamed completion and delivers text deltas as they
// arrive. The channel is closed after the final chunk.
func (c *Client) Stream(ctx context.Context, prompt, system string) <-chan Chunk {
	out := make(chan Chunk)

	go func() {
		defer close(out)

		send := func(ch Chunk) bool {
			select {
			case out <- ch:
				return true
			case <-ctx.Done():
				return false
			}
		}

		resp, err := c.post(ctx, c.newRequest(prompt, system, 0, true))
		if err != nil {
			send(Chunk{Err: err})
			return
		}
		defer resp.Body.Close()

		scanner := bufio.NewScanner(resp.Body)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			data, ok := strings.CutPrefix(line, "data:")
			if !ok {
				continue
			}
			data = strings.TrimSpace(data)
			if data == "[DONE]" {
				send(Chunk{Done: true})
				return
			}

			var event completionResponse
			if err := json.Unmarshal([]byte(data), &event); err != nil {
				send(Chunk{Err: fmt.Errorf("failed to decode stream event: %w", err)})
				return
			}
			if len(event.Choices) == 0 || event.Choices[0].Delta.Content == "" {
				continue
			}
			if !send(Chunk{Text: event.Choices[0].Delta.Content}) {
				return
			}
		}

		if err := scanner.Err(); err != nil {
			send(Chunk{Err: fmt.Errorf("stream read failed: %w", err)})
			return
		}
		// Server closed without a [DONE] marker.
		send(Chunk{Done: true})
	}()

	return out
}

// Collect drains a stream into a single string.
func Collect(stream <-chan Chunk) (string, error) {
	var b strings.Builder
	for ch := range stream {
		if ch.Err != nil {
			return b.String(), ch.Err
		}
		b.WriteString(ch.Text)
	}
	return b.String(), nil
}
