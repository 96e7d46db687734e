// Package ai is a small client for an OpenAI-compatible chat-completions
// endpoint, plus the workspace's text-generation helpers.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	// BaseURL is the OpenAI API v1 base URL.
	BaseURL = "https://api.openai.com/v1"

	// DefaultModel is used when Config.Model is empty.
	DefaultModel = "gpt-3.5-turbo"

	// DefaultSystemPrompt is used when a call passes no system prompt.
	DefaultSystemPrompt = "You are a helpful AI assistant for a productivity and task management application."

	// DefaultMaxTokens is used when a call passes maxTokens <= 0.
	DefaultMaxTokens = 500

	// MinInterval is the default spacing between calls.
	MinInterval = 2 * time.Second

	// DefaultTimeout is the default HTTP client timeout.
	DefaultTimeout = 60 * time.Second
)

// ErrNoAPIKey is returned before any request when no key is configured.
var ErrNoAPIKey = errors.New("ai: no API key configured")

// Config configures a Client.
type Config struct {
	BaseURL     string
	Model       string
	APIKey      string
	MinInterval time.Duration
}

// Client is the chat-completions client. Calls are spaced at least
// MinInterval apart; a call made too early waits instead of failing.
type Client struct {
	httpClient *http.Client
	baseURL    string
	model      string
	apiKey     string
	limiter    *rate.Limiter
	log        *zap.Logger
}

// NewClient creates a new client. Zero Config fields take package defaults;
// a negative MinInterval disables spacing.
func NewClient(cfg Config, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = BaseURL
	}
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}

	interval := cfg.MinInterval
	if interval == 0 {
		interval = MinInterval
	}
	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		baseURL: baseURL,
		model:   model,
		apiKey:  cfg.APIKey,
		limiter: rate.NewLimiter(limit, 1),
		log:     log,
	}
}

// SetHTTPClient allows overriding the default HTTP client (useful for testing).
func (c *Client) SetHTTPClient(httpClient *http.Client) {
	c.httpClient = httpClient
}

// Enabled reports whether an API key is configured.
func (c *Client) Enabled() bool {
	return c.apiKey != ""
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionRequest struct {
	Model     string    `json:"model"`
	Messages  []message `json:"messages"`
	MaxTokens int       `json:"max_tokens,omitempty"`
	Stream    bool      `json:"stream,omitempty"`
}

type completionResponse struct {
	Choices []struct {
		Message message `json:"message"`
		Delta   message `json:"delta"`
	} `json:"choices"`
}

func (c *Client) newRequest(prompt, system string, maxTokens int, stream bool) completionRequest {
	if system == "" {
		system = DefaultSystemPrompt
	}
	return completionRequest{
		Model: c.model,
		Messages: []message{
			{Role: "system", Content: system},
			{Role: "user", Content: prompt},
		},
		MaxTokens: maxTokens,
		Stream:    stream,
	}
}

// post waits for the limiter, then sends body to the completions endpoint.
// The caller closes the response body.
func (c *Client) post(ctx context.Context, body completionRequest) (*http.Response, error) {
	if !c.Enabled() {
		return nil, ErrNoAPIKey
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	if body.Stream {
		req.Header.Set("Accept", "text/event-stream")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	if resp.StatusCode >= 400 {
		defer resp.Body.Close()
		respBody, _ := io.ReadAll(resp.Body)
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(respBody))}
		c.log.Warn("ai request rejected", zap.Int("status", resp.StatusCode))
		return nil, apiErr
	}

	return resp, nil
}

// Generate returns the full completion for prompt. An empty system uses
// DefaultSystemPrompt; maxTokens <= 0 uses DefaultMaxTokens.
func (c *Client) Generate(ctx context.Context, prompt, system string, maxTokens int) (string, error) {
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}

	resp, err := c.post(ctx, c.newRequest(prompt, system, maxTokens, false))
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var result completionResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("response contained no choices")
	}

	return result.Choices[0].Message.Content, nil
}
