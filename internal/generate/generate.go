// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package generate wraps a locally hosted Ollama chat model. The
// assistant calls it to phrase answers; everything else in the
// pipeline works without it, so a dead Ollama daemon degrades the
// product rather than breaking it.
package generate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/pdiddy/answer-engine/pkg/types"
)

// deepThinkInstruction is prepended to the system prompt in deep-think
// mode to push the model toward longer, structured reasoning.
const deepThinkInstruction = "Think through the question step by step before answering. " +
	"Consider multiple perspectives, name your assumptions, and present a reasoned conclusion."

// stopMarkers cut the completion off if the model starts hallucinating
// the next user turn.
var stopMarkers = []string{"User:", "\nUser"}

// Client talks to an Ollama server over its /api/chat endpoint.
type Client struct {
	endpoint string
	model    string
	client   *http.Client
}

// NewClient creates a generation client. An empty endpoint defaults to
// the local Ollama daemon.
func NewClient(cfg types.GenerationConfig, client *http.Client) *Client {
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = "http://localhost:11434"
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &Client{
		endpoint: strings.TrimRight(endpoint, "/"),
		model:    cfg.Model,
		client:   client,
	}
}

// Request carries everything the model needs for one completion.
type Request struct {
	// Query is the user's current message.
	Query string

	// Persona is the system-prompt identity for the assistant.
	Persona string

	// Mode selects the prompting style; deep-think gets an extended
	// system instruction.
	Mode types.Intent

	// History is the prior conversation, oldest first. Only the last
	// Window messages are sent.
	History []types.Message

	// Window caps how many history messages reach the model. Zero or
	// negative sends all of it.
	Window int

	// Digest is an optional compact summary of search results to
	// ground the answer in. Empty outside search mode.
	Digest string

	// Temperature and MaxTokens map to Ollama's sampler options.
	Temperature float64
	MaxTokens   int
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string         `json:"model"`
	Messages []chatMessage  `json:"messages"`
	Stream   bool           `json:"stream"`
	Options  map[string]any `json:"options,omitempty"`
}

type chatResponse struct {
	Message chatMessage `json:"message"`
	Error   string      `json:"error,omitempty"`
}

// Generate runs one completion and returns the model's reply text.
func (c *Client) Generate(ctx context.Context, req Request) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model:    c.model,
		Messages: BuildMessages(req),
		Stream:   false,
		Options: map[string]any{
			"temperature": req.Temperature,
			"num_predict": req.MaxTokens,
			"stop":        stopMarkers,
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := c.endpoint + "/api/chat"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ollama chat API returned %d: %s", resp.StatusCode, string(respBody))
	}

	var result chatResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}
	if result.Error != "" {
		return "", fmt.Errorf("ollama error: %s", result.Error)
	}

	reply := trimAtMarkers(strings.TrimSpace(result.Message.Content))
	if reply == "" {
		return "", fmt.Errorf("model returned an empty reply")
	}
	return reply, nil
}

// HealthCheck verifies the Ollama daemon is reachable.
func (c *Client) HealthCheck(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"/api/tags", nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("ollama unreachable: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ollama returned %d", resp.StatusCode)
	}
	return nil
}

// BuildMessages assembles the chat transcript sent to the model:
// system persona, windowed history, optional search digest, then the
// current query.
func BuildMessages(req Request) []chatMessage {
	system := req.Persona
	if req.Mode == types.IntentDeepThink {
		system = strings.TrimSpace(system + "\n\n" + deepThinkInstruction)
	}

	msgs := make([]chatMessage, 0, len(req.History)+3)
	if system != "" {
		msgs = append(msgs, chatMessage{Role: types.RoleSystem, Content: system})
	}
	for _, m := range types.Window(req.History, req.Window) {
		msgs = append(msgs, chatMessage{Role: m.Role, Content: m.Content})
	}
	if req.Digest != "" {
		msgs = append(msgs, chatMessage{
			Role:    types.RoleSystem,
			Content: "Search results relevant to the next question:\n" + req.Digest,
		})
	}
	msgs = append(msgs, chatMessage{Role: types.RoleUser, Content: req.Query})
	return msgs
}

// trimAtMarkers cuts the reply at the first stop marker, for servers
// that ignore the stop option.
func trimAtMarkers(s string) string {
	for _, marker := range stopMarkers {
		if i := strings.Index(s, marker); i >= 0 {
			s = s[:i]
		}
	}
	return strings.TrimSpace(s)
}
