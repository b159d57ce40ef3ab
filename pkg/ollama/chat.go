// Package ollama provides a minimal client for Ollama's chat API.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Roles understood by the chat endpoint.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one chat turn.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatClient talks to POST /api/chat without streaming.
type ChatClient struct {
	baseURL string
	model   string
	client  *http.Client
}

// NewChatClient creates an Ollama chat client for model.
func NewChatClient(baseURL, model string) *ChatClient {
	return &ChatClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		client:  &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)},
	}
}

type chatReq struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
	Stream   bool      `json:"stream"`
}

type chatResp struct {
	Message Message `json:"message"`
	Error   string  `json:"error"`
}

// Chat sends messages and returns the assistant's reply.
func (c *ChatClient) Chat(ctx context.Context, messages []Message) (string, error) {
	body, _ := json.Marshal(chatReq{Model: c.model, Messages: messages})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("ollama chat: %w", err)
	}
	defer resp.Body.Close()

	var result chatResp
	decodeErr := json.NewDecoder(resp.Body).Decode(&result)
	if resp.StatusCode != http.StatusOK {
		if decodeErr == nil && result.Error != "" {
			return "", fmt.Errorf("ollama chat: status %d: %s", resp.StatusCode, result.Error)
		}
		return "", fmt.Errorf("ollama chat: status %d", resp.StatusCode)
	}
	if decodeErr != nil {
		return "", fmt.Errorf("ollama chat decode: %w", decodeErr)
	}

	reply := strings.TrimSpace(result.Message.Content)
	if reply == "" {
		return "", fmt.Errorf("ollama chat: empty reply")
	}
	return reply, nil
}
