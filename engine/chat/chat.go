// Package chat answers free-form farming questions. A language model is used
// when one is configured and reachable; otherwise a keyword table answers.
// Respond never fails.
package chat

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/krushit/krushit/engine/advisory"
	"github.com/krushit/krushit/pkg/ollama"
)

// DefaultTimeout bounds a single model reply.
const DefaultTimeout = 10 * time.Second

// Sources of a Response.
const (
	SourceModel    = "model"
	SourceFallback = "fallback"
)

// Turn is one earlier message in the conversation. Sender is "user" for the
// farmer; anything else is treated as the assistant.
type Turn struct {
	Sender string `json:"sender"`
	Text   string `json:"text"`
}

// Request is a chat question.
type Request struct {
	Message  string            `json:"message"`
	Language advisory.Language `json:"language"`
	History  []Turn            `json:"history"`
}

// Response is the answer sent back to the farmer.
type Response struct {
	Response string `json:"response"`
	Source   string `json:"source"`
}

// Responder produces a model reply.
type Responder interface {
	Reply(ctx context.Context, system string, history []Turn, message string) (string, error)
}

// Service answers chat requests.
type Service struct {
	responder Responder
	timeout   time.Duration
	logger    *slog.Logger
}

// New creates a Service. A nil responder always answers from the keyword
// table.
func New(r Responder, timeout time.Duration, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Service{responder: r, timeout: timeout, logger: logger}
}

// Respond answers req in its language.
func (s *Service) Respond(ctx context.Context, req Request) Response {
	lang, ok := advisory.ParseLanguage(string(req.Language))
	if !ok {
		lang = advisory.Fallback
	}

	if s.responder != nil {
		ctx, cancel := context.WithTimeout(ctx, s.timeout)
		defer cancel()
		reply, err := s.responder.Reply(ctx, systemPrompt(lang), req.History, req.Message)
		if err == nil {
			return Response{Response: reply, Source: SourceModel}
		}
		s.logger.Warn("chat model unavailable, using fallback", "err", err, "language", lang)
	}

	return Response{Response: fallbackPrefix + fallback(req.Message, lang), Source: SourceFallback}
}

var languageNames = map[advisory.Language]string{
	advisory.English: "English",
	advisory.Hindi:   "Hindi",
	advisory.Marathi: "Marathi",
}

func systemPrompt(lang advisory.Language) string {
	name := languageNames[lang]
	return fmt.Sprintf(`You are Krushit, a helpful farming expert from Maharashtra, India.
You MUST respond ONLY in %[1]s, even if the question is asked in another language.
Give specific, practical advice on crops, soil, pests and weather.
Keep it professional and concise (at most 3 sentences).`, name)
}

// OllamaResponder adapts an Ollama chat client to Responder.
type OllamaResponder struct {
	Client *ollama.ChatClient
}

// Reply implements Responder.
func (o OllamaResponder) Reply(ctx context.Context, system string, history []Turn, message string) (string, error) {
	msgs := make([]ollama.Message, 0, len(history)+2)
	msgs = append(msgs, ollama.Message{Role: ollama.RoleSystem, Content: system})
	for _, h := range history {
		if strings.TrimSpace(h.Text) == "" {
			continue
		}
		role := ollama.RoleAssistant
		if h.Sender == "user" {
			role = ollama.RoleUser
		}
		msgs = append(msgs, ollama.Message{Role: role, Content: h.Text})
	}
	msgs = append(msgs, ollama.Message{Role: ollama.RoleUser, Content: message})
	return o.Client.Chat(ctx, msgs)
}
