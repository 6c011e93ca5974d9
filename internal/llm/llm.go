// Package llm adapts conversational turns to a hosted chat-completion API.
//
// Callers build a provider-neutral []Message (system, user, assistant turns)
// and get back the generated text. Providers differ only in wire format; the
// conversation shape and token cap are the caller's concern.
package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/swasth-ai/wellness-backend/internal/config"
	"github.com/swasth-ai/wellness-backend/internal/upstream"
)

// Roles understood by every provider.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ErrEmptyCompletion is returned when the provider answered without text.
var ErrEmptyCompletion = errors.New("llm: completion contained no text")

// Message is one conversational turn.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request is a single completion call.
type Request struct {
	Messages  []Message
	MaxTokens int
	// Timeout bounds the call; zero uses the provider default.
	Timeout time.Duration
}

// Completer produces one completion for a conversation.
type Completer interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// New builds the Completer selected by cfg.Provider.
func New(ctx context.Context, cfg config.LLMConfig) (Completer, error) {
	switch cfg.Provider {
	case config.ProviderMistral:
		return NewMistral(cfg, upstream.New("mistral", cfg.ChatTimeout)), nil
	case config.ProviderGemini:
		return NewGemini(ctx, cfg)
	default:
		return nil, fmt.Errorf("llm: unknown provider %q", cfg.Provider)
	}
}

// bearer formats an API key for the Authorization header.
func bearer(key string) http.Header {
	return http.Header{"Authorization": {"Bearer " + key}}
}
