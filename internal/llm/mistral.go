package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/swasth-ai/wellness-backend/internal/config"
	"github.com/swasth-ai/wellness-backend/internal/upstream"
)

// Mistral calls an OpenAI-compatible /chat/completions endpoint.
type Mistral struct {
	url    string
	model  string
	apiKey string
	client *upstream.Client
}

// NewMistral binds the endpoint, model and key from cfg to client.
func NewMistral(cfg config.LLMConfig, client *upstream.Client) *Mistral {
	return &Mistral{
		url:    cfg.URL,
		model:  cfg.Model,
		apiKey: cfg.APIKey,
		client: client,
	}
}

type completionRequest struct {
	Model     string    `json:"model"`
	Messages  []Message `json:"messages"`
	MaxTokens int       `json:"max_tokens,omitempty"`
}

type completionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete sends the conversation and returns choices[0].message.content.
func (m *Mistral) Complete(ctx context.Context, req Request) (string, error) {
	resp, err := m.client.Do(ctx, upstream.Request{
		Method:  http.MethodPost,
		URL:     m.url,
		Header:  bearer(m.apiKey),
		Timeout: req.Timeout,
		Body: completionRequest{
			Model:     m.model,
			Messages:  req.Messages,
			MaxTokens: req.MaxTokens,
		},
	})
	if err != nil {
		return "", fmt.Errorf("mistral completion: %w", err)
	}

	var out completionResponse
	if err := resp.Decode(&out); err != nil {
		return "", fmt.Errorf("mistral completion: %w", err)
	}
	if len(out.Choices) == 0 || strings.TrimSpace(out.Choices[0].Message.Content) == "" {
		return "", ErrEmptyCompletion
	}
	return out.Choices[0].Message.Content, nil
}
