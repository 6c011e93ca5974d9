// Package services – ChatService
//
// This file implements ChatService, which turns a student's message and the
// client-held conversation history into one chat-completion call. The reply
// is never an error for the caller: any failure yields a fixed empathetic
// fallback with status "error", and the cause is returned alongside for
// logging.
package services

import (
	"context"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/swasth-ai/wellness-backend/internal/domain"
	"github.com/swasth-ai/wellness-backend/internal/llm"
)

// Chat reply statuses as reported to the client.
const (
	ChatStatusSuccess = "success"
	ChatStatusError   = "error"
)

// ChatFallback is the reply sent when the completion call fails.
const ChatFallback = "I'm having a little trouble connecting. How about we focus on your mood journal for a moment?"

// chatSystemPrompt sets the persona and the crisis-response policy. The two
// helpline identifiers must appear verbatim.
const chatSystemPrompt = "You are 'Swasth', a supportive, empathetic student wellness companion. \n" +
	"IF the user provides gibberish or invalid input, politely ask them to clarify how they are feeling instead of suggesting exercises. \n" +
	"IF the user expresses self-harm or suicidal thoughts, IMMEDIATELY provide the following Indian student helplines: " +
	"T-MANAS: 14416 (24/7), Kiran Helpline: 1800-599-0019. Keep responses brief (1-3 sentences)."

// ChatReply is the outcome of one chat turn.
type ChatReply struct {
	Text   string
	Status string
	// Err is the cause of a fallback reply; nil on success.
	Err error
}

// ChatService answers chat turns through a Completer.
type ChatService struct {
	LLM       llm.Completer
	MaxTokens int
	Timeout   time.Duration
}

// NewChatService returns a ChatService with the given token cap and timeout.
func NewChatService(c llm.Completer, maxTokens int, timeout time.Duration) *ChatService {
	return &ChatService{LLM: c, MaxTokens: maxTokens, Timeout: timeout}
}

// Reply produces the assistant's answer to message given prior history.
func (s *ChatService) Reply(ctx context.Context, message string, history []domain.ChatHistoryItem) ChatReply {
	tr := otel.Tracer("services/ChatService")
	ctx, span := tr.Start(ctx, "Reply",
		trace.WithAttributes(attribute.Int("chat.history_len", len(history))),
	)
	defer span.End()

	text, err := s.LLM.Complete(ctx, llm.Request{
		Messages:  BuildChatMessages(message, history),
		MaxTokens: s.MaxTokens,
		Timeout:   s.Timeout,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "completion failed")
		degraded("chat", "completion_failed")
		return ChatReply{Text: ChatFallback, Status: ChatStatusError, Err: err}
	}
	return ChatReply{Text: text, Status: ChatStatusSuccess}
}

// BuildChatMessages lays out the completion conversation: the system prompt,
// each history item with "model" mapped to the assistant role and its parts
// joined by a single space, then the new user message.
func BuildChatMessages(message string, history []domain.ChatHistoryItem) []llm.Message {
	msgs := make([]llm.Message, 0, len(history)+2)
	msgs = append(msgs, llm.Message{Role: llm.RoleSystem, Content: chatSystemPrompt})
	for _, h := range history {
		role := llm.RoleUser
		if h.Role == domain.HistoryRoleModel {
			role = llm.RoleAssistant
		}
		msgs = append(msgs, llm.Message{Role: role, Content: strings.Join(h.Parts, " ")})
	}
	msgs = append(msgs, llm.Message{Role: llm.RoleUser, Content: message})
	return msgs
}
