// Package services – MoodService
//
// This file implements MoodService: logging mood journal entries, listing a
// user's journal, and producing a short AI reflection over the most recent
// entries. Logging surfaces failures to the caller; listing and reflecting
// degrade to an empty list or a static message and report the cause
// separately.
package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/swasth-ai/wellness-backend/internal/domain"
	"github.com/swasth-ai/wellness-backend/internal/llm"
)

// ReflectionWindow is how many of the newest entries feed a reflection.
const ReflectionWindow = 5

// ReflectionOutcome tells which branch produced a reflection.
type ReflectionOutcome string

const (
	OutcomeGenerated       ReflectionOutcome = "generated"
	OutcomeUnauthenticated ReflectionOutcome = "unauthenticated"
	OutcomeNoEntries       ReflectionOutcome = "no_entries"
	OutcomeNoNotes         ReflectionOutcome = "no_notes"
	OutcomeFallback        ReflectionOutcome = "fallback"
)

// Static reflection texts, one per degraded outcome.
const (
	ReflectionLoginPrompt = "Log in to unlock AI insights."
	ReflectionNoEntries   = "No entries yet. Share your journey to unlock AI-powered insights."
	ReflectionNoNotes     = "You've been tracking your mood! Try adding more detailed notes for deeper reflections."
	ReflectionFallback    = "I'm processing your progress... Your resilience is your strength."
)

const reflectionSystemPrompt = "You are 'Swasth', a supportive, empathetic student wellness coach. " +
	"Provide a brief 2-sentence 'Mindful Reflection' based on the student's mood entries."

// Reflection is the outcome of Reflect.
type Reflection struct {
	Text    string
	Outcome ReflectionOutcome
	// Err is set for OutcomeFallback.
	Err error
}

// MoodService implements the mood journal use-cases.
type MoodService struct {
	Store MoodStore
	LLM   llm.Completer

	ReflectionMaxTokens int
	ReflectionTimeout   time.Duration

	// MaxNoteRunes caps journal notes; zero disables the check.
	MaxNoteRunes int
}

// NewMoodService returns a MoodService with the reflection settings of cfg.
func NewMoodService(store MoodStore, c llm.Completer, maxTokens int, timeout time.Duration) *MoodService {
	return &MoodService{
		Store:               store,
		LLM:                 c,
		ReflectionMaxTokens: maxTokens,
		ReflectionTimeout:   timeout,
		MaxNoteRunes:        4000,
	}
}

// Log stores one mood entry on behalf of the caller identified by auth. The
// four fields are written exactly as given.
//
// Errors:
//   - ErrMissingToken when auth is blank; no store call is made.
//   - ErrTooLong when the note exceeds MaxNoteRunes.
//   - The store error, wrapped, when the write fails.
func (s *MoodService) Log(ctx context.Context, auth string, e domain.MoodEntry) error {
	tr := otel.Tracer("services/MoodService")
	ctx, span := tr.Start(ctx, "Log", trace.WithAttributes(attribute.String("user.id", e.UserID)))
	defer span.End()

	if strings.TrimSpace(auth) == "" {
		return ErrMissingToken
	}
	if tooLong(e.Note, s.MaxNoteRunes) {
		return ErrTooLong
	}

	if err := s.Store.InsertMood(ctx, auth, e); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "insert failed")
		return fmt.Errorf("log mood: %w", err)
	}
	return nil
}

// List returns the journal of userID oldest first. On store failure it
// returns an empty, non-nil slice together with the error so callers can
// log it and still render "no data".
func (s *MoodService) List(ctx context.Context, auth, userID string) ([]domain.MoodEntry, error) {
	tr := otel.Tracer("services/MoodService")
	ctx, span := tr.Start(ctx, "List", trace.WithAttributes(attribute.String("user.id", userID)))
	defer span.End()

	if strings.TrimSpace(auth) == "" {
		return []domain.MoodEntry{}, ErrMissingToken
	}
	items, err := s.Store.ListMoods(ctx, auth, userID)
	if err != nil {
		span.RecordError(err)
		degraded("moods_list", "store_failed")
		return []domain.MoodEntry{}, fmt.Errorf("list moods: %w", err)
	}
	if items == nil {
		items = []domain.MoodEntry{}
	}
	return items, nil
}

// Reflect produces a short reflection over the newest ReflectionWindow
// entries of userID. Each short-circuit has its own outcome:
//
//	no auth          -> OutcomeUnauthenticated (no store or model call)
//	no entries       -> OutcomeNoEntries       (no model call)
//	no entry notes   -> OutcomeNoNotes         (no model call)
//	any failure      -> OutcomeFallback
//	model reply      -> OutcomeGenerated
func (s *MoodService) Reflect(ctx context.Context, auth, userID string) Reflection {
	tr := otel.Tracer("services/MoodService")
	ctx, span := tr.Start(ctx, "Reflect", trace.WithAttributes(attribute.String("user.id", userID)))
	defer span.End()

	r := s.reflect(ctx, auth, userID)
	span.SetAttributes(attribute.String("reflection.outcome", string(r.Outcome)))
	if r.Err != nil {
		span.RecordError(r.Err)
		span.SetStatus(codes.Error, string(r.Outcome))
	}
	if r.Outcome == OutcomeFallback {
		degraded("reflection", "fallback")
	}
	return r
}

func (s *MoodService) reflect(ctx context.Context, auth, userID string) Reflection {
	if strings.TrimSpace(auth) == "" {
		return Reflection{Text: ReflectionLoginPrompt, Outcome: OutcomeUnauthenticated}
	}

	entries, err := s.Store.RecentMoods(ctx, auth, userID, ReflectionWindow)
	if err != nil {
		return Reflection{Text: ReflectionFallback, Outcome: OutcomeFallback, Err: fmt.Errorf("recent moods: %w", err)}
	}
	if len(entries) == 0 {
		return Reflection{Text: ReflectionNoEntries, Outcome: OutcomeNoEntries}
	}

	block := journalBlock(entries)
	if block == "" {
		return Reflection{Text: ReflectionNoNotes, Outcome: OutcomeNoNotes}
	}

	text, err := s.LLM.Complete(ctx, llm.Request{
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: reflectionSystemPrompt},
			{Role: llm.RoleUser, Content: "Here are my recent journal entries:\n" + block},
		},
		MaxTokens: s.ReflectionMaxTokens,
		Timeout:   s.ReflectionTimeout,
	})
	if err != nil {
		return Reflection{Text: ReflectionFallback, Outcome: OutcomeFallback, Err: fmt.Errorf("reflection completion: %w", err)}
	}
	return Reflection{Text: text, Outcome: OutcomeGenerated}
}

// journalBlock renders "Mood <label>: <note>" lines for entries that carry a
// note, in the order given.
func journalBlock(entries []domain.MoodEntry) string {
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		note := strings.TrimSpace(e.Note)
		if note == "" {
			continue
		}
		lines = append(lines, "Mood "+e.Mood+": "+note)
	}
	return strings.Join(lines, "\n")
}
