// Package services – EncouragementService
//
// This file implements the public encouragement wall: anyone may post a
// sticky note, and the wall lists the newest notes first.
package services

import (
	"context"
	"encoding/json"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/swasth-ai/wellness-backend/internal/domain"
)

// MaxNotesListed caps how many notes a listing returns.
const MaxNotesListed = 50

// EncouragementService implements the encouragement wall.
type EncouragementService struct {
	Store NoteStore

	// MaxMessageRunes caps note text; zero disables the check.
	MaxMessageRunes int
}

// NewEncouragementService returns an EncouragementService backed by store.
func NewEncouragementService(store NoteStore) *EncouragementService {
	return &EncouragementService{Store: store, MaxMessageRunes: 500}
}

// Post adds a note to the wall as given. auth is forwarded when present but
// not required.
func (s *EncouragementService) Post(ctx context.Context, auth string, n domain.EncouragementNote) error {
	tr := otel.Tracer("services/EncouragementService")
	ctx, span := tr.Start(ctx, "Post")
	defer span.End()

	if tooLong(n.Message, s.MaxMessageRunes) {
		return ErrTooLong
	}
	if err := s.Store.InsertNote(ctx, auth, n); err != nil {
		span.RecordError(err)
		return fmt.Errorf("post note: %w", err)
	}
	return nil
}

// List returns up to limit note rows, newest first, as the store returned
// them. Limits outside 1..MaxNotesListed are clamped to MaxNotesListed. On
// store failure the slice is empty, not nil.
func (s *EncouragementService) List(ctx context.Context, auth string, limit int) ([]json.RawMessage, error) {
	if limit <= 0 || limit > MaxNotesListed {
		limit = MaxNotesListed
	}
	tr := otel.Tracer("services/EncouragementService")
	ctx, span := tr.Start(ctx, "List", trace.WithAttributes(attribute.Int("limit", limit)))
	defer span.End()

	items, err := s.Store.ListNotes(ctx, auth, limit)
	if err != nil {
		span.RecordError(err)
		degraded("notes_list", "store_failed")
		return []json.RawMessage{}, fmt.Errorf("list notes: %w", err)
	}
	if items == nil {
		items = []json.RawMessage{}
	}
	return items, nil
}
