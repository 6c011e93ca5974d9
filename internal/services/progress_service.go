package services

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/swasth-ai/wellness-backend/internal/domain"
)

// ProgressService derives XP, level and badges from record counts.
type ProgressService struct {
	Moods MoodStore
	Notes NoteStore
}

// NewProgressService returns a ProgressService over the given stores.
func NewProgressService(moods MoodStore, notes NoteStore) *ProgressService {
	return &ProgressService{Moods: moods, Notes: notes}
}

// Snapshot computes the progress of userID from its mood count and the count
// of every note on the wall (notes are not attributed to users). On any store
// failure it returns domain.DefaultProgress together with the error.
func (s *ProgressService) Snapshot(ctx context.Context, auth, userID string) (domain.Progress, error) {
	tr := otel.Tracer("services/ProgressService")
	ctx, span := tr.Start(ctx, "Snapshot", trace.WithAttributes(attribute.String("user.id", userID)))
	defer span.End()

	moods, err := s.Moods.CountMoods(ctx, auth, userID)
	if err != nil {
		span.RecordError(err)
		degraded("progress", "store_failed")
		return domain.DefaultProgress(), fmt.Errorf("count moods: %w", err)
	}
	notes, err := s.Notes.CountNotes(ctx, auth)
	if err != nil {
		span.RecordError(err)
		degraded("progress", "store_failed")
		return domain.DefaultProgress(), fmt.Errorf("count notes: %w", err)
	}

	p := domain.ComputeProgress(moods, notes)
	span.SetAttributes(attribute.Int("progress.xp", p.XP), attribute.Int("progress.level", p.Level))
	return p, nil
}
