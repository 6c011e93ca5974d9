package repo

import (
	"context"
	"encoding/json"

	"gorm.io/gorm"

	"github.com/swasth-ai/wellness-backend/internal/domain"
)

// Store adapts the mood and note repositories to the service-layer store
// interfaces. The local database has no row-level policies, so the caller's
// Authorization value is accepted and ignored.
type Store struct {
	db *gorm.DB
}

// NewStore wraps db.
func NewStore(db *gorm.DB) *Store { return &Store{db: db} }

func (s *Store) InsertMood(ctx context.Context, _ string, e domain.MoodEntry) error {
	_, err := CreateMood(ctx, s.db, e)
	return err
}

func (s *Store) ListMoods(ctx context.Context, _ string, userID string) ([]domain.MoodEntry, error) {
	return ListMoods(ctx, s.db, userID)
}

func (s *Store) RecentMoods(ctx context.Context, _ string, userID string, limit int) ([]domain.MoodEntry, error) {
	return RecentMoods(ctx, s.db, userID, limit)
}

func (s *Store) CountMoods(ctx context.Context, _ string, userID string) (int, error) {
	n, err := CountMoods(ctx, s.db, userID)
	return int(n), err
}

func (s *Store) InsertNote(ctx context.Context, _ string, n domain.EncouragementNote) error {
	_, err := CreateNote(ctx, s.db, n)
	return err
}

// ListNotes serializes the newest limit notes in the hosted row shape.
func (s *Store) ListNotes(ctx context.Context, _ string, limit int) ([]json.RawMessage, error) {
	notes, err := ListNotes(ctx, s.db, limit)
	if err != nil {
		return nil, err
	}
	out := make([]json.RawMessage, 0, len(notes))
	for _, n := range notes {
		b, err := json.Marshal(n)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}

func (s *Store) CountNotes(ctx context.Context, _ string) (int, error) {
	n, err := CountNotes(ctx, s.db)
	return int(n), err
}
