package postgrest

import (
	"context"
	"encoding/json"

	"github.com/swasth-ai/wellness-backend/internal/domain"
)

const (
	tableMoods = "moods"
	tableNotes = "encouragement_notes"
)

// Store exposes the wellness tables over a Client.
type Store struct {
	c *Client
}

// NewStore wraps c.
func NewStore(c *Client) *Store { return &Store{c: c} }

type moodRow struct {
	Mood      string `json:"mood"`
	Note      string `json:"note"`
	Timestamp string `json:"timestamp"`
	UserID    string `json:"user_id"`
}

type noteRow struct {
	Message  string `json:"message"`
	Color    string `json:"color"`
	Rotation int    `json:"rotation"`
}

// InsertMood writes the four mood fields without echoing the row back.
func (s *Store) InsertMood(ctx context.Context, auth string, e domain.MoodEntry) error {
	return s.c.Insert(ctx, auth, tableMoods, moodRow{
		Mood:      e.Mood,
		Note:      e.Note,
		Timestamp: e.Timestamp,
		UserID:    e.UserID,
	}, true)
}

// ListMoods returns mood, note and timestamp of every entry for userID,
// oldest first.
func (s *Store) ListMoods(ctx context.Context, auth, userID string) ([]domain.MoodEntry, error) {
	var out []domain.MoodEntry
	err := s.c.From(tableMoods).
		Select("mood", "note", "timestamp").
		Eq("user_id", userID).
		Order("timestamp", false).
		Execute(ctx, auth, &out)
	return out, err
}

// RecentMoods returns the newest limit entries for userID, newest first.
func (s *Store) RecentMoods(ctx context.Context, auth, userID string, limit int) ([]domain.MoodEntry, error) {
	var out []domain.MoodEntry
	err := s.c.From(tableMoods).
		Select("mood", "note", "timestamp").
		Eq("user_id", userID).
		Order("timestamp", true).
		Limit(limit).
		Execute(ctx, auth, &out)
	return out, err
}

// CountMoods counts entries for userID.
func (s *Store) CountMoods(ctx context.Context, auth, userID string) (int, error) {
	return s.c.From(tableMoods).Select("id").Eq("user_id", userID).Count(ctx, auth)
}

// InsertNote writes one note; created_at is assigned by the store.
func (s *Store) InsertNote(ctx context.Context, auth string, n domain.EncouragementNote) error {
	return s.c.Insert(ctx, auth, tableNotes, noteRow{
		Message:  n.Message,
		Color:    n.Color,
		Rotation: n.Rotation,
	}, true)
}

// ListNotes returns the newest limit rows, newest first. Rows are passed
// through undecoded so every column keeps the store's own encoding.
func (s *Store) ListNotes(ctx context.Context, auth string, limit int) ([]json.RawMessage, error) {
	var out []json.RawMessage
	err := s.c.From(tableNotes).
		Select().
		Order("created_at", true).
		Limit(limit).
		Execute(ctx, auth, &out)
	return out, err
}

// CountNotes counts every note on the wall.
func (s *Store) CountNotes(ctx context.Context, auth string) (int, error) {
	return s.c.From(tableNotes).Select("id").Count(ctx, auth)
}

// UpdateUser forwards a profile change to the identity endpoint.
func (s *Store) UpdateUser(ctx context.Context, auth string, attrs domain.UserAttributes) (json.RawMessage, error) {
	return s.c.UpdateUser(ctx, auth, attrs)
}
