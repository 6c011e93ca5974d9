package services

import (
	"context"
	"encoding/json"

	"github.com/swasth-ai/wellness-backend/internal/domain"
)

// The store contracts below are satisfied by both postgrest.Store (hosted
// row store) and repo.Store (local SQLite). auth is the caller's raw
// Authorization header value, or "" for anonymous access.

// MoodStore persists and queries mood journal entries.
type MoodStore interface {
	InsertMood(ctx context.Context, auth string, e domain.MoodEntry) error
	// ListMoods returns all entries of userID, oldest first.
	ListMoods(ctx context.Context, auth, userID string) ([]domain.MoodEntry, error)
	// RecentMoods returns at most limit entries of userID, newest first.
	RecentMoods(ctx context.Context, auth, userID string, limit int) ([]domain.MoodEntry, error)
	CountMoods(ctx context.Context, auth, userID string) (int, error)
}

// NoteStore persists and queries encouragement notes.
type NoteStore interface {
	InsertNote(ctx context.Context, auth string, n domain.EncouragementNote) error
	// ListNotes returns at most limit note rows, newest first, exactly as
	// the store serialized them.
	ListNotes(ctx context.Context, auth string, limit int) ([]json.RawMessage, error)
	CountNotes(ctx context.Context, auth string) (int, error)
}

// IdentityGateway updates the profile of the user owning auth and returns
// the identity service's answer unchanged.
type IdentityGateway interface {
	UpdateUser(ctx context.Context, auth string, attrs domain.UserAttributes) (json.RawMessage, error)
}
