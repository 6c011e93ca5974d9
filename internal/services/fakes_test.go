package services

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/swasth-ai/wellness-backend/internal/domain"
	"github.com/swasth-ai/wellness-backend/internal/llm"
)

// ----- Fakes -----

type fakeCompleter struct {
	mu    sync.Mutex
	calls int
	last  llm.Request
	reply string
	err   error
}

func (f *fakeCompleter) Complete(_ context.Context, req llm.Request) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.last = req
	return f.reply, f.err
}

type fakeMoodStore struct {
	insertFn func(ctx context.Context, auth string, e domain.MoodEntry) error
	listFn   func(ctx context.Context, auth, userID string) ([]domain.MoodEntry, error)
	recentFn func(ctx context.Context, auth, userID string, limit int) ([]domain.MoodEntry, error)
	countFn  func(ctx context.Context, auth, userID string) (int, error)

	inserts     int
	recentCalls int
}

func (f *fakeMoodStore) InsertMood(ctx context.Context, auth string, e domain.MoodEntry) error {
	f.inserts++
	if f.insertFn != nil {
		return f.insertFn(ctx, auth, e)
	}
	return nil
}

func (f *fakeMoodStore) ListMoods(ctx context.Context, auth, userID string) ([]domain.MoodEntry, error) {
	if f.listFn != nil {
		return f.listFn(ctx, auth, userID)
	}
	return nil, nil
}

func (f *fakeMoodStore) RecentMoods(ctx context.Context, auth, userID string, limit int) ([]domain.MoodEntry, error) {
	f.recentCalls++
	if f.recentFn != nil {
		return f.recentFn(ctx, auth, userID, limit)
	}
	return nil, nil
}

func (f *fakeMoodStore) CountMoods(ctx context.Context, auth, userID string) (int, error) {
	if f.countFn != nil {
		return f.countFn(ctx, auth, userID)
	}
	return 0, nil
}

type fakeNoteStore struct {
	insertFn func(ctx context.Context, auth string, n domain.EncouragementNote) error
	listFn   func(ctx context.Context, auth string, limit int) ([]json.RawMessage, error)
	countFn  func(ctx context.Context, auth string) (int, error)
}

func (f *fakeNoteStore) InsertNote(ctx context.Context, auth string, n domain.EncouragementNote) error {
	if f.insertFn != nil {
		return f.insertFn(ctx, auth, n)
	}
	return nil
}

func (f *fakeNoteStore) ListNotes(ctx context.Context, auth string, limit int) ([]json.RawMessage, error) {
	if f.listFn != nil {
		return f.listFn(ctx, auth, limit)
	}
	return nil, nil
}

func (f *fakeNoteStore) CountNotes(ctx context.Context, auth string) (int, error) {
	if f.countFn != nil {
		return f.countFn(ctx, auth)
	}
	return 0, nil
}

type fakeIdentity struct {
	gotAuth  string
	gotAttrs domain.UserAttributes
	out      json.RawMessage
	err      error
	calls    int
}

func (f *fakeIdentity) UpdateUser(_ context.Context, auth string, attrs domain.UserAttributes) (json.RawMessage, error) {
	f.calls++
	f.gotAuth, f.gotAttrs = auth, attrs
	return f.out, f.err
}
