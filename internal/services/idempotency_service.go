package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/swasth-ai/wellness-backend/internal/repo"
)

// IdempotencyService remembers successful writes per (user, scope, key) so a
// retried POST can be acknowledged without writing twice.
type IdempotencyService struct {
	DB  *gorm.DB
	TTL time.Duration
}

// NewIdempotencyService returns a ledger over db with the given TTL.
func NewIdempotencyService(db *gorm.DB, ttl time.Duration) *IdempotencyService {
	return &IdempotencyService{DB: db, TTL: ttl}
}

// Seen reports whether a non-expired record exists.
func (s *IdempotencyService) Seen(ctx context.Context, userID, scope, key string) (bool, error) {
	_, err := repo.GetIdempotency(ctx, s.DB, userID, scope, key, time.Now().UTC())
	if errors.Is(err, repo.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Remember records a successful write. A concurrent duplicate is not an
// error.
func (s *IdempotencyService) Remember(ctx context.Context, userID, scope, key string, status int) error {
	if key == "" || scope == "" {
		return nil
	}
	_, err := repo.CreateIdempotency(ctx, s.DB, userID, scope, key, status, s.TTL)
	if errors.Is(err, repo.ErrDuplicate) {
		return nil
	}
	return err
}

// Purge deletes expired records and returns how many were removed.
func (s *IdempotencyService) Purge(ctx context.Context) (int64, error) {
	return repo.PurgeExpiredIdempotency(ctx, s.DB, time.Now().UTC())
}
