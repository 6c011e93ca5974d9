// This file provides repository functions for the MoodEntry model.
//
// All functions are context-aware and accept a *gorm.DB handle. They follow
// the "thin repository" approach: no business logic, only persistence and
// query composition. Ordering is by the client-supplied ISO-8601 timestamp,
// which sorts lexically for a fixed format.

package repo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/swasth-ai/wellness-backend/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = gorm.ErrRecordNotFound

// CreateMood inserts e with a fresh UUID and returns the persisted row.
func CreateMood(ctx context.Context, db *gorm.DB, e domain.MoodEntry) (*domain.MoodEntry, error) {
	e.ID = domain.RowID(uuid.NewString())
	if err := db.WithContext(ctx).Create(&e).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

// ListMoods returns every entry owned by userID, oldest first. It returns an
// empty slice if the user has no entries.
func ListMoods(ctx context.Context, db *gorm.DB, userID string) ([]domain.MoodEntry, error) {
	var out []domain.MoodEntry
	err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("timestamp asc").
		Find(&out).Error
	return out, err
}

// RecentMoods returns at most limit entries owned by userID, newest first.
func RecentMoods(ctx context.Context, db *gorm.DB, userID string, limit int) ([]domain.MoodEntry, error) {
	var out []domain.MoodEntry
	err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("timestamp desc").
		Limit(limit).
		Find(&out).Error
	return out, err
}

// CountMoods returns the number of entries owned by userID.
func CountMoods(ctx context.Context, db *gorm.DB, userID string) (int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Model(&domain.MoodEntry{}).
		Where("user_id = ?", userID).
		Count(&total).Error
	return total, err
}
