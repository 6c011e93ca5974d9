// This file provides repository functions for the EncouragementNote model.
// Notes are public: no function here filters by user.

package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/swasth-ai/wellness-backend/internal/domain"
)

// CreateNote inserts n with a fresh UUID and a UTC creation time.
func CreateNote(ctx context.Context, db *gorm.DB, n domain.EncouragementNote) (*domain.EncouragementNote, error) {
	n.ID = domain.RowID(uuid.NewString())
	n.CreatedAt = time.Now().UTC()
	if err := db.WithContext(ctx).Create(&n).Error; err != nil {
		return nil, err
	}
	return &n, nil
}

// ListNotes returns at most limit notes, newest first.
func ListNotes(ctx context.Context, db *gorm.DB, limit int) ([]domain.EncouragementNote, error) {
	var out []domain.EncouragementNote
	err := db.WithContext(ctx).
		Order("created_at desc").
		Limit(limit).
		Find(&out).Error
	return out, err
}

// CountNotes returns the number of notes on the wall.
func CountNotes(ctx context.Context, db *gorm.DB) (int64, error) {
	var total int64
	err := db.WithContext(ctx).Model(&domain.EncouragementNote{}).Count(&total).Error
	return total, err
}
