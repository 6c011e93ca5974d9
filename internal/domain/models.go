// Package domain defines the records exchanged with the row store and the
// derived values computed from them. The persisted types carry GORM tags so
// the same structs back the local SQLite store driver; over the hosted store
// they are plain JSON rows.
package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"time"
)

// RowID is a row identifier as returned by the row store. Hosted tables may
// use bigint or uuid primary keys, so both JSON numbers and strings decode.
type RowID string

// UnmarshalJSON accepts a JSON string, number, or null.
func (id *RowID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0 || bytes.Equal(b, []byte("null")):
		*id = ""
		return nil
	case b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = RowID(s)
		return nil
	case b[0] == '-' || (b[0] >= '0' && b[0] <= '9'):
		var n json.Number
		if err := json.Unmarshal(b, &n); err != nil {
			return err
		}
		*id = RowID(n.String())
		return nil
	}
	return errors.New("domain: row id must be a string or number")
}

// MoodEntry is one mood journal submission. It is written once and never
// mutated by this service; reads return it ordered by Timestamp.
//
// Fields:
//   - Mood: free-form mood label chosen in the client (e.g. "calm").
//   - Note: optional journal text; empty notes are skipped by reflections.
//   - Timestamp: ISO-8601 string supplied by the client.
//   - UserID: owner identifier from the identity provider.
type MoodEntry struct {
	ID        RowID  `json:"id,omitempty"      gorm:"type:char(36);primaryKey"`
	Mood      string `json:"mood"              gorm:"type:varchar(64);not null"`
	Note      string `json:"note"              gorm:"type:text;not null;default:''"`
	Timestamp string `json:"timestamp"         gorm:"type:varchar(64);not null;index:idx_moods_user_ts,priority:2"`
	UserID    string `json:"user_id,omitempty" gorm:"type:varchar(64);not null;index:idx_moods_user_ts,priority:1"`
}

// TableName returns the database table name for MoodEntry.
func (MoodEntry) TableName() string { return "moods" }

// EncouragementNote is a public sticky note on the encouragement wall.
// CreatedAt is assigned by the store.
type EncouragementNote struct {
	ID        RowID     `json:"id,omitempty" gorm:"type:char(36);primaryKey"`
	Message   string    `json:"message"      gorm:"type:text;not null"`
	Color     string    `json:"color"        gorm:"type:varchar(32);not null"`
	Rotation  int       `json:"rotation"     gorm:"not null;default:0"`
	CreatedAt time.Time `json:"created_at"   gorm:"index"`
}

// TableName returns the database table name for EncouragementNote.
func (EncouragementNote) TableName() string { return "encouragement_notes" }

// Chat history roles as sent by the client.
const (
	HistoryRoleUser  = "user"
	HistoryRoleModel = "model"
)

// ChatHistoryItem is one prior turn of a conversation. It only lives for the
// duration of a chat request and is never persisted.
type ChatHistoryItem struct {
	Role  string   `json:"role"  binding:"required,oneof=user model" example:"user"`
	Parts []string `json:"parts" example:"I feel stressed about exams"`
}

// UserAttributes are the profile fields a user may change. Nil means
// "leave unchanged".
type UserAttributes struct {
	Name     *string
	Password *string
}
