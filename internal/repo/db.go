// Package repo implements the local persistence layer backed by GORM. It
// serves two roles: the idempotency ledger for retried POSTs, and the
// "sqlite" store driver that keeps moods and encouragement notes in a local
// database instead of the hosted row store.
package repo

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/plugin/opentelemetry/tracing"

	"github.com/swasth-ai/wellness-backend/internal/domain"
)

const (
	maxOpenConns    = 10
	connMaxIdleTime = 5 * time.Minute
	connMaxLifetime = 30 * time.Minute
)

// filePragmas apply to on-disk databases only; WAL is meaningless in memory.
var (
	filePragmas   = []string{"journal_mode=WAL", "synchronous=NORMAL"}
	commonPragmas = []string{"foreign_keys=ON", "busy_timeout=5000"}
)

// OpenSQLite opens (or creates) the SQLite database at dsn, applies PRAGMAs
// and installs the OpenTelemetry tracing plugin so queries show up as spans.
// dsn is a file path or a "file:...?mode=memory" / ":memory:" URI.
func OpenSQLite(dsn string) (*gorm.DB, error) {
	memory := isMemoryDSN(dsn)
	if !memory {
		// The driver reports a missing directory as "out of memory (14)".
		if dir := filepath.Dir(dsn); dir != "." {
			if _, err := os.Stat(dir); err != nil {
				return nil, err
			}
		}
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if err := db.Use(tracing.NewPlugin(tracing.WithoutMetrics())); err != nil {
		return nil, err
	}

	pragmas := commonPragmas
	if !memory {
		pragmas = append(append([]string{}, filePragmas...), commonPragmas...)
	}
	for _, p := range pragmas {
		if err := db.Exec("PRAGMA " + p + ";").Error; err != nil {
			return nil, fmt.Errorf("pragma %s: %w", p, err)
		}
	}

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(maxOpenConns)
		sqlDB.SetMaxIdleConns(maxOpenConns)
		sqlDB.SetConnMaxIdleTime(connMaxIdleTime)
		sqlDB.SetConnMaxLifetime(connMaxLifetime)
	}

	return db, nil
}

func isMemoryDSN(dsn string) bool {
	return dsn == ":memory:" || strings.Contains(dsn, "mode=memory")
}

// AutoMigrate creates or updates every table the service owns locally.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.MoodEntry{},
		&domain.EncouragementNote{},
		&domain.Idempotency{},
	)
}
