// Package repo is the GORM persistence layer behind the local ledger:
// participants, survey records and submission keys. Functions take
// (ctx, db, ...) and return ErrNotFound or ErrDuplicate where callers
// branch on the outcome.
package repo

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/opentelemetry/tracing"

	"github.com/tbourn/go-wellbeing-backend/internal/domain"
)

const maxOpenConns = 10

var pragmas = []string{
	"PRAGMA journal_mode=WAL",
	"PRAGMA synchronous=NORMAL",
	"PRAGMA foreign_keys=ON",
	"PRAGMA busy_timeout=5000",
}

// OpenSQLite opens path (a file path or a file: URI), applies pragmas, sizes
// the pool and installs GORM tracing. In-memory URIs keep their connections
// alive for the life of the process so the data survives idle periods.
func OpenSQLite(path string) (*gorm.DB, error) {
	uri := isURIDSN(path)
	if !uri {
		if dir := filepath.Dir(path); dir != "." {
			if _, err := os.Stat(dir); err != nil {
				return nil, err
			}
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	if err := db.Use(tracing.NewPlugin(tracing.WithoutMetrics())); err != nil {
		return nil, err
	}

	for _, p := range pragmas {
		if err := db.Exec(p).Error; err != nil {
			log.Warn().Err(err).Str("pragma", p).Msg("sqlite pragma")
		}
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxOpenConns)
	if !uri {
		sqlDB.SetConnMaxIdleTime(5 * time.Minute)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	}
	return db, nil
}

// AutoMigrate creates or updates the ledger and submission-key tables.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.Participant{},
		&domain.SurveyRecord{},
		&domain.Idempotency{},
	)
}

func isURIDSN(path string) bool {
	return strings.HasPrefix(path, "file:") || path == ":memory:"
}
