// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file contains database bootstrapping helpers for
// SQLite (pure Go driver) and schema migrations.
package repo

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/opentelemetry/tracing"

	"github.com/tbourn/priority-radar/internal/domain"
)

// MemoryDSN is the default data source: a named, shared-cache in-memory
// database that lives as long as its single pooled connection.
const MemoryDSN = "file:radar?mode=memory&cache=shared"

// IsMemory reports whether dsn points at an in-memory SQLite database.
func IsMemory(dsn string) bool {
	return dsn == "" || dsn == ":memory:" || strings.Contains(dsn, "mode=memory")
}

// OpenSQLite opens an SQLite database and applies PRAGMAs. An empty path or
// ":memory:" opens MemoryDSN.
//
// In-memory databases are pinned to one connection: the data disappears when
// the last connection closes, and a single connection also serializes writers
// so id assignment inside transactions cannot race.
func OpenSQLite(path string) (*gorm.DB, error) {
	mem := IsMemory(path)
	if path == "" || path == ":memory:" {
		path = MemoryDSN
	}

	// Fail early if parent directory does not exist (instead of sqlite "out of memory (14)" on Windows).
	if !mem {
		if dir := filepath.Dir(path); dir != "." {
			if _, err := os.Stat(dir); err != nil {
				return nil, err
			}
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}
	if err := db.Use(tracing.NewPlugin(tracing.WithoutMetrics())); err != nil {
		return nil, err
	}

	// PRAGMAs
	if !mem {
		db.Exec("PRAGMA journal_mode=WAL;")
		db.Exec("PRAGMA synchronous=NORMAL;")
	}
	db.Exec("PRAGMA foreign_keys=ON;")
	db.Exec("PRAGMA busy_timeout=5000;")

	// Pool
	if sqlDB, err := db.DB(); err == nil {
		if mem {
			sqlDB.SetMaxOpenConns(1)
			sqlDB.SetMaxIdleConns(1)
			sqlDB.SetConnMaxIdleTime(0)
			sqlDB.SetConnMaxLifetime(0)
		} else {
			sqlDB.SetMaxOpenConns(10)
			sqlDB.SetMaxIdleConns(10)
			sqlDB.SetConnMaxIdleTime(5 * time.Minute)
			sqlDB.SetConnMaxLifetime(30 * time.Minute)
		}
	}

	return db, nil
}

// AutoMigrate creates or updates every table the service owns.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.Priority{},
		&domain.CheckIn{},
		&domain.FOIARequest{},
		&domain.User{},
		&domain.Sequence{},
		&domain.Idempotency{},
	)
}
