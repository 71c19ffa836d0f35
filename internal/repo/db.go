// Package repo implements the data persistence layer for the application
// tracker, backed by GORM. This file contains database bootstrapping helpers
// for SQLite (pure Go driver), plugin installation, and schema migration.
package repo

import (
	"os"
	"path/filepath"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/plugin/opentelemetry/tracing"

	"github.com/avasquez/go-apptrack-backend/internal/domain"
	"github.com/avasquez/go-apptrack-backend/internal/policy"
)

// OpenSQLite opens (or creates) a SQLite database, applies PRAGMAs, sizes the
// connection pool, and installs the plugins every handle must carry: OTel
// query tracing and the row-level owner policy.
//
// The owner policy is installed here, on the single process-wide handle, so
// that no code path can obtain an unguarded connection to the applications
// table.
func OpenSQLite(path string) (*gorm.DB, error) {
	// Fail early if the parent directory does not exist instead of surfacing
	// sqlite's opaque "out of memory (14)".
	if dir := filepath.Dir(path); dir != "." {
		if _, err := os.Stat(dir); err != nil {
			return nil, err
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	// PRAGMAs
	db.Exec("PRAGMA journal_mode=WAL;")
	db.Exec("PRAGMA synchronous=NORMAL;")
	db.Exec("PRAGMA foreign_keys=ON;")
	db.Exec("PRAGMA busy_timeout=5000;")

	// Pool
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(10)
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetConnMaxIdleTime(5 * time.Minute)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	}

	if err := db.Use(tracing.NewPlugin(tracing.WithoutMetrics())); err != nil {
		return nil, err
	}
	if err := db.Use(policy.OwnerPolicy{}); err != nil {
		return nil, err
	}

	return db, nil
}

// AutoMigrate creates or updates the schema for all persisted models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&domain.Application{})
}
