// Package db opens the gorm connection used by the stand-in users API.
package db

import (
	"fmt"
	"log/slog"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"gobarber/internal/feature/users/domain/entity"
)

// Config selects the database. DatabaseURL (postgres) wins over SQLitePath.
type Config struct {
	DatabaseURL  string
	SQLitePath   string
	ConnDeadline time.Duration // how long to keep retrying the initial connection
}

// Dialector returns the gorm dialector for cfg.
func Dialector(cfg Config) gorm.Dialector {
	if cfg.DatabaseURL != "" {
		return postgres.Open(cfg.DatabaseURL)
	}
	path := cfg.SQLitePath
	if path == "" {
		path = "file::memory:?cache=shared"
	}
	return sqlite.Open(path)
}

// Open connects, retrying until ConnDeadline (postgres may still be starting),
// and migrates the users table.
func Open(cfg Config) (*gorm.DB, error) {
	deadline := time.Now().Add(cfg.ConnDeadline)
	var (
		db  *gorm.DB
		err error
	)
	for {
		db, err = gorm.Open(Dialector(cfg), &gorm.Config{TranslateError: true})
		if err == nil {
			break
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("db connect failed: %w", err)
		}
		slog.Warn("DB connect failed, retrying", "error", err)
		time.Sleep(3 * time.Second)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates or updates the schema.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&entity.User{}); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	return nil
}
