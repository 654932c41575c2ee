// Package database opens the process-wide GORM handle and hands out per-request sessions.
package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"taskhub/internal/models"

	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Open connects to the database named by url. URLs starting with "sqlite://" or "file:"
// use SQLite; "postgres://", "postgresql://" and key=value DSNs use PostgreSQL.
func Open(url string, debug bool, log zerolog.Logger) (*gorm.DB, error) {
	dialector, isSQLite, err := dialectorFor(url)
	if err != nil {
		return nil, err
	}

	level := gormlogger.Warn
	if debug {
		level = gormlogger.Info
	}
	gormLog := log.With().Str("component", "gorm").Logger()

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger: gormlogger.New(&gormLog, gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if isSQLite {
		// SQLite allows a single writer; one connection avoids "database is locked".
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get sql.DB: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
	}

	return db, nil
}

func dialectorFor(url string) (gorm.Dialector, bool, error) {
	switch {
	case url == "sqlite://" || url == "sqlite:///:memory:":
		return sqlite.Open(":memory:"), true, nil
	case strings.HasPrefix(url, "sqlite:///"):
		return sqlite.Open(strings.TrimPrefix(url, "sqlite:///")), true, nil
	case strings.HasPrefix(url, "file:"):
		return sqlite.Open(url), true, nil
	case strings.HasPrefix(url, "postgres://"),
		strings.HasPrefix(url, "postgresql://"),
		strings.Contains(url, "host="):
		return postgres.Open(url), false, nil
	default:
		return nil, false, fmt.Errorf("unsupported database url %q", url)
	}
}

// Migrate creates or updates the tables for every entity.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.User{}, &models.Item{}, &models.Task{}); err != nil {
		return fmt.Errorf("failed to auto-migrate database: %w", err)
	}
	return nil
}

// Ping checks that the database answers.
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
