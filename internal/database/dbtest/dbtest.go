// Package dbtest opens throwaway in-memory databases for tests.
package dbtest

import (
	"io"
	"testing"

	"taskhub/internal/database"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// New returns a migrated in-memory SQLite database that is closed when t finishes.
func New(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := database.Open("sqlite:///:memory:", false, zerolog.New(io.Discard))
	if err != nil {
		t.Fatalf("open in-memory database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate in-memory database: %v", err)
	}
	t.Cleanup(func() {
		_ = database.Close(db)
	})
	return db
}
