// Package dbtest opens migrated SQLite databases for tests.
package dbtest

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	"github.com/templui/brainbox/internal/db"
)

// Open returns a fresh database file under t.TempDir() with every migration applied.
// A single pooled connection keeps SQLite writers from contending for the file lock
// while still letting goroutines interleave statement by statement.
func Open(t testing.TB) *sqlx.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "brainbox.db") +
		"?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"

	database, err := db.Init("sqlite", dsn)
	require.NoError(t, err)
	database.SetMaxOpenConns(1)

	t.Cleanup(func() {
		_ = database.Close()
	})

	err = db.RunMigrations(context.Background(), database.DB, "sqlite")
	require.NoError(t, err)

	return database
}
