package db

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))
}

func TestMigrate_CreatesRevisionTable(t *testing.T) {
	db := openTestDB(t)

	var name string
	err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, "plan_revisions").Scan(&name)
	require.NoError(t, err)
	assert.Equal(t, "plan_revisions", name)

	err = db.QueryRow(`SELECT name FROM sqlite_master WHERE type='index' AND name=?`, "idx_plan_revisions_saved").Scan(&name)
	require.NoError(t, err, "index should exist")
}

func TestMigrate_RejectsNonPositiveWeeks(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO plan_revisions (id, saved_at, num_weeks, body) VALUES ('r1', '2024-01-01T00:00:00Z', 0, '{}')`)
	assert.Error(t, err, "num_weeks CHECK constraint should reject 0")
}

func TestOpenDB_MemoryJournalMode(t *testing.T) {
	// In-memory SQLite reports "memory"; WAL only applies to file databases.
	db := openTestDB(t)

	var mode string
	require.NoError(t, db.QueryRow(`PRAGMA journal_mode`).Scan(&mode))
	assert.Equal(t, "memory", mode)
}

func TestOpenDB_FileCreatesDirectoryAndUsesWAL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "mealplanner.db")
	db, err := OpenDB(path)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	var mode string
	require.NoError(t, db.QueryRow(`PRAGMA journal_mode`).Scan(&mode))
	assert.Equal(t, "wal", mode)
	assert.FileExists(t, path)
}
