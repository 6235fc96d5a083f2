package testutil

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/mealplanner/internal/db"
	"github.com/alexanderramin/mealplanner/internal/repository"
)

// NewTestDB creates an in-memory SQLite database with all migrations applied.
// The database is closed when the test completes.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		database.Close()
	})
	return database
}

// NewTestUoW creates a UnitOfWork backed by the given test database.
func NewTestUoW(database *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(database)
}

// NewTestSQLiteDocumentRepo returns a SQLite-backed document repo on a fresh
// in-memory database.
func NewTestSQLiteDocumentRepo(t *testing.T, opts ...repository.SQLiteDocumentOption) *repository.SQLiteDocumentRepo {
	t.Helper()
	database := NewTestDB(t)
	return repository.NewSQLiteDocumentRepo(database, NewTestUoW(database), opts...)
}

// TempDocumentPath returns a meal_plans.json path inside a per-test temp dir.
// The file does not exist yet.
func TempDocumentPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "meal_plans.json")
}
