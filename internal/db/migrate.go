package db

import (
	"database/sql"
	"fmt"
)

// Migrate runs all schema migrations. Every statement is idempotent.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	// Each save of the plan document is stored as a revision; the newest row
	// (highest seq) is the current document.
	`CREATE TABLE IF NOT EXISTS plan_revisions (
		seq        INTEGER PRIMARY KEY AUTOINCREMENT,
		id         TEXT NOT NULL UNIQUE,
		saved_at   TEXT NOT NULL,
		num_weeks  INTEGER NOT NULL CHECK(num_weeks > 0),
		start_date TEXT,
		body       TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_plan_revisions_saved ON plan_revisions(saved_at)`,
}
