package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/mealplanner/internal/db"
	"github.com/alexanderramin/mealplanner/internal/domain"
)

// SQLiteRevisionRepo implements RevisionRepo using a SQLite database.
type SQLiteRevisionRepo struct {
	db db.DBTX
}

var _ RevisionRepo = (*SQLiteRevisionRepo)(nil)

// NewSQLiteRevisionRepo creates a new SQLiteRevisionRepo.
func NewSQLiteRevisionRepo(conn db.DBTX) *SQLiteRevisionRepo {
	return &SQLiteRevisionRepo{db: conn}
}

const revisionColumns = `id, saved_at, num_weeks, start_date, body`

func (r *SQLiteRevisionRepo) Create(ctx context.Context, rev *domain.Revision) error {
	query := `INSERT INTO plan_revisions (` + revisionColumns + `) VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		rev.ID,
		formatTimestamp(rev.SavedAt),
		rev.NumWeeks,
		nullableDateToString(rev.StartDate),
		string(rev.Body),
	)
	if err != nil {
		return fmt.Errorf("inserting plan revision: %w", err)
	}
	return nil
}

func (r *SQLiteRevisionRepo) Latest(ctx context.Context) (*domain.Revision, error) {
	query := `SELECT ` + revisionColumns + ` FROM plan_revisions ORDER BY seq DESC LIMIT 1`
	row := r.db.QueryRowContext(ctx, query)

	rev, err := scanRevision(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("plan revision: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning plan revision: %w", err)
	}
	return rev, nil
}

// List returns up to limit revisions, newest first. A non-positive limit
// returns all of them.
func (r *SQLiteRevisionRepo) List(ctx context.Context, limit int) ([]*domain.Revision, error) {
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}
	query := `SELECT ` + revisionColumns + ` FROM plan_revisions ORDER BY seq DESC LIMIT ?`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("listing plan revisions: %w", err)
	}
	defer rows.Close()

	var revisions []*domain.Revision
	for rows.Next() {
		rev, err := scanRevision(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning plan revision: %w", err)
		}
		revisions = append(revisions, rev)
	}
	return revisions, rows.Err()
}

// PruneKeep deletes all but the newest keep revisions and reports how many
// rows were removed.
func (r *SQLiteRevisionRepo) PruneKeep(ctx context.Context, keep int) (int64, error) {
	if keep < 1 {
		keep = 1
	}
	query := `DELETE FROM plan_revisions WHERE seq NOT IN (
		SELECT seq FROM plan_revisions ORDER BY seq DESC LIMIT ?)`
	res, err := r.db.ExecContext(ctx, query, keep)
	if err != nil {
		return 0, fmt.Errorf("pruning plan revisions: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

func scanRevision(scan func(dest ...any) error) (*domain.Revision, error) {
	var rev domain.Revision
	var savedAt, body string
	var startDate sql.NullString

	if err := scan(&rev.ID, &savedAt, &rev.NumWeeks, &startDate, &body); err != nil {
		return nil, err
	}

	t, err := time.Parse(time.RFC3339Nano, savedAt)
	if err != nil {
		return nil, fmt.Errorf("parsing saved_at %q: %w", savedAt, err)
	}
	rev.SavedAt = t
	rev.StartDate = parseNullableDate(startDate)
	rev.Body = []byte(body)
	return &rev, nil
}
