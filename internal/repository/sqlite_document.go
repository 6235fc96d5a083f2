package repository

import (
	"bytes"
	"context"
	"errors"
	"time"

	"github.com/alexanderramin/mealplanner/internal/db"
	"github.com/alexanderramin/mealplanner/internal/domain"
	"github.com/google/uuid"
)

// DefaultRevisionRetention is how many document revisions are kept.
const DefaultRevisionRetention = 50

// SQLiteDocumentRepo keeps the plan document in SQLite. Every write that
// changes the body is a new revision; the newest revision is the current
// document.
type SQLiteDocumentRepo struct {
	conn      db.DBTX
	uow       db.UnitOfWork
	retention int
	now       func() time.Time
}

// SQLiteDocumentOption configures a SQLiteDocumentRepo.
type SQLiteDocumentOption func(*SQLiteDocumentRepo)

// WithRetention sets how many revisions survive each write.
func WithRetention(n int) SQLiteDocumentOption {
	return func(r *SQLiteDocumentRepo) {
		if n > 0 {
			r.retention = n
		}
	}
}

// WithRevisionClock overrides the clock used to stamp revisions.
func WithRevisionClock(now func() time.Time) SQLiteDocumentOption {
	return func(r *SQLiteDocumentRepo) {
		r.now = now
	}
}

// NewSQLiteDocumentRepo creates a SQLiteDocumentRepo. conn serves reads and
// uow wraps each write with its pruning.
func NewSQLiteDocumentRepo(conn db.DBTX, uow db.UnitOfWork, opts ...SQLiteDocumentOption) *SQLiteDocumentRepo {
	r := &SQLiteDocumentRepo{
		conn:      conn,
		uow:       uow,
		retention: DefaultRevisionRetention,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *SQLiteDocumentRepo) Read(ctx context.Context) ([]byte, error) {
	rev, err := r.revisionsOn(r.conn).Latest(ctx)
	if err != nil {
		return nil, err
	}
	return rev.Body, nil
}

func (r *SQLiteDocumentRepo) Write(ctx context.Context, body []byte) error {
	rev := &domain.Revision{
		ID:       uuid.New().String(),
		SavedAt:  r.now().UTC(),
		NumWeeks: domain.DefaultNumWeeks,
		Body:     body,
	}
	// Summary columns are best-effort; the body is stored verbatim either way.
	if doc, err := DecodeDocument(body); err == nil {
		if n, err := doc.NumWeeks(); err == nil {
			rev.NumWeeks = n
		}
		if start, err := doc.StartDate(); err == nil {
			rev.StartDate = &start
		}
	}

	return r.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		revisions := r.revisionsOn(tx)
		latest, err := revisions.Latest(ctx)
		switch {
		case err == nil && bytes.Equal(latest.Body, body):
			return nil
		case err != nil && !errors.Is(err, ErrNotFound):
			return err
		}
		if err := revisions.Create(ctx, rev); err != nil {
			return err
		}
		_, err = revisions.PruneKeep(ctx, r.retention)
		return err
	})
}

// revisionsOn returns the revision store bound to conn, which may be the
// database or an open transaction.
func (r *SQLiteDocumentRepo) revisionsOn(conn db.DBTX) RevisionRepo {
	return NewSQLiteRevisionRepo(conn)
}

// Revisions lists stored revisions, newest first.
func (r *SQLiteDocumentRepo) Revisions(ctx context.Context, limit int) ([]*domain.Revision, error) {
	return r.revisionsOn(r.conn).List(ctx, limit)
}
