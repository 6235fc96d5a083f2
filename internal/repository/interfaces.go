package repository

import (
	"context"
	"errors"

	"github.com/alexanderramin/mealplanner/internal/domain"
)

var (
	// ErrNotFound means no plan document has been stored yet.
	ErrNotFound = errors.New("not found")

	// ErrMalformedDocument means the stored document is not a JSON object.
	ErrMalformedDocument = errors.New("malformed plan document")

	// ErrInvalidWeekKey marks a "weeks" key that is not a positive integer.
	ErrInvalidWeekKey = errors.New("invalid week key")

	// ErrMissingField means a document field is absent or null.
	ErrMissingField = errors.New("missing field")

	// ErrInvalidField means a document field has the wrong type or range.
	ErrInvalidField = errors.New("invalid field")
)

// DocumentRepo reads and overwrites the single persisted plan document.
// Read returns an error wrapping ErrNotFound when nothing is stored.
type DocumentRepo interface {
	Read(ctx context.Context) ([]byte, error)
	Write(ctx context.Context, body []byte) error
}

// RevisionRepo stores snapshots of the plan document, newest last.
type RevisionRepo interface {
	Create(ctx context.Context, r *domain.Revision) error
	Latest(ctx context.Context) (*domain.Revision, error)
	List(ctx context.Context, limit int) ([]*domain.Revision, error)
	PruneKeep(ctx context.Context, keep int) (int64, error)
}
