package testutil

import (
	"context"
	"sync/atomic"

	"github.com/alexanderramin/mealplanner/internal/repository"
)

// FailingDocumentRepo wraps a DocumentRepo and injects WriteErr on writes.
// FailFrom selects the first failing write, counted from 1; zero fails every
// write. Reads pass through.
type FailingDocumentRepo struct {
	repository.DocumentRepo
	WriteErr error
	FailFrom int32

	writes atomic.Int32
}

func (f *FailingDocumentRepo) Write(ctx context.Context, body []byte) error {
	n := f.writes.Add(1)
	if f.WriteErr != nil && n >= f.FailFrom {
		return f.WriteErr
	}
	return f.DocumentRepo.Write(ctx, body)
}

// Writes reports how many writes were attempted.
func (f *FailingDocumentRepo) Writes() int {
	return int(f.writes.Load())
}

// MemoryDocumentRepo keeps the document in memory.
type MemoryDocumentRepo struct {
	Body   []byte
	Stored bool
}

func (m *MemoryDocumentRepo) Read(ctx context.Context) ([]byte, error) {
	if !m.Stored {
		return nil, repository.ErrNotFound
	}
	return append([]byte(nil), m.Body...), nil
}

func (m *MemoryDocumentRepo) Write(ctx context.Context, body []byte) error {
	m.Body = append([]byte(nil), body...)
	m.Stored = true
	return nil
}
