package repository

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FileDocumentRepo stores the plan document as a JSON file.
type FileDocumentRepo struct {
	path string
}

// NewFileDocumentRepo creates a FileDocumentRepo for path. The file and its
// directory are created on first write.
func NewFileDocumentRepo(path string) *FileDocumentRepo {
	return &FileDocumentRepo{path: path}
}

// Path returns the document location.
func (r *FileDocumentRepo) Path() string {
	return r.path
}

func (r *FileDocumentRepo) Read(ctx context.Context) ([]byte, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("plan document %s: %w", r.path, ErrNotFound)
		}
		return nil, fmt.Errorf("reading plan document: %w", err)
	}
	return data, nil
}

// Write replaces the document atomically: the body goes to a temp file in
// the same directory which is then renamed over the old document.
func (r *FileDocumentRepo) Write(ctx context.Context, body []byte) error {
	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".meal_plans-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err := tmp.Write(body); err != nil {
		tmp.Close()
		return fmt.Errorf("writing plan document: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("syncing plan document: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing plan document: %w", err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		return fmt.Errorf("setting plan document permissions: %w", err)
	}
	if err := os.Rename(tmpName, r.path); err != nil {
		return fmt.Errorf("replacing plan document: %w", err)
	}
	return nil
}
