// Package localstore persists the todo collection as a flat JSON array in a
// single file. It is the unauthenticated fallback: no user record, no schema
// versioning, the whole file rewritten on every save.
package localstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pdrmenezes/basic-todo/internal/model"
)

// FileStore reads and writes the todo file. It implements board.Persister.
type FileStore struct {
	path string
}

// New creates a FileStore at path.
func New(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads the whole collection. A missing file is an empty board.
func (f *FileStore) Load() ([]model.Todo, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", f.path, err)
	}

	var todos []model.Todo
	if err := json.Unmarshal(data, &todos); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", f.path, err)
	}
	return todos, nil
}

// Save overwrites the file with the full collection, creating parent
// directories on first use.
func (f *FileStore) Save(todos []model.Todo) error {
	if todos == nil {
		todos = []model.Todo{}
	}
	data, err := json.MarshalIndent(todos, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding todos: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	if err := os.WriteFile(f.path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", f.path, err)
	}
	return nil
}
