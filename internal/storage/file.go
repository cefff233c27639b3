package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// File persists each key as one JSON document under a data directory,
// written whole on every Set. A single mutex serializes access; the demo is
// single-user and the collections are small.
type File struct {
	mu  sync.Mutex
	dir string
}

// NewFile constructs a file-backed store rooted at dir, creating it if
// needed.
func NewFile(dir string) (*File, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &File{dir: dir}, nil
}

func (f *File) Get(key string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return data, nil
}

func (f *File) Set(key string, value []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	return os.WriteFile(f.path(key), value, 0600)
}

func (f *File) path(key string) string {
	return filepath.Join(f.dir, key+".json")
}
