package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// FileStore keeps the snapshot as a JSON file in a directory.
type FileStore struct {
	path string
}

// NewFileStore creates a file store for document id in dir.
// The directory is created if it doesn't exist.
func NewFileStore(dir, id string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileStore{path: filepath.Join(dir, id+".json")}, nil
}

// Path returns the location of the snapshot file.
func (f *FileStore) Path() string { return f.path }

// Get reads the snapshot file.
func (f *FileStore) Get(ctx context.Context) (*Snapshot, error) {
	data, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", ErrCorrupt, f.path, err)
	}
	return &s, nil
}

// Set writes the snapshot through a temporary file and renames it into place.
func (f *FileStore) Set(ctx context.Context, s *Snapshot) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".snapshot-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), f.path)
}

// Delete removes the snapshot file.
func (f *FileStore) Delete(ctx context.Context) error {
	err := os.Remove(f.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Close does nothing for the file store.
func (f *FileStore) Close() error {
	return nil
}

var _ Store = (*FileStore)(nil)
