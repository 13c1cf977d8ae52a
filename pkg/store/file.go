package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/matzehuels/dctree/pkg/errors"
)

// FileStore stores entries as files in a directory, with expiry metadata.
type FileStore struct {
	dir string
}

// NewFileStore creates a file store in dir, creating the directory if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "file store needs a directory")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "create store directory %s", dir)
	}
	return &FileStore{dir: dir}, nil
}

// Dir returns the root directory of the store.
func (s *FileStore) Dir() string { return s.dir }

// fileEntry wraps stored data with metadata.
type fileEntry struct {
	Key       string    `json:"key"`
	Data      []byte    `json:"data"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Get retrieves a value from the store. Unreadable or expired entries are
// removed and reported as misses.
func (s *FileStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	path := s.path(key)

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeStore, err, "read %s", path)
	}

	var entry fileEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		_ = os.Remove(path)
		return nil, false, nil
	}

	if !entry.ExpiresAt.IsZero() && time.Now().After(entry.ExpiresAt) {
		_ = os.Remove(path)
		return nil, false, nil
	}

	return entry.Data, true, nil
}

// Set stores a value.
func (s *FileStore) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	entry := fileEntry{Key: key, Data: data}
	if ttl > 0 {
		entry.ExpiresAt = time.Now().Add(ttl)
	}

	entryData, err := json.Marshal(entry)
	if err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "encode entry %s", key)
	}

	path := s.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "create %s", filepath.Dir(path))
	}

	// Write then rename so readers never see a partial entry.
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, entryData, 0644); err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "write %s", tmp)
	}
	if err := os.Rename(tmp, path); err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "rename %s", tmp)
	}
	return nil
}

// Delete removes a value. Deleting a missing key is not an error.
func (s *FileStore) Delete(ctx context.Context, key string) error {
	err := os.Remove(s.path(key))
	if err == nil || os.IsNotExist(err) {
		return nil
	}
	return errors.Wrap(errors.ErrCodeStore, err, "delete %s", key)
}

// Clear removes every entry in the store.
func (s *FileStore) Clear() error {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "list %s", s.dir)
	}
	for _, e := range entries {
		if err := os.RemoveAll(filepath.Join(s.dir, e.Name())); err != nil {
			return errors.Wrap(errors.ErrCodeStore, err, "clear %s", s.dir)
		}
	}
	return nil
}

// Close does nothing for the file store.
func (s *FileStore) Close() error {
	return nil
}

// path converts a key to a file path. The first two hash characters pick a
// subdirectory to keep directories small.
func (s *FileStore) path(key string) string {
	hash := Hash([]byte(key))
	return filepath.Join(s.dir, hash[:2], hash[2:]+".json")
}

var _ Store = (*FileStore)(nil)
