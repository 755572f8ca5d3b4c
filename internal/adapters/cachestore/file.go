// Package cachestore implements the cache backends compiled artifacts and
// watch entries are kept in.
package cachestore

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"go.trai.ch/lessbuild/internal/core/domain"
	"go.trai.ch/zerr"
)

// record is the on-disk layout of one entry. The key is kept so a hash
// collision reads as a miss.
type record struct {
	Key   string          `json:"key"`
	Value json.RawMessage `json:"value"`
}

// FileBackend stores each entry as a JSON file named after the SHA-256 of
// its key.
type FileBackend struct {
	dir string
	mu  sync.RWMutex
}

// NewFileBackend creates a backend rooted at dir. The directory is created
// on first write.
func NewFileBackend(dir string) *FileBackend {
	return &FileBackend{dir: filepath.Clean(dir)}
}

// Dir returns the backend directory.
func (b *FileBackend) Dir() string {
	return b.dir
}

func (b *FileBackend) path(key string) string {
	sum := sha256.Sum256([]byte(key))
	return filepath.Join(b.dir, hex.EncodeToString(sum[:])+".json")
}

// Get decodes the entry stored under key into dst.
func (b *FileBackend) Get(key string, dst any) (bool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	path := b.path(key)
	data, err := os.ReadFile(path) //nolint:gosec // Path is derived from a hash
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, errors.Join(domain.ErrCacheReadFailed, zerr.With(zerr.Wrap(err, "failed to read entry"), "path", path))
	}

	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return false, errors.Join(domain.ErrCacheReadFailed, zerr.With(zerr.Wrap(err, "failed to decode entry"), "path", path))
	}
	if rec.Key != key {
		return false, nil
	}
	if err := json.Unmarshal(rec.Value, dst); err != nil {
		return false, errors.Join(domain.ErrCacheReadFailed, zerr.With(zerr.Wrap(err, "failed to decode value"), "key", key))
	}
	return true, nil
}

// Set stores value under key. The file is replaced atomically.
func (b *FileBackend) Set(key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return errors.Join(domain.ErrCacheWriteFailed, zerr.With(zerr.Wrap(err, "failed to encode value"), "key", key))
	}
	data, err := json.Marshal(record{Key: key, Value: raw})
	if err != nil {
		return errors.Join(domain.ErrCacheWriteFailed, zerr.With(zerr.Wrap(err, "failed to encode entry"), "key", key))
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if err := os.MkdirAll(b.dir, domain.DirPerm); err != nil {
		return errors.Join(domain.ErrCacheWriteFailed, zerr.With(zerr.Wrap(err, "failed to create cache directory"), "path", b.dir))
	}

	path := b.path(key)
	tmp, err := os.CreateTemp(b.dir, ".entry-*")
	if err != nil {
		return errors.Join(domain.ErrCacheWriteFailed, zerr.With(zerr.Wrap(err, "failed to create temp file"), "path", b.dir))
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return errors.Join(domain.ErrCacheWriteFailed, zerr.With(zerr.Wrap(err, "failed to write entry"), "path", tmpName))
	}
	if err := tmp.Close(); err != nil {
		return errors.Join(domain.ErrCacheWriteFailed, zerr.With(zerr.Wrap(err, "failed to close entry"), "path", tmpName))
	}
	if err := os.Rename(tmpName, path); err != nil {
		return errors.Join(domain.ErrCacheWriteFailed, zerr.With(zerr.Wrap(err, "failed to store entry"), "path", path))
	}
	return nil
}

// Flush removes the backend directory and every entry in it.
func (b *FileBackend) Flush() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := os.RemoveAll(b.dir); err != nil {
		return errors.Join(domain.ErrCacheFlushFailed, zerr.With(zerr.Wrap(err, "failed to remove cache directory"), "path", b.dir))
	}
	return nil
}
