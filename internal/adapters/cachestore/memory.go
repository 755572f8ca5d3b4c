package cachestore

import (
	"encoding/json"
	"errors"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.trai.ch/lessbuild/internal/core/domain"
	"go.trai.ch/zerr"
)

// MemoryBackend keeps encoded entries in a size-bounded LRU. The least
// recently used entry is evicted once the limit is reached.
type MemoryBackend struct {
	cache *lru.Cache[string, []byte]
}

// NewMemoryBackend creates a backend holding at most size entries.
func NewMemoryBackend(size int) (*MemoryBackend, error) {
	cache, err := lru.New[string, []byte](size)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to create memory cache"), "size", size)
	}
	return &MemoryBackend{cache: cache}, nil
}

// Get decodes the entry stored under key into dst.
func (b *MemoryBackend) Get(key string, dst any) (bool, error) {
	data, ok := b.cache.Get(key)
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, errors.Join(domain.ErrCacheReadFailed, zerr.With(zerr.Wrap(err, "failed to decode value"), "key", key))
	}
	return true, nil
}

// Set stores value under key. Values are encoded so callers never share
// memory with the cache.
func (b *MemoryBackend) Set(key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return errors.Join(domain.ErrCacheWriteFailed, zerr.With(zerr.Wrap(err, "failed to encode value"), "key", key))
	}
	b.cache.Add(key, data)
	return nil
}

// Flush removes every entry.
func (b *MemoryBackend) Flush() error {
	b.cache.Purge()
	return nil
}

// Len returns the number of entries held.
func (b *MemoryBackend) Len() int {
	return b.cache.Len()
}
