package cachestore

import (
	"errors"

	"go.trai.ch/lessbuild/internal/core/domain"
	"go.trai.ch/lessbuild/internal/core/ports"
	"go.trai.ch/zerr"
)

// New returns the backend selected by settings.
func New(settings domain.Settings) (ports.CacheBackend, error) {
	switch settings.CacheBackend {
	case domain.CacheBackendFile, "":
		return NewFileBackend(settings.CacheDir), nil
	case domain.CacheBackendMemory:
		size := settings.CacheSize
		if size <= 0 {
			size = domain.DefaultCacheSize
		}
		return NewMemoryBackend(size)
	default:
		return nil, errors.Join(domain.ErrUnknownCacheBackend,
			zerr.With(zerr.New("cache backend is not supported"), "backend", settings.CacheBackend))
	}
}
