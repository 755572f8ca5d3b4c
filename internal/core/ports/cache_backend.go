package ports

// CacheBackend defines the key/value store compiled artifacts and watch
// entries are kept in. Values are encoded by the backend.
//
//go:generate mockgen -source=cache_backend.go -destination=mocks/mock_cache_backend.go -package=mocks
type CacheBackend interface {
	// Get decodes the value stored under key into dst.
	// It returns false, nil when the key is absent.
	Get(key string, dst any) (bool, error)

	// Set stores value under key, replacing any previous value.
	Set(key string, value any) error

	// Flush removes every entry unconditionally.
	Flush() error
}
