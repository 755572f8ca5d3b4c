package domain

import (
	"crypto/sha256"
	"encoding/base64"
)

const (
	// ArtifactKeyPrefix namespaces compiled artifacts in the cache backend.
	ArtifactKeyPrefix = "less:artifact:"
	// WatchKeyPrefix namespaces watch entries in the cache backend.
	WatchKeyPrefix = "less:watch:"
)

// CacheKey derives the stable one-way hash of a requested URL path.
// It is the URL-safe, unpadded base64 encoding of the path's SHA-256 digest.
//
// The key identifies the request, not the resolved file: two inputs served
// under the same URL path share a key.
func CacheKey(urlPath string) string {
	sum := sha256.Sum256([]byte(urlPath))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}

// ArtifactKey returns the backend key of the compiled artifact for urlPath.
func ArtifactKey(urlPath string) string {
	return ArtifactKeyPrefix + CacheKey(urlPath)
}

// WatchKey returns the backend key of the watch entry for urlPath.
func WatchKey(urlPath string) string {
	return WatchKeyPrefix + CacheKey(urlPath)
}
