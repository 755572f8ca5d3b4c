package watcher

import (
	"path/filepath"
	"strings"
	"sync"
	"unique"

	"go.trai.ch/lessbuild/internal/adapters/fs"
	"go.trai.ch/lessbuild/internal/core/domain"
)

// ContentCache remembers the content hash of every LESS source seen, so
// saves that leave a file byte-identical are not reported as changes.
type ContentCache struct {
	mu     sync.Mutex
	hashes map[unique.Handle[string]]uint64
	hasher *fs.Hasher
	walker *fs.Walker
}

// NewContentCache creates an empty content cache.
func NewContentCache(hasher *fs.Hasher, walker *fs.Walker) *ContentCache {
	return &ContentCache{
		hashes: make(map[unique.Handle[string]]uint64),
		hasher: hasher,
		walker: walker,
	}
}

// Prime hashes every LESS file below roots.
func (c *ContentCache) Prime(roots ...string) {
	for _, root := range roots {
		for path := range c.walker.WalkFiles(root, nil) {
			if strings.EqualFold(filepath.Ext(path), domain.LessExt) {
				c.Changed(path)
			}
		}
	}
}

// Changed records the current content of path and reports whether it
// differs from what was recorded before. Unreadable files count as changed
// and are forgotten.
func (c *ContentCache) Changed(path string) bool {
	handle := unique.Make(path)
	hash, err := c.hasher.ComputeFileHash(path)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		delete(c.hashes, handle)
		return true
	}

	previous, known := c.hashes[handle]
	c.hashes[handle] = hash
	return !known || previous != hash
}

// Len returns the number of files tracked.
func (c *ContentCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.hashes)
}
