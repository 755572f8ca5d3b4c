// Package pipeline implements the LESS compile pipeline: dependency
// tracking, the compile cache, the render step and watch polling.
package pipeline

import (
	"time"

	"go.trai.ch/lessbuild/internal/adapters/fs" //nolint:depguard // Stat helper only
	"go.trai.ch/lessbuild/internal/core/domain"
)

// StatFunc returns the modification time of path. The boolean is false when
// the file cannot be stat'ed.
type StatFunc func(path string) (time.Time, bool)

// DependencyTracker decides whether a compiled artifact is still valid.
type DependencyTracker struct {
	stat StatFunc
}

// NewDependencyTracker creates a tracker. A nil stat uses the file system.
func NewDependencyTracker(stat StatFunc) *DependencyTracker {
	if stat == nil {
		stat = fs.ModTime
	}
	return &DependencyTracker{stat: stat}
}

// IsStale reports whether any dependency of artifact was modified after it
// was compiled or has disappeared. An artifact without dependencies is
// always stale.
func (t *DependencyTracker) IsStale(artifact *domain.CompiledArtifact) bool {
	if artifact == nil || len(artifact.Dependencies) == 0 {
		return true
	}
	for _, dep := range artifact.Dependencies {
		mtime, ok := t.stat(dep)
		if !ok || mtime.After(artifact.CompiledAt) {
			return true
		}
	}
	return false
}
