// Package fs provides file system adapters for walking, hashing and writing files.
package fs

import (
	"io/fs"
	"iter"
	"path/filepath"
	"slices"

	"go.trai.ch/lessbuild/internal/core/domain"
)

// DefaultIgnores are directory names never descended into.
var DefaultIgnores = []string{".git", ".jj", "node_modules", domain.StateDirName}

// Walker provides file walking functionality.
type Walker struct{}

// NewWalker creates a new Walker.
func NewWalker() *Walker {
	return &Walker{}
}

// WalkFiles yields all files below root, skipping ignored names.
// Yielded paths start with root.
func (w *Walker) WalkFiles(root string, ignores []string) iter.Seq[string] {
	return w.walk(root, ignores, false)
}

// WalkDirs yields root and every directory below it, skipping ignored names.
func (w *Walker) WalkDirs(root string, ignores []string) iter.Seq[string] {
	return w.walk(root, ignores, true)
}

func (w *Walker) walk(root string, ignores []string, dirs bool) iter.Seq[string] {
	return func(yield func(string) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if path != root && shouldSkip(d.Name(), ignores) {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			if d.IsDir() != dirs {
				return nil
			}

			if !yield(path) {
				return filepath.SkipAll
			}
			return nil
		})
	}
}

func shouldSkip(name string, ignores []string) bool {
	if slices.Contains(DefaultIgnores, name) {
		return true
	}
	for _, ignore := range ignores {
		if matched, _ := filepath.Match(ignore, name); matched {
			return true
		}
	}
	return false
}
