package fs

import (
	"errors"
	"path/filepath"
	"sort"

	"go.trai.ch/lessbuild/internal/core/domain"
	"go.trai.ch/zerr"
)

// Resolver expands input patterns to concrete files.
type Resolver struct{}

// NewResolver creates a new Resolver.
func NewResolver() *Resolver {
	return &Resolver{}
}

// ResolveInputs resolves the given paths or glob patterns, relative to root,
// to a sorted list of absolute file paths. A pattern matching nothing fails
// with domain.ErrInvalidPath.
func (r *Resolver) ResolveInputs(inputs []string, root string) ([]string, error) {
	uniquePaths := make(map[string]bool)

	for _, input := range inputs {
		path := input
		if !filepath.IsAbs(path) {
			path = filepath.Join(root, input)
		}

		matches, err := filepath.Glob(path)
		if err != nil {
			return nil, errors.Join(domain.ErrInvalidPath, zerr.With(zerr.Wrap(err, "failed to glob path"), "path", path))
		}

		if len(matches) == 0 {
			return nil, errors.Join(domain.ErrInvalidPath, zerr.With(zerr.New("input not found"), "path", path))
		}

		for _, match := range matches {
			abs, err := filepath.Abs(match)
			if err != nil {
				return nil, errors.Join(domain.ErrInvalidPath, zerr.With(zerr.Wrap(err, "cannot resolve path"), "path", match))
			}
			uniquePaths[abs] = true
		}
	}

	result := make([]string, 0, len(uniquePaths))
	for path := range uniquePaths {
		result = append(result, path)
	}
	sort.Strings(result)

	return result, nil
}
