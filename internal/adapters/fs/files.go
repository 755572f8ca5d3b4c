package fs

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"time"

	"go.trai.ch/lessbuild/internal/core/domain"
	"go.trai.ch/zerr"
)

// ValidateFile makes path absolute and checks that it names an existing
// regular file. Paths placed on a tool command line go through it first.
func ValidateFile(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", errors.Join(domain.ErrInvalidPath, zerr.With(zerr.Wrap(err, "cannot resolve path"), "path", path))
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", errors.Join(domain.ErrInvalidPath, zerr.With(zerr.Wrap(err, "cannot stat path"), "path", abs))
	}
	if !info.Mode().IsRegular() {
		return "", errors.Join(domain.ErrInvalidPath, zerr.With(zerr.New("not a regular file"), "path", abs))
	}
	return abs, nil
}

// ModTime returns the modification time of path. The boolean is false when
// the file cannot be stat'ed.
func ModTime(path string) (time.Time, bool) {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}

// Touch sets the modification time of path to t.
func Touch(path string, t time.Time) error {
	if err := os.Chtimes(path, t, t); err != nil {
		return errors.Join(domain.ErrOutputWriteFailed, zerr.With(zerr.Wrap(err, "failed to touch file"), "path", path))
	}
	return nil
}

// WriteFileIfChanged writes data to path unless the file already holds
// exactly data, so an unchanged file keeps its modification time. The write
// goes through a temp file and a rename. It reports whether it wrote.
func WriteFileIfChanged(path string, data []byte) (bool, error) {
	if existing, err := os.ReadFile(path); err == nil && bytes.Equal(existing, data) { //nolint:gosec // Path is controlled by caller
		return false, nil
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return false, errors.Join(domain.ErrOutputWriteFailed, zerr.With(zerr.Wrap(err, "failed to create directory"), "path", dir))
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return false, errors.Join(domain.ErrOutputWriteFailed, zerr.With(zerr.Wrap(err, "failed to create temp file"), "path", dir))
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return false, errors.Join(domain.ErrOutputWriteFailed, zerr.With(zerr.Wrap(err, "failed to write temp file"), "path", tmpName))
	}
	if err := tmp.Close(); err != nil {
		return false, errors.Join(domain.ErrOutputWriteFailed, zerr.With(zerr.Wrap(err, "failed to close temp file"), "path", tmpName))
	}
	if err := os.Chmod(tmpName, domain.FilePerm); err != nil {
		return false, errors.Join(domain.ErrOutputWriteFailed, zerr.With(zerr.Wrap(err, "failed to set permissions"), "path", tmpName))
	}
	if err := os.Rename(tmpName, path); err != nil {
		return false, errors.Join(domain.ErrOutputWriteFailed, zerr.With(zerr.Wrap(err, "failed to rename file"), "path", path))
	}
	return true, nil
}
