package fs_test

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/lessbuild/internal/adapters/fs"
	"go.trai.ch/lessbuild/internal/core/domain"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestWalker_WalkFiles(t *testing.T) {
	// tmp/
	//   .git/config
	//   node_modules/pkg/index.less
	//   ignored/file.less
	//   less/main.less
	//   less/partials/_a.less
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".git", "config"), "git config")
	writeFile(t, filepath.Join(tmpDir, "node_modules", "pkg", "index.less"), "")
	writeFile(t, filepath.Join(tmpDir, "ignored", "file.less"), "")
	writeFile(t, filepath.Join(tmpDir, "less", "main.less"), "")
	writeFile(t, filepath.Join(tmpDir, "less", "partials", "_a.less"), "")

	files := slices.Collect(fs.NewWalker().WalkFiles(tmpDir, []string{"ignored"}))

	assert.ElementsMatch(t, []string{
		filepath.Join(tmpDir, "less", "main.less"),
		filepath.Join(tmpDir, "less", "partials", "_a.less"),
	}, files)
}

func TestWalker_WalkDirs(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".lessbuild", "files", "x.css"), "")
	writeFile(t, filepath.Join(tmpDir, "less", "partials", "_a.less"), "")

	dirs := slices.Collect(fs.NewWalker().WalkDirs(tmpDir, nil))

	assert.ElementsMatch(t, []string{
		tmpDir,
		filepath.Join(tmpDir, "less"),
		filepath.Join(tmpDir, "less", "partials"),
	}, dirs)
}

func TestWalker_StopsEarly(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, "a.less"), "")
	writeFile(t, filepath.Join(tmpDir, "b.less"), "")

	count := 0
	for range fs.NewWalker().WalkFiles(tmpDir, nil) {
		count++
		break
	}
	assert.Equal(t, 1, count)
}

func TestResolver_ResolveInputs(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, "less", "a.less"), "")
	writeFile(t, filepath.Join(tmpDir, "less", "b.less"), "")

	resolver := fs.NewResolver()

	paths, err := resolver.ResolveInputs([]string{"less/*.less", "less/a.less"}, tmpDir)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(tmpDir, "less", "a.less"),
		filepath.Join(tmpDir, "less", "b.less"),
	}, paths)

	_, err = resolver.ResolveInputs([]string{"less/missing.less"}, tmpDir)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidPath))
}

func TestHasher_ComputeFileHash(t *testing.T) {
	tmpDir := t.TempDir()
	a := filepath.Join(tmpDir, "a.less")
	b := filepath.Join(tmpDir, "b.less")
	writeFile(t, a, "a { color: red; }")
	writeFile(t, b, "a { color: red; }")

	hasher := fs.NewHasher()
	ha, err := hasher.ComputeFileHash(a)
	require.NoError(t, err)
	hb, err := hasher.ComputeFileHash(b)
	require.NoError(t, err)
	assert.Equal(t, ha, hb)

	_, err = hasher.ComputeFileHash(filepath.Join(tmpDir, "missing"))
	require.Error(t, err)
}

func TestFingerprint(t *testing.T) {
	fp := fs.Fingerprint([]byte("a{}"))
	assert.Len(t, fp, 16)
	assert.Equal(t, fp, fs.Fingerprint([]byte("a{}")))
	assert.NotEqual(t, fp, fs.Fingerprint([]byte("b{}")))
	assert.Equal(t, "ef46db3751d8e999", fs.Fingerprint(nil))
}

func TestValidateFile(t *testing.T) {
	tmpDir := t.TempDir()
	file := filepath.Join(tmpDir, "main.less")
	writeFile(t, file, "")

	abs, err := fs.ValidateFile(file)
	require.NoError(t, err)
	assert.Equal(t, file, abs)

	_, err = fs.ValidateFile(tmpDir)
	assert.True(t, errors.Is(err, domain.ErrInvalidPath))

	_, err = fs.ValidateFile(filepath.Join(tmpDir, "missing.less"))
	assert.True(t, errors.Is(err, domain.ErrInvalidPath))
}

func TestModTime(t *testing.T) {
	tmpDir := t.TempDir()
	file := filepath.Join(tmpDir, "main.less")
	writeFile(t, file, "")
	stamp := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	require.NoError(t, os.Chtimes(file, stamp, stamp))

	mtime, ok := fs.ModTime(file)
	require.True(t, ok)
	assert.True(t, mtime.Equal(stamp))

	_, ok = fs.ModTime(filepath.Join(tmpDir, "missing"))
	assert.False(t, ok)
}

func TestWriteFileIfChanged(t *testing.T) {
	path := filepath.Join(t.TempDir(), "default", "main.css")

	wrote, err := fs.WriteFileIfChanged(path, []byte("a{}"))
	require.NoError(t, err)
	assert.True(t, wrote)

	stamp := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	require.NoError(t, os.Chtimes(path, stamp, stamp))

	wrote, err = fs.WriteFileIfChanged(path, []byte("a{}"))
	require.NoError(t, err)
	assert.False(t, wrote)
	mtime, _ := fs.ModTime(path)
	assert.True(t, mtime.Equal(stamp))

	wrote, err = fs.WriteFileIfChanged(path, []byte("b{}"))
	require.NoError(t, err)
	assert.True(t, wrote)
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "b{}", string(content))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestTouch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.css")
	writeFile(t, path, "a{}")
	stamp := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, fs.Touch(path, stamp))
	mtime, ok := fs.ModTime(path)
	require.True(t, ok)
	assert.True(t, mtime.Equal(stamp))

	err := fs.Touch(filepath.Join(t.TempDir(), "missing.css"), stamp)
	assert.True(t, errors.Is(err, domain.ErrOutputWriteFailed))
}
