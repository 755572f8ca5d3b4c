package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"time"

	"go.trai.ch/lessbuild/internal/core/domain"
	"go.trai.ch/lessbuild/internal/core/ports"
	"go.trai.ch/zerr"
)

// CompileCache returns compiled artifacts, reusing a cached one while all of
// its dependencies are unchanged. It is built for a single settings snapshot.
type CompileCache struct {
	settings domain.Settings
	backend  ports.CacheBackend
	engines  ports.EngineProvider
	prefixer ports.Autoprefixer
	logger   ports.Logger
	tracker  *DependencyTracker
	now      func() time.Time
	tempDir  string
}

// Option configures a CompileCache.
type Option func(*CompileCache)

// WithLogger reports cache read failures to logger.
func WithLogger(logger ports.Logger) Option {
	return func(c *CompileCache) {
		c.logger = logger
	}
}

// WithTracker replaces the dependency tracker.
func WithTracker(tracker *DependencyTracker) Option {
	return func(c *CompileCache) {
		c.tracker = tracker
	}
}

// WithClock replaces the clock used to stamp artifacts.
func WithClock(now func() time.Time) Option {
	return func(c *CompileCache) {
		c.now = now
	}
}

// WithTempDir sets the directory autoprefixer input files are written to.
func WithTempDir(dir string) Option {
	return func(c *CompileCache) {
		c.tempDir = dir
	}
}

// NewCompileCache creates a compile cache for settings.
func NewCompileCache(
	settings domain.Settings,
	backend ports.CacheBackend,
	engines ports.EngineProvider,
	prefixer ports.Autoprefixer,
	opts ...Option,
) *CompileCache {
	c := &CompileCache{
		settings: settings,
		backend:  backend,
		engines:  engines,
		prefixer: prefixer,
		tracker:  NewDependencyTracker(nil),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetOrCompile returns the artifact for the stylesheet requested as urlPath
// and backed by inputFile. A cached artifact is reused unless developer mode
// is on, it belongs to another input file, or it is stale.
func (c *CompileCache) GetOrCompile(ctx context.Context, urlPath, inputFile string) (*domain.CompiledArtifact, error) {
	abs, err := filepath.Abs(inputFile)
	if err != nil {
		return nil, errors.Join(domain.ErrInvalidPath, zerr.With(zerr.Wrap(err, "cannot resolve path"), "path", inputFile))
	}
	key := domain.ArtifactKey(urlPath)

	if !c.settings.DeveloperMode {
		if cached, ok := c.lookup(key); ok && cached.InputFile == abs && !c.tracker.IsStale(cached) {
			return cached, nil
		}
	}

	artifact, err := c.compile(ctx, abs)
	if err != nil {
		return nil, err
	}

	if err := c.backend.Set(key, artifact); err != nil {
		return nil, err
	}
	return artifact, nil
}

func (c *CompileCache) lookup(key string) (*domain.CompiledArtifact, bool) {
	var cached domain.CompiledArtifact
	found, err := c.backend.Get(key, &cached)
	if err != nil {
		if c.logger != nil {
			c.logger.Error(zerr.Wrap(err, "ignoring unreadable cache entry"))
		}
		return nil, false
	}
	return &cached, found
}

func (c *CompileCache) compile(ctx context.Context, inputFile string) (*domain.CompiledArtifact, error) {
	// Stamped before compiling, so an edit made during the compile reads as
	// stale next time.
	compiledAt := c.now()

	engine, err := c.engines.New(c.settings.Engine)
	if err != nil {
		return nil, err
	}
	engine.SetImportDirectories(c.settings.ImportDirectories)

	artifact, err := engine.Compile(ctx, inputFile)
	if err != nil {
		return nil, err
	}
	artifact.CompiledAt = compiledAt

	if c.settings.Autoprefixer {
		css, err := c.autoprefix(ctx, artifact.CSS)
		if err != nil {
			return nil, err
		}
		artifact.CSS = css
	}

	return artifact, nil
}

func (c *CompileCache) autoprefix(ctx context.Context, css string) (string, error) {
	tmp, err := os.CreateTemp(c.tempDir, "lessbuild-*"+domain.CSSExt)
	if err != nil {
		return "", errors.Join(domain.ErrOutputWriteFailed, zerr.Wrap(err, "failed to create autoprefixer input"))
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.WriteString(css); err != nil {
		_ = tmp.Close()
		return "", errors.Join(domain.ErrOutputWriteFailed, zerr.With(zerr.Wrap(err, "failed to write autoprefixer input"), "path", tmpName))
	}
	if err := tmp.Close(); err != nil {
		return "", errors.Join(domain.ErrOutputWriteFailed, zerr.With(zerr.Wrap(err, "failed to close autoprefixer input"), "path", tmpName))
	}

	return c.prefixer.Compile(ctx, tmpName, c.settings.SourceMapsEnabled())
}
