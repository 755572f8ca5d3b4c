package pipeline_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/lessbuild/internal/adapters/cachestore"
	"go.trai.ch/lessbuild/internal/adapters/engine"
	"go.trai.ch/lessbuild/internal/adapters/telemetry"
	"go.trai.ch/lessbuild/internal/core/domain"
	"go.trai.ch/lessbuild/internal/core/ports"
	"go.trai.ch/lessbuild/internal/core/ports/mocks"
	"go.trai.ch/lessbuild/internal/engine/pipeline"
	"go.uber.org/mock/gomock"
)

// fixture is a project tree with a main stylesheet importing one partial.
type fixture struct {
	root    string
	main    string
	partial string
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	root := t.TempDir()
	f := fixture{
		root:    root,
		main:    filepath.Join(root, "less", "main.less"),
		partial: filepath.Join(root, "less", "imports", "partial.less"),
	}
	write(t, f.main, "@import \"imports/partial\";\nbody { margin: 0; }\n")
	write(t, f.partial, "a { color: red; }\n")
	backdate(t, f.main, f.partial)
	return f
}

func write(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

// backdate moves mtimes an hour into the past so a compile that follows is
// strictly newer regardless of file system timestamp granularity.
func backdate(t *testing.T, paths ...string) {
	t.Helper()
	past := time.Now().Add(-time.Hour)
	for _, p := range paths {
		require.NoError(t, os.Chtimes(p, past, past))
	}
}

// touchFuture marks path as modified an hour from now.
func touchFuture(t *testing.T, path string) {
	t.Helper()
	future := time.Now().Add(time.Hour)
	require.NoError(t, os.Chtimes(path, future, future))
}

func (f fixture) settings() domain.Settings {
	s := domain.DefaultSettings()
	s.Engine = domain.EngineBundle
	s.Root = f.root
	s.OutputDir = filepath.Join(f.root, "out")
	return s
}

func newBackend(t *testing.T) ports.CacheBackend {
	t.Helper()
	backend, err := cachestore.NewMemoryBackend(64)
	require.NoError(t, err)
	return backend
}

// countingProvider wraps the real engine registry and counts compiles.
type countingProvider struct {
	ports.EngineProvider
	compiles int
}

type countingEngine struct {
	ports.Engine
	owner *countingProvider
}

func (p *countingProvider) New(id string) (ports.Engine, error) {
	e, err := p.EngineProvider.New(id)
	if err != nil {
		return nil, err
	}
	return &countingEngine{Engine: e, owner: p}, nil
}

func (e *countingEngine) Compile(ctx context.Context, inputFile string) (*domain.CompiledArtifact, error) {
	e.owner.compiles++
	return e.Engine.Compile(ctx, inputFile)
}

func newProvider(t *testing.T) *countingProvider {
	t.Helper()
	ctrl := gomock.NewController(t)
	return &countingProvider{EngineProvider: engine.NewRegistry(mocks.NewMockProcessRunner(ctrl), telemetry.NewNoOpTracer())}
}

func TestCompileCache_ReusesFreshArtifact(t *testing.T) {
	f := newFixture(t)
	provider := newProvider(t)
	cache := pipeline.NewCompileCache(f.settings(), newBackend(t), provider, nil)
	ctx := context.Background()

	first, err := cache.GetOrCompile(ctx, "/less/main.less", f.main)
	require.NoError(t, err)
	second, err := cache.GetOrCompile(ctx, "/less/main.less", f.main)
	require.NoError(t, err)

	assert.Equal(t, 1, provider.compiles)
	assert.Equal(t, first.CSS, second.CSS)
	assert.Equal(t, []string{f.main, f.partial}, second.Dependencies)
}

func TestCompileCache_EditedPartialRecompiles(t *testing.T) {
	f := newFixture(t)
	provider := newProvider(t)
	cache := pipeline.NewCompileCache(f.settings(), newBackend(t), provider, nil)
	ctx := context.Background()

	_, err := cache.GetOrCompile(ctx, "/less/main.less", f.main)
	require.NoError(t, err)

	write(t, f.partial, "a { color: blue; }\n")
	touchFuture(t, f.partial)

	artifact, err := cache.GetOrCompile(ctx, "/less/main.less", f.main)
	require.NoError(t, err)
	assert.Equal(t, 2, provider.compiles)
	assert.Contains(t, artifact.CSS, "color: blue")
}

func TestCompileCache_DeletedPartialFailsCompile(t *testing.T) {
	f := newFixture(t)
	cache := pipeline.NewCompileCache(f.settings(), newBackend(t), newProvider(t), nil)
	ctx := context.Background()

	_, err := cache.GetOrCompile(ctx, "/less/main.less", f.main)
	require.NoError(t, err)

	require.NoError(t, os.Remove(f.partial))

	_, err = cache.GetOrCompile(ctx, "/less/main.less", f.main)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrCompile))
}

func TestCompileCache_DeveloperModeAlwaysCompiles(t *testing.T) {
	f := newFixture(t)
	provider := newProvider(t)
	settings := f.settings()
	settings.DeveloperMode = true
	cache := pipeline.NewCompileCache(settings, newBackend(t), provider, nil)
	ctx := context.Background()

	for range 3 {
		_, err := cache.GetOrCompile(ctx, "/less/main.less", f.main)
		require.NoError(t, err)
	}
	assert.Equal(t, 3, provider.compiles)
}

func TestCompileCache_DifferentInputUnderSameURL(t *testing.T) {
	f := newFixture(t)
	other := filepath.Join(f.root, "less", "other.less")
	write(t, other, "b { x: y; }\n")
	backdate(t, other)

	provider := newProvider(t)
	cache := pipeline.NewCompileCache(f.settings(), newBackend(t), provider, nil)
	ctx := context.Background()

	_, err := cache.GetOrCompile(ctx, "/style.less", f.main)
	require.NoError(t, err)
	artifact, err := cache.GetOrCompile(ctx, "/style.less", other)
	require.NoError(t, err)

	assert.Equal(t, 2, provider.compiles)
	assert.Equal(t, other, artifact.InputFile)
}

func TestCompileCache_CompiledAtTakenBeforeCompile(t *testing.T) {
	f := newFixture(t)
	stamp := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

	cache := pipeline.NewCompileCache(f.settings(), newBackend(t), newProvider(t), nil,
		pipeline.WithClock(func() time.Time { return stamp }))

	artifact, err := cache.GetOrCompile(context.Background(), "/less/main.less", f.main)
	require.NoError(t, err)
	assert.True(t, artifact.CompiledAt.Equal(stamp))
}

func TestCompileCache_Autoprefix(t *testing.T) {
	f := newFixture(t)
	settings := f.settings()
	settings.Autoprefixer = true
	settings.DeveloperMode = true
	settings.SourceMaps = true

	ctrl := gomock.NewController(t)
	prefixer := mocks.NewMockAutoprefixer(ctrl)
	tmpDir := t.TempDir()
	prefixer.EXPECT().
		Compile(gomock.Any(), gomock.Any(), true).
		DoAndReturn(func(_ context.Context, input string, _ bool) (string, error) {
			assert.Equal(t, tmpDir, filepath.Dir(input))
			content, err := os.ReadFile(input)
			require.NoError(t, err)
			return "/* prefixed */\n" + string(content), nil
		})

	cache := pipeline.NewCompileCache(settings, newBackend(t), newProvider(t), prefixer, pipeline.WithTempDir(tmpDir))
	artifact, err := cache.GetOrCompile(context.Background(), "/less/main.less", f.main)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(artifact.CSS, "/* prefixed */\n"))
	assert.Contains(t, artifact.CSS, "a { color: red; }")
	assert.Equal(t, []string{f.main, f.partial}, artifact.Dependencies, "prefixing keeps dependencies")

	entries, err := os.ReadDir(tmpDir)
	require.NoError(t, err)
	assert.Empty(t, entries, "temp input is removed")
}

func TestCompileCache_AutoprefixFailure(t *testing.T) {
	f := newFixture(t)
	settings := f.settings()
	settings.Autoprefixer = true

	ctrl := gomock.NewController(t)
	prefixer := mocks.NewMockAutoprefixer(ctrl)
	prefixer.EXPECT().Compile(gomock.Any(), gomock.Any(), false).Return("", domain.ErrExecution)

	backend := newBackend(t)
	cache := pipeline.NewCompileCache(settings, backend, newProvider(t), prefixer)
	_, err := cache.GetOrCompile(context.Background(), "/less/main.less", f.main)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrExecution))

	var cached domain.CompiledArtifact
	found, err := backend.Get(domain.ArtifactKey("/less/main.less"), &cached)
	require.NoError(t, err)
	assert.False(t, found, "failed compiles are not cached")
}

func TestCompileCache_BackendErrors(t *testing.T) {
	f := newFixture(t)
	ctrl := gomock.NewController(t)

	backend := mocks.NewMockCacheBackend(ctrl)
	log := mocks.NewMockLogger(ctrl)

	backend.EXPECT().Get(domain.ArtifactKey("/less/main.less"), gomock.Any()).Return(false, domain.ErrCacheReadFailed)
	log.EXPECT().Error(gomock.Any())
	backend.EXPECT().Set(domain.ArtifactKey("/less/main.less"), gomock.Any()).Return(domain.ErrCacheWriteFailed)

	cache := pipeline.NewCompileCache(f.settings(), backend, newProvider(t), nil, pipeline.WithLogger(log))
	_, err := cache.GetOrCompile(context.Background(), "/less/main.less", f.main)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrCacheWriteFailed))
}

func TestCompileCache_UnknownEngine(t *testing.T) {
	f := newFixture(t)
	settings := f.settings()
	settings.Engine = "lessphp"

	cache := pipeline.NewCompileCache(settings, newBackend(t), newProvider(t), nil)
	_, err := cache.GetOrCompile(context.Background(), "/less/main.less", f.main)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnknownEngine))
}

func TestCompileCache_PassesImportDirectories(t *testing.T) {
	f := newFixture(t)
	settings := f.settings().WithImportDirectories("/inc/a", "/inc/b")

	ctrl := gomock.NewController(t)
	provider := mocks.NewMockEngineProvider(ctrl)
	eng := mocks.NewMockEngine(ctrl)

	provider.EXPECT().New(domain.EngineBundle).Return(eng, nil)
	gomock.InOrder(
		eng.EXPECT().SetImportDirectories([]string{"/inc/a", "/inc/b"}),
		eng.EXPECT().Compile(gomock.Any(), f.main).Return(&domain.CompiledArtifact{
			CSS:          "x{}",
			Dependencies: []string{f.main},
			InputFile:    f.main,
		}, nil),
	)

	cache := pipeline.NewCompileCache(settings, newBackend(t), provider, nil)
	artifact, err := cache.GetOrCompile(context.Background(), "/less/main.less", f.main)
	require.NoError(t, err)
	assert.Equal(t, "x{}", artifact.CSS)
}

func TestBuilder_Build(t *testing.T) {
	f := newFixture(t)
	ctrl := gomock.NewController(t)
	backend := newBackend(t)
	provider := newProvider(t)
	prefixer := mocks.NewMockAutoprefixer(ctrl)

	builder := pipeline.NewBuilder(backend, provider, prefixer, mocks.NewMockLogger(ctrl), telemetry.NewNoOpTracer())
	p := builder.Build(f.settings())

	require.NotNil(t, p.Cache)
	require.NotNil(t, p.Renderer)
	require.NotNil(t, p.Notifier)
	assert.Equal(t, f.settings(), p.Settings)
	assert.Same(t, backend, builder.Backend())
	assert.Same(t, provider, builder.Engines())
	assert.Same(t, prefixer, builder.Autoprefixer())
}
