package pipeline

import (
	"go.trai.ch/lessbuild/internal/core/domain"
	"go.trai.ch/lessbuild/internal/core/ports"
)

// Pipeline is the set of pipeline components built for one settings snapshot.
type Pipeline struct {
	Settings domain.Settings
	Cache    *CompileCache
	Renderer *Renderer
	Notifier *WatchNotifier
}

// Builder assembles a Pipeline per request from the long-lived adapters.
type Builder struct {
	backend  ports.CacheBackend
	engines  ports.EngineProvider
	prefixer ports.Autoprefixer
	logger   ports.Logger
	tracer   ports.Tracer
}

// NewBuilder creates a new Builder.
func NewBuilder(
	backend ports.CacheBackend,
	engines ports.EngineProvider,
	prefixer ports.Autoprefixer,
	logger ports.Logger,
	tracer ports.Tracer,
) *Builder {
	return &Builder{
		backend:  backend,
		engines:  engines,
		prefixer: prefixer,
		logger:   logger,
		tracer:   tracer,
	}
}

// Build returns the pipeline for settings.
func (b *Builder) Build(settings domain.Settings) *Pipeline {
	cache := NewCompileCache(settings, b.backend, b.engines, b.prefixer, WithLogger(b.logger))
	renderer := NewRenderer(settings, cache, b.backend, b.tracer)
	return &Pipeline{
		Settings: settings,
		Cache:    cache,
		Renderer: renderer,
		Notifier: NewWatchNotifier(b.backend, renderer, nil, b.logger),
	}
}

// Backend returns the cache backend shared by every pipeline.
func (b *Builder) Backend() ports.CacheBackend {
	return b.backend
}

// Engines returns the engine provider shared by every pipeline.
func (b *Builder) Engines() ports.EngineProvider {
	return b.engines
}

// Autoprefixer returns the autoprefixer shared by every pipeline.
func (b *Builder) Autoprefixer() ports.Autoprefixer {
	return b.prefixer
}
