// Package app implements the application layer for lessbuild.
package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/lessbuild/internal/adapters/fs"      //nolint:depguard // Input resolution
	"go.trai.ch/lessbuild/internal/adapters/watcher" //nolint:depguard // Watch service
	"go.trai.ch/lessbuild/internal/core/domain"
	"go.trai.ch/lessbuild/internal/core/ports"
	"go.trai.ch/lessbuild/internal/engine/pipeline"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	settings ports.SettingsStore
	builder  *pipeline.Builder
	resolver *fs.Resolver
	watch    *watcher.Service
	logger   ports.Logger
}

// New creates a new App instance.
func New(
	settings ports.SettingsStore,
	builder *pipeline.Builder,
	resolver *fs.Resolver,
	watch *watcher.Service,
	logger ports.Logger,
) *App {
	return &App{
		settings: settings,
		builder:  builder,
		resolver: resolver,
		watch:    watch,
		logger:   logger,
	}
}

// Settings returns the current settings snapshot.
func (a *App) Settings() domain.Settings {
	return a.settings.Snapshot()
}

// CompileOptions configures a Compile call.
type CompileOptions struct {
	// Dir resolves relative inputs. Empty means the working directory.
	Dir string
	// Theme names the output subdirectory. Empty means the configured theme.
	Theme string
	// Output is an explicit output file. It requires exactly one input.
	Output string
	// Overrides adjust the settings for this call only.
	Overrides []domain.SettingsOverride
}

// Compile renders every input matched by inputs.
func (a *App) Compile(ctx context.Context, inputs []string, opts CompileOptions) ([]domain.RenderFile, error) {
	if len(inputs) == 0 {
		return nil, domain.ErrNoInputFiles
	}

	dir := opts.Dir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, zerr.Wrap(err, "failed to get working directory")
		}
		dir = wd
	}

	files, err := a.resolver.ResolveInputs(inputs, dir)
	if err != nil {
		return nil, err
	}
	if opts.Output != "" && len(files) != 1 {
		return nil, zerr.With(zerr.New("an output file needs exactly one input"), "inputs", len(files))
	}

	s := a.session(opts.Overrides...)
	requests := make([]domain.RenderFile, 0, len(files))
	for _, file := range files {
		req := domain.RenderFile{URLPath: s.urlPath(file), InputFile: file}
		if opts.Output != "" {
			req.OutputFile, err = filepath.Abs(opts.Output)
			if err != nil {
				return nil, errors.Join(domain.ErrInvalidPath, zerr.With(zerr.Wrap(err, "cannot resolve output"), "path", opts.Output))
			}
		}
		requests = append(requests, req)
	}

	return s.pipeline.Renderer.Render(ctx, opts.Theme, requests)
}

// Poll returns the watched stylesheets whose output changed. It returns an
// empty list while watch mode is off.
func (a *App) Poll(ctx context.Context, urls []string) ([]domain.Change, error) {
	return a.session().Poll(ctx, urls)
}

// RenderPath renders the LESS file at relPath below the configured root and
// records the result under urlPath.
func (a *App) RenderPath(ctx context.Context, urlPath, relPath string) (domain.RenderFile, error) {
	return a.session().RenderPath(ctx, urlPath, relPath)
}

// Flush drops every cache entry and removes the output directory.
func (a *App) Flush(_ context.Context) error {
	if err := a.builder.Backend().Flush(); err != nil {
		return err
	}

	outputDir := a.Settings().OutputDir
	if err := os.RemoveAll(outputDir); err != nil {
		return errors.Join(domain.ErrCacheFlushFailed, zerr.With(zerr.Wrap(err, "failed to remove output directory"), "dir", outputDir))
	}
	return nil
}

// EngineStatus describes one external tool and whether it is usable.
type EngineStatus struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Version   string `json:"version,omitempty"`
	Installed bool   `json:"installed"`
	Selected  bool   `json:"selected"`
}

// AutoprefixerID identifies the autoprefixer in Engines output.
const AutoprefixerID = "autoprefixer"

// Engines reports every registered engine followed by the autoprefixer.
func (a *App) Engines(ctx context.Context) []EngineStatus {
	settings := a.Settings()
	engines := a.builder.Engines()

	var statuses []EngineStatus
	for _, d := range engines.Descriptors() {
		version, ok := engines.Version(ctx, d.ID)
		statuses = append(statuses, EngineStatus{
			ID:        d.ID,
			Name:      d.Name,
			Version:   version,
			Installed: ok,
			Selected:  d.ID == settings.Engine,
		})
	}

	version, ok := a.builder.Autoprefixer().Version(ctx)
	statuses = append(statuses, EngineStatus{
		ID:        AutoprefixerID,
		Name:      domain.ExecAutoprefixer.String(),
		Version:   version,
		Installed: ok,
		Selected:  settings.Autoprefixer,
	})
	return statuses
}

// session is the pipeline built for one settings snapshot.
type session struct {
	settings domain.Settings
	pipeline *pipeline.Pipeline
}

func (a *App) session(overrides ...domain.SettingsOverride) *session {
	settings := a.Settings().Apply(overrides...)
	return &session{settings: settings, pipeline: a.builder.Build(settings)}
}

// Settings returns the session's settings.
func (s *session) Settings() domain.Settings {
	return s.settings
}

// Poll implements the watch endpoint.
func (s *session) Poll(ctx context.Context, urls []string) ([]domain.Change, error) {
	if !s.settings.WatchMode {
		return []domain.Change{}, nil
	}
	return s.pipeline.Notifier.Poll(ctx, urls)
}

// RenderPath renders a file addressed relative to the root.
func (s *session) RenderPath(ctx context.Context, urlPath, relPath string) (domain.RenderFile, error) {
	input := filepath.Join(s.settings.Root, filepath.FromSlash(relPath))
	if !within(s.settings.Root, input) {
		return domain.RenderFile{}, errors.Join(domain.ErrInvalidPath, zerr.With(zerr.New("path escapes root"), "path", relPath))
	}
	if _, err := fs.ValidateFile(input); err != nil {
		return domain.RenderFile{}, err
	}

	rendered, err := s.pipeline.Renderer.Render(ctx, "", []domain.RenderFile{{URLPath: urlPath, InputFile: input}})
	if err != nil {
		return domain.RenderFile{}, err
	}
	return rendered[0], nil
}

// urlPath names a compiled file the way the HTTP route would request it.
func (s *session) urlPath(file string) string {
	if within(s.settings.Root, file) {
		rel, err := filepath.Rel(s.settings.Root, file)
		if err == nil {
			return "/less/" + filepath.ToSlash(rel)
		}
	}
	return filepath.ToSlash(file)
}

func within(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) && !filepath.IsAbs(rel)
}
