package pipeline

import (
	"context"
	"errors"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"go.trai.ch/lessbuild/internal/adapters/fs" //nolint:depguard // Output file helpers
	"go.trai.ch/lessbuild/internal/core/domain"
	"go.trai.ch/lessbuild/internal/core/ports"
	"go.trai.ch/zerr"
)

var fingerprintPattern = regexp.MustCompile(`\.[0-9a-f]{16}\.css$`)

// Renderer writes compiled stylesheets to the output directory and records
// a watch entry for every requested URL path.
type Renderer struct {
	settings domain.Settings
	cache    *CompileCache
	backend  ports.CacheBackend
	tracer   ports.Tracer
}

// NewRenderer creates a renderer.
func NewRenderer(settings domain.Settings, cache *CompileCache, backend ports.CacheBackend, tracer ports.Tracer) *Renderer {
	return &Renderer{settings: settings, cache: cache, backend: backend, tracer: tracer}
}

// Render compiles every file and writes its output. Files without an
// OutputFile get a fingerprinted name below the theme directory. The
// returned files carry the resolved input and output paths.
func (r *Renderer) Render(ctx context.Context, theme string, files []domain.RenderFile) ([]domain.RenderFile, error) {
	ctx, span := r.tracer.Start(ctx, "less.render")
	defer span.End()

	if theme == "" {
		theme = r.settings.Theme
	}
	span.SetAttribute("theme", theme)
	span.SetAttribute("files", len(files))

	rendered := make([]domain.RenderFile, 0, len(files))
	for _, f := range files {
		out, err := r.render(ctx, theme, f)
		if err != nil {
			span.RecordError(err)
			return nil, err
		}
		rendered = append(rendered, out)
	}
	return rendered, nil
}

func (r *Renderer) render(ctx context.Context, theme string, f domain.RenderFile) (domain.RenderFile, error) {
	artifact, err := r.cache.GetOrCompile(ctx, f.URLPath, f.InputFile)
	if err != nil {
		return domain.RenderFile{}, err
	}

	output := f.OutputFile
	if output == "" {
		output = r.OutputPath(theme, artifact.InputFile, artifact.CSS)
	}
	output, err = filepath.Abs(output)
	if err != nil {
		return domain.RenderFile{}, errors.Join(domain.ErrOutputWriteFailed, zerr.With(zerr.Wrap(err, "cannot resolve output path"), "path", output))
	}

	wrote, err := fs.WriteFileIfChanged(output, []byte(artifact.CSS))
	if err != nil {
		return domain.RenderFile{}, err
	}

	key := domain.WatchKey(f.URLPath)
	if !wrote {
		// A fingerprinted file from an earlier build is being served again.
		// Bump it so watchers see the switch.
		var previous domain.CacheEntry
		if found, err := r.backend.Get(key, &previous); err == nil && found && previous.OutputFile != output {
			if err := fs.Touch(output, time.Now()); err != nil {
				return domain.RenderFile{}, err
			}
		}
	}

	entry := domain.CacheEntry{InputFile: artifact.InputFile, OutputFile: output, Theme: theme}
	if err := r.backend.Set(key, entry); err != nil {
		return domain.RenderFile{}, err
	}

	return domain.RenderFile{URLPath: f.URLPath, InputFile: artifact.InputFile, OutputFile: output}, nil
}

// OutputPath returns the fingerprinted output path for input compiled to css.
func (r *Renderer) OutputPath(theme, input, css string) string {
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	return filepath.Join(r.settings.OutputDir, theme, base+"."+fs.Fingerprint([]byte(css))+domain.CSSExt)
}

// URL maps a file below the output directory to the URL it is served under.
// Paths outside the output directory are returned as slash paths.
func (r *Renderer) URL(path string) string {
	outputDir, err := filepath.Abs(r.settings.OutputDir)
	if err != nil {
		return filepath.ToSlash(path)
	}
	rel, err := filepath.Rel(outputDir, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return filepath.ToSlash(path)
	}
	return strings.TrimRight(r.settings.PublicPath, "/") + "/" + filepath.ToSlash(rel)
}

// isFingerprinted reports whether path carries a name chosen by OutputPath.
func isFingerprinted(path string) bool {
	return fingerprintPattern.MatchString(path)
}
