package engine

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.trai.ch/lessbuild/internal/adapters/fs"
	"go.trai.ch/lessbuild/internal/core/domain"
	"go.trai.ch/lessbuild/internal/core/ports"
	"go.trai.ch/zerr"
)

// Bundle is an in-process engine that inlines imported LESS sources.
//
// It does not evaluate LESS: variables, mixins and nesting pass through as
// written. Line comments are dropped since CSS has no such syntax. Each
// file is inlined at most once; later imports of it are removed.
type Bundle struct {
	tracer ports.Tracer
	dirs   []string
}

// NewBundle creates a new bundle engine.
func NewBundle(tracer ports.Tracer) *Bundle {
	return &Bundle{tracer: tracer}
}

// SetImportDirectories configures the directories searched for imports.
func (e *Bundle) SetImportDirectories(dirs []string) {
	e.dirs = append([]string(nil), dirs...)
}

// Compile inlines every resolvable import of inputFile.
func (e *Bundle) Compile(ctx context.Context, inputFile string) (*domain.CompiledArtifact, error) {
	_, span := e.tracer.Start(ctx, "less.compile")
	defer span.End()
	span.SetAttribute("engine", domain.EngineBundle)
	span.SetAttribute("input", inputFile)

	started := time.Now()

	abs, err := fs.ValidateFile(inputFile)
	if err != nil {
		err = errors.Join(domain.ErrCompile, err)
		span.RecordError(err)
		return nil, err
	}

	b := &bundler{dirs: e.dirs, visited: map[string]bool{}}
	css, err := b.inline(abs)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	deps := domain.NewDependencySet(abs, b.imports...)
	span.SetAttribute("dependencies", len(deps))

	return &domain.CompiledArtifact{
		CSS:          css,
		Dependencies: deps,
		CompiledAt:   started,
		InputFile:    abs,
		Engine:       domain.EngineBundle,
	}, nil
}

type bundler struct {
	dirs    []string
	visited map[string]bool
	imports []string
}

func (b *bundler) inline(file string) (string, error) {
	b.visited[file] = true

	raw, err := os.ReadFile(file) //nolint:gosec // Path comes from import resolution
	if err != nil {
		return "", errors.Join(domain.ErrCompile, zerr.With(zerr.Wrap(err, "failed to read source"), "file", file))
	}
	src := stripLineComments(string(raw))

	var out strings.Builder
	last := 0
	for _, m := range findImports(src) {
		path, res := resolveImport(m.ref, filepath.Dir(file), b.dirs)
		switch res {
		case resolvedSkip:
			continue
		case resolvedMissing:
			return "", importNotFound(m.ref.target, file)
		}

		out.WriteString(src[last:m.start])
		last = m.end

		if b.visited[path] {
			continue
		}
		b.imports = append(b.imports, path)

		if m.ref.has(optInline) {
			b.visited[path] = true
			content, err := os.ReadFile(path) //nolint:gosec // Path comes from import resolution
			if err != nil {
				return "", errors.Join(domain.ErrCompile, zerr.With(zerr.Wrap(err, "failed to read source"), "file", path))
			}
			out.Write(content)
			continue
		}

		nested, err := b.inline(path)
		if err != nil {
			return "", err
		}
		out.WriteString(nested)
	}
	out.WriteString(src[last:])

	return out.String(), nil
}
