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
)

// Lessc compiles through the less.js command line compiler.
//
// The dependency list comes from a second `lessc --depends` run, which
// reports every file lessc resolved, including imports whose path uses
// variables. When that run fails the list is rebuilt with a lenient
// ImportScanner over the same import directories.
type Lessc struct {
	runner ports.ProcessRunner
	tracer ports.Tracer
	dirs   []string
}

// NewLessc creates a new lessc engine.
func NewLessc(runner ports.ProcessRunner, tracer ports.Tracer) *Lessc {
	return &Lessc{runner: runner, tracer: tracer}
}

// SetImportDirectories configures the include path.
func (e *Lessc) SetImportDirectories(dirs []string) {
	e.dirs = append([]string(nil), dirs...)
}

// Compile runs lessc on inputFile.
func (e *Lessc) Compile(ctx context.Context, inputFile string) (*domain.CompiledArtifact, error) {
	ctx, span := e.tracer.Start(ctx, "less.compile")
	defer span.End()
	span.SetAttribute("engine", domain.EngineLessc)
	span.SetAttribute("input", inputFile)

	started := time.Now()

	abs, err := fs.ValidateFile(inputFile)
	if err != nil {
		err = errors.Join(domain.ErrCompile, err)
		span.RecordError(err)
		return nil, err
	}

	css, err := e.runner.Run(ctx, domain.ExecLessc, LesscArguments(abs, e.dirs))
	if err != nil {
		err = errors.Join(domain.ErrCompile, err)
		span.RecordError(err)
		return nil, err
	}

	deps, err := e.dependencies(ctx, abs)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetAttribute("dependencies", len(deps))

	return &domain.CompiledArtifact{
		CSS:          css,
		Dependencies: deps,
		CompiledAt:   started,
		InputFile:    abs,
		Engine:       domain.EngineLessc,
	}, nil
}

func (e *Lessc) dependencies(ctx context.Context, abs string) ([]string, error) {
	out, err := e.runner.Run(ctx, domain.ExecLessc, LesscDependsArguments(abs, e.dirs))
	if err != nil {
		return NewImportScanner(e.dirs, false).Dependencies(abs)
	}
	return domain.NewDependencySet(abs, ParseDepends(out, filepath.Dir(abs))...), nil
}

// dependsTarget is the output name passed to `lessc --depends`. lessc only
// echoes it as the make target and writes no file.
const dependsTarget = "lessbuild.css"

// LesscDependsArguments returns the command line listing the files input
// depends on.
func LesscDependsArguments(input string, dirs []string) []string {
	args := LesscArguments(input, dirs)
	args = append(args[:len(args)-1:len(args)-1], "--depends", input, dependsTarget)
	return args
}

// ParseDepends reads the make rule printed by `lessc --depends`. lessc joins
// paths with single spaces without escaping, so adjacent fields are merged
// until they name an existing file. Relative paths are resolved against dir.
// Fields that name no file are kept, so a deleted dependency marks the
// artifact stale.
func ParseDepends(out, dir string) []string {
	line := strings.TrimSpace(out)
	if rest, ok := strings.CutPrefix(line, dependsTarget+":"); ok {
		line = rest
	} else if _, rest, ok := strings.Cut(line, ": "); ok {
		line = rest
	}

	exists := func(p string) (string, bool) {
		if !filepath.IsAbs(p) {
			p = filepath.Join(dir, p)
		}
		info, err := os.Stat(p)
		return filepath.Clean(p), err == nil && info.Mode().IsRegular()
	}

	var deps []string
	var pending string
	for _, field := range strings.Fields(line) {
		if pending == "" {
			if path, ok := exists(field); ok {
				deps = append(deps, path)
			} else {
				pending = field
			}
			continue
		}

		merged := pending + " " + field
		if path, ok := exists(merged); ok {
			deps = append(deps, path)
			pending = ""
			continue
		}
		if path, ok := exists(field); ok {
			// pending names a file lessc read that is gone now. It still
			// has to mark the artifact stale.
			missing, _ := exists(pending)
			deps = append(deps, missing, path)
			pending = ""
			continue
		}
		pending = merged
	}
	if pending != "" {
		missing, _ := exists(pending)
		deps = append(deps, missing)
	}
	return deps
}

// LesscArguments returns the lessc command line for input. The include path
// is only passed when dirs is non-empty, and the input file is always last.
func LesscArguments(input string, dirs []string) []string {
	args := []string{"--no-color"}
	if len(dirs) > 0 {
		args = append(args, "--include-path="+strings.Join(dirs, string(os.PathListSeparator)))
	}
	return append(args, input)
}
