// Package autoprefixer wraps the autoprefixer command line tool.
package autoprefixer

import (
	"context"

	"go.trai.ch/lessbuild/internal/adapters/fs"
	"go.trai.ch/lessbuild/internal/core/domain"
	"go.trai.ch/lessbuild/internal/core/ports"
)

// Autoprefixer implements ports.Autoprefixer on top of a ports.ProcessRunner.
type Autoprefixer struct {
	runner ports.ProcessRunner
	tracer ports.Tracer
}

// New creates a new Autoprefixer.
func New(runner ports.ProcessRunner, tracer ports.Tracer) *Autoprefixer {
	return &Autoprefixer{runner: runner, tracer: tracer}
}

// Version runs `autoprefixer --version` and returns the first version-like
// token of its output. Any failure reports the tool as missing.
func (a *Autoprefixer) Version(ctx context.Context) (string, bool) {
	out, err := a.runner.Run(ctx, domain.ExecAutoprefixer, []string{"--version"})
	if err != nil {
		return "", false
	}
	return domain.ParseVersion(out)
}

// Compile prefixes the CSS file at inputFile and returns the prefixed CSS.
func (a *Autoprefixer) Compile(ctx context.Context, inputFile string, sourceMaps bool) (string, error) {
	ctx, span := a.tracer.Start(ctx, "less.autoprefix")
	defer span.End()
	span.SetAttribute("input", inputFile)
	span.SetAttribute("source_maps", sourceMaps)

	abs, err := fs.ValidateFile(inputFile)
	if err != nil {
		span.RecordError(err)
		return "", err
	}

	out, err := a.runner.Run(ctx, domain.ExecAutoprefixer, Arguments(abs, sourceMaps))
	if err != nil {
		span.RecordError(err)
		return "", err
	}
	return out, nil
}

// Arguments returns the command line for prefixing input. The input file is
// always the last argument.
func Arguments(input string, sourceMaps bool) []string {
	args := make([]string, 0, 3)
	if sourceMaps {
		args = append(args, "--map", "--inline-map")
	}
	return append(args, input)
}
