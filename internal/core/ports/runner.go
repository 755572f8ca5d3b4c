// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.trai.ch/lessbuild/internal/core/domain"
)

// ProcessRunner defines the interface for invoking allow-listed external tools.
//
//go:generate mockgen -source=runner.go -destination=mocks/mock_runner.go -package=mocks
type ProcessRunner interface {
	// Run starts exe with args, waits for it to exit and returns its stdout.
	//
	// It fails with domain.ErrExecution when the process cannot be started,
	// exits non-zero, or writes anything to stderr, even with exit code 0.
	// It fails with domain.ErrProcessTimeout when the process outlives its
	// time bound.
	Run(ctx context.Context, exe domain.Executable, args []string) (string, error)
}
