package ports

import (
	"context"

	"go.trai.ch/lessbuild/internal/core/domain"
)

// Engine turns a LESS source file into CSS.
//
//go:generate mockgen -source=engine.go -destination=mocks/mock_engine.go -package=mocks
type Engine interface {
	// SetImportDirectories configures the directories searched for @import
	// targets. Earlier directories win.
	SetImportDirectories(dirs []string)

	// Compile compiles inputFile. The returned artifact lists inputFile and
	// every file it imports in Dependencies.
	// Failures wrap domain.ErrCompile.
	Compile(ctx context.Context, inputFile string) (*domain.CompiledArtifact, error)
}

// EngineProvider creates a fresh engine for a compile request.
type EngineProvider interface {
	// New returns a new engine for the given ID, or domain.ErrUnknownEngine.
	New(id string) (Engine, error)

	// Descriptors lists the registered engines in registration order.
	Descriptors() []domain.EngineDescriptor

	// Version reports the installed version of the engine's tool. The
	// boolean is false when the engine is unknown or its tool is missing.
	Version(ctx context.Context, id string) (string, bool)
}
