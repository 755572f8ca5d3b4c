// Package engine provides the LESS engines and the registry they are picked from.
package engine

import (
	"context"
	"errors"

	"go.trai.ch/lessbuild/internal/core/domain"
	"go.trai.ch/lessbuild/internal/core/ports"
	"go.trai.ch/zerr"
)

// Factory creates a fresh engine.
type Factory func() ports.Engine

type entry struct {
	descriptor domain.EngineDescriptor
	factory    Factory
}

// Registry maps engine IDs to their constructors. It implements
// ports.EngineProvider.
type Registry struct {
	runner  ports.ProcessRunner
	entries []entry
}

// NewRegistry creates a registry holding the lessc and bundle engines.
func NewRegistry(runner ports.ProcessRunner, tracer ports.Tracer) *Registry {
	r := &Registry{runner: runner}
	r.Register(domain.EngineDescriptor{
		ID:         domain.EngineLessc,
		Name:       "less.js",
		VendorURL:  "https://lesscss.org",
		Executable: domain.ExecLessc,
	}, func() ports.Engine {
		return NewLessc(runner, tracer)
	})
	r.Register(domain.EngineDescriptor{
		ID:        domain.EngineBundle,
		Name:      "Import bundler",
		VendorURL: "https://go.trai.ch/lessbuild",
	}, func() ports.Engine {
		return NewBundle(tracer)
	})
	return r
}

// Register adds an engine. Registering an existing ID replaces it in place.
func (r *Registry) Register(d domain.EngineDescriptor, f Factory) {
	for i := range r.entries {
		if r.entries[i].descriptor.ID == d.ID {
			r.entries[i] = entry{descriptor: d, factory: f}
			return
		}
	}
	r.entries = append(r.entries, entry{descriptor: d, factory: f})
}

// New returns a fresh engine for id.
func (r *Registry) New(id string) (ports.Engine, error) {
	e, ok := r.lookup(id)
	if !ok {
		return nil, errors.Join(domain.ErrUnknownEngine, zerr.With(zerr.New("engine is not registered"), "engine", id))
	}
	return e.factory(), nil
}

// Descriptors lists the registered engines in registration order.
func (r *Registry) Descriptors() []domain.EngineDescriptor {
	out := make([]domain.EngineDescriptor, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e.descriptor)
	}
	return out
}

// Version reports the installed version of an engine's tool. In-process
// engines always report domain.BuiltinVersion.
func (r *Registry) Version(ctx context.Context, id string) (string, bool) {
	e, ok := r.lookup(id)
	if !ok {
		return "", false
	}
	if e.descriptor.Executable == "" {
		return domain.BuiltinVersion, true
	}
	out, err := r.runner.Run(ctx, e.descriptor.Executable, []string{"--version"})
	if err != nil {
		return "", false
	}
	return domain.ParseVersion(out)
}

func (r *Registry) lookup(id string) (entry, bool) {
	for _, e := range r.entries {
		if e.descriptor.ID == id {
			return e, true
		}
	}
	return entry{}, false
}
