package pipeline

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/lessbuild/internal/adapters/autoprefixer" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/lessbuild/internal/adapters/cachestore"   //nolint:depguard // Wired in engine wiring
	"go.trai.ch/lessbuild/internal/adapters/engine"       //nolint:depguard // Wired in engine wiring
	"go.trai.ch/lessbuild/internal/adapters/logger"       //nolint:depguard // Wired in engine wiring
	"go.trai.ch/lessbuild/internal/adapters/telemetry"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/lessbuild/internal/core/ports"
)

// NodeID is the unique identifier for the pipeline builder Graft node.
const NodeID graft.ID = "engine.pipeline"

func init() {
	graft.Register(graft.Node[*Builder]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			cachestore.NodeID,
			engine.NodeID,
			autoprefixer.NodeID,
			logger.NodeID,
			telemetry.TracerNodeID,
		},
		Run: func(ctx context.Context) (*Builder, error) {
			backend, err := graft.Dep[ports.CacheBackend](ctx)
			if err != nil {
				return nil, err
			}

			engines, err := graft.Dep[ports.EngineProvider](ctx)
			if err != nil {
				return nil, err
			}

			prefixer, err := graft.Dep[ports.Autoprefixer](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}

			return NewBuilder(backend, engines, prefixer, log, tracer), nil
		},
	})
}
