package engine

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/lessbuild/internal/adapters/shell"
	"go.trai.ch/lessbuild/internal/adapters/telemetry"
	"go.trai.ch/lessbuild/internal/core/ports"
)

// NodeID is the unique identifier for the engine registry Graft node.
const NodeID graft.ID = "adapter.engines"

func init() {
	graft.Register(graft.Node[ports.EngineProvider]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{shell.NodeID, telemetry.TracerNodeID},
		Run: func(ctx context.Context) (ports.EngineProvider, error) {
			runner, err := graft.Dep[ports.ProcessRunner](ctx)
			if err != nil {
				return nil, err
			}
			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}
			return NewRegistry(runner, tracer), nil
		},
	})
}
