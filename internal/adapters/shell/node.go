package shell

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/lessbuild/internal/adapters/config"
	"go.trai.ch/lessbuild/internal/adapters/logger"
	"go.trai.ch/lessbuild/internal/adapters/telemetry"
	"go.trai.ch/lessbuild/internal/core/ports"
)

// NodeID is the unique identifier for the process runner Graft node.
const NodeID graft.ID = "adapter.runner"

func init() {
	graft.Register(graft.Node[ports.ProcessRunner]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID, telemetry.TracerNodeID, config.SettingsNodeID},
		Run: func(ctx context.Context) (ports.ProcessRunner, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}
			settings, err := graft.Dep[ports.SettingsStore](ctx)
			if err != nil {
				return nil, err
			}
			return NewRunner(log, tracer, WithTimeout(settings.Snapshot().ProcessTimeout)), nil
		},
	})
}
