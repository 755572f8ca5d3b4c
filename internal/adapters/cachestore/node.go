package cachestore

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/lessbuild/internal/adapters/config"
	"go.trai.ch/lessbuild/internal/core/ports"
)

// NodeID is the unique identifier for the cache backend Graft node.
const NodeID graft.ID = "adapter.cache_backend"

func init() {
	graft.Register(graft.Node[ports.CacheBackend]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.SettingsNodeID},
		Run: func(ctx context.Context) (ports.CacheBackend, error) {
			settings, err := graft.Dep[ports.SettingsStore](ctx)
			if err != nil {
				return nil, err
			}
			return New(settings.Snapshot())
		},
	})
}
