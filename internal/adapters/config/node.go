package config

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/lessbuild/internal/adapters/logger"
	"go.trai.ch/lessbuild/internal/core/ports"
)

const (
	// LoaderNodeID is the unique identifier for the settings loader Graft node.
	LoaderNodeID graft.ID = "adapter.settings_loader"
	// SettingsNodeID is the unique identifier for the process-wide settings store.
	SettingsNodeID graft.ID = "adapter.settings"
)

func init() {
	graft.Register(graft.Node[ports.SettingsLoader]{
		ID:        LoaderNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.SettingsLoader, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewLoader(log), nil
		},
	})

	graft.Register(graft.Node[ports.SettingsStore]{
		ID:        SettingsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{LoaderNodeID},
		Run: func(ctx context.Context) (ports.SettingsStore, error) {
			loader, err := graft.Dep[ports.SettingsLoader](ctx)
			if err != nil {
				return nil, err
			}
			return loader.Load(".")
		},
	})
}
