package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/lessbuild/internal/adapters/config"  //nolint:depguard // Wired in app layer
	"go.trai.ch/lessbuild/internal/adapters/fs"      //nolint:depguard // Wired in app layer
	"go.trai.ch/lessbuild/internal/adapters/logger"  //nolint:depguard // Wired in app layer
	"go.trai.ch/lessbuild/internal/adapters/watcher" //nolint:depguard // Wired in app layer
	"go.trai.ch/lessbuild/internal/core/ports"
	"go.trai.ch/lessbuild/internal/engine/pipeline"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

// Components contains the initialized application components the CLI needs.
type Components struct {
	App    *App
	Logger ports.Logger
}

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.SettingsNodeID,
			pipeline.NodeID,
			fs.ResolverNodeID,
			watcher.ServiceNodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{AppNodeID, logger.NodeID},
		Run: func(ctx context.Context) (*Components, error) {
			a, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return &Components{App: a, Logger: log}, nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	settings, err := graft.Dep[ports.SettingsStore](ctx)
	if err != nil {
		return nil, err
	}

	builder, err := graft.Dep[*pipeline.Builder](ctx)
	if err != nil {
		return nil, err
	}

	resolver, err := graft.Dep[*fs.Resolver](ctx)
	if err != nil {
		return nil, err
	}

	watch, err := graft.Dep[*watcher.Service](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(settings, builder, resolver, watch, log), nil
}
