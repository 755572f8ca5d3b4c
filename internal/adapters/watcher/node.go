package watcher

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/lessbuild/internal/adapters/fs"
	"go.trai.ch/lessbuild/internal/adapters/logger"
	"go.trai.ch/lessbuild/internal/core/ports"
)

const (
	// WatcherNodeID is the unique identifier for the file watcher Graft node.
	WatcherNodeID graft.ID = "adapter.watcher"
	// ServiceNodeID is the unique identifier for the watch service Graft node.
	ServiceNodeID graft.ID = "adapter.watch_service"
)

func init() {
	graft.Register(graft.Node[ports.Watcher]{
		ID:        WatcherNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{fs.WalkerNodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.Watcher, error) {
			walker, err := graft.Dep[*fs.Walker](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewWatcher(walker, log), nil
		},
	})

	graft.Register(graft.Node[*Service]{
		ID:        ServiceNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{WatcherNodeID, fs.HasherNodeID, fs.WalkerNodeID, logger.NodeID},
		Run: func(ctx context.Context) (*Service, error) {
			w, err := graft.Dep[ports.Watcher](ctx)
			if err != nil {
				return nil, err
			}
			hasher, err := graft.Dep[*fs.Hasher](ctx)
			if err != nil {
				return nil, err
			}
			walker, err := graft.Dep[*fs.Walker](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewService(w, NewContentCache(hasher, walker), NewBroker(), log), nil
		},
	})
}
