package app

import (
	"context"
	"log"
	"net"
	"os"

	"go.trai.ch/lessbuild/internal/adapters/httpapi" //nolint:depguard // HTTP surface
	"go.trai.ch/lessbuild/internal/adapters/watcher" //nolint:depguard // Watch service
	"go.trai.ch/lessbuild/internal/core/domain"
	"golang.org/x/sync/errgroup"
)

// ServeOptions configures Serve.
type ServeOptions struct {
	// Addr overrides the configured listen address.
	Addr string
	// Watch streams source changes to /less/events and turns on watch mode.
	Watch bool
	// Ready receives the bound address once the server listens.
	Ready func(net.Addr)
	// Overrides adjust the settings for every request served.
	Overrides []domain.SettingsOverride
}

// Serve runs the HTTP server, and with Watch the source watcher, until ctx
// is cancelled.
func (a *App) Serve(ctx context.Context, opts ServeOptions) error {
	overrides := append([]domain.SettingsOverride(nil), opts.Overrides...)
	if opts.Watch {
		overrides = append(overrides, func(s *domain.Settings) { s.WatchMode = true })
	}
	s := a.session(overrides...)

	addr := s.settings.Listen
	if opts.Addr != "" {
		addr = opts.Addr
	}

	var broker *watcher.Broker
	if opts.Watch {
		broker = a.watch.Broker()
	}
	handler := httpapi.NewHandler(s, broker, a.logger)

	ready := func(bound net.Addr) {
		a.logger.Info("serving on http://" + bound.String())
		if opts.Ready != nil {
			opts.Ready(bound)
		}
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return httpapi.Serve(ctx, addr, handler, a.errorLog(), ready)
	})
	if opts.Watch {
		roots := watchRoots(s.settings)
		g.Go(func() error {
			return a.watch.Run(ctx, roots...)
		})
	}
	return g.Wait()
}

func (a *App) errorLog() *log.Logger {
	if l, ok := a.logger.(interface{ StdLogger() *log.Logger }); ok {
		return l.StdLogger()
	}
	return nil
}

// watchRoots returns the root and every existing import directory.
func watchRoots(settings domain.Settings) []string {
	roots := []string{settings.Root}
	for _, dir := range settings.ImportDirectories {
		if within(settings.Root, dir) {
			continue
		}
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			roots = append(roots, dir)
		}
	}
	return roots
}
