package watcher

import (
	"context"
	"time"

	"go.trai.ch/lessbuild/internal/core/ports"
)

// Service connects a ports.Watcher to the broker. Events are filtered by
// content, debounced and then published as one batch.
type Service struct {
	watcher ports.Watcher
	cache   *ContentCache
	broker  *Broker
	logger  ports.Logger
	window  time.Duration
}

// NewService creates a watch service publishing to broker.
func NewService(w ports.Watcher, cache *ContentCache, broker *Broker, logger ports.Logger) *Service {
	return &Service{
		watcher: w,
		cache:   cache,
		broker:  broker,
		logger:  logger,
		window:  DefaultDebounceWindow,
	}
}

// WithWindow sets the debounce window.
func (s *Service) WithWindow(window time.Duration) *Service {
	s.window = window
	return s
}

// Broker returns the broker batches are published to.
func (s *Service) Broker() *Broker {
	return s.broker
}

// Run watches roots until ctx is cancelled. Pending changes are published
// before it returns.
func (s *Service) Run(ctx context.Context, roots ...string) error {
	s.cache.Prime(roots...)

	if err := s.watcher.Start(ctx, roots...); err != nil {
		return err
	}
	defer func() { _ = s.watcher.Stop() }()

	if s.logger != nil {
		s.logger.Info("watching LESS sources for changes")
	}

	d := NewDebouncer(s.window, s.broker.Publish)
	for event := range s.watcher.Events() {
		if s.cache.Changed(event.Path) {
			d.Add(event.Path)
		}
	}
	d.Flush()

	return nil
}
