package pipeline

import (
	"context"
	"net/url"

	"go.trai.ch/lessbuild/internal/adapters/fs" //nolint:depguard // Stat helper only
	"go.trai.ch/lessbuild/internal/core/domain"
	"go.trai.ch/lessbuild/internal/core/ports"
	"go.trai.ch/zerr"
)

// WatchNotifier reports which previously rendered stylesheets changed.
type WatchNotifier struct {
	backend  ports.CacheBackend
	renderer *Renderer
	stat     StatFunc
	logger   ports.Logger
}

// NewWatchNotifier creates a notifier. A nil stat uses the file system.
func NewWatchNotifier(backend ports.CacheBackend, renderer *Renderer, stat StatFunc, logger ports.Logger) *WatchNotifier {
	if stat == nil {
		stat = fs.ModTime
	}
	return &WatchNotifier{backend: backend, renderer: renderer, stat: stat, logger: logger}
}

// Poll re-renders every stylesheet in urls that has a watch entry and
// returns those whose output file was replaced. URLs without an entry are
// skipped. The result is never nil.
func (n *WatchNotifier) Poll(ctx context.Context, urls []string) ([]domain.Change, error) {
	changes := []domain.Change{}

	for _, raw := range urls {
		u, err := url.Parse(raw)
		if err != nil {
			continue
		}
		path := u.Path

		var entry domain.CacheEntry
		found, err := n.backend.Get(domain.WatchKey(path), &entry)
		if err != nil {
			if n.logger != nil {
				n.logger.Error(zerr.Wrap(err, "ignoring unreadable watch entry"))
			}
			continue
		}
		if !found {
			continue
		}

		// A missing output file reads as the zero time.
		before, _ := n.stat(entry.OutputFile)

		output := entry.OutputFile
		if isFingerprinted(output) {
			output = ""
		}
		rendered, err := n.renderer.Render(ctx, entry.Theme, []domain.RenderFile{{
			URLPath:    path,
			InputFile:  entry.InputFile,
			OutputFile: output,
		}})
		if err != nil {
			return nil, err
		}

		resolved := rendered[0].OutputFile
		after, _ := n.stat(resolved)
		if after.After(before) {
			changes = append(changes, domain.Change{OldFile: path, NewFile: n.renderer.URL(resolved)})
		}
	}

	return changes, nil
}
