package catalog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
)

const defaultDebounce = 500 * time.Millisecond

// Refresh pulls the latest definitions from the source, normalizes them and
// swaps the registry table in one atomic step. On source failure the current
// table is left untouched.
func Refresh(ctx context.Context, r *Registry, src Source) error {
	provided, err := src.Definitions(ctx)
	if err != nil {
		return errors.Wrap(err, "provider refresh failed")
	}
	r.Replace(Normalize(provided))
	return nil
}

// Watcher re-runs a registry refresh whenever files under a provider
// definitions directory change. Events are debounced so a burst of writes
// triggers a single refresh.
type Watcher struct {
	dir      string
	registry *Registry
	source   Source
	debounce time.Duration
	log      *slog.Logger

	fw   *fsnotify.Watcher
	done chan struct{}
}

// NewWatcher creates a watcher over dir that refreshes the registry from the
// given source. Call Start to begin watching and Close to stop.
func NewWatcher(dir string, r *Registry, src Source, log *slog.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create file watcher")
	}
	if err := fw.Add(dir); err != nil {
		_ = fw.Close()
		return nil, errors.Wrapf(err, "failed to watch %s", dir)
	}
	if log == nil {
		log = slog.Default()
	}
	return &Watcher{
		dir:      dir,
		registry: r,
		source:   src,
		debounce: defaultDebounce,
		log:      log,
		fw:       fw,
		done:     make(chan struct{}),
	}, nil
}

// Start launches the watch loop. It returns immediately; the loop exits when
// the context is cancelled or Close is called.
func (w *Watcher) Start(ctx context.Context) {
	go w.loop(ctx)
}

// Close stops the watch loop and releases the underlying watcher.
func (w *Watcher) Close() error {
	close(w.done)
	return w.fw.Close()
}

func (w *Watcher) loop(ctx context.Context) {
	var timer *time.Timer
	var pending <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.done:
			return
		case event, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			pending = timer.C
		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			w.log.Warn("provider watch error", "dir", w.dir, "error", err)
		case <-pending:
			pending = nil
			if err := Refresh(ctx, w.registry, w.source); err != nil {
				w.log.Warn("provider refresh failed", "dir", w.dir, "error", err)
				continue
			}
			w.log.Info("provider definitions refreshed", "dir", w.dir, "types", w.registry.Len())
		}
	}
}
