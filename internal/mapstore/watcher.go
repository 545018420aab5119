package mapstore

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounce window for bursts of write events while an editor or tool is
// still flushing the file.
const reloadDelay = 250 * time.Millisecond

// Watcher reloads the store whenever the map document changes on disk.
type Watcher struct {
	store  *Store
	path   string
	logger *slog.Logger
}

// NewWatcher prepares a watcher for the given map document path.
func NewWatcher(store *Store, path string, logger *slog.Logger) *Watcher {
	return &Watcher{store: store, path: path, logger: logger}
}

// Start watches until ctx is cancelled. It returns once the underlying
// filesystem watcher is established; reloads happen on a background
// goroutine and failures keep the previous graph in place.
func (w *Watcher) Start(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create fs watcher: %w", err)
	}

	// Watch the directory, not the file: editors replace files by rename,
	// which would silently detach a file-level watch.
	dir := filepath.Dir(w.path)
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	go w.run(ctx, fw)
	w.logger.Info("watching map document", "path", w.path)
	return nil
}

func (w *Watcher) run(ctx context.Context, fw *fsnotify.Watcher) {
	defer fw.Close()

	var pending *time.Timer
	target := filepath.Clean(w.path)

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-fw.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if pending != nil {
				pending.Stop()
			}
			pending = time.AfterFunc(reloadDelay, func() {
				if err := w.store.Load(ctx); err != nil {
					w.logger.Error("map reload failed, keeping previous graph", "error", err)
				}
			})
		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("fs watcher error", "error", err)
		}
	}
}
