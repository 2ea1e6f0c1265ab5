package catalog

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads a catalog file whenever it changes on disk.
type Watcher struct {
	path    string
	watcher *fsnotify.Watcher
}

// NewWatcher starts watching the catalog file at path.
// The parent directory is watched so editors that replace the file are noticed.
func NewWatcher(path string) (*Watcher, error) {
	if path == "" || path == EmbeddedSource {
		return nil, ErrWatchEmbedded
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve catalog path: %w", err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	return &Watcher{path: abs, watcher: fw}, nil
}

// Run blocks until ctx is done or the watcher is closed.
//
// Every change to the file triggers a reload. A catalog that loads cleanly is
// passed to onReload with the time the load took; a failed load is passed to
// onError and the caller keeps its previous catalog.
func (w *Watcher) Run(ctx context.Context, onReload func(*Catalog, time.Duration), onError func(error)) {
	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			start := time.Now()
			cat, err := Load(w.path)
			if err != nil {
				onError(err)
				continue
			}
			onReload(cat, time.Since(start))

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			onError(fmt.Errorf("watch catalog: %w", err))
		}
	}
}

// Close stops watching. Run returns once its channels drain.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}
