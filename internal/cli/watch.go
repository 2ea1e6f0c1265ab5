package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/raphaelgruber/crisis-assistant/internal/catalog"
)

// watchCatalog keeps the session catalog in sync with its file until stop is called.
// A catalog that fails to load is logged and the previous one stays active.
func watchCatalog(ctx context.Context, path string) (stop func(), err error) {
	w, err := catalog.NewWatcher(path)
	if err != nil {
		return nil, fmt.Errorf("watch catalog: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		w.Run(ctx,
			func(c *catalog.Catalog, took time.Duration) { asst.SetCatalog(c, took) },
			func(err error) {
				logger.Warn("catalog reload failed, keeping previous catalog", "error", err)
			})
	}()
	logger.Info("watching catalog", "file", path)

	return func() {
		cancel()
		<-done
		if err := w.Close(); err != nil {
			logger.Warn("failed to close catalog watcher", "error", err)
		}
	}, nil
}
