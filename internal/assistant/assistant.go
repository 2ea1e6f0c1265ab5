// Package assistant runs emergency queries through classification and
// response selection, and keeps session statistics.
package assistant

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/raphaelgruber/crisis-assistant/internal/catalog"
	"github.com/raphaelgruber/crisis-assistant/internal/classifier"
	"github.com/raphaelgruber/crisis-assistant/internal/metrics"
	"github.com/raphaelgruber/crisis-assistant/internal/models"
)

// DemoQueries are the sample queries walked through by demo mode.
var DemoQueries = []string{
	"Someone is bleeding heavily from their arm",
	"Person collapsed and not breathing",
	"Got burned by hot water on my hand",
	"Child is choking on food",
	"I think my leg is broken after falling",
}

// Outcome is the result of processing one query.
type Outcome struct {
	Query    string
	Response models.Response
	Scores   []classifier.CategoryScore
	At       time.Time
	Elapsed  time.Duration
}

// Assistant answers emergency queries against a catalog.
// It holds no per-query state; Process may be called concurrently.
type Assistant struct {
	mu        sync.RWMutex
	catalog   *catalog.Catalog
	threshold float64
	metrics   *metrics.Collector
	logger    *slog.Logger
	now       func() time.Time
}

// New creates an assistant. A nil collector or logger is replaced with a default.
func New(cat *catalog.Catalog, threshold float64, collector *metrics.Collector, logger *slog.Logger) *Assistant {
	if collector == nil {
		collector = metrics.NewCollector()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Assistant{
		catalog:   cat,
		threshold: threshold,
		metrics:   collector,
		logger:    logger,
		now:       time.Now,
	}
}

// Catalog returns the catalog the assistant answers from.
func (a *Assistant) Catalog() *catalog.Catalog {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.catalog
}

// SetCatalog swaps the catalog and records how long it took to load.
// Queries already running finish on the old one.
func (a *Assistant) SetCatalog(cat *catalog.Catalog, loadTime time.Duration) {
	a.mu.Lock()
	a.catalog = cat
	a.mu.Unlock()
	a.metrics.RecordTiming(metrics.OpCatalogLoad, loadTime)
	a.logger.Info("catalog replaced", "source", cat.Source(), "procedures", cat.Len(), "load_time", loadTime)
}

// Threshold returns the confidence below which generic guidance is given.
func (a *Assistant) Threshold() float64 {
	return a.threshold
}

// Stats returns the session statistics.
func (a *Assistant) Stats() metrics.Snapshot {
	return a.metrics.Snapshot()
}

// Process classifies query and selects a procedure or generic guidance.
// The only error is a catalog integrity fault, which callers must treat as fatal.
func (a *Assistant) Process(query string) (Outcome, error) {
	start := a.now()
	cat := a.Catalog()

	scores := classifier.Score(query, cat.KeywordTable())
	result := classifier.Best(scores)

	resp, err := classifier.Select(result, cat, a.threshold)
	if err != nil {
		a.logger.Error("catalog integrity fault", "category", result.CategoryID, "error", err)
		return Outcome{}, fmt.Errorf("select response: %w", err)
	}

	elapsed := a.now().Sub(start)
	matched := ""
	if !resp.Fallback {
		matched = resp.Procedure.ID
	}
	a.metrics.RecordQuery(matched, elapsed)

	a.logger.Info("query processed",
		"category", result.CategoryID,
		"confidence", result.Confidence,
		"fallback", resp.Fallback,
		"elapsed", elapsed,
	)
	a.logger.Debug("category scores", "query", query, "scores", scores)

	return Outcome{
		Query:    query,
		Response: resp,
		Scores:   scores,
		At:       start,
		Elapsed:  elapsed,
	}, nil
}
