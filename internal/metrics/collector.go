// Package metrics provides in-memory session statistics collection.
package metrics

import (
	"math"
	"sort"
	"sync"
	"time"
)

// OperationMetrics holds aggregated timing for a single operation type.
type OperationMetrics struct {
	Count     int64
	TotalTime time.Duration
	MinTime   time.Duration
	MaxTime   time.Duration
}

// OperationSnapshot provides computed stats from raw metrics.
type OperationSnapshot struct {
	Count       int64
	TotalTimeUs int64
	AvgTimeUs   float64
	MinTimeUs   int64
	MaxTimeUs   int64
}

// CategoryCount is the number of queries answered with one category.
type CategoryCount struct {
	CategoryID string
	Count      int64
}

// Snapshot represents the session statistics at a point in time.
type Snapshot struct {
	UptimeSeconds float64
	Queries       int64
	Fallbacks     int64
	Classify      *OperationSnapshot
	CatalogLoad   *OperationSnapshot
	ByCategory    []CategoryCount // highest count first
}

// Operation names for the collector.
const (
	OpClassify    = "classify"
	OpCatalogLoad = "catalog_load"
)

// Collector aggregates in-memory session statistics.
// All methods are thread-safe.
type Collector struct {
	mu         sync.RWMutex
	startTime  time.Time
	ops        map[string]*OperationMetrics
	queries    int64
	fallbacks  int64
	categories map[string]int64
}

// NewCollector creates a new metrics collector.
func NewCollector() *Collector {
	return &Collector{
		startTime:  time.Now(),
		ops:        make(map[string]*OperationMetrics),
		categories: make(map[string]int64),
	}
}

// getOrCreate returns existing metrics or creates new ones for an operation.
// Caller must hold write lock.
func (c *Collector) getOrCreate(op string) *OperationMetrics {
	m, ok := c.ops[op]
	if !ok {
		m = &OperationMetrics{MinTime: time.Duration(math.MaxInt64)}
		c.ops[op] = m
	}
	return m
}

// RecordTiming records timing for an operation.
func (c *Collector) RecordTiming(op string, duration time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.recordTiming(op, duration)
}

func (c *Collector) recordTiming(op string, duration time.Duration) {
	m := c.getOrCreate(op)
	m.Count++
	m.TotalTime += duration

	if duration < m.MinTime {
		m.MinTime = duration
	}
	if duration > m.MaxTime {
		m.MaxTime = duration
	}
}

// RecordQuery records one processed query. An empty categoryID counts as a fallback.
func (c *Collector) RecordQuery(categoryID string, duration time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.recordTiming(OpClassify, duration)
	c.queries++
	if categoryID == "" {
		c.fallbacks++
		return
	}
	c.categories[categoryID]++
}

// snapshotOp creates a snapshot for an operation, returning nil if no data.
func snapshotOp(m *OperationMetrics) *OperationSnapshot {
	if m == nil || m.Count == 0 {
		return nil
	}

	return &OperationSnapshot{
		Count:       m.Count,
		TotalTimeUs: m.TotalTime.Microseconds(),
		AvgTimeUs:   float64(m.TotalTime.Microseconds()) / float64(m.Count),
		MinTimeUs:   m.MinTime.Microseconds(),
		MaxTimeUs:   m.MaxTime.Microseconds(),
	}
}

// Snapshot returns a point-in-time snapshot of all metrics.
func (c *Collector) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	byCategory := make([]CategoryCount, 0, len(c.categories))
	for id, n := range c.categories {
		byCategory = append(byCategory, CategoryCount{CategoryID: id, Count: n})
	}
	sort.Slice(byCategory, func(i, j int) bool {
		if byCategory[i].Count != byCategory[j].Count {
			return byCategory[i].Count > byCategory[j].Count
		}
		return byCategory[i].CategoryID < byCategory[j].CategoryID
	})

	return Snapshot{
		UptimeSeconds: time.Since(c.startTime).Seconds(),
		Queries:       c.queries,
		Fallbacks:     c.fallbacks,
		Classify:      snapshotOp(c.ops[OpClassify]),
		CatalogLoad:   snapshotOp(c.ops[OpCatalogLoad]),
		ByCategory:    byCategory,
	}
}
