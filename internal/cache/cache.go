package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"TradePilot/internal/model"
)

// SeriesCache stores fetched price series keyed by (symbol, timeframe).
// Entries are replaced wholesale on re-fetch; there is no incremental update.
type SeriesCache interface {
	Get(ctx context.Context, symbol string, tf model.Timeframe) ([]model.PricePoint, bool)
	Set(ctx context.Context, symbol string, tf model.Timeframe, points []model.PricePoint) error
}

func seriesKey(symbol string, tf model.Timeframe) string {
	return fmt.Sprintf("series:%s:%s", symbol, tf)
}

type memoryEntry struct {
	points    []model.PricePoint
	expiresAt time.Time
}

// MemoryCache is the default in-process cache.
type MemoryCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]memoryEntry
}

// NewMemoryCache creates a cache whose entries expire after ttl.
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{ttl: ttl, entries: make(map[string]memoryEntry)}
}

func (c *MemoryCache) Get(_ context.Context, symbol string, tf model.Timeframe) ([]model.PricePoint, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[seriesKey(symbol, tf)]
	if !ok || time.Now().After(e.expiresAt) {
		return nil, false
	}
	return e.points, true
}

func (c *MemoryCache) Set(_ context.Context, symbol string, tf model.Timeframe, points []model.PricePoint) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[seriesKey(symbol, tf)] = memoryEntry{points: points, expiresAt: time.Now().Add(c.ttl)}
	return nil
}
