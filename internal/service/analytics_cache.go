package service

import (
	"fmt"
	"sync"
	"time"

	"notes-manager-server/internal/domain"
	"notes-manager-server/internal/metrics"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/singleflight"
)

const (
	DefaultAnalyticsCacheSize = 50
	DefaultAnalyticsCacheTTL  = 5 * time.Minute
)

// AnalyticsCache holds computed statistics for one corpus watermark. When a
// different watermark is observed every entry is dropped. Entries also
// expire after the TTL and the least recently used ones are evicted once the
// capacity is reached.
//
// Cached values are shared between callers and must not be modified.
type AnalyticsCache struct {
	mu        sync.Mutex
	entries   *expirable.LRU[string, any]
	watermark domain.Watermark
	primed    bool
	flights   singleflight.Group
}

func NewAnalyticsCache(size int, ttl time.Duration) *AnalyticsCache {
	if size <= 0 {
		size = DefaultAnalyticsCacheSize
	}
	if ttl <= 0 {
		ttl = DefaultAnalyticsCacheTTL
	}
	return &AnalyticsCache{
		entries: expirable.NewLRU[string, any](size, nil, ttl),
	}
}

// GetOrCompute returns the value cached for key under watermark w, calling
// compute on a miss. Concurrent misses for the same key and watermark share
// one call to compute. hit reports whether the value came from the cache.
func (c *AnalyticsCache) GetOrCompute(w domain.Watermark, key string, compute func() (any, error)) (v any, hit bool, err error) {
	c.observe(w)

	if v, ok := c.get(w, key); ok {
		return v, true, nil
	}

	flight := fmt.Sprintf("%s@%d/%d", key, w.NoteCount, w.LastWrite)
	v, err, _ = c.flights.Do(flight, func() (any, error) {
		if v, ok := c.get(w, key); ok {
			return v, nil
		}
		v, err := compute()
		if err != nil {
			return nil, err
		}
		c.add(w, key, v)
		return v, nil
	})
	return v, false, err
}

func (c *AnalyticsCache) Len() int {
	return c.entries.Len()
}

func (c *AnalyticsCache) observe(w domain.Watermark) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.primed && c.watermark == w {
		return
	}
	if c.primed {
		metrics.AnalyticsCacheInvalidations.Inc()
	}
	c.entries.Purge()
	c.watermark = w
	c.primed = true
}

func (c *AnalyticsCache) get(w domain.Watermark, key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.watermark != w {
		return nil, false
	}
	return c.entries.Get(key)
}

// add stores v unless a newer watermark was observed while it was computed.
func (c *AnalyticsCache) add(w domain.Watermark, key string, v any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.watermark != w {
		return
	}
	c.entries.Add(key, v)
}
