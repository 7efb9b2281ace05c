package risk

import (
	"sync"
	"time"
)

// DedupeTTL is how long an alert key suppresses repeats.
const DedupeTTL = 24 * time.Hour

// DedupeCache suppresses duplicate same-day alerts of the same kind.
// Entries expire after the TTL. Safe for concurrent use; the 5-minute
// and 15-minute jobs both consult it.
type DedupeCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]time.Time
}

// NewDedupeCache creates a cache with the given TTL; a non-positive TTL
// falls back to DedupeTTL.
func NewDedupeCache(ttl time.Duration) *DedupeCache {
	if ttl <= 0 {
		ttl = DedupeTTL
	}
	return &DedupeCache{
		ttl:     ttl,
		entries: make(map[string]time.Time),
	}
}

// MarkOnce records the key and reports whether this was its first
// unexpired occurrence.
func (c *DedupeCache) MarkOnce(key string, now time.Time) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.sweep(now)

	if at, ok := c.entries[key]; ok && now.Sub(at) < c.ttl {
		return false
	}
	c.entries[key] = now
	return true
}

// sweep drops expired entries; callers hold the lock.
func (c *DedupeCache) sweep(now time.Time) {
	for key, at := range c.entries {
		if now.Sub(at) >= c.ttl {
			delete(c.entries, key)
		}
	}
}
