package efa

import (
	"sync"
	"time"
)

// Clock abstracts wall-clock reads so cache expiry and request pacing are
// testable without sleeping.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

type cacheEntry struct {
	payload   *rawResponse
	expiresAt time.Time
}

// responseCache memoizes decoded payloads per cache key. Entries expire at
// an absolute instant and are evicted lazily on the next lookup for the same
// key; there is no background eviction. All access is serialized through one
// mutex, held only for the map operation, never across network I/O.
type responseCache struct {
	mu      sync.Mutex
	clock   Clock
	entries map[string]cacheEntry
}

func newResponseCache(clock Clock) *responseCache {
	return &responseCache{clock: clock, entries: map[string]cacheEntry{}}
}

// get returns the cached payload if its expiry is strictly in the future.
// A stale entry is removed and reported absent.
func (c *responseCache) get(key string) (*rawResponse, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if !c.clock.Now().Before(entry.expiresAt) {
		delete(c.entries, key)
		return nil, false
	}
	return entry.payload, true
}

// put stores the payload with expiry now+ttl. A ttl of zero or less means
// "do not cache" and is a no-op.
func (c *responseCache) put(key string, payload *rawResponse, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{payload: payload, expiresAt: c.clock.Now().Add(ttl)}
}

func (c *responseCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
