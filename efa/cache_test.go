package efa

import (
	"sync"
	"testing"
	"time"
)

// fakeClock is a manually advanced clock for cache and client tests.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 5, 17, 8, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestCacheGetPut(t *testing.T) {
	clock := newFakeClock()
	cache := newResponseCache(clock)
	payload := &rawResponse{}

	if _, ok := cache.get("k"); ok {
		t.Fatalf("empty cache must miss")
	}
	cache.put("k", payload, 10*time.Second)
	got, ok := cache.get("k")
	if !ok || got != payload {
		t.Fatalf("expected cached payload back")
	}
}

func TestCacheExpiryIsLazy(t *testing.T) {
	clock := newFakeClock()
	cache := newResponseCache(clock)
	cache.put("k", &rawResponse{}, 10*time.Second)

	clock.Advance(10 * time.Second)
	if _, ok := cache.get("k"); ok {
		t.Fatalf("entry at its expiry instant must be stale")
	}
	if cache.len() != 0 {
		t.Errorf("stale entry must be evicted on lookup")
	}
}

func TestCacheZeroTTLBypasses(t *testing.T) {
	clock := newFakeClock()
	cache := newResponseCache(clock)
	cache.put("k", &rawResponse{}, 0)
	cache.put("k2", &rawResponse{}, -time.Second)
	if cache.len() != 0 {
		t.Errorf("non-positive ttl must not store anything")
	}
}

func TestCacheConcurrentAccess(t *testing.T) {
	clock := newFakeClock()
	cache := newResponseCache(clock)
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				cache.put("shared", &rawResponse{}, time.Minute)
				cache.get("shared")
			}
		}()
	}
	wg.Wait()
	if _, ok := cache.get("shared"); !ok {
		t.Errorf("expected entry to survive concurrent writes")
	}
}

func TestDefaultTTLOrdering(t *testing.T) {
	// Stops change slowest, departure boards fastest.
	if DefaultStopCacheTTL < DefaultTripCacheTTL || DefaultTripCacheTTL < DefaultDepartureCacheTTL {
		t.Errorf("default TTLs out of order: stops %v, trips %v, departures %v",
			DefaultStopCacheTTL, DefaultTripCacheTTL, DefaultDepartureCacheTTL)
	}
}
