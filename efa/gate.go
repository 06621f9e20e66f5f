package efa

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"
)

// transportGate owns admission control for the single outbound HTTP channel:
// a weighted semaphore bounds the number of in-flight requests, and a shared
// pacing lock spaces consecutive requests by a minimum interval. The acquire
// order is fixed: admission slot first, pacing second, so pacing waiters
// never hold capacity hostage.
type transportGate struct {
	slots       *semaphore.Weighted
	minInterval time.Duration

	mu   sync.Mutex
	last time.Time
}

func newTransportGate(maxConcurrent int, minInterval time.Duration) *transportGate {
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	return &transportGate{
		slots:       semaphore.NewWeighted(int64(maxConcurrent)),
		minInterval: minInterval,
	}
}

// acquire blocks until a request may go out. On success the caller owns one
// admission slot and must call release exactly once. Cancellation on any
// wait releases everything already held.
func (g *transportGate) acquire(ctx context.Context) error {
	if err := g.slots.Acquire(ctx, 1); err != nil {
		return err
	}
	if err := g.pace(ctx); err != nil {
		g.slots.Release(1)
		return err
	}
	return nil
}

func (g *transportGate) release() {
	g.slots.Release(1)
}

// pace holds the shared pacing lock while waiting out the remainder of the
// minimum inter-request interval. Holding the lock across the wait is what
// serializes the spacing between concurrent callers. A non-positive interval
// makes pacing a no-op.
func (g *transportGate) pace(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.minInterval <= 0 {
		g.last = time.Now()
		return nil
	}
	if wait := g.minInterval - time.Since(g.last); wait > 0 {
		timer := time.NewTimer(wait)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	g.last = time.Now()
	return nil
}
