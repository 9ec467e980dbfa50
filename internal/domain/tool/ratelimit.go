package tool

import (
	"context"
	"sync"
	"time"
)

// RateLimiter bounds the frequency of outbound calls to an upstream
// system. Each rate-limited tool owns one instance; the last-call
// timestamp is guarded so concurrent invocations never exceed the
// configured rate over any window.
type RateLimiter struct {
	mu       sync.Mutex
	interval time.Duration
	last     time.Time

	// sleep is swapped in tests to observe spacing without waiting.
	sleep func(ctx context.Context, d time.Duration) error
}

// NewRateLimiter allows one call per interval.
func NewRateLimiter(interval time.Duration) *RateLimiter {
	return &RateLimiter{
		interval: interval,
		sleep:    sleepCtx,
	}
}

// Wait blocks until the next call is permitted, or until ctx is done.
// The reservation is taken before sleeping so concurrent callers queue
// up behind each other instead of racing for the same slot.
func (l *RateLimiter) Wait(ctx context.Context) error {
	if l == nil || l.interval <= 0 {
		return nil
	}

	l.mu.Lock()
	now := time.Now()
	next := l.last.Add(l.interval)
	if next.Before(now) {
		next = now
	}
	delay := next.Sub(now)
	l.last = next
	l.mu.Unlock()

	if delay <= 0 {
		return nil
	}
	return l.sleep(ctx, delay)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
