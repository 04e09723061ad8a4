package ratelimit

import (
	"context"
	"time"
)

// Key identifies one counter, e.g. "42:like" for a user/action pair.
type Key string

// Result is the outcome of a rate limit decision.
type Result struct {
	Allowed    bool
	Remaining  int64
	RetryAfter time.Duration // time until the current window resets
	Limit      int64
	Window     time.Duration
}

// CounterStore is the storage abstraction the fixed-window limiter counts on.
// Incr must be atomic per key: concurrent calls for the same key may not lose
// updates.
type CounterStore interface {
	// Incr increments the counter at key, starting a new window with ttl when
	// none is active, and returns the new count plus the active window's
	// reset time.
	Incr(ctx context.Context, key Key, ttl time.Duration) (count int64, resetAt time.Time, err error)
}

// FixedWindow enforces "limit actions per window" per key.
type FixedWindow struct {
	store  CounterStore
	limit  int64
	window time.Duration
	now    func() time.Time
}

func NewFixedWindow(store CounterStore, limit int64, window time.Duration) *FixedWindow {
	return &FixedWindow{
		store:  store,
		limit:  limit,
		window: window,
		now:    time.Now,
	}
}

// Allow records one attempt for key and decides whether it is within the
// window's limit.
func (l *FixedWindow) Allow(ctx context.Context, key Key) (Result, error) {
	count, resetAt, err := l.store.Incr(ctx, key, l.window)
	if err != nil {
		return Result{}, err
	}

	res := Result{
		Allowed:   count <= l.limit,
		Remaining: l.limit - count,
		Limit:     l.limit,
		Window:    l.window,
	}
	if res.Remaining < 0 {
		res.Remaining = 0
	}
	if !res.Allowed {
		res.RetryAfter = resetAt.Sub(l.now())
		if res.RetryAfter < 0 {
			res.RetryAfter = 0
		}
	}
	return res, nil
}
