package ratelimit

import (
	"context"
	"fmt"

	"github.com/lumatch/lumatch-backend/internal/domain"
)

// Action is an action kind gated by its own independent window.
type Action string

const (
	ActionLike   Action = "like"
	ActionSkip   Action = "skip"
	ActionReport Action = "report"
	ActionPhoto  Action = "photo"
)

// ActionLimiter gates user actions, one fixed window per action kind.
type ActionLimiter struct {
	limiters map[Action]*FixedWindow
}

// NewActionLimiter builds one limiter per configured action over a shared
// counter store.
func NewActionLimiter(store CounterStore, limits map[Action]Limit) *ActionLimiter {
	limiters := make(map[Action]*FixedWindow, len(limits))
	for action, l := range limits {
		limiters[action] = NewFixedWindow(store, l.Count, l.Window)
	}
	return &ActionLimiter{limiters: limiters}
}

// Check records one attempt of action for userID. A disallowed attempt comes
// back as *domain.RateLimitedError with the remaining wait; unknown actions
// pass unthrottled.
func (a *ActionLimiter) Check(ctx context.Context, userID int64, action Action) error {
	limiter, ok := a.limiters[action]
	if !ok {
		return nil
	}

	key := Key(fmt.Sprintf("%d:%s", userID, action))
	res, err := limiter.Allow(ctx, key)
	if err != nil {
		return fmt.Errorf("rate check %s: %w", action, err)
	}
	if !res.Allowed {
		return &domain.RateLimitedError{Action: string(action), RetryAfter: res.RetryAfter}
	}
	return nil
}
