package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrProfileNotFound    = errors.New("profile not found")
	ErrPreferenceNotFound = errors.New("preference not found")
	ErrSessionNotFound    = errors.New("session not found")

	// ErrProfileIncomplete means the viewer cannot browse yet: the profile is
	// missing name, age, identity or audiences. Distinct from an empty queue.
	ErrProfileIncomplete = errors.New("profile incomplete")

	// ErrNoActiveSession means a browse action arrived without a prior start.
	ErrNoActiveSession = errors.New("no active browse session")

	ErrCannotLikeSelf = errors.New("cannot like own profile")
	ErrInvalidInput   = errors.New("invalid input")

	// ErrTextRejected means profile free text failed moderation.
	ErrTextRejected = errors.New("text rejected by moderation")
)

// RateLimitedError is returned when an action exceeds its windowed limit.
// Not fatal: callers should present the wait time.
type RateLimitedError struct {
	Action     string
	RetryAfter time.Duration
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("rate limited: %s, retry in %s", e.Action, e.RetryAfter)
}

// Minutes returns the remaining wait rounded up to whole minutes, never < 1.
func (e *RateLimitedError) Minutes() int {
	m := int((e.RetryAfter + time.Minute - 1) / time.Minute)
	if m < 1 {
		m = 1
	}
	return m
}
