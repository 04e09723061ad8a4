package ratelimit

import "time"

// Limit is "Count actions per Window".
type Limit struct {
	Count  int64
	Window time.Duration
}

// PerHour is shorthand for an hourly window.
func PerHour(count int64) Limit {
	return Limit{Count: count, Window: time.Hour}
}
