package domain

import "time"

// Session is a server-side auth session referenced by the JWT "sid" claim.
type Session struct {
	ID        string    `json:"id" db:"id"`
	UserID    int64     `json:"user_id" db:"user_id"`
	ExpiresAt time.Time `json:"expires_at" db:"expires_at"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
