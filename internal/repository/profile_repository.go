package repository

import (
	"context"

	"github.com/lumatch/lumatch-backend/internal/domain"
)

// CandidateFilter bounds the working set the matching engine ranks. The fetch
// is recency-ordered and capped; it is not a strict top-K over all profiles.
type CandidateFilter struct {
	MinAge int
	MaxAge int
	Limit  int
}

type ProfileRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Profile, error)
	GetByUserID(ctx context.Context, userID int64) (*domain.Profile, error)
	// Upsert creates or replaces the profile owned by profile.UserID,
	// audiences included.
	Upsert(ctx context.Context, profile *domain.Profile) error
	// ListCandidates returns visible, non-suspended, non-shadowbanned
	// profiles within the age window, most recently updated first.
	ListCandidates(ctx context.Context, filter CandidateFilter) ([]*domain.Profile, error)
	UpdateLocation(ctx context.Context, userID int64, lat, lon *float64, city *string) error
	SetSuspended(ctx context.Context, profileID int64, suspended bool) error
	SetShadowbanned(ctx context.Context, profileID int64, shadowbanned bool) error
	DeleteByUserID(ctx context.Context, userID int64) error
}
