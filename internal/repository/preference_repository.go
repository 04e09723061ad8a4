package repository

import (
	"context"

	"github.com/lumatch/lumatch-backend/internal/domain"
)

type PreferenceRepository interface {
	// Get returns domain.ErrPreferenceNotFound when the user never saved one;
	// callers fall back to the defaults.
	Get(ctx context.Context, userID int64) (*domain.Preference, error)
	Upsert(ctx context.Context, pref *domain.Preference) error
	Delete(ctx context.Context, userID int64) error
}
