package prefs

import (
	"context"
	"errors"
	"fmt"

	"github.com/lumatch/lumatch-backend/internal/domain"
	"github.com/lumatch/lumatch-backend/internal/repository"
)

type PrefsUseCase struct {
	prefRepo    repository.PreferenceRepository
	profileRepo repository.ProfileRepository
}

func NewPrefsUseCase(prefRepo repository.PreferenceRepository, profileRepo repository.ProfileRepository) *PrefsUseCase {
	return &PrefsUseCase{prefRepo: prefRepo, profileRepo: profileRepo}
}

// Settings is the resolved view of a user's browsing filters, defaults applied.
type Settings struct {
	MinAge        int  `json:"min_age"`
	MaxAge        int  `json:"max_age"`
	MaxDistanceKm *int `json:"max_distance_km"`
	ShowAdult     bool `json:"show_adult"`
	Explicit      bool `json:"explicit"` // false when showing pure defaults
}

func (uc *PrefsUseCase) Get(ctx context.Context, userID int64) (*Settings, error) {
	isAdult := true
	if profile, err := uc.profileRepo.GetByUserID(ctx, userID); err == nil {
		isAdult = profile.IsAdult
	}

	pref, err := uc.prefRepo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrPreferenceNotFound) {
			minAge, maxAge := (*domain.Preference)(nil).EffectiveAgeWindow(isAdult)
			return &Settings{MinAge: minAge, MaxAge: maxAge}, nil
		}
		return nil, err
	}

	minAge, maxAge := pref.EffectiveAgeWindow(isAdult)
	return &Settings{
		MinAge:        minAge,
		MaxAge:        maxAge,
		MaxDistanceKm: pref.MaxDistanceKm,
		ShowAdult:     pref.ShowAdult,
		Explicit:      true,
	}, nil
}

// UpdateRequest carries the filters to persist; absent fields clear back to
// defaults.
type UpdateRequest struct {
	MinAge        *int `json:"min_age" binding:"omitempty,min=13,max=120"`
	MaxAge        *int `json:"max_age" binding:"omitempty,min=13,max=120"`
	MaxDistanceKm *int `json:"max_distance_km" binding:"omitempty,min=1,max=20000"`
	ShowAdult     bool `json:"show_adult"`
}

func (uc *PrefsUseCase) Update(ctx context.Context, userID int64, req *UpdateRequest) (*domain.Preference, error) {
	if req.MinAge != nil && req.MaxAge != nil && *req.MinAge > *req.MaxAge {
		return nil, fmt.Errorf("%w: min_age above max_age", domain.ErrInvalidInput)
	}

	pref := &domain.Preference{
		UserID:        userID,
		MinAge:        req.MinAge,
		MaxAge:        req.MaxAge,
		MaxDistanceKm: req.MaxDistanceKm,
		ShowAdult:     req.ShowAdult,
	}
	if err := uc.prefRepo.Upsert(ctx, pref); err != nil {
		return nil, fmt.Errorf("save preferences: %w", err)
	}
	return pref, nil
}

// Reset drops the stored preference; browsing falls back to the defaults.
func (uc *PrefsUseCase) Reset(ctx context.Context, userID int64) error {
	return uc.prefRepo.Delete(ctx, userID)
}
