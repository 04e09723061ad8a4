package domain

import "time"

// Preference holds a user's browsing filters. All fields are optional;
// EffectiveAgeWindow applies the defaults.
type Preference struct {
	UserID        int64     `json:"user_id" db:"user_id"`
	MinAge        *int      `json:"min_age" db:"min_age"`
	MaxAge        *int      `json:"max_age" db:"max_age"`
	MaxDistanceKm *int      `json:"max_distance_km" db:"max_distance_km"`
	ShowAdult     bool      `json:"show_adult" db:"show_adult"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

// EffectiveAgeWindow resolves the viewer's age filter: the explicit bound
// when set, otherwise the default. Adults default to 18-120, minors to
// 13-120.
func (p *Preference) EffectiveAgeWindow(viewerIsAdult bool) (minAge, maxAge int) {
	minAge = MinProfileAge
	if viewerIsAdult {
		minAge = AdultAge
	}
	maxAge = MaxProfileAge

	if p == nil {
		return minAge, maxAge
	}
	if p.MinAge != nil {
		minAge = *p.MinAge
	}
	if p.MaxAge != nil {
		maxAge = *p.MaxAge
	}
	if maxAge < minAge {
		maxAge = minAge
	}
	return minAge, maxAge
}

// Radius returns the search radius in km, or nil when no radius filter is set.
func (p *Preference) Radius() *int {
	if p == nil {
		return nil
	}
	return p.MaxDistanceKm
}
