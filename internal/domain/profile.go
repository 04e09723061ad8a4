package domain

import (
	"math"
	"time"
)

const (
	MinProfileAge = 13
	MaxProfileAge = 120
	AdultAge      = 18

	MaxDisplayNameLen = 40
	MaxBioSeekLen     = 500
	MaxTagsPerProfile = 10
)

type Profile struct {
	ID           int64       `json:"id" db:"id"`
	UserID       int64       `json:"user_id" db:"user_id"`
	DisplayName  string      `json:"display_name" db:"display_name"`
	Age          int         `json:"age" db:"age"`
	Identity     Identity    `json:"identity" db:"identity"`
	Audiences    AudienceSet `json:"audiences" db:"-"`
	BioSeek      *string     `json:"bio_seek" db:"bio_seek"`
	Visible      bool        `json:"visible" db:"visible"`
	IsAdult      bool        `json:"is_adult" db:"is_adult"`
	Suspended    bool        `json:"-" db:"suspended"`
	Shadowbanned bool        `json:"-" db:"shadowbanned"`
	LocationLat  *float64    `json:"location_lat" db:"location_lat"`
	LocationLon  *float64    `json:"location_lon" db:"location_lon"`
	City         *string     `json:"city" db:"city"`
	CreatedAt    time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at" db:"updated_at"`
}

// Complete reports whether the profile carries every field browsing requires.
func (p *Profile) Complete() bool {
	return p.DisplayName != "" &&
		p.Age >= MinProfileAge && p.Age <= MaxProfileAge &&
		p.Identity.Valid() &&
		len(p.Audiences) > 0
}

// HasLocation reports whether both coordinates are set.
func (p *Profile) HasLocation() bool {
	return p.LocationLat != nil && p.LocationLon != nil
}

// RoundCoordinate quantizes a coordinate to two decimal places (~1.1 km),
// the precision profiles store for privacy.
func RoundCoordinate(v float64) float64 {
	return math.Round(v*100) / 100
}
