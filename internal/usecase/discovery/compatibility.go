package discovery

import "github.com/lumatch/lumatch-backend/internal/domain"

// Viewer is everything about the browsing user the engine loads once per
// queue build: profile, exclusion sets, resolved age window and radius.
type Viewer struct {
	Profile  *domain.Profile
	Liked    map[int64]struct{} // user ids already liked
	Reported map[int64]struct{} // user ids already reported
	MinAge   int
	MaxAge   int
	RadiusKm *int
	TagSlugs []string
}

// Compatible decides mutual eligibility between the viewer and a candidate.
// The audience check is symmetric by construction: each side's declared
// audiences must include (or wildcard) the other side's identity category.
func Compatible(v *Viewer, cand *domain.Profile) bool {
	if cand.UserID == v.Profile.UserID {
		return false
	}
	if _, ok := v.Liked[cand.UserID]; ok {
		return false
	}
	if _, ok := v.Reported[cand.UserID]; ok {
		return false
	}

	if !cand.Identity.Valid() || len(cand.Audiences) == 0 {
		return false
	}
	iWantThem := v.Profile.Audiences.Accepts(cand.Identity.AudienceCategory())
	theyWantMe := cand.Audiences.Accepts(v.Profile.Identity.AudienceCategory())
	if !iWantThem || !theyWantMe {
		return false
	}

	if cand.Age < v.MinAge || cand.Age > v.MaxAge {
		return false
	}
	if !cand.Visible || cand.Suspended || cand.Shadowbanned {
		return false
	}

	// Radius applies only when both sides share their location.
	if v.RadiusKm != nil && v.Profile.HasLocation() && cand.HasLocation() {
		dist := Haversine(*v.Profile.LocationLat, *v.Profile.LocationLon, *cand.LocationLat, *cand.LocationLon)
		if dist > float64(*v.RadiusKm) {
			return false
		}
	}

	return true
}

// DistanceTo returns the viewer-candidate distance in km, or nil when either
// side has no location.
func (v *Viewer) DistanceTo(cand *domain.Profile) *float64 {
	if !v.Profile.HasLocation() || !cand.HasLocation() {
		return nil
	}
	d := Haversine(*v.Profile.LocationLat, *v.Profile.LocationLon, *cand.LocationLat, *cand.LocationLon)
	return &d
}
