package discovery

import (
	"time"

	"github.com/lumatch/lumatch-backend/internal/domain"
)

// Score ranks one candidate against the viewer. Ordering is lexicographic:
// tag overlap descending, distance ascending (unknown sorts last), profile
// recency descending. Deterministic given fixed inputs.
type Score struct {
	TagOverlap int
	DistanceKm *float64
	UpdatedAt  time.Time
}

// ScoreCandidate computes the ranking inputs for one candidate.
func ScoreCandidate(v *Viewer, cand *domain.Profile, candTags []string) Score {
	overlap := 0
	if len(v.TagSlugs) > 0 && len(candTags) > 0 {
		mine := make(map[string]struct{}, len(v.TagSlugs))
		for _, slug := range v.TagSlugs {
			mine[slug] = struct{}{}
		}
		for _, slug := range candTags {
			if _, ok := mine[slug]; ok {
				overlap++
			}
		}
	}
	return Score{
		TagOverlap: overlap,
		DistanceKm: v.DistanceTo(cand),
		UpdatedAt:  cand.UpdatedAt,
	}
}

// Better reports whether a ranks strictly ahead of b.
func (a Score) Better(b Score) bool {
	if a.TagOverlap != b.TagOverlap {
		return a.TagOverlap > b.TagOverlap
	}
	switch {
	case a.DistanceKm == nil && b.DistanceKm != nil:
		return false
	case a.DistanceKm != nil && b.DistanceKm == nil:
		return true
	case a.DistanceKm != nil && b.DistanceKm != nil && *a.DistanceKm != *b.DistanceKm:
		return *a.DistanceKm < *b.DistanceKm
	}
	return a.UpdatedAt.After(b.UpdatedAt)
}
