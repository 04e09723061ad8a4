package discovery

import (
	"testing"
	"time"
)

func TestScoreCandidateTagOverlap(t *testing.T) {
	v := testViewer()
	v.TagSlugs = []string{"hiking", "jazz", "cooking"}

	c := testCandidate()
	s := ScoreCandidate(v, c, []string{"jazz", "cooking", "running"})
	if s.TagOverlap != 2 {
		t.Errorf("overlap %d, want 2", s.TagOverlap)
	}

	s = ScoreCandidate(v, c, nil)
	if s.TagOverlap != 0 {
		t.Errorf("overlap with no candidate tags %d, want 0", s.TagOverlap)
	}
}

func TestScoreBetterOrdering(t *testing.T) {
	now := time.Now()
	cases := []struct {
		name string
		a, b Score
		want bool
	}{
		{
			"more overlap wins",
			Score{TagOverlap: 3, UpdatedAt: now},
			Score{TagOverlap: 1, DistanceKm: floatPtr(0.5), UpdatedAt: now},
			true,
		},
		{
			"closer wins at equal overlap",
			Score{TagOverlap: 1, DistanceKm: floatPtr(2), UpdatedAt: now},
			Score{TagOverlap: 1, DistanceKm: floatPtr(50), UpdatedAt: now},
			true,
		},
		{
			"known distance beats unknown",
			Score{DistanceKm: floatPtr(500), UpdatedAt: now},
			Score{DistanceKm: nil, UpdatedAt: now},
			true,
		},
		{
			"unknown distance loses to known",
			Score{DistanceKm: nil, UpdatedAt: now},
			Score{DistanceKm: floatPtr(500), UpdatedAt: now},
			false,
		},
		{
			"fresher wins as tiebreak",
			Score{UpdatedAt: now},
			Score{UpdatedAt: now.Add(-time.Hour)},
			true,
		},
		{
			"equal scores are not better",
			Score{UpdatedAt: now},
			Score{UpdatedAt: now},
			false,
		},
	}
	for _, c := range cases {
		if got := c.a.Better(c.b); got != c.want {
			t.Errorf("%s: Better = %v, want %v", c.name, got, c.want)
		}
	}
}
