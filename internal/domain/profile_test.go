package domain

import "testing"

func TestProfileComplete(t *testing.T) {
	base := Profile{
		DisplayName: "Sam",
		Age:         24,
		Identity:    IdentityNonbinary,
		Audiences:   AudienceSet{AudienceAny},
	}
	if !base.Complete() {
		t.Fatal("complete profile reported incomplete")
	}

	cases := []struct {
		name   string
		mutate func(*Profile)
	}{
		{"no name", func(p *Profile) { p.DisplayName = "" }},
		{"under min age", func(p *Profile) { p.Age = 12 }},
		{"over max age", func(p *Profile) { p.Age = 121 }},
		{"bad identity", func(p *Profile) { p.Identity = "unknown" }},
		{"no audiences", func(p *Profile) { p.Audiences = nil }},
	}
	for _, c := range cases {
		p := base
		c.mutate(&p)
		if p.Complete() {
			t.Errorf("%s: reported complete", c.name)
		}
	}
}

func TestRoundCoordinate(t *testing.T) {
	cases := []struct {
		in, want float64
	}{
		{52.5244, 52.52},
		{13.4105, 13.41},
		{-73.9857, -73.99},
		{0, 0},
	}
	for _, c := range cases {
		if got := RoundCoordinate(c.in); got != c.want {
			t.Errorf("RoundCoordinate(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}
