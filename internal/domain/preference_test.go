package domain

import "testing"

func intPtr(v int) *int { return &v }

func TestEffectiveAgeWindowDefaults(t *testing.T) {
	var p *Preference

	minAge, maxAge := p.EffectiveAgeWindow(true)
	if minAge != AdultAge || maxAge != MaxProfileAge {
		t.Errorf("adult defaults: got %d-%d, want %d-%d", minAge, maxAge, AdultAge, MaxProfileAge)
	}

	minAge, maxAge = p.EffectiveAgeWindow(false)
	if minAge != MinProfileAge || maxAge != MaxProfileAge {
		t.Errorf("minor defaults: got %d-%d, want %d-%d", minAge, maxAge, MinProfileAge, MaxProfileAge)
	}
}

func TestEffectiveAgeWindowExplicitMinBelowDefault(t *testing.T) {
	// An explicit minimum replaces the default even when it is lower.
	p := &Preference{MinAge: intPtr(16)}
	minAge, _ := p.EffectiveAgeWindow(true)
	if minAge != 16 {
		t.Errorf("got min %d, want 16", minAge)
	}
}

func TestEffectiveAgeWindowExplicit(t *testing.T) {
	p := &Preference{MinAge: intPtr(25), MaxAge: intPtr(35)}
	minAge, maxAge := p.EffectiveAgeWindow(true)
	if minAge != 25 || maxAge != 35 {
		t.Errorf("got %d-%d, want 25-35", minAge, maxAge)
	}
}

func TestEffectiveAgeWindowInverted(t *testing.T) {
	// A max below the resolved min collapses to an empty-ish single-age window.
	p := &Preference{MaxAge: intPtr(16)}
	minAge, maxAge := p.EffectiveAgeWindow(true)
	if maxAge < minAge {
		t.Errorf("window inverted: %d-%d", minAge, maxAge)
	}
}
