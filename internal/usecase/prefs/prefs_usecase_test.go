package prefs

import (
	"context"
	"errors"
	"testing"

	"github.com/lumatch/lumatch-backend/internal/domain"
	"github.com/lumatch/lumatch-backend/internal/repository"
)

type memPrefs struct {
	byUserID map[int64]*domain.Preference
}

func (m *memPrefs) Get(_ context.Context, userID int64) (*domain.Preference, error) {
	if p, ok := m.byUserID[userID]; ok {
		return p, nil
	}
	return nil, domain.ErrPreferenceNotFound
}

func (m *memPrefs) Upsert(_ context.Context, p *domain.Preference) error {
	m.byUserID[p.UserID] = p
	return nil
}

func (m *memPrefs) Delete(_ context.Context, userID int64) error {
	delete(m.byUserID, userID)
	return nil
}

type profileStub struct {
	profile *domain.Profile
}

func (s *profileStub) GetByID(_ context.Context, _ int64) (*domain.Profile, error) {
	return nil, domain.ErrProfileNotFound
}

func (s *profileStub) GetByUserID(_ context.Context, _ int64) (*domain.Profile, error) {
	if s.profile == nil {
		return nil, domain.ErrProfileNotFound
	}
	return s.profile, nil
}

func (s *profileStub) Upsert(_ context.Context, _ *domain.Profile) error { return nil }
func (s *profileStub) ListCandidates(_ context.Context, _ repository.CandidateFilter) ([]*domain.Profile, error) {
	return nil, nil
}
func (s *profileStub) UpdateLocation(_ context.Context, _ int64, _, _ *float64, _ *string) error {
	return nil
}
func (s *profileStub) SetSuspended(_ context.Context, _ int64, _ bool) error    { return nil }
func (s *profileStub) SetShadowbanned(_ context.Context, _ int64, _ bool) error { return nil }
func (s *profileStub) DeleteByUserID(_ context.Context, _ int64) error          { return nil }

func intPtr(v int) *int { return &v }

func newTestUseCase(profile *domain.Profile) (*PrefsUseCase, *memPrefs) {
	prefs := &memPrefs{byUserID: make(map[int64]*domain.Preference)}
	return NewPrefsUseCase(prefs, &profileStub{profile: profile}), prefs
}

func TestGetDefaultsForAdult(t *testing.T) {
	uc, _ := newTestUseCase(&domain.Profile{UserID: 42, IsAdult: true})

	s, err := uc.Get(context.Background(), 42)
	if err != nil {
		t.Fatal(err)
	}
	if s.Explicit {
		t.Error("defaults reported as explicit")
	}
	if s.MinAge != domain.AdultAge || s.MaxAge != domain.MaxProfileAge {
		t.Errorf("window %d-%d, want %d-%d", s.MinAge, s.MaxAge, domain.AdultAge, domain.MaxProfileAge)
	}
	if s.MaxDistanceKm != nil {
		t.Error("default has a distance filter")
	}
}

func TestGetDefaultsForMinor(t *testing.T) {
	uc, _ := newTestUseCase(&domain.Profile{UserID: 42, IsAdult: false})

	s, err := uc.Get(context.Background(), 42)
	if err != nil {
		t.Fatal(err)
	}
	if s.MinAge != domain.MinProfileAge {
		t.Errorf("min age %d, want %d", s.MinAge, domain.MinProfileAge)
	}
}

func TestUpdateAndGet(t *testing.T) {
	uc, stored := newTestUseCase(&domain.Profile{UserID: 42, IsAdult: true})

	_, err := uc.Update(context.Background(), 42, &UpdateRequest{
		MinAge:        intPtr(25),
		MaxAge:        intPtr(35),
		MaxDistanceKm: intPtr(50),
	})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := stored.byUserID[42]; !ok {
		t.Fatal("preference not persisted")
	}

	s, err := uc.Get(context.Background(), 42)
	if err != nil {
		t.Fatal(err)
	}
	if !s.Explicit {
		t.Error("saved preference reported as defaults")
	}
	if s.MinAge != 25 || s.MaxAge != 35 {
		t.Errorf("window %d-%d, want 25-35", s.MinAge, s.MaxAge)
	}
	if s.MaxDistanceKm == nil || *s.MaxDistanceKm != 50 {
		t.Errorf("distance %v, want 50", s.MaxDistanceKm)
	}
}

func TestUpdateRejectsInvertedWindow(t *testing.T) {
	uc, _ := newTestUseCase(&domain.Profile{UserID: 42, IsAdult: true})

	_, err := uc.Update(context.Background(), 42, &UpdateRequest{
		MinAge: intPtr(40),
		MaxAge: intPtr(30),
	})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("got %v, want ErrInvalidInput", err)
	}
}

func TestReset(t *testing.T) {
	uc, stored := newTestUseCase(&domain.Profile{UserID: 42, IsAdult: true})

	if _, err := uc.Update(context.Background(), 42, &UpdateRequest{MinAge: intPtr(30)}); err != nil {
		t.Fatal(err)
	}
	if err := uc.Reset(context.Background(), 42); err != nil {
		t.Fatal(err)
	}
	if len(stored.byUserID) != 0 {
		t.Error("preference survived reset")
	}

	s, err := uc.Get(context.Background(), 42)
	if err != nil {
		t.Fatal(err)
	}
	if s.Explicit || s.MinAge != domain.AdultAge {
		t.Errorf("post-reset settings %+v, want defaults", s)
	}
}
