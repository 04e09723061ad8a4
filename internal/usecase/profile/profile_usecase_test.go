package profile

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/lumatch/lumatch-backend/internal/domain"
	"github.com/lumatch/lumatch-backend/internal/repository"
)

type memProfiles struct {
	byUserID map[int64]*domain.Profile
}

func (m *memProfiles) GetByID(_ context.Context, id int64) (*domain.Profile, error) {
	for _, p := range m.byUserID {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, domain.ErrProfileNotFound
}

func (m *memProfiles) GetByUserID(_ context.Context, userID int64) (*domain.Profile, error) {
	if p, ok := m.byUserID[userID]; ok {
		return p, nil
	}
	return nil, domain.ErrProfileNotFound
}

func (m *memProfiles) Upsert(_ context.Context, p *domain.Profile) error {
	if p.ID == 0 {
		p.ID = int64(len(m.byUserID) + 1)
	}
	m.byUserID[p.UserID] = p
	return nil
}

func (m *memProfiles) ListCandidates(_ context.Context, _ repository.CandidateFilter) ([]*domain.Profile, error) {
	return nil, nil
}

func (m *memProfiles) UpdateLocation(_ context.Context, userID int64, lat, lon *float64, city *string) error {
	p, ok := m.byUserID[userID]
	if !ok {
		return domain.ErrProfileNotFound
	}
	p.LocationLat, p.LocationLon, p.City = lat, lon, city
	return nil
}

func (m *memProfiles) SetSuspended(_ context.Context, _ int64, _ bool) error    { return nil }
func (m *memProfiles) SetShadowbanned(_ context.Context, _ int64, _ bool) error { return nil }

func (m *memProfiles) DeleteByUserID(_ context.Context, userID int64) error {
	delete(m.byUserID, userID)
	return nil
}

type memTags struct {
	byProfileID map[int64][]string
}

func (m *memTags) ReplaceProfileTags(_ context.Context, id int64, slugs []string) error {
	m.byProfileID[id] = slugs
	return nil
}
func (m *memTags) GetProfileTagSlugs(_ context.Context, id int64) ([]string, error) {
	return m.byProfileID[id], nil
}
func (m *memTags) GetTagSlugsForProfiles(_ context.Context, _ []int64) (map[int64][]string, error) {
	return nil, nil
}
func (m *memTags) DeleteAllForProfile(_ context.Context, id int64) error {
	delete(m.byProfileID, id)
	return nil
}

// deleteRecorder implements the remaining repositories and records cascade
// calls made by DeleteAccount.
type deleteRecorder struct {
	calls []string
}

func (d *deleteRecorder) record(name string) { d.calls = append(d.calls, name) }

func (d *deleteRecorder) Upsert(_ context.Context, _, _ int64) error            { return nil }
func (d *deleteRecorder) Exists(_ context.Context, _, _ int64) (bool, error)    { return false, nil }
func (d *deleteRecorder) ListLikedUserIDs(_ context.Context, _ int64) ([]int64, error) {
	return nil, nil
}
func (d *deleteRecorder) DeleteAllForUser(_ context.Context, _ int64) error {
	d.record("likes")
	return nil
}

type reportRecorder struct{ *deleteRecorder }

func (d reportRecorder) Create(_ context.Context, _ *domain.Report) error { return nil }
func (d reportRecorder) ListReportedUserIDs(_ context.Context, _ int64) ([]int64, error) {
	return nil, nil
}
func (d reportRecorder) DeleteAllForUser(_ context.Context, _ int64) error {
	d.record("reports")
	return nil
}

type prefRecorder struct{ *deleteRecorder }

func (d prefRecorder) Get(_ context.Context, _ int64) (*domain.Preference, error) {
	return nil, domain.ErrPreferenceNotFound
}
func (d prefRecorder) Upsert(_ context.Context, _ *domain.Preference) error { return nil }
func (d prefRecorder) Delete(_ context.Context, _ int64) error {
	d.record("prefs")
	return nil
}

type userRecorder struct{ *deleteRecorder }

func (d userRecorder) GetByID(_ context.Context, id int64) (*domain.User, error) {
	return &domain.User{ID: id}, nil
}
func (d userRecorder) Upsert(_ context.Context, _ *domain.User) error { return nil }
func (d userRecorder) Delete(_ context.Context, _ int64) error {
	d.record("user")
	return nil
}

type sessionRecorder struct{ *deleteRecorder }

func (d sessionRecorder) Create(_ context.Context, _ *domain.Session) error { return nil }
func (d sessionRecorder) GetByID(_ context.Context, _ string) (*domain.Session, error) {
	return nil, domain.ErrSessionNotFound
}
func (d sessionRecorder) Delete(_ context.Context, _ string) error { return nil }
func (d sessionRecorder) DeleteAllForUser(_ context.Context, _ int64) error {
	d.record("sessions")
	return nil
}

type stubModerator struct {
	verdict *ModerationVerdict
	err     error
}

func (s *stubModerator) ModerateText(_ context.Context, _ string) (*ModerationVerdict, error) {
	return s.verdict, s.err
}

func newTestUseCase(moderator Moderator) (*ProfileUseCase, *memProfiles, *memTags, *deleteRecorder) {
	profiles := &memProfiles{byUserID: make(map[int64]*domain.Profile)}
	tags := &memTags{byProfileID: make(map[int64][]string)}
	rec := &deleteRecorder{}
	uc := NewProfileUseCase(
		profiles, tags, rec, reportRecorder{rec}, prefRecorder{rec},
		userRecorder{rec}, sessionRecorder{rec}, moderator, zap.NewNop(),
	)
	return uc, profiles, tags, rec
}

func validRequest() *SaveProfileRequest {
	return &SaveProfileRequest{
		DisplayName: "Sam",
		Age:         25,
		Identity:    "nonbinary",
		Audiences:   []string{"any"},
	}
}

func TestSaveProfile(t *testing.T) {
	uc, profiles, _, _ := newTestUseCase(nil)

	p, err := uc.SaveProfile(context.Background(), 42, validRequest())
	if err != nil {
		t.Fatal(err)
	}
	if !p.Complete() {
		t.Error("saved profile incomplete")
	}
	if !p.IsAdult {
		t.Error("25-year-old not marked adult")
	}
	if !p.Visible {
		t.Error("new profile not visible")
	}
	if _, ok := profiles.byUserID[42]; !ok {
		t.Error("profile not persisted")
	}

	minor := validRequest()
	minor.Age = 16
	p, err = uc.SaveProfile(context.Background(), 43, minor)
	if err != nil {
		t.Fatal(err)
	}
	if p.IsAdult {
		t.Error("16-year-old marked adult")
	}
}

func TestSaveProfileRejectsUnknownEnums(t *testing.T) {
	uc, _, _, _ := newTestUseCase(nil)

	req := validRequest()
	req.Identity = "martian"
	if _, err := uc.SaveProfile(context.Background(), 42, req); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("bad identity: got %v, want ErrInvalidInput", err)
	}

	req = validRequest()
	req.Audiences = []string{"martians"}
	if _, err := uc.SaveProfile(context.Background(), 42, req); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("bad audience: got %v, want ErrInvalidInput", err)
	}
}

func TestSaveProfileModeration(t *testing.T) {
	bio := "buy my crypto course"

	flagging := &stubModerator{verdict: &ModerationVerdict{Flagged: true, Reason: "scam"}}
	uc, profiles, _, _ := newTestUseCase(flagging)
	req := validRequest()
	req.BioSeek = &bio
	if _, err := uc.SaveProfile(context.Background(), 42, req); !errors.Is(err, domain.ErrTextRejected) {
		t.Fatalf("got %v, want ErrTextRejected", err)
	}
	if len(profiles.byUserID) != 0 {
		t.Error("rejected profile was persisted")
	}

	// A moderation outage never blocks the save.
	broken := &stubModerator{err: errors.New("upstream down")}
	uc, profiles, _, _ = newTestUseCase(broken)
	req = validRequest()
	req.BioSeek = &bio
	if _, err := uc.SaveProfile(context.Background(), 42, req); err != nil {
		t.Fatalf("moderation outage blocked save: %v", err)
	}
	if len(profiles.byUserID) != 1 {
		t.Error("profile not persisted during outage")
	}
}

func TestSetTags(t *testing.T) {
	uc, _, tags, _ := newTestUseCase(nil)
	if _, err := uc.SaveProfile(context.Background(), 42, validRequest()); err != nil {
		t.Fatal(err)
	}

	slugs, err := uc.SetTags(context.Background(), 42, &SetTagsRequest{
		Tags: []string{"Board Games", "board games", "  Jazz  ", "!!!"},
	})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"board-games", "jazz"}
	if len(slugs) != len(want) {
		t.Fatalf("slugs %v, want %v", slugs, want)
	}
	for i := range want {
		if slugs[i] != want[i] {
			t.Fatalf("slugs %v, want %v", slugs, want)
		}
	}

	stored := tags.byProfileID[1]
	if len(stored) != 2 {
		t.Errorf("stored %v, want 2 slugs", stored)
	}
}

func TestSetTagsCap(t *testing.T) {
	uc, _, _, _ := newTestUseCase(nil)
	if _, err := uc.SaveProfile(context.Background(), 42, validRequest()); err != nil {
		t.Fatal(err)
	}

	labels := []string{"a1", "a2", "a3", "a4", "a5", "a6", "a7", "a8", "a9", "a10", "a11", "a12"}
	slugs, err := uc.SetTags(context.Background(), 42, &SetTagsRequest{Tags: labels})
	if err != nil {
		t.Fatal(err)
	}
	if len(slugs) != domain.MaxTagsPerProfile {
		t.Errorf("kept %d tags, want %d", len(slugs), domain.MaxTagsPerProfile)
	}
}

func TestSetLocationQuantizes(t *testing.T) {
	uc, profiles, _, _ := newTestUseCase(nil)
	if _, err := uc.SaveProfile(context.Background(), 42, validRequest()); err != nil {
		t.Fatal(err)
	}

	err := uc.SetLocation(context.Background(), 42, &SetLocationRequest{Lat: 52.5244, Lon: 13.4105})
	if err != nil {
		t.Fatal(err)
	}
	p := profiles.byUserID[42]
	if *p.LocationLat != 52.52 || *p.LocationLon != 13.41 {
		t.Errorf("stored %v,%v, want 52.52,13.41", *p.LocationLat, *p.LocationLon)
	}

	if err := uc.ClearLocation(context.Background(), 42); err != nil {
		t.Fatal(err)
	}
	if p.HasLocation() {
		t.Error("location survived clear")
	}
}

func TestDeleteAccountCascade(t *testing.T) {
	uc, profiles, tags, rec := newTestUseCase(nil)
	if _, err := uc.SaveProfile(context.Background(), 42, validRequest()); err != nil {
		t.Fatal(err)
	}
	tags.byProfileID[1] = []string{"jazz"}

	if err := uc.DeleteAccount(context.Background(), 42); err != nil {
		t.Fatal(err)
	}

	if len(profiles.byUserID) != 0 {
		t.Error("profile survived deletion")
	}
	if len(tags.byProfileID) != 0 {
		t.Error("tags survived deletion")
	}
	want := []string{"likes", "reports", "prefs", "sessions", "user"}
	if len(rec.calls) != len(want) {
		t.Fatalf("cascade calls %v, want %v", rec.calls, want)
	}
	for i := range want {
		if rec.calls[i] != want[i] {
			t.Fatalf("cascade calls %v, want %v", rec.calls, want)
		}
	}
}

func TestDeleteAccountWithoutProfile(t *testing.T) {
	uc, _, _, _ := newTestUseCase(nil)

	// A user who never finished the wizard still cleans up.
	if err := uc.DeleteAccount(context.Background(), 42); err != nil {
		t.Fatal(err)
	}
}
