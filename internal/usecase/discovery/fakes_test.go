package discovery

import (
	"context"
	"sort"

	"github.com/lumatch/lumatch-backend/internal/domain"
	"github.com/lumatch/lumatch-backend/internal/repository"
)

// fakeStore backs all repository interfaces the engine touches with in-memory
// maps. Not safe for concurrent use; tests are sequential.
type fakeStore struct {
	profiles map[int64]*domain.Profile // by profile id
	tags     map[int64][]string        // profile id -> slugs
	likes    map[[2]int64]struct{}     // (from, to) user ids
	reports  map[[2]int64]domain.ReportReason
	prefs    map[int64]*domain.Preference // by user id
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		profiles: make(map[int64]*domain.Profile),
		tags:     make(map[int64][]string),
		likes:    make(map[[2]int64]struct{}),
		reports:  make(map[[2]int64]domain.ReportReason),
		prefs:    make(map[int64]*domain.Preference),
	}
}

func (s *fakeStore) addProfile(p *domain.Profile) {
	s.profiles[p.ID] = p
}

// --- ProfileRepository

func (s *fakeStore) GetByID(_ context.Context, id int64) (*domain.Profile, error) {
	if p, ok := s.profiles[id]; ok {
		return p, nil
	}
	return nil, domain.ErrProfileNotFound
}

func (s *fakeStore) GetByUserID(_ context.Context, userID int64) (*domain.Profile, error) {
	for _, p := range s.profiles {
		if p.UserID == userID {
			return p, nil
		}
	}
	return nil, domain.ErrProfileNotFound
}

func (s *fakeStore) Upsert(_ context.Context, profile *domain.Profile) error {
	s.profiles[profile.ID] = profile
	return nil
}

func (s *fakeStore) ListCandidates(_ context.Context, filter repository.CandidateFilter) ([]*domain.Profile, error) {
	var out []*domain.Profile
	for _, p := range s.profiles {
		if !p.Visible || p.Suspended || p.Shadowbanned {
			continue
		}
		if p.Age < filter.MinAge || p.Age > filter.MaxAge {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (s *fakeStore) UpdateLocation(_ context.Context, userID int64, lat, lon *float64, city *string) error {
	p, err := s.GetByUserID(context.Background(), userID)
	if err != nil {
		return err
	}
	p.LocationLat, p.LocationLon, p.City = lat, lon, city
	return nil
}

func (s *fakeStore) SetSuspended(_ context.Context, profileID int64, suspended bool) error {
	p, ok := s.profiles[profileID]
	if !ok {
		return domain.ErrProfileNotFound
	}
	p.Suspended = suspended
	return nil
}

func (s *fakeStore) SetShadowbanned(_ context.Context, profileID int64, shadowbanned bool) error {
	p, ok := s.profiles[profileID]
	if !ok {
		return domain.ErrProfileNotFound
	}
	p.Shadowbanned = shadowbanned
	return nil
}

func (s *fakeStore) DeleteByUserID(_ context.Context, userID int64) error {
	for id, p := range s.profiles {
		if p.UserID == userID {
			delete(s.profiles, id)
		}
	}
	return nil
}

// --- TagRepository

func (s *fakeStore) ReplaceProfileTags(_ context.Context, profileID int64, slugs []string) error {
	s.tags[profileID] = slugs
	return nil
}

func (s *fakeStore) GetProfileTagSlugs(_ context.Context, profileID int64) ([]string, error) {
	return s.tags[profileID], nil
}

func (s *fakeStore) GetTagSlugsForProfiles(_ context.Context, profileIDs []int64) (map[int64][]string, error) {
	out := make(map[int64][]string, len(profileIDs))
	for _, id := range profileIDs {
		if slugs, ok := s.tags[id]; ok {
			out[id] = slugs
		}
	}
	return out, nil
}

func (s *fakeStore) DeleteAllForProfile(_ context.Context, profileID int64) error {
	delete(s.tags, profileID)
	return nil
}

// --- LikeRepository

func (s *fakeStore) UpsertLike(_ context.Context, fromUserID, toUserID int64) error {
	s.likes[[2]int64{fromUserID, toUserID}] = struct{}{}
	return nil
}

func (s *fakeStore) Exists(_ context.Context, fromUserID, toUserID int64) (bool, error) {
	_, ok := s.likes[[2]int64{fromUserID, toUserID}]
	return ok, nil
}

func (s *fakeStore) ListLikedUserIDs(_ context.Context, fromUserID int64) ([]int64, error) {
	var out []int64
	for edge := range s.likes {
		if edge[0] == fromUserID {
			out = append(out, edge[1])
		}
	}
	return out, nil
}

func (s *fakeStore) DeleteAllLikesForUser(_ context.Context, userID int64) error {
	for edge := range s.likes {
		if edge[0] == userID || edge[1] == userID {
			delete(s.likes, edge)
		}
	}
	return nil
}

// --- ReportRepository

func (s *fakeStore) CreateReport(_ context.Context, report *domain.Report) error {
	s.reports[[2]int64{report.ReporterUserID, report.ReportedUserID}] = report.Reason
	return nil
}

func (s *fakeStore) ListReportedUserIDs(_ context.Context, reporterUserID int64) ([]int64, error) {
	var out []int64
	for edge := range s.reports {
		if edge[0] == reporterUserID {
			out = append(out, edge[1])
		}
	}
	return out, nil
}

func (s *fakeStore) DeleteAllReportsForUser(_ context.Context, userID int64) error {
	for edge := range s.reports {
		if edge[0] == userID || edge[1] == userID {
			delete(s.reports, edge)
		}
	}
	return nil
}

// --- PreferenceRepository

func (s *fakeStore) Get(_ context.Context, userID int64) (*domain.Preference, error) {
	if p, ok := s.prefs[userID]; ok {
		return p, nil
	}
	return nil, domain.ErrPreferenceNotFound
}

func (s *fakeStore) UpsertPreference(_ context.Context, pref *domain.Preference) error {
	s.prefs[pref.UserID] = pref
	return nil
}

func (s *fakeStore) DeletePreference(_ context.Context, userID int64) error {
	delete(s.prefs, userID)
	return nil
}

// Adapters splitting the single fake over the distinct repository interfaces.

type fakeLikeRepo struct{ *fakeStore }

func (r fakeLikeRepo) Upsert(ctx context.Context, from, to int64) error {
	return r.UpsertLike(ctx, from, to)
}

func (r fakeLikeRepo) DeleteAllForUser(ctx context.Context, userID int64) error {
	return r.DeleteAllLikesForUser(ctx, userID)
}

type fakeReportRepo struct{ *fakeStore }

func (r fakeReportRepo) Create(ctx context.Context, report *domain.Report) error {
	return r.CreateReport(ctx, report)
}

func (r fakeReportRepo) DeleteAllForUser(ctx context.Context, userID int64) error {
	return r.DeleteAllReportsForUser(ctx, userID)
}

type fakePrefRepo struct{ *fakeStore }

func (r fakePrefRepo) Upsert(ctx context.Context, pref *domain.Preference) error {
	return r.UpsertPreference(ctx, pref)
}

func (r fakePrefRepo) Delete(ctx context.Context, userID int64) error {
	return r.DeletePreference(ctx, userID)
}
