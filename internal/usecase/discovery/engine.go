package discovery

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/lumatch/lumatch-backend/internal/domain"
	"github.com/lumatch/lumatch-backend/internal/repository"
	"go.uber.org/zap"
)

// Engine builds ranked candidate queues: it loads the viewer once, fetches a
// bounded recency-ordered working set, filters it for mutual compatibility
// and stable-sorts the survivors.
type Engine struct {
	profileRepo repository.ProfileRepository
	tagRepo     repository.TagRepository
	likeRepo    repository.LikeRepository
	reportRepo  repository.ReportRepository
	prefRepo    repository.PreferenceRepository
	fetchLimit  int
	log         *zap.Logger
}

func NewEngine(
	profileRepo repository.ProfileRepository,
	tagRepo repository.TagRepository,
	likeRepo repository.LikeRepository,
	reportRepo repository.ReportRepository,
	prefRepo repository.PreferenceRepository,
	fetchLimit int,
	log *zap.Logger,
) *Engine {
	return &Engine{
		profileRepo: profileRepo,
		tagRepo:     tagRepo,
		likeRepo:    likeRepo,
		reportRepo:  reportRepo,
		prefRepo:    prefRepo,
		fetchLimit:  fetchLimit,
		log:         log,
	}
}

// LoadViewer resolves the browsing user's profile, exclusion sets and
// effective filters. Returns domain.ErrProfileIncomplete when the profile is
// missing or lacks a required field.
func (e *Engine) LoadViewer(ctx context.Context, viewerUserID int64) (*Viewer, error) {
	profile, err := e.profileRepo.GetByUserID(ctx, viewerUserID)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			return nil, domain.ErrProfileIncomplete
		}
		return nil, fmt.Errorf("load viewer profile: %w", err)
	}
	if !profile.Complete() {
		return nil, domain.ErrProfileIncomplete
	}

	likedIDs, err := e.likeRepo.ListLikedUserIDs(ctx, viewerUserID)
	if err != nil {
		return nil, fmt.Errorf("load likes: %w", err)
	}
	reportedIDs, err := e.reportRepo.ListReportedUserIDs(ctx, viewerUserID)
	if err != nil {
		return nil, fmt.Errorf("load reports: %w", err)
	}

	pref, err := e.prefRepo.Get(ctx, viewerUserID)
	if err != nil && !errors.Is(err, domain.ErrPreferenceNotFound) {
		return nil, fmt.Errorf("load preferences: %w", err)
	}
	minAge, maxAge := pref.EffectiveAgeWindow(profile.IsAdult)

	tagSlugs, err := e.tagRepo.GetProfileTagSlugs(ctx, profile.ID)
	if err != nil {
		return nil, fmt.Errorf("load viewer tags: %w", err)
	}

	viewer := &Viewer{
		Profile:  profile,
		Liked:    make(map[int64]struct{}, len(likedIDs)),
		Reported: make(map[int64]struct{}, len(reportedIDs)),
		MinAge:   minAge,
		MaxAge:   maxAge,
		RadiusKm: pref.Radius(),
		TagSlugs: tagSlugs,
	}
	for _, id := range likedIDs {
		viewer.Liked[id] = struct{}{}
	}
	for _, id := range reportedIDs {
		viewer.Reported[id] = struct{}{}
	}
	return viewer, nil
}

// BuildQueue returns the ranked candidate profile ids for one viewer. An empty
// queue is a normal outcome, not an error.
func (e *Engine) BuildQueue(ctx context.Context, viewerUserID int64) ([]int64, error) {
	viewer, err := e.LoadViewer(ctx, viewerUserID)
	if err != nil {
		return nil, err
	}
	return e.BuildQueueForViewer(ctx, viewer)
}

// BuildQueueForViewer ranks candidates for an already-loaded viewer.
func (e *Engine) BuildQueueForViewer(ctx context.Context, viewer *Viewer) ([]int64, error) {
	// Bounded working set: true best matches outside the most recently
	// updated fetchLimit profiles are never seen.
	candidates, err := e.profileRepo.ListCandidates(ctx, repository.CandidateFilter{
		MinAge: viewer.MinAge,
		MaxAge: viewer.MaxAge,
		Limit:  e.fetchLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}

	survivors := make([]*domain.Profile, 0, len(candidates))
	for _, cand := range candidates {
		if Compatible(viewer, cand) {
			survivors = append(survivors, cand)
		}
	}
	if len(survivors) == 0 {
		return nil, nil
	}

	profileIDs := make([]int64, 0, len(survivors))
	for _, cand := range survivors {
		profileIDs = append(profileIDs, cand.ID)
	}
	tagsByProfile, err := e.tagRepo.GetTagSlugsForProfiles(ctx, profileIDs)
	if err != nil {
		return nil, fmt.Errorf("load candidate tags: %w", err)
	}

	scores := make([]Score, len(survivors))
	for i, cand := range survivors {
		scores[i] = ScoreCandidate(viewer, cand, tagsByProfile[cand.ID])
	}
	order := make([]int, len(survivors))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return scores[order[i]].Better(scores[order[j]])
	})

	queue := make([]int64, len(order))
	for i, idx := range order {
		queue[i] = survivors[idx].ID
	}

	e.log.Debug("candidate queue built",
		zap.Int64("viewer_user_id", viewer.Profile.UserID),
		zap.Int("fetched", len(candidates)),
		zap.Int("queued", len(queue)),
	)
	return queue, nil
}
