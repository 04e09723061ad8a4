package browse

import (
	"context"
	"errors"
	"fmt"

	"github.com/lumatch/lumatch-backend/internal/domain"
	"github.com/lumatch/lumatch-backend/internal/ratelimit"
	"github.com/lumatch/lumatch-backend/internal/repository"
	"github.com/lumatch/lumatch-backend/internal/usecase/discovery"
	"go.uber.org/zap"
)

// CandidateCard is what the caller presents for one candidate.
type CandidateCard struct {
	ProfileID   int64              `json:"profile_id"`
	UserID      int64              `json:"user_id"`
	DisplayName string             `json:"display_name"`
	Age         int                `json:"age"`
	Identity    domain.Identity    `json:"identity"`
	Audiences   domain.AudienceSet `json:"audiences"`
	BioSeek     *string            `json:"bio_seek"`
	City        *string            `json:"city"`
	DistanceKm  *float64           `json:"distance_km,omitempty"`
	Tags        []string           `json:"tags"`
	Position    int                `json:"position"`
	QueueLen    int                `json:"queue_len"`
}

// StartResult distinguishes "nothing to show" from a started session.
type StartResult struct {
	QueueEmpty bool           `json:"queue_empty"`
	Candidate  *CandidateCard `json:"candidate,omitempty"`
}

// MatchContact is the counterpart info surfaced to the liking user on a match.
type MatchContact struct {
	UserID      int64  `json:"user_id"`
	DisplayName string `json:"display_name"`
	Contact     string `json:"contact"`
}

type LikeOutcome string

const (
	OutcomeSaved   LikeOutcome = "saved"
	OutcomeMatched LikeOutcome = "matched"
)

type LikeResult struct {
	Outcome   LikeOutcome    `json:"outcome"`
	Match     *MatchContact  `json:"match,omitempty"`
	Next      *CandidateCard `json:"next,omitempty"`
	Exhausted bool           `json:"exhausted"`
}

type AdvanceResult struct {
	Next      *CandidateCard `json:"next,omitempty"`
	Exhausted bool           `json:"exhausted"`
}

// Processor applies browse actions: every action is gated by the rate
// limiter, mutates the viewer's session and, for like/report, writes the
// outcome through the stores.
type Processor struct {
	engine      *discovery.Engine
	sessions    *Registry
	profileRepo repository.ProfileRepository
	tagRepo     repository.TagRepository
	likeRepo    repository.LikeRepository
	reportRepo  repository.ReportRepository
	userRepo    repository.UserRepository
	limiter     *ratelimit.ActionLimiter
	notifier    Notifier
	log         *zap.Logger
}

func NewProcessor(
	engine *discovery.Engine,
	sessions *Registry,
	profileRepo repository.ProfileRepository,
	tagRepo repository.TagRepository,
	likeRepo repository.LikeRepository,
	reportRepo repository.ReportRepository,
	userRepo repository.UserRepository,
	limiter *ratelimit.ActionLimiter,
	notifier Notifier,
	log *zap.Logger,
) *Processor {
	return &Processor{
		engine:      engine,
		sessions:    sessions,
		profileRepo: profileRepo,
		tagRepo:     tagRepo,
		likeRepo:    likeRepo,
		reportRepo:  reportRepo,
		userRepo:    userRepo,
		limiter:     limiter,
		notifier:    notifier,
		log:         log,
	}
}

// Start builds a fresh queue and opens a session, replacing any previous one.
// Returns domain.ErrProfileIncomplete when the viewer cannot browse yet.
func (p *Processor) Start(ctx context.Context, viewerUserID int64) (*StartResult, error) {
	viewer, err := p.engine.LoadViewer(ctx, viewerUserID)
	if err != nil {
		return nil, err
	}

	queue, err := p.engine.BuildQueueForViewer(ctx, viewer)
	if err != nil {
		return nil, err
	}
	if len(queue) == 0 {
		p.sessions.Remove(viewerUserID)
		return &StartResult{QueueEmpty: true}, nil
	}

	session := &Session{
		ViewerUserID: viewerUserID,
		Queue:        queue,
		viewerLat:    viewer.Profile.LocationLat,
		viewerLon:    viewer.Profile.LocationLon,
	}
	card, err := p.presentCurrent(ctx, session)
	if err != nil {
		return nil, err
	}
	if card == nil {
		// Every queued profile vanished between build and display.
		p.sessions.Remove(viewerUserID)
		return &StartResult{QueueEmpty: true}, nil
	}

	p.sessions.Put(session)
	return &StartResult{Candidate: card}, nil
}

// Like persists the like edge for the current candidate, detects a mutual
// like and advances the session.
func (p *Processor) Like(ctx context.Context, viewerUserID int64) (*LikeResult, error) {
	if err := p.limiter.Check(ctx, viewerUserID, ratelimit.ActionLike); err != nil {
		return nil, err
	}

	session, candidate, err := p.currentCandidate(ctx, viewerUserID)
	if err != nil {
		return nil, err
	}
	if candidate == nil {
		// Current profile vanished; behave like a silent skip.
		return p.likeAdvanceOnly(ctx, session)
	}

	if candidate.UserID == viewerUserID {
		return nil, domain.ErrCannotLikeSelf
	}

	// Idempotent: a repeated like leaves exactly one edge.
	if err := p.likeRepo.Upsert(ctx, viewerUserID, candidate.UserID); err != nil {
		return nil, fmt.Errorf("save like: %w", err)
	}

	result := &LikeResult{Outcome: OutcomeSaved}

	mutual, err := p.likeRepo.Exists(ctx, candidate.UserID, viewerUserID)
	if err != nil {
		return nil, fmt.Errorf("check reverse like: %w", err)
	}
	if mutual {
		result.Outcome = OutcomeMatched
		result.Match = p.matchContact(ctx, candidate)
		p.notifyCounterpart(ctx, viewerUserID, candidate)
	}

	next, exhausted, err := p.advance(ctx, session)
	if err != nil {
		return nil, err
	}
	result.Next = next
	result.Exhausted = exhausted
	return result, nil
}

// Skip advances the session without any persistence side effect.
func (p *Processor) Skip(ctx context.Context, viewerUserID int64) (*AdvanceResult, error) {
	if err := p.limiter.Check(ctx, viewerUserID, ratelimit.ActionSkip); err != nil {
		return nil, err
	}

	session, ok := p.sessions.Get(viewerUserID)
	if !ok {
		return nil, domain.ErrNoActiveSession
	}

	next, exhausted, err := p.advance(ctx, session)
	if err != nil {
		return nil, err
	}
	return &AdvanceResult{Next: next, Exhausted: exhausted}, nil
}

// Report persists a report edge with the given reason and advances. The
// reported pair is excluded from the viewer's future queue builds.
func (p *Processor) Report(ctx context.Context, viewerUserID int64, reason domain.ReportReason) (*AdvanceResult, error) {
	if !reason.Valid() {
		return nil, fmt.Errorf("%w: unknown report reason %q", domain.ErrInvalidInput, reason)
	}
	if err := p.limiter.Check(ctx, viewerUserID, ratelimit.ActionReport); err != nil {
		return nil, err
	}

	session, candidate, err := p.currentCandidate(ctx, viewerUserID)
	if err != nil {
		return nil, err
	}
	if candidate != nil {
		report := &domain.Report{
			ReporterUserID: viewerUserID,
			ReportedUserID: candidate.UserID,
			Reason:         reason,
		}
		if err := p.reportRepo.Create(ctx, report); err != nil {
			return nil, fmt.Errorf("save report: %w", err)
		}
	}

	next, exhausted, err := p.advance(ctx, session)
	if err != nil {
		return nil, err
	}
	return &AdvanceResult{Next: next, Exhausted: exhausted}, nil
}

// currentCandidate resolves the profile under the session cursor. A nil
// profile with nil error means it was deleted after being presented.
func (p *Processor) currentCandidate(ctx context.Context, viewerUserID int64) (*Session, *domain.Profile, error) {
	session, ok := p.sessions.Get(viewerUserID)
	if !ok || session.CurrentProfileID == 0 {
		return nil, nil, domain.ErrNoActiveSession
	}

	profile, err := p.profileRepo.GetByID(ctx, session.CurrentProfileID)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			return session, nil, nil
		}
		return nil, nil, fmt.Errorf("load current candidate: %w", err)
	}
	return session, profile, nil
}

func (p *Processor) likeAdvanceOnly(ctx context.Context, session *Session) (*LikeResult, error) {
	next, exhausted, err := p.advance(ctx, session)
	if err != nil {
		return nil, err
	}
	return &LikeResult{Outcome: OutcomeSaved, Next: next, Exhausted: exhausted}, nil
}

// advance moves the cursor and presents the next surviving candidate.
// Exhaustion tears the session down.
func (p *Processor) advance(ctx context.Context, session *Session) (*CandidateCard, bool, error) {
	session.Advance()
	card, err := p.presentCurrent(ctx, session)
	if err != nil {
		return nil, false, err
	}
	if card == nil {
		p.sessions.Remove(session.ViewerUserID)
		return nil, true, nil
	}
	return card, false, nil
}

// presentCurrent dereferences the cursor, silently skipping profiles deleted
// since the queue was built. Returns nil when the queue is exhausted.
func (p *Processor) presentCurrent(ctx context.Context, session *Session) (*CandidateCard, error) {
	for {
		profileID, ok := session.CurrentID()
		if !ok {
			return nil, nil
		}

		profile, err := p.profileRepo.GetByID(ctx, profileID)
		if err != nil {
			if errors.Is(err, domain.ErrProfileNotFound) {
				session.Advance()
				continue
			}
			return nil, fmt.Errorf("load candidate: %w", err)
		}

		tags, err := p.tagRepo.GetProfileTagSlugs(ctx, profile.ID)
		if err != nil {
			return nil, fmt.Errorf("load candidate tags: %w", err)
		}

		session.CurrentProfileID = profile.ID
		card := &CandidateCard{
			ProfileID:   profile.ID,
			UserID:      profile.UserID,
			DisplayName: profile.DisplayName,
			Age:         profile.Age,
			Identity:    profile.Identity,
			Audiences:   profile.Audiences,
			BioSeek:     profile.BioSeek,
			City:        profile.City,
			Tags:        tags,
			Position:    session.Cursor + 1,
			QueueLen:    len(session.Queue),
		}
		if session.viewerLat != nil && session.viewerLon != nil && profile.HasLocation() {
			d := discovery.Haversine(*session.viewerLat, *session.viewerLon, *profile.LocationLat, *profile.LocationLon)
			card.DistanceKm = &d
		}
		return card, nil
	}
}

func (p *Processor) matchContact(ctx context.Context, counterpart *domain.Profile) *MatchContact {
	contact := &MatchContact{
		UserID:      counterpart.UserID,
		DisplayName: counterpart.DisplayName,
	}
	user, err := p.userRepo.GetByID(ctx, counterpart.UserID)
	if err != nil {
		p.log.Warn("counterpart contact lookup failed",
			zap.Int64("user_id", counterpart.UserID), zap.Error(err))
		return contact
	}
	contact.Contact = user.ContactLink()
	return contact
}

// notifyCounterpart is best-effort: the counterpart may be unreachable, which
// must not fail the liking user's own action.
func (p *Processor) notifyCounterpart(ctx context.Context, viewerUserID int64, counterpart *domain.Profile) {
	viewerProfile, err := p.profileRepo.GetByUserID(ctx, viewerUserID)
	if err != nil {
		p.log.Warn("viewer profile lookup for notification failed",
			zap.Int64("user_id", viewerUserID), zap.Error(err))
		return
	}
	contact := ""
	if user, err := p.userRepo.GetByID(ctx, viewerUserID); err == nil {
		contact = user.ContactLink()
	}
	if err := p.notifier.NotifyMatch(ctx, counterpart.UserID, viewerProfile, contact); err != nil {
		p.log.Warn("match notification failed",
			zap.Int64("counterpart_user_id", counterpart.UserID), zap.Error(err))
	}
}
