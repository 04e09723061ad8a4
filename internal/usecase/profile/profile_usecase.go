package profile

import (
	"context"
	"errors"
	"fmt"

	"github.com/lumatch/lumatch-backend/internal/domain"
	"github.com/lumatch/lumatch-backend/internal/repository"
	"go.uber.org/zap"
)

// Moderator screens profile free text. The implementation talks to an
// external text-analysis service; a nil verdict error with Flagged set means
// the text must be rejected.
type Moderator interface {
	ModerateText(ctx context.Context, text string) (*ModerationVerdict, error)
}

type ModerationVerdict struct {
	Flagged bool
	Reason  string
}

type ProfileUseCase struct {
	profileRepo repository.ProfileRepository
	tagRepo     repository.TagRepository
	likeRepo    repository.LikeRepository
	reportRepo  repository.ReportRepository
	prefRepo    repository.PreferenceRepository
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	moderator   Moderator
	log         *zap.Logger
}

func NewProfileUseCase(
	profileRepo repository.ProfileRepository,
	tagRepo repository.TagRepository,
	likeRepo repository.LikeRepository,
	reportRepo repository.ReportRepository,
	prefRepo repository.PreferenceRepository,
	userRepo repository.UserRepository,
	sessionRepo repository.SessionRepository,
	moderator Moderator,
	log *zap.Logger,
) *ProfileUseCase {
	return &ProfileUseCase{
		profileRepo: profileRepo,
		tagRepo:     tagRepo,
		likeRepo:    likeRepo,
		reportRepo:  reportRepo,
		prefRepo:    prefRepo,
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		moderator:   moderator,
		log:         log,
	}
}

// SaveProfileRequest carries the wizard's collected fields.
type SaveProfileRequest struct {
	DisplayName string   `json:"display_name" binding:"required,min=1,max=40"`
	Age         int      `json:"age" binding:"required,min=13,max=120"`
	Identity    string   `json:"identity" binding:"required,identity"`
	Audiences   []string `json:"audiences" binding:"required,min=1,dive,audience"`
	BioSeek     *string  `json:"bio_seek" binding:"omitempty,max=500"`
}

// SaveProfile upserts the caller's profile and audience set. Free text is
// screened before anything is written.
func (uc *ProfileUseCase) SaveProfile(ctx context.Context, userID int64, req *SaveProfileRequest) (*domain.Profile, error) {
	identity := domain.Identity(req.Identity)
	if !identity.Valid() {
		return nil, fmt.Errorf("%w: unknown identity %q", domain.ErrInvalidInput, req.Identity)
	}

	audiences := make(domain.AudienceSet, 0, len(req.Audiences))
	for _, raw := range req.Audiences {
		a := domain.Audience(raw)
		if !a.Valid() {
			return nil, fmt.Errorf("%w: unknown audience %q", domain.ErrInvalidInput, raw)
		}
		audiences = append(audiences, a)
	}

	if req.BioSeek != nil && *req.BioSeek != "" && uc.moderator != nil {
		verdict, err := uc.moderator.ModerateText(ctx, *req.BioSeek)
		if err != nil {
			// Moderation outage must not block profile creation.
			uc.log.Warn("text moderation unavailable", zap.Int64("user_id", userID), zap.Error(err))
		} else if verdict.Flagged {
			uc.log.Info("profile text rejected",
				zap.Int64("user_id", userID), zap.String("reason", verdict.Reason))
			return nil, fmt.Errorf("%w: %s", domain.ErrTextRejected, verdict.Reason)
		}
	}

	profile := &domain.Profile{
		UserID:      userID,
		DisplayName: req.DisplayName,
		Age:         req.Age,
		Identity:    identity,
		Audiences:   audiences,
		BioSeek:     req.BioSeek,
		Visible:     true,
		IsAdult:     req.Age >= domain.AdultAge,
	}
	if err := uc.profileRepo.Upsert(ctx, profile); err != nil {
		return nil, fmt.Errorf("save profile: %w", err)
	}
	return profile, nil
}

// Card is the profile card shown to its owner.
type Card struct {
	*domain.Profile
	Tags []string `json:"tags"`
}

func (uc *ProfileUseCase) GetCard(ctx context.Context, userID int64) (*Card, error) {
	profile, err := uc.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	tags, err := uc.tagRepo.GetProfileTagSlugs(ctx, profile.ID)
	if err != nil {
		return nil, fmt.Errorf("load tags: %w", err)
	}
	return &Card{Profile: profile, Tags: tags}, nil
}

// SetTagsRequest carries raw tag labels; they are slugified before storage.
type SetTagsRequest struct {
	Tags []string `json:"tags" binding:"required,max=10"`
}

func (uc *ProfileUseCase) SetTags(ctx context.Context, userID int64, req *SetTagsRequest) ([]string, error) {
	profile, err := uc.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(req.Tags))
	slugs := make([]string, 0, len(req.Tags))
	for _, label := range req.Tags {
		slug := domain.Slugify(label)
		if slug == "" {
			continue
		}
		if _, dup := seen[slug]; dup {
			continue
		}
		seen[slug] = struct{}{}
		slugs = append(slugs, slug)
	}
	if len(slugs) > domain.MaxTagsPerProfile {
		slugs = slugs[:domain.MaxTagsPerProfile]
	}

	if err := uc.tagRepo.ReplaceProfileTags(ctx, profile.ID, slugs); err != nil {
		return nil, fmt.Errorf("save tags: %w", err)
	}
	return slugs, nil
}

// SetLocationRequest carries raw coordinates; they are quantized to the
// stored two-decimal precision.
type SetLocationRequest struct {
	Lat  float64 `json:"lat" binding:"min=-90,max=90"`
	Lon  float64 `json:"lon" binding:"min=-180,max=180"`
	City *string `json:"city" binding:"omitempty,max=100"`
}

func (uc *ProfileUseCase) SetLocation(ctx context.Context, userID int64, req *SetLocationRequest) error {
	lat := domain.RoundCoordinate(req.Lat)
	lon := domain.RoundCoordinate(req.Lon)
	return uc.profileRepo.UpdateLocation(ctx, userID, &lat, &lon, req.City)
}

func (uc *ProfileUseCase) ClearLocation(ctx context.Context, userID int64) error {
	return uc.profileRepo.UpdateLocation(ctx, userID, nil, nil, nil)
}

// DeleteAccount removes every trace of the user: edges, tags, preferences,
// profile, auth sessions, account row.
func (uc *ProfileUseCase) DeleteAccount(ctx context.Context, userID int64) error {
	if err := uc.likeRepo.DeleteAllForUser(ctx, userID); err != nil {
		return fmt.Errorf("delete likes: %w", err)
	}
	if err := uc.reportRepo.DeleteAllForUser(ctx, userID); err != nil {
		return fmt.Errorf("delete reports: %w", err)
	}

	profile, err := uc.profileRepo.GetByUserID(ctx, userID)
	if err == nil {
		if err := uc.tagRepo.DeleteAllForProfile(ctx, profile.ID); err != nil {
			return fmt.Errorf("delete tags: %w", err)
		}
		if err := uc.profileRepo.DeleteByUserID(ctx, userID); err != nil {
			return fmt.Errorf("delete profile: %w", err)
		}
	} else if !errors.Is(err, domain.ErrProfileNotFound) {
		return fmt.Errorf("load profile: %w", err)
	}

	if err := uc.prefRepo.Delete(ctx, userID); err != nil {
		return fmt.Errorf("delete preferences: %w", err)
	}
	if err := uc.sessionRepo.DeleteAllForUser(ctx, userID); err != nil {
		return fmt.Errorf("delete sessions: %w", err)
	}
	if err := uc.userRepo.Delete(ctx, userID); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	uc.log.Info("account deleted", zap.Int64("user_id", userID))
	return nil
}

// SetSuspended and SetShadowbanned back the admin moderation endpoints; the
// moderation UI itself lives outside this service.
func (uc *ProfileUseCase) SetSuspended(ctx context.Context, profileID int64, suspended bool) error {
	return uc.profileRepo.SetSuspended(ctx, profileID, suspended)
}

func (uc *ProfileUseCase) SetShadowbanned(ctx context.Context, profileID int64, shadowbanned bool) error {
	return uc.profileRepo.SetShadowbanned(ctx, profileID, shadowbanned)
}
