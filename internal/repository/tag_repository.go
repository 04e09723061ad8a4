package repository

import "context"

type TagRepository interface {
	// ReplaceProfileTags swaps the profile's tag set for the given slugs,
	// creating canonical tags as needed.
	ReplaceProfileTags(ctx context.Context, profileID int64, slugs []string) error
	GetProfileTagSlugs(ctx context.Context, profileID int64) ([]string, error)
	// GetTagSlugsForProfiles batch-loads tag slugs for queue scoring.
	GetTagSlugsForProfiles(ctx context.Context, profileIDs []int64) (map[int64][]string, error)
	DeleteAllForProfile(ctx context.Context, profileID int64) error
}
