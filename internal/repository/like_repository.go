package repository

import "context"

type LikeRepository interface {
	// Upsert creates the (from, to) edge; creating it twice is a no-op.
	Upsert(ctx context.Context, fromUserID, toUserID int64) error
	// Exists reports whether the directed (from, to) edge is present. Used
	// with swapped arguments for the reverse-like match check.
	Exists(ctx context.Context, fromUserID, toUserID int64) (bool, error)
	// ListLikedUserIDs returns every user the given user has liked.
	ListLikedUserIDs(ctx context.Context, fromUserID int64) ([]int64, error)
	DeleteAllForUser(ctx context.Context, userID int64) error
}
