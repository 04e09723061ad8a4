package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/lumatch/lumatch-backend/internal/repository"
)

type likeRepository struct {
	db *sqlx.DB
}

func NewLikeRepository(db *sqlx.DB) repository.LikeRepository {
	return &likeRepository{db: db}
}

func (r *likeRepository) Upsert(ctx context.Context, fromUserID, toUserID int64) error {
	query := `
		INSERT INTO likes (from_user_id, to_user_id)
		VALUES ($1, $2)
		ON CONFLICT (from_user_id, to_user_id) DO NOTHING
	`
	_, err := r.db.ExecContext(ctx, query, fromUserID, toUserID)
	return err
}

func (r *likeRepository) Exists(ctx context.Context, fromUserID, toUserID int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM likes WHERE from_user_id = $1 AND to_user_id = $2)`
	err := r.db.GetContext(ctx, &exists, query, fromUserID, toUserID)
	return exists, err
}

func (r *likeRepository) ListLikedUserIDs(ctx context.Context, fromUserID int64) ([]int64, error) {
	var ids []int64
	query := `SELECT to_user_id FROM likes WHERE from_user_id = $1`
	err := r.db.SelectContext(ctx, &ids, query, fromUserID)
	return ids, err
}

func (r *likeRepository) DeleteAllForUser(ctx context.Context, userID int64) error {
	query := `DELETE FROM likes WHERE from_user_id = $1 OR to_user_id = $1`
	_, err := r.db.ExecContext(ctx, query, userID)
	return err
}
