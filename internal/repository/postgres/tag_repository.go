package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/lumatch/lumatch-backend/internal/repository"
)

type tagRepository struct {
	db *sqlx.DB
}

func NewTagRepository(db *sqlx.DB) repository.TagRepository {
	return &tagRepository{db: db}
}

func (r *tagRepository) ReplaceProfileTags(ctx context.Context, profileID int64, slugs []string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM profile_tags WHERE profile_id = $1`, profileID); err != nil {
		return fmt.Errorf("clear profile tags: %w", err)
	}

	for _, slug := range slugs {
		var tagID int64
		query := `
			INSERT INTO tags (slug)
			VALUES ($1)
			ON CONFLICT (slug) DO UPDATE SET slug = EXCLUDED.slug
			RETURNING id
		`
		if err := tx.QueryRowContext(ctx, query, slug).Scan(&tagID); err != nil {
			return fmt.Errorf("upsert tag %q: %w", slug, err)
		}
		if _, err := tx.ExecContext(
			ctx,
			`INSERT INTO profile_tags (profile_id, tag_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			profileID, tagID,
		); err != nil {
			return fmt.Errorf("attach tag %q: %w", slug, err)
		}
	}

	return tx.Commit()
}

func (r *tagRepository) GetProfileTagSlugs(ctx context.Context, profileID int64) ([]string, error) {
	var slugs []string
	query := `
		SELECT t.slug
		FROM tags t
		JOIN profile_tags pt ON pt.tag_id = t.id
		WHERE pt.profile_id = $1
		ORDER BY t.slug
	`
	err := r.db.SelectContext(ctx, &slugs, query, profileID)
	return slugs, err
}

func (r *tagRepository) GetTagSlugsForProfiles(ctx context.Context, profileIDs []int64) (map[int64][]string, error) {
	result := make(map[int64][]string, len(profileIDs))
	if len(profileIDs) == 0 {
		return result, nil
	}

	query := `
		SELECT pt.profile_id, t.slug
		FROM tags t
		JOIN profile_tags pt ON pt.tag_id = t.id
		WHERE pt.profile_id = ANY($1)
	`
	rows, err := r.db.QueryContext(ctx, query, pq.Array(profileIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var profileID int64
		var slug string
		if err := rows.Scan(&profileID, &slug); err != nil {
			return nil, err
		}
		result[profileID] = append(result[profileID], slug)
	}
	return result, rows.Err()
}

func (r *tagRepository) DeleteAllForProfile(ctx context.Context, profileID int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM profile_tags WHERE profile_id = $1`, profileID)
	return err
}
