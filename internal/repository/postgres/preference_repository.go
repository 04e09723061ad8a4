package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lumatch/lumatch-backend/internal/domain"
	"github.com/lumatch/lumatch-backend/internal/repository"
)

type preferenceRepository struct {
	db *sqlx.DB
}

func NewPreferenceRepository(db *sqlx.DB) repository.PreferenceRepository {
	return &preferenceRepository{db: db}
}

func (r *preferenceRepository) Get(ctx context.Context, userID int64) (*domain.Preference, error) {
	var pref domain.Preference
	query := `
		SELECT user_id, min_age, max_age, max_distance_km, show_adult, created_at, updated_at
		FROM preferences WHERE user_id = $1
	`
	err := r.db.GetContext(ctx, &pref, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrPreferenceNotFound
		}
		return nil, err
	}
	return &pref, nil
}

func (r *preferenceRepository) Upsert(ctx context.Context, pref *domain.Preference) error {
	query := `
		INSERT INTO preferences (user_id, min_age, max_age, max_distance_km, show_adult)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id) DO UPDATE SET
			min_age = EXCLUDED.min_age,
			max_age = EXCLUDED.max_age,
			max_distance_km = EXCLUDED.max_distance_km,
			show_adult = EXCLUDED.show_adult,
			updated_at = CURRENT_TIMESTAMP
		RETURNING created_at, updated_at
	`
	return r.db.QueryRowContext(
		ctx, query,
		pref.UserID, pref.MinAge, pref.MaxAge, pref.MaxDistanceKm, pref.ShowAdult,
	).Scan(&pref.CreatedAt, &pref.UpdatedAt)
}

func (r *preferenceRepository) Delete(ctx context.Context, userID int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM preferences WHERE user_id = $1`, userID)
	return err
}
