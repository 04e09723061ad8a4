package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/lumatch/lumatch-backend/internal/domain"
	"github.com/lumatch/lumatch-backend/internal/repository"
)

type profileRepository struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) repository.ProfileRepository {
	return &profileRepository{db: db}
}

const profileColumns = `
	id, user_id, display_name, age, identity, audiences, bio_seek,
	visible, is_adult, suspended, shadowbanned,
	location_lat, location_lon, city, created_at, updated_at
`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProfile(row rowScanner) (*domain.Profile, error) {
	var p domain.Profile
	var audiences []string
	err := row.Scan(
		&p.ID, &p.UserID, &p.DisplayName, &p.Age, &p.Identity, pq.Array(&audiences), &p.BioSeek,
		&p.Visible, &p.IsAdult, &p.Suspended, &p.Shadowbanned,
		&p.LocationLat, &p.LocationLon, &p.City, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.Audiences = make(domain.AudienceSet, 0, len(audiences))
	for _, a := range audiences {
		p.Audiences = append(p.Audiences, domain.Audience(a))
	}
	return &p, nil
}

func audienceStrings(set domain.AudienceSet) []string {
	out := make([]string, 0, len(set))
	for _, a := range set {
		out = append(out, string(a))
	}
	return out
}

func (r *profileRepository) GetByID(ctx context.Context, id int64) (*domain.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE id = $1`
	profile, err := scanProfile(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}
	return profile, nil
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID int64) (*domain.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE user_id = $1`
	profile, err := scanProfile(r.db.QueryRowContext(ctx, query, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}
	return profile, nil
}

func (r *profileRepository) Upsert(ctx context.Context, profile *domain.Profile) error {
	query := `
		INSERT INTO profiles (
			user_id, display_name, age, identity, audiences, bio_seek,
			visible, is_adult, location_lat, location_lon, city
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (user_id) DO UPDATE SET
			display_name = EXCLUDED.display_name,
			age = EXCLUDED.age,
			identity = EXCLUDED.identity,
			audiences = EXCLUDED.audiences,
			bio_seek = EXCLUDED.bio_seek,
			visible = EXCLUDED.visible,
			is_adult = EXCLUDED.is_adult,
			updated_at = CURRENT_TIMESTAMP
		RETURNING id, created_at, updated_at
	`
	return r.db.QueryRowContext(
		ctx, query,
		profile.UserID, profile.DisplayName, profile.Age, profile.Identity,
		pq.Array(audienceStrings(profile.Audiences)), profile.BioSeek,
		profile.Visible, profile.IsAdult,
		profile.LocationLat, profile.LocationLon, profile.City,
	).Scan(&profile.ID, &profile.CreatedAt, &profile.UpdatedAt)
}

func (r *profileRepository) ListCandidates(ctx context.Context, filter repository.CandidateFilter) ([]*domain.Profile, error) {
	query := `
		SELECT ` + profileColumns + `
		FROM profiles
		WHERE visible = TRUE
		  AND suspended = FALSE
		  AND shadowbanned = FALSE
		  AND age BETWEEN $1 AND $2
		ORDER BY updated_at DESC
		LIMIT $3
	`
	rows, err := r.db.QueryContext(ctx, query, filter.MinAge, filter.MaxAge, filter.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []*domain.Profile
	for rows.Next() {
		profile, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, profile)
	}
	return profiles, rows.Err()
}

func (r *profileRepository) UpdateLocation(ctx context.Context, userID int64, lat, lon *float64, city *string) error {
	query := `
		UPDATE profiles
		SET location_lat = $1, location_lon = $2, city = $3, updated_at = CURRENT_TIMESTAMP
		WHERE user_id = $4
	`
	return r.execExpectingRow(ctx, query, lat, lon, city, userID)
}

func (r *profileRepository) SetSuspended(ctx context.Context, profileID int64, suspended bool) error {
	query := `UPDATE profiles SET suspended = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`
	return r.execExpectingRow(ctx, query, suspended, profileID)
}

func (r *profileRepository) SetShadowbanned(ctx context.Context, profileID int64, shadowbanned bool) error {
	query := `UPDATE profiles SET shadowbanned = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`
	return r.execExpectingRow(ctx, query, shadowbanned, profileID)
}

func (r *profileRepository) DeleteByUserID(ctx context.Context, userID int64) error {
	query := `DELETE FROM profiles WHERE user_id = $1`
	_, err := r.db.ExecContext(ctx, query, userID)
	return err
}

func (r *profileRepository) execExpectingRow(ctx context.Context, query string, args ...interface{}) error {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrProfileNotFound
	}
	return nil
}
