package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/lumatch/lumatch-backend/internal/domain"
	"github.com/lumatch/lumatch-backend/internal/repository"
)

type reportRepository struct {
	db *sqlx.DB
}

func NewReportRepository(db *sqlx.DB) repository.ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) Create(ctx context.Context, report *domain.Report) error {
	query := `
		INSERT INTO reports (reporter_user_id, reported_user_id, reason)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	return r.db.QueryRowContext(
		ctx, query,
		report.ReporterUserID, report.ReportedUserID, report.Reason,
	).Scan(&report.ID, &report.CreatedAt)
}

func (r *reportRepository) ListReportedUserIDs(ctx context.Context, reporterUserID int64) ([]int64, error) {
	var ids []int64
	query := `SELECT DISTINCT reported_user_id FROM reports WHERE reporter_user_id = $1`
	err := r.db.SelectContext(ctx, &ids, query, reporterUserID)
	return ids, err
}

func (r *reportRepository) DeleteAllForUser(ctx context.Context, userID int64) error {
	query := `DELETE FROM reports WHERE reporter_user_id = $1 OR reported_user_id = $1`
	_, err := r.db.ExecContext(ctx, query, userID)
	return err
}
