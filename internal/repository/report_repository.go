package repository

import (
	"context"

	"github.com/lumatch/lumatch-backend/internal/domain"
)

type ReportRepository interface {
	Create(ctx context.Context, report *domain.Report) error
	// ListReportedUserIDs returns every user the reporter has reported.
	ListReportedUserIDs(ctx context.Context, reporterUserID int64) ([]int64, error)
	DeleteAllForUser(ctx context.Context, userID int64) error
}
