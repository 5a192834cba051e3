package repository

import (
	"context"

	"github.com/vytor/weakspot/internal/models"
)

// ReportRepository handles report data access. Lookups of a missing report
// return sql.ErrNoRows.
type ReportRepository interface {
	Create(ctx context.Context, report models.Report) (int64, error)
	Get(ctx context.Context, id int64) (*models.Report, error)
	GetByPublicID(ctx context.Context, publicID string) (*models.Report, error)
	List(ctx context.Context, filter models.ReportFilter) ([]models.Report, error)
	Count(ctx context.Context, filter models.ReportFilter) (int, error)
	UpdateStatus(ctx context.Context, id int64, status models.ReportStatus, errMsg string) error
	Complete(ctx context.Context, id int64, result models.ReportResult) error
	Games(ctx context.Context, reportID int64) ([]models.ReportGame, error)
	ResetProcessingToPending(ctx context.Context) (int64, error)
	Delete(ctx context.Context, id int64) error
}
