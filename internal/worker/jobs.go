package worker

import (
	"context"

	"github.com/vytor/weakspot/internal/logger"
)

// ReportProcessor builds a stored report from PGN text. It is declared here
// so the services package can depend on worker and not the other way round.
type ReportProcessor interface {
	Process(ctx context.Context, reportID int64, pgnText string) error
}

// BuildReportJob runs one report build in the background.
type BuildReportJob struct {
	Processor ReportProcessor
	ReportID  int64
	PGN       string
}

func (j *BuildReportJob) Name() string { return "build_report" }

func (j *BuildReportJob) Run(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("report_id", j.ReportID)
	log.Debug("building report from %d bytes of PGN", len(j.PGN))
	return j.Processor.Process(logger.NewContext(ctx, log), j.ReportID, j.PGN)
}
