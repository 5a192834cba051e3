package services

import (
	"context"
	"database/sql"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/vytor/weakspot/internal/analysis"
	"github.com/vytor/weakspot/internal/errors"
	"github.com/vytor/weakspot/internal/logger"
	"github.com/vytor/weakspot/internal/models"
	"github.com/vytor/weakspot/internal/pgn"
	"github.com/vytor/weakspot/internal/repository"
	"github.com/vytor/weakspot/internal/stats"
	"github.com/vytor/weakspot/internal/worker"
)

// CreateReportRequest asks for a profile of player built from PGN.
type CreateReportRequest struct {
	Player   string `json:"player"`
	PGN      string `json:"pgn"`
	MaxGames int    `json:"max_games,omitempty"`
}

// ReportView is a stored report with its decoded profile and games.
type ReportView struct {
	models.Report
	Profile *stats.Profile      `json:"profile,omitempty"`
	Games   []models.ReportGame `json:"games,omitempty"`
}

// ReportService manages stored profile reports.
type ReportService interface {
	Create(ctx context.Context, req CreateReportRequest, sync bool) (*ReportView, error)
	Process(ctx context.Context, reportID int64, pgnText string) error
	Get(ctx context.Context, publicID string) (*ReportView, error)
	List(ctx context.Context, filter models.ReportFilter) ([]models.Report, int, error)
	Delete(ctx context.Context, publicID string) error
	ResumePending(ctx context.Context) (int, error)
}

type reportService struct {
	reportRepo repository.ReportRepository
	profiles   ProfileService
	queue      worker.Submitter
}

// NewReportService creates a new ReportService. queue may be nil, in which
// case every report is built inline.
func NewReportService(reportRepo repository.ReportRepository, profiles ProfileService, queue worker.Submitter) ReportService {
	return &reportService{reportRepo: reportRepo, profiles: profiles, queue: queue}
}

func (s *reportService) Create(ctx context.Context, req CreateReportRequest, sync bool) (*ReportView, error) {
	log := logger.FromContext(ctx)
	log.Debug("creating report: player=%s, max_games=%d, sync=%v", req.Player, req.MaxGames, sync)

	if strings.TrimSpace(req.PGN) == "" {
		return nil, errors.NewValidationError("pgn", "cannot be empty")
	}
	if req.MaxGames < 0 {
		return nil, errors.NewValidationError("max_games", "cannot be negative")
	}

	report := models.Report{
		PublicID: uuid.NewString(),
		Player:   strings.TrimSpace(req.Player),
		Status:   models.ReportPending,
		MaxGames: req.MaxGames,
		PGN:      req.PGN,
	}
	id, err := s.reportRepo.Create(ctx, report)
	if err != nil {
		log.Error("failed to create report: %v", err)
		return nil, errors.NewInternalError(err)
	}
	report.ID = id
	log = log.WithField("report_id", id)

	if sync || s.queue == nil {
		if err := s.Process(logger.NewContext(ctx, log), id, req.PGN); err != nil {
			return nil, err
		}
		return s.Get(ctx, report.PublicID)
	}

	if err := s.queue.Submit(&worker.BuildReportJob{Processor: s, ReportID: id, PGN: req.PGN}); err != nil {
		log.Warn("failed to queue report: %v", err)
		if uerr := s.reportRepo.UpdateStatus(ctx, id, models.ReportFailed, err.Error()); uerr != nil {
			log.Error("failed to mark report failed: %v", uerr)
		}
		if appErr, ok := errors.As(err); ok {
			return nil, appErr
		}
		return nil, errors.NewInternalError(err)
	}

	log.Info("report queued")
	return &ReportView{Report: report}, nil
}

// Process builds the profile for a stored report. Any failure is recorded
// on the report before it is returned.
func (s *reportService) Process(ctx context.Context, reportID int64, pgnText string) error {
	log := logger.FromContext(ctx).WithField("report_id", reportID)

	report, err := s.reportRepo.Get(ctx, reportID)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return errors.NewNotFoundError("report", reportID)
		}
		log.Error("failed to load report: %v", err)
		return errors.NewInternalError(err)
	}
	if pgnText == "" {
		pgnText = report.PGN
	}

	if err := s.reportRepo.UpdateStatus(ctx, reportID, models.ReportProcessing, ""); err != nil {
		log.Error("failed to mark report processing: %v", err)
		return errors.NewInternalError(err)
	}

	result, err := s.build(logger.NewContext(ctx, log), report, pgnText)
	if err == nil {
		err = s.reportRepo.Complete(ctx, reportID, *result)
	}
	if err != nil {
		log.Error("report failed: %v", err)
		if uerr := s.reportRepo.UpdateStatus(ctx, reportID, models.ReportFailed, err.Error()); uerr != nil {
			log.Error("failed to mark report failed: %v", uerr)
		}
		if appErr, ok := errors.As(err); ok {
			return appErr
		}
		return errors.NewInternalError(err)
	}

	log.Info("report completed: %d games, %d mistakes", result.GamesAnalyzed, result.TotalMistakes)
	return nil
}

func (s *reportService) build(ctx context.Context, report *models.Report, pgnText string) (*models.ReportResult, error) {
	games := pgn.SplitGames(pgnText)
	if len(games) == 0 {
		return nil, errors.NewValidationError("pgn", "no games found")
	}

	built, err := s.profiles.Build(ctx, games, report.Player, report.MaxGames)
	if err != nil {
		return nil, fmt.Errorf("build profile: %w", err)
	}

	profileJSON, err := json.Marshal(built.Profile)
	if err != nil {
		return nil, fmt.Errorf("encode profile: %w", err)
	}

	rows := make([]models.ReportGame, 0, len(built.Games))
	for _, g := range built.Games {
		mistakesJSON, err := json.Marshal(g.Mistakes)
		if err != nil {
			return nil, fmt.Errorf("encode mistakes for game %d: %w", g.Index, err)
		}
		rows = append(rows, reportGameFrom(g, string(mistakesJSON)))
	}

	return &models.ReportResult{
		GamesAnalyzed: built.Profile.GamesAnalyzed,
		GamesSkipped:  built.Profile.GamesSkipped,
		TotalMistakes: built.Profile.TotalMistakes,
		ProfileJSON:   string(profileJSON),
		Games:         rows,
	}, nil
}

func reportGameFrom(g analysis.GameReport, mistakesJSON string) models.ReportGame {
	return models.ReportGame{
		GameIndex:    g.Index,
		Ref:          g.Ref,
		Color:        string(g.Color),
		Result:       g.Result,
		Outcome:      string(g.Outcome),
		Opening:      g.Opening,
		Rating:       g.Rating,
		Plies:        g.Plies,
		Mistakes:     len(g.Mistakes),
		MistakesJSON: mistakesJSON,
		Skipped:      g.Skipped,
		SkipReason:   g.SkipReason,
	}
}

func (s *reportService) Get(ctx context.Context, publicID string) (*ReportView, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting report: public_id=%s", publicID)

	if _, err := uuid.Parse(publicID); err != nil {
		return nil, errors.NewNotFoundError("report", publicID)
	}

	report, err := s.reportRepo.GetByPublicID(ctx, publicID)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NewNotFoundError("report", publicID)
		}
		log.Error("failed to get report: %v", err)
		return nil, errors.NewInternalError(err)
	}

	view := &ReportView{Report: *report}
	if report.Status != models.ReportCompleted {
		return view, nil
	}

	var profile stats.Profile
	if err := json.Unmarshal([]byte(report.ProfileJSON), &profile); err != nil {
		log.Error("stored profile for report %d is corrupt: %v", report.ID, err)
		return nil, errors.NewInternalError(err)
	}
	view.Profile = &profile

	games, err := s.reportRepo.Games(ctx, report.ID)
	if err != nil {
		log.Error("failed to load report games: %v", err)
		return nil, errors.NewInternalError(err)
	}
	view.Games = games
	return view, nil
}

func (s *reportService) List(ctx context.Context, filter models.ReportFilter) ([]models.Report, int, error) {
	log := logger.FromContext(ctx)
	log.Debug("listing reports: player=%s, status=%s", filter.Player, filter.Status)

	if filter.Status != "" && !filter.Status.Valid() {
		return nil, 0, errors.NewValidationError("status", fmt.Sprintf("unknown status %q", filter.Status))
	}

	reports, err := s.reportRepo.List(ctx, filter)
	if err != nil {
		log.Error("failed to list reports: %v", err)
		return nil, 0, errors.NewInternalError(err)
	}
	total, err := s.reportRepo.Count(ctx, filter)
	if err != nil {
		log.Error("failed to count reports: %v", err)
		return nil, 0, errors.NewInternalError(err)
	}
	return reports, total, nil
}

func (s *reportService) Delete(ctx context.Context, publicID string) error {
	log := logger.FromContext(ctx)

	view, err := s.Get(ctx, publicID)
	if err != nil {
		return err
	}
	if err := s.reportRepo.Delete(ctx, view.ID); err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return errors.NewNotFoundError("report", publicID)
		}
		log.Error("failed to delete report: %v", err)
		return errors.NewInternalError(err)
	}
	log.Info("report deleted: public_id=%s", publicID)
	return nil
}

const resumePageSize = 500

// ResumePending requeues reports that a previous run accepted but never
// finished. It returns how many were queued.
func (s *reportService) ResumePending(ctx context.Context) (int, error) {
	log := logger.FromContext(ctx)

	if _, err := s.reportRepo.ResetProcessingToPending(ctx); err != nil {
		return 0, errors.NewInternalError(err)
	}
	if s.queue == nil {
		return 0, nil
	}

	// Collect every page before submitting: workers move reports out of
	// pending, which would shift later offsets.
	var pending []models.Report
	for offset := 0; ; offset += resumePageSize {
		page, err := s.reportRepo.List(ctx, models.ReportFilter{
			Status:   models.ReportPending,
			OrderDir: "ASC",
			Limit:    resumePageSize,
			Offset:   offset,
		})
		if err != nil {
			return 0, errors.NewInternalError(err)
		}
		pending = append(pending, page...)
		if len(page) < resumePageSize {
			break
		}
	}
	if len(pending) == 0 {
		return 0, nil
	}

	queued := lo.CountBy(pending, func(r models.Report) bool {
		if err := s.queue.Submit(&worker.BuildReportJob{Processor: s, ReportID: r.ID, PGN: r.PGN}); err != nil {
			log.Warn("failed to requeue report %d: %v", r.ID, err)
			return false
		}
		return true
	})
	log.Info("requeued %d of %d pending reports", queued, len(pending))
	return queued, nil
}
