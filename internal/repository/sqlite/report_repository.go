package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/weakspot/internal/logger"
	"github.com/vytor/weakspot/internal/models"
	"github.com/vytor/weakspot/internal/repository"
)

var reportColumns = []string{
	"id", "public_id", "player", "status", "error", "max_games", "pgn",
	"games_analyzed", "games_skipped", "total_mistakes", "profile_json",
	"created_at", "updated_at", "completed_at",
}

type reportRepository struct {
	db *sql.DB
}

// NewReportRepository creates a new ReportRepository implementation
func NewReportRepository(db *sql.DB) repository.ReportRepository {
	return &reportRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReport(row rowScanner) (*models.Report, error) {
	var r models.Report
	var completed sql.NullTime
	if err := row.Scan(&r.ID, &r.PublicID, &r.Player, &r.Status, &r.Error, &r.MaxGames, &r.PGN,
		&r.GamesAnalyzed, &r.GamesSkipped, &r.TotalMistakes, &r.ProfileJSON,
		&r.CreatedAt, &r.UpdatedAt, &completed); err != nil {
		return nil, err
	}
	if completed.Valid {
		t := completed.Time
		r.CompletedAt = &t
	}
	return &r, nil
}

func (r *reportRepository) Create(ctx context.Context, report models.Report) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("report_repo")
	log.Debug("creating report: public_id=%s, player=%s", report.PublicID, report.Player)

	if report.Status == "" {
		report.Status = models.ReportPending
	}

	query, args, err := sqlBuilder.Insert("reports").
		Columns("public_id", "player", "status", "error", "max_games", "pgn").
		Values(report.PublicID, report.Player, report.Status, report.Error, report.MaxGames, report.PGN).
		ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return 0, err
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to insert report: %v", err)
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	log.Debug("report created: id=%d", id)
	return id, nil
}

func (r *reportRepository) getBy(ctx context.Context, where squirrel.Eq) (*models.Report, error) {
	log := logger.FromContext(ctx).WithPrefix("report_repo")

	query, args, err := sqlBuilder.Select(reportColumns...).From("reports").Where(where).ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	report, err := scanReport(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("report not found: %v", where)
		} else {
			log.Error("failed to get report: %v", err)
		}
		return nil, err
	}
	return report, nil
}

func (r *reportRepository) Get(ctx context.Context, id int64) (*models.Report, error) {
	return r.getBy(ctx, squirrel.Eq{"id": id})
}

func (r *reportRepository) GetByPublicID(ctx context.Context, publicID string) (*models.Report, error) {
	return r.getBy(ctx, squirrel.Eq{"public_id": publicID})
}

func applyReportFilter(q squirrel.SelectBuilder, filter models.ReportFilter) squirrel.SelectBuilder {
	if filter.Player != "" {
		q = q.Where("LOWER(player) = LOWER(?)", filter.Player)
	}
	if filter.Status != "" {
		q = q.Where(squirrel.Eq{"status": filter.Status})
	}
	return q
}

func (r *reportRepository) List(ctx context.Context, filter models.ReportFilter) ([]models.Report, error) {
	log := logger.FromContext(ctx).WithPrefix("report_repo")
	log.Debug("listing reports with filter: player=%s, status=%s, limit=%d, offset=%d",
		filter.Player, filter.Status, filter.Limit, filter.Offset)

	query := applyReportFilter(sqlBuilder.Select(reportColumns...).From("reports"), filter)

	orderDir := "DESC"
	if filter.OrderDir == "ASC" {
		orderDir = "ASC"
	}
	query = query.OrderBy("created_at "+orderDir, "id "+orderDir)

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	query = query.Limit(uint64(limit)).Offset(uint64(offset))

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to list reports: %v", err)
		return nil, err
	}
	defer rows.Close()

	reports := []models.Report{}
	for rows.Next() {
		report, err := scanReport(rows)
		if err != nil {
			log.Error("failed to scan report row: %v", err)
			return nil, err
		}
		reports = append(reports, *report)
	}
	log.Debug("found %d reports", len(reports))
	return reports, rows.Err()
}

func (r *reportRepository) Count(ctx context.Context, filter models.ReportFilter) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("report_repo")

	sqlStr, args, err := applyReportFilter(sqlBuilder.Select("COUNT(*)").From("reports"), filter).ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return 0, err
	}

	var count int
	if err := r.db.QueryRowContext(ctx, sqlStr, args...).Scan(&count); err != nil {
		log.Error("failed to count reports: %v", err)
		return 0, err
	}
	return count, nil
}

func (r *reportRepository) UpdateStatus(ctx context.Context, id int64, status models.ReportStatus, errMsg string) error {
	log := logger.FromContext(ctx).WithPrefix("report_repo")
	log.Debug("updating report status: id=%d, status=%s", id, status)

	sqlStr, args, err := sqlBuilder.Update("reports").
		Set("status", status).
		Set("error", errMsg).
		Set("updated_at", squirrel.Expr("CURRENT_TIMESTAMP")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return err
	}

	res, err := r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to update report status: %v", err)
		return err
	}
	return expectRows(res)
}

// Complete stores the finished profile and its per-game rows in one
// transaction. Rows from an earlier attempt are replaced.
func (r *reportRepository) Complete(ctx context.Context, id int64, result models.ReportResult) error {
	log := logger.FromContext(ctx).WithPrefix("report_repo")
	log.Debug("completing report: id=%d, games=%d, mistakes=%d", id, result.GamesAnalyzed, result.TotalMistakes)

	return tx(ctx, r.db, func(tx *sql.Tx) error {
		sqlStr, args, err := sqlBuilder.Update("reports").
			Set("status", models.ReportCompleted).
			Set("error", "").
			Set("games_analyzed", result.GamesAnalyzed).
			Set("games_skipped", result.GamesSkipped).
			Set("total_mistakes", result.TotalMistakes).
			Set("profile_json", result.ProfileJSON).
			Set("updated_at", squirrel.Expr("CURRENT_TIMESTAMP")).
			Set("completed_at", squirrel.Expr("CURRENT_TIMESTAMP")).
			Where(squirrel.Eq{"id": id}).
			ToSql()
		if err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx, sqlStr, args...)
		if err != nil {
			log.Error("failed to update report: %v", err)
			return err
		}
		if err := expectRows(res); err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM report_games WHERE report_id = ?`, id); err != nil {
			log.Error("failed to clear report games: %v", err)
			return err
		}
		if len(result.Games) == 0 {
			return nil
		}

		insert := sqlBuilder.Insert("report_games").Columns(
			"report_id", "game_index", "ref", "color", "result", "outcome", "opening",
			"rating", "plies", "mistakes", "mistakes_json", "skipped", "skip_reason",
		)
		for _, g := range result.Games {
			mistakesJSON := g.MistakesJSON
			if mistakesJSON == "" {
				mistakesJSON = "[]"
			}
			insert = insert.Values(id, g.GameIndex, g.Ref, g.Color, g.Result, g.Outcome, g.Opening,
				g.Rating, g.Plies, g.Mistakes, mistakesJSON, g.Skipped, g.SkipReason)
		}
		sqlStr, args, err = insert.ToSql()
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, sqlStr, args...); err != nil {
			log.Error("failed to insert report games: %v", err)
			return err
		}
		return nil
	})
}

func (r *reportRepository) Games(ctx context.Context, reportID int64) ([]models.ReportGame, error) {
	log := logger.FromContext(ctx).WithPrefix("report_repo")
	log.Debug("listing games for report: id=%d", reportID)

	sqlStr, args, err := sqlBuilder.Select(
		"report_id", "game_index", "ref", "color", "result", "outcome", "opening",
		"rating", "plies", "mistakes", "mistakes_json", "skipped", "skip_reason",
	).From("report_games").
		Where(squirrel.Eq{"report_id": reportID}).
		OrderBy("game_index ASC").
		ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to list report games: %v", err)
		return nil, err
	}
	defer rows.Close()

	games := []models.ReportGame{}
	for rows.Next() {
		var g models.ReportGame
		if err := rows.Scan(&g.ReportID, &g.GameIndex, &g.Ref, &g.Color, &g.Result, &g.Outcome, &g.Opening,
			&g.Rating, &g.Plies, &g.Mistakes, &g.MistakesJSON, &g.Skipped, &g.SkipReason); err != nil {
			log.Error("failed to scan report game row: %v", err)
			return nil, err
		}
		games = append(games, g)
	}
	return games, rows.Err()
}

// ResetProcessingToPending requeues reports left mid-build by a previous run.
func (r *reportRepository) ResetProcessingToPending(ctx context.Context) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("report_repo")
	log.Debug("resetting processing reports to pending")

	res, err := r.db.ExecContext(ctx, `
UPDATE reports
SET status = 'pending', updated_at = CURRENT_TIMESTAMP
WHERE status = 'processing'
`)
	if err != nil {
		log.Error("failed to reset processing reports: %v", err)
		return 0, err
	}
	return res.RowsAffected()
}

func (r *reportRepository) Delete(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx).WithPrefix("report_repo")
	log.Debug("deleting report: id=%d", id)

	return tx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM report_games WHERE report_id = ?`, id); err != nil {
			log.Error("failed to delete games for report %d: %v", id, err)
			return err
		}
		res, err := tx.ExecContext(ctx, `DELETE FROM reports WHERE id = ?`, id)
		if err != nil {
			log.Error("failed to delete report %d: %v", id, err)
			return err
		}
		return expectRows(res)
	})
}
