package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/vytor/weakspot/internal/analysis"
	"github.com/vytor/weakspot/internal/logger"
	"github.com/vytor/weakspot/internal/pgn"
	"github.com/vytor/weakspot/internal/stats"
	"golang.org/x/sync/errgroup"
)

// FallbackPlayer names the player when neither the caller nor the first
// game supplies one.
const FallbackPlayer = "Player"

// ProfileConfig holds the batch limits and summary options.
type ProfileConfig struct {
	MaxGames      int // games beyond this are ignored; 0 means no cap
	Workers       int // games analyzed concurrently; <= 1 runs sequentially
	TopWeaknesses int
	TopOpenings   int
	Denominator   stats.Denominator
}

// ProfileResult is a built profile together with the per-game reports it
// was folded from, in input order.
type ProfileResult struct {
	Profile stats.Profile         `json:"profile"`
	Games   []analysis.GameReport `json:"games"`
}

// ProfileService turns a batch of PGN games into a weakness profile.
type ProfileService interface {
	Build(ctx context.Context, games []string, player string, maxGames int) (*ProfileResult, error)
}

type profileService struct {
	analyzer *analysis.Analyzer
	cfg      ProfileConfig
}

// NewProfileService creates a new ProfileService
func NewProfileService(analyzer *analysis.Analyzer, cfg ProfileConfig) ProfileService {
	if analyzer == nil {
		analyzer = analysis.NewAnalyzer(analysis.Options{})
	}
	if analyzer.Options().Match == analysis.MatchSubstring {
		logger.Default().WithPrefix("profile").Warn("substring player matching is enabled; short names can match the wrong player")
	}
	return &profileService{analyzer: analyzer, cfg: cfg}
}

// Build caps games at maxGames (or the configured cap when maxGames <= 0),
// analyzes each one in isolation and merges the reports in input order.
// Bad games are skipped, never fatal; only context cancellation aborts.
func (s *profileService) Build(ctx context.Context, games []string, player string, maxGames int) (*ProfileResult, error) {
	log := logger.FromContext(ctx)

	limit := s.cfg.MaxGames
	if maxGames > 0 {
		limit = maxGames
	}
	if limit > 0 && len(games) > limit {
		log.Debug("capping batch from %d to %d games", len(games), limit)
		games = games[:limit]
	}

	player = resolvePlayer(player, games)
	log = log.WithField("player", player)
	log.Info("analyzing %d games", len(games))

	reports, err := s.analyzeAll(logger.NewContext(ctx, log), games, player)
	if err != nil {
		return nil, err
	}

	builder := stats.NewBuilder(player, stats.Options{
		Denominator:   s.cfg.Denominator,
		TopWeaknesses: s.cfg.TopWeaknesses,
		TopOpenings:   s.cfg.TopOpenings,
	})
	for _, r := range reports {
		builder.Add(r)
	}

	profile := builder.Profile()
	log.Info("profile built: %d games, %d skipped, %d mistakes",
		profile.GamesAnalyzed, profile.GamesSkipped, profile.TotalMistakes)
	return &ProfileResult{Profile: profile, Games: reports}, nil
}

func (s *profileService) analyzeAll(ctx context.Context, games []string, player string) ([]analysis.GameReport, error) {
	reports := make([]analysis.GameReport, len(games))

	if s.cfg.Workers <= 1 {
		for i, text := range games {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			reports[i] = s.analyzeOne(ctx, i, text, player)
		}
		return reports, nil
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Workers)
	for i, text := range games {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			// Each goroutine owns its slot; merging happens after Wait.
			reports[i] = s.analyzeOne(gCtx, i, text, player)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

// analyzeOne keeps a panic in one game from taking down the batch.
func (s *profileService) analyzeOne(ctx context.Context, index int, text, player string) (report analysis.GameReport) {
	defer func() {
		if r := recover(); r != nil {
			logger.FromContext(ctx).WithField("game", index).Error("analysis panicked: %v", r)
			report = analysis.Skipped(index, fmt.Errorf("analysis panicked: %v", r))
		}
	}()
	return s.analyzer.AnalyzeText(ctx, index, text, player)
}

func resolvePlayer(player string, games []string) string {
	if p := strings.TrimSpace(player); p != "" {
		return p
	}
	if len(games) > 0 {
		headers := pgn.ParsePGNHeaders(games[0])
		for _, key := range []string{"White", "Black"} {
			if v := strings.TrimSpace(headers[key]); v != "" {
				return v
			}
		}
	}
	return FallbackPlayer
}
