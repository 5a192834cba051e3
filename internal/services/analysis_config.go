package services

import (
	"fmt"

	"github.com/vytor/weakspot/internal/analysis"
	"github.com/vytor/weakspot/internal/config"
	"github.com/vytor/weakspot/internal/openings"
	"github.com/vytor/weakspot/internal/stats"
)

// NewAnalyzerFromConfig builds the per-game analyzer: phase limits, player
// matching and the openings table, loaded once here and shared read-only.
func NewAnalyzerFromConfig(cfg config.Config) (*analysis.Analyzer, error) {
	table, err := openings.Load(cfg.OpeningsCSV)
	if err != nil {
		return nil, fmt.Errorf("load openings table: %w", err)
	}
	return analysis.NewAnalyzer(analysis.Options{
		Phase: analysis.PhaseRules{
			OpeningMoves:  cfg.OpeningMoves,
			EndgamePieces: cfg.EndgamePieces,
		},
		Match:    analysis.MatchStrategy(cfg.ColorMatch),
		Openings: table,
	}), nil
}

// ProfileConfigFrom maps the batch settings out of cfg.
func ProfileConfigFrom(cfg config.Config) (ProfileConfig, error) {
	denom, err := stats.ParseDenominator(cfg.PercentBase)
	if err != nil {
		return ProfileConfig{}, err
	}
	return ProfileConfig{
		MaxGames:      cfg.MaxGames,
		Workers:       cfg.AnalysisWorkers,
		TopWeaknesses: cfg.TopWeaknesses,
		TopOpenings:   cfg.TopOpenings,
		Denominator:   denom,
	}, nil
}
