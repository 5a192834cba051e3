package stats_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vytor/weakspot/internal/analysis"
	"github.com/vytor/weakspot/internal/stats"
)

func mistake(kind analysis.MistakeKind, phase analysis.Phase) analysis.Mistake {
	return analysis.Mistake{Kind: kind, Phase: phase}
}

func TestTally_OrderAndCounts(t *testing.T) {
	tally := stats.NewTally()
	tally.AddAll([]analysis.Mistake{
		mistake(analysis.KindHangingPiece, analysis.PhaseMiddlegame),
		mistake(analysis.KindBlunder, analysis.PhaseOpening),
		mistake(analysis.KindHangingPiece, analysis.PhaseOpening),
	})
	tally.Add(analysis.Mistake{})

	assert.Equal(t, []stats.Category{
		stats.CategoryHangingPiece,
		stats.CategoryMiddlegame,
		stats.CategoryBlunder,
		stats.CategoryOpening,
	}, tally.Categories())

	assert.Equal(t, 2, tally.Count(stats.CategoryHangingPiece))
	assert.Equal(t, 2, tally.Count(stats.CategoryOpening))
	assert.Equal(t, 0, tally.Count(stats.CategoryEndgame))
	assert.Equal(t, 3, tally.KindTotal())
	assert.Equal(t, 3, tally.PhaseTotal())
	assert.Equal(t, 6, tally.Total())
}

func TestCategory_Label(t *testing.T) {
	assert.Equal(t, "Blunders", stats.CategoryBlunder.Label())
	assert.Equal(t, "Endgame mistakes", stats.CategoryEndgame.Label())
	assert.Equal(t, "other", stats.Category("other").Label())
	assert.True(t, stats.CategoryMiddlegame.IsPhase())
	assert.False(t, stats.CategoryRegularMistake.IsPhase())
}
