package analysis_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vytor/weakspot/internal/analysis"
)

func TestPhaseOf(t *testing.T) {
	tests := []struct {
		name      string
		moveIndex int
		pieces    int
		expected  analysis.Phase
	}{
		{"first ply", 1, 32, analysis.PhaseOpening},
		{"last opening ply", 10, 32, analysis.PhaseOpening},
		{"opening wins over piece count", 4, 6, analysis.PhaseOpening},
		{"first middlegame ply", 11, 32, analysis.PhaseMiddlegame},
		{"just above endgame limit", 30, 11, analysis.PhaseMiddlegame},
		{"at endgame limit", 30, 10, analysis.PhaseEndgame},
		{"late with few pieces", 41, 8, analysis.PhaseEndgame},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, analysis.PhaseOf(tt.moveIndex, tt.pieces))
		})
	}
}

func TestPhaseRules_Custom(t *testing.T) {
	rules := analysis.PhaseRules{OpeningMoves: 2, EndgamePieces: 20}
	assert.Equal(t, analysis.PhaseOpening, rules.Classify(2, 32))
	assert.Equal(t, analysis.PhaseMiddlegame, rules.Classify(3, 21))
	assert.Equal(t, analysis.PhaseEndgame, rules.Classify(3, 20))
}
