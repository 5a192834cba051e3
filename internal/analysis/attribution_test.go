package analysis_test

import (
	"testing"

	"github.com/corentings/chess/v2"
	"github.com/stretchr/testify/assert"
	"github.com/vytor/weakspot/internal/analysis"
)

func TestResolveColor(t *testing.T) {
	g := mustParse(t, 0, rookGift) // alice vs Bob

	tests := []struct {
		name     string
		player   string
		strategy analysis.MatchStrategy
		expected analysis.Color
	}{
		{"exact white", "alice", analysis.MatchExact, analysis.ColorWhite},
		{"case and space folded", "  ALICE ", analysis.MatchExact, analysis.ColorWhite},
		{"exact black", "bob", analysis.MatchExact, analysis.ColorBlack},
		{"absent player", "carol", analysis.MatchExact, analysis.ColorUnknown},
		{"prefix is not exact", "al", analysis.MatchExact, analysis.ColorUnknown},
		{"prefix matches as substring", "al", analysis.MatchSubstring, analysis.ColorWhite},
		{"empty player", "", analysis.MatchSubstring, analysis.ColorUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, analysis.ResolveColor(tt.player, g, tt.strategy))
		})
	}
}

func TestResolveColor_BothSidesMatch(t *testing.T) {
	g := mustParse(t, 0, `[White "bobby"]
[Black "bobcat"]

1. e4 *`)
	assert.Equal(t, analysis.ColorUnknown, analysis.ResolveColor("bob", g, analysis.MatchSubstring))
	assert.Equal(t, analysis.ColorUnknown, analysis.ResolveColor("bob", nil, analysis.MatchExact))
}

func TestColorSide(t *testing.T) {
	assert.Equal(t, chess.White, analysis.ColorWhite.Side())
	assert.Equal(t, chess.Black, analysis.ColorBlack.Side())
	assert.Equal(t, chess.NoColor, analysis.ColorUnknown.Side())
	assert.False(t, analysis.ColorUnknown.Known())
}

func TestOutcomeFor(t *testing.T) {
	tests := []struct {
		result   string
		color    analysis.Color
		expected analysis.Outcome
	}{
		{"1-0", analysis.ColorWhite, analysis.OutcomeWin},
		{"1-0", analysis.ColorBlack, analysis.OutcomeLoss},
		{"0-1", analysis.ColorBlack, analysis.OutcomeWin},
		{"0-1", analysis.ColorWhite, analysis.OutcomeLoss},
		{"1/2-1/2", analysis.ColorWhite, analysis.OutcomeDraw},
		{"1/2-1/2", analysis.ColorBlack, analysis.OutcomeDraw},
		{"*", analysis.ColorWhite, analysis.OutcomeUnknown},
		{"1-0", analysis.ColorUnknown, analysis.OutcomeUnknown},
		{"1/2-1/2", analysis.ColorUnknown, analysis.OutcomeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.result+"/"+string(tt.color), func(t *testing.T) {
			assert.Equal(t, tt.expected, analysis.OutcomeFor(tt.result, tt.color))
		})
	}
}

func TestPlayerRating(t *testing.T) {
	g := mustParse(t, 0, quietGame)
	assert.Equal(t, 1610, analysis.PlayerRating(g, analysis.ColorWhite))
	assert.Equal(t, 0, analysis.PlayerRating(g, analysis.ColorBlack))
	assert.Equal(t, 0, analysis.PlayerRating(g, analysis.ColorUnknown))
}
