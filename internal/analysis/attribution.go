package analysis

import (
	"strings"

	"github.com/corentings/chess/v2"
	"github.com/vytor/weakspot/internal/pgn"
)

// Color is the side the tracked player had in a game.
type Color string

const (
	ColorWhite   Color = "white"
	ColorBlack   Color = "black"
	ColorUnknown Color = "unknown"
)

// Known reports whether the color was determined.
func (c Color) Known() bool {
	return c == ColorWhite || c == ColorBlack
}

// Side converts to the chess library's color. Unknown maps to chess.NoColor.
func (c Color) Side() chess.Color {
	switch c {
	case ColorWhite:
		return chess.White
	case ColorBlack:
		return chess.Black
	default:
		return chess.NoColor
	}
}

// Outcome is a game result seen from the tracked player's side.
type Outcome string

const (
	OutcomeWin     Outcome = "win"
	OutcomeLoss    Outcome = "loss"
	OutcomeDraw    Outcome = "draw"
	OutcomeUnknown Outcome = "unknown"
)

// MatchStrategy decides whether a player name matches a header value.
type MatchStrategy string

const (
	// MatchExact compares trimmed, case-folded names for equality.
	MatchExact MatchStrategy = "exact"
	// MatchSubstring accepts the player name anywhere inside the header.
	// "al" matches "alice", so it can attribute games to the wrong player.
	MatchSubstring MatchStrategy = "substring"
)

// Matches applies the strategy. Empty names never match.
func (s MatchStrategy) Matches(player, header string) bool {
	player = strings.ToLower(strings.TrimSpace(player))
	header = strings.ToLower(strings.TrimSpace(header))
	if player == "" || header == "" {
		return false
	}
	if s == MatchSubstring {
		return strings.Contains(header, player)
	}
	return player == header
}

// ResolveColor finds which side player had. A match on both sides, or on
// neither, is unknown.
func ResolveColor(player string, g *pgn.Game, strategy MatchStrategy) Color {
	if g == nil {
		return ColorUnknown
	}
	white := strategy.Matches(player, g.White())
	black := strategy.Matches(player, g.Black())
	switch {
	case white && !black:
		return ColorWhite
	case black && !white:
		return ColorBlack
	default:
		return ColorUnknown
	}
}

// OutcomeFor turns an absolute result token into the player's outcome.
// A draw is a draw for either color; anything else needs a known color.
func OutcomeFor(result string, c Color) Outcome {
	result = strings.TrimSpace(result)
	if result == pgn.ResultDraw || result == "½-½" {
		if c.Known() {
			return OutcomeDraw
		}
		return OutcomeUnknown
	}
	if !c.Known() {
		return OutcomeUnknown
	}
	switch result {
	case pgn.ResultWhiteWins:
		if c == ColorWhite {
			return OutcomeWin
		}
		return OutcomeLoss
	case pgn.ResultBlackWins:
		if c == ColorBlack {
			return OutcomeWin
		}
		return OutcomeLoss
	default:
		return OutcomeUnknown
	}
}

// PlayerRating returns the Elo tag for the player's side, 0 when unknown.
func PlayerRating(g *pgn.Game, c Color) int {
	switch c {
	case ColorWhite:
		return g.WhiteElo()
	case ColorBlack:
		return g.BlackElo()
	default:
		return 0
	}
}
