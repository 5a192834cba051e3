package analysis

// Phase is the stage of the game a move was played in.
type Phase string

const (
	PhaseOpening    Phase = "opening"
	PhaseMiddlegame Phase = "middlegame"
	PhaseEndgame    Phase = "endgame"
)

// Phases lists every phase in game order.
var Phases = []Phase{PhaseOpening, PhaseMiddlegame, PhaseEndgame}

// PhaseRules holds the two limits the phase classifier works from.
type PhaseRules struct {
	OpeningMoves  int // plies up to and including this index are opening
	EndgamePieces int // at or below this many pieces (kings included) is endgame
}

// DefaultPhaseRules returns the 10-ply / 10-piece rules.
func DefaultPhaseRules() PhaseRules {
	return PhaseRules{OpeningMoves: 10, EndgamePieces: 10}
}

// Classify labels a move from its 1-based ply index and the number of pieces
// left on the board after it.
func (r PhaseRules) Classify(moveIndex, pieceCount int) Phase {
	switch {
	case moveIndex <= r.OpeningMoves:
		return PhaseOpening
	case pieceCount <= r.EndgamePieces:
		return PhaseEndgame
	default:
		return PhaseMiddlegame
	}
}

// PhaseOf classifies with the default rules.
func PhaseOf(moveIndex, pieceCount int) Phase {
	return DefaultPhaseRules().Classify(moveIndex, pieceCount)
}
