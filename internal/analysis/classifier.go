package analysis

import (
	"github.com/corentings/chess/v2"
	"github.com/vytor/weakspot/internal/chessboard"
)

// MistakeKind labels a flagged move. Kinds are mutually exclusive per move.
type MistakeKind string

const (
	KindNone           MistakeKind = ""
	KindBlunder        MistakeKind = "blunder"
	KindRegularMistake MistakeKind = "regular_mistake"
	KindHangingPiece   MistakeKind = "hanging_piece"
)

// Kinds lists every mistake kind in precedence order.
var Kinds = []MistakeKind{KindBlunder, KindRegularMistake, KindHangingPiece}

const (
	BlunderThreshold = 3
	MistakeThreshold = 1
)

// Verdict is the classifier's finding for one move, with the numbers it used.
type Verdict struct {
	Kind         MistakeKind
	MaterialLoss int
	Attackers    int
	Defenders    int
}

// IsMistake reports whether the move was flagged at all.
func (v Verdict) IsMistake() bool {
	return v.Kind != KindNone
}

// Classify judges step from side's point of view. Material rules take
// precedence; the hanging-piece rule only applies when material did not move
// and the piece on the destination square belongs to side.
func Classify(step chessboard.Step, side chess.Color) Verdict {
	loss := MaterialLoss(Balance(step.Before), Balance(step.After), side)

	switch {
	case loss >= BlunderThreshold:
		return Verdict{Kind: KindBlunder, MaterialLoss: loss}
	case loss >= MistakeThreshold:
		return Verdict{Kind: KindRegularMistake, MaterialLoss: loss}
	}

	if step.Move == nil {
		return Verdict{}
	}
	dest := step.Move.S2()
	piece := step.After.PieceAt(dest)
	if piece == chess.NoPiece || piece.Color() != side {
		return Verdict{}
	}

	attackers := len(step.After.Attackers(side.Other(), dest))
	if attackers == 0 {
		return Verdict{}
	}
	defenders := len(step.After.Attackers(side, dest))
	if attackers > defenders {
		return Verdict{Kind: KindHangingPiece, Attackers: attackers, Defenders: defenders}
	}
	return Verdict{Attackers: attackers, Defenders: defenders}
}
