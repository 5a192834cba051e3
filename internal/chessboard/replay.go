package chessboard

import (
	"github.com/corentings/chess/v2"
	"github.com/vytor/weakspot/internal/pgn"
)

// Step is one ply of a replay.
type Step struct {
	Index  int // 1-based ply number
	Move   *chess.Move
	Before Position
	After  Position
}

// Mover is the side that played the step's move.
func (s Step) Mover() chess.Color {
	return s.Before.Turn()
}

// Replay walks a game's main line once, front to back.
type Replay struct {
	moves     []*chess.Move
	positions []*chess.Position
	next      int
}

// NewReplay starts a replay of g from its starting position.
func NewReplay(g *pgn.Game) *Replay {
	if g == nil {
		return &Replay{}
	}
	moves := g.Moves
	// Positions should be one longer than moves; trust the shorter of the two.
	if n := len(g.Positions) - 1; n < len(moves) {
		if n < 0 {
			n = 0
		}
		moves = moves[:n]
	}
	return &Replay{moves: moves, positions: g.Positions}
}

// Len is the number of plies the replay will yield in total.
func (r *Replay) Len() int {
	return len(r.moves)
}

// Next advances the replay. It returns false once the main line is exhausted;
// a replay cannot be rewound.
func (r *Replay) Next() (Step, bool) {
	if r.next >= len(r.moves) {
		return Step{}, false
	}
	i := r.next
	r.next++
	return Step{
		Index:  i + 1,
		Move:   r.moves[i],
		Before: NewPosition(r.positions[i]),
		After:  NewPosition(r.positions[i+1]),
	}, true
}
