// Package chessboard adapts corentings/chess positions to the queries the
// mistake classifier needs: side to move, piece lookup, square attackers and
// the full piece map.
package chessboard

import (
	"github.com/corentings/chess/v2"
)

// Position is a read-only view of a board state.
type Position struct {
	turn    chess.Color
	squares map[chess.Square]chess.Piece
}

// NewPosition snapshots pos. A nil pos yields an empty board with white to move.
func NewPosition(pos *chess.Position) Position {
	if pos == nil {
		return Position{turn: chess.White, squares: map[chess.Square]chess.Piece{}}
	}
	return Position{
		turn:    pos.Turn(),
		squares: pos.Board().SquareMap(),
	}
}

// FromPieces builds a position from an explicit piece map.
func FromPieces(turn chess.Color, pieces map[chess.Square]chess.Piece) Position {
	squares := make(map[chess.Square]chess.Piece, len(pieces))
	for sq, p := range pieces {
		if p != chess.NoPiece {
			squares[sq] = p
		}
	}
	return Position{turn: turn, squares: squares}
}

// Turn returns the side to move.
func (p Position) Turn() chess.Color {
	return p.turn
}

// PieceAt returns the piece on sq, or chess.NoPiece.
func (p Position) PieceAt(sq chess.Square) chess.Piece {
	if pc, ok := p.squares[sq]; ok {
		return pc
	}
	return chess.NoPiece
}

// PieceMap returns a copy of every occupied square.
func (p Position) PieceMap() map[chess.Square]chess.Piece {
	out := make(map[chess.Square]chess.Piece, len(p.squares))
	for sq, pc := range p.squares {
		out[sq] = pc
	}
	return out
}

// PieceCount returns the number of pieces on the board, kings included.
func (p Position) PieceCount() int {
	return len(p.squares)
}

// Count returns how many pieces of the given type and color are on the board.
func (p Position) Count(c chess.Color, t chess.PieceType) int {
	n := 0
	for _, pc := range p.squares {
		if pc.Color() == c && pc.Type() == t {
			n++
		}
	}
	return n
}
