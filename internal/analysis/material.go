package analysis

import (
	"github.com/corentings/chess/v2"
	"github.com/vytor/weakspot/internal/chessboard"
)

var pieceValues = map[chess.PieceType]int{
	chess.Pawn:   1,
	chess.Knight: 3,
	chess.Bishop: 3,
	chess.Rook:   5,
	chess.Queen:  9,
}

var valuedTypes = []chess.PieceType{chess.Pawn, chess.Knight, chess.Bishop, chess.Rook, chess.Queen}

// PieceValue returns the material weight of t. Kings are worth 0.
func PieceValue(t chess.PieceType) int {
	return pieceValues[t]
}

// Balance is white's material minus black's. It is always computed from the
// board itself; nothing is carried between calls.
func Balance(pos chessboard.Position) int {
	total := 0
	for _, t := range valuedTypes {
		total += pos.Count(chess.White, t) * pieceValues[t]
		total -= pos.Count(chess.Black, t) * pieceValues[t]
	}
	return total
}

// MaterialLoss is how much poorer side became going from before to after,
// never negative.
func MaterialLoss(before, after int, side chess.Color) int {
	delta := after - before
	if side == chess.White {
		delta = -delta
	}
	if delta < 0 {
		return 0
	}
	return delta
}
