package analysis

import (
	"github.com/corentings/chess/v2"
)

var promoSuffix = map[chess.PieceType]byte{
	chess.Queen:  'q',
	chess.Rook:   'r',
	chess.Bishop: 'b',
	chess.Knight: 'n',
}

// MoveToUCI converts a chess Move to UCI format (e.g., "e2e4", "e7e8q")
func MoveToUCI(move *chess.Move) string {
	if move == nil {
		return ""
	}

	buf := make([]byte, 0, 5)
	buf = appendSquare(buf, move.S1())
	buf = appendSquare(buf, move.S2())
	if c, ok := promoSuffix[move.Promo()]; ok {
		buf = append(buf, c)
	}
	return string(buf)
}

func appendSquare(buf []byte, sq chess.Square) []byte {
	return append(buf, byte('a'+int(sq)%8), byte('1'+int(sq)/8))
}
