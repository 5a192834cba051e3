package chessboard

import (
	"sort"

	"github.com/corentings/chess/v2"
)

type offset struct{ df, dr int }

var (
	knightJumps = []offset{{1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}, {-1, 2}}
	kingSteps   = []offset{{1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}, {0, -1}, {1, -1}}
	diagonals   = []offset{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	orthogonals = []offset{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
)

func fileRank(sq chess.Square) (int, int) {
	return int(sq) % 8, int(sq) / 8
}

func squareAt(file, rank int) (chess.Square, bool) {
	if file < 0 || file > 7 || rank < 0 || rank > 7 {
		return chess.NoSquare, false
	}
	return chess.Square(rank*8 + file), true
}

// Attackers returns the squares holding a piece of side that attacks target,
// in ascending square order. Pins are ignored and x-rays are not followed:
// only the first piece along each line counts.
func (p Position) Attackers(side chess.Color, target chess.Square) []chess.Square {
	f, r := fileRank(target)
	var out []chess.Square

	add := func(sq chess.Square, types ...chess.PieceType) {
		pc := p.PieceAt(sq)
		if pc == chess.NoPiece || pc.Color() != side {
			return
		}
		for _, t := range types {
			if pc.Type() == t {
				out = append(out, sq)
				return
			}
		}
	}

	// A white pawn attacks upward, so it sits one rank below the target.
	pawnRank := r - 1
	if side == chess.Black {
		pawnRank = r + 1
	}
	for _, df := range []int{-1, 1} {
		if sq, ok := squareAt(f+df, pawnRank); ok {
			add(sq, chess.Pawn)
		}
	}

	for _, o := range knightJumps {
		if sq, ok := squareAt(f+o.df, r+o.dr); ok {
			add(sq, chess.Knight)
		}
	}
	for _, o := range kingSteps {
		if sq, ok := squareAt(f+o.df, r+o.dr); ok {
			add(sq, chess.King)
		}
	}

	p.slide(f, r, diagonals, func(sq chess.Square) { add(sq, chess.Bishop, chess.Queen) })
	p.slide(f, r, orthogonals, func(sq chess.Square) { add(sq, chess.Rook, chess.Queen) })

	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// slide walks each direction from (f, r) and reports the first occupied square.
func (p Position) slide(f, r int, dirs []offset, hit func(chess.Square)) {
	for _, d := range dirs {
		for step := 1; ; step++ {
			sq, ok := squareAt(f+d.df*step, r+d.dr*step)
			if !ok {
				break
			}
			if p.PieceAt(sq) != chess.NoPiece {
				hit(sq)
				break
			}
		}
	}
}

// IsAttacked reports whether side attacks target at least once.
func (p Position) IsAttacked(side chess.Color, target chess.Square) bool {
	return len(p.Attackers(side, target)) > 0
}
