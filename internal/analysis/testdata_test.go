package analysis_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vytor/weakspot/internal/chessboard"
	"github.com/vytor/weakspot/internal/pgn"
)

// Morphy vs Duke Karl / Count Isouard, Paris 1858.
const operaGame = `[Event "Paris"]
[White "Morphy"]
[Black "Duke Karl / Count Isouard"]
[Result "1-0"]
[ECO "C41"]

1. e4 e5 2. Nf3 d6 3. d4 Bg4 4. dxe5 Bxf3 5. Qxf3 dxe5 6. Bc4 Nf6 7. Qb3 Qe7
8. Nc3 c6 9. Bg5 b5 10. Nxb5 cxb5 11. Bxb5+ Nbd7 12. O-O-O Rd8 13. Rxd7 Rxd7
14. Rd1 Qe6 15. Bxd7+ Nxd7 16. Qb8+ Nxb8 17. Rd8# 1-0`

// White's queen lands on g4 where the c8 bishop hits it and nothing defends.
const queenHangs = `[White "Alice"]
[Black "bob"]
[Result "0-1"]

1. e4 d5 2. Qg4 Nf6 0-1`

// White walks a rook to g6, black takes it with the h-pawn on ply 8.
const rookGift = `[White "alice"]
[Black "Bob"]
[Result "*"]
[Opening "Rook Lift Gambit"]

1. h4 e6 2. Rh3 a6 3. Rg3 a5 4. Rg6 hxg6 *`

// Every white move is safe: d4 is hit once by e5 and covered twice.
const quietGame = `[White "alice"]
[Black "bob"]
[Result "1/2-1/2"]
[ECO "C41"]
[WhiteElo "1610"]

1. e4 e5 2. Nf3 d6 3. d4 1/2-1/2`

func mustParse(t *testing.T, index int, text string) *pgn.Game {
	t.Helper()
	g, err := pgn.Parse(index, text)
	require.NoError(t, err)
	return g
}

func steps(t *testing.T, g *pgn.Game) []chessboard.Step {
	t.Helper()
	r := chessboard.NewReplay(g)
	var out []chessboard.Step
	for {
		s, ok := r.Next()
		if !ok {
			return out
		}
		out = append(out, s)
	}
}

// A forfeit: tags and a result, but no moves.
const forfeit = `[White "alice"]
[Black "bob"]
[Result "1-0"]
[ECO "C41"]

1-0`
