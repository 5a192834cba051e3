package services

import (
	"os"
	"testing"

	"github.com/vytor/weakspot/internal/logger"
)

func TestMain(m *testing.M) {
	logger.SetDefault(logger.Discard())
	os.Exit(m.Run())
}

// White hangs the queen on g4 for the c8 bishop.
const hangingQueenPGN = `[White "alice"]
[Black "bob"]
[Result "0-1"]
[ECO "B01"]
[WhiteElo "1620"]

1. e4 d5 2. Qg4 Nf6 0-1`

// Nothing goes wrong for either side.
const quietPGN = `[White "carol"]
[Black "alice"]
[Result "1-0"]
[ECO "C41"]
[BlackElo "1580"]

1. e4 e5 2. Nf3 d6 3. d4 1-0`

// The third move is illegal.
const brokenPGN = `[White "alice"]
[Black "dave"]
[Result "*"]

1. e4 e5 2. Ke3 *`

const batchPGN = hangingQueenPGN + "\n\n" + quietPGN + "\n\n" + brokenPGN + "\n"

// Tags and a result only, as exported for a forfeit.
const forfeitPGN = `[White "alice"]
[Black "erin"]
[Result "1-0"]
[ECO "C41"]
[WhiteElo "1900"]

1-0`

// hangingQueenPGN with a clock comment wrapped onto a line starting with "[".
const wrappedClockPGN = `[White "alice"]
[Black "bob"]
[Result "0-1"]
[ECO "B01"]

1. e4 {[%clk 0:03:00]} 1... d5 2. Qg4 {the exporter wrapped this long comment
[%clk 0:02:58]} 2... Nf6 0-1`
