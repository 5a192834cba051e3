package pgn

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/corentings/chess/v2"
	"github.com/vytor/weakspot/internal/errors"
)

// Result tokens as they appear in the Result tag.
const (
	ResultWhiteWins = "1-0"
	ResultBlackWins = "0-1"
	ResultDraw      = "1/2-1/2"
	ResultUnknown   = "*"
)

var headerRe = regexp.MustCompile(`\[(\w+)\s+"([^"]*)"\]`)

// ParsePGNHeaders extracts PGN header tags into a map
func ParsePGNHeaders(pgn string) map[string]string {
	out := map[string]string{}
	for _, line := range strings.Split(pgn, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "[") {
			continue
		}
		m := headerRe.FindStringSubmatch(line)
		if len(m) == 3 {
			out[m[1]] = m[2]
		}
	}
	return out
}

var tagLineRe = regexp.MustCompile(`^\[\w+\s+"[^"]*"\]$`)

var gameIDRe = regexp.MustCompile(`.*/game/[^/]+/([0-9]+)`)

// ExtractGameID extracts the numeric game id from a chess.com game URL,
// returning the input unchanged when it does not look like one.
func ExtractGameID(url string) string {
	m := gameIDRe.FindStringSubmatch(url)
	if len(m) == 2 {
		return m[1]
	}
	return url
}

// SplitGames cuts a multi-game PGN export into one string per game.
// A game ends where the next tag section starts after movetext. Lines that
// open with "[" inside a {...} comment (wrapped [%clk ...] annotations) do
// not start a new game; a well-formed tag pair still does, so one unclosed
// brace cannot swallow the rest of the export.
func SplitGames(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")

	var games []string
	var cur []string
	seenMoves := false
	inComment := false

	flush := func() {
		chunk := strings.TrimSpace(strings.Join(cur, "\n"))
		if chunk != "" {
			games = append(games, chunk)
		}
		cur = cur[:0]
		seenMoves = false
	}

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		isTag := strings.HasPrefix(trimmed, "[") && (!inComment || tagLineRe.MatchString(trimmed))
		if isTag && seenMoves {
			flush()
			inComment = false
		}
		if trimmed != "" && !isTag {
			seenMoves = true
			inComment = scanComments(trimmed, inComment)
		}
		cur = append(cur, line)
	}
	flush()
	return games
}

// scanComments reports whether a movetext line leaves a brace comment open.
// A ";" outside braces comments out the rest of the line and a leading "%"
// escapes the whole line.
func scanComments(line string, inComment bool) bool {
	if !inComment && strings.HasPrefix(line, "%") {
		return false
	}
	for _, r := range line {
		switch {
		case inComment:
			if r == '}' {
				inComment = false
			}
		case r == '{':
			inComment = true
		case r == ';':
			return false
		}
	}
	return inComment
}

// Game is a parsed game: its header tags plus the replayable main line.
// It is not modified after parsing.
type Game struct {
	Index     int
	Headers   map[string]string
	Moves     []*chess.Move
	Positions []*chess.Position
	Raw       string
}

// Parse reads a single game. index is carried through for reporting.
func Parse(index int, text string) (*Game, error) {
	headers := ParsePGNHeaders(text)
	opt, err := chess.PGN(strings.NewReader(text))
	if err != nil {
		return nil, errors.NewUnparseableGameError(index, err)
	}
	g := FromChessGame(index, headers, chess.NewGame(opt))
	g.Raw = text
	return g, nil
}

// FromChessGame wraps an already replayed chess.Game.
func FromChessGame(index int, headers map[string]string, cg *chess.Game) *Game {
	if headers == nil {
		headers = map[string]string{}
	}
	return &Game{
		Index:     index,
		Headers:   headers,
		Moves:     cg.Moves(),
		Positions: cg.Positions(),
	}
}

func (g *Game) header(key string) string {
	return strings.TrimSpace(g.Headers[key])
}

func (g *Game) White() string   { return g.header("White") }
func (g *Game) Black() string   { return g.header("Black") }
func (g *Game) Opening() string { return g.header("Opening") }
func (g *Game) ECO() string     { return strings.ToUpper(g.header("ECO")) }

// Result returns the Result tag, or "*" when it is absent.
func (g *Game) Result() string {
	if r := g.header("Result"); r != "" {
		return r
	}
	return ResultUnknown
}

// WhiteElo returns the WhiteElo tag, or 0 when missing or not numeric.
func (g *Game) WhiteElo() int { return atoiOrZero(g.header("WhiteElo")) }

// BlackElo returns the BlackElo tag, or 0 when missing or not numeric.
func (g *Game) BlackElo() int { return atoiOrZero(g.header("BlackElo")) }

// Ref identifies the game for humans: a chess.com id when the Link or Site
// tag carries one, otherwise the Site tag itself.
func (g *Game) Ref() string {
	for _, key := range []string{"Link", "Site"} {
		if v := g.header(key); v != "" {
			return ExtractGameID(v)
		}
	}
	return ""
}

func atoiOrZero(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
