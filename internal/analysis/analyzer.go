package analysis

import (
	"context"

	"github.com/vytor/weakspot/internal/chessboard"
	"github.com/vytor/weakspot/internal/logger"
	"github.com/vytor/weakspot/internal/openings"
	"github.com/vytor/weakspot/internal/pgn"
)

// Mistake is one flagged move of the tracked player.
type Mistake struct {
	GameIndex    int         `json:"game_index"`
	MoveIndex    int         `json:"move_index"`
	Move         string      `json:"move"`
	Kind         MistakeKind `json:"kind"`
	Phase        Phase       `json:"phase"`
	MaterialLoss int         `json:"material_loss"`
	Attackers    int         `json:"attackers,omitempty"`
	Defenders    int         `json:"defenders,omitempty"`
}

// GameReport is everything learned from a single game.
type GameReport struct {
	Index      int       `json:"index"`
	Ref        string    `json:"ref,omitempty"`
	Color      Color     `json:"color"`
	Result     string    `json:"result"`
	Outcome    Outcome   `json:"outcome"`
	Opening    string    `json:"opening"`
	Rating     int       `json:"rating,omitempty"`
	Plies      int       `json:"plies"`
	Mistakes   []Mistake `json:"mistakes"`
	Skipped    bool      `json:"skipped,omitempty"`
	SkipReason string    `json:"skip_reason,omitempty"`
}

// Options configures an Analyzer.
type Options struct {
	Phase    PhaseRules
	Match    MatchStrategy
	Openings *openings.Table
}

// DefaultOptions uses the default phase rules, exact name matching and the
// built-in openings table.
func DefaultOptions() Options {
	table, err := openings.Builtin()
	if err != nil {
		table = openings.FromMap(nil)
	}
	return Options{Phase: DefaultPhaseRules(), Match: MatchExact, Openings: table}
}

// Analyzer runs the per-game walk. It holds no per-game state, so one value
// can serve any number of games, concurrently or not.
type Analyzer struct {
	opts Options
}

// NewAnalyzer creates an Analyzer. Zero-valued options fall back to defaults.
func NewAnalyzer(opts Options) *Analyzer {
	def := DefaultOptions()
	if opts.Phase == (PhaseRules{}) {
		opts.Phase = def.Phase
	}
	if opts.Match == "" {
		opts.Match = def.Match
	}
	if opts.Openings == nil {
		opts.Openings = def.Openings
	}
	return &Analyzer{opts: opts}
}

// Options returns the analyzer's effective options.
func (a *Analyzer) Options() Options {
	return a.opts
}

// AnalyzeText parses and analyzes one game. A game that fails to parse comes
// back as a skipped report rather than an error.
func (a *Analyzer) AnalyzeText(ctx context.Context, index int, text, player string) GameReport {
	g, err := pgn.Parse(index, text)
	if err != nil {
		logger.FromContext(ctx).WithField("game", index).Warn("skipping game: %v", err)
		return Skipped(index, err)
	}
	return a.AnalyzeGame(ctx, g, player)
}

// EmptyGameReason is the skip reason for a game without moves.
const EmptyGameReason = "empty game"

// Skipped builds the report for a game that could not be read.
func Skipped(index int, err error) GameReport {
	reason := "unparseable game"
	if err != nil {
		reason = err.Error()
	}
	return GameReport{
		Index:      index,
		Color:      ColorUnknown,
		Result:     pgn.ResultUnknown,
		Outcome:    OutcomeUnknown,
		Opening:    openings.UnknownOpening,
		Mistakes:   []Mistake{},
		Skipped:    true,
		SkipReason: reason,
	}
}

// AnalyzeGame attributes g to player and, when the player's color is known,
// classifies each of the player's moves. Opponent moves are replayed but
// never classified. A mover cannot lose its own material on its own move,
// so in practice the walk only reports hanging pieces; blunders and
// regular mistakes come from Classify judged for the side that was captured.
// A game with no moves is reported as skipped with its headers kept.
func (a *Analyzer) AnalyzeGame(ctx context.Context, g *pgn.Game, player string) GameReport {
	color := ResolveColor(player, g, a.opts.Match)
	report := GameReport{
		Index:    g.Index,
		Ref:      g.Ref(),
		Color:    color,
		Result:   g.Result(),
		Outcome:  OutcomeFor(g.Result(), color),
		Opening:  a.opts.Openings.Identify(g.Opening(), g.ECO()),
		Rating:   PlayerRating(g, color),
		Mistakes: []Mistake{},
	}

	log := logger.FromContext(ctx).WithFields(map[string]any{
		"game":  g.Index,
		"color": color,
	})

	replay := chessboard.NewReplay(g)
	report.Plies = replay.Len()

	if report.Plies == 0 {
		log.Debug("game has no moves, skipping")
		report.Skipped = true
		report.SkipReason = EmptyGameReason
		return report
	}

	if !color.Known() {
		log.Debug("player %q not found in game headers (white=%q black=%q), moves not classified", player, g.White(), g.Black())
		return report
	}

	side := color.Side()
	for {
		step, ok := replay.Next()
		if !ok {
			break
		}
		if step.Mover() != side {
			continue
		}

		verdict := Classify(step, side)
		if !verdict.IsMistake() {
			continue
		}
		report.Mistakes = append(report.Mistakes, Mistake{
			GameIndex:    g.Index,
			MoveIndex:    step.Index,
			Move:         MoveToUCI(step.Move),
			Kind:         verdict.Kind,
			Phase:        a.opts.Phase.Classify(step.Index, step.After.PieceCount()),
			MaterialLoss: verdict.MaterialLoss,
			Attackers:    verdict.Attackers,
			Defenders:    verdict.Defenders,
		})
	}

	log.Debug("analyzed %d plies, %d mistakes, opening=%s, outcome=%s",
		report.Plies, len(report.Mistakes), report.Opening, report.Outcome)
	return report
}
