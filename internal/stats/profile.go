package stats

import (
	"sort"

	"github.com/samber/lo"
	"github.com/vytor/weakspot/internal/analysis"
)

// DefaultRating is reported when no game carried the player's Elo.
const DefaultRating = 1500

// Profile is the aggregate view of a player's games.
type Profile struct {
	Player        string          `json:"player"`
	GamesAnalyzed int             `json:"games_analyzed"`
	GamesSkipped  int             `json:"games_skipped"`
	TotalMistakes int             `json:"total_mistakes"`
	AverageRating int             `json:"average_rating"`
	PercentBase   Denominator     `json:"percent_base"`
	Weaknesses    []WeaknessEntry `json:"weaknesses"`
	Openings      []OpeningStat   `json:"openings"`
	Colors        ColorStats      `json:"colors"`
}

// Options controls how a Builder summarizes.
type Options struct {
	Denominator   Denominator
	TopWeaknesses int // 0 keeps every entry
	TopOpenings   int // 0 keeps every opening
}

// Builder folds per-game reports into a Profile. It is not safe for
// concurrent use; feed it from a single goroutine.
type Builder struct {
	player   string
	opts     Options
	tally    *Tally
	openings *OpeningBook
	colors   ColorStats
	ratings  []int
	analyzed int
	skipped  int
	mistakes int
}

// NewBuilder starts an empty profile for player.
func NewBuilder(player string, opts Options) *Builder {
	if opts.Denominator == "" {
		opts.Denominator = DenominatorShared
	}
	return &Builder{
		player:   player,
		opts:     opts,
		tally:    NewTally(),
		openings: NewOpeningBook(),
	}
}

// Add merges one game report. Every report counts as analyzed; skipped
// games contribute nothing else, and games where the player's color is
// unknown contribute no opening, color or rating data.
func (b *Builder) Add(r analysis.GameReport) {
	b.analyzed++
	if r.Skipped {
		b.skipped++
		return
	}

	b.tally.AddAll(r.Mistakes)
	b.mistakes += len(r.Mistakes)

	if !r.Color.Known() {
		return
	}
	b.openings.Add(r.Opening, r.Outcome)
	b.colors.Add(r.Color, r.Outcome)
	if r.Rating > 0 {
		b.ratings = append(b.ratings, r.Rating)
	}
}

// Tally exposes the running mistake tally.
func (b *Builder) Tally() *Tally {
	return b.tally
}

// Profile summarizes everything added so far. It can be called repeatedly.
func (b *Builder) Profile() Profile {
	return Profile{
		Player:        b.player,
		GamesAnalyzed: b.analyzed,
		GamesSkipped:  b.skipped,
		TotalMistakes: b.mistakes,
		AverageRating: b.averageRating(),
		PercentBase:   b.opts.Denominator,
		Weaknesses:    Top(Rank(b.tally, b.opts.Denominator), b.opts.TopWeaknesses),
		Openings:      b.topOpenings(),
		Colors:        b.colors,
	}
}

func (b *Builder) averageRating() int {
	if len(b.ratings) == 0 {
		return DefaultRating
	}
	return lo.Sum(b.ratings) / len(b.ratings)
}

func (b *Builder) topOpenings() []OpeningStat {
	out := lo.Map(b.openings.order, func(name string, _ int) OpeningStat {
		s, _ := b.openings.Get(name)
		return s
	})
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Total > out[j].Total
	})
	if b.opts.TopOpenings > 0 && len(out) > b.opts.TopOpenings {
		out = out[:b.opts.TopOpenings]
	}
	return out
}
