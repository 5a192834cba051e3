package stats

import (
	"github.com/samber/lo"
	"github.com/vytor/weakspot/internal/analysis"
)

// Category is a weakness bucket: either a mistake kind or the phase a
// mistake happened in.
type Category string

const (
	CategoryBlunder        Category = "blunder"
	CategoryRegularMistake Category = "regular_mistake"
	CategoryHangingPiece   Category = "hanging_piece"
	CategoryOpening        Category = "opening"
	CategoryMiddlegame     Category = "middlegame"
	CategoryEndgame        Category = "endgame"
)

var categoryLabels = map[Category]string{
	CategoryBlunder:        "Blunders",
	CategoryRegularMistake: "Small mistakes",
	CategoryHangingPiece:   "Hanging pieces",
	CategoryOpening:        "Opening mistakes",
	CategoryMiddlegame:     "Middlegame mistakes",
	CategoryEndgame:        "Endgame mistakes",
}

// Label is the human-readable name of the category.
func (c Category) Label() string {
	if l, ok := categoryLabels[c]; ok {
		return l
	}
	return string(c)
}

// IsPhase reports whether the category counts phases rather than kinds.
func (c Category) IsPhase() bool {
	return c == CategoryOpening || c == CategoryMiddlegame || c == CategoryEndgame
}

// KindCategory maps a mistake kind onto its category.
func KindCategory(k analysis.MistakeKind) Category { return Category(k) }

// PhaseCategory maps a game phase onto its category.
func PhaseCategory(p analysis.Phase) Category { return Category(p) }

// Tally counts mistakes by kind and by phase in one counter space. It keeps
// the order in which categories were first seen; each mistake adds its kind
// first, then its phase.
type Tally struct {
	order  []Category
	counts map[Category]int
}

// NewTally returns an empty tally.
func NewTally() *Tally {
	return &Tally{counts: map[Category]int{}}
}

// Add records one mistake. Mistakes without a kind are ignored.
func (t *Tally) Add(m analysis.Mistake) {
	if m.Kind == analysis.KindNone {
		return
	}
	t.inc(KindCategory(m.Kind))
	if m.Phase != "" {
		t.inc(PhaseCategory(m.Phase))
	}
}

// AddAll records every mistake in ms, in order.
func (t *Tally) AddAll(ms []analysis.Mistake) {
	for _, m := range ms {
		t.Add(m)
	}
}

func (t *Tally) inc(c Category) {
	if _, seen := t.counts[c]; !seen {
		t.order = append(t.order, c)
	}
	t.counts[c]++
}

// Count returns how often c was recorded.
func (t *Tally) Count(c Category) int {
	return t.counts[c]
}

// Categories returns the recorded categories in first-seen order.
func (t *Tally) Categories() []Category {
	return append([]Category(nil), t.order...)
}

// KindTotal is the sum of all kind counts, which equals the number of mistakes.
func (t *Tally) KindTotal() int {
	return lo.SumBy(lo.Reject(t.order, func(c Category, _ int) bool { return c.IsPhase() }),
		func(c Category) int { return t.counts[c] })
}

// PhaseTotal is the sum of all phase counts.
func (t *Tally) PhaseTotal() int {
	return lo.SumBy(lo.Filter(t.order, func(c Category, _ int) bool { return c.IsPhase() }),
		func(c Category) int { return t.counts[c] })
}

// Total is kind total plus phase total: every mistake is counted twice.
func (t *Tally) Total() int {
	return t.KindTotal() + t.PhaseTotal()
}
