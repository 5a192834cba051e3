package stats

import "github.com/vytor/weakspot/internal/analysis"

// Record is a win/loss/draw counter.
type Record struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
	Draws  int `json:"draws"`
}

// Add counts one outcome. Unknown outcomes are ignored.
func (r *Record) Add(o analysis.Outcome) {
	switch o {
	case analysis.OutcomeWin:
		r.Wins++
	case analysis.OutcomeLoss:
		r.Losses++
	case analysis.OutcomeDraw:
		r.Draws++
	}
}

// Total is the number of decided or drawn games.
func (r Record) Total() int {
	return r.Wins + r.Losses + r.Draws
}

// WinRate is wins over total as a percentage, 0 when there are no games.
func (r Record) WinRate() float64 {
	return percent(r.Wins, r.Total())
}

// OpeningStat is the player's record in one opening. Total counts every game
// with a known color, including those with an unknown result.
type OpeningStat struct {
	Opening string  `json:"opening"`
	Wins    int     `json:"wins"`
	Losses  int     `json:"losses"`
	Draws   int     `json:"draws"`
	Total   int     `json:"total"`
	WinRate float64 `json:"win_rate"`
}

// ColorStats holds the player's record with each color.
type ColorStats struct {
	White Record `json:"white"`
	Black Record `json:"black"`
}

// Add counts an outcome for color c. Unknown colors are ignored.
func (s *ColorStats) Add(c analysis.Color, o analysis.Outcome) {
	switch c {
	case analysis.ColorWhite:
		s.White.Add(o)
	case analysis.ColorBlack:
		s.Black.Add(o)
	}
}

// Total is the number of counted games across both colors.
func (s ColorStats) Total() int {
	return s.White.Total() + s.Black.Total()
}

// WinRate is the combined win rate across both colors.
func (s ColorStats) WinRate() float64 {
	return percent(s.White.Wins+s.Black.Wins, s.Total())
}

// OpeningBook accumulates per-opening records keyed by opening name.
type OpeningBook struct {
	order []string
	stats map[string]*OpeningStat
}

// NewOpeningBook returns an empty book.
func NewOpeningBook() *OpeningBook {
	return &OpeningBook{stats: map[string]*OpeningStat{}}
}

// Add counts one game played in opening with the given outcome.
func (b *OpeningBook) Add(opening string, o analysis.Outcome) {
	s, ok := b.stats[opening]
	if !ok {
		s = &OpeningStat{Opening: opening}
		b.stats[opening] = s
		b.order = append(b.order, opening)
	}
	s.Total++
	switch o {
	case analysis.OutcomeWin:
		s.Wins++
	case analysis.OutcomeLoss:
		s.Losses++
	case analysis.OutcomeDraw:
		s.Draws++
	}
}

// Len is the number of distinct openings seen.
func (b *OpeningBook) Len() int {
	return len(b.order)
}

// Get returns the stat for opening, if any.
func (b *OpeningBook) Get(opening string) (OpeningStat, bool) {
	s, ok := b.stats[opening]
	if !ok {
		return OpeningStat{}, false
	}
	out := *s
	out.WinRate = percent(out.Wins, out.Total)
	return out, true
}
