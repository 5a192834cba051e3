package stats

import (
	"fmt"
	"sort"
	"strings"
)

// Denominator selects the base that weakness percentages are taken over.
type Denominator string

const (
	// DenominatorShared divides every count by kind total plus phase total,
	// so all entries together sum to 100.
	DenominatorShared Denominator = "shared"
	// DenominatorSplit divides kind counts by the kind total and phase counts
	// by the phase total, giving two distributions of 100 each.
	DenominatorSplit Denominator = "split"
)

// ParseDenominator accepts "shared" or "split", case-insensitively.
func ParseDenominator(s string) (Denominator, error) {
	switch d := Denominator(strings.ToLower(strings.TrimSpace(s))); d {
	case DenominatorShared, DenominatorSplit:
		return d, nil
	case "":
		return DenominatorShared, nil
	default:
		return "", fmt.Errorf("unknown percentage base %q", s)
	}
}

// WeaknessEntry is one ranked category.
type WeaknessEntry struct {
	Category   Category `json:"category"`
	Label      string   `json:"label"`
	Count      int      `json:"count"`
	Percentage float64  `json:"percentage"`
}

// Rank turns a tally into weakness entries sorted by count, highest first.
// Equal counts keep the tally's first-seen order. An empty tally gives an
// empty slice.
func Rank(t *Tally, mode Denominator) []WeaknessEntry {
	entries := []WeaknessEntry{}
	if t == nil {
		return entries
	}

	shared := t.Total()
	kinds, phases := t.KindTotal(), t.PhaseTotal()

	for _, c := range t.order {
		n := t.counts[c]
		if n <= 0 {
			continue
		}
		base := shared
		if mode == DenominatorSplit {
			base = kinds
			if c.IsPhase() {
				base = phases
			}
		}
		entries = append(entries, WeaknessEntry{
			Category:   c,
			Label:      c.Label(),
			Count:      n,
			Percentage: percent(n, base),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})
	return entries
}

// Top keeps the first n entries. n <= 0 keeps everything.
func Top(entries []WeaknessEntry, n int) []WeaknessEntry {
	if n <= 0 || n >= len(entries) {
		return entries
	}
	return entries[:n]
}

func percent(n, base int) float64 {
	if base == 0 {
		return 0
	}
	return float64(n) / float64(base) * 100
}
