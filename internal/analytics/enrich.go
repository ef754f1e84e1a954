package analytics

import (
	"time"

	"PropScope/internal/model"
)

const day = 24 * time.Hour

// Enrich derives combo stats and rest days over the whole, unfiltered season. Input order
// does not matter; the result is ascending by date (ties broken by game id). The input
// slice is not modified.
func Enrich(records []model.GameRecord) []model.EnrichedGame {
	sorted := make([]model.GameRecord, len(records))
	copy(sorted, records)
	sortAscending(sorted)

	out := make([]model.EnrichedGame, len(sorted))
	for i, rec := range sorted {
		out[i] = model.EnrichedGame{
			GameRecord: rec,
			ComboStats: rec.Combos(),
			RestDays:   model.None[int](),
		}
		if i == 0 {
			continue
		}
		if gap, ok := dayGap(sorted[i-1].Date, rec.Date); ok {
			out[i].RestDays = model.Some(gap)
		}
	}
	return out
}

// dayGap whole calendar days from prev to cur. Zero, negative or undated gaps are not
// rest data.
func dayGap(prev, cur time.Time) (int, bool) {
	if prev.IsZero() || cur.IsZero() {
		return 0, false
	}
	gap := int(cur.Sub(prev).Round(day) / day)
	if gap <= 0 {
		return 0, false
	}
	return gap, true
}
