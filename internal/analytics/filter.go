package analytics

import (
	"sort"

	"PropScope/internal/model"
)

// Predicate a named, pure row test
type Predicate struct {
	Name string
	Keep func(model.EnrichedGame) bool
}

// OutGames games in which a teammate counted as out. Game ids are the join key; Dates only
// serve rows that carry no game id.
type OutGames struct {
	GameIDs map[int64]struct{}
	Dates   map[string]struct{}
}

// NewOutGames builds an OutGames from id and day lists
func NewOutGames(ids []int64, days []string) *OutGames {
	o := &OutGames{
		GameIDs: make(map[int64]struct{}, len(ids)),
		Dates:   make(map[string]struct{}, len(days)),
	}
	for _, id := range ids {
		o.GameIDs[id] = struct{}{}
	}
	for _, d := range days {
		o.Dates[d] = struct{}{}
	}
	return o
}

// Contains prefers game-id matching and falls back to the date only for id-less rows
func (o *OutGames) Contains(g model.EnrichedGame) bool {
	if g.GameID != 0 {
		_, ok := o.GameIDs[g.GameID]
		return ok
	}
	_, ok := o.Dates[g.Day]
	return ok
}

// FilterOptions engine settings that are not part of the user's FilterSpec
type FilterOptions struct {
	// IncludeZeroMinutes keeps DNP rows; off by default
	IncludeZeroMinutes bool
	// OutGames the resolved teammate-out set. nil leaves the teammate filter a no-op.
	OutGames *OutGames
}

// Predicates builds the AND-composed predicate set for a spec. lastN is not a predicate;
// Apply handles it after everything else.
func Predicates(spec model.FilterSpec, opts FilterOptions) []Predicate {
	var preds []Predicate

	if !opts.IncludeZeroMinutes {
		preds = append(preds, Predicate{Name: "played", Keep: func(g model.EnrichedGame) bool {
			return g.Minutes > 0
		}})
	}
	if floor, ok := spec.MinMinutes.Get(); ok && floor > 0 {
		preds = append(preds, Predicate{Name: "min_minutes", Keep: func(g model.EnrichedGame) bool {
			return g.Minutes >= floor
		}})
	}
	if ha, ok := spec.HomeAway.Get(); ok {
		preds = append(preds, Predicate{Name: "home_away", Keep: func(g model.EnrichedGame) bool {
			return g.HomeAway == ha
		}})
	}
	if raw, ok := spec.Opponent.Get(); ok {
		if teamID, resolved := model.ResolveTeamID(raw); resolved {
			preds = append(preds, Predicate{Name: "opponent", Keep: func(g model.EnrichedGame) bool {
				return g.OpponentTeamID == teamID
			}})
		}
	}
	if bucket, ok := spec.Rest.Get(); ok {
		preds = append(preds, Predicate{Name: "rest", Keep: func(g model.EnrichedGame) bool {
			gap, known := g.RestDays.Get()
			return known && bucket.Matches(gap)
		}})
	}
	if dr, ok := spec.DateRange.Get(); ok {
		preds = append(preds, Predicate{Name: "date_range", Keep: func(g model.EnrichedGame) bool {
			return !g.Date.IsZero() && dr.Contains(g.Date)
		}})
	}
	if spec.TeammateOut.IsPresent() && opts.OutGames != nil {
		out := opts.OutGames
		preds = append(preds, Predicate{Name: "teammate_out", Keep: out.Contains})
	}
	return preds
}

// KeepAll returns the rows that satisfy every predicate, in input order
func KeepAll(rows []model.EnrichedGame, preds []Predicate) []model.EnrichedGame {
	out := make([]model.EnrichedGame, 0, len(rows))
	for _, g := range rows {
		keep := true
		for _, p := range preds {
			if !p.Keep(g) {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, g)
		}
	}
	return out
}

// Apply filters enriched rows and returns them newest first. lastN keeps the N most recent
// rows that passed every other predicate.
func Apply(rows []model.EnrichedGame, spec model.FilterSpec, opts FilterOptions) []model.EnrichedGame {
	out := KeepAll(rows, Predicates(spec, opts))
	SortNewestFirst(out)
	if n, ok := spec.LastN.Get(); ok && n > 0 && n < len(out) {
		out = out[:n]
	}
	return out
}

// SortNewestFirst orders rows by date descending, ties by game id descending
func SortNewestFirst(rows []model.EnrichedGame) {
	sort.SliceStable(rows, func(i, j int) bool {
		if !rows[i].Date.Equal(rows[j].Date) {
			return rows[i].Date.After(rows[j].Date)
		}
		return rows[i].GameID > rows[j].GameID
	})
}
