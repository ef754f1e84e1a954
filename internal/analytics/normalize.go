// Package analytics is the game-log engine: normalization, enrichment, filtering,
// aggregation and the betting-edge calculator. Everything here is pure; the service layer
// owns I/O.
package analytics

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"PropScope/internal/model"
)

// ParseMinutes reads "MM:SS", a bare number ("34", "33.5") or "" into fractional minutes.
// Anything unparseable is 0.
func ParseMinutes(raw string) float64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0
	}
	if !strings.Contains(s, ":") {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || f < 0 {
			return 0
		}
		return f
	}
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0
	}
	mins, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || mins < 0 {
		return 0
	}
	secs, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || secs < 0 {
		secs = 0
	}
	return float64(mins) + float64(secs)/60.0
}

// ParseGameDate takes the calendar day of an ISO timestamp or yyyy-mm-dd, in UTC
func ParseGameDate(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if len(s) < len(model.DateLayout) {
		return time.Time{}, false
	}
	d, err := time.Parse(model.DateLayout, s[:len(model.DateLayout)])
	if err != nil {
		return time.Time{}, false
	}
	return d.UTC(), true
}

// NormalizeStat converts one upstream line into a GameRecord. Home/away and opponent come
// from comparing the player's team against the game's home and visitor teams.
func NormalizeStat(s model.BDLStat) model.GameRecord {
	rec := model.GameRecord{
		PlayerID:          s.Player.ID,
		GameID:            s.Game.ID,
		Season:            s.Game.Season,
		TeamID:            s.Team.ID,
		Minutes:           ParseMinutes(string(s.Min)),
		Points:            nonNegative(s.Pts),
		Rebounds:          nonNegative(s.Reb),
		Assists:           nonNegative(s.Ast),
		Steals:            nonNegative(s.Stl),
		Blocks:            nonNegative(s.Blk),
		Turnovers:         nonNegative(s.Turnover),
		ThreePointersMade: nonNegative(s.Fg3m),
	}
	if d, ok := ParseGameDate(s.Game.Date); ok {
		rec.Date = d
		rec.Day = d.Format(model.DateLayout)
	}

	if s.Team.ID != 0 && s.Team.ID == s.Game.HomeTeamID {
		rec.HomeAway = model.Home
		rec.OpponentTeamID = s.Game.VisitorTeamID
	} else {
		rec.HomeAway = model.Away
		rec.OpponentTeamID = s.Game.HomeTeamID
	}
	rec.Opponent = model.TeamAbbreviation(rec.OpponentTeamID)
	return rec
}

// Normalize converts a full ingestion result into one record per game, sorted ascending by
// date. Page order from the provider is not trusted.
func Normalize(stats []model.BDLStat) []model.GameRecord {
	seen := make(map[int64]struct{}, len(stats))
	records := make([]model.GameRecord, 0, len(stats))
	for _, s := range stats {
		if s.Game.ID != 0 {
			if _, dup := seen[s.Game.ID]; dup {
				continue
			}
			seen[s.Game.ID] = struct{}{}
		}
		records = append(records, NormalizeStat(s))
	}
	sortAscending(records)
	return records
}

func sortAscending(records []model.GameRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		if !records[i].Date.Equal(records[j].Date) {
			return records[i].Date.Before(records[j].Date)
		}
		return records[i].GameID < records[j].GameID
	})
}

func nonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
