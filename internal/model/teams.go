package model

import (
	"strconv"
	"strings"
)

// upstream team id -> abbreviation; static, never mutated
var teamAbbreviations = map[int]string{
	1: "ATL", 2: "BOS", 3: "BKN", 4: "CHA", 5: "CHI", 6: "CLE",
	7: "DAL", 8: "DEN", 9: "DET", 10: "GSW", 11: "HOU", 12: "IND",
	13: "LAC", 14: "LAL", 15: "MEM", 16: "MIA", 17: "MIL", 18: "MIN",
	19: "NOP", 20: "NYK", 21: "OKC", 22: "ORL", 23: "PHI", 24: "PHX",
	25: "POR", 26: "SAC", 27: "SAS", 28: "TOR", 29: "UTA", 30: "WAS",
}

// Reverse mapping for lookups
var teamIDs = map[string]int{}

func init() {
	for id, abbr := range teamAbbreviations {
		teamIDs[abbr] = id
	}
	// common alternates seen in feeds
	teamIDs["BRK"] = 3
	teamIDs["CHO"] = 4
	teamIDs["GS"] = 10
	teamIDs["NO"] = 19
	teamIDs["NOR"] = 19
	teamIDs["NY"] = 20
	teamIDs["PHO"] = 24
	teamIDs["SA"] = 27
	teamIDs["UTAH"] = 29
	teamIDs["WSH"] = 30
}

// TeamAbbreviation returns the abbreviation for a team id, "" when unknown
func TeamAbbreviation(id int) string {
	return teamAbbreviations[id]
}

// ResolveTeamID maps an abbreviation or a raw numeric id onto the team id used for
// comparisons. Only unknown abbreviations and non-positive ids fail to resolve.
func ResolveTeamID(raw string) (int, bool) {
	s := strings.ToUpper(strings.TrimSpace(raw))
	if s == "" {
		return 0, false
	}
	if n, err := strconv.Atoi(s); err == nil {
		// raw ids compare as given, even outside the current team table
		return n, n > 0
	}
	id, ok := teamIDs[s]
	return id, ok
}
