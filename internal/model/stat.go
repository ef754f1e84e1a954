package model

import "strings"

// StatKey the stat a query aggregates over
type StatKey string

const (
	StatPoints    StatKey = "pts"
	StatRebounds  StatKey = "reb"
	StatAssists   StatKey = "ast"
	StatSteals    StatKey = "stl"
	StatBlocks    StatKey = "blk"
	StatTurnovers StatKey = "to"
	StatPRA       StatKey = "pra"
	StatPR        StatKey = "pr"
	StatPA        StatKey = "pa"
	StatRA        StatKey = "ra"
	StatStocks    StatKey = "stocks"
)

// StatKeys every supported stat, in display order
var StatKeys = []StatKey{
	StatPoints, StatRebounds, StatAssists, StatSteals, StatBlocks, StatTurnovers,
	StatPRA, StatPR, StatPA, StatRA, StatStocks,
}

var statAliases = map[string]StatKey{
	"points":    StatPoints,
	"rebounds":  StatRebounds,
	"assists":   StatAssists,
	"steals":    StatSteals,
	"blocks":    StatBlocks,
	"turnovers": StatTurnovers,
	"turnover":  StatTurnovers,
	"tov":       StatTurnovers,
}

// ParseStatKey resolves a stat key or its long name; empty defaults to points
func ParseStatKey(s string) (StatKey, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return StatPoints, true
	}
	for _, k := range StatKeys {
		if string(k) == s {
			return k, true
		}
	}
	k, ok := statAliases[s]
	return k, ok
}

// Value extracts the stat from an enriched game
func (k StatKey) Value(g EnrichedGame) float64 {
	switch k {
	case StatPoints:
		return float64(g.Points)
	case StatRebounds:
		return float64(g.Rebounds)
	case StatAssists:
		return float64(g.Assists)
	case StatSteals:
		return float64(g.Steals)
	case StatBlocks:
		return float64(g.Blocks)
	case StatTurnovers:
		return float64(g.Turnovers)
	case StatPRA:
		return float64(g.PRA)
	case StatPR:
		return float64(g.PR)
	case StatPA:
		return float64(g.PA)
	case StatRA:
		return float64(g.RA)
	case StatStocks:
		return float64(g.Stocks)
	}
	return 0
}
