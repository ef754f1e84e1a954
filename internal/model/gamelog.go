package model

import "time"

// HomeAway which side of the schedule the player's team was on
type HomeAway string

const (
	Home HomeAway = "H"
	Away HomeAway = "A"
)

// ParseHomeAway accepts H/A and home/away in any case
func ParseHomeAway(s string) (HomeAway, bool) {
	switch s {
	case "H", "h", "home", "HOME", "Home":
		return Home, true
	case "A", "a", "away", "AWAY", "Away":
		return Away, true
	}
	return "", false
}

// DateLayout calendar-day layout used on the wire
const DateLayout = "2006-01-02"

// GameRecord one player's normalized line in one game. Values are never mutated after
// normalization; enrichment and filtering build new slices.
type GameRecord struct {
	PlayerID          int       `json:"player_id"`
	GameID            int64     `json:"game_id"`
	Date              time.Time `json:"-"`
	Day               string    `json:"date"` // yyyy-mm-dd, UTC
	Season            int       `json:"season"`
	TeamID            int       `json:"team_id"`
	OpponentTeamID    int       `json:"opp_id"`
	Opponent          string    `json:"opp"`
	HomeAway          HomeAway  `json:"ha"`
	Minutes           float64   `json:"min"`
	Points            int       `json:"pts"`
	Rebounds          int       `json:"reb"`
	Assists           int       `json:"ast"`
	Steals            int       `json:"stl"`
	Blocks            int       `json:"blk"`
	Turnovers         int       `json:"to"`
	ThreePointersMade int       `json:"fg3m"`
}

// ComboStats derived sums used as prop markets
type ComboStats struct {
	PRA    int `json:"pra"`
	PR     int `json:"pr"`
	PA     int `json:"pa"`
	RA     int `json:"ra"`
	Stocks int `json:"stocks"`
}

// Combos computes the combo stats for the record
func (g GameRecord) Combos() ComboStats {
	return ComboStats{
		PRA:    g.Points + g.Rebounds + g.Assists,
		PR:     g.Points + g.Rebounds,
		PA:     g.Points + g.Assists,
		RA:     g.Rebounds + g.Assists,
		Stocks: g.Steals + g.Blocks,
	}
}

// EnrichedGame a GameRecord plus facts derived from the whole season timeline
type EnrichedGame struct {
	GameRecord
	ComboStats
	// RestDays days since the previous game in the unfiltered season; absent for the
	// first game and for anomalous (zero or negative) gaps
	RestDays Optional[int] `json:"rest_days"`
}
