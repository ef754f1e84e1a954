package model

import (
	"bytes"
	"encoding/json"
)

// ========== balldontlie v1 wire format ==========

// FlexString decodes a JSON string, number or null into its text form.
// The provider has sent minutes both as "34:12" and as 34, and cursors as numbers or strings.
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexString(n.String())
	return nil
}

// BDLTeam team reference on a stat line
type BDLTeam struct {
	ID           int    `json:"id"`
	Abbreviation string `json:"abbreviation"`
	FullName     string `json:"full_name"`
}

// BDLGame game reference on a stat line
type BDLGame struct {
	ID            int64  `json:"id"`
	Date          string `json:"date"` // ISO timestamp or yyyy-mm-dd
	Season        int    `json:"season"`
	Postseason    bool   `json:"postseason"`
	HomeTeamID    int    `json:"home_team_id"`
	VisitorTeamID int    `json:"visitor_team_id"`
}

// BDLPlayer player reference
type BDLPlayer struct {
	ID        int      `json:"id"`
	FirstName string   `json:"first_name"`
	LastName  string   `json:"last_name"`
	Position  string   `json:"position"`
	TeamID    int      `json:"team_id"`
	Team      *BDLTeam `json:"team,omitempty"`
}

// BDLStat one per-game stat line. Null numeric fields decode as 0.
type BDLStat struct {
	ID       int64      `json:"id"`
	Game     BDLGame    `json:"game"`
	Team     BDLTeam    `json:"team"`
	Player   BDLPlayer  `json:"player"`
	Min      FlexString `json:"min"`
	Pts      int        `json:"pts"`
	Reb      int        `json:"reb"`
	Ast      int        `json:"ast"`
	Stl      int        `json:"stl"`
	Blk      int        `json:"blk"`
	Turnover int        `json:"turnover"`
	Fg3m     int        `json:"fg3m"`
}

// BDLMeta pagination metadata; the provider has used both page counts and cursors
type BDLMeta struct {
	TotalPages  int        `json:"total_pages"`
	CurrentPage int        `json:"current_page"`
	NextPage    int        `json:"next_page"`
	PerPage     int        `json:"per_page"`
	NextCursor  FlexString `json:"next_cursor"`
}

// BDLStatsResponse GET /stats
type BDLStatsResponse struct {
	Data []BDLStat `json:"data"`
	Meta BDLMeta   `json:"meta"`
}

// BDLPlayersResponse GET /players
type BDLPlayersResponse struct {
	Data []BDLPlayer `json:"data"`
	Meta BDLMeta     `json:"meta"`
}

// FullName first and last name joined
func (p BDLPlayer) FullName() string {
	switch {
	case p.FirstName == "":
		return p.LastName
	case p.LastName == "":
		return p.FirstName
	}
	return p.FirstName + " " + p.LastName
}

// TeamAbbrev the player's team abbreviation from either the nested team or the id
func (p BDLPlayer) TeamAbbrev() string {
	if p.Team != nil && p.Team.Abbreviation != "" {
		return p.Team.Abbreviation
	}
	return TeamAbbreviation(p.TeamID)
}

