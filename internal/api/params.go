package api

import (
	"math"
	"strconv"
	"strings"
	"time"

	"PropScope/internal/analytics"
	"PropScope/internal/model"
	"PropScope/internal/service"

	"github.com/gin-gonic/gin"
)

// parseQuery reads a game-log query from the URL. Absent parameters stay absent; malformed
// ones are rejected as missing input.
func parseQuery(c *gin.Context) (service.Query, error) {
	var q service.Query
	var err error

	rawPlayer := c.Param("player_id")
	if rawPlayer == "" {
		rawPlayer = c.Query("player_id")
	}
	if q.PlayerID, err = optionalInt(rawPlayer, "player_id"); err != nil {
		return q, err
	}

	rawSeason := c.Query("season")
	if rawSeason == "" {
		rawSeason = c.Query("season_label")
	}
	if rawSeason != "" {
		season, ok := analytics.ParseSeason(rawSeason)
		if !ok {
			return q, &model.MissingInputError{Field: "season"}
		}
		q.Season = season
	}

	if raw := c.Query("stat"); raw != "" {
		stat, ok := model.ParseStatKey(raw)
		if !ok {
			return q, &model.MissingInputError{Field: "stat"}
		}
		q.Stat = stat
	}

	if raw := c.Query("postseason"); raw != "" {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return q, &model.MissingInputError{Field: "postseason"}
		}
		q.Postseason = &b
	}
	if raw := c.Query("include_zero"); raw != "" {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return q, &model.MissingInputError{Field: "include_zero"}
		}
		q.IncludeZeroMinutes = model.Some(b)
	}
	q.ViewID = strings.TrimSpace(c.Query("view_id"))
	q.User = user(c)

	if q.Filters, err = parseFilters(c); err != nil {
		return q, err
	}
	if q.Edge, err = parseEdge(c); err != nil {
		return q, err
	}
	return q, nil
}

func parseFilters(c *gin.Context) (model.FilterSpec, error) {
	var f model.FilterSpec

	if raw := c.Query("last_n"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return f, &model.MissingInputError{Field: "last_n"}
		}
		f.LastN = model.Some(n)
	}
	if raw := c.Query("min"); raw != "" {
		m, err := parseFinite(raw, "min")
		if err != nil || m < 0 {
			return f, &model.MissingInputError{Field: "min"}
		}
		f.MinMinutes = model.Some(m)
	}
	if raw := c.Query("ha"); raw != "" {
		ha, ok := model.ParseHomeAway(raw)
		if !ok {
			return f, &model.MissingInputError{Field: "ha"}
		}
		f.HomeAway = model.Some(ha)
	}
	if raw := strings.TrimSpace(c.Query("opp")); raw != "" {
		f.Opponent = model.Some(raw)
	}
	if raw := c.Query("rest"); raw != "" {
		b, ok := model.ParseRestBucket(raw)
		if !ok {
			return f, &model.MissingInputError{Field: "rest"}
		}
		f.Rest = model.Some(b)
	}

	from, to := c.Query("from"), c.Query("to")
	if from != "" || to != "" {
		var dr model.DateRange
		var err error
		if dr.Start, err = optionalDate(from, "from"); err != nil {
			return f, err
		}
		if dr.End, err = optionalDate(to, "to"); err != nil {
			return f, err
		}
		f.DateRange = model.Some(dr)
	}

	if raw := c.Query("teammate_id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil || id <= 0 {
			return f, &model.MissingInputError{Field: "teammate_id"}
		}
		spec := model.TeammateOutSpec{TeammateID: id}
		if rawMax := c.Query("teammate_max_min"); rawMax != "" {
			m, err := parseFinite(rawMax, "teammate_max_min")
			if err != nil || m < 0 {
				return f, &model.MissingInputError{Field: "teammate_max_min"}
			}
			spec.MaxMinutes = m
		}
		f.TeammateOut = model.Some(spec)
	}
	return f, nil
}

func parseEdge(c *gin.Context) (model.EdgeInputs, error) {
	var e model.EdgeInputs
	if raw := c.Query("line"); raw != "" {
		line, err := parseFinite(raw, "line")
		if err != nil {
			return e, err
		}
		e.PropLine = model.Some(line)
	}
	if raw := c.Query("odds"); raw != "" {
		odds, err := strconv.Atoi(strings.TrimPrefix(strings.TrimSpace(raw), "+"))
		if err != nil {
			return e, &model.MissingInputError{Field: "odds"}
		}
		e.AmericanOdds = model.Some(odds)
	}
	return e, nil
}

// parseFinite rejects NaN and infinities along with malformed numbers
func parseFinite(raw, field string) (float64, error) {
	x, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(x) || math.IsInf(x, 0) {
		return 0, &model.MissingInputError{Field: field}
	}
	return x, nil
}

func optionalInt(raw, field string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, &model.MissingInputError{Field: field}
	}
	return n, nil
}

func optionalDate(raw, field string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	d, err := time.Parse(model.DateLayout, raw)
	if err != nil {
		return time.Time{}, &model.MissingInputError{Field: field}
	}
	return d, nil
}
