package api

import (
	"net/http"

	"PropScope/internal/analytics"
	"PropScope/internal/model"
	"PropScope/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// GameLogHandler game-log analytics endpoints
type GameLogHandler struct {
	games     *service.GameLogService
	teammates *service.TeammateService
	players   *service.PlayerService
	logger    *logrus.Logger
}

// NewGameLogHandler creates GameLogHandler
func NewGameLogHandler(games *service.GameLogService, teammates *service.TeammateService, players *service.PlayerService, logger *logrus.Logger) *GameLogHandler {
	return &GameLogHandler{
		games:     games,
		teammates: teammates,
		players:   players,
		logger:    logger,
	}
}

// Query filtered game log with aggregates and edge
// GET /api/game-logs?player_id=237&season=2024&stat=pra&ha=H&last_n=10&line=35.5&odds=-110
// GET /api/game-logs/:player_id?season=2024-25
func (h *GameLogHandler) Query(c *gin.Context) {
	q, err := parseQuery(c)
	if err != nil {
		writeError(c, h.logger, "parse game-log query", err)
		return
	}
	result, err := h.games.Query(c.Request.Context(), q)
	if err != nil {
		writeError(c, h.logger, "game-log query", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

type teammateOutBody struct {
	PlayerID   int     `json:"player_id"`
	TeammateID int     `json:"teammate_id"`
	Season     any     `json:"season"` // 2024 or "2024-25"
	MaxMinutes float64 `json:"max_minutes"`
}

// TeammateOut games a teammate sat, as ids and the player's dates
// POST /api/game-logs/teammate-out {"player_id":237,"teammate_id":2544,"season":2024,"max_minutes":0}
func (h *GameLogHandler) TeammateOut(c *gin.Context) {
	var body teammateOutBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid JSON body: " + err.Error()})
		return
	}
	season, ok := seasonFromJSON(body.Season)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": (&model.MissingInputError{Field: "season"}).Error()})
		return
	}

	res, err := h.teammates.Resolve(c.Request.Context(), service.TeammateOutRequest{
		PlayerID:   body.PlayerID,
		TeammateID: body.TeammateID,
		Season:     season,
		MaxMinutes: body.MaxMinutes,
	})
	if err != nil {
		if model.IsMissingInput(err) {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
			return
		}
		h.logger.WithError(err).Error("teammate-out lookup failed")
		c.JSON(http.StatusBadGateway, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"ok":             true,
		"out_game_ids":   res.GameIDs,
		"out_dates":      res.Dates,
		"dates_complete": res.DatesComplete,
		"count":          len(res.GameIDs),
	})
}

// SearchPlayers player picker
// GET /api/game-logs/players?q=jokic
func (h *GameLogHandler) SearchPlayers(c *gin.Context) {
	hits, err := h.players.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		h.logger.WithError(err).Error("player search failed")
		c.JSON(http.StatusBadGateway, gin.H{"players": []service.PlayerHit{}, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"players": hits})
}

func seasonFromJSON(v any) (int, bool) {
	switch s := v.(type) {
	case float64:
		if s <= 0 || s != float64(int(s)) {
			return 0, false
		}
		return int(s), true
	case string:
		return analytics.ParseSeason(s)
	}
	return 0, false
}
