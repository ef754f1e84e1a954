package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts every endpoint on r
func RegisterRoutes(r *gin.Engine, games *GameLogHandler, views *ViewHandler) {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	logs := r.Group("/api/game-logs")
	logs.GET("", games.Query)
	logs.GET("/players", games.SearchPlayers)
	logs.POST("/teammate-out", games.TeammateOut)
	logs.GET("/:player_id", games.Query)

	v := r.Group("/api/views")
	v.GET("", views.List)
	v.POST("", views.Create)
	v.DELETE("", views.Delete)
	v.DELETE("/:id", views.Delete)
}
