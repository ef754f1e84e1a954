package api

import (
	"net/http"
	"strings"

	"PropScope/internal/model"
	"PropScope/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// UserHeader identity of the signed-in user, set by the session layer in front of us
const UserHeader = "X-User-Email"

// ViewHandler saved filter sets. views is nil when no database is configured.
type ViewHandler struct {
	views  *service.ViewService
	logger *logrus.Logger
}

// NewViewHandler creates ViewHandler
func NewViewHandler(views *service.ViewService, logger *logrus.Logger) *ViewHandler {
	return &ViewHandler{views: views, logger: logger}
}

func (h *ViewHandler) enabled(c *gin.Context) bool {
	if h.views == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "saved views are not enabled"})
		return false
	}
	return true
}

func user(c *gin.Context) string {
	return strings.TrimSpace(c.GetHeader(UserHeader))
}

// List GET /api/views; anonymous callers get an empty list
func (h *ViewHandler) List(c *gin.Context) {
	if !h.enabled(c) {
		return
	}
	views, err := h.views.List(c.Request.Context(), user(c))
	if err != nil {
		writeError(c, h.logger, "list views", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"views": views})
}

type createViewBody struct {
	Name   string           `json:"name"`
	Params model.ViewParams `json:"params"`
}

// Create POST /api/views {"name":"...","params":{...}}
func (h *ViewHandler) Create(c *gin.Context) {
	if !h.enabled(c) {
		return
	}
	email := user(c)
	if email == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "sign in to save views"})
		return
	}
	var body createViewBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body: " + err.Error()})
		return
	}
	view, err := h.views.Create(c.Request.Context(), email, body.Name, body.Params)
	if err != nil {
		writeError(c, h.logger, "create view", err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

// Delete DELETE /api/views/:id (or ?id=)
func (h *ViewHandler) Delete(c *gin.Context) {
	if !h.enabled(c) {
		return
	}
	email := user(c)
	if email == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "sign in to delete views"})
		return
	}
	id := c.Param("id")
	if id == "" {
		id = c.Query("id")
	}
	if err := h.views.Delete(c.Request.Context(), email, id); err != nil {
		writeError(c, h.logger, "delete view", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
