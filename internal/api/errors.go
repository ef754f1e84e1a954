package api

import (
	"errors"
	"net/http"

	"PropScope/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// writeError maps the error taxonomy onto HTTP statuses
func writeError(c *gin.Context, logger *logrus.Logger, op string, err error) {
	var (
		missing  *model.MissingInputError
		auth     *model.UpstreamAuthError
		upstream *model.UpstreamError
	)
	switch {
	case errors.As(err, &missing):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "field": missing.Field})
	case errors.As(err, &auth):
		logger.WithError(err).Error(op + " failed: upstream rejected credentials")
		c.JSON(http.StatusBadGateway, gin.H{"error": "upstream_unauthorized", "upstream_status": auth.StatusCode})
	case errors.As(err, &upstream):
		logger.WithError(err).Error(op + " failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error(), "upstream_status": upstream.StatusCode})
	case errors.Is(err, model.ErrViewNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		logger.WithError(err).Error(op + " failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
