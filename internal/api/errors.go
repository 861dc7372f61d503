package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/recipeai/backend/internal/service"
)

// respondError maps service errors onto HTTP status codes with a JSON error
// envelope.
func respondError(c *gin.Context, err error) {
	var malformed *service.MalformedOutputError
	var upstream *service.UpstreamError

	switch {
	case errors.Is(err, service.ErrInvalidRequest),
		errors.Is(err, service.ErrNoExtractableText),
		errors.As(err, &malformed):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.As(err, &upstream):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
