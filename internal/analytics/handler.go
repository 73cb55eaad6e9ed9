package analytics

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/bandvibe/band-booking-backend/internal/apperr"
	"github.com/bandvibe/band-booking-backend/middleware"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Track handles POST /api/v1/bands/:id/visits
func (h *Handler) Track(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid band id"})
		return
	}
	var visitor *middleware.Actor
	if actor, ok := middleware.ActorFromContext(c); ok {
		visitor = &actor
	}
	h.service.Track(c.Request.Context(), uint(id), visitor)
	c.JSON(http.StatusAccepted, gin.H{"message": "Visit recorded"})
}

// Stats handles GET /api/v1/bands/:id/visits
func (h *Handler) Stats(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid band id"})
		return
	}
	stats, err := h.service.Stats(c.Request.Context(), actor, uint(id))
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, stats)
}
