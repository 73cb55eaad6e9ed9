package auditlog

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bandvibe/band-booking-backend/internal/apperr"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// GetAuditLogs handles GET /api/v1/admin/audit-logs
func (h *Handler) GetAuditLogs(c *gin.Context) {
	filter := AuditLogFilter{
		ActorKind: c.Query("actor_kind"),
		Action:    c.Query("action"),
		Status:    c.Query("status"),
	}

	if v := c.Query("actor_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid actor_id"})
			return
		}
		actorID := uint(id)
		filter.ActorID = &actorID
	}
	if v := c.Query("event_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event_id"})
			return
		}
		eventID := uint(id)
		filter.EventID = &eventID
	}
	if v := c.Query("from_date"); v != "" {
		from, err := time.Parse(time.RFC3339, v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "from_date must be RFC3339"})
			return
		}
		filter.FromDate = &from
	}
	if v := c.Query("to_date"); v != "" {
		to, err := time.Parse(time.RFC3339, v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "to_date must be RFC3339"})
			return
		}
		filter.ToDate = &to
	}
	filter.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	filter.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))

	logs, err := h.service.GetAuditLogs(c.Request.Context(), filter)
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, logs)
}

// GetAuditLogByID handles GET /api/v1/admin/audit-logs/:id
func (h *Handler) GetAuditLogByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid audit log id"})
		return
	}
	log, err := h.service.GetAuditLogByID(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, log)
}
