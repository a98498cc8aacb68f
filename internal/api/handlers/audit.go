package handlers

import (
	"strconv"

	"ost-panel/internal/services"

	"github.com/gin-gonic/gin"
)

const defaultAuditLimit = 200

type AuditHandler struct {
	auditService *services.AuditService
}

func NewAuditHandler(auditService *services.AuditService) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

// List returns the audit trail, optionally filtered to one equipo. The
// view includes soft-deleted equipos on purpose.
func (h *AuditHandler) List(c *gin.Context) {
	limit := defaultAuditLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			c.JSON(400, gin.H{"error": "Invalid limit"})
			return
		}
		limit = n
	}

	if raw := c.Query("equipo_id"); raw != "" {
		equipoID, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.JSON(400, gin.H{"error": "Invalid equipo_id"})
			return
		}

		records, err := h.auditService.ListByEquipo(uint(equipoID), limit)
		if err != nil {
			c.JSON(500, gin.H{"error": "Failed to get audit entries"})
			return
		}
		c.JSON(200, gin.H{"auditoria": records})
		return
	}

	records, err := h.auditService.List(limit)
	if err != nil {
		c.JSON(500, gin.H{"error": "Failed to get audit entries"})
		return
	}
	c.JSON(200, gin.H{"auditoria": records})
}
