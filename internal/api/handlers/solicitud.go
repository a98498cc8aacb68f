package handlers

import (
	"strconv"

	"ost-panel/internal/services"

	"github.com/gin-gonic/gin"
)

type SolicitudHandler struct {
	solicitudService *services.SolicitudService
}

func NewSolicitudHandler(solicitudService *services.SolicitudService) *SolicitudHandler {
	return &SolicitudHandler{solicitudService: solicitudService}
}

// List returns all solicitudes, newest first
func (h *SolicitudHandler) List(c *gin.Context) {
	solicitudes, err := h.solicitudService.List()
	if err != nil {
		c.JSON(500, gin.H{"error": "Failed to get solicitudes"})
		return
	}

	c.JSON(200, gin.H{"solicitudes": solicitudes})
}

// Update applies a partial update from the allow-listed field set
func (h *SolicitudHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid solicitud ID"})
		return
	}

	var patch services.SolicitudPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request"})
		return
	}

	if err := h.solicitudService.Update(uint(id), &patch); err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(200, gin.H{"success": true})
}
