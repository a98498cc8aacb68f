package handlers

import (
	"ost-panel/internal/services"

	"github.com/gin-gonic/gin"
)

type ArchivoHandler struct {
	archivoService *services.ArchivoService
}

func NewArchivoHandler(archivoService *services.ArchivoService) *ArchivoHandler {
	return &ArchivoHandler{archivoService: archivoService}
}

// List returns all attachments with their equipo snapshot
func (h *ArchivoHandler) List(c *gin.Context) {
	archivos, err := h.archivoService.List()
	if err != nil {
		c.JSON(500, gin.H{"error": "Failed to get archivos"})
		return
	}

	c.JSON(200, gin.H{"archivos": archivos})
}
