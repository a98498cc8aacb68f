package handlers

import (
	"strconv"

	"ost-panel/internal/api/middleware"
	"ost-panel/internal/services"

	"github.com/gin-gonic/gin"
)

type EquipoHandler struct {
	equipoService *services.EquipoService
}

func NewEquipoHandler(equipoService *services.EquipoService) *EquipoHandler {
	return &EquipoHandler{equipoService: equipoService}
}

// List returns all equipos that are not soft-deleted
func (h *EquipoHandler) List(c *gin.Context) {
	equipos, err := h.equipoService.List()
	if err != nil {
		c.JSON(500, gin.H{"error": "Failed to get equipos"})
		return
	}

	c.JSON(200, gin.H{"equipos": equipos})
}

// ProximoOST previews the next ticket number
func (h *EquipoHandler) ProximoOST(c *gin.Context) {
	next, err := h.equipoService.ProximoOST()
	if err != nil {
		c.JSON(500, gin.H{"success": false, "error": "Error de conexión"})
		return
	}

	c.JSON(200, gin.H{
		"success":     true,
		"proximo_ost": strconv.Itoa(next),
	})
}

// Create registers a new equipo
func (h *EquipoHandler) Create(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(401, gin.H{"error": "Not authenticated"})
		return
	}

	var data services.CreateEquipoData
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(400, gin.H{"success": false, "error": "Invalid request"})
		return
	}

	equipo, err := h.equipoService.Create(user, &data)
	if err != nil {
		c.JSON(errStatus(err), gin.H{"success": false, "error": err.Error()})
		return
	}

	c.JSON(201, gin.H{
		"success": true,
		"id":      equipo.ID,
		"ost":     equipo.OST,
		"message": "Equipo creado exitosamente",
	})
}

// Update applies a partial update from the allow-listed field set
func (h *EquipoHandler) Update(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(401, gin.H{"error": "Not authenticated"})
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid equipo ID"})
		return
	}

	var patch services.EquipoPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request"})
		return
	}

	if err := h.equipoService.Update(user, uint(id), &patch); err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(200, gin.H{"success": true})
}

// Delete soft-deletes an equipo
func (h *EquipoHandler) Delete(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(401, gin.H{"error": "Not authenticated"})
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid equipo ID"})
		return
	}

	if err := h.equipoService.SoftDelete(user, uint(id)); err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(200, gin.H{"success": true, "message": "Equipo eliminado"})
}

// Restore brings back a soft-deleted equipo
func (h *EquipoHandler) Restore(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(401, gin.H{"error": "Not authenticated"})
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid equipo ID"})
		return
	}

	if err := h.equipoService.Restore(user, uint(id)); err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(200, gin.H{"success": true, "message": "Equipo restaurado"})
}
