package handlers

import (
	"strconv"

	"ost-panel/internal/services"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	reportService *services.ReportService
}

func NewDashboardHandler(reportService *services.ReportService) *DashboardHandler {
	return &DashboardHandler{reportService: reportService}
}

// Stats returns the dashboard aggregates
func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, err := h.reportService.Dashboard()
	if err != nil {
		c.JSON(500, gin.H{"error": "Failed to compute dashboard"})
		return
	}

	c.JSON(200, stats)
}

// Monthly returns the report for one calendar month
func (h *DashboardHandler) Monthly(c *gin.Context) {
	anio, err := strconv.Atoi(c.Query("anio"))
	if err != nil {
		c.JSON(400, gin.H{"error": "Parámetro anio inválido"})
		return
	}
	mes, err := strconv.Atoi(c.Query("mes"))
	if err != nil {
		c.JSON(400, gin.H{"error": "Parámetro mes inválido"})
		return
	}

	informe, err := h.reportService.Monthly(anio, mes)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(200, informe)
}
