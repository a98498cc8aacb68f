package services

import (
	"errors"
	"time"

	"ost-panel/internal/models"
)

var ErrInvalidPeriod = errors.New("período inválido")

type ReportService struct{}

func NewReportService() *ReportService {
	return &ReportService{}
}

type EstadoCount struct {
	Estado   string `json:"estado"`
	Cantidad int64  `json:"cantidad"`
}

type CategoriaCount struct {
	Categoria string `json:"categoria"`
	Cantidad  int64  `json:"cantidad"`
}

// DashboardStats holds the aggregates shown on the landing dashboard.
type DashboardStats struct {
	TotalSolicitudes int64            `json:"total_solicitudes"`
	TotalEquipos     int64            `json:"total_equipos"`
	Pendientes       int64            `json:"pendientes"`
	EnGarantia       int64            `json:"en_garantia"`
	Estados          []EstadoCount    `json:"estados"`
	Categorias       []CategoriaCount `json:"categorias"`
}

// Dashboard runs the landing-page aggregate queries. Equipo counts exclude
// soft-deleted rows.
func (s *ReportService) Dashboard() (*DashboardStats, error) {
	stats := &DashboardStats{}

	if err := models.DB.Model(&models.Solicitud{}).Count(&stats.TotalSolicitudes).Error; err != nil {
		return nil, err
	}
	if err := models.DB.Model(&models.Equipo{}).Where("eliminado = ?", false).Count(&stats.TotalEquipos).Error; err != nil {
		return nil, err
	}
	if err := models.DB.Model(&models.Solicitud{}).Where("estado = ?", models.EstadoPendiente).Count(&stats.Pendientes).Error; err != nil {
		return nil, err
	}
	if err := models.DB.Model(&models.Equipo{}).Where("en_garantia = ? AND eliminado = ?", true, false).Count(&stats.EnGarantia).Error; err != nil {
		return nil, err
	}

	if err := models.DB.Model(&models.Solicitud{}).
		Select("estado, COUNT(*) AS cantidad").
		Group("estado").
		Scan(&stats.Estados).Error; err != nil {
		return nil, err
	}

	if err := models.DB.Model(&models.ArchivoAdjunto{}).
		Select("categoria, COUNT(*) AS cantidad").
		Group("categoria").
		Scan(&stats.Categorias).Error; err != nil {
		return nil, err
	}

	return stats, nil
}

// InformeMensual is the monthly report over equipos: intakes, deliveries
// and money totals for the delivered units.
type InformeMensual struct {
	Anio        int           `json:"anio"`
	Mes         int           `json:"mes"`
	Ingresados  int64         `json:"ingresados"`
	Entregados  int64         `json:"entregados"`
	CostoTotal  float64       `json:"costo_total"`
	PrecioTotal float64       `json:"precio_total"`
	PorEstado   []EstadoCount `json:"por_estado"`
}

// Monthly computes the report for one calendar month. Soft-deleted equipos
// are excluded like in every other report.
func (s *ReportService) Monthly(anio, mes int) (*InformeMensual, error) {
	if mes < 1 || mes > 12 || anio < 2000 || anio > 2100 {
		return nil, ErrInvalidPeriod
	}

	desde := time.Date(anio, time.Month(mes), 1, 0, 0, 0, 0, time.UTC)
	hasta := desde.AddDate(0, 1, 0)

	informe := &InformeMensual{Anio: anio, Mes: mes}

	if err := models.DB.Model(&models.Equipo{}).
		Where("eliminado = ? AND fecha_ingreso >= ? AND fecha_ingreso < ?", false, desde, hasta).
		Count(&informe.Ingresados).Error; err != nil {
		return nil, err
	}

	if err := models.DB.Model(&models.Equipo{}).
		Where("eliminado = ? AND fecha_entrega >= ? AND fecha_entrega < ?", false, desde, hasta).
		Count(&informe.Entregados).Error; err != nil {
		return nil, err
	}

	type totales struct {
		Costo  float64
		Precio float64
	}
	var t totales
	if err := models.DB.Model(&models.Equipo{}).
		Select("COALESCE(SUM(costo), 0) AS costo, COALESCE(SUM(precio), 0) AS precio").
		Where("eliminado = ? AND fecha_entrega >= ? AND fecha_entrega < ?", false, desde, hasta).
		Scan(&t).Error; err != nil {
		return nil, err
	}
	informe.CostoTotal = t.Costo
	informe.PrecioTotal = t.Precio

	if err := models.DB.Model(&models.Equipo{}).
		Select("estado, COUNT(*) AS cantidad").
		Where("eliminado = ? AND fecha_ingreso >= ? AND fecha_ingreso < ?", false, desde, hasta).
		Group("estado").
		Scan(&informe.PorEstado).Error; err != nil {
		return nil, err
	}

	return informe, nil
}
