package services

import (
	"ost-panel/internal/models"
)

type ArchivoService struct{}

func NewArchivoService() *ArchivoService {
	return &ArchivoService{}
}

// ArchivoRecord is an attachment enriched with identifying fields of the
// equipo it belongs to. The join skips soft-deleted equipos so their data
// does not leak into listings.
type ArchivoRecord struct {
	models.ArchivoAdjunto `gorm:"embedded"`
	OST                   *int    `json:"ost" gorm:"column:ost"`
	NumeroSerie           *string `json:"numero_serie" gorm:"column:numero_serie"`
}

// List returns all attachments, newest upload first.
func (s *ArchivoService) List() ([]ArchivoRecord, error) {
	var records []ArchivoRecord
	err := models.DB.Table("archivos_adjuntos").
		Select("archivos_adjuntos.*, equipos.ost AS ost, equipos.numero_serie AS numero_serie").
		Joins("LEFT JOIN equipos ON equipos.id = archivos_adjuntos.equipo_id AND equipos.eliminado = ?", false).
		Order("archivos_adjuntos.fecha_subida DESC").
		Scan(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}
