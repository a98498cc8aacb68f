package services

import (
	"time"

	"ost-panel/internal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type AuditService struct {
	logger *zap.Logger
}

func NewAuditService(logger *zap.Logger) *AuditService {
	return &AuditService{logger: logger}
}

// Record appends one audit row on the caller's transaction handle. A failed
// audit write is logged and swallowed: losing an audit entry must never
// abort the mutation it describes. If the surrounding transaction rolls
// back, the audit rows written on it are discarded with it.
func (s *AuditService) Record(tx *gorm.DB, equipoID uint, actor *models.User, campo, anterior, nuevo, accion string) {
	entry := &models.AuditEntry{
		EquipoID:        equipoID,
		UsuarioID:       actor.ID,
		UsuarioNombre:   actor.Username,
		CampoModificado: campo,
		ValorAnterior:   anterior,
		ValorNuevo:      nuevo,
		Accion:          accion,
		FechaCambio:     time.Now(),
	}

	if err := tx.Create(entry).Error; err != nil {
		s.logger.Error("audit write failed",
			zap.Uint("equipo_id", equipoID),
			zap.String("campo", campo),
			zap.String("accion", accion),
			zap.Error(err),
		)
	}
}

// AuditRecord is an audit entry enriched with a snapshot of the equipo it
// belongs to, so history stays legible after a soft delete.
type AuditRecord struct {
	models.AuditEntry `gorm:"embedded"`
	OST               *int    `json:"ost" gorm:"column:ost"`
	Cliente           *string `json:"cliente" gorm:"column:cliente"`
	TipoEquipo        *string `json:"tipo_equipo" gorm:"column:tipo_equipo"`
	EquipoEliminado   *bool   `json:"equipo_eliminado" gorm:"column:equipo_eliminado"`
}

const auditSelect = "equipos_auditoria.*, " +
	"equipos.ost AS ost, equipos.cliente AS cliente, " +
	"equipos.tipo_equipo AS tipo_equipo, equipos.eliminado AS equipo_eliminado"

// List returns the most recent audit entries across all equipos. The view
// is deliberately not filtered by the soft-delete flag.
func (s *AuditService) List(limit int) ([]AuditRecord, error) {
	var records []AuditRecord
	err := models.DB.Table("equipos_auditoria").
		Select(auditSelect).
		Joins("LEFT JOIN equipos ON equipos.id = equipos_auditoria.equipo_id").
		Order("equipos_auditoria.fecha_cambio DESC, equipos_auditoria.id DESC").
		Limit(limit).
		Scan(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

// ListByEquipo returns the audit history of one equipo, most recent first.
func (s *AuditService) ListByEquipo(equipoID uint, limit int) ([]AuditRecord, error) {
	var records []AuditRecord
	err := models.DB.Table("equipos_auditoria").
		Select(auditSelect).
		Joins("LEFT JOIN equipos ON equipos.id = equipos_auditoria.equipo_id").
		Where("equipos_auditoria.equipo_id = ?", equipoID).
		Order("equipos_auditoria.fecha_cambio DESC, equipos_auditoria.id DESC").
		Limit(limit).
		Scan(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}
