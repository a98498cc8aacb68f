package models

import (
	"time"
)

// Audit action kinds.
const (
	ActionInsert = "INSERT"
	ActionUpdate = "UPDATE"
	ActionDelete = "DELETE"
)

// AuditEntry records one field-level change on an equipo: append-only, one
// row per changed field. The acting username is denormalized so history
// stays readable after the user is deactivated.
type AuditEntry struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	EquipoID        uint      `json:"equipo_id" gorm:"index;not null"`
	UsuarioID       uint      `json:"usuario_id" gorm:"index"`
	UsuarioNombre   string    `json:"usuario_nombre" gorm:"type:varchar(255)"`
	CampoModificado string    `json:"campo_modificado" gorm:"type:varchar(100)"`
	ValorAnterior   string    `json:"valor_anterior" gorm:"type:text"`
	ValorNuevo      string    `json:"valor_nuevo" gorm:"type:text"`
	Accion          string    `json:"accion" gorm:"type:varchar(20);not null"`
	FechaCambio     time.Time `json:"fecha_cambio" gorm:"index"`
}

func (AuditEntry) TableName() string { return "equipos_auditoria" }
