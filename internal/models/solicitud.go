package models

import (
	"time"
)

// Letter codes for the solicitud category: repair, warranty and the
// rental-related variants.
const (
	CategoriaReparacion   = "R"
	CategoriaGarantia     = "G"
	CategoriaBienAlquiler = "BA"
	CategoriaCompAlquiler = "CA"
	CategoriaFueraCirc    = "FC"
)

// Solicitud is an intake service request. Rows are created by the intake
// form (external) and are never deleted; only the allow-listed fields are
// mutable through the API.
type Solicitud struct {
	ID                 uint      `json:"id" gorm:"primaryKey"`
	FechaSolicitud     time.Time `json:"fecha_solicitud" gorm:"index"`
	EmailSolicitante   *string   `json:"email_solicitante" gorm:"type:varchar(255)"`
	QuienCompleta      *string   `json:"quien_completa" gorm:"type:varchar(255)"`
	AreaSolicitante    *string   `json:"area_solicitante" gorm:"type:varchar(255)"`
	Solicitante        *string   `json:"solicitante" gorm:"type:varchar(255)"`
	NivelUrgencia      *string   `json:"nivel_urgencia" gorm:"type:varchar(50)"`
	LogisticaCargo     *string   `json:"logistica_cargo" gorm:"type:varchar(255)"`
	ComentariosCaso    *string   `json:"comentarios_caso" gorm:"type:text"`
	EquipoCorrespondeA *string   `json:"equipo_corresponde_a" gorm:"type:varchar(255)"`
	MotivoSolicitud    *string   `json:"motivo_solicitud" gorm:"type:text"`
	Categoria          *string   `json:"categoria" gorm:"type:varchar(5)"`
	Estado             string    `json:"estado" gorm:"type:varchar(50);default:'Pendiente'"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

func (Solicitud) TableName() string { return "solicitudes" }
