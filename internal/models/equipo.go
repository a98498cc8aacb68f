package models

import (
	"time"
)

// Priority levels for an equipo.
const (
	PrioridadBaja    = "Baja"
	PrioridadMedia   = "Media"
	PrioridadAlta    = "Alta"
	PrioridadCritica = "Critica"
)

// EstadoPendiente is the state every equipo starts in.
const EstadoPendiente = "Pendiente"

// Equipo is a tracked device under repair, identified externally by its
// sequential OST number. Rows are never physically deleted: the eliminado
// flag soft-deletes and every listing query must filter on it.
type Equipo struct {
	ID          uint  `json:"id" gorm:"primaryKey"`
	SolicitudID *uint `json:"solicitud_id" gorm:"index"`
	OST         int   `json:"ost" gorm:"column:ost;uniqueIndex;not null"`

	Cliente            string  `json:"cliente" gorm:"type:varchar(255);not null"`
	TipoEquipo         string  `json:"tipo_equipo" gorm:"type:varchar(255);not null"`
	Marca              *string `json:"marca" gorm:"type:varchar(255)"`
	Modelo             *string `json:"modelo" gorm:"type:varchar(255)"`
	NumeroSerie        *string `json:"numero_serie" gorm:"type:varchar(255);index"`
	Accesorios         *string `json:"accesorios" gorm:"type:text"`
	ObservacionIngreso *string `json:"observacion_ingreso" gorm:"type:text"`

	Prioridad string `json:"prioridad" gorm:"type:varchar(20);default:'Media'"`
	Estado    string `json:"estado" gorm:"type:varchar(50);default:'Pendiente'"`

	FechaIngreso  *time.Time `json:"fecha_ingreso" gorm:"type:date"`
	FechaEnvio    *time.Time `json:"fecha_envio_proveedor" gorm:"column:fecha_envio;type:date"`
	FechaEntrega  *time.Time `json:"fecha_entrega" gorm:"type:date"`
	Remito        *string    `json:"remito" gorm:"type:varchar(100)"`
	RemitoEntrega *string    `json:"remito_entrega" gorm:"type:varchar(100)"`
	Proveedor     *string    `json:"proveedor" gorm:"type:varchar(255)"`

	DetallesReparacion *string  `json:"detalle_reparacion" gorm:"column:detalles_reparacion;type:text"`
	HorasTrabajo       *float64 `json:"horas_trabajo"`
	Reingreso          bool     `json:"reingreso" gorm:"default:false"`
	EnGarantia         bool     `json:"en_garantia" gorm:"default:false"`
	Informe            *string  `json:"informe_tecnico" gorm:"column:informe;type:text"`
	Costo              *float64 `json:"costo_reparacion" gorm:"column:costo"`
	Precio             *float64 `json:"precio_cliente" gorm:"column:precio"`
	OV                 *string  `json:"numero_ov" gorm:"column:ov;type:varchar(100)"`
	EstadoOV           *string  `json:"estado_ov" gorm:"column:estado_ov;type:varchar(50)"`

	Eliminado        bool       `json:"eliminado" gorm:"default:false;index"`
	FechaEliminacion *time.Time `json:"fecha_eliminacion"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Equipo) TableName() string { return "equipos" }

// OSTCounter is a single-row table backing OST allocation. Incrementing the
// row inside the create transaction serializes concurrent creates, which a
// plain MAX(ost)+1 read cannot do.
type OSTCounter struct {
	ID    uint `gorm:"primaryKey"`
	Valor int  `gorm:"not null"`
}

func (OSTCounter) TableName() string { return "ost_counters" }
