package models

import (
	"time"
)

// ArchivoAdjunto is the metadata of an uploaded file. The bytes live in an
// external object store; only the URL is kept here. Rows are written by the
// upload flow and read-only for this API.
type ArchivoAdjunto struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	SolicitudID   *uint     `json:"solicitud_id" gorm:"index"`
	EquipoID      *uint     `json:"equipo_id" gorm:"index"`
	NombreArchivo string    `json:"nombre_archivo" gorm:"type:varchar(255)"`
	URLCloudinary string    `json:"url_cloudinary" gorm:"column:url_cloudinary;type:varchar(500)"`
	TipoArchivo   *string   `json:"tipo_archivo" gorm:"type:varchar(100)"`
	Categoria     *string   `json:"categoria" gorm:"type:varchar(50);index"`
	TamanoBytes   int64     `json:"tamano_bytes"`
	FechaSubida   time.Time `json:"fecha_subida" gorm:"index"`
}

func (ArchivoAdjunto) TableName() string { return "archivos_adjuntos" }
