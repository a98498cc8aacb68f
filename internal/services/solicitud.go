package services

import (
	"errors"

	"ost-panel/internal/models"

	"gorm.io/gorm"
)

var (
	ErrSolicitudNotFound = errors.New("solicitud no encontrada")
	ErrInvalidCategoria  = errors.New("categoría inválida")
)

type SolicitudService struct{}

func NewSolicitudService() *SolicitudService {
	return &SolicitudService{}
}

// List returns all solicitudes, newest first.
func (s *SolicitudService) List() ([]models.Solicitud, error) {
	var solicitudes []models.Solicitud
	err := models.DB.Order("fecha_solicitud DESC, id DESC").Find(&solicitudes).Error
	if err != nil {
		return nil, err
	}
	return solicitudes, nil
}

// SolicitudPatch is the allow-list of updatable solicitud fields.
type SolicitudPatch struct {
	EmailSolicitante   *string `json:"email_solicitante"`
	QuienCompleta      *string `json:"quien_completa"`
	AreaSolicitante    *string `json:"area_solicitante"`
	Solicitante        *string `json:"solicitante"`
	NivelUrgencia      *string `json:"nivel_urgencia"`
	LogisticaCargo     *string `json:"logistica_cargo"`
	ComentariosCaso    *string `json:"comentarios_caso"`
	EquipoCorrespondeA *string `json:"equipo_corresponde_a"`
	MotivoSolicitud    *string `json:"motivo_solicitud"`
	Categoria          *string `json:"categoria"`
	Estado             *string `json:"estado"`
}

func validCategoria(c string) bool {
	switch c {
	case models.CategoriaReparacion, models.CategoriaGarantia,
		models.CategoriaBienAlquiler, models.CategoriaCompAlquiler,
		models.CategoriaFueraCirc:
		return true
	}
	return false
}

// Update applies a partial update to a solicitud. A body with none of the
// allow-listed fields is rejected; a missing row fails before any write.
func (s *SolicitudService) Update(id uint, patch *SolicitudPatch) error {
	updates := map[string]interface{}{}

	add := func(column string, v *string) {
		if v != nil {
			updates[column] = *v
		}
	}
	add("email_solicitante", patch.EmailSolicitante)
	add("quien_completa", patch.QuienCompleta)
	add("area_solicitante", patch.AreaSolicitante)
	add("solicitante", patch.Solicitante)
	add("nivel_urgencia", patch.NivelUrgencia)
	add("logistica_cargo", patch.LogisticaCargo)
	add("comentarios_caso", patch.ComentariosCaso)
	add("equipo_corresponde_a", patch.EquipoCorrespondeA)
	add("motivo_solicitud", patch.MotivoSolicitud)
	add("estado", patch.Estado)

	if patch.Categoria != nil {
		if !validCategoria(*patch.Categoria) {
			return ErrInvalidCategoria
		}
		updates["categoria"] = *patch.Categoria
	}

	if len(updates) == 0 {
		return ErrNoFields
	}

	return models.DB.Transaction(func(tx *gorm.DB) error {
		var solicitud models.Solicitud
		if err := tx.First(&solicitud, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSolicitudNotFound
			}
			return err
		}
		return tx.Model(&models.Solicitud{}).Where("id = ?", id).Updates(updates).Error
	})
}
