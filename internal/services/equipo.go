package services

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"ost-panel/internal/models"

	"gorm.io/gorm"
)

var (
	ErrEquipoNotFound = errors.New("equipo no encontrado")
	ErrRequiredField  = errors.New("campo requerido")
	ErrInvalidDate    = errors.New("formato de fecha inválido, se espera YYYY-MM-DD")
	ErrNoFields       = errors.New("no hay campos para actualizar")
)

const dateLayout = "2006-01-02"

type EquipoService struct {
	audit *AuditService
}

func NewEquipoService(audit *AuditService) *EquipoService {
	return &EquipoService{audit: audit}
}

// CreateEquipoData carries the fields accepted when registering a device.
type CreateEquipoData struct {
	SolicitudID        *uint  `json:"solicitud_id"`
	Cliente            string `json:"cliente"`
	TipoEquipo         string `json:"tipo_equipo"`
	Marca              string `json:"marca"`
	Modelo             string `json:"modelo"`
	NumeroSerie        string `json:"numero_serie"`
	FechaIngreso       string `json:"fecha_ingreso"`
	Remito             string `json:"remito"`
	Accesorios         string `json:"accesorios"`
	Prioridad          string `json:"prioridad"`
	ObservacionIngreso string `json:"observacion_ingreso"`
	EnGarantia         bool   `json:"en_garantia"`
}

// Create registers a new equipo: validates required fields, allocates the
// next OST inside the transaction and writes a single INSERT audit entry
// summarizing the creation.
func (s *EquipoService) Create(actor *models.User, data *CreateEquipoData) (*models.Equipo, error) {
	if strings.TrimSpace(data.Cliente) == "" {
		return nil, fmt.Errorf(`el campo "cliente" es requerido: %w`, ErrRequiredField)
	}
	if strings.TrimSpace(data.TipoEquipo) == "" {
		return nil, fmt.Errorf(`el campo "tipo_equipo" es requerido: %w`, ErrRequiredField)
	}

	var fechaIngreso *time.Time
	if data.FechaIngreso != "" {
		t, err := time.Parse(dateLayout, data.FechaIngreso)
		if err != nil {
			return nil, ErrInvalidDate
		}
		fechaIngreso = &t
	}

	prioridad := data.Prioridad
	if prioridad == "" {
		prioridad = models.PrioridadMedia
	}

	equipo := &models.Equipo{
		SolicitudID:        data.SolicitudID,
		Cliente:            data.Cliente,
		TipoEquipo:         data.TipoEquipo,
		Marca:              emptyToNil(data.Marca),
		Modelo:             emptyToNil(data.Modelo),
		NumeroSerie:        emptyToNil(data.NumeroSerie),
		FechaIngreso:       fechaIngreso,
		Remito:             emptyToNil(data.Remito),
		Accesorios:         emptyToNil(data.Accesorios),
		ObservacionIngreso: emptyToNil(data.ObservacionIngreso),
		Prioridad:          prioridad,
		Estado:             models.EstadoPendiente,
		EnGarantia:         data.EnGarantia,
		Eliminado:          false,
	}

	err := models.DB.Transaction(func(tx *gorm.DB) error {
		ost, err := nextOST(tx)
		if err != nil {
			return err
		}
		equipo.OST = ost

		if err := tx.Create(equipo).Error; err != nil {
			return err
		}

		resumen := fmt.Sprintf("OST %d - %s - %s", equipo.OST, equipo.Cliente, equipo.TipoEquipo)
		s.audit.Record(tx, equipo.ID, actor, "creacion", "", resumen, models.ActionInsert)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return equipo, nil
}

// nextOST increments the allocator row and reads the new value. The row
// update takes a lock, so concurrent creates get distinct numbers.
func nextOST(tx *gorm.DB) (int, error) {
	res := tx.Model(&models.OSTCounter{}).
		Where("id = ?", 1).
		Update("valor", gorm.Expr("valor + 1"))
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, errors.New("contador de OST no inicializado")
	}

	var ctr models.OSTCounter
	if err := tx.First(&ctr, 1).Error; err != nil {
		return 0, err
	}
	return ctr.Valor, nil
}

// EquipoPatch is the allow-list of updatable fields, one typed optional
// field per external name. A nil field was not supplied.
type EquipoPatch struct {
	Cliente             *string  `json:"cliente"`
	TipoEquipo          *string  `json:"tipo_equipo"`
	Marca               *string  `json:"marca"`
	Modelo              *string  `json:"modelo"`
	NumeroSerie         *string  `json:"numero_serie"`
	Accesorios          *string  `json:"accesorios"`
	Prioridad           *string  `json:"prioridad"`
	Remito              *string  `json:"remito"`
	ObservacionIngreso  *string  `json:"observacion_ingreso"`
	DetalleReparacion   *string  `json:"detalle_reparacion"`
	HorasTrabajo        *float64 `json:"horas_trabajo"`
	Reingreso           *bool    `json:"reingreso"`
	InformeTecnico      *string  `json:"informe_tecnico"`
	CostoReparacion     *float64 `json:"costo_reparacion"`
	PrecioCliente       *float64 `json:"precio_cliente"`
	NumeroOV            *string  `json:"numero_ov"`
	EstadoOV            *string  `json:"estado_ov"`
	FechaIngreso        *string  `json:"fecha_ingreso"`
	FechaEnvioProveedor *string  `json:"fecha_envio_proveedor"`
	FechaEntrega        *string  `json:"fecha_entrega"`
	RemitoEntrega       *string  `json:"remito_entrega"`
	Estado              *string  `json:"estado"`
	Proveedor           *string  `json:"proveedor"`
}

// fieldChange is one supplied patch field mapped to its column, the value
// to write and its string form for diffing and auditing.
type fieldChange struct {
	column string
	value  interface{}
	str    string
}

func (p *EquipoPatch) changes() ([]fieldChange, error) {
	var out []fieldChange

	addStr := func(column string, v *string) {
		if v != nil {
			out = append(out, fieldChange{column, *v, *v})
		}
	}
	addFloat := func(column string, v *float64) {
		if v != nil {
			out = append(out, fieldChange{column, *v, formatFloat(*v)})
		}
	}
	addBool := func(column string, v *bool) {
		if v != nil {
			out = append(out, fieldChange{column, *v, strconv.FormatBool(*v)})
		}
	}
	addDate := func(column string, v *string) error {
		if v == nil {
			return nil
		}
		if *v == "" {
			out = append(out, fieldChange{column, nil, ""})
			return nil
		}
		t, err := time.Parse(dateLayout, *v)
		if err != nil {
			return ErrInvalidDate
		}
		out = append(out, fieldChange{column, t, *v})
		return nil
	}

	addStr("cliente", p.Cliente)
	addStr("tipo_equipo", p.TipoEquipo)
	addStr("marca", p.Marca)
	addStr("modelo", p.Modelo)
	addStr("numero_serie", p.NumeroSerie)
	addStr("accesorios", p.Accesorios)
	addStr("prioridad", p.Prioridad)
	addStr("remito", p.Remito)
	addStr("observacion_ingreso", p.ObservacionIngreso)
	addStr("detalles_reparacion", p.DetalleReparacion)
	addFloat("horas_trabajo", p.HorasTrabajo)
	addBool("reingreso", p.Reingreso)
	addStr("informe", p.InformeTecnico)
	addFloat("costo", p.CostoReparacion)
	addFloat("precio", p.PrecioCliente)
	addStr("ov", p.NumeroOV)
	addStr("estado_ov", p.EstadoOV)
	if err := addDate("fecha_ingreso", p.FechaIngreso); err != nil {
		return nil, err
	}
	if err := addDate("fecha_envio", p.FechaEnvioProveedor); err != nil {
		return nil, err
	}
	if err := addDate("fecha_entrega", p.FechaEntrega); err != nil {
		return nil, err
	}
	addStr("remito_entrega", p.RemitoEntrega)
	addStr("estado", p.Estado)
	addStr("proveedor", p.Proveedor)

	return out, nil
}

// Update applies a partial update: supplied fields are diffed against the
// current row by string form, only the ones that actually differ are
// written, and each written field gets its own UPDATE audit entry.
// Resubmitting current values is a no-op that succeeds without writing.
func (s *EquipoService) Update(actor *models.User, id uint, patch *EquipoPatch) error {
	changes, err := patch.changes()
	if err != nil {
		return err
	}
	if len(changes) == 0 {
		return ErrNoFields
	}

	return models.DB.Transaction(func(tx *gorm.DB) error {
		var current models.Equipo
		if err := tx.First(&current, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEquipoNotFound
			}
			return err
		}

		type diff struct {
			column   string
			anterior string
			nuevo    string
		}
		updates := map[string]interface{}{}
		var diffs []diff

		for _, ch := range changes {
			anterior := equipoFieldString(&current, ch.column)
			if anterior == ch.str {
				continue
			}
			updates[ch.column] = ch.value
			diffs = append(diffs, diff{ch.column, anterior, ch.str})
		}

		if len(updates) == 0 {
			return nil
		}

		if err := tx.Model(&models.Equipo{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return err
		}

		for _, d := range diffs {
			s.audit.Record(tx, id, actor, d.column, d.anterior, d.nuevo, models.ActionUpdate)
		}
		return nil
	})
}

// SoftDelete marks an equipo as deleted. Deleting a row that is already
// deleted (or absent) fails with not-found; the operation is not
// idempotent by design.
func (s *EquipoService) SoftDelete(actor *models.User, id uint) error {
	return models.DB.Transaction(func(tx *gorm.DB) error {
		var equipo models.Equipo
		if err := tx.Where("id = ? AND eliminado = ?", id, false).First(&equipo).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEquipoNotFound
			}
			return err
		}

		now := time.Now()
		updates := map[string]interface{}{
			"eliminado":         true,
			"fecha_eliminacion": now,
		}
		if err := tx.Model(&models.Equipo{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return err
		}

		resumen := fmt.Sprintf("OST %d - %s - %s (serie: %s)",
			equipo.OST, equipo.Cliente, equipo.TipoEquipo, strOf(equipo.NumeroSerie))
		s.audit.Record(tx, id, actor, "eliminado", resumen, "eliminado", models.ActionDelete)
		return nil
	})
}

// Restore flips a soft-deleted equipo back. Restoring a row that is not
// deleted fails with not-found.
func (s *EquipoService) Restore(actor *models.User, id uint) error {
	return models.DB.Transaction(func(tx *gorm.DB) error {
		var equipo models.Equipo
		if err := tx.Where("id = ? AND eliminado = ?", id, true).First(&equipo).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEquipoNotFound
			}
			return err
		}

		updates := map[string]interface{}{
			"eliminado":         false,
			"fecha_eliminacion": nil,
		}
		if err := tx.Model(&models.Equipo{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return err
		}

		resumen := fmt.Sprintf("OST %d - %s restaurado", equipo.OST, equipo.Cliente)
		s.audit.Record(tx, id, actor, "eliminado", "eliminado", resumen, models.ActionInsert)
		return nil
	})
}

// List returns all equipos that are not soft-deleted, newest intake first.
func (s *EquipoService) List() ([]models.Equipo, error) {
	var equipos []models.Equipo
	err := models.DB.Where("eliminado = ?", false).
		Order("fecha_ingreso DESC, id DESC").
		Find(&equipos).Error
	if err != nil {
		return nil, err
	}
	return equipos, nil
}

// ProximoOST previews the next ticket number as MAX(ost)+1 (1 on an empty
// table). This is display-only; creation allocates from the counter.
func (s *EquipoService) ProximoOST() (int, error) {
	var max int64
	if err := models.DB.Model(&models.Equipo{}).Select("COALESCE(MAX(ost), 0)").Scan(&max).Error; err != nil {
		return 0, err
	}
	return int(max) + 1, nil
}

// equipoFieldString returns the current value of an updatable column in
// the same string form the patch produces, so the diff compares like with
// like.
func equipoFieldString(e *models.Equipo, column string) string {
	switch column {
	case "cliente":
		return e.Cliente
	case "tipo_equipo":
		return e.TipoEquipo
	case "marca":
		return strOf(e.Marca)
	case "modelo":
		return strOf(e.Modelo)
	case "numero_serie":
		return strOf(e.NumeroSerie)
	case "accesorios":
		return strOf(e.Accesorios)
	case "prioridad":
		return e.Prioridad
	case "remito":
		return strOf(e.Remito)
	case "observacion_ingreso":
		return strOf(e.ObservacionIngreso)
	case "detalles_reparacion":
		return strOf(e.DetallesReparacion)
	case "horas_trabajo":
		return floatOf(e.HorasTrabajo)
	case "reingreso":
		return strconv.FormatBool(e.Reingreso)
	case "informe":
		return strOf(e.Informe)
	case "costo":
		return floatOf(e.Costo)
	case "precio":
		return floatOf(e.Precio)
	case "ov":
		return strOf(e.OV)
	case "estado_ov":
		return strOf(e.EstadoOV)
	case "fecha_ingreso":
		return dateOf(e.FechaIngreso)
	case "fecha_envio":
		return dateOf(e.FechaEnvio)
	case "fecha_entrega":
		return dateOf(e.FechaEntrega)
	case "remito_entrega":
		return strOf(e.RemitoEntrega)
	case "estado":
		return e.Estado
	case "proveedor":
		return strOf(e.Proveedor)
	}
	return ""
}

func emptyToNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func strOf(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func floatOf(f *float64) string {
	if f == nil {
		return ""
	}
	return formatFloat(*f)
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func dateOf(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}
