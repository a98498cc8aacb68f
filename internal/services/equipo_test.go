package services

import (
	"testing"

	"ost-panel/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func auditEntries(t *testing.T, equipoID uint) []models.AuditEntry {
	t.Helper()
	var entries []models.AuditEntry
	require.NoError(t, models.DB.Where("equipo_id = ?", equipoID).Order("id").Find(&entries).Error)
	return entries
}

func TestEquipoCreate(t *testing.T) {
	cfg := setupTestDB(t)
	actor := newTestUser(t, cfg, "tecnico", models.RoleEditor)
	svc := newEquipoService()

	t.Run("first equipo gets OST 1", func(t *testing.T) {
		next, err := svc.ProximoOST()
		require.NoError(t, err)
		assert.Equal(t, 1, next)

		equipo, err := svc.Create(actor, &CreateEquipoData{Cliente: "Acme", TipoEquipo: "Bomba"})
		require.NoError(t, err)
		assert.Equal(t, 1, equipo.OST)
		assert.Equal(t, models.EstadoPendiente, equipo.Estado)
		assert.Equal(t, models.PrioridadMedia, equipo.Prioridad)
		assert.False(t, equipo.Eliminado)

		entries := auditEntries(t, equipo.ID)
		require.Len(t, entries, 1)
		assert.Equal(t, models.ActionInsert, entries[0].Accion)
		assert.Equal(t, "tecnico", entries[0].UsuarioNombre)
	})

	t.Run("OST increases sequentially", func(t *testing.T) {
		equipo, err := svc.Create(actor, &CreateEquipoData{Cliente: "Acme", TipoEquipo: "Monitor"})
		require.NoError(t, err)
		assert.Equal(t, 2, equipo.OST)

		next, err := svc.ProximoOST()
		require.NoError(t, err)
		assert.Equal(t, 3, next)
	})

	t.Run("empty optional fields stored as NULL", func(t *testing.T) {
		equipo, err := svc.Create(actor, &CreateEquipoData{
			Cliente:    "Acme",
			TipoEquipo: "Sensor",
			Marca:      "",
			Modelo:     "XJ-9",
		})
		require.NoError(t, err)

		var stored models.Equipo
		require.NoError(t, models.DB.First(&stored, equipo.ID).Error)
		assert.Nil(t, stored.Marca)
		require.NotNil(t, stored.Modelo)
		assert.Equal(t, "XJ-9", *stored.Modelo)
	})

	t.Run("missing required fields", func(t *testing.T) {
		_, err := svc.Create(actor, &CreateEquipoData{TipoEquipo: "Bomba"})
		assert.ErrorIs(t, err, ErrRequiredField)

		_, err = svc.Create(actor, &CreateEquipoData{Cliente: "Acme"})
		assert.ErrorIs(t, err, ErrRequiredField)
	})

	t.Run("bad date format", func(t *testing.T) {
		_, err := svc.Create(actor, &CreateEquipoData{
			Cliente:      "Acme",
			TipoEquipo:   "Bomba",
			FechaIngreso: "27/08/2026",
		})
		assert.ErrorIs(t, err, ErrInvalidDate)
	})
}

func TestEquipoUpdate(t *testing.T) {
	cfg := setupTestDB(t)
	actor := newTestUser(t, cfg, "tecnico", models.RoleEditor)
	svc := newEquipoService()

	equipo, err := svc.Create(actor, &CreateEquipoData{Cliente: "Acme", TipoEquipo: "Bomba"})
	require.NoError(t, err)

	t.Run("estado change produces one audit entry with old and new", func(t *testing.T) {
		before := len(auditEntries(t, equipo.ID))

		err := svc.Update(actor, equipo.ID, &EquipoPatch{Estado: strptr("En curso")})
		require.NoError(t, err)

		entries := auditEntries(t, equipo.ID)
		require.Len(t, entries, before+1)

		last := entries[len(entries)-1]
		assert.Equal(t, models.ActionUpdate, last.Accion)
		assert.Equal(t, "estado", last.CampoModificado)
		assert.Equal(t, "Pendiente", last.ValorAnterior)
		assert.Equal(t, "En curso", last.ValorNuevo)
	})

	t.Run("resubmitting current values is a silent no-op", func(t *testing.T) {
		before := len(auditEntries(t, equipo.ID))

		err := svc.Update(actor, equipo.ID, &EquipoPatch{
			Cliente:    strptr("Acme"),
			TipoEquipo: strptr("Bomba"),
			Estado:     strptr("En curso"),
		})
		require.NoError(t, err)

		assert.Len(t, auditEntries(t, equipo.ID), before)
	})

	t.Run("one entry per changed field", func(t *testing.T) {
		before := len(auditEntries(t, equipo.ID))

		err := svc.Update(actor, equipo.ID, &EquipoPatch{
			Marca:           strptr("Siemens"),
			CostoReparacion: floatptr(1500.50),
			Estado:          strptr("En curso"), // unchanged
		})
		require.NoError(t, err)

		entries := auditEntries(t, equipo.ID)
		require.Len(t, entries, before+2)

		var stored models.Equipo
		require.NoError(t, models.DB.First(&stored, equipo.ID).Error)
		require.NotNil(t, stored.Costo)
		assert.Equal(t, 1500.50, *stored.Costo)
	})

	t.Run("date fields validated and diffed as strings", func(t *testing.T) {
		err := svc.Update(actor, equipo.ID, &EquipoPatch{FechaEntrega: strptr("2026-08-27")})
		require.NoError(t, err)

		entries := auditEntries(t, equipo.ID)
		last := entries[len(entries)-1]
		assert.Equal(t, "fecha_entrega", last.CampoModificado)
		assert.Equal(t, "", last.ValorAnterior)
		assert.Equal(t, "2026-08-27", last.ValorNuevo)

		err = svc.Update(actor, equipo.ID, &EquipoPatch{FechaEntrega: strptr("27-08-2026")})
		assert.ErrorIs(t, err, ErrInvalidDate)
	})

	t.Run("no recognized fields", func(t *testing.T) {
		err := svc.Update(actor, equipo.ID, &EquipoPatch{})
		assert.ErrorIs(t, err, ErrNoFields)
	})

	t.Run("missing row fails before any write", func(t *testing.T) {
		err := svc.Update(actor, 99999, &EquipoPatch{Estado: strptr("En curso")})
		assert.ErrorIs(t, err, ErrEquipoNotFound)
	})
}

func TestEquipoSoftDeleteAndRestore(t *testing.T) {
	cfg := setupTestDB(t)
	actor := newTestUser(t, cfg, "supervisor", models.RoleEditorV2)
	svc := newEquipoService()
	audit := NewAuditService(zapNop())

	equipo, err := svc.Create(actor, &CreateEquipoData{Cliente: "Acme", TipoEquipo: "Bomba"})
	require.NoError(t, err)

	t.Run("soft delete hides from listings but keeps history", func(t *testing.T) {
		require.NoError(t, svc.SoftDelete(actor, equipo.ID))

		var stored models.Equipo
		require.NoError(t, models.DB.First(&stored, equipo.ID).Error)
		assert.True(t, stored.Eliminado)
		require.NotNil(t, stored.FechaEliminacion)

		listed, err := svc.List()
		require.NoError(t, err)
		assert.Empty(t, listed)

		records, err := audit.ListByEquipo(equipo.ID, 50)
		require.NoError(t, err)
		require.NotEmpty(t, records)
		assert.Equal(t, models.ActionDelete, records[0].Accion)
		require.NotNil(t, records[0].EquipoEliminado)
		assert.True(t, *records[0].EquipoEliminado)
	})

	t.Run("deleting an already deleted equipo fails", func(t *testing.T) {
		err := svc.SoftDelete(actor, equipo.ID)
		assert.ErrorIs(t, err, ErrEquipoNotFound)
	})

	t.Run("restore brings it back", func(t *testing.T) {
		require.NoError(t, svc.Restore(actor, equipo.ID))

		var stored models.Equipo
		require.NoError(t, models.DB.First(&stored, equipo.ID).Error)
		assert.False(t, stored.Eliminado)
		assert.Nil(t, stored.FechaEliminacion)

		listed, err := svc.List()
		require.NoError(t, err)
		require.Len(t, listed, 1)
		assert.Equal(t, equipo.ID, listed[0].ID)
	})

	t.Run("restoring a non-deleted equipo fails", func(t *testing.T) {
		err := svc.Restore(actor, equipo.ID)
		assert.ErrorIs(t, err, ErrEquipoNotFound)
	})

	t.Run("deleted equipos keep their OST reserved", func(t *testing.T) {
		otro, err := svc.Create(actor, &CreateEquipoData{Cliente: "Beta", TipoEquipo: "Motor"})
		require.NoError(t, err)
		require.NoError(t, svc.SoftDelete(actor, otro.ID))

		siguiente, err := svc.Create(actor, &CreateEquipoData{Cliente: "Gamma", TipoEquipo: "Valvula"})
		require.NoError(t, err)
		assert.Greater(t, siguiente.OST, otro.OST)
	})
}

func TestAuditListEnrichment(t *testing.T) {
	cfg := setupTestDB(t)
	actor := newTestUser(t, cfg, "tecnico", models.RoleEditor)
	svc := newEquipoService()
	audit := NewAuditService(zapNop())

	a, err := svc.Create(actor, &CreateEquipoData{Cliente: "Acme", TipoEquipo: "Bomba"})
	require.NoError(t, err)
	b, err := svc.Create(actor, &CreateEquipoData{Cliente: "Beta", TipoEquipo: "Motor"})
	require.NoError(t, err)

	require.NoError(t, svc.Update(actor, a.ID, &EquipoPatch{Estado: strptr("En curso")}))

	t.Run("global list is most recent first and enriched", func(t *testing.T) {
		records, err := audit.List(50)
		require.NoError(t, err)
		require.Len(t, records, 3)

		assert.Equal(t, a.ID, records[0].EquipoID)
		assert.Equal(t, models.ActionUpdate, records[0].Accion)
		require.NotNil(t, records[0].Cliente)
		assert.Equal(t, "Acme", *records[0].Cliente)
		require.NotNil(t, records[0].OST)
		assert.Equal(t, a.OST, *records[0].OST)
	})

	t.Run("per equipo filter", func(t *testing.T) {
		records, err := audit.ListByEquipo(b.ID, 50)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, models.ActionInsert, records[0].Accion)
	})

	t.Run("limit respected", func(t *testing.T) {
		records, err := audit.List(2)
		require.NoError(t, err)
		assert.Len(t, records, 2)
	})
}
