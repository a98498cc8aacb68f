package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"ost-panel/internal/config"
	"ost-panel/internal/models"
	"ost-panel/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupTestRouter(t *testing.T) (*gin.Engine, *config.Config) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		Database: config.DatabaseConfig{
			Type: "sqlite",
			SQLite: config.SQLiteConfig{
				Path: filepath.Join(t.TempDir(), "ostpanel_routes_test.db"),
			},
		},
		JWT: config.JWTConfig{
			Secret:    "test-secret-key-for-testing-only",
			ExpiresIn: "24h",
			Issuer:    "ost-panel-test",
		},
		Security: config.SecurityConfig{
			BcryptCost: 4,
		},
	}

	require.NoError(t, models.InitDB(cfg))
	t.Cleanup(func() {
		if models.DB != nil {
			if sqlDB, err := models.DB.DB(); err == nil {
				sqlDB.Close()
			}
			models.DB = nil
		}
	})

	r := gin.New()
	SetupRoutes(r, cfg, zap.NewNop())
	return r, cfg
}

// loginAs creates a user with the given role and logs it in over HTTP,
// returning the bearer token.
func loginAs(t *testing.T, r *gin.Engine, cfg *config.Config, username string, role models.Role) string {
	t.Helper()

	_, err := services.NewAuthService(cfg).CreateUser(username, username+"@example.com", "secret123", role)
	require.NoError(t, err)

	w := doJSON(r, "POST", "/api/auth/login", "", gin.H{
		"username": username,
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func doJSON(r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestLogin(t *testing.T) {
	r, cfg := setupTestRouter(t)

	_, err := services.NewAuthService(cfg).CreateUser("ana", "ana@example.com", "secret123", models.RoleAdmin)
	require.NoError(t, err)

	t.Run("wrong password", func(t *testing.T) {
		w := doJSON(r, "POST", "/api/auth/login", "", gin.H{"username": "ana", "password": "nope"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("unknown user gets the same response", func(t *testing.T) {
		w := doJSON(r, "POST", "/api/auth/login", "", gin.H{"username": "fantasma", "password": "secret123"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Credenciales inválidas")
	})

	t.Run("valid credentials", func(t *testing.T) {
		w := doJSON(r, "POST", "/api/auth/login", "", gin.H{"username": "ana", "password": "secret123"})
		assert.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Token string `json:"token"`
			User  struct {
				Username string `json:"username"`
				Role     string `json:"role"`
			} `json:"user"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, "ana", resp.User.Username)
		assert.NotContains(t, w.Body.String(), "password_hash")
	})

	t.Run("missing fields", func(t *testing.T) {
		w := doJSON(r, "POST", "/api/auth/login", "", gin.H{"username": "ana"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestEquipoRoutes(t *testing.T) {
	r, cfg := setupTestRouter(t)

	viewerToken := loginAs(t, r, cfg, "lector", models.RoleViewer)
	editorToken := loginAs(t, r, cfg, "tecnico", models.RoleEditor)
	supervisorToken := loginAs(t, r, cfg, "supervisor", models.RoleEditorV2)

	t.Run("list requires a token", func(t *testing.T) {
		w := doJSON(r, "GET", "/api/equipos", "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("viewer can list", func(t *testing.T) {
		w := doJSON(r, "GET", "/api/equipos", viewerToken, nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("viewer cannot create", func(t *testing.T) {
		w := doJSON(r, "POST", "/api/equipos", viewerToken, gin.H{
			"cliente": "Acme", "tipo_equipo": "Bomba",
		})
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	var equipoID uint
	t.Run("editor creates and gets an OST", func(t *testing.T) {
		w := doJSON(r, "POST", "/api/equipos", editorToken, gin.H{
			"cliente": "Acme", "tipo_equipo": "Bomba",
		})
		require.Equal(t, http.StatusCreated, w.Code)

		var resp struct {
			Success bool `json:"success"`
			ID      uint `json:"id"`
			OST     int  `json:"ost"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Equal(t, 1, resp.OST)
		equipoID = resp.ID
	})

	t.Run("missing required field is a 400 with a named field", func(t *testing.T) {
		w := doJSON(r, "POST", "/api/equipos", editorToken, gin.H{"tipo_equipo": "Bomba"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "cliente")
	})

	t.Run("viewer cannot update even with a well-formed request", func(t *testing.T) {
		w := doJSON(r, "PUT", fmt.Sprintf("/api/equipo/%d", equipoID), viewerToken, gin.H{
			"estado": "En curso",
		})
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("editor updates", func(t *testing.T) {
		w := doJSON(r, "PUT", fmt.Sprintf("/api/equipo/%d", equipoID), editorToken, gin.H{
			"estado": "En curso",
		})
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("update of missing equipo is a 404", func(t *testing.T) {
		w := doJSON(r, "PUT", "/api/equipo/99999", editorToken, gin.H{"estado": "En curso"})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("update with no recognized fields is a 400", func(t *testing.T) {
		w := doJSON(r, "PUT", fmt.Sprintf("/api/equipo/%d", equipoID), editorToken, gin.H{})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("editor cannot delete", func(t *testing.T) {
		w := doJSON(r, "DELETE", fmt.Sprintf("/api/equipo/%d", equipoID), editorToken, nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("editor_v2 deletes and restores", func(t *testing.T) {
		w := doJSON(r, "DELETE", fmt.Sprintf("/api/equipo/%d", equipoID), supervisorToken, nil)
		require.Equal(t, http.StatusOK, w.Code)

		// second delete hits a row that is already gone
		w = doJSON(r, "DELETE", fmt.Sprintf("/api/equipo/%d", equipoID), supervisorToken, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)

		w = doJSON(r, "POST", fmt.Sprintf("/api/equipo/%d/restaurar", equipoID), supervisorToken, nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("proximo-ost preview", func(t *testing.T) {
		w := doJSON(r, "GET", "/api/proximo-ost", viewerToken, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Success    bool   `json:"success"`
			ProximoOST string `json:"proximo_ost"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Equal(t, "2", resp.ProximoOST)
	})

	t.Run("legacy create alias", func(t *testing.T) {
		w := doJSON(r, "POST", "/api/equipo/crear", editorToken, gin.H{
			"cliente": "Beta", "tipo_equipo": "Motor",
		})
		assert.Equal(t, http.StatusCreated, w.Code)
	})
}

func TestUserManagementRoutes(t *testing.T) {
	r, cfg := setupTestRouter(t)

	adminToken := loginAs(t, r, cfg, "ana", models.RoleAdmin)
	editorToken := loginAs(t, r, cfg, "tecnico", models.RoleEditor)

	t.Run("editor cannot manage users", func(t *testing.T) {
		w := doJSON(r, "GET", "/api/users", editorToken, nil)
		assert.Equal(t, http.StatusForbidden, w.Code)

		w = doJSON(r, "POST", "/api/users/create", editorToken, gin.H{
			"username": "nuevo", "email": "nuevo@example.com", "password": "pass1234", "role": "viewer",
		})
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("admin creates a user", func(t *testing.T) {
		w := doJSON(r, "POST", "/api/users/create", adminToken, gin.H{
			"username": "nuevo", "email": "nuevo@example.com", "password": "pass1234", "role": "viewer",
		})
		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("admin lists users without hashes", func(t *testing.T) {
		w := doJSON(r, "GET", "/api/users", adminToken, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.NotContains(t, w.Body.String(), "password_hash")
	})

	t.Run("anyone changes their own password with the current one", func(t *testing.T) {
		w := doJSON(r, "POST", "/api/users/me/password", editorToken, gin.H{
			"current_password": "equivocada", "new_password": "nueva123",
		})
		assert.Equal(t, http.StatusForbidden, w.Code)

		w = doJSON(r, "POST", "/api/users/me/password", editorToken, gin.H{
			"current_password": "secret123", "new_password": "nueva123",
		})
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestAuditAndReportRoutes(t *testing.T) {
	r, cfg := setupTestRouter(t)

	adminToken := loginAs(t, r, cfg, "ana", models.RoleAdmin)
	editorToken := loginAs(t, r, cfg, "tecnico", models.RoleEditor)

	w := doJSON(r, "POST", "/api/equipos", editorToken, gin.H{
		"cliente": "Acme", "tipo_equipo": "Bomba",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	t.Run("editor cannot read the audit trail", func(t *testing.T) {
		w := doJSON(r, "GET", "/api/auditoria", editorToken, nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("admin reads the audit trail", func(t *testing.T) {
		w := doJSON(r, "GET", "/api/auditoria", adminToken, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "creacion")
	})

	t.Run("dashboard and monthly report", func(t *testing.T) {
		w := doJSON(r, "GET", "/api/dashboard", editorToken, nil)
		assert.Equal(t, http.StatusOK, w.Code)

		w = doJSON(r, "GET", "/api/informe-mensual?anio=2026&mes=8", editorToken, nil)
		assert.Equal(t, http.StatusOK, w.Code)

		w = doJSON(r, "GET", "/api/informe-mensual?anio=2026&mes=13", editorToken, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("logout invalidates the session", func(t *testing.T) {
		w := doJSON(r, "POST", "/api/auth/logout", editorToken, nil)
		require.Equal(t, http.StatusOK, w.Code)

		w = doJSON(r, "GET", "/api/equipos", editorToken, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
