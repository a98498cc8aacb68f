package services

import (
	"path/filepath"
	"testing"

	"ost-panel/internal/config"
	"ost-panel/internal/models"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// setupTestDB initializes a throwaway sqlite database for one test.
func setupTestDB(t *testing.T) *config.Config {
	t.Helper()

	cfg := &config.Config{
		Database: config.DatabaseConfig{
			Type: "sqlite",
			SQLite: config.SQLiteConfig{
				Path: filepath.Join(t.TempDir(), "ostpanel_test.db"),
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

	return cfg
}

// newTestUser creates a user through the auth service.
func newTestUser(t *testing.T, cfg *config.Config, username string, role models.Role) *models.User {
	t.Helper()

	user, err := NewAuthService(cfg).CreateUser(username, username+"@example.com", "secret123", role)
	require.NoError(t, err)
	return user
}

// newEquipoService wires a lifecycle service with a no-op logger.
func newEquipoService() *EquipoService {
	return NewEquipoService(NewAuditService(zapNop()))
}

func zapNop() *zap.Logger { return zap.NewNop() }

func strptr(s string) *string     { return &s }
func floatptr(f float64) *float64 { return &f }
