package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, DriverPostgres, cfg.DBDriver)
	assert.Equal(t, 15*time.Second, cfg.ReadTimeout)
	assert.Equal(t, 25, cfg.DBMaxOpenConns)
	assert.True(t, cfg.Seed)
	assert.False(t, cfg.Migrations)
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, "host=localhost port=5432 user=postgres password=postgres dbname=invoicing sslmode=disable", cfg.DSN())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("PORT", "9000")
	t.Setenv("SERVER_WRITE_TIMEOUT", "45s")
	t.Setenv("DB_DRIVER", "mysql")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_USER", "app")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_DEBUG", "1")
	t.Setenv("MIGRATIONS", "true")
	t.Setenv("LOGO_MAX_WIDTH", "300")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, ":9000", cfg.Addr())
	assert.Equal(t, 45*time.Second, cfg.WriteTimeout)
	assert.True(t, cfg.DBDebug)
	assert.True(t, cfg.Migrations)
	assert.Equal(t, 300, cfg.LogoMaxWidth)
	assert.Equal(t, "app:secret@tcp(db:3306)/invoicing?charset=utf8mb4&parseTime=True&loc=UTC", cfg.DSN())
}

func TestDSNPrefersExplicitValue(t *testing.T) {
	cfg := &Config{DBDriver: DriverSQLite, DBName: "local"}
	assert.Equal(t, "local.db", cfg.DSN())
	cfg.DatabaseDSN = "file:test.db"
	assert.Equal(t, "file:test.db", cfg.DSN())
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := map[string]map[string]string{
		"driver":   {"DB_DRIVER": "oracle"},
		"pool":     {"DB_MAX_OPEN_CONNS": "0"},
		"idle":     {"DB_MAX_OPEN_CONNS": "2", "DB_MAX_IDLE_CONNS": "3"},
		"duration": {"SERVER_READ_TIMEOUT": "soon"},
		"rate":     {"RATE_LIMIT_PER_MINUTE": "0"},
	}
	for name, env := range tests {
		t.Run(name, func(t *testing.T) {
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
