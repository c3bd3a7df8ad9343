package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samirrijal/ecoaldeas/internal/pkg/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load("ecoaldeas-test")
	require.NoError(t, err)

	assert.Equal(t, 8501, cfg.Server.Port)
	assert.Equal(t, "csv", cfg.Data.Source)
	assert.Equal(t, 40.0, cfg.Map.CenterLat)
	assert.Equal(t, -4.0, cfg.Map.CenterLon)
	assert.Equal(t, 6, cfg.Map.Zoom)
	assert.Equal(t, "memory", cfg.Session.Store)
	assert.Equal(t, "ecoaldeas-test", cfg.Telemetry.ServiceName)
	assert.Equal(t, 10, cfg.Database.MaxConns)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("ECOALDEAS_SERVER_PORT", "9090")
	t.Setenv("ECOALDEAS_DATA_PATH", "/srv/data/sites.csv")
	t.Setenv("ECOALDEAS_SESSION_STORE", "valkey")

	cfg, err := config.Load("ecoaldeas-test")
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "/srv/data/sites.csv", cfg.Data.Path)
	assert.Equal(t, "valkey", cfg.Session.Store)
}

func TestLoad_InvalidSource(t *testing.T) {
	t.Setenv("ECOALDEAS_DATA_SOURCE", "excel")

	_, err := config.Load("ecoaldeas-test")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "data.source")
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	cfg := &config.Config{
		Data:    config.DataConfig{Source: "csv"},
		Map:     config.MapConfig{Zoom: 40, CenterLat: 95},
		Session: config.SessionConfig{Store: "disk"},
	}

	err := cfg.Validate()
	require.Error(t, err)
	for _, want := range []string{"server.port", "data.path", "map.zoom", "map.center_lat", "session.store", "session.ttl"} {
		assert.Contains(t, err.Error(), want)
	}
}

func TestLoad_DatabaseMaxConns(t *testing.T) {
	t.Setenv("ECOALDEAS_DATA_SOURCE", "postgres")
	t.Setenv("ECOALDEAS_DATABASE_MAX_CONNS", "32")

	cfg, err := config.Load("ecoaldeas-test")
	require.NoError(t, err)
	assert.Equal(t, 32, cfg.Database.MaxConns)

	t.Setenv("ECOALDEAS_DATABASE_MAX_CONNS", "0")
	_, err = config.Load("ecoaldeas-test")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database.max_conns")
}
