package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-console/pkg/config"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:3000/api", cfg.API.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.Poller.Interval())
	assert.Equal(t, config.TokenStoreFile, cfg.TokenStore.Backend)
	assert.Equal(t, "127.0.0.1:8090", cfg.HTTP.Addr())
}

func TestLoad_EnvTienePrioridad(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://api.example.com/api/")
	t.Setenv("POLL_INTERVAL_SECONDS", "5")
	t.Setenv("TOKEN_STORE", "REDIS")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "https://api.example.com/api", cfg.API.BaseURL, "se recorta la barra final")
	assert.Equal(t, 5*time.Second, cfg.Poller.Interval())
	assert.Equal(t, config.TokenStoreRedis, cfg.TokenStore.Backend)
}

func TestLoad_TokenStoreDesconocido(t *testing.T) {
	t.Setenv("TOKEN_STORE", "s3")
	_, err := config.Load()
	assert.Error(t, err)
}

func TestDBConfig_DSNEscapaPassword(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss/word", DBName: "inv", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%2Fword@db:5432/inv?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://x@y/z"
	assert.Equal(t, "postgres://x@y/z", c.ConnectionString())
}
