package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-ims/pkg/config"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, config.DriverPostgres, cfg.DB.Driver)
	assert.Equal(t, 1440, cfg.JWT.Expiration)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.False(t, cfg.Redis.Enabled())
	assert.Equal(t, 10*time.Second, cfg.Redis.LockTTL)
	assert.True(t, cfg.DB.Migrate)
}

func TestLoad_LeeVariablesDeEntorno(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("DB_DRIVER", "MEMORY")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("DB_MIGRATE", "false")
	t.Setenv("AUTH_RATE_LIMIT_PER_MINUTE", "5")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, config.DriverMemory, cfg.DB.Driver)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.True(t, cfg.Redis.Enabled())
	assert.False(t, cfg.DB.Migrate)
	assert.Equal(t, 5, cfg.HTTP.AuthRateLimitPerMinute)
}

func TestLoad_SinSecretoFalla(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestDBConfig_DSNEscapaPassword(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "ims", Password: "p@ss:w/rd", DBName: "ims", SSLMode: "disable"}

	assert.Equal(t, "postgres://ims:p%40ss%3Aw%2Frd@db:5432/ims?sslmode=disable", c.DSN())
	assert.Equal(t, c.DSN(), c.ConnectionString())

	c.DatabaseURL = "postgres://x@y/z"
	assert.Equal(t, "postgres://x@y/z", c.ConnectionString())
}
