package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotelops/internal/domain"
)

var envKeys = []string{
	"APP_ENV", "ENV", "HTTP_ADDR", "DATABASE_URL", "JWT_SECRET", "JWT_TTL",
	"REDIS_URL", "LOCK_TTL", "LOCK_WAIT", "SAME_DAY_TURNOVER",
	"HOUSEKEEPING_TOKEN_HASH", "LOG_LEVEL", "LOG_PRETTY", "CORS_ALLOWED_ORIGINS",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.AppEnv)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "hotelops.db", cfg.DatabaseURL)
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.Equal(t, 10*time.Second, cfg.LockTTL)
	assert.Equal(t, 3*time.Second, cfg.LockWait)
	assert.False(t, cfg.SameDayTurnover)
	assert.Equal(t, domain.OverlapInclusive, cfg.OverlapPolicy())
	assert.True(t, cfg.LogPretty)
	assert.Empty(t, cfg.CORSAllowedOrigins)
	assert.False(t, cfg.IsProd())
}

func TestFromEnv_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("ENV", "staging")
	t.Setenv("SAME_DAY_TURNOVER", "yes")
	t.Setenv("LOCK_WAIT", "500ms")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com, ,https://b.example.com")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "staging", cfg.AppEnv)
	assert.Equal(t, domain.OverlapExclusive, cfg.OverlapPolicy())
	assert.Equal(t, 500*time.Millisecond, cfg.LockWait)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, "redis://localhost:6379/0", cfg.RedisURL)
}

func TestFromEnv_Invalid(t *testing.T) {
	cases := map[string]map[string]string{
		"bad duration":     {"JWT_TTL": "forever"},
		"zero lock wait":   {"LOCK_WAIT": "0s"},
		"wait beyond ttl":  {"LOCK_TTL": "1s", "LOCK_WAIT": "2s"},
		"bad log level":    {"LOG_LEVEL": "chatty"},
		"plain token hash": {"HOUSEKEEPING_TOKEN_HASH": "hunter2"},
	}

	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := FromEnv()
			assert.Error(t, err)
		})
	}
}

func TestFromEnv_ProdChecks(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_ENV", "production")

	_, err := FromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")

	t.Setenv("JWT_SECRET", "a-real-secret")
	_, err = FromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Postgres")

	t.Setenv("DATABASE_URL", "postgres://hotel:pw@db:5432/hotel?sslmode=disable")
	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.True(t, cfg.IsProd())
	assert.False(t, cfg.LogPretty)
}
