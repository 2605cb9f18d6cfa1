package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "postgres", cfg.DBUser)
	assert.Equal(t, "fasalseva", cfg.DBName)
	assert.Equal(t, DefaultNASABaseURL, cfg.NASABaseURL)
	assert.Equal(t, DefaultOllamaBaseURL, cfg.OllamaBaseURL)
	assert.Equal(t, 168*time.Hour, cfg.JWTExpiry)
	assert.True(t, cfg.OllamaEnabled)
}

func TestLoadRequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestLoadInvalidPort(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("PORT", "not-a-number")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PORT")
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("PORT", "9000")
	t.Setenv("JWT_EXPIRY_HOURS", "24")
	t.Setenv("OLLAMA_ENABLED", "false")
	t.Setenv("NASA_TIMEOUT_SECONDS", "10")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, 24*time.Hour, cfg.JWTExpiry)
	assert.False(t, cfg.OllamaEnabled)
	assert.Equal(t, 10*time.Second, cfg.NASATimeout)
}

func TestGetDBConnString(t *testing.T) {
	cfg := &Config{
		DBUser:     "u",
		DBPassword: "p",
		DBHost:     "h",
		DBPort:     "5433",
		DBName:     "d",
	}
	assert.Equal(t, "postgres://u:p@h:5433/d?sslmode=disable", cfg.GetDBConnString())
}
