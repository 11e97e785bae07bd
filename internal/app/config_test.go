package app

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{"APP_ENV", "APP_ADDR", "SESSION_TTL", "SESSION_SECRET", "RATE_LIMIT"} {
		require.NoError(t, os.Unsetenv(key))
	}

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.AppEnv)
	assert.Equal(t, ":3000", cfg.AppAddr)
	assert.Equal(t, 10*time.Minute, cfg.SessionTTL)
	assert.Equal(t, 120, cfg.RateLimit)
	assert.False(t, cfg.IsProduction())
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("SESSION_TTL", "30m")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
}
