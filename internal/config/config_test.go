package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SHAREDSHOP_JWT_SECRET", "secret")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.App.Addr)
	assert.Equal(t, "info", cfg.App.LogLevel)
	assert.Equal(t, 30*time.Second, cfg.App.RequestTimeout)
	assert.Equal(t, 500, cfg.DB.MaxBatchOps)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
	assert.False(t, cfg.Redis.Enabled())
}

func TestLoadRequiresSecret(t *testing.T) {
	t.Setenv("SHAREDSHOP_JWT_SECRET", "")
	os.Unsetenv("SHAREDSHOP_JWT_SECRET")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadDotenv(t *testing.T) {
	t.Setenv("SHAREDSHOP_ADDR", ":9000")
	os.Unsetenv("SHAREDSHOP_JWT_SECRET")
	t.Cleanup(func() {
		os.Unsetenv("SHAREDSHOP_JWT_SECRET")
		os.Unsetenv("SHAREDSHOP_REDIS_URL")
	})

	path := filepath.Join(t.TempDir(), ".env")
	content := "SHAREDSHOP_JWT_SECRET=from-file\nSHAREDSHOP_ADDR=:7000\nSHAREDSHOP_REDIS_URL=redis://localhost:6379/0\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path, filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.Auth.JWTSecret)
	assert.Equal(t, ":9000", cfg.App.Addr, "environment wins over dotenv")
	assert.True(t, cfg.Redis.Enabled())
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("SHAREDSHOP_JWT_SECRET", "secret")
	t.Setenv("SHAREDSHOP_LOG_FORMAT", "xml")

	_, err := Load()
	assert.Error(t, err)
}
