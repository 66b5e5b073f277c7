package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("CAMPSHARE_BASE_URL", "")
	t.Setenv("CAMPSHARE_CONFIG_DIR", "")
	t.Setenv("CAMPSHARE_LOG_LEVEL", "")
	t.Setenv("CAMPSHARE_TIMEOUT", "")

	cfg := FromEnv()
	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
	assert.Equal(t, DefaultTimeout, cfg.Timeout)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.NotEmpty(t, cfg.ConfigDir)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("CAMPSHARE_BASE_URL", "https://api.example.test/api/v1")
	t.Setenv("CAMPSHARE_CONFIG_DIR", "/tmp/cs")
	t.Setenv("CAMPSHARE_LOG_LEVEL", "debug")
	t.Setenv("CAMPSHARE_TIMEOUT", "5s")

	cfg := FromEnv()
	assert.Equal(t, "https://api.example.test/api/v1", cfg.BaseURL)
	assert.Equal(t, "/tmp/cs", cfg.ConfigDir)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
}

func TestFromEnvBadTimeoutKeepsDefault(t *testing.T) {
	t.Setenv("CAMPSHARE_TIMEOUT", "soon")
	assert.Equal(t, DefaultTimeout, FromEnv().Timeout)
}

func TestDefaultDirHonorsXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	assert.Equal(t, filepath.Join("/tmp/xdg", "campshare"), DefaultDir())
}
