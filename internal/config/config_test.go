package config_test

import (
	"testing"
	"time"

	"github.com/alfagnish/userapi/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := config.Load()

	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("LISTEN_ADDR", ":9999")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("SHUTDOWN_TIMEOUT_S", "3")

	cfg := config.Load()

	assert.Equal(t, ":9999", cfg.ListenAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
}

func TestLoadIgnoresInvalidTimeout(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT_S", "not-a-number")

	cfg := config.Load()
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
}
