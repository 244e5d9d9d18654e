package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all service configuration loaded from environment variables.
type Config struct {
	ListenAddr      string        // HTTP listen address
	LogLevel        string        // logrus level name
	ShutdownTimeout time.Duration // grace period for in-flight requests
}

// Load reads configuration from the environment, falling back to defaults.
// A .env file in the working directory is applied first when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ListenAddr:      envOrDefault("LISTEN_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		ShutdownTimeout: time.Duration(envOrDefaultInt64("SHUTDOWN_TIMEOUT_S", 10)) * time.Second,
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envOrDefaultInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fallback
	}
	return n
}
