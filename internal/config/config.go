// ABOUTME: Configuration loader for the AgriAI CLI
// ABOUTME: Loads settings from .env and environment variables with defaults

package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	// Backend
	APIURL      string
	HTTPTimeout int // seconds, default 30

	// Local state
	ConfigDir string // session credentials and TUI state live here

	// Chat
	Language string // default language sent with chat messages

	// Caching (agent health / weather lookups in the TUI)
	CacheTTL int // seconds, default 300

	// Speech
	RecorderCmd string // external command used to capture microphone audio
	PlayerCmd   string // external command used to play synthesized speech
}

const defaultAPIURL = "http://localhost:8000"

func Load() *Config {
	// A .env next to the binary is a convenience for development; a missing
	// file is not an error.
	_ = godotenv.Load()

	return &Config{
		APIURL:      getEnv("AGRIAI_API_URL", defaultAPIURL),
		HTTPTimeout: getEnvInt("AGRIAI_HTTP_TIMEOUT", 30),
		ConfigDir:   getEnv("AGRIAI_CONFIG_DIR", DefaultConfigDir()),
		Language:    getEnv("AGRIAI_LANGUAGE", "en"),
		CacheTTL:    getEnvInt("AGRIAI_CACHE_TTL", 300),
		RecorderCmd: getEnv("AGRIAI_RECORDER", "arecord"),
		PlayerCmd:   getEnv("AGRIAI_PLAYER", "mpg123"),
	}
}

// DefaultConfigDir returns the default config directory following XDG spec
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "agriai")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "agriai")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
