// Package config provides configuration management functionality.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	DataDir         string // Base directory for the spectra cache database
	LogLevel        string
	Port            int
	DevMode         bool
	MaxQubits       int     // Upper bound on per-request materialization size
	Tolerance       float64 // Zero-pruning tolerance for request results
	CacheTTLHours   int     // Spectra cache retention window
	CleanupSchedule string  // Cron expression for the cache retention job
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	dataDir := getEnv("QOP_DATA_DIR", "")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".qop")
	}

	// Always resolve to absolute path and make sure it exists
	absDataDir, err := filepath.Abs(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve data directory: %w", err)
	}
	if err := os.MkdirAll(absDataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	cfg := &Config{
		DataDir:         absDataDir,
		LogLevel:        getEnv("QOP_LOG_LEVEL", "info"),
		Port:            getEnvInt("QOP_PORT", 8090),
		DevMode:         getEnvBool("QOP_DEV_MODE", false),
		MaxQubits:       getEnvInt("QOP_MAX_QUBITS", 12),
		Tolerance:       getEnvFloat("QOP_TOLERANCE", 1e-12),
		CacheTTLHours:   getEnvInt("QOP_CACHE_TTL_HOURS", 72),
		CleanupSchedule: getEnv("QOP_CLEANUP_SCHEDULE", "@hourly"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.MaxQubits < 1 {
		return fmt.Errorf("max qubits must be positive, got %d", c.MaxQubits)
	}
	// Dense materialization above ~16 qubits exhausts memory long before
	// the eigensolver gets a chance to run.
	if c.MaxQubits > 16 {
		return fmt.Errorf("max qubits %d exceeds the dense materialization limit of 16", c.MaxQubits)
	}
	if c.Tolerance <= 0 {
		return fmt.Errorf("tolerance must be positive, got %g", c.Tolerance)
	}
	if c.CacheTTLHours < 1 {
		return fmt.Errorf("cache TTL must be at least one hour, got %d", c.CacheTTLHours)
	}
	return nil
}

// SpectraDBPath returns the path of the spectra cache database.
func (c *Config) SpectraDBPath() string {
	return filepath.Join(c.DataDir, "spectra.db")
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return fallback
}
