package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port int
	// SourcePath is the workbook every extraction and recompute reads.
	SourcePath string
	// SchemaPath points at a YAML layout; empty uses the built-in schema.
	SchemaPath string
	LogLevel   string
	// Sessions
	SessionTTL    time.Duration
	SweepInterval time.Duration
	// Recompute
	StrictNumbers bool
	// Export
	ExportPrefix string
	ResultPrefix string
}

func Load() (*Config, error) {
	cfg := &Config{
		Port:          envInt("PORT", 8080),
		SourcePath:    envStr("SOURCE_PATH", "data/CON-A DB1.xlsx"),
		SchemaPath:    envStr("SCHEMA_PATH", ""),
		LogLevel:      envStr("LOG_LEVEL", "info"),
		SessionTTL:    envDuration("SESSION_TTL", 24*time.Hour),
		SweepInterval: envDuration("SESSION_SWEEP_INTERVAL", 10*time.Minute),
		StrictNumbers: envBool("STRICT_NUMBERS", false),
		ExportPrefix:  envStr("EXPORT_PREFIX", "CON-A_결과"),
		ResultPrefix:  envStr("RESULT_PREFIX", "CON-A"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Port)
	}
	if c.SourcePath == "" {
		return fmt.Errorf("SOURCE_PATH must not be empty")
	}
	if c.SessionTTL < 0 {
		return fmt.Errorf("SESSION_TTL must not be negative, got %s", c.SessionTTL)
	}
	if c.SessionTTL > 0 && c.SweepInterval <= 0 {
		return fmt.Errorf("SESSION_SWEEP_INTERVAL must be positive when SESSION_TTL is set")
	}
	if strings.TrimSpace(c.ExportPrefix) == "" {
		return fmt.Errorf("EXPORT_PREFIX must not be empty")
	}
	return nil
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
