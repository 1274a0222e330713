package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"qrbill/internal/logger"
)

// Config carries the process-level settings of the qrbill tool.
// The engine packages themselves take everything per call; only the
// outer surface (CLI, logging, render timeout) is configured here.
type Config struct {
	// Slip and invoice language: de, fr, it or en
	DefaultLanguage string

	// Rendering backend timeout; the deployed system uses 30-45s
	RenderTimeout time.Duration

	// Page geometry in millimeters
	PageMarginMM float64

	// Logging Configuration
	LogLevel      string
	LogFormat     string
	LogTimeFormat string
	LogOutput     string
}

func Load() (*Config, error) {
	config := &Config{
		DefaultLanguage: getEnv("QRBILL_LANGUAGE", "fr"),
		RenderTimeout:   getDurationEnv("QRBILL_RENDER_TIMEOUT", 45*time.Second),
		PageMarginMM:    getFloatEnv("QRBILL_PAGE_MARGIN_MM", 15),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogFormat:       getEnv("LOG_FORMAT", "console"),
		LogTimeFormat:   getEnv("LOG_TIME_FORMAT", "2006-01-02T15:04:05Z07:00"),
		LogOutput:       getEnv("LOG_OUTPUT", "stderr"),
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

func (c *Config) validate() error {
	if c.RenderTimeout <= 0 {
		return fmt.Errorf("QRBILL_RENDER_TIMEOUT must be positive")
	}
	if c.PageMarginMM < 0 || c.PageMarginMM > 50 {
		return fmt.Errorf("QRBILL_PAGE_MARGIN_MM must be between 0 and 50")
	}
	return nil
}

// GetLoggerConfig returns a logger configuration from the main config
func (c *Config) GetLoggerConfig() logger.LogConfig {
	return logger.LogConfig{
		Level:      c.LogLevel,
		Format:     c.LogFormat,
		TimeFormat: c.LogTimeFormat,
		Output:     c.LogOutput,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}
