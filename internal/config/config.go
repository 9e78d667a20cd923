package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/greenfleet/esb-district-metrics/internal/dataset"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	DatasetPath  string
	DatasetSheet string

	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// ResultCacheSize bounds the per-selection result cache; 0 disables it.
	ResultCacheSize int
}

// Load reads configuration from environment variables, applying defaults
// where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := parseDuration("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	cacheSize, err := parseNonNegativeInt("RESULT_CACHE_SIZE", 256)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		DatasetPath:     envOrDefault("DATASET_PATH", "data.xlsx"),
		DatasetSheet:    envOrDefault("DATASET_SHEET", dataset.DefaultSheet),
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,
		ResultCacheSize: cacheSize,
	}

	if cfg.DatasetPath == "" {
		return nil, errors.New("DATASET_PATH is required")
	}
	if cfg.DatasetSheet == "" {
		return nil, errors.New("DATASET_SHEET is required")
	}
	if cfg.HTTPAddr == "" {
		return nil, errors.New("HTTP_ADDR is required")
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseDuration(key, fallback string) (time.Duration, error) {
	s := envOrDefault(key, fallback)
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, s)
	}
	return d, nil
}

func parseNonNegativeInt(key string, fallback int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, s)
	}
	return n, nil
}
