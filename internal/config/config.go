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
	ChartPath       string // Path to the chart-of-accounts spreadsheet (optional)
	LogLevel        string
	Port            int
	DevMode         bool
	DomesticTaxRate float64 // Corporate income tax rate for the domestic taxpayer
	ZoneTaxRate     float64 // Corporate income tax rate for the free-trade-zone entity
	EvalWorkers     int     // Parallel plan evaluations (0 = runtime.NumCPU)
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	chartPath := getEnv("FTZ_CHART_PATH", "")
	if chartPath != "" {
		abs, err := filepath.Abs(chartPath)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve chart path: %w", err)
		}
		chartPath = abs
	}

	cfg := &Config{
		ChartPath:       chartPath,
		Port:            getEnvAsInt("FTZ_PORT", 8010),
		DevMode:         getEnvAsBool("DEV_MODE", false),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		DomesticTaxRate: getEnvAsFloat("FTZ_DOMESTIC_TAX_RATE", 0.35),
		ZoneTaxRate:     getEnvAsFloat("FTZ_ZONE_TAX_RATE", 0.20),
		EvalWorkers:     getEnvAsInt("FTZ_EVAL_WORKERS", 0),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if required configuration is present
func (c *Config) Validate() error {
	if c.DomesticTaxRate < 0 || c.DomesticTaxRate >= 1 {
		return fmt.Errorf("domestic tax rate must be in [0,1): got %v", c.DomesticTaxRate)
	}
	if c.ZoneTaxRate < 0 || c.ZoneTaxRate >= 1 {
		return fmt.Errorf("free-zone tax rate must be in [0,1): got %v", c.ZoneTaxRate)
	}
	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}
