package config

import (
	"fmt"
	"os"
	"strconv"

	// Load environment variables from .env files when present.
	_ "github.com/joho/godotenv/autoload"
)

// Config holds all application configuration
type Config struct {
	Extract  ExtractConfig
	Database DatabaseConfig
	Export   ExportConfig
}

// ExtractConfig controls the parsing pipeline.
type ExtractConfig struct {
	// PeriodOverride, when set to a valid MM/YYYY string, forces the
	// detected payroll period for every parsed document.
	PeriodOverride string
	// DefaultPeriod is used when no strategy detects a period.
	DefaultPeriod string
	// MaxHeaderLines bounds the period search to the top of the document.
	MaxHeaderLines int
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
}

type ExportConfig struct {
	Dir string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Extract: ExtractConfig{
			PeriodOverride: getEnv("PAYROLL_MONTH_YEAR", ""),
			DefaultPeriod:  getEnv("PAYROLL_DEFAULT_PERIOD", "01/2024"),
			MaxHeaderLines: getEnvAsInt("PAYROLL_MAX_HEADER_LINES", 120),
		},
		Database: DatabaseConfig{
			Host:     getEnv("POSTGRES_HOST", "localhost"),
			Port:     getEnvAsInt("POSTGRES_PORT", 5432),
			User:     getEnv("POSTGRES_USER", "postgres"),
			Password: getEnv("POSTGRES_PASSWORD", "postgres"),
			Database: getEnv("POSTGRES_DB", "payroll-dev"),
			SSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
		},
		Export: ExportConfig{
			Dir: getEnv("EXPORT_DIR", "."),
		},
	}

	return cfg, nil
}

// DSN returns the database connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}
