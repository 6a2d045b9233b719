package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	Database DatabaseConfig
	App      AppConfig
	Payroll  PayrollConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// AppConfig holds application configuration
type AppConfig struct {
	Env      string
	LogLevel string
}

// PayrollConfig holds the payroll engine configuration
type PayrollConfig struct {
	// Default per-delivery rate paid to turnboys when a delivery does not set one.
	DefaultTurnboyRate decimal.Decimal
	// When true and nobody is marked as having helped loading, the loading pool
	// is split across the delivery's turnboys instead of going unpaid.
	FallbackTurnboyPool bool
	// Interval between monthly materialization runs of the background worker.
	MaterializeInterval time.Duration
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, reading configuration from environment")
	}

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "mwendo-payroll"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	config.App = AppConfig{
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	// Payroll configuration
	defaultRate, err := decimal.NewFromString(getEnv("PAYROLL_DEFAULT_TURNBOY_RATE", "200.00"))
	if err != nil {
		return nil, fmt.Errorf("invalid PAYROLL_DEFAULT_TURNBOY_RATE: %w", err)
	}

	materializeInterval, err := time.ParseDuration(getEnv("PAYROLL_MATERIALIZE_INTERVAL", "1h"))
	if err != nil {
		return nil, fmt.Errorf("invalid PAYROLL_MATERIALIZE_INTERVAL: %w", err)
	}

	config.Payroll = PayrollConfig{
		DefaultTurnboyRate:  defaultRate,
		FallbackTurnboyPool: getEnvBool("PAYROLL_FALLBACK_TURNBOY_POOL", false),
		MaterializeInterval: materializeInterval,
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.Payroll.DefaultTurnboyRate.IsNegative() {
		return fmt.Errorf("PAYROLL_DEFAULT_TURNBOY_RATE must be non-negative")
	}
	if c.Payroll.MaterializeInterval <= 0 {
		return fmt.Errorf("PAYROLL_MATERIALIZE_INTERVAL must be positive")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}
