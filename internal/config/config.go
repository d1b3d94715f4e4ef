package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database  DatabaseConfig
	App       AppConfig
	Recompute RecomputeConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int
	MinConns int
}

// AppConfig holds application configuration
type AppConfig struct {
	Name           string
	Port           int
	Env            string
	LogLevel       string
	AllowedOrigins []string
}

// RecomputeConfig tunes the monthly recompute pipeline.
type RecomputeConfig struct {
	// PageSize bounds each transaction fetch; the snapshot is always
	// materialized in full before computation.
	PageSize int
	// AllowWithdrawalReuse re-enables the historical scan where one
	// withdrawal could close multiple deposits.
	AllowWithdrawalReuse bool
	// AutoInterval is how often the background job recomputes the current
	// month. Zero disables the job.
	AutoInterval time.Duration
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, using process environment")
	}

	config := &Config{}

	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}
	maxConns, err := strconv.Atoi(getEnv("DB_MAX_CONNS", "25"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_CONNS: %w", err)
	}
	minConns, err := strconv.Atoi(getEnv("DB_MIN_CONNS", "5"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MIN_CONNS: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "cardledger_payroll"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		MaxConns: maxConns,
		MinConns: minConns,
	}

	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Name:           getEnv("APP_NAME", "payroll-backend"),
		Port:           appPort,
		Env:            getEnv("APP_ENV", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		AllowedOrigins: getEnvSlice("ALLOWED_ORIGINS", "http://localhost:3000"),
	}

	pageSize, err := strconv.Atoi(getEnv("RECOMPUTE_PAGE_SIZE", "1000"))
	if err != nil {
		return nil, fmt.Errorf("invalid RECOMPUTE_PAGE_SIZE: %w", err)
	}
	autoInterval, err := time.ParseDuration(getEnv("RECOMPUTE_AUTO_INTERVAL", "6h"))
	if err != nil {
		return nil, fmt.Errorf("invalid RECOMPUTE_AUTO_INTERVAL: %w", err)
	}

	config.Recompute = RecomputeConfig{
		PageSize:             pageSize,
		AllowWithdrawalReuse: getEnv("RECOMPUTE_ALLOW_WITHDRAWAL_REUSE", "false") == "true",
		AutoInterval:         autoInterval,
	}

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
	if c.Recompute.PageSize <= 0 {
		return fmt.Errorf("RECOMPUTE_PAGE_SIZE must be positive")
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

func getEnvSlice(env, fallback string) []string {
	return strings.Split(getEnv(env, fallback), ",")
}
