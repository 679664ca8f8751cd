// Package config loads server settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/OntriDS/thegame-sub002/internal/currency"
)

// DevJWTSecret is used when JWT_SECRET is unset. Validate rejects it outside development.
const DevJWTSecret = "dev-secret-change-me"

type Config struct {
	// Server Configuration
	Port   int
	DBPath string

	// Auth Configuration
	JWTSecret     string
	TokenDuration time.Duration

	// Settlement Configuration
	DefaultExchangeRate decimal.Decimal

	// Logging Configuration
	LogLevel  string
	LogFormat string

	// Environment is "development" unless APP_ENV says otherwise.
	Environment string
}

// Load reads the configuration from the environment and validates it.
func Load() (*Config, error) {
	port, err := strconv.Atoi(getEnv("PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid PORT: %w", err)
	}

	tokenDuration, err := time.ParseDuration(getEnv("TOKEN_DURATION", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid TOKEN_DURATION: %w", err)
	}

	rate, err := decimal.NewFromString(getEnv("DEFAULT_EXCHANGE_RATE", "1"))
	if err != nil {
		return nil, fmt.Errorf("invalid DEFAULT_EXCHANGE_RATE: %w", err)
	}

	config := &Config{
		Port:                port,
		DBPath:              getEnv("DB_PATH", "./data/settlements.db"),
		JWTSecret:           getEnv("JWT_SECRET", DevJWTSecret),
		TokenDuration:       tokenDuration,
		DefaultExchangeRate: rate,
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		LogFormat:           getEnv("LOG_FORMAT", "console"),
		Environment:         getEnv("APP_ENV", "development"),
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

// Validate checks the loaded values for consistency.
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Port)
	}
	if c.DBPath == "" {
		return fmt.Errorf("DB_PATH is required")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.JWTSecret == DevJWTSecret && c.Environment != "development" {
		return fmt.Errorf("JWT_SECRET must be set when APP_ENV is %s", c.Environment)
	}
	if c.TokenDuration <= 0 {
		return fmt.Errorf("TOKEN_DURATION must be positive, got %s", c.TokenDuration)
	}
	if err := currency.ValidateRate(c.DefaultExchangeRate); err != nil {
		return fmt.Errorf("DEFAULT_EXCHANGE_RATE: %w", err)
	}
	switch c.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("LOG_FORMAT must be console or json, got %q", c.LogFormat)
	}
	return nil
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
