package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/ilkol21/company-crm/internal/domain"
)

// TokenConfig holds the signing secrets and lifetimes for both token
// classes. It is constructed once at startup and passed explicitly to the
// token issuer; request-handling code never reads the environment.
type TokenConfig struct {
	AccessSecret    string
	RefreshSecret   string
	AccessLifetime  time.Duration
	RefreshLifetime time.Duration
}

// Config holds all application configuration
type Config struct {
	// Database
	DatabaseURL string

	// HTTP
	HTTPHost string
	HTTPPort string

	// Tokens
	Token TokenConfig

	// Security
	BcryptCost int

	// Environment
	Environment string
	LogLevel    string

	// Event dispatcher pool
	EventWorkerPoolSize int
	EventQueueSize      int
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL:         getEnv("DATABASE_URL", ""),
		HTTPHost:            getEnv("HTTP_HOST", "0.0.0.0"),
		HTTPPort:            getEnv("HTTP_PORT", "3000"),
		BcryptCost:          getEnvInt("BCRYPT_COST", 10),
		Environment:         getEnv("ENVIRONMENT", "development"),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		EventWorkerPoolSize: getEnvInt("EVENT_WORKER_POOL_SIZE", 4),
		EventQueueSize:      getEnvInt("EVENT_QUEUE_SIZE", 256),
	}

	cfg.Token.AccessSecret = getEnv("JWT_SECRET", "")
	cfg.Token.RefreshSecret = getEnv("REFRESH_TOKEN_SECRET", "")

	// Token lifetimes are a startup-time contract: a non-numeric value is a
	// fatal configuration error, never a per-request one.
	accessSeconds, err := getEnvSeconds("JWT_ACCESS_TOKEN_EXPIRATION_TIME")
	if err != nil {
		return nil, err
	}
	cfg.Token.AccessLifetime = accessSeconds

	refreshSeconds, err := getEnvSeconds("JWT_REFRESH_TOKEN_EXPIRATION_TIME")
	if err != nil {
		return nil, err
	}
	cfg.Token.RefreshLifetime = refreshSeconds

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return &domain.ConfigurationError{Message: "DATABASE_URL is required"}
	}
	if c.Token.AccessSecret == "" {
		return &domain.ConfigurationError{Message: "JWT_SECRET is required"}
	}
	if c.Token.RefreshSecret == "" {
		return &domain.ConfigurationError{Message: "REFRESH_TOKEN_SECRET is required"}
	}
	if c.Token.AccessSecret == c.Token.RefreshSecret {
		return &domain.ConfigurationError{Message: "JWT_SECRET and REFRESH_TOKEN_SECRET must differ"}
	}
	if c.Token.AccessLifetime <= 0 {
		return &domain.ConfigurationError{Message: "JWT_ACCESS_TOKEN_EXPIRATION_TIME must be positive"}
	}
	if c.Token.RefreshLifetime <= 0 {
		return &domain.ConfigurationError{Message: "JWT_REFRESH_TOKEN_EXPIRATION_TIME must be positive"}
	}
	if c.BcryptCost < 4 || c.BcryptCost > 31 {
		return &domain.ConfigurationError{Message: "BCRYPT_COST must be between 4 and 31"}
	}
	return nil
}

// getEnv retrieves an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvInt retrieves an integer environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	value := getEnv(key, "")
	if value == "" {
		return defaultValue
	}
	intVal, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return intVal
}

// getEnvSeconds retrieves a required duration variable expressed in whole
// seconds. Unlike getEnvInt it does not fall back on parse failure.
func getEnvSeconds(key string) (time.Duration, error) {
	value := getEnv(key, "")
	if value == "" {
		return 0, &domain.ConfigurationError{Message: fmt.Sprintf("%s is required", key)}
	}
	seconds, err := strconv.Atoi(value)
	if err != nil {
		return 0, &domain.ConfigurationError{
			Message: fmt.Sprintf("invalid %s: %q must be a number of seconds", key, value),
		}
	}
	return time.Duration(seconds) * time.Second, nil
}
