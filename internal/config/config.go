package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port        int
	Environment string
	ServiceName string
	Version     string
	LogLevel    string
	LogFormat   string
	LogDir      string

	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string

	DBMaxConns       int
	DBMaxConnIdle    time.Duration
	DBMaxConnLife    time.Duration

	JWTSecret string
	JWTExpiry time.Duration

	NASABaseURL    string
	NASATimeout    time.Duration
	OllamaBaseURL  string
	OllamaModel    string
	OllamaTimeout  time.Duration
	OllamaEnabled  bool
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		Environment: getEnv("ENVIRONMENT", "dev"),
		ServiceName: getEnv("SERVICE_NAME", "fasal-seva"),
		Version:     getEnv("VERSION", "dev"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "text"),
		LogDir:      getEnv("LOG_DIR", "logs"),

		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBName:     getEnv("DB_NAME", "fasalseva"),

		JWTSecret: getEnv("JWT_SECRET", ""),

		NASABaseURL:   getEnv("NASA_POWER_BASE_URL", DefaultNASABaseURL),
		OllamaBaseURL: getEnv("OLLAMA_BASE_URL", DefaultOllamaBaseURL),
		OllamaModel:   getEnv("OLLAMA_MODEL", DefaultOllamaModel),
	}

	portStr := getEnv("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}
	cfg.Port = port

	maxConns, err := getEnvInt("DB_MAX_CONNS", DefaultDBMaxConns)
	if err != nil {
		return nil, err
	}
	cfg.DBMaxConns = maxConns
	cfg.DBMaxConnIdle = DefaultDBMaxConnIdle
	cfg.DBMaxConnLife = DefaultDBMaxConnLife

	expiryHours, err := getEnvInt("JWT_EXPIRY_HOURS", DefaultJWTExpiryHours)
	if err != nil {
		return nil, err
	}
	cfg.JWTExpiry = time.Duration(expiryHours) * time.Hour

	nasaTimeout, err := getEnvInt("NASA_TIMEOUT_SECONDS", DefaultNASATimeoutSeconds)
	if err != nil {
		return nil, err
	}
	cfg.NASATimeout = time.Duration(nasaTimeout) * time.Second

	ollamaTimeout, err := getEnvInt("OLLAMA_TIMEOUT_SECONDS", DefaultOllamaTimeoutSeconds)
	if err != nil {
		return nil, err
	}
	cfg.OllamaTimeout = time.Duration(ollamaTimeout) * time.Second
	cfg.OllamaEnabled = getEnv("OLLAMA_ENABLED", "true") == "true"

	// Validate JWT secret is set
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable must be set for security")
	}

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvInt retrieves an integer environment variable or returns a default value
func getEnvInt(key string, defaultValue int) (int, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return n, nil
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}
