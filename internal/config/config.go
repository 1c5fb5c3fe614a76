// Package config handles application configuration loading and management.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/cast"
)

// Config holds all configuration for the application.
type Config struct {
	Server ServerConfig
	DocDB  DocDBConfig
	Cache  CacheConfig
	Log    LogConfig
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Host    string
	Port    int `validate:"min=1,max=65535"`
	GinMode string
}

// Address returns the server address in host:port format.
func (c ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// DocDBConfig holds document database configuration.
type DocDBConfig struct {
	Type           string `validate:"oneof=mongodb memory"`
	URI            string `validate:"required"`
	Database       string
	Collection     string
	ConnectTimeout time.Duration
}

// CacheConfig holds cache-related configuration.
type CacheConfig struct {
	Type     string `validate:"oneof=none redis"`
	Host     string
	Port     string
	Password string
	DB       int
	TTL      time.Duration
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `validate:"oneof=trace debug info warn error"`
	Format string `validate:"oneof=json console"`
	File   string
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Host:    getEnv("SERVER_HOST", "0.0.0.0"),
			Port:    getEnvAsInt("SERVER_PORT", 8080),
			GinMode: getEnv("GIN_MODE", "debug"),
		},
		DocDB: DocDBConfig{
			Type:           getEnv("DOCDB_TYPE", "mongodb"),
			URI:            getEnv("MONGODB_URI", "mongodb://localhost:27017"),
			Database:       getEnv("MONGODB_DATABASE", "test_database"),
			Collection:     getEnv("MONGODB_COLLECTION", "test_collection"),
			ConnectTimeout: time.Duration(getEnvAsInt("DOCDB_CONNECT_TIMEOUT_SECONDS", 10)) * time.Second,
		},
		Cache: CacheConfig{
			Type:     getEnv("CACHE_TYPE", "none"),
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			TTL:      time.Duration(getEnvAsInt("CACHE_TTL_SECONDS", 60)) * time.Second,
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
			File:   getEnv("LOG_FILE", ""),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks enumerated settings and ranges.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// getEnv gets an environment variable with a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an environment variable as an integer with a default value.
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := cast.ToIntE(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
