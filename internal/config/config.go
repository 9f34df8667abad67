package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Network sources
const (
	SourceEmbedded = "embedded"
	SourceFile     = "file"
	SourcePostgres = "postgres"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	Server ServerConfig

	// Database configuration, only used by the postgres network source
	Database DatabaseConfig

	// Network data and query configuration
	Network NetworkConfig

	// Graph cache configuration
	Cache CacheConfig

	// CORS configuration
	CORS CORSConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port        string
	Environment string // development, staging, production
	LogLevel    string // debug, info, warn, error
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	URL                string
	MaxConnections     int
	MaxIdleConnections int
	ConnMaxLifetime    time.Duration
}

// NetworkConfig selects where the network tables come from and how queries read closures
type NetworkConfig struct {
	Source             string // embedded, file, postgres
	File               string // YAML path for the file source
	ClosureDelimiter   string
	MaxDisplayStations int // full path is omitted above this many nodes
}

// CacheConfig holds graph cache configuration
type CacheConfig struct {
	Size int
	TTL  time.Duration
}

// CORSConfig holds CORS-related configuration
type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (for local development)
	if err := godotenv.Load(); err != nil {
		logrus.Debug("No .env file found, using environment variables")
	}

	config := FromEnv()

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// FromEnv builds a Config from the current environment without reading .env or validating
func FromEnv() *Config {
	return &Config{
		Server: ServerConfig{
			Port:        getEnv("PORT", "8080"),
			Environment: getEnv("ENVIRONMENT", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
		},
		Database: DatabaseConfig{
			URL:                getEnv("DATABASE_URL", ""),
			MaxConnections:     getEnvAsInt("DATABASE_MAX_CONNECTIONS", 10),
			MaxIdleConnections: getEnvAsInt("DATABASE_MAX_IDLE_CONNECTIONS", 5),
			ConnMaxLifetime:    time.Duration(getEnvAsInt("DATABASE_CONN_MAX_LIFETIME", 300)) * time.Second,
		},
		Network: NetworkConfig{
			Source:             strings.ToLower(getEnv("NETWORK_SOURCE", SourceEmbedded)),
			File:               getEnv("NETWORK_FILE", ""),
			ClosureDelimiter:   getEnv("CLOSURE_DELIMITER", ","),
			MaxDisplayStations: getEnvAsInt("MAX_DISPLAY_STATIONS", 600),
		},
		Cache: CacheConfig{
			Size: getEnvAsInt("GRAPH_CACHE_SIZE", 64),
			TTL:  time.Duration(getEnvAsInt("GRAPH_CACHE_TTL_SECONDS", 3600)) * time.Second,
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvAsSlice("CORS_ALLOWED_ORIGINS", []string{"*"}),
			AllowedMethods: getEnvAsSlice("CORS_ALLOWED_METHODS", []string{"GET", "POST", "OPTIONS"}),
			AllowedHeaders: getEnvAsSlice("CORS_ALLOWED_HEADERS", []string{"Content-Type", "X-Request-ID"}),
		},
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if _, err := logrus.ParseLevel(c.Server.LogLevel); err != nil {
		return fmt.Errorf("invalid LOG_LEVEL: %s", c.Server.LogLevel)
	}

	switch c.Network.Source {
	case SourceEmbedded:
	case SourceFile:
		if c.Network.File == "" {
			return fmt.Errorf("NETWORK_FILE is required when NETWORK_SOURCE is %s", SourceFile)
		}
	case SourcePostgres:
		if c.Database.URL == "" {
			return fmt.Errorf("DATABASE_URL is required when NETWORK_SOURCE is %s", SourcePostgres)
		}
	default:
		return fmt.Errorf("invalid NETWORK_SOURCE: %s (must be '%s', '%s' or '%s')",
			c.Network.Source, SourceEmbedded, SourceFile, SourcePostgres)
	}

	if c.Network.ClosureDelimiter == "" {
		return fmt.Errorf("CLOSURE_DELIMITER must not be empty")
	}

	if c.Network.MaxDisplayStations < 0 {
		return fmt.Errorf("MAX_DISPLAY_STATIONS must not be negative")
	}

	if c.Cache.Size <= 0 {
		return fmt.Errorf("GRAPH_CACHE_SIZE must be positive")
	}

	return nil
}

// IsProduction reports whether the server runs in production mode
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// Helper functions to get environment variables

func getEnv(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		logrus.Warnf("Invalid integer value for %s, using default: %d", key, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	var result []string
	for _, v := range strings.Split(valueStr, ",") {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	if len(result) == 0 {
		return defaultValue
	}
	return result
}
