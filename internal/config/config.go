package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap/zapcore"
)

// Storage backends
const (
	BackendFile       = "file"
	BackendClickHouse = "clickhouse"
	BackendMemory     = "memory"
)

// Config holds the application configuration
type Config struct {
	// Storage selection
	Backend     string // file, clickhouse or memory
	CatalogFile string // path of the JSON catalog for the file backend

	// ClickHouse configuration
	ClickHouseHost     string
	ClickHousePort     int
	ClickHouseDatabase string
	ClickHouseUser     string
	ClickHousePassword string
	ClickHouseUseTLS   bool

	// Logging
	LogLevel zapcore.Level
	LogFile  string // empty means stderr
}

// LoadFromEnv loads configuration from environment variables.
// Every variable is optional for the default file backend.
func LoadFromEnv() (*Config, error) {
	config := &Config{}

	config.CatalogFile = os.Getenv("CATALOG_FILE")
	if config.CatalogFile == "" {
		config.CatalogFile = "library.json"
	}

	config.Backend = strings.ToLower(strings.TrimSpace(os.Getenv("STORAGE_BACKEND")))
	if config.Backend == "" {
		config.Backend = BackendFile
	}

	// Use Mock DB (default: false)
	if os.Getenv("USE_MOCK_DB") == "true" {
		config.Backend = BackendMemory
	}

	switch config.Backend {
	case BackendFile, BackendMemory:
	case BackendClickHouse:
		if err := loadClickHouse(config); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("invalid STORAGE_BACKEND %q (expected %s, %s or %s)",
			config.Backend, BackendFile, BackendClickHouse, BackendMemory)
	}

	levelStr := os.Getenv("LOG_LEVEL")
	if levelStr == "" {
		config.LogLevel = zapcore.WarnLevel
	} else {
		level, err := zapcore.ParseLevel(levelStr)
		if err != nil {
			return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
		}
		config.LogLevel = level
	}

	config.LogFile = os.Getenv("LOG_FILE")

	return config, nil
}

// LoadClickHouseFromEnv reads only the ClickHouse settings, for tools that
// talk to ClickHouse regardless of the selected backend
func LoadClickHouseFromEnv() (*Config, error) {
	config := &Config{Backend: BackendClickHouse}
	if err := loadClickHouse(config); err != nil {
		return nil, err
	}
	return config, nil
}

func loadClickHouse(config *Config) error {
	config.ClickHouseHost = os.Getenv("CLICKHOUSE_HOST")
	if config.ClickHouseHost == "" {
		return fmt.Errorf("CLICKHOUSE_HOST is required when STORAGE_BACKEND is %s", BackendClickHouse)
	}

	portStr := os.Getenv("CLICKHOUSE_PORT")
	if portStr == "" {
		config.ClickHousePort = 9000 // Default ClickHouse native port
	} else {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return fmt.Errorf("invalid CLICKHOUSE_PORT: %w", err)
		}
		config.ClickHousePort = port
	}

	config.ClickHouseDatabase = os.Getenv("CLICKHOUSE_DATABASE")
	if config.ClickHouseDatabase == "" {
		config.ClickHouseDatabase = "default"
	}

	config.ClickHouseUser = os.Getenv("CLICKHOUSE_USER")
	if config.ClickHouseUser == "" {
		config.ClickHouseUser = "default"
	}

	config.ClickHousePassword = os.Getenv("CLICKHOUSE_PASSWORD")
	// Password is optional, can be empty

	config.ClickHouseUseTLS = os.Getenv("CLICKHOUSE_USE_TLS") == "true"
	return nil
}
