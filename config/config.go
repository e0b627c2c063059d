// Package config has the configuration file for the app
package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
)

// Environment names accepted in ENV
const (
	EnvDevelopment = "dev"
	EnvStaging     = "staging"
	EnvProduction  = "prod"
)

// Config holds all application configuration
type Config struct {
	Port              string
	Address           string
	Env               string
	LogLevel          string
	LogRetentionWeeks int   // Number of weeks to keep log files
	MaxLogFileSize    int64 // Maximum log file size in bytes
	MaxRequestBody    int64 // Maximum request body size in bytes
	MaxHeaderSize     int64 // Maximum header size in bytes
	DataFile          string
	BackupDir         string
	PruneMaxAgeDays   int  // Logs older than this are prunable
	AutoPrune         bool // Run the prune job nightly instead of only on demand
}

// Load loads and validates configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Port:              getEnvWithDefault("PORT", "8000"),
		Address:           getEnvWithDefault("ADDRESS", "127.0.0.1"),
		Env:               getEnvWithDefault("ENV", EnvDevelopment),
		LogLevel:          getEnvWithDefault("LOG_LEVEL", "info"),
		LogRetentionWeeks: getIntEnvWithDefault("LOG_RETENTION_WEEKS", 4),
		MaxLogFileSize:    getInt64EnvWithDefault("MAX_LOG_FILE_SIZE", 104857600), // 100MB default
		MaxRequestBody:    getInt64EnvWithDefault("MAX_REQUEST_BODY", 1048576),    // 1MB default
		MaxHeaderSize:     getInt64EnvWithDefault("MAX_HEADER_SIZE", 1048576),     // 1MB default
		DataFile:          getEnvWithDefault("DATA_FILE", "data/meditrack.json"),
		BackupDir:         getEnvWithDefault("BACKUP_DIR", "data/backups"),
		PruneMaxAgeDays:   getIntEnvWithDefault("PRUNE_MAX_AGE_DAYS", 365),
		AutoPrune:         getBoolEnvWithDefault("AUTO_PRUNE", false),
	}

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// validateConfig validates all configuration values
func validateConfig(cfg *Config) error {
	if err := validatePort(cfg.Port); err != nil {
		return fmt.Errorf("invalid PORT: %w", err)
	}
	if err := validateAddress(cfg.Address); err != nil {
		return fmt.Errorf("invalid ADDRESS: %w", err)
	}
	if err := validateEnv(cfg.Env); err != nil {
		return fmt.Errorf("invalid ENV: %w", err)
	}
	if err := validateLogLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	if cfg.LogRetentionWeeks < 1 || cfg.LogRetentionWeeks > 52 {
		return fmt.Errorf("invalid LOG_RETENTION_WEEKS: must be between 1 and 52, got %d", cfg.LogRetentionWeeks)
	}
	if err := validateSizeLimit(cfg.MaxLogFileSize, "MAX_LOG_FILE_SIZE"); err != nil {
		return err
	}
	if err := validateSizeLimit(cfg.MaxRequestBody, "MAX_REQUEST_BODY"); err != nil {
		return err
	}
	if err := validateSizeLimit(cfg.MaxHeaderSize, "MAX_HEADER_SIZE"); err != nil {
		return err
	}
	if strings.TrimSpace(cfg.DataFile) == "" {
		return fmt.Errorf("invalid DATA_FILE: must not be empty")
	}
	if strings.TrimSpace(cfg.BackupDir) == "" {
		return fmt.Errorf("invalid BACKUP_DIR: must not be empty")
	}
	if cfg.PruneMaxAgeDays < 30 {
		return fmt.Errorf("invalid PRUNE_MAX_AGE_DAYS: must be at least 30, got %d", cfg.PruneMaxAgeDays)
	}
	return nil
}

// validatePort checks that the port is numeric and in range
func validatePort(port string) error {
	p, err := strconv.Atoi(port)
	if err != nil {
		return fmt.Errorf("must be numeric, got %q", port)
	}
	if p < 1 || p > 65535 {
		return fmt.Errorf("must be between 1 and 65535, got %d", p)
	}
	return nil
}

// validateAddress checks the listen address is an IP or localhost
func validateAddress(address string) error {
	if address == "localhost" {
		return nil
	}
	if net.ParseIP(address) == nil {
		return fmt.Errorf("must be a valid IP address or localhost, got %q", address)
	}
	return nil
}

// validateEnv checks the environment name
func validateEnv(env string) error {
	switch env {
	case EnvDevelopment, EnvStaging, EnvProduction:
		return nil
	}
	return fmt.Errorf("must be one of %s, %s, %s, got %q", EnvDevelopment, EnvStaging, EnvProduction, env)
}

// validateLogLevel checks the log level name
func validateLogLevel(level string) error {
	switch strings.ToLower(level) {
	case "debug", "info", "warn", "error":
		return nil
	}
	return fmt.Errorf("must be one of debug, info, warn, error, got %q", level)
}

// validateSizeLimit checks a byte-size limit is positive and sane
func validateSizeLimit(size int64, name string) error {
	if size < 1024 {
		return fmt.Errorf("invalid %s: must be at least 1024 bytes, got %d", name, size)
	}
	if size > 1<<31 {
		return fmt.Errorf("invalid %s: must be at most 2GB, got %d", name, size)
	}
	return nil
}

// getEnvWithDefault returns the env value or a default if unset
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getIntEnvWithDefault returns the env value as int or a default
func getIntEnvWithDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

// getInt64EnvWithDefault returns the env value as int64 or a default
func getInt64EnvWithDefault(key string, defaultValue int64) int64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return defaultValue
	}
	return parsed
}

// getBoolEnvWithDefault returns the env value as bool or a default
func getBoolEnvWithDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}
