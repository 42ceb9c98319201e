package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig
	Upload   UploadConfig
	Pipeline PipelineConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port string
}

// UploadConfig holds upload handling settings
type UploadConfig struct {
	MaxFileMB int           // per-file size cap
	MaxFiles  int           // per-request file cap
	TTL       time.Duration // how long stored uploads live
}

// PipelineConfig holds conversion pipeline settings
type PipelineConfig struct {
	Workers int // concurrent per-file pipelines in a batch
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port: getEnvOrDefault("PORT", "8080"),
		},
		Upload: UploadConfig{
			MaxFileMB: getEnvIntOrDefault("UPLOAD_MAX_MB", 50),
			MaxFiles:  getEnvIntOrDefault("UPLOAD_MAX_FILES", 16),
			TTL:       getEnvDurationOrDefault("UPLOAD_TTL", 30*time.Minute),
		},
		Pipeline: PipelineConfig{
			Workers: getEnvIntOrDefault("PIPELINE_WORKERS", 4),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return config, nil
}

func validateConfig(config *Config) error {
	if config.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}
	if config.Upload.MaxFileMB < 1 {
		return fmt.Errorf("UPLOAD_MAX_MB must be at least 1, got %d", config.Upload.MaxFileMB)
	}
	if config.Upload.MaxFiles < 1 {
		return fmt.Errorf("UPLOAD_MAX_FILES must be at least 1, got %d", config.Upload.MaxFiles)
	}
	if config.Upload.TTL <= 0 {
		return fmt.Errorf("UPLOAD_TTL must be positive, got %s", config.Upload.TTL)
	}
	if config.Pipeline.Workers < 1 {
		return fmt.Errorf("PIPELINE_WORKERS must be at least 1, got %d", config.Pipeline.Workers)
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
