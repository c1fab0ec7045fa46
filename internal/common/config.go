package common

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Export  ExportConfig
	Extract ExtractConfig
}

// ExportConfig holds bundle-generation configuration
type ExportConfig struct {
	TemplatePath string
	PageImageDir string
	LayoutPath   string
	OutputPath   string
}

// ExtractConfig holds extraction worker-pool configuration
type ExtractConfig struct {
	Workers        int
	QueueSize      int
	ProcessTimeout time.Duration
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Export: ExportConfig{
			TemplatePath: getEnv("RPA_TEMPLATE_PATH", "assets/template_os.docx"),
			PageImageDir: getEnv("RPA_PAGE_IMAGE_DIR", "assets/os_template"),
			LayoutPath:   getEnv("RPA_LAYOUT_PATH", ""),
			OutputPath:   getEnv("RPA_OUTPUT_PATH", "RPA_ATUALIZADO.zip"),
		},
		Extract: ExtractConfig{
			Workers:        getEnvAsInt("RPA_EXTRACT_WORKERS", 4),
			QueueSize:      getEnvAsInt("RPA_EXTRACT_QUEUE_SIZE", 256),
			ProcessTimeout: getEnvAsDuration("RPA_EXTRACT_TIMEOUT", 2*time.Minute),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	if c.Export.TemplatePath == "" {
		return NewAppError("CONFIG_ERROR", "RPA_TEMPLATE_PATH is required", ErrInvalidInput)
	}
	if c.Export.PageImageDir == "" {
		return NewAppError("CONFIG_ERROR", "RPA_PAGE_IMAGE_DIR is required", ErrInvalidInput)
	}
	if c.Export.OutputPath == "" {
		return NewAppError("CONFIG_ERROR", "RPA_OUTPUT_PATH is required", ErrInvalidInput)
	}
	if c.Extract.Workers <= 0 {
		return NewAppError("CONFIG_ERROR", "RPA_EXTRACT_WORKERS must be positive", ErrInvalidInput)
	}
	return nil
}
