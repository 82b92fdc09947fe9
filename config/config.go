// Package config provides configuration for the compliance service.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds the service configuration.
type Config struct {
	// Server settings
	HTTPPort int

	// Database
	DatabaseURL string

	// watsonx Orchestrate connection
	APIKey     string
	TokenURL   string
	ServiceURL string
	InstanceID string
	AgentID    string

	// Protocol timing
	PollInterval   time.Duration
	PollTimeout    time.Duration
	RequestTimeout time.Duration

	// Logging
	LogLevel string
}

// Load loads configuration from environment variables.
func Load() *Config {
	cfg := &Config{
		HTTPPort:       getEnvInt("HTTP_PORT", 8080),
		DatabaseURL:    getEnv("DATABASE_URL", "file:complianceguard.db?cache=shared&mode=rwc"),
		APIKey:         getEnv("IBM_API_KEY", ""),
		TokenURL:       getEnv("IBM_TOKEN_URL", "https://iam.cloud.ibm.com/identity/token"),
		ServiceURL:     getEnv("WATSONX_SERVICE_URL", "https://api.dl.watson-orchestrate.ibm.com"),
		InstanceID:     getEnv("WATSONX_INSTANCE_ID", ""),
		AgentID:        getEnv("WATSONX_AGENT_ID", ""),
		PollInterval:   time.Duration(getEnvInt("POLL_INTERVAL_MS", 1500)) * time.Millisecond,
		PollTimeout:    time.Duration(getEnvInt("POLL_TIMEOUT_MS", 120000)) * time.Millisecond,
		RequestTimeout: time.Duration(getEnvInt("REQUEST_TIMEOUT_MS", 30000)) * time.Millisecond,
		LogLevel:       getEnv("LOG_LEVEL", "info"),
	}
	return cfg
}

// OrchestrateBaseURL returns the instance-scoped orchestrate API root.
func (c *Config) OrchestrateBaseURL() string {
	return fmt.Sprintf("%s/instances/%s/v1/orchestrate", strings.TrimSuffix(c.ServiceURL, "/"), c.InstanceID)
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
	}
	return defaultVal
}
