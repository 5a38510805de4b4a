// Package config loads application configuration from COACHDESK_*
// environment variables.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/coachdesk/coachdesk/pkg/observability"
)

// Config holds all application configuration.
type Config struct {
	Server        ServerConfig
	Auth          AuthConfig
	Observability ObservabilityConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host            string
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	// Health/metrics server (separate port for probes)
	HealthPort string

	CORSOrigins []string
}

// AuthConfig holds session store configuration. An empty RedisURL selects
// the in-memory session store.
type AuthConfig struct {
	RedisURL string
}

// ObservabilityConfig holds logging and metrics settings.
type ObservabilityConfig struct {
	LogLevel             observability.LogLevel
	MetricsEnabled       bool
	StatsRefreshSchedule string
}

// LoadConfig loads configuration from environment variables.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host:            getEnv("COACHDESK_HOST", "0.0.0.0"),
			Port:            getEnv("COACHDESK_PORT", "8080"),
			ReadTimeout:     getEnvDuration("COACHDESK_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:    getEnvDuration("COACHDESK_WRITE_TIMEOUT", 15*time.Second),
			IdleTimeout:     getEnvDuration("COACHDESK_IDLE_TIMEOUT", 60*time.Second),
			ShutdownTimeout: getEnvDuration("COACHDESK_SHUTDOWN_TIMEOUT", 30*time.Second),
			HealthPort:      getEnv("COACHDESK_HEALTH_PORT", "9090"),
			CORSOrigins:     strings.Split(getEnv("COACHDESK_CORS_ORIGINS", "*"), ","),
		},
		Auth: AuthConfig{
			RedisURL: getEnv("COACHDESK_REDIS_URL", ""),
		},
		Observability: ObservabilityConfig{
			LogLevel:             observability.ParseLogLevel(getEnv("COACHDESK_LOG_LEVEL", "info")),
			MetricsEnabled:       getEnvBool("COACHDESK_METRICS_ENABLED", true),
			StatsRefreshSchedule: getEnv("COACHDESK_STATS_REFRESH", "@every 1m"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}
	if c.Server.HealthPort == "" {
		return fmt.Errorf("health port is required")
	}
	if c.Server.Port == c.Server.HealthPort {
		return fmt.Errorf("server port and health port must be different")
	}
	if c.Observability.StatsRefreshSchedule == "" {
		return fmt.Errorf("stats refresh schedule is required")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return strings.ToLower(value) == "true" || value == "1"
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
