package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

// ServerPort is the only port the service listens on for API and redirect traffic.
// It is deliberately not read from the environment.
const ServerPort = "9090"

// Config holds all application configuration
type Config struct {
	Server  ServerConfig
	Metrics MetricsConfig
	App     AppConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// MetricsConfig holds the Prometheus listener settings
type MetricsConfig struct {
	Enabled bool
	Port    string
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Environment string
	LogLevel    string
}

// Load reads configuration from environment variables.
// Every value has a default, so an empty environment yields a working config.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:            ServerPort,
			ReadTimeout:     parseDuration("SERVER_READ_TIMEOUT", "10s"),
			WriteTimeout:    parseDuration("SERVER_WRITE_TIMEOUT", "10s"),
			IdleTimeout:     parseDuration("SERVER_IDLE_TIMEOUT", "120s"),
			ShutdownTimeout: parseDuration("SERVER_SHUTDOWN_TIMEOUT", "30s"),
		},
		Metrics: MetricsConfig{
			Enabled: parseBool("ENABLE_METRICS", true),
			Port:    getEnv("METRICS_PORT", "9091"),
		},
		App: AppConfig{
			Environment: getEnv("APP_ENV", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks cross-field constraints
func (c *Config) Validate() error {
	if c.Metrics.Enabled {
		if _, err := strconv.ParseUint(c.Metrics.Port, 10, 16); err != nil {
			return fmt.Errorf("invalid METRICS_PORT %q: %w", c.Metrics.Port, err)
		}
		if c.Metrics.Port == c.Server.Port {
			return errors.New("METRICS_PORT must differ from the server port " + c.Server.Port)
		}
	}
	return nil
}

// Addr returns the listen address of the main server
func (c *ServerConfig) Addr() string {
	return ":" + c.Port
}

// Addr returns the listen address of the metrics server
func (c *MetricsConfig) Addr() string {
	return ":" + c.Port
}

// Helper functions to parse environment variables with defaults

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func parseDuration(key string, defaultValue string) time.Duration {
	value := getEnv(key, defaultValue)
	duration, err := time.ParseDuration(value)
	if err != nil {
		// If parsing fails, parse the default value
		duration, _ = time.ParseDuration(defaultValue)
	}
	return duration
}
