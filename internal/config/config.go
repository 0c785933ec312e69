package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	libconfig "voltgrid/libs/config"
)

// Config defines ingestion service configuration.
type Config struct {
	HTTP struct {
		Port string `yaml:"port" env:"VOLTGRID_HTTP_PORT"`
	} `yaml:"http"`
	Database struct {
		DSN string `yaml:"dsn" env:"VOLTGRID_POSTGRES_DSN"`
	} `yaml:"database"`
	Redis struct {
		Addr     string `yaml:"addr" env:"VOLTGRID_REDIS_ADDR"`
		Password string `yaml:"password" env:"VOLTGRID_REDIS_PASSWORD"`
		DB       int    `yaml:"db" env:"VOLTGRID_REDIS_DB"`
		TTL      int    `yaml:"ttlSeconds" env:"VOLTGRID_REDIS_TTL"`
	} `yaml:"redis"`
	Auth struct {
		Enabled bool   `yaml:"enabled" env:"VOLTGRID_AUTH_ENABLED"`
		Secret  string `yaml:"secret" env:"VOLTGRID_AUTH_SECRET"`
	} `yaml:"auth"`
	WebSocket struct {
		WriteTimeoutSeconds int `yaml:"writeTimeoutSeconds" env:"VOLTGRID_WS_WRITE_TIMEOUT"`
	} `yaml:"websocket"`
}

// Load uses the shared config loader and validates required fields. An empty
// redis addr disables the status cache rather than failing.
func Load() (*Config, error) {
	cfg := &Config{
		HTTP: struct {
			Port string `yaml:"port" env:"VOLTGRID_HTTP_PORT"`
		}{
			Port: "8080",
		},
		Redis: struct {
			Addr     string `yaml:"addr" env:"VOLTGRID_REDIS_ADDR"`
			Password string `yaml:"password" env:"VOLTGRID_REDIS_PASSWORD"`
			DB       int    `yaml:"db" env:"VOLTGRID_REDIS_DB"`
			TTL      int    `yaml:"ttlSeconds" env:"VOLTGRID_REDIS_TTL"`
		}{
			TTL: 300,
		},
		WebSocket: struct {
			WriteTimeoutSeconds int `yaml:"writeTimeoutSeconds" env:"VOLTGRID_WS_WRITE_TIMEOUT"`
		}{
			WriteTimeoutSeconds: 15,
		},
	}

	if err := libconfig.Load(cfg); err != nil {
		return nil, err
	}

	if strings.TrimSpace(cfg.Database.DSN) == "" {
		return nil, errors.New("config: database DSN is required")
	}
	if cfg.Auth.Enabled && strings.TrimSpace(cfg.Auth.Secret) == "" {
		return nil, errors.New("config: auth secret is required when auth is enabled")
	}

	return cfg, nil
}

// HTTPAddress returns :port style address.
func (c *Config) HTTPAddress() string {
	port := strings.TrimSpace(c.HTTP.Port)
	if port == "" {
		port = "8080"
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return fmt.Sprintf(":%s", port)
}

// CacheEnabled reports whether a status cache should be wired.
func (c *Config) CacheEnabled() bool {
	return strings.TrimSpace(c.Redis.Addr) != ""
}

// StatusTTL returns cache entry lifetime.
func (c *Config) StatusTTL() time.Duration {
	if c.Redis.TTL <= 0 {
		return 5 * time.Minute
	}
	return time.Duration(c.Redis.TTL) * time.Second
}

// StreamWriteTimeout returns websocket write timeout.
func (c *Config) StreamWriteTimeout() time.Duration {
	if c.WebSocket.WriteTimeoutSeconds <= 0 {
		return 15 * time.Second
	}
	return time.Duration(c.WebSocket.WriteTimeoutSeconds) * time.Second
}
