// Package config collects process configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds everything the server needs at startup. The JWT secret and
// database URL have no defaults; startup fails without them.
type Config struct {
	Port        string
	DatabaseURL string
	JWTSecret   string
	NATSPort    int
	Env         string
}

// Load reads configuration from environment variables.
func Load() (Config, error) {
	cfg := Config{
		Port:     os.Getenv("PORT"),
		Env:      os.Getenv("ENV"),
		NATSPort: 4233,
	}
	if cfg.Port == "" {
		cfg.Port = "5000"
	}

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("DATABASE_URL environment variable is not set")
	}

	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET environment variable is not set")
	}

	if v := os.Getenv("NATS_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid NATS_PORT %q: %w", v, err)
		}
		cfg.NATSPort = port
	}

	return cfg, nil
}

// Production reports whether the server runs in production mode.
func (c Config) Production() bool {
	return c.Env == "production"
}
