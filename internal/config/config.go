package config

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v6"
)

const defaultJWTSecret = "dev-secret-change-in-production"

var ErrDefaultSecretInProduction = errors.New("JWT_SECRET must be set in production environment")

type Config struct {
	Port           string `env:"PORT" envDefault:"5000"`
	Env            string `env:"ENV" envDefault:"development"`
	DatabaseDriver string `env:"DB_DRIVER" envDefault:"mysql"`
	DatabaseDSN    string `env:"DATABASE_DSN" envDefault:"root:password@tcp(127.0.0.1:3306)/devconnector"`
	JWTSecret      string `env:"JWT_SECRET" envDefault:"dev-secret-change-in-production"`
	LogLevel       string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat      string `env:"LOG_FORMAT" envDefault:"json"`
}

// Load parses the configuration from the process environment.
// Callers load any .env file beforehand.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config from environment: %w", err)
	}

	if cfg.JWTSecret == "" {
		cfg.JWTSecret = defaultJWTSecret
	}

	if cfg.Env == "production" && cfg.JWTSecret == defaultJWTSecret {
		return Config{}, ErrDefaultSecretInProduction
	}

	return cfg, nil
}
