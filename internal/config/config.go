package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DBDSN          string
	Environment    string
	HTTPAddr       string
	JWTSecret      string
	MigrationsPath string
	DemoMode       bool

	// Notifier worker
	ResendAPIKey string
	EmailFrom    string
	PollInterval time.Duration
}

// Load reads configuration from the environment, optionally seeded from a
// .env file.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("no .env file found, using environment variables")
	}

	cfg := &Config{
		DBDSN:          os.Getenv("DB_DSN"),
		Environment:    os.Getenv("ENV"),
		HTTPAddr:       os.Getenv("HTTP_ADDR"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		MigrationsPath: os.Getenv("MIGRATIONS_PATH"),
		DemoMode:       os.Getenv("DEMO_MODE") == "true",
		ResendAPIKey:   os.Getenv("RESEND_API_KEY"),
		EmailFrom:      os.Getenv("EMAIL_FROM"),
	}

	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = ":8080"
	}
	if cfg.MigrationsPath == "" {
		cfg.MigrationsPath = "migrations"
	}
	if cfg.EmailFrom == "" {
		cfg.EmailFrom = "Lender <noreply@lender.app>"
	}

	cfg.PollInterval = time.Minute
	if v := os.Getenv("NOTIFY_POLL_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("parse NOTIFY_POLL_INTERVAL: %w", err)
		}
		cfg.PollInterval = d
	}

	// Demo mode runs entirely on the in-memory store, so the database and
	// token secret are only required outside it.
	if cfg.DBDSN == "" && !cfg.DemoMode {
		return nil, fmt.Errorf("DB_DSN is required but not set")
	}
	if cfg.JWTSecret == "" && !cfg.DemoMode {
		return nil, fmt.Errorf("JWT_SECRET is required but not set")
	}

	return cfg, nil
}
