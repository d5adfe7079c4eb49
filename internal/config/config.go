package config

import (
	"log"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

// Config holds the demo host's configuration.
type Config struct {
	Addr          string
	SessionSecret string
	TextsFile     string
}

// New loads configuration from the environment, reading a .env file first
// when one exists.
func New() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	cfg := &Config{
		Addr:          os.Getenv("ADDR"),
		SessionSecret: os.Getenv("SESSION_SECRET"),
		TextsFile:     os.Getenv("TEXTS_FILE"),
	}

	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}
	if cfg.SessionSecret == "" {
		cfg.SessionSecret = "authcard-demo-insecure-secret"
		slog.Warn("SESSION_SECRET not set, using an insecure demo secret")
	}

	return cfg
}
