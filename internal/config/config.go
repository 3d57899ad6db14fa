package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

const (
	defaultDBPath      = "./dev.db"
	defaultPort        = "8080"
	defaultEnvironment = "development"
	// Nightly cost snapshot, after close of business.
	defaultHistoryCron = "0 3 * * *"
)

// Config holds application configuration sourced from environment variables.
type Config struct {
	DBPath       string
	Port         string
	Environment  string
	BusinessName string
	HistoryCron  string
}

// Load reads environment variables and returns a populated Config. A local
// .env file is loaded best-effort for development; production should use
// real env injection.
func Load() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("warning: could not load .env: %v", err)
	}

	cfg := Config{
		DBPath:       os.Getenv("DB_PATH"),
		Port:         os.Getenv("PORT"),
		Environment:  os.Getenv("ENVIRONMENT"),
		BusinessName: os.Getenv("BUSINESS_NAME"),
		HistoryCron:  os.Getenv("HISTORY_CRON"),
	}

	if cfg.DBPath == "" {
		cfg.DBPath = defaultDBPath
	}
	if cfg.Port == "" {
		cfg.Port = defaultPort
	}
	if cfg.Environment == "" {
		cfg.Environment = defaultEnvironment
	}
	if cfg.BusinessName == "" {
		cfg.BusinessName = "My Restaurant"
	}
	if cfg.HistoryCron == "" {
		cfg.HistoryCron = defaultHistoryCron
	}

	return cfg
}

// IsDev reports whether the app runs in a development environment.
func (c Config) IsDev() bool {
	return c.Environment == defaultEnvironment
}
