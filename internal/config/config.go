// Package config loads runtime configuration from the environment.
package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds the runtime configuration of the tracker.
type Config struct {
	// DBPath is the path to the SQLite database file.
	DBPath string
}

const defaultDBPath = "./data/tuition.db"

// Load reads configuration from the environment. A .env file in the
// current directory is loaded first if present; real environment
// variables take precedence over it.
func Load() *Config {
	// Best effort: a missing .env file is not an error.
	_ = godotenv.Load()

	return &Config{
		DBPath: getEnv("DB_PATH", defaultDBPath),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
