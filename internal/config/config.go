package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// GuestUserID is the single hardcoded identity every session is recorded
// under. There is no authentication.
const GuestUserID = "guest"

// Config holds all runtime settings for the application
type Config struct {
	// DecksDir is the directory scanned for .csv/.xlsx deck sources
	DecksDir string
	// DataDir holds the local SQLite database and log file
	DataDir string
	// DatabaseURL switches the session store to PostgreSQL when set
	DatabaseURL string

	HTTPAddr string

	// HistoryLimit bounds the recent-sessions query for the summary view
	HistoryLimit int
	// RetentionDays bounds how long session rows are kept
	RetentionDays int
	// AdvanceDelay paces the auto-advance after a quiz answer
	AdvanceDelay time.Duration

	LogLevel string
}

// Load reads an optional .env file and then builds the config from the
// environment
func Load() Config {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv builds the config from environment variables with defaults
func FromEnv() Config {
	return Config{
		DecksDir:      envOr("DECKS_DIR", "decks"),
		DataDir:       envOr("DATA_DIR", "data"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		HTTPAddr:      envOr("HTTP_ADDR", ":8080"),
		HistoryLimit:  envInt("HISTORY_LIMIT", 10),
		RetentionDays: envInt("RETENTION_DAYS", 180),
		AdvanceDelay:  time.Duration(envInt("ADVANCE_DELAY_MS", 1500)) * time.Millisecond,
		LogLevel:      envOr("LOG_LEVEL", "info"),
	}
}

func envOr(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return def
	}
	return n
}
