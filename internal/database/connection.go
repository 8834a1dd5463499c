// Package database persists finished study sessions. The store is a local
// SQLite file by default and PostgreSQL when DATABASE_URL is set; decks
// themselves are file-backed and never touch the database.
package database

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// Connect opens the session store and ensures the schema exists
func Connect(databaseURL, dataDir string) (*sqlx.DB, error) {
	if databaseURL != "" {
		db, err := sqlx.Connect("postgres", databaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		if err := initializeSchema(db); err != nil {
			db.Close()
			return nil, err
		}
		return db, nil
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "kanjideck.db")
	db, err := sqlx.Connect("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	// SQLite doesn't support multiple writers
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := initializeSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// initializeSchema creates necessary tables if they don't exist. The DDL is
// kept to the SQLite/PostgreSQL common subset.
func initializeSchema(db *sqlx.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS study_sessions (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			topic_id TEXT NOT NULL,
			mode TEXT NOT NULL,
			date TIMESTAMP NOT NULL,
			total_cards INTEGER NOT NULL,
			correct_count INTEGER NOT NULL,
			duration_seconds REAL NOT NULL,
			results TEXT
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create study_sessions table: %w", err)
	}

	_, err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_study_sessions_user_date
		ON study_sessions (user_id, date)
	`)
	if err != nil {
		return fmt.Errorf("failed to create study_sessions index: %w", err)
	}

	return nil
}
