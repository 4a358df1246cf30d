package db

import (
	"fmt"

	_ "github.com/glebarez/go-sqlite"
	"github.com/jmoiron/sqlx"
)

// Connect opens the SQLite database at the given path.
func Connect(dbPath string) (*sqlx.DB, error) {
	pool, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}
	return pool, nil
}

// Initialize enables foreign keys and creates the schema if it does not
// exist yet.
func Initialize(pool *sqlx.DB) error {
	if _, err := pool.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	userSchema := `
	CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		credits INTEGER NOT NULL DEFAULT 0 CHECK (credits >= 0),
		is_active INTEGER NOT NULL DEFAULT 1
	);`

	if _, err := pool.Exec(userSchema); err != nil {
		return fmt.Errorf("failed to create users table: %w", err)
	}

	chatSchema := `
	CREATE TABLE IF NOT EXISTS chats (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL REFERENCES users(id),
		message TEXT NOT NULL,
		response TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL
	);`

	if _, err := pool.Exec(chatSchema); err != nil {
		return fmt.Errorf("failed to create chats table: %w", err)
	}

	return nil
}
