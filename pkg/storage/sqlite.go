package storage

import (
	"database/sql"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteBackend stores collections in a single key/value table inside a
// local SQLite file. This is the default backend.
type SQLiteBackend struct {
	db *sql.DB
}

// OpenSQLite opens (and if necessary creates) the database file at dbPath
func OpenSQLite(dbPath string) (*SQLiteBackend, error) {
	// Expand tilde to home directory if present
	if strings.HasPrefix(dbPath, "~") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		dbPath = homeDir + dbPath[1:]
	}

	// Create the directory structure if it doesn't exist
	dbDir := filepath.Dir(dbPath)
	if dbDir != "." {
		if err := os.MkdirAll(dbDir, 0755); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	b := &SQLiteBackend{db: db}
	if err := b.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}

	return b, nil
}

func (b *SQLiteBackend) ensureSchema() error {
	_, err := b.db.Exec(`
		CREATE TABLE IF NOT EXISTS collections (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)
	`)
	return err
}

// Read returns the serialized collection stored under key
func (b *SQLiteBackend) Read(key string) (string, bool, error) {
	var value string
	err := b.db.QueryRow("SELECT value FROM collections WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// Write replaces the serialized collection stored under key
func (b *SQLiteBackend) Write(key, value string) error {
	_, err := b.db.Exec(
		`INSERT INTO collections (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	return err
}

// Close closes the underlying database connection
func (b *SQLiteBackend) Close() error {
	return b.db.Close()
}
