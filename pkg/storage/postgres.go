package storage

import (
	"database/sql"

	_ "github.com/lib/pq"
)

// PostgresBackend stores collections in a key/value table in Postgres, for
// setups where the diary database lives on a home server instead of the
// local disk. Same contract as the SQLite backend.
type PostgresBackend struct {
	db *sql.DB
}

// OpenPostgres connects with the given connection string (lib/pq format)
func OpenPostgres(dsn string) (*PostgresBackend, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	b := &PostgresBackend{db: db}
	if err := b.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}

	return b, nil
}

func (b *PostgresBackend) ensureSchema() error {
	_, err := b.db.Exec(`
		CREATE TABLE IF NOT EXISTS collections (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)
	`)
	return err
}

// Read returns the serialized collection stored under key
func (b *PostgresBackend) Read(key string) (string, bool, error) {
	var value string
	err := b.db.QueryRow("SELECT value FROM collections WHERE key = $1", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// Write replaces the serialized collection stored under key
func (b *PostgresBackend) Write(key, value string) error {
	_, err := b.db.Exec(
		`INSERT INTO collections (key, value) VALUES ($1, $2)
		 ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`,
		key, value,
	)
	return err
}

// Close closes the underlying database connection
func (b *PostgresBackend) Close() error {
	return b.db.Close()
}
