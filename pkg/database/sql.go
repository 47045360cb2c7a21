package database

import (
	"database/sql"
	"errors"
	"fmt"

	"ips/pkg/utils"
)

// SQLStore keeps every key as one row of the kv_entries table. The same
// queries run on sqlite3 and postgres.
type SQLStore struct {
	db *sql.DB
}

// OpenSQL connects to the database and makes sure the schema exists
func OpenSQL(driver, dsn string) (*SQLStore, error) {
	db, err := ConnectDB(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", driver, err)
	}
	if driver == DriverSQLite {
		// A single connection keeps ":memory:" databases alive and serializes writers.
		db.SetMaxOpenConns(1)
	}
	if err := EnsureSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return NewSQLStore(db), nil
}

// NewSQLStore wraps an already prepared handle
func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

// Get returns the stored value or ErrNotFound
func (s *SQLStore) Get(key string) ([]byte, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM kv_entries WHERE name = $1", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return []byte(value), nil
}

// Set inserts or replaces the value stored under key
func (s *SQLStore) Set(key string, value []byte) error {
	_, err := s.db.Exec(
		`INSERT INTO kv_entries (name, value, updated) VALUES ($1, $2, CURRENT_TIMESTAMP)
		 ON CONFLICT (name) DO UPDATE SET value = excluded.value, updated = CURRENT_TIMESTAMP`,
		key, string(value),
	)
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	utils.Log("Stored %d bytes under %s", len(value), key)
	return nil
}

// Delete removes key; deleting a missing key is not an error
func (s *SQLStore) Delete(key string) error {
	if _, err := s.db.Exec("DELETE FROM kv_entries WHERE name = $1", key); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

// Close closes the underlying database handle
func (s *SQLStore) Close() error {
	return s.db.Close()
}
