package database

import (
	"database/sql"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// ConnectDB opens a database/sql handle. For sqlite3 the file and its parent
// directories are created on demand.
func ConnectDB(driver, dsn string) (*sql.DB, error) {
	if driver == DriverSQLite {
		path, err := expandHome(dsn)
		if err != nil {
			return nil, err
		}
		if err := ensureDir(path); err != nil {
			return nil, err
		}
		dsn = path
	}

	return sql.Open(driver, dsn)
}

// EnsureSchema creates the key-value table if it doesn't exist
func EnsureSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS kv_entries (
			name TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`)
	return err
}

// expandHome expands a leading tilde to the user's home directory
func expandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return homeDir + path[1:], nil
}

func ensureDir(path string) error {
	if path == ":memory:" || strings.HasPrefix(path, "file:") {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0755)
}
