package database

import (
	"errors"
	"fmt"
)

// Keys used by the application inside the key-value store
const (
	TasksKey  = "tasks"
	AlarmsKey = "alarms"
	DhikrKey  = "dhikrCounts"
)

// ErrNotFound is returned by Get when the key has never been set
var ErrNotFound = errors.New("key not found")

// Store is the persistence port every subsystem writes its state through.
// Values are opaque serialized documents (JSON in practice).
type Store interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Delete(key string) error
	Close() error
}

// Drivers supported by Open
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
	DriverFile     = "file"
	DriverMemory   = "memory"
)

// Open creates the store for the configured driver. dsn is a file path for
// sqlite3 and file, a connection string for postgres and an address (or
// redis:// URL) for redis.
func Open(driver, dsn string) (Store, error) {
	switch driver {
	case DriverSQLite, "sqlite", "":
		return OpenSQL(DriverSQLite, dsn)
	case DriverPostgres:
		return OpenSQL(DriverPostgres, dsn)
	case DriverRedis:
		return OpenRedis(dsn)
	case DriverFile:
		return OpenFile(dsn)
	case DriverMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown store driver: %s", driver)
	}
}
