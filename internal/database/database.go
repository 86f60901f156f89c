// Package database provides database connection management and utilities.
package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Supported values for Config.Driver.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
)

// sqlitePragmas are applied to every SQLite connection.
const sqlitePragmas = "_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)"

// Config holds database configuration settings.
type Config struct {
	Driver             string
	ConnectionString   string
	MaxOpenConnections int
	MaxIdleConnections int
	ConnMaxLifetime    time.Duration
}

// Connect establishes a database connection with the given configuration.
//
// For SQLite the connection string is a file path. The parent directory is created, the pool
// is limited to a single connection and the file is restricted to its owner.
func Connect(cfg Config) (*sql.DB, error) {
	dsn := cfg.ConnectionString
	switch cfg.Driver {
	case DriverSQLite:
		if err := os.MkdirAll(filepath.Dir(cfg.ConnectionString), 0o700); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
		dsn = SQLiteDSN(cfg.ConnectionString)
	case DriverPostgres, DriverMySQL:
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	db, err := sql.Open(cfg.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if cfg.Driver == DriverSQLite {
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	} else {
		db.SetMaxOpenConns(cfg.MaxOpenConnections)
		db.SetMaxIdleConns(cfg.MaxIdleConnections)
	}
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if cfg.Driver == DriverSQLite {
		if err := ensureOwnerOnly(cfg.ConnectionString); err != nil {
			_ = db.Close()
			return nil, err
		}
	}

	return db, nil
}

// SQLiteDSN builds the modernc.org/sqlite DSN for a database file path.
func SQLiteDSN(path string) string {
	return fmt.Sprintf("file:%s?%s", path, sqlitePragmas)
}

func ensureOwnerOnly(path string) error {
	if runtime.GOOS == "windows" {
		return nil
	}
	if err := os.Chmod(path, 0o600); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to chmod database file: %w", err)
	}
	return nil
}
