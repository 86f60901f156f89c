package database

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/Nickbot606/clenv/migrations"
)

// MigrationsDir returns the embedded migrations directory for driver.
func MigrationsDir(driver string) (string, error) {
	switch driver {
	case DriverSQLite:
		return "sqlite", nil
	case DriverPostgres:
		return "postgresql", nil
	case DriverMySQL:
		return "mysql", nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", driver)
	}
}

// MigrationURL returns the golang-migrate database URL for a connection string.
func MigrationURL(driver, connectionString string) (string, error) {
	switch driver {
	case DriverSQLite:
		return "sqlite://" + connectionString, nil
	case DriverPostgres:
		return connectionString, nil
	case DriverMySQL:
		return "mysql://" + connectionString, nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", driver)
	}
}

// NewMigrate builds a migrate instance over the embedded migrations.
// It opens its own connection, so it never closes a *sql.DB owned by the caller.
func NewMigrate(cfg Config) (*migrate.Migrate, error) {
	dir, err := MigrationsDir(cfg.Driver)
	if err != nil {
		return nil, err
	}
	databaseURL, err := MigrationURL(cfg.Driver, cfg.ConnectionString)
	if err != nil {
		return nil, err
	}

	if cfg.Driver == DriverSQLite {
		if err := os.MkdirAll(filepath.Dir(cfg.ConnectionString), 0o700); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	source, err := iofs.New(migrations.FS, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded migrations: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", source, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}
	return m, nil
}

// Migrate applies all pending migrations. It is a no-op when the schema is up to date.
func Migrate(cfg Config) error {
	m, err := NewMigrate(cfg)
	if err != nil {
		return err
	}
	defer func() {
		_, _ = m.Close()
	}()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}
