package commands

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"

	"github.com/Nickbot606/clenv/internal/database"
)

// RunMigrations applies all pending migrations for the configured driver from the migrations
// embedded in the binary. Returns nil if there is nothing to apply.
func RunMigrations(logger *slog.Logger, cfg database.Config) error {
	logger.Info("running database migrations", slog.String("driver", cfg.Driver))

	m, err := database.NewMigrate(cfg)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer closeMigrate(m, logger)

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("failed to read migration version: %w", err)
	}

	logger.Info("migrations completed successfully",
		slog.Uint64("version", uint64(version)),
		slog.Bool("dirty", dirty),
	)
	return nil
}
