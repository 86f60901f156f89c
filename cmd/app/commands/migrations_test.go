package commands

import (
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Nickbot606/clenv/internal/database"
)

func TestRunMigrations(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("success-sqlite", func(t *testing.T) {
		cfg := database.Config{
			Driver:           database.DriverSQLite,
			ConnectionString: filepath.Join(t.TempDir(), "vault.db"),
		}

		require.NoError(t, RunMigrations(logger, cfg))
		require.NoError(t, RunMigrations(logger, cfg))
		require.FileExists(t, cfg.ConnectionString)
	})

	t.Run("invalid-driver", func(t *testing.T) {
		err := RunMigrations(logger, database.Config{Driver: "invalid", ConnectionString: "postgres://localhost"})
		require.Error(t, err)
		require.Contains(t, err.Error(), "failed to create migrate instance")
	})
}
