// Package commands contains CLI command implementations for clenv.
package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang-migrate/migrate/v4"
)

// IOTuple holds reader and writer for commands, allowing for testing.
type IOTuple struct {
	Reader io.Reader
	Writer io.Writer
}

// DefaultIO returns an IOTuple with os.Stdin and os.Stdout.
func DefaultIO() IOTuple {
	return IOTuple{
		Reader: os.Stdin,
		Writer: os.Stdout,
	}
}

// closeMigrate closes the migration instance and logs any errors.
func closeMigrate(m *migrate.Migrate, logger *slog.Logger) {
	sourceError, databaseError := m.Close()
	if sourceError != nil || databaseError != nil {
		logger.Error(
			"failed to close the migrate",
			slog.Any("source_error", sourceError),
			slog.Any("database_error", databaseError),
		)
	}
}

// splitFileName derives an entry name and extension from a file path: "app/db.env" gives
// ("db", "env"). A dot file such as ".env" keeps its full name and gets no extension.
func splitFileName(path string) (name, extension string) {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	if ext == "" || ext == base {
		return base, ""
	}
	return strings.TrimSuffix(base, ext), strings.TrimPrefix(ext, ".")
}

// entryFileName joins an entry name and its extension back into a file name.
func entryFileName(name, extension string) string {
	if extension == "" {
		return name
	}
	return name + "." + extension
}

// isPlainFileName reports whether name stays inside the directory it is joined to.
func isPlainFileName(name string) bool {
	return name != "." && name != ".." && name == filepath.Base(name) && !strings.ContainsRune(name, os.PathSeparator)
}

// writeSecretFile writes data with mode 0600, also tightening the mode of an existing file.
func writeSecretFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return os.Chmod(path, 0o600)
}
