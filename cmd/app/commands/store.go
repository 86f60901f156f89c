package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	cryptoDomain "github.com/Nickbot606/clenv/internal/crypto/domain"
	vaultUseCase "github.com/Nickbot606/clenv/internal/vault/usecase"
)

// RunStore encrypts the file at path for every principal in the keyring. The entry is named
// after the file unless name is given; the file extension is kept as the entry's type hint.
func RunStore(
	ctx context.Context,
	manager vaultUseCase.AccessManager,
	writer io.Writer,
	namespace, path, name string,
) error {
	data, err := os.ReadFile(path) //nolint:gosec // path supplied by the operator
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	defer cryptoDomain.Zero(data)

	fileName, extension := splitFileName(path)
	if name == "" {
		name = fileName
	}

	if err := manager.Store(ctx, namespace, name, data, extension); err != nil {
		return fmt.Errorf("failed to store %s: %w", name, err)
	}

	_, _ = fmt.Fprintf(writer, "Stored %s in namespace %s\n", name, namespace)
	return nil
}
