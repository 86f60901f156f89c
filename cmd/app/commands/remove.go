package commands

import (
	"context"
	"fmt"
	"io"

	vaultUseCase "github.com/Nickbot606/clenv/internal/vault/usecase"
)

// RunRemove deletes one entry.
func RunRemove(
	ctx context.Context,
	manager vaultUseCase.AccessManager,
	writer io.Writer,
	namespace, name string,
) error {
	if err := manager.DeleteEntry(ctx, namespace, name); err != nil {
		return fmt.Errorf("failed to remove %s: %w", name, err)
	}

	_, _ = fmt.Fprintf(writer, "Removed %s from namespace %s\n", name, namespace)
	return nil
}
