package commands

import (
	"context"
	"fmt"
	"io"

	vaultUseCase "github.com/Nickbot606/clenv/internal/vault/usecase"
)

// RunRevoke removes name from the keyring and from every entry of namespace.
// Content keys are not rotated: rotate the secrets themselves if name may have copied them.
func RunRevoke(
	ctx context.Context,
	manager vaultUseCase.AccessManager,
	writer io.Writer,
	namespace, name string,
) error {
	if err := manager.Revoke(ctx, namespace, name); err != nil {
		return fmt.Errorf("failed to revoke %s from %s: %w", name, namespace, err)
	}

	_, _ = fmt.Fprintf(writer, "Revoked %s from namespace %s\n", name, namespace)
	return nil
}
