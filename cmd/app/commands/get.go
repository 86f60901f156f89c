package commands

import (
	"context"
	"fmt"
	"io"

	cryptoDomain "github.com/Nickbot606/clenv/internal/crypto/domain"
	cryptoService "github.com/Nickbot606/clenv/internal/crypto/service"
	vaultUseCase "github.com/Nickbot606/clenv/internal/vault/usecase"
)

// RunGet decrypts one entry as identity. The plaintext goes to output with mode 0600, or to
// writer when output is empty.
func RunGet(
	ctx context.Context,
	keyPairs cryptoService.KeyPairProvider,
	manager vaultUseCase.AccessManager,
	writer io.Writer,
	namespace, identity, name, output string,
) error {
	key, err := keyPairs.Load(ctx, identity)
	if err != nil {
		return fmt.Errorf("failed to load key pair of %s: %w", identity, err)
	}

	secret, err := manager.Retrieve(ctx, namespace, name, identity, key)
	if err != nil {
		return fmt.Errorf("failed to retrieve %s: %w", name, err)
	}
	defer cryptoDomain.Zero(secret.Data)

	if output == "" {
		if _, err := writer.Write(secret.Data); err != nil {
			return fmt.Errorf("failed to write %s: %w", name, err)
		}
		return nil
	}

	return writeSecretFile(output, secret.Data)
}
