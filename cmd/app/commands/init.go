package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	cryptoService "github.com/Nickbot606/clenv/internal/crypto/service"
	vaultUseCase "github.com/Nickbot606/clenv/internal/vault/usecase"
)

// RunInit creates the key pair of identity if it does not exist yet and exports its public key.
//
// On an empty keyring identity registers itself, bootstrapping the vault. Otherwise an existing
// member has to grant access with "clenv add <identity> <public key file>".
func RunInit(
	ctx context.Context,
	keyPairs cryptoService.KeyPairProvider,
	manager vaultUseCase.AccessManager,
	logger *slog.Logger,
	writer io.Writer,
	namespace, identity string,
) error {
	key, err := keyPairs.LoadOrCreate(ctx, identity)
	if err != nil {
		return fmt.Errorf("failed to load key pair: %w", err)
	}

	publicKeyPath, err := keyPairs.ExportPublicKey(identity, &key.PublicKey)
	if err != nil {
		return fmt.Errorf("failed to export public key: %w", err)
	}

	principals, err := manager.ListPrincipals(ctx)
	if err != nil {
		return fmt.Errorf("failed to read keyring: %w", err)
	}

	if len(principals) > 0 {
		_, _ = fmt.Fprintf(writer, "Public key written to %s\n", publicKeyPath)
		_, _ = fmt.Fprintf(writer, "Ask a member of the vault to run: clenv add %s %s\n", identity, publicKeyPath)
		return nil
	}

	if err := manager.Grant(ctx, namespace, identity, &key.PublicKey, identity, key); err != nil {
		return fmt.Errorf("failed to register %s: %w", identity, err)
	}

	logger.Info("vault initialized", slog.String("principal", identity))
	_, _ = fmt.Fprintf(writer, "Vault initialized for %s\n", identity)
	_, _ = fmt.Fprintf(writer, "Public key written to %s\n", publicKeyPath)
	return nil
}
