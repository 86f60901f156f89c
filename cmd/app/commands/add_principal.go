package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	cryptoService "github.com/Nickbot606/clenv/internal/crypto/service"
	vaultUseCase "github.com/Nickbot606/clenv/internal/vault/usecase"
)

// RunAddPrincipal registers name with the public key read from publicKeyPath and gives it
// access to every entry of namespace, using actor's key pair to unwrap the content keys.
// PKIX PEM, PKCS#1 PEM and OpenSSH "ssh-rsa" public keys are accepted.
func RunAddPrincipal(
	ctx context.Context,
	keyPairs cryptoService.KeyPairProvider,
	manager vaultUseCase.AccessManager,
	writer io.Writer,
	namespace, actor, name, publicKeyPath string,
) error {
	data, err := os.ReadFile(publicKeyPath) //nolint:gosec // path supplied by the operator
	if err != nil {
		return fmt.Errorf("failed to read public key: %w", err)
	}

	publicKey, err := cryptoService.ParsePublicKey(data)
	if err != nil {
		return fmt.Errorf("failed to parse public key %s: %w", publicKeyPath, err)
	}

	actorKey, err := keyPairs.Load(ctx, actor)
	if err != nil {
		return fmt.Errorf("failed to load key pair of %s: %w", actor, err)
	}

	if err := manager.Grant(ctx, namespace, name, publicKey, actor, actorKey); err != nil {
		return fmt.Errorf("failed to grant %s access to %s: %w", name, namespace, err)
	}

	_, _ = fmt.Fprintf(writer, "Granted %s access to namespace %s\n", name, namespace)
	return nil
}
