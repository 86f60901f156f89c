package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	cryptoDomain "github.com/Nickbot606/clenv/internal/crypto/domain"
	cryptoService "github.com/Nickbot606/clenv/internal/crypto/service"
	"github.com/Nickbot606/clenv/internal/errors"
	vaultDomain "github.com/Nickbot606/clenv/internal/vault/domain"
	vaultUseCase "github.com/Nickbot606/clenv/internal/vault/usecase"
)

// RunDump decrypts every entry of namespace into its own file in dir, named
// <entry>.<extension>. Entries identity cannot read, and entries whose name is not a plain
// file name, are skipped with a warning.
func RunDump(
	ctx context.Context,
	keyPairs cryptoService.KeyPairProvider,
	manager vaultUseCase.AccessManager,
	logger *slog.Logger,
	writer io.Writer,
	namespace, identity, dir string,
) error {
	key, err := keyPairs.Load(ctx, identity)
	if err != nil {
		return fmt.Errorf("failed to load key pair of %s: %w", identity, err)
	}

	names, err := manager.ListEntries(ctx, namespace)
	if err != nil {
		return fmt.Errorf("failed to list %s: %w", namespace, err)
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}

	written := 0
	for _, name := range names {
		secret, err := manager.Retrieve(ctx, namespace, name, identity, key)
		if errors.Is(err, vaultDomain.ErrNotAuthorized) {
			logger.Warn("skipping entry without access",
				slog.String("namespace", namespace),
				slog.String("entry", name),
				slog.String("principal", identity),
			)
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to retrieve %s: %w", name, err)
		}

		fileName := entryFileName(name, secret.Extension)
		if !isPlainFileName(fileName) {
			cryptoDomain.Zero(secret.Data)
			logger.Warn("skipping entry that is not a plain file name",
				slog.String("namespace", namespace),
				slog.String("entry", name),
				slog.String("file", fileName),
			)
			continue
		}

		path := filepath.Join(dir, fileName)
		err = writeSecretFile(path, secret.Data)
		cryptoDomain.Zero(secret.Data)
		if err != nil {
			return err
		}

		_, _ = fmt.Fprintln(writer, path)
		written++
	}

	_, _ = fmt.Fprintf(writer, "Dumped %d of %d entries from %s\n", written, len(names), namespace)
	return nil
}
