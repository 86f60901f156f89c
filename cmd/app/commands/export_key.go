package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	cryptoService "github.com/Nickbot606/clenv/internal/crypto/service"
)

// RunExportKey writes the PKIX PEM public key of identity to output, or to writer when output
// is empty. The result is what "clenv add" expects on another member's machine.
func RunExportKey(
	ctx context.Context,
	keyPairs cryptoService.KeyPairProvider,
	writer io.Writer,
	identity, output string,
) error {
	key, err := keyPairs.Load(ctx, identity)
	if err != nil {
		return fmt.Errorf("failed to load key pair of %s: %w", identity, err)
	}

	pemBytes, err := cryptoService.EncodePublicKeyPEM(&key.PublicKey)
	if err != nil {
		return fmt.Errorf("failed to encode public key: %w", err)
	}

	if output == "" {
		_, err = writer.Write(pemBytes)
		return err
	}

	if err := os.WriteFile(output, pemBytes, 0o644); err != nil { //nolint:gosec // public key
		return fmt.Errorf("failed to write %s: %w", output, err)
	}
	_, _ = fmt.Fprintf(writer, "Public key written to %s\n", output)
	return nil
}
