package domain

import "context"

// KMSKeeper seals and unseals small blobs with a key held by a key management service.
// *gocloud.dev/secrets.Keeper satisfies this interface.
type KMSKeeper interface {
	Encrypt(ctx context.Context, plaintext []byte) ([]byte, error)
	Decrypt(ctx context.Context, ciphertext []byte) ([]byte, error)
	Close() error
}
