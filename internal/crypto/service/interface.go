// Package service provides the cryptographic services behind the vault:
// AEAD content encryption, RSA-OAEP key wrapping, compression, the envelope cipher
// that composes them, and the key-pair provider for local principals.
package service

import (
	"context"
	"crypto/rsa"

	cryptoDomain "github.com/Nickbot606/clenv/internal/crypto/domain"
)

// AEAD defines the interface for Authenticated Encryption with Associated Data.
type AEAD interface {
	// Encrypt encrypts plaintext with optional AAD and returns ciphertext and a fresh nonce.
	Encrypt(plaintext, aad []byte) (ciphertext, nonce []byte, err error)

	// Decrypt decrypts ciphertext using the provided nonce and AAD.
	Decrypt(ciphertext, nonce, aad []byte) ([]byte, error)
}

// AEADManager defines the interface for creating AEAD cipher instances.
type AEADManager interface {
	// CreateCipher creates an AEAD cipher instance for the specified algorithm.
	CreateCipher(key []byte, alg cryptoDomain.Algorithm) (AEAD, error)
}

// KeyWrapper wraps and unwraps content keys with a recipient's asymmetric key pair.
type KeyWrapper interface {
	Wrap(contentKey []byte, publicKey *rsa.PublicKey) ([]byte, error)
	Unwrap(wrappedKey []byte, privateKey *rsa.PrivateKey) ([]byte, error)
}

// Compressor is a reversible byte-stream transform applied before encryption.
type Compressor interface {
	Compress(src []byte) []byte
	Decompress(src []byte) ([]byte, error)
}

// EnvelopeCipher encrypts a payload once and wraps its content key per recipient.
type EnvelopeCipher interface {
	// Encrypt compresses and seals plaintext under a fresh content key and nonce, and wraps
	// the content key for every recipient. The caller must zero Envelope.ContentKey.
	Encrypt(plaintext []byte, recipients []cryptoDomain.Recipient) (*cryptoDomain.Envelope, error)

	// Decrypt unwraps the content key, authenticates and decrypts, then decompresses.
	Decrypt(wrappedKey, ciphertext, nonce []byte, privateKey *rsa.PrivateKey) ([]byte, error)

	// UnwrapContentKey recovers the raw content key without touching the ciphertext.
	UnwrapContentKey(wrappedKey []byte, privateKey *rsa.PrivateKey) ([]byte, error)

	// WrapContentKey wraps an already-unwrapped content key for another recipient.
	WrapContentKey(contentKey []byte, publicKey *rsa.PublicKey) ([]byte, error)
}

// KMSService opens keepers for a KMS key URI.
type KMSService interface {
	OpenKeeper(ctx context.Context, keyURI string) (cryptoDomain.KMSKeeper, error)
}

// KeyPairProvider loads, or creates on first use, the key pair of a local identity.
type KeyPairProvider interface {
	LoadOrCreate(ctx context.Context, identity string) (*rsa.PrivateKey, error)
	Load(ctx context.Context, identity string) (*rsa.PrivateKey, error)
	ExportPublicKey(identity string, publicKey *rsa.PublicKey) (string, error)
}
