// Package domain defines the cryptographic model of the vault: per-entry content keys,
// recipients and the envelope that binds them together.
package domain

// Algorithm represents the AEAD algorithm used for entry content encryption.
//
// The persisted entry layout carries no algorithm tag, so a vault uses exactly one
// content algorithm for its lifetime.
type Algorithm string

const (
	// AESGCM represents the AES-256-GCM authenticated encryption algorithm.
	//
	// Key features:
	//   - 256-bit key size
	//   - 12-byte nonce (96 bits)
	//   - 16-byte authentication tag appended to the ciphertext
	AESGCM Algorithm = "aes-gcm"
)

const (
	// ContentKeySize is the size in bytes of a per-entry content key.
	ContentKeySize = 32

	// NonceSize is the size in bytes of the AEAD nonce stored with each entry.
	NonceSize = 12

	// DefaultRSAKeyBits is the modulus size used when generating a principal's key pair.
	DefaultRSAKeyBits = 4096

	// MinRSAKeyBits is the smallest modulus accepted for a recipient public key.
	// RSA-OAEP with SHA-256 needs at least 2*32+2 bytes of overhead, and anything
	// below 2048 bits is considered broken.
	MinRSAKeyBits = 2048

	// MaxPayloadSize is the largest plaintext an entry may hold. The decompressor refuses
	// output above it, so larger payloads are rejected before encryption.
	MaxPayloadSize = 64 << 20
)
