package domain

import (
	"github.com/Nickbot606/clenv/internal/errors"
)

// Cryptographic operation error definitions.
//
// ErrCryptoAEAD and ErrCryptoRSA are distinct: the first means the content
// ciphertext failed authentication, the second that the wrapped content key could not be
// unwrapped with the supplied private key. Both are terminal and never accompany output.
var (
	// ErrUnsupportedAlgorithm indicates the requested content algorithm is not supported.
	ErrUnsupportedAlgorithm = errors.Wrap(errors.ErrInvalidInput, "unsupported algorithm")

	// ErrInvalidKeySize indicates a content key is not exactly 32 bytes.
	ErrInvalidKeySize = errors.Wrap(errors.ErrInvalidInput, "invalid key size")

	// ErrPayloadTooLarge indicates a plaintext above MaxPayloadSize.
	ErrPayloadTooLarge = errors.Wrap(errors.ErrInvalidInput, "payload too large")

	// ErrNoRecipients indicates an encryption was requested for an empty recipient set.
	ErrNoRecipients = errors.Wrap(errors.ErrInvalidInput, "no recipients")

	// ErrCryptoAEAD indicates AEAD sealing failed or an authentication tag did not verify.
	//
	// Causes on decryption:
	//   - ciphertext has been tampered with
	//   - wrong content key
	//   - nonce mismatch
	ErrCryptoAEAD = errors.Wrap(errors.ErrCrypto, "aead authentication failed")

	// ErrCryptoRSA indicates wrapping or unwrapping a content key with RSA-OAEP failed.
	ErrCryptoRSA = errors.Wrap(errors.ErrCrypto, "rsa key wrap failed")

	// ErrDecompressionFailed indicates authenticated plaintext was not a valid compressed stream.
	ErrDecompressionFailed = errors.Wrap(errors.ErrSerialization, "decompression failed")

	// ErrInvalidPublicKey indicates public key material could not be parsed.
	ErrInvalidPublicKey = errors.Wrap(errors.ErrInvalidInput, "invalid public key")

	// ErrInvalidPrivateKey indicates private key material could not be parsed.
	ErrInvalidPrivateKey = errors.Wrap(errors.ErrInvalidInput, "invalid private key")

	// ErrUnsupportedKeyType indicates the key is valid but not an RSA key.
	ErrUnsupportedKeyType = errors.Wrap(errors.ErrInvalidInput, "unsupported key type")

	// ErrWeakKey indicates an RSA key below MinRSAKeyBits.
	ErrWeakKey = errors.Wrap(errors.ErrInvalidInput, "rsa key too small")
)

// Key-pair provider errors.
var (
	// ErrKeyPairNotFound indicates no private key file exists for the identity.
	ErrKeyPairNotFound = errors.Wrap(errors.ErrNotFound, "key pair not found")

	// ErrKeyPairExists indicates a private key file already exists where a new one would be written.
	ErrKeyPairExists = errors.Wrap(errors.ErrConflict, "key pair already exists")

	// ErrInvalidIdentity indicates an identity that cannot be used as a key file name.
	ErrInvalidIdentity = errors.Wrap(errors.ErrInvalidInput, "invalid identity")

	// ErrSealedKeyWithoutKMS indicates a sealed private key was found but no KMS key URI is configured.
	ErrSealedKeyWithoutKMS = errors.Wrap(errors.ErrInvalidInput, "private key is sealed but no KMS key URI is configured")
)
