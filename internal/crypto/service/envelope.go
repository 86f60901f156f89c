package service

import (
	"crypto/rand"
	"crypto/rsa"
	"fmt"

	cryptoDomain "github.com/Nickbot606/clenv/internal/crypto/domain"
	"github.com/Nickbot606/clenv/internal/errors"
)

// EnvelopeService implements EnvelopeCipher.
//
// Encrypt pipeline: compress, seal under a fresh content key, wrap the content key once
// per recipient. Decrypt runs the same steps in reverse. Content keys and intermediate
// plaintext buffers are zeroed before returning.
type EnvelopeService struct {
	aeadManager AEADManager
	keyWrapper  KeyWrapper
	compressor  Compressor
	algorithm   cryptoDomain.Algorithm
}

// NewEnvelopeService creates a new EnvelopeService using AES-256-GCM for content encryption.
func NewEnvelopeService(
	aeadManager AEADManager,
	keyWrapper KeyWrapper,
	compressor Compressor,
) *EnvelopeService {
	return &EnvelopeService{
		aeadManager: aeadManager,
		keyWrapper:  keyWrapper,
		compressor:  compressor,
		algorithm:   cryptoDomain.AESGCM,
	}
}

// Encrypt seals plaintext for every recipient.
// Returns ErrNoRecipients when recipients is empty and ErrPayloadTooLarge when plaintext
// exceeds MaxPayloadSize.
func (e *EnvelopeService) Encrypt(
	plaintext []byte,
	recipients []cryptoDomain.Recipient,
) (*cryptoDomain.Envelope, error) {
	if len(recipients) == 0 {
		return nil, cryptoDomain.ErrNoRecipients
	}
	if len(plaintext) > cryptoDomain.MaxPayloadSize {
		return nil, errors.Wrapf(cryptoDomain.ErrPayloadTooLarge, "%d bytes", len(plaintext))
	}

	contentKey := make([]byte, cryptoDomain.ContentKeySize)
	if _, err := rand.Read(contentKey); err != nil {
		return nil, fmt.Errorf("failed to generate content key: %w", err)
	}

	cipher, err := e.aeadManager.CreateCipher(contentKey, e.algorithm)
	if err != nil {
		cryptoDomain.Zero(contentKey)
		return nil, err
	}

	compressed := e.compressor.Compress(plaintext)
	ciphertext, nonce, err := cipher.Encrypt(compressed, nil)
	cryptoDomain.Zero(compressed)
	if err != nil {
		cryptoDomain.Zero(contentKey)
		return nil, fmt.Errorf("failed to seal content: %w", err)
	}

	wrappedKeys := make(map[string][]byte, len(recipients))
	for _, recipient := range recipients {
		wrapped, err := e.keyWrapper.Wrap(contentKey, recipient.PublicKey)
		if err != nil {
			cryptoDomain.Zero(contentKey)
			return nil, fmt.Errorf("failed to wrap content key for %q: %w", recipient.Name, err)
		}
		wrappedKeys[recipient.Name] = wrapped
	}

	return &cryptoDomain.Envelope{
		Ciphertext:  ciphertext,
		Nonce:       nonce,
		WrappedKeys: wrappedKeys,
		ContentKey:  contentKey,
	}, nil
}

// Decrypt unwraps the content key, opens the ciphertext and decompresses it.
//
// Returns ErrCryptoRSA when the wrapped key cannot be unwrapped, ErrCryptoAEAD when the
// ciphertext does not authenticate, and ErrDecompressionFailed when authenticated content
// is not a valid compressed stream.
func (e *EnvelopeService) Decrypt(
	wrappedKey, ciphertext, nonce []byte,
	privateKey *rsa.PrivateKey,
) ([]byte, error) {
	contentKey, err := e.UnwrapContentKey(wrappedKey, privateKey)
	if err != nil {
		return nil, err
	}
	defer cryptoDomain.Zero(contentKey)

	cipher, err := e.aeadManager.CreateCipher(contentKey, e.algorithm)
	if err != nil {
		return nil, err
	}

	compressed, err := cipher.Decrypt(ciphertext, nonce, nil)
	if err != nil {
		return nil, err
	}
	defer cryptoDomain.Zero(compressed)

	return e.compressor.Decompress(compressed)
}

// UnwrapContentKey recovers the raw content key. A recovered key of the wrong length is
// reported as ErrCryptoRSA since it cannot have come from Encrypt.
func (e *EnvelopeService) UnwrapContentKey(wrappedKey []byte, privateKey *rsa.PrivateKey) ([]byte, error) {
	contentKey, err := e.keyWrapper.Unwrap(wrappedKey, privateKey)
	if err != nil {
		return nil, err
	}
	if len(contentKey) != cryptoDomain.ContentKeySize {
		cryptoDomain.Zero(contentKey)
		return nil, cryptoDomain.ErrCryptoRSA
	}
	return contentKey, nil
}

// WrapContentKey wraps contentKey for one more recipient.
func (e *EnvelopeService) WrapContentKey(contentKey []byte, publicKey *rsa.PublicKey) ([]byte, error) {
	if len(contentKey) != cryptoDomain.ContentKeySize {
		return nil, cryptoDomain.ErrInvalidKeySize
	}
	return e.keyWrapper.Wrap(contentKey, publicKey)
}
