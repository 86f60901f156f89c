package service

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"

	cryptoDomain "github.com/Nickbot606/clenv/internal/crypto/domain"
	"github.com/Nickbot606/clenv/internal/errors"
)

// AESGCMCipher implements the AEAD interface using AES-256-GCM.
//
// Every vault entry is sealed with its own content key, so the random 12-byte nonce
// generated per call never repeats under a key in practice. The 16-byte tag is
// appended to the ciphertext by Seal.
//
// The cipher instance is stateless and safe for concurrent use.
type AESGCMCipher struct {
	aead cipher.AEAD
}

// NewAESGCM creates a new AES-256-GCM cipher instance.
// Returns ErrInvalidKeySize if key is not exactly 32 bytes.
func NewAESGCM(key []byte) (*AESGCMCipher, error) {
	if len(key) != cryptoDomain.ContentKeySize {
		return nil, cryptoDomain.ErrInvalidKeySize
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create AES cipher: %w", err)
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	return &AESGCMCipher{aead: aead}, nil
}

// Encrypt seals plaintext with a freshly generated nonce.
// Pass nil for aad if no additional data needs to be authenticated.
func (a *AESGCMCipher) Encrypt(plaintext, aad []byte) (ciphertext, nonce []byte, err error) {
	nonce = make([]byte, a.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	ciphertext = a.aead.Seal(nil, nonce, plaintext, aad)
	return ciphertext, nonce, nil
}

// Decrypt authenticates and opens ciphertext with the given nonce and aad.
// Any authentication failure, including a nonce of the wrong length, yields ErrCryptoAEAD.
func (a *AESGCMCipher) Decrypt(ciphertext, nonce, aad []byte) ([]byte, error) {
	if len(nonce) != a.aead.NonceSize() {
		return nil, errors.Wrapf(cryptoDomain.ErrCryptoAEAD, "nonce must be %d bytes", a.aead.NonceSize())
	}

	plaintext, err := a.aead.Open(nil, nonce, ciphertext, aad)
	if err != nil {
		return nil, cryptoDomain.ErrCryptoAEAD
	}
	return plaintext, nil
}
