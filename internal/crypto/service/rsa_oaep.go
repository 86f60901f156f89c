package service

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"

	cryptoDomain "github.com/Nickbot606/clenv/internal/crypto/domain"
	"github.com/Nickbot606/clenv/internal/errors"
)

// RSAOAEPWrapper wraps content keys with RSA-OAEP using SHA-256 for both the hash and MGF1.
// The label is always empty.
type RSAOAEPWrapper struct{}

// NewRSAOAEPWrapper creates a new RSAOAEPWrapper.
func NewRSAOAEPWrapper() *RSAOAEPWrapper {
	return &RSAOAEPWrapper{}
}

// Wrap encrypts contentKey for publicKey. The output length equals the modulus size.
func (w *RSAOAEPWrapper) Wrap(contentKey []byte, publicKey *rsa.PublicKey) ([]byte, error) {
	if publicKey == nil {
		return nil, errors.Wrap(cryptoDomain.ErrCryptoRSA, "nil public key")
	}
	if publicKey.N.BitLen() < cryptoDomain.MinRSAKeyBits {
		return nil, cryptoDomain.ErrWeakKey
	}

	wrapped, err := rsa.EncryptOAEP(sha256.New(), rand.Reader, publicKey, contentKey, nil)
	if err != nil {
		return nil, errors.Wrap(cryptoDomain.ErrCryptoRSA, err.Error())
	}
	return wrapped, nil
}

// Unwrap decrypts wrappedKey with privateKey. Any failure, including a key pair that does not
// match the one used for wrapping, yields ErrCryptoRSA.
func (w *RSAOAEPWrapper) Unwrap(wrappedKey []byte, privateKey *rsa.PrivateKey) ([]byte, error) {
	if privateKey == nil {
		return nil, errors.Wrap(cryptoDomain.ErrCryptoRSA, "nil private key")
	}

	contentKey, err := rsa.DecryptOAEP(sha256.New(), nil, privateKey, wrappedKey, nil)
	if err != nil {
		return nil, cryptoDomain.ErrCryptoRSA
	}
	return contentKey, nil
}
