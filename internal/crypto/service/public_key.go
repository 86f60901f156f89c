package service

import (
	"bytes"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"

	"golang.org/x/crypto/ssh"

	cryptoDomain "github.com/Nickbot606/clenv/internal/crypto/domain"
	"github.com/Nickbot606/clenv/internal/errors"
)

// PEM block types understood by the key helpers.
const (
	pemTypePublicKey        = "PUBLIC KEY"
	pemTypeRSAPublicKey     = "RSA PUBLIC KEY"
	pemTypeRSAPrivateKey    = "RSA PRIVATE KEY"
	pemTypePrivateKey       = "PRIVATE KEY"
	pemTypeSealedPrivateKey = "CLENV SEALED PRIVATE KEY"
)

// ParsePublicKey parses an RSA public key from PKIX PEM, PKCS#1 PEM or an OpenSSH
// authorized-keys line. Keys below MinRSAKeyBits are rejected with ErrWeakKey.
func ParsePublicKey(data []byte) (*rsa.PublicKey, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, errors.Wrap(cryptoDomain.ErrInvalidPublicKey, "empty input")
	}

	var (
		publicKey *rsa.PublicKey
		err       error
	)
	if bytes.HasPrefix(trimmed, []byte("ssh-")) || bytes.HasPrefix(trimmed, []byte("ecdsa-")) {
		publicKey, err = parseAuthorizedKey(trimmed)
	} else {
		publicKey, err = parsePEMPublicKey(trimmed)
	}
	if err != nil {
		return nil, err
	}

	if publicKey.N.BitLen() < cryptoDomain.MinRSAKeyBits {
		return nil, cryptoDomain.ErrWeakKey
	}
	return publicKey, nil
}

func parsePEMPublicKey(data []byte) (*rsa.PublicKey, error) {
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, errors.Wrap(cryptoDomain.ErrInvalidPublicKey, "no PEM block found")
	}

	switch block.Type {
	case pemTypePublicKey:
		parsed, err := x509.ParsePKIXPublicKey(block.Bytes)
		if err != nil {
			return nil, errors.Wrap(cryptoDomain.ErrInvalidPublicKey, err.Error())
		}
		publicKey, ok := parsed.(*rsa.PublicKey)
		if !ok {
			return nil, cryptoDomain.ErrUnsupportedKeyType
		}
		return publicKey, nil
	case pemTypeRSAPublicKey:
		publicKey, err := x509.ParsePKCS1PublicKey(block.Bytes)
		if err != nil {
			return nil, errors.Wrap(cryptoDomain.ErrInvalidPublicKey, err.Error())
		}
		return publicKey, nil
	default:
		return nil, errors.Wrapf(cryptoDomain.ErrInvalidPublicKey, "unexpected PEM block %q", block.Type)
	}
}

func parseAuthorizedKey(data []byte) (*rsa.PublicKey, error) {
	sshKey, _, _, _, err := ssh.ParseAuthorizedKey(data)
	if err != nil {
		return nil, errors.Wrap(cryptoDomain.ErrInvalidPublicKey, err.Error())
	}

	cryptoKey, ok := sshKey.(ssh.CryptoPublicKey)
	if !ok {
		return nil, cryptoDomain.ErrUnsupportedKeyType
	}
	publicKey, ok := cryptoKey.CryptoPublicKey().(*rsa.PublicKey)
	if !ok {
		return nil, cryptoDomain.ErrUnsupportedKeyType
	}
	return publicKey, nil
}

// EncodePublicKeyPEM encodes publicKey as a PKIX "PUBLIC KEY" PEM block.
func EncodePublicKeyPEM(publicKey *rsa.PublicKey) ([]byte, error) {
	der, err := x509.MarshalPKIXPublicKey(publicKey)
	if err != nil {
		return nil, errors.Wrap(cryptoDomain.ErrInvalidPublicKey, err.Error())
	}
	return pem.EncodeToMemory(&pem.Block{Type: pemTypePublicKey, Bytes: der}), nil
}

// ParsePrivateKey parses an RSA private key from PKCS#1 PEM, PKCS#8 PEM or an unencrypted
// OpenSSH private key file.
func ParsePrivateKey(data []byte) (*rsa.PrivateKey, error) {
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, errors.Wrap(cryptoDomain.ErrInvalidPrivateKey, "no PEM block found")
	}

	var parsed any
	var err error
	switch block.Type {
	case pemTypeRSAPrivateKey:
		parsed, err = x509.ParsePKCS1PrivateKey(block.Bytes)
	case pemTypePrivateKey:
		parsed, err = x509.ParsePKCS8PrivateKey(block.Bytes)
	case "OPENSSH PRIVATE KEY":
		parsed, err = ssh.ParseRawPrivateKey(data)
	default:
		return nil, errors.Wrapf(cryptoDomain.ErrInvalidPrivateKey, "unexpected PEM block %q", block.Type)
	}
	if err != nil {
		return nil, errors.Wrap(cryptoDomain.ErrInvalidPrivateKey, err.Error())
	}

	privateKey, ok := parsed.(*rsa.PrivateKey)
	if !ok {
		return nil, cryptoDomain.ErrUnsupportedKeyType
	}
	return privateKey, nil
}

// EncodePrivateKeyPEM encodes privateKey as a PKCS#1 "RSA PRIVATE KEY" PEM block.
func EncodePrivateKeyPEM(privateKey *rsa.PrivateKey) []byte {
	return pem.EncodeToMemory(&pem.Block{
		Type:  pemTypeRSAPrivateKey,
		Bytes: x509.MarshalPKCS1PrivateKey(privateKey),
	})
}
