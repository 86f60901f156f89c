package service

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/pem"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	cryptoDomain "github.com/Nickbot606/clenv/internal/crypto/domain"
	"github.com/Nickbot606/clenv/internal/errors"
)

// KeyPairConfig configures a FileKeyPairProvider.
type KeyPairConfig struct {
	// KeysDir holds <identity>_private.pem and <identity>_public.pem.
	KeysDir string
	// KeyBits is the RSA modulus size for newly generated keys.
	KeyBits int
	// KMSKeyURI seals private keys at rest when set.
	KMSKeyURI string
}

// FileKeyPairProvider implements KeyPairProvider with PEM files in a directory.
//
// Private keys are written as PKCS#1 PEM with mode 0600. When a KMS key URI is configured
// the PEM is sealed by the keeper and written inside a "CLENV SEALED PRIVATE KEY" block.
type FileKeyPairProvider struct {
	cfg        KeyPairConfig
	kmsService KMSService
	logger     *slog.Logger
}

// NewFileKeyPairProvider creates a new FileKeyPairProvider.
func NewFileKeyPairProvider(cfg KeyPairConfig, kmsService KMSService, logger *slog.Logger) *FileKeyPairProvider {
	if cfg.KeyBits == 0 {
		cfg.KeyBits = cryptoDomain.DefaultRSAKeyBits
	}
	return &FileKeyPairProvider{
		cfg:        cfg,
		kmsService: kmsService,
		logger:     logger,
	}
}

// PrivateKeyPath returns the private key file path for identity.
func (p *FileKeyPairProvider) PrivateKeyPath(identity string) string {
	return filepath.Join(p.cfg.KeysDir, identity+"_private.pem")
}

// PublicKeyPath returns the public key file path for identity.
func (p *FileKeyPairProvider) PublicKeyPath(identity string) string {
	return filepath.Join(p.cfg.KeysDir, identity+"_public.pem")
}

// LoadOrCreate loads the private key of identity, generating and persisting a new key pair
// when none exists yet.
func (p *FileKeyPairProvider) LoadOrCreate(ctx context.Context, identity string) (*rsa.PrivateKey, error) {
	privateKey, err := p.Load(ctx, identity)
	if err == nil {
		return privateKey, nil
	}
	if !errors.Is(err, cryptoDomain.ErrKeyPairNotFound) {
		return nil, err
	}
	return p.create(ctx, identity)
}

// Load reads the private key of identity. Returns ErrKeyPairNotFound if no key file exists.
func (p *FileKeyPairProvider) Load(ctx context.Context, identity string) (*rsa.PrivateKey, error) {
	if err := validateIdentity(identity); err != nil {
		return nil, err
	}

	path := p.PrivateKeyPath(identity)
	data, err := os.ReadFile(path) //nolint:gosec // path built from keys dir and validated identity
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrapf(cryptoDomain.ErrKeyPairNotFound, "%s", path)
		}
		return nil, fmt.Errorf("failed to read private key: %w", err)
	}

	block, _ := pem.Decode(data)
	if block == nil {
		return nil, errors.Wrapf(cryptoDomain.ErrInvalidPrivateKey, "no PEM block in %s", path)
	}

	if block.Type != pemTypeSealedPrivateKey {
		return ParsePrivateKey(data)
	}

	if p.cfg.KMSKeyURI == "" {
		return nil, cryptoDomain.ErrSealedKeyWithoutKMS
	}
	opened, err := p.unseal(ctx, block.Bytes)
	if err != nil {
		return nil, err
	}
	defer cryptoDomain.Zero(opened)
	return ParsePrivateKey(opened)
}

// ExportPublicKey writes the PKIX PEM of publicKey to <keys_dir>/<identity>_public.pem
// and returns the written path.
func (p *FileKeyPairProvider) ExportPublicKey(identity string, publicKey *rsa.PublicKey) (string, error) {
	if err := validateIdentity(identity); err != nil {
		return "", err
	}

	encoded, err := EncodePublicKeyPEM(publicKey)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(p.cfg.KeysDir, 0o700); err != nil {
		return "", fmt.Errorf("failed to create keys directory: %w", err)
	}

	path := p.PublicKeyPath(identity)
	if err := os.WriteFile(path, encoded, 0o644); err != nil { //nolint:gosec // public key is meant to be shared
		return "", fmt.Errorf("failed to write public key: %w", err)
	}
	return path, nil
}

func (p *FileKeyPairProvider) create(ctx context.Context, identity string) (*rsa.PrivateKey, error) {
	privateKey, err := rsa.GenerateKey(rand.Reader, p.cfg.KeyBits)
	if err != nil {
		return nil, fmt.Errorf("failed to generate rsa key: %w", err)
	}

	encoded := EncodePrivateKeyPEM(privateKey)
	defer cryptoDomain.Zero(encoded)

	if p.cfg.KMSKeyURI != "" {
		sealed, err := p.seal(ctx, encoded)
		if err != nil {
			return nil, err
		}
		encoded = pem.EncodeToMemory(&pem.Block{Type: pemTypeSealedPrivateKey, Bytes: sealed})
	}

	if err := os.MkdirAll(p.cfg.KeysDir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create keys directory: %w", err)
	}

	path := p.PrivateKeyPath(identity)
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600) //nolint:gosec // path built from keys dir and validated identity
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return nil, errors.Wrapf(cryptoDomain.ErrKeyPairExists, "%s", path)
		}
		return nil, fmt.Errorf("failed to create private key file: %w", err)
	}
	if _, err := file.Write(encoded); err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to write private key: %w", err)
	}
	if err := file.Close(); err != nil {
		return nil, fmt.Errorf("failed to close private key file: %w", err)
	}

	if _, err := p.ExportPublicKey(identity, &privateKey.PublicKey); err != nil {
		return nil, err
	}

	p.logger.Info("generated key pair",
		slog.String("identity", identity),
		slog.Int("bits", p.cfg.KeyBits),
		slog.Bool("sealed", p.cfg.KMSKeyURI != ""),
		slog.String("path", path),
	)
	return privateKey, nil
}

func (p *FileKeyPairProvider) seal(ctx context.Context, plaintext []byte) ([]byte, error) {
	keeper, err := p.kmsService.OpenKeeper(ctx, p.cfg.KMSKeyURI)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := keeper.Close(); closeErr != nil {
			p.logger.Error("failed to close KMS keeper", slog.Any("error", closeErr))
		}
	}()

	sealed, err := keeper.Encrypt(ctx, plaintext)
	if err != nil {
		return nil, fmt.Errorf("failed to seal private key: %w", err)
	}
	return sealed, nil
}

func (p *FileKeyPairProvider) unseal(ctx context.Context, sealed []byte) ([]byte, error) {
	keeper, err := p.kmsService.OpenKeeper(ctx, p.cfg.KMSKeyURI)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := keeper.Close(); closeErr != nil {
			p.logger.Error("failed to close KMS keeper", slog.Any("error", closeErr))
		}
	}()

	opened, err := keeper.Decrypt(ctx, sealed)
	if err != nil {
		return nil, errors.Wrap(cryptoDomain.ErrInvalidPrivateKey, "failed to unseal private key")
	}
	return opened, nil
}

func validateIdentity(identity string) error {
	if identity == "" || identity == "." || identity == ".." ||
		strings.ContainsAny(identity, `/\`) || strings.ContainsRune(identity, 0) {
		return errors.Wrapf(cryptoDomain.ErrInvalidIdentity, "%q", identity)
	}
	return nil
}
