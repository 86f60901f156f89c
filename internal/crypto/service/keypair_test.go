package service

import (
	"context"
	"encoding/pem"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/Nickbot606/clenv/internal/crypto/domain"
)

func newTestKeyPairProvider(t *testing.T, kmsKeyURI string) *FileKeyPairProvider {
	t.Helper()
	return NewFileKeyPairProvider(KeyPairConfig{
		KeysDir:   filepath.Join(t.TempDir(), "keys"),
		KeyBits:   2048,
		KMSKeyURI: kmsKeyURI,
	}, NewKMSService(), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestFileKeyPairProvider_LoadOrCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("creates then reloads the same key", func(t *testing.T) {
		provider := newTestKeyPairProvider(t, "")

		created, err := provider.LoadOrCreate(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, 2048, created.N.BitLen())

		loaded, err := provider.LoadOrCreate(ctx, "alice")
		require.NoError(t, err)
		assert.True(t, created.Equal(loaded))
	})

	t.Run("private key file is PKCS1 with mode 0600", func(t *testing.T) {
		provider := newTestKeyPairProvider(t, "")
		_, err := provider.LoadOrCreate(ctx, "alice")
		require.NoError(t, err)

		info, err := os.Stat(provider.PrivateKeyPath("alice"))
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

		data, err := os.ReadFile(provider.PrivateKeyPath("alice"))
		require.NoError(t, err)
		block, _ := pem.Decode(data)
		require.NotNil(t, block)
		assert.Equal(t, "RSA PRIVATE KEY", block.Type)
	})

	t.Run("public key file is written on creation", func(t *testing.T) {
		provider := newTestKeyPairProvider(t, "")
		privateKey, err := provider.LoadOrCreate(ctx, "alice")
		require.NoError(t, err)

		data, err := os.ReadFile(provider.PublicKeyPath("alice"))
		require.NoError(t, err)
		publicKey, err := ParsePublicKey(data)
		require.NoError(t, err)
		assert.True(t, privateKey.PublicKey.Equal(publicKey))
	})

	t.Run("sealed with KMS", func(t *testing.T) {
		provider := newTestKeyPairProvider(t, generateLocalSecretsURI(t))

		created, err := provider.LoadOrCreate(ctx, "alice")
		require.NoError(t, err)

		data, err := os.ReadFile(provider.PrivateKeyPath("alice"))
		require.NoError(t, err)
		block, _ := pem.Decode(data)
		require.NotNil(t, block)
		assert.Equal(t, "CLENV SEALED PRIVATE KEY", block.Type)

		loaded, err := provider.Load(ctx, "alice")
		require.NoError(t, err)
		assert.True(t, created.Equal(loaded))
	})

	t.Run("sealed key without KMS configured", func(t *testing.T) {
		sealing := newTestKeyPairProvider(t, generateLocalSecretsURI(t))
		_, err := sealing.LoadOrCreate(ctx, "alice")
		require.NoError(t, err)

		plain := NewFileKeyPairProvider(KeyPairConfig{
			KeysDir: sealing.cfg.KeysDir,
			KeyBits: 2048,
		}, NewKMSService(), sealing.logger)

		_, err = plain.Load(ctx, "alice")
		assert.ErrorIs(t, err, cryptoDomain.ErrSealedKeyWithoutKMS)
	})

	t.Run("sealed key with the wrong KMS key", func(t *testing.T) {
		sealing := newTestKeyPairProvider(t, generateLocalSecretsURI(t))
		_, err := sealing.LoadOrCreate(ctx, "alice")
		require.NoError(t, err)

		other := NewFileKeyPairProvider(KeyPairConfig{
			KeysDir:   sealing.cfg.KeysDir,
			KeyBits:   2048,
			KMSKeyURI: generateLocalSecretsURI(t),
		}, NewKMSService(), sealing.logger)

		_, err = other.Load(ctx, "alice")
		assert.ErrorIs(t, err, cryptoDomain.ErrInvalidPrivateKey)
	})

	t.Run("invalid identities", func(t *testing.T) {
		provider := newTestKeyPairProvider(t, "")
		for _, identity := range []string{"", ".", "..", "../alice", "a/b", `a\b`} {
			_, err := provider.LoadOrCreate(ctx, identity)
			assert.ErrorIs(t, err, cryptoDomain.ErrInvalidIdentity, "identity %q", identity)
		}
	})
}

func TestFileKeyPairProvider_Load(t *testing.T) {
	ctx := context.Background()
	provider := newTestKeyPairProvider(t, "")

	t.Run("missing key", func(t *testing.T) {
		_, err := provider.Load(ctx, "nobody")
		assert.ErrorIs(t, err, cryptoDomain.ErrKeyPairNotFound)
	})

	t.Run("corrupted key file", func(t *testing.T) {
		require.NoError(t, os.MkdirAll(provider.cfg.KeysDir, 0o700))
		require.NoError(t, os.WriteFile(provider.PrivateKeyPath("broken"), []byte("nope"), 0o600))

		_, err := provider.Load(ctx, "broken")
		assert.ErrorIs(t, err, cryptoDomain.ErrInvalidPrivateKey)
	})
}

func TestFileKeyPairProvider_ExportPublicKey(t *testing.T) {
	provider := newTestKeyPairProvider(t, "")
	key := testRSAKey(t, 2)

	path, err := provider.ExportPublicKey("carol", &key.PublicKey)
	require.NoError(t, err)
	assert.Equal(t, provider.PublicKeyPath("carol"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	parsed, err := ParsePublicKey(data)
	require.NoError(t, err)
	assert.True(t, key.PublicKey.Equal(parsed))
}
