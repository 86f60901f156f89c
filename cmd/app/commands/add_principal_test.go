package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	cryptoService "github.com/Nickbot606/clenv/internal/crypto/service"
	vaultDomain "github.com/Nickbot606/clenv/internal/vault/domain"
	vaultMocks "github.com/Nickbot606/clenv/internal/vault/usecase/mocks"
)

func TestRunAddPrincipal(t *testing.T) {
	ctx := context.Background()
	key := rsaKey(t)

	pemBytes, err := cryptoService.EncodePublicKeyPEM(&key.PublicKey)
	require.NoError(t, err)
	publicKeyPath := filepath.Join(t.TempDir(), "bob_public.pem")
	require.NoError(t, os.WriteFile(publicKeyPath, pemBytes, 0o600))

	t.Run("success", func(t *testing.T) {
		keyPairs := &MockKeyPairProvider{}
		manager := vaultMocks.NewMockAccessManager(t)

		keyPairs.On("Load", ctx, "alice").Return(key, nil)
		manager.On("Grant", ctx, "default", "bob", mock.MatchedBy(key.PublicKey.Equal), "alice", key).
			Return(nil)

		var out bytes.Buffer
		err := RunAddPrincipal(ctx, keyPairs, manager, &out, "default", "alice", "bob", publicKeyPath)
		require.NoError(t, err)
		require.Contains(t, out.String(), "Granted bob access to namespace default")
	})

	t.Run("missing-file", func(t *testing.T) {
		err := RunAddPrincipal(ctx, &MockKeyPairProvider{}, vaultMocks.NewMockAccessManager(t),
			&bytes.Buffer{}, "default", "alice", "bob", filepath.Join(t.TempDir(), "nope.pem"))
		require.Error(t, err)
		require.Contains(t, err.Error(), "failed to read public key")
	})

	t.Run("invalid-key", func(t *testing.T) {
		badPath := filepath.Join(t.TempDir(), "bad.pem")
		require.NoError(t, os.WriteFile(badPath, []byte("not a key"), 0o600))

		err := RunAddPrincipal(ctx, &MockKeyPairProvider{}, vaultMocks.NewMockAccessManager(t),
			&bytes.Buffer{}, "default", "alice", "bob", badPath)
		require.Error(t, err)
		require.Contains(t, err.Error(), "failed to parse public key")
	})

	t.Run("not-authorized", func(t *testing.T) {
		keyPairs := &MockKeyPairProvider{}
		manager := vaultMocks.NewMockAccessManager(t)

		keyPairs.On("Load", ctx, "alice").Return(key, nil)
		manager.On("Grant", ctx, "default", "bob", mock.Anything, "alice", key).
			Return(vaultDomain.ErrNotAuthorized)

		err := RunAddPrincipal(ctx, keyPairs, manager, &bytes.Buffer{}, "default", "alice", "bob", publicKeyPath)
		require.ErrorIs(t, err, vaultDomain.ErrNotAuthorized)
	})
}
