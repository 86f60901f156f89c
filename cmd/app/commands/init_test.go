package commands

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	vaultMocks "github.com/Nickbot606/clenv/internal/vault/usecase/mocks"
)

func TestRunInit(t *testing.T) {
	ctx := context.Background()
	key := rsaKey(t)

	t.Run("bootstrap-empty-keyring", func(t *testing.T) {
		keyPairs := &MockKeyPairProvider{}
		manager := vaultMocks.NewMockAccessManager(t)

		keyPairs.On("LoadOrCreate", ctx, "alice").Return(key, nil)
		keyPairs.On("ExportPublicKey", "alice", &key.PublicKey).Return("/keys/alice_public.pem", nil)
		manager.On("ListPrincipals", ctx).Return([]string{}, nil)
		manager.On("Grant", ctx, "default", "alice", &key.PublicKey, "alice", key).Return(nil)

		var out bytes.Buffer
		err := RunInit(ctx, keyPairs, manager, discardLogger(), &out, "default", "alice")
		require.NoError(t, err)
		require.Contains(t, out.String(), "Vault initialized for alice")
		require.Contains(t, out.String(), "/keys/alice_public.pem")
		keyPairs.AssertExpectations(t)
	})

	t.Run("existing-vault-asks-for-grant", func(t *testing.T) {
		keyPairs := &MockKeyPairProvider{}
		manager := vaultMocks.NewMockAccessManager(t)

		keyPairs.On("LoadOrCreate", ctx, "bob").Return(key, nil)
		keyPairs.On("ExportPublicKey", "bob", &key.PublicKey).Return("/keys/bob_public.pem", nil)
		manager.On("ListPrincipals", ctx).Return([]string{"alice"}, nil)

		var out bytes.Buffer
		err := RunInit(ctx, keyPairs, manager, discardLogger(), &out, "default", "bob")
		require.NoError(t, err)
		require.Contains(t, out.String(), "clenv add bob /keys/bob_public.pem")
		manager.AssertNotCalled(t, "Grant")
	})

	t.Run("key-pair-error", func(t *testing.T) {
		keyPairs := &MockKeyPairProvider{}
		manager := vaultMocks.NewMockAccessManager(t)

		keyPairs.On("LoadOrCreate", ctx, "alice").Return(nil, errors.New("permission denied"))

		err := RunInit(ctx, keyPairs, manager, discardLogger(), &bytes.Buffer{}, "default", "alice")
		require.Error(t, err)
		require.Contains(t, err.Error(), "failed to load key pair")
	})
}
