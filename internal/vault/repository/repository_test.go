package repository

import (
	"bytes"
	"context"
	"crypto/rand"
	"crypto/rsa"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	storageDomain "github.com/Nickbot606/clenv/internal/storage/domain"
	storageRepository "github.com/Nickbot606/clenv/internal/storage/repository"
	"github.com/Nickbot606/clenv/internal/testutil"
	vaultDomain "github.com/Nickbot606/clenv/internal/vault/domain"
)

func setupStore(t *testing.T) storageDomain.KVStore {
	t.Helper()
	db := testutil.SetupSQLiteDB(t)
	t.Cleanup(func() {
		testutil.TeardownDB(t, db)
	})
	return storageRepository.NewSQLiteKVRepository(db)
}

func generateKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return key
}

func testEntry(recipients ...string) *vaultDomain.EncryptedEntry {
	wrapped := make(map[string][]byte, len(recipients))
	for _, r := range recipients {
		wrapped[r] = []byte("wrapped-" + r)
	}
	return &vaultDomain.EncryptedEntry{
		Ciphertext:  []byte("ciphertext"),
		Nonce:       bytes.Repeat([]byte{1}, vaultDomain.NonceSize),
		WrappedKeys: wrapped,
		Extension:   "txt",
	}
}

func TestKeyringRepository(t *testing.T) {
	ctx := context.Background()
	store := setupStore(t)
	keyring := NewKeyringRepository(store)
	alice := generateKey(t)
	bob := generateKey(t)

	t.Run("empty keyring", func(t *testing.T) {
		principals, err := keyring.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, principals)

		names, err := keyring.Names(ctx)
		require.NoError(t, err)
		assert.Empty(t, names)

		_, err = keyring.Get(ctx, "alice")
		assert.ErrorIs(t, err, vaultDomain.ErrPrincipalNotFound)

		err = keyring.Delete(ctx, "alice")
		assert.ErrorIs(t, err, vaultDomain.ErrPrincipalNotFound)
	})

	t.Run("put and get", func(t *testing.T) {
		require.NoError(t, keyring.Put(ctx, "bob", &bob.PublicKey))
		require.NoError(t, keyring.Put(ctx, "alice", &alice.PublicKey))

		principal, err := keyring.Get(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, "alice", principal.Name)
		assert.True(t, alice.PublicKey.Equal(principal.PublicKey))
	})

	t.Run("values are PEM public keys", func(t *testing.T) {
		raw, err := store.Get(ctx, vaultDomain.KeyringNamespace, "alice")
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(raw, []byte("-----BEGIN PUBLIC KEY-----")))
	})

	t.Run("list in name order", func(t *testing.T) {
		principals, err := keyring.List(ctx)
		require.NoError(t, err)
		require.Len(t, principals, 2)
		assert.Equal(t, "alice", principals[0].Name)
		assert.Equal(t, "bob", principals[1].Name)

		names, err := keyring.Names(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"alice", "bob"}, names)
	})

	t.Run("put overwrites", func(t *testing.T) {
		require.NoError(t, keyring.Put(ctx, "alice", &bob.PublicKey))

		principal, err := keyring.Get(ctx, "alice")
		require.NoError(t, err)
		assert.True(t, bob.PublicKey.Equal(principal.PublicKey))
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, keyring.Delete(ctx, "alice"))

		_, err := keyring.Get(ctx, "alice")
		assert.ErrorIs(t, err, vaultDomain.ErrPrincipalNotFound)
	})

	t.Run("corrupted keyring value", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, vaultDomain.KeyringNamespace, "mallory", []byte("not a key")))

		_, err := keyring.Get(ctx, "mallory")
		assert.ErrorIs(t, err, vaultDomain.ErrMalformedEntry)

		_, err = keyring.List(ctx)
		assert.ErrorIs(t, err, vaultDomain.ErrMalformedEntry)
	})
}

func TestNamespaceRepository(t *testing.T) {
	ctx := context.Background()
	store := setupStore(t)
	namespaces := NewNamespaceRepository(store)

	t.Run("missing namespace", func(t *testing.T) {
		_, err := namespaces.Get(ctx, "prod", "db")
		assert.ErrorIs(t, err, storageDomain.ErrNamespaceMissing)

		_, err = namespaces.List(ctx, "prod")
		assert.ErrorIs(t, err, storageDomain.ErrNamespaceMissing)

		err = namespaces.Put(ctx, "prod", "db", testEntry("alice"))
		assert.ErrorIs(t, err, storageDomain.ErrNamespaceMissing)
	})

	t.Run("put get round trip", func(t *testing.T) {
		require.NoError(t, namespaces.CreateNamespaceIfAbsent(ctx, "prod"))
		require.NoError(t, namespaces.CreateNamespaceIfAbsent(ctx, "prod"))
		require.NoError(t, namespaces.Put(ctx, "prod", "db", testEntry("alice", "bob")))

		entry, err := namespaces.Get(ctx, "prod", "db")
		require.NoError(t, err)
		assert.Equal(t, testEntry("alice", "bob"), entry)
	})

	t.Run("missing entry", func(t *testing.T) {
		_, err := namespaces.Get(ctx, "prod", "nope")
		assert.ErrorIs(t, err, vaultDomain.ErrEntryMissing)

		err = namespaces.Delete(ctx, "prod", "nope")
		assert.ErrorIs(t, err, vaultDomain.ErrEntryMissing)
	})

	t.Run("list and scan in name order", func(t *testing.T) {
		require.NoError(t, namespaces.Put(ctx, "prod", "api", testEntry("alice")))

		names, err := namespaces.List(ctx, "prod")
		require.NoError(t, err)
		assert.Equal(t, []string{"api", "db"}, names)

		entries, err := namespaces.Scan(ctx, "prod")
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, "api", entries[0].Name)
		assert.Equal(t, []string{"alice", "bob"}, entries[1].Entry.Recipients())
	})

	t.Run("keyring namespace is hidden", func(t *testing.T) {
		require.NoError(t, store.CreateNamespace(ctx, vaultDomain.KeyringNamespace))
		require.NoError(t, namespaces.CreateNamespaceIfAbsent(ctx, "dev"))

		list, err := namespaces.ListNamespaces(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"dev", "prod"}, list)
	})

	t.Run("malformed stored bytes", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "prod", "broken", []byte{0, 0, 0, 9}))

		_, err := namespaces.Get(ctx, "prod", "broken")
		assert.ErrorIs(t, err, vaultDomain.ErrMalformedEntry)

		_, err = namespaces.Scan(ctx, "prod")
		assert.ErrorIs(t, err, vaultDomain.ErrMalformedEntry)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, namespaces.Delete(ctx, "prod", "broken"))
		require.NoError(t, namespaces.Delete(ctx, "prod", "api"))

		names, err := namespaces.List(ctx, "prod")
		require.NoError(t, err)
		assert.Equal(t, []string{"db"}, names)
	})
}
