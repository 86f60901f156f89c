package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	vaultDomain "github.com/Nickbot606/clenv/internal/vault/domain"
	vaultMocks "github.com/Nickbot606/clenv/internal/vault/usecase/mocks"
)

func TestRunStore(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "db.env")
	require.NoError(t, os.WriteFile(path, []byte("DB_PASS=1234\n"), 0o600))

	t.Run("name-from-file", func(t *testing.T) {
		manager := vaultMocks.NewMockAccessManager(t)
		manager.On("Store", ctx, "default", "db", []byte("DB_PASS=1234\n"), "env").Return(nil)

		var out bytes.Buffer
		require.NoError(t, RunStore(ctx, manager, &out, "default", path, ""))
		require.Contains(t, out.String(), "Stored db in namespace default")
	})

	t.Run("explicit-name", func(t *testing.T) {
		manager := vaultMocks.NewMockAccessManager(t)
		manager.On("Store", ctx, "prod", "database", []byte("DB_PASS=1234\n"), "env").Return(nil)

		require.NoError(t, RunStore(ctx, manager, &bytes.Buffer{}, "prod", path, "database"))
	})

	t.Run("keyring-empty", func(t *testing.T) {
		manager := vaultMocks.NewMockAccessManager(t)
		manager.On("Store", ctx, "default", "db", []byte("DB_PASS=1234\n"), "env").
			Return(vaultDomain.ErrKeyringEmpty)

		err := RunStore(ctx, manager, &bytes.Buffer{}, "default", path, "")
		require.ErrorIs(t, err, vaultDomain.ErrKeyringEmpty)
	})

	t.Run("missing-file", func(t *testing.T) {
		err := RunStore(ctx, vaultMocks.NewMockAccessManager(t), &bytes.Buffer{},
			"default", filepath.Join(t.TempDir(), "nope.env"), "")
		require.Error(t, err)
		require.Contains(t, err.Error(), "failed to read")
	})
}
