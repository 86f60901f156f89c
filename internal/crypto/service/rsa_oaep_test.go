package service

import (
	"crypto/rand"
	"crypto/rsa"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/Nickbot606/clenv/internal/crypto/domain"
	"github.com/Nickbot606/clenv/internal/errors"
)

func TestRSAOAEPWrapper(t *testing.T) {
	wrapper := NewRSAOAEPWrapper()
	alice := testRSAKey(t, 0)
	bob := testRSAKey(t, 1)

	contentKey := make([]byte, 32)
	_, err := rand.Read(contentKey)
	require.NoError(t, err)

	t.Run("wrap and unwrap", func(t *testing.T) {
		wrapped, err := wrapper.Wrap(contentKey, &alice.PublicKey)
		require.NoError(t, err)
		assert.Len(t, wrapped, alice.Size())

		unwrapped, err := wrapper.Unwrap(wrapped, alice)
		require.NoError(t, err)
		assert.Equal(t, contentKey, unwrapped)
	})

	t.Run("wrapping is randomized", func(t *testing.T) {
		w1, err := wrapper.Wrap(contentKey, &alice.PublicKey)
		require.NoError(t, err)
		w2, err := wrapper.Wrap(contentKey, &alice.PublicKey)
		require.NoError(t, err)
		assert.NotEqual(t, w1, w2)
	})

	t.Run("wrong private key", func(t *testing.T) {
		wrapped, err := wrapper.Wrap(contentKey, &alice.PublicKey)
		require.NoError(t, err)

		_, err = wrapper.Unwrap(wrapped, bob)
		assert.ErrorIs(t, err, cryptoDomain.ErrCryptoRSA)
		assert.ErrorIs(t, err, errors.ErrCrypto)
	})

	t.Run("corrupted wrapped key", func(t *testing.T) {
		wrapped, err := wrapper.Wrap(contentKey, &alice.PublicKey)
		require.NoError(t, err)
		wrapped[10] ^= 0xff

		_, err = wrapper.Unwrap(wrapped, alice)
		assert.ErrorIs(t, err, cryptoDomain.ErrCryptoRSA)
	})

	t.Run("nil keys", func(t *testing.T) {
		_, err := wrapper.Wrap(contentKey, nil)
		assert.ErrorIs(t, err, cryptoDomain.ErrCryptoRSA)

		_, err = wrapper.Unwrap([]byte{1}, nil)
		assert.ErrorIs(t, err, cryptoDomain.ErrCryptoRSA)
	})

	t.Run("weak public key", func(t *testing.T) {
		weak, err := rsa.GenerateKey(rand.Reader, 1024) //nolint:gosec // intentionally weak test key
		require.NoError(t, err)

		_, err = wrapper.Wrap(contentKey, &weak.PublicKey)
		assert.ErrorIs(t, err, cryptoDomain.ErrWeakKey)
	})
}
