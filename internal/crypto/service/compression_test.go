package service

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	cryptoDomain "github.com/Nickbot606/clenv/internal/crypto/domain"
)

func TestZstdCompressor(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	compressor, err := NewZstdCompressor()
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, compressor.Close())
	}()

	testCases := []struct {
		name  string
		input []byte
	}{
		{"empty", []byte{}},
		{"single byte", []byte{0x00}},
		{"text", []byte("API_KEY=abc123\nDEBUG=false\n")},
		{"repetitive", bytes.Repeat([]byte("secret"), 10000)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			compressed := compressor.Compress(tc.input)
			assert.NotEmpty(t, compressed)

			out, err := compressor.Decompress(compressed)
			require.NoError(t, err)
			assert.Equal(t, tc.input, out)
		})
	}

	t.Run("repetitive input shrinks", func(t *testing.T) {
		input := bytes.Repeat([]byte("a"), 4096)
		assert.Less(t, len(compressor.Compress(input)), len(input))
	})

	t.Run("garbage input", func(t *testing.T) {
		_, err := compressor.Decompress([]byte("definitely not zstd"))
		assert.ErrorIs(t, err, cryptoDomain.ErrDecompressionFailed)
	})

	t.Run("truncated frame", func(t *testing.T) {
		compressed := compressor.Compress(bytes.Repeat([]byte("abc"), 1000))
		_, err := compressor.Decompress(compressed[:len(compressed)/2])
		assert.ErrorIs(t, err, cryptoDomain.ErrDecompressionFailed)
	})
}
