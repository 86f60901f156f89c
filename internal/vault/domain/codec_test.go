package domain

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nickbot606/clenv/internal/errors"
)

func testEntry() *EncryptedEntry {
	return &EncryptedEntry{
		Ciphertext: []byte("ciphertext-bytes"),
		Nonce:      bytes.Repeat([]byte{0x07}, NonceSize),
		WrappedKeys: map[string][]byte{
			"bob":   []byte("wrapped-for-bob"),
			"alice": []byte("wrapped-for-alice"),
		},
		Extension: "env",
	}
}

// u32 and field build persisted bytes by hand.
func u32(n int) []byte {
	return binary.BigEndian.AppendUint32(nil, uint32(n)) //nolint:gosec // test helper
}

func field(b string) []byte {
	return append(u32(len(b)), b...)
}

func concat(parts ...[]byte) []byte {
	return bytes.Join(parts, nil)
}

func TestEncodeEntry_Layout(t *testing.T) {
	entry := &EncryptedEntry{
		Ciphertext:  []byte{0xAA, 0xBB},
		Nonce:       make([]byte, NonceSize),
		WrappedKeys: map[string][]byte{"z": {0x01}, "a": {0x02, 0x03}},
		Extension:   "",
	}

	want := concat(
		field("\xAA\xBB"),
		make([]byte, NonceSize),
		u32(2),
		field("a"), field("\x02\x03"),
		field("z"), field("\x01"),
		field(""),
	)
	assert.Equal(t, want, EncodeEntry(entry))
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	t.Run("decode then encode is byte exact", func(t *testing.T) {
		encoded := EncodeEntry(testEntry())

		decoded, err := DecodeEntry(encoded)
		require.NoError(t, err)
		assert.Equal(t, testEntry(), decoded)
		assert.Equal(t, encoded, EncodeEntry(decoded))
	})

	t.Run("encoding is independent of map insertion order", func(t *testing.T) {
		a := testEntry()
		b := testEntry()
		b.WrappedKeys = map[string][]byte{}
		for _, name := range []string{"bob", "alice"} {
			b.WrappedKeys[name] = a.WrappedKeys[name]
		}
		assert.Equal(t, EncodeEntry(a), EncodeEntry(b))
	})

	t.Run("empty ciphertext and extension", func(t *testing.T) {
		entry := &EncryptedEntry{
			Ciphertext:  []byte{},
			Nonce:       make([]byte, NonceSize),
			WrappedKeys: map[string][]byte{"alice": {}},
		}
		decoded, err := DecodeEntry(EncodeEntry(entry))
		require.NoError(t, err)
		assert.Empty(t, decoded.Ciphertext)
		assert.Empty(t, decoded.Extension)
		assert.True(t, decoded.HasRecipient("alice"))
	})

	t.Run("decoded slices do not alias the input", func(t *testing.T) {
		encoded := EncodeEntry(testEntry())
		decoded, err := DecodeEntry(encoded)
		require.NoError(t, err)

		for i := range encoded {
			encoded[i] = 0
		}
		assert.Equal(t, testEntry(), decoded)
	})
}

func TestEncodeEntry_Panics(t *testing.T) {
	t.Run("no recipients", func(t *testing.T) {
		entry := testEntry()
		entry.WrappedKeys = map[string][]byte{}
		assert.Panics(t, func() { EncodeEntry(entry) })
	})

	t.Run("wrong nonce size", func(t *testing.T) {
		entry := testEntry()
		entry.Nonce = []byte{1, 2, 3}
		assert.Panics(t, func() { EncodeEntry(entry) })
	})
}

func TestDecodeEntry_Malformed(t *testing.T) {
	nonce := make([]byte, NonceSize)

	tests := []struct {
		name string
		data []byte
	}{
		{name: "empty input", data: []byte{}},
		{name: "short length prefix", data: []byte{0, 0}},
		{name: "ciphertext longer than input", data: concat(u32(100), []byte("abc"))},
		{name: "truncated nonce", data: concat(field("ct"), nonce[:5])},
		{name: "missing recipient count", data: concat(field("ct"), nonce)},
		{name: "zero recipients", data: concat(field("ct"), nonce, u32(0), field(""))},
		{name: "huge recipient count", data: concat(field("ct"), nonce, u32(1<<30), field("a"))},
		{
			name: "truncated wrapped key",
			data: concat(field("ct"), nonce, u32(1), field("alice"), u32(10), []byte("abc")),
		},
		{
			name: "duplicate recipient",
			data: concat(field("ct"), nonce, u32(2), field("alice"), field("k1"), field("alice"), field("k2"), field("")),
		},
		{
			name: "invalid utf-8 name",
			data: concat(field("ct"), nonce, u32(1), field("\xff\xfe"), field("k"), field("")),
		},
		{
			name: "invalid utf-8 extension",
			data: concat(field("ct"), nonce, u32(1), field("alice"), field("k"), field("\xc3\x28")),
		},
		{
			name: "missing extension",
			data: concat(field("ct"), nonce, u32(1), field("alice"), field("k")),
		},
		{
			name: "trailing bytes",
			data: concat(EncodeEntry(testEntry()), []byte{0}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry, err := DecodeEntry(tt.data)
			assert.Nil(t, entry)
			assert.ErrorIs(t, err, ErrMalformedEntry)
			assert.ErrorIs(t, err, errors.ErrSerialization)
		})
	}
}

func TestDecodeEntry_EveryTruncation(t *testing.T) {
	encoded := EncodeEntry(testEntry())
	for n := 0; n < len(encoded); n++ {
		_, err := DecodeEntry(encoded[:n])
		require.ErrorIs(t, err, ErrMalformedEntry, "prefix of %d bytes", n)
	}
}

func TestEncryptedEntry_Recipients(t *testing.T) {
	entry := testEntry()
	assert.Equal(t, []string{"alice", "bob"}, entry.Recipients())
	assert.True(t, entry.HasRecipient("bob"))
	assert.False(t, entry.HasRecipient("carol"))
}
