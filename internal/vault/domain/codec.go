package domain

import (
	"encoding/binary"
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/Nickbot606/clenv/internal/errors"
)

// NonceSize is the fixed nonce length in the persisted layout.
const NonceSize = 12

// EncodeEntry serializes e into the persisted layout. All integers are big-endian uint32:
//
//	len | ciphertext
//	nonce (12 bytes)
//	count | count x (len | name | len | wrapped key)
//	len | extension
//
// Wrapped keys are written in ascending name order, so equal entries encode to equal bytes.
// An entry with no recipients or a nonce of the wrong size violates the entry invariants and
// makes EncodeEntry panic.
func EncodeEntry(e *EncryptedEntry) []byte {
	if len(e.WrappedKeys) == 0 {
		panic("vault: encoding entry with no recipients")
	}
	if len(e.Nonce) != NonceSize {
		panic(fmt.Sprintf("vault: encoding entry with %d-byte nonce", len(e.Nonce)))
	}

	names := e.Recipients()

	size := 4 + len(e.Ciphertext) + NonceSize + 4 + 4 + len(e.Extension)
	for _, name := range names {
		size += 8 + len(name) + len(e.WrappedKeys[name])
	}

	buf := make([]byte, 0, size)
	buf = appendBytes(buf, e.Ciphertext)
	buf = append(buf, e.Nonce...)
	buf = binary.BigEndian.AppendUint32(buf, uint32(len(names))) //nolint:gosec // bounded by map size
	for _, name := range names {
		buf = appendBytes(buf, []byte(name))
		buf = appendBytes(buf, e.WrappedKeys[name])
	}
	buf = appendBytes(buf, []byte(e.Extension))
	return buf
}

// DecodeEntry parses the persisted layout produced by EncodeEntry.
//
// Truncated input, trailing bytes, zero recipients, duplicate recipient names and names or
// extensions that are not valid UTF-8 are rejected with ErrMalformedEntry.
func DecodeEntry(data []byte) (*EncryptedEntry, error) {
	r := &entryReader{data: data}

	ciphertext, err := r.lengthPrefixed("ciphertext")
	if err != nil {
		return nil, err
	}

	nonce, err := r.fixed(NonceSize, "nonce")
	if err != nil {
		return nil, err
	}

	count, err := r.readUint32("recipient count")
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, errors.Wrap(ErrMalformedEntry, "entry has no recipients")
	}
	// every recipient needs at least two length prefixes
	if uint64(count)*8 > uint64(r.remaining()) {
		return nil, errors.Wrapf(ErrMalformedEntry, "recipient count %d exceeds input", count)
	}

	wrappedKeys := make(map[string][]byte, count)
	for i := uint32(0); i < count; i++ {
		name, err := r.utf8String("recipient name")
		if err != nil {
			return nil, err
		}
		wrapped, err := r.lengthPrefixed("wrapped key")
		if err != nil {
			return nil, err
		}
		if _, dup := wrappedKeys[name]; dup {
			return nil, errors.Wrapf(ErrMalformedEntry, "duplicate recipient %q", name)
		}
		wrappedKeys[name] = wrapped
	}

	extension, err := r.utf8String("extension")
	if err != nil {
		return nil, err
	}

	if r.remaining() != 0 {
		return nil, errors.Wrapf(ErrMalformedEntry, "%d trailing bytes", r.remaining())
	}

	return &EncryptedEntry{
		Ciphertext:  ciphertext,
		Nonce:       nonce,
		WrappedKeys: wrappedKeys,
		Extension:   extension,
	}, nil
}

func appendBytes(buf, b []byte) []byte {
	if uint64(len(b)) > math.MaxUint32 {
		panic("vault: field exceeds 4 GiB")
	}
	buf = binary.BigEndian.AppendUint32(buf, uint32(len(b))) //nolint:gosec // checked above
	return append(buf, b...)
}

// entryReader consumes the persisted layout front to back. Returned slices are copies.
type entryReader struct {
	data []byte
	off  int
}

func (r *entryReader) remaining() int {
	return len(r.data) - r.off
}

func (r *entryReader) fixed(n int, field string) ([]byte, error) {
	if r.remaining() < n {
		return nil, errors.Wrapf(ErrMalformedEntry, "truncated %s", field)
	}
	out := make([]byte, n)
	copy(out, r.data[r.off:r.off+n])
	r.off += n
	return out, nil
}

func (r *entryReader) readUint32(field string) (uint32, error) {
	if r.remaining() < 4 {
		return 0, errors.Wrapf(ErrMalformedEntry, "truncated %s length", field)
	}
	v := binary.BigEndian.Uint32(r.data[r.off:])
	r.off += 4
	return v, nil
}

func (r *entryReader) lengthPrefixed(field string) ([]byte, error) {
	n, err := r.readUint32(field)
	if err != nil {
		return nil, err
	}
	if uint64(n) > uint64(r.remaining()) {
		return nil, errors.Wrapf(ErrMalformedEntry, "truncated %s", field)
	}
	return r.fixed(int(n), field)
}

func (r *entryReader) utf8String(field string) (string, error) {
	b, err := r.lengthPrefixed(field)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", errors.Wrapf(ErrMalformedEntry, "%s is not valid utf-8", field)
	}
	return string(b), nil
}
