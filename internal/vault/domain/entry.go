// Package domain defines the vault's core types: encrypted entries, principals and the
// binary codec entries are persisted with.
package domain

import (
	"crypto/rsa"
	"maps"
	"slices"
)

// KeyringNamespace is the reserved namespace holding principals' public keys.
const KeyringNamespace = "keyring"

// EncryptedEntry is a stored secret: a ciphertext sealed under a per-entry content key, and
// that content key wrapped once for every principal allowed to read it.
//
// Ciphertext and Nonce never change after creation. WrappedKeys is mutated by grant and
// revoke and is never empty while the entry exists.
type EncryptedEntry struct {
	Ciphertext  []byte
	Nonce       []byte
	WrappedKeys map[string][]byte
	Extension   string
}

// Recipients returns the names of the principals holding a wrapped key, sorted.
func (e *EncryptedEntry) Recipients() []string {
	return slices.Sorted(maps.Keys(e.WrappedKeys))
}

// HasRecipient reports whether principal holds a wrapped key for this entry.
func (e *EncryptedEntry) HasRecipient(principal string) bool {
	_, ok := e.WrappedKeys[principal]
	return ok
}

// Principal is a keyring member.
type Principal struct {
	Name      string
	PublicKey *rsa.PublicKey
}

// Secret is a decrypted entry.
type Secret struct {
	Data      []byte
	Extension string
}

// NamedEntry pairs an entry with its name within a namespace.
type NamedEntry struct {
	Name  string
	Entry *EncryptedEntry
}
