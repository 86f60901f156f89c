package domain

import "crypto/rsa"

// Recipient is a principal an entry is encrypted for.
type Recipient struct {
	Name      string
	PublicKey *rsa.PublicKey
}

// Envelope is the output of encrypting one payload for a set of recipients.
//
// ContentKey is returned only so a caller can wrap it for further recipients while the
// envelope is still in hand; it is never persisted and must be zeroed with Zero after use.
type Envelope struct {
	Ciphertext  []byte
	Nonce       []byte
	WrappedKeys map[string][]byte
	ContentKey  []byte
}
