package domain

import (
	"github.com/Nickbot606/clenv/internal/errors"
)

// Vault error definitions.
var (
	// ErrPrincipalNotFound indicates the principal is not in the keyring.
	ErrPrincipalNotFound = errors.Wrap(errors.ErrNotFound, "principal not found")

	// ErrKeyringEmpty indicates an entry cannot be stored because nobody could read it.
	ErrKeyringEmpty = errors.Wrap(errors.ErrNotFound, "keyring is empty")

	// ErrNotAuthorized indicates the principal holds no wrapped key for the entry.
	ErrNotAuthorized = errors.Wrap(errors.ErrForbidden, "principal not authorized for entry")

	// ErrEntryMissing indicates the entry does not exist in the namespace.
	ErrEntryMissing = errors.Wrap(errors.ErrNotFound, "entry missing")

	// ErrMalformedEntry indicates persisted entry bytes could not be decoded.
	ErrMalformedEntry = errors.Wrap(errors.ErrSerialization, "malformed entry")

	// ErrReservedNamespace indicates a user operation addressed the keyring namespace.
	ErrReservedNamespace = errors.Wrap(errors.ErrInvalidInput, "namespace is reserved")

	// ErrLastRecipient indicates a revoke would leave an entry nobody can read.
	ErrLastRecipient = errors.Wrap(errors.ErrConflict, "cannot revoke the last recipient of an entry")

	// ErrInvalidName indicates a namespace, entry or principal name breaks the naming rules.
	ErrInvalidName = errors.Wrap(errors.ErrInvalidInput, "invalid name")
)
