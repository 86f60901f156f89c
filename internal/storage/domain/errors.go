package domain

import (
	"fmt"

	"github.com/Nickbot606/clenv/internal/errors"
)

// Storage error definitions.
var (
	// ErrNamespaceMissing indicates the namespace has never been created.
	ErrNamespaceMissing = errors.Wrap(errors.ErrNotFound, "namespace missing")

	// ErrKeyMissing indicates the key does not exist in an existing namespace.
	ErrKeyMissing = errors.Wrap(errors.ErrNotFound, "key missing")

	// ErrStorageIO indicates the underlying database failed.
	ErrStorageIO = errors.Wrap(errors.ErrStorage, "storage io failure")
)

// WrapIO marks a driver error as ErrStorageIO while keeping the driver error in the chain.
func WrapIO(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", message, ErrStorageIO, err)
}
