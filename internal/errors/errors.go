// Package errors provides the error categories shared by every vault layer.
// Domain packages build their specific sentinels on top of these categories with Wrap,
// so callers can match either the precise condition or its broad class with errors.Is.
package errors

import (
	"errors"
	"fmt"
)

// Error categories used across all domain modules.
var (
	// ErrNotFound indicates the requested resource does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates the operation would violate a consistency rule of existing data.
	ErrConflict = errors.New("conflict")

	// ErrInvalidInput indicates the input data is invalid or fails validation.
	ErrInvalidInput = errors.New("invalid input")

	// ErrForbidden indicates the acting principal is not allowed to perform the operation.
	ErrForbidden = errors.New("forbidden")

	// ErrCrypto indicates an encryption, decryption or key wrapping failure.
	ErrCrypto = errors.New("crypto failure")

	// ErrStorage indicates the underlying storage engine failed.
	ErrStorage = errors.New("storage failure")

	// ErrSerialization indicates persisted bytes could not be decoded.
	ErrSerialization = errors.New("serialization failure")
)

// New creates a new error with the given message.
// This is a convenience wrapper around errors.New for consistency.
func New(message string) error {
	return errors.New(message)
}

// Wrap wraps an error with additional context while preserving the error chain.
// Use this to add context at each layer without losing the original error type.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf is Wrap with a formatted message.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is reports whether any error in err's tree matches target.
// This is a convenience wrapper around errors.Is.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
// This is a convenience wrapper around errors.As.
func As(err error, target any) bool {
	return errors.As(err, target)
}
