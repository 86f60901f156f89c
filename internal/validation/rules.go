// Package validation provides custom validation rules for the application.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	validation "github.com/jellydator/validation"

	apperrors "github.com/Nickbot606/clenv/internal/errors"
)

var (
	// principalNameRegex restricts principal names to characters safe in file names.
	principalNameRegex = regexp.MustCompile(`^[A-Za-z0-9._@-]+$`)
)

// WrapValidationError wraps validation errors as domain ErrInvalidInput
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// MaxBytes validates that a string is at most Max bytes long.
// validation.Length counts runes, which would let multi-byte names exceed storage limits.
type MaxBytes struct {
	Max int
}

// Validate checks the byte length of value.
func (m MaxBytes) Validate(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return validation.NewError("validation_max_bytes_type", "must be a string")
	}
	if len(s) > m.Max {
		return validation.NewError("validation_max_bytes", fmt.Sprintf("must be no more than %d bytes", m.Max))
	}
	return nil
}

// hasControlChar checks if string contains control characters
func hasControlChar(s string) bool {
	for _, r := range s {
		if unicode.IsControl(r) {
			return true
		}
	}
	return false
}

// NoControlChars validates that a string contains no control characters.
var NoControlChars = validation.NewStringRuleWithError(
	func(s string) bool {
		return !hasControlChar(s)
	},
	validation.NewError("validation_no_control_chars", "must not contain control characters"),
)

// ValidUTF8 validates that a string is valid UTF-8.
var ValidUTF8 = validation.NewStringRuleWithError(
	utf8.ValidString,
	validation.NewError("validation_utf8", "must be valid UTF-8"),
)

// PrincipalName validates the character set of a principal name.
var PrincipalName = validation.NewStringRuleWithError(
	func(s string) bool {
		return principalNameRegex.MatchString(s)
	},
	validation.NewError(
		"validation_principal_name",
		"must contain only letters, digits, '.', '_', '@' and '-'",
	),
)

// NoPathSeparators rejects strings containing a slash or a backslash.
var NoPathSeparators = validation.NewStringRuleWithError(
	func(s string) bool {
		return !strings.ContainsAny(s, `/\`)
	},
	validation.NewError("validation_no_path_separators", "must not contain path separators"),
)
