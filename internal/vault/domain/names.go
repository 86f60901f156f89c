package domain

import (
	validation "github.com/jellydator/validation"

	"github.com/Nickbot606/clenv/internal/errors"
	customValidation "github.com/Nickbot606/clenv/internal/validation"
)

// MaxNameBytes is the longest namespace, entry or principal name accepted.
const MaxNameBytes = 255

var nameRules = []validation.Rule{
	validation.Required,
	customValidation.MaxBytes{Max: MaxNameBytes},
	customValidation.ValidUTF8,
	customValidation.NoControlChars,
}

// ValidateNamespace checks a user namespace name. The keyring namespace is rejected with
// ErrReservedNamespace.
func ValidateNamespace(namespace string) error {
	if err := validation.Validate(namespace, nameRules...); err != nil {
		return errors.Wrapf(ErrInvalidName, "namespace: %s", err.Error())
	}
	if namespace == KeyringNamespace {
		return errors.Wrapf(ErrReservedNamespace, "%q", namespace)
	}
	return nil
}

// ValidateEntryName checks an entry name.
func ValidateEntryName(name string) error {
	if err := validation.Validate(name, nameRules...); err != nil {
		return errors.Wrapf(ErrInvalidName, "entry: %s", err.Error())
	}
	return nil
}

// ValidatePrincipalName checks a principal name.
func ValidatePrincipalName(name string) error {
	rules := append(append([]validation.Rule{}, nameRules...), customValidation.PrincipalName)
	if err := validation.Validate(name, rules...); err != nil {
		return errors.Wrapf(ErrInvalidName, "principal: %s", err.Error())
	}
	return nil
}

// ValidateExtension checks a file-type hint. An empty extension is valid; path separators are
// not, since the extension ends up in file names on dump.
func ValidateExtension(extension string) error {
	err := validation.Validate(extension,
		customValidation.MaxBytes{Max: MaxNameBytes},
		customValidation.ValidUTF8,
		customValidation.NoControlChars,
		customValidation.NoPathSeparators,
	)
	if err != nil {
		return errors.Wrapf(ErrInvalidName, "extension: %s", err.Error())
	}
	return nil
}
