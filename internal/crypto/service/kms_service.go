package service

import (
	"context"
	"fmt"
	"strings"

	"gocloud.dev/secrets"

	cryptoDomain "github.com/Nickbot606/clenv/internal/crypto/domain"

	// Keeper drivers selectable through KMS_KEY_URI.
	_ "gocloud.dev/secrets/awskms"
	_ "gocloud.dev/secrets/azurekeyvault"
	_ "gocloud.dev/secrets/gcpkms"
	_ "gocloud.dev/secrets/hashivault"
	_ "gocloud.dev/secrets/localsecrets"
)

type kmsService struct{}

// NewKMSService returns a KMSService backed by gocloud.dev/secrets keepers.
func NewKMSService() KMSService {
	return &kmsService{}
}

// OpenKeeper opens the keeper that seals private keys at rest. The URI scheme picks the
// provider: gcpkms://, awskms://, azurekeyvault://, hashivault:// or base64key:// for local use.
func (k *kmsService) OpenKeeper(ctx context.Context, keyURI string) (cryptoDomain.KMSKeeper, error) {
	if keyURI == "" {
		return nil, fmt.Errorf("failed to open KMS keeper: empty key URI")
	}
	keeper, err := secrets.OpenKeeper(ctx, keyURI)
	if err != nil {
		return nil, fmt.Errorf("failed to open KMS keeper %q: %w", redactKeyURI(keyURI), err)
	}
	return keeper, nil
}

// redactKeyURI keeps the scheme of a key URI so base64key:// material never reaches logs.
func redactKeyURI(keyURI string) string {
	if i := strings.Index(keyURI, "://"); i >= 0 {
		return keyURI[:i+3] + "..."
	}
	return "..."
}
