// Package repository persists principals and encrypted entries through the KVStore capability.
package repository

import (
	"context"
	"crypto/rsa"

	cryptoService "github.com/Nickbot606/clenv/internal/crypto/service"
	"github.com/Nickbot606/clenv/internal/errors"
	storageDomain "github.com/Nickbot606/clenv/internal/storage/domain"
	vaultDomain "github.com/Nickbot606/clenv/internal/vault/domain"
)

// KeyringRepository stores principals' public keys as PKIX PEM values in the reserved
// keyring namespace.
type KeyringRepository struct {
	store storageDomain.KVStore
}

// Put registers or replaces the public key of name.
func (k *KeyringRepository) Put(ctx context.Context, name string, publicKey *rsa.PublicKey) error {
	encoded, err := cryptoService.EncodePublicKeyPEM(publicKey)
	if err != nil {
		return err
	}

	if err := k.store.CreateNamespace(ctx, vaultDomain.KeyringNamespace); err != nil {
		return err
	}
	return k.store.Put(ctx, vaultDomain.KeyringNamespace, name, encoded)
}

// Get returns the principal registered under name.
func (k *KeyringRepository) Get(ctx context.Context, name string) (*vaultDomain.Principal, error) {
	value, err := k.store.Get(ctx, vaultDomain.KeyringNamespace, name)
	if err != nil {
		if errors.Is(err, storageDomain.ErrKeyMissing) || errors.Is(err, storageDomain.ErrNamespaceMissing) {
			return nil, errors.Wrapf(vaultDomain.ErrPrincipalNotFound, "%q", name)
		}
		return nil, err
	}
	return decodePrincipal(name, value)
}

// Delete removes name from the keyring.
func (k *KeyringRepository) Delete(ctx context.Context, name string) error {
	err := k.store.Delete(ctx, vaultDomain.KeyringNamespace, name)
	if errors.Is(err, storageDomain.ErrKeyMissing) || errors.Is(err, storageDomain.ErrNamespaceMissing) {
		return errors.Wrapf(vaultDomain.ErrPrincipalNotFound, "%q", name)
	}
	return err
}

// List returns every principal in ascending name order. A vault without a keyring yields an
// empty list.
func (k *KeyringRepository) List(ctx context.Context) ([]vaultDomain.Principal, error) {
	kvs, err := k.store.Scan(ctx, vaultDomain.KeyringNamespace)
	if err != nil {
		if errors.Is(err, storageDomain.ErrNamespaceMissing) {
			return []vaultDomain.Principal{}, nil
		}
		return nil, err
	}

	principals := make([]vaultDomain.Principal, 0, len(kvs))
	for _, kv := range kvs {
		principal, err := decodePrincipal(kv.Key, kv.Value)
		if err != nil {
			return nil, err
		}
		principals = append(principals, *principal)
	}
	return principals, nil
}

// Names returns the registered principal names in ascending order.
func (k *KeyringRepository) Names(ctx context.Context) ([]string, error) {
	names, err := k.store.Keys(ctx, vaultDomain.KeyringNamespace)
	if errors.Is(err, storageDomain.ErrNamespaceMissing) {
		return []string{}, nil
	}
	return names, err
}

func decodePrincipal(name string, value []byte) (*vaultDomain.Principal, error) {
	publicKey, err := cryptoService.ParsePublicKey(value)
	if err != nil {
		return nil, errors.Wrapf(vaultDomain.ErrMalformedEntry, "keyring entry %q: %s", name, err.Error())
	}
	return &vaultDomain.Principal{Name: name, PublicKey: publicKey}, nil
}

// NewKeyringRepository creates a new KeyringRepository.
func NewKeyringRepository(store storageDomain.KVStore) *KeyringRepository {
	return &KeyringRepository{store: store}
}
