package repository

import (
	"context"

	"github.com/Nickbot606/clenv/internal/errors"
	storageDomain "github.com/Nickbot606/clenv/internal/storage/domain"
	vaultDomain "github.com/Nickbot606/clenv/internal/vault/domain"
)

// NamespaceRepository stores encrypted entries, serialized with the entry codec, in user
// namespaces.
type NamespaceRepository struct {
	store storageDomain.KVStore
}

// CreateNamespaceIfAbsent creates namespace on first use.
func (n *NamespaceRepository) CreateNamespaceIfAbsent(ctx context.Context, namespace string) error {
	return n.store.CreateNamespace(ctx, namespace)
}

// ListNamespaces returns user namespaces in ascending order; the keyring is hidden.
func (n *NamespaceRepository) ListNamespaces(ctx context.Context) ([]string, error) {
	all, err := n.store.ListNamespaces(ctx)
	if err != nil {
		return nil, err
	}

	namespaces := make([]string, 0, len(all))
	for _, ns := range all {
		if ns != vaultDomain.KeyringNamespace {
			namespaces = append(namespaces, ns)
		}
	}
	return namespaces, nil
}

// Put writes entry under name, overwriting any previous entry.
func (n *NamespaceRepository) Put(
	ctx context.Context,
	namespace, name string,
	entry *vaultDomain.EncryptedEntry,
) error {
	return n.store.Put(ctx, namespace, name, vaultDomain.EncodeEntry(entry))
}

// Get reads and decodes the entry stored under name.
// Returns ErrNamespaceMissing, ErrEntryMissing or ErrMalformedEntry.
func (n *NamespaceRepository) Get(
	ctx context.Context,
	namespace, name string,
) (*vaultDomain.EncryptedEntry, error) {
	value, err := n.store.Get(ctx, namespace, name)
	if err != nil {
		if errors.Is(err, storageDomain.ErrKeyMissing) {
			return nil, errors.Wrapf(vaultDomain.ErrEntryMissing, "%s/%s", namespace, name)
		}
		return nil, err
	}

	entry, err := vaultDomain.DecodeEntry(value)
	if err != nil {
		return nil, errors.Wrapf(err, "%s/%s", namespace, name)
	}
	return entry, nil
}

// Delete removes the entry stored under name.
func (n *NamespaceRepository) Delete(ctx context.Context, namespace, name string) error {
	err := n.store.Delete(ctx, namespace, name)
	if errors.Is(err, storageDomain.ErrKeyMissing) {
		return errors.Wrapf(vaultDomain.ErrEntryMissing, "%s/%s", namespace, name)
	}
	return err
}

// List returns the entry names of namespace in ascending order.
func (n *NamespaceRepository) List(ctx context.Context, namespace string) ([]string, error) {
	return n.store.Keys(ctx, namespace)
}

// Scan decodes every entry of namespace in ascending name order.
func (n *NamespaceRepository) Scan(ctx context.Context, namespace string) ([]vaultDomain.NamedEntry, error) {
	kvs, err := n.store.Scan(ctx, namespace)
	if err != nil {
		return nil, err
	}

	entries := make([]vaultDomain.NamedEntry, 0, len(kvs))
	for _, kv := range kvs {
		entry, err := vaultDomain.DecodeEntry(kv.Value)
		if err != nil {
			return nil, errors.Wrapf(err, "%s/%s", namespace, kv.Key)
		}
		entries = append(entries, vaultDomain.NamedEntry{Name: kv.Key, Entry: entry})
	}
	return entries, nil
}

// NewNamespaceRepository creates a new NamespaceRepository.
func NewNamespaceRepository(store storageDomain.KVStore) *NamespaceRepository {
	return &NamespaceRepository{store: store}
}
