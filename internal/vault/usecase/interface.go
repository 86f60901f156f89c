// Package usecase implements the vault's access-control protocol: storing entries for the
// whole keyring, retrieving them with a principal's private key, and granting or revoking
// principals' access to entries that already exist.
package usecase

import (
	"context"
	"crypto/rsa"

	vaultDomain "github.com/Nickbot606/clenv/internal/vault/domain"
)

// KeyringRepository defines the persistence operations on the keyring.
type KeyringRepository interface {
	Put(ctx context.Context, name string, publicKey *rsa.PublicKey) error
	Get(ctx context.Context, name string) (*vaultDomain.Principal, error)
	Delete(ctx context.Context, name string) error
	List(ctx context.Context) ([]vaultDomain.Principal, error)
	Names(ctx context.Context) ([]string, error)
}

// NamespaceRepository defines the persistence operations on encrypted entries.
type NamespaceRepository interface {
	CreateNamespaceIfAbsent(ctx context.Context, namespace string) error
	ListNamespaces(ctx context.Context) ([]string, error)
	Put(ctx context.Context, namespace, name string, entry *vaultDomain.EncryptedEntry) error
	Get(ctx context.Context, namespace, name string) (*vaultDomain.EncryptedEntry, error)
	Delete(ctx context.Context, namespace, name string) error
	List(ctx context.Context, namespace string) ([]string, error)
	Scan(ctx context.Context, namespace string) ([]vaultDomain.NamedEntry, error)
}

// AccessManager is the single entry point to the vault.
//
// Identities and private keys are always explicit parameters; the manager holds no notion of
// a current user.
type AccessManager interface {
	// Store encrypts data for every principal in the keyring and writes it under name,
	// overwriting any previous entry. Returns ErrKeyringEmpty when nobody could read it.
	Store(ctx context.Context, namespace, name string, data []byte, extension string) error

	// Retrieve decrypts the entry with principal's private key. Returns ErrNotAuthorized when
	// the entry holds no wrapped key for principal.
	//
	// Security Note: callers should zero Secret.Data after use with cryptoDomain.Zero.
	Retrieve(
		ctx context.Context,
		namespace, name, principal string,
		key *rsa.PrivateKey,
	) (*vaultDomain.Secret, error)

	// Grant registers newPrincipal in the keyring and gives it access to every entry of
	// namespace, using actor's access to recover each content key. The whole grant is one
	// transaction: an entry the actor cannot read aborts it with ErrNotAuthorized.
	Grant(
		ctx context.Context,
		namespace, newPrincipal string,
		newKey *rsa.PublicKey,
		actor string,
		actorKey *rsa.PrivateKey,
	) error

	// Revoke removes target from the keyring and strips its wrapped key from every entry of
	// namespace. Content keys are not rotated.
	Revoke(ctx context.Context, namespace, target string) error

	// ListNamespaces returns user namespaces in storage order.
	ListNamespaces(ctx context.Context) ([]string, error)

	// ListEntries returns the entry names of namespace in storage order.
	ListEntries(ctx context.Context, namespace string) ([]string, error)

	// DeleteEntry removes an entry. Returns ErrEntryMissing if it does not exist.
	DeleteEntry(ctx context.Context, namespace, name string) error

	// ListPrincipals returns the keyring's principal names.
	ListPrincipals(ctx context.Context) ([]string, error)
}
