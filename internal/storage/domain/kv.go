// Package domain defines the namespaced key-value storage capability the vault persists through.
package domain

import "context"

// KV is one key and its value as stored in a namespace.
type KV struct {
	Key   string
	Value []byte
}

// KVStore is a durable key-value store partitioned into named namespaces.
//
// Keys iterate in ascending byte order. Implementations read the ambient transaction from the
// context, so a sequence of calls inside database.TxManager.WithTx commits or rolls back as one
// batch.
type KVStore interface {
	// CreateNamespace creates ns if it does not exist yet.
	CreateNamespace(ctx context.Context, ns string) error

	// ListNamespaces returns every namespace in ascending order.
	ListNamespaces(ctx context.Context) ([]string, error)

	// Put inserts or overwrites key in ns. Returns ErrNamespaceMissing if ns does not exist.
	Put(ctx context.Context, ns, key string, value []byte) error

	// Get returns the value of key. Returns ErrNamespaceMissing or ErrKeyMissing.
	Get(ctx context.Context, ns, key string) ([]byte, error)

	// Delete removes key. Returns ErrNamespaceMissing or ErrKeyMissing.
	Delete(ctx context.Context, ns, key string) error

	// Keys returns the keys of ns in ascending order.
	Keys(ctx context.Context, ns string) ([]string, error)

	// Scan returns every key and value of ns in ascending key order.
	Scan(ctx context.Context, ns string) ([]KV, error)
}
