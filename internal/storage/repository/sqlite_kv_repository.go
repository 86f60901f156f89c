// Package repository implements the KVStore capability for SQLite, PostgreSQL and MySQL.
// Every repository reads the ambient transaction with database.GetTx.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Nickbot606/clenv/internal/database"
	storageDomain "github.com/Nickbot606/clenv/internal/storage/domain"
)

// SQLiteKVRepository implements KVStore for SQLite databases.
type SQLiteKVRepository struct {
	db *sql.DB
}

// CreateNamespace inserts ns unless it already exists.
func (s *SQLiteKVRepository) CreateNamespace(ctx context.Context, ns string) error {
	querier := database.GetTx(ctx, s.db)

	query := `INSERT INTO kv_namespaces (name) VALUES (?) ON CONFLICT (name) DO NOTHING`

	if _, err := querier.ExecContext(ctx, query, ns); err != nil {
		return storageDomain.WrapIO(err, "failed to create namespace")
	}
	return nil
}

// ListNamespaces returns all namespace names in ascending order.
func (s *SQLiteKVRepository) ListNamespaces(ctx context.Context) ([]string, error) {
	querier := database.GetTx(ctx, s.db)

	query := `SELECT name FROM kv_namespaces ORDER BY name ASC`

	rows, err := querier.QueryContext(ctx, query)
	if err != nil {
		return nil, storageDomain.WrapIO(err, "failed to list namespaces")
	}
	return scanStrings(rows, "failed to list namespaces")
}

// Put inserts or replaces the value stored under key.
func (s *SQLiteKVRepository) Put(ctx context.Context, ns, key string, value []byte) error {
	if err := s.requireNamespace(ctx, ns); err != nil {
		return err
	}

	querier := database.GetTx(ctx, s.db)

	query := `INSERT INTO kv_entries (ns, entry_key, entry_value) VALUES (?, ?, ?)
			  ON CONFLICT (ns, entry_key)
			  DO UPDATE SET entry_value = excluded.entry_value, updated_at = CURRENT_TIMESTAMP`

	if _, err := querier.ExecContext(ctx, query, ns, key, value); err != nil {
		return storageDomain.WrapIO(err, "failed to put entry")
	}
	return nil
}

// Get returns the value stored under key.
func (s *SQLiteKVRepository) Get(ctx context.Context, ns, key string) ([]byte, error) {
	querier := database.GetTx(ctx, s.db)

	query := `SELECT entry_value FROM kv_entries WHERE ns = ? AND entry_key = ?`

	var value []byte
	err := querier.QueryRowContext(ctx, query, ns, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			if nsErr := s.requireNamespace(ctx, ns); nsErr != nil {
				return nil, nsErr
			}
			return nil, storageDomain.ErrKeyMissing
		}
		return nil, storageDomain.WrapIO(err, "failed to get entry")
	}
	return nonNil(value), nil
}

// Delete removes key from ns.
func (s *SQLiteKVRepository) Delete(ctx context.Context, ns, key string) error {
	if err := s.requireNamespace(ctx, ns); err != nil {
		return err
	}

	querier := database.GetTx(ctx, s.db)

	query := `DELETE FROM kv_entries WHERE ns = ? AND entry_key = ?`

	result, err := querier.ExecContext(ctx, query, ns, key)
	if err != nil {
		return storageDomain.WrapIO(err, "failed to delete entry")
	}
	return checkDeleted(result)
}

// Keys returns the keys of ns in ascending order.
func (s *SQLiteKVRepository) Keys(ctx context.Context, ns string) ([]string, error) {
	if err := s.requireNamespace(ctx, ns); err != nil {
		return nil, err
	}

	querier := database.GetTx(ctx, s.db)

	query := `SELECT entry_key FROM kv_entries WHERE ns = ? ORDER BY entry_key ASC`

	rows, err := querier.QueryContext(ctx, query, ns)
	if err != nil {
		return nil, storageDomain.WrapIO(err, "failed to list keys")
	}
	return scanStrings(rows, "failed to list keys")
}

// Scan returns the keys and values of ns in ascending key order.
func (s *SQLiteKVRepository) Scan(ctx context.Context, ns string) ([]storageDomain.KV, error) {
	if err := s.requireNamespace(ctx, ns); err != nil {
		return nil, err
	}

	querier := database.GetTx(ctx, s.db)

	query := `SELECT entry_key, entry_value FROM kv_entries WHERE ns = ? ORDER BY entry_key ASC`

	rows, err := querier.QueryContext(ctx, query, ns)
	if err != nil {
		return nil, storageDomain.WrapIO(err, "failed to scan namespace")
	}
	return scanKVs(rows)
}

func (s *SQLiteKVRepository) requireNamespace(ctx context.Context, ns string) error {
	querier := database.GetTx(ctx, s.db)

	query := `SELECT 1 FROM kv_namespaces WHERE name = ?`

	return checkNamespace(querier.QueryRowContext(ctx, query, ns))
}

// NewSQLiteKVRepository creates a new SQLite KVStore repository instance.
func NewSQLiteKVRepository(db *sql.DB) *SQLiteKVRepository {
	return &SQLiteKVRepository{db: db}
}
