package repository

import (
	"database/sql"
	"errors"

	storageDomain "github.com/Nickbot606/clenv/internal/storage/domain"
)

func checkNamespace(row *sql.Row) error {
	var found int
	if err := row.Scan(&found); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storageDomain.ErrNamespaceMissing
		}
		return storageDomain.WrapIO(err, "failed to look up namespace")
	}
	return nil
}

func checkDeleted(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return storageDomain.WrapIO(err, "failed to delete entry")
	}
	if affected == 0 {
		return storageDomain.ErrKeyMissing
	}
	return nil
}

func scanStrings(rows *sql.Rows, message string) (out []string, err error) {
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = storageDomain.WrapIO(closeErr, message)
		}
	}()

	out = make([]string, 0)
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, storageDomain.WrapIO(err, message)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, storageDomain.WrapIO(err, message)
	}
	return out, nil
}

func scanKVs(rows *sql.Rows) (out []storageDomain.KV, err error) {
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = storageDomain.WrapIO(closeErr, "failed to scan namespace")
		}
	}()

	out = make([]storageDomain.KV, 0)
	for rows.Next() {
		var kv storageDomain.KV
		if err := rows.Scan(&kv.Key, &kv.Value); err != nil {
			return nil, storageDomain.WrapIO(err, "failed to scan namespace")
		}
		kv.Value = nonNil(kv.Value)
		out = append(out, kv)
	}
	if err := rows.Err(); err != nil {
		return nil, storageDomain.WrapIO(err, "failed to scan namespace")
	}
	return out, nil
}

// nonNil normalizes the empty BLOB some drivers scan as nil.
func nonNil(b []byte) []byte {
	if b == nil {
		return []byte{}
	}
	return b
}
