package app

import (
	"fmt"

	"github.com/Nickbot606/clenv/internal/database"
	storageDomain "github.com/Nickbot606/clenv/internal/storage/domain"
	storageRepository "github.com/Nickbot606/clenv/internal/storage/repository"
)

// KVStore returns the namespaced key-value store for the configured database driver.
func (c *Container) KVStore() (storageDomain.KVStore, error) {
	var err error
	c.kvStoreInit.Do(func() {
		c.kvStore, err = c.initKVStore()
		if err != nil {
			c.initErrors["kvStore"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["kvStore"]; exists {
		return nil, storedErr
	}
	return c.kvStore, nil
}

func (c *Container) initKVStore() (storageDomain.KVStore, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for kv store: %w", err)
	}

	switch c.config.DBDriver {
	case database.DriverSQLite:
		return storageRepository.NewSQLiteKVRepository(db), nil
	case database.DriverPostgres:
		return storageRepository.NewPostgreSQLKVRepository(db), nil
	case database.DriverMySQL:
		return storageRepository.NewMySQLKVRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}
