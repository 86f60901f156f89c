package app

import (
	"fmt"

	vaultRepository "github.com/Nickbot606/clenv/internal/vault/repository"
	vaultUseCase "github.com/Nickbot606/clenv/internal/vault/usecase"
)

// KeyringRepository returns the keyring repository.
func (c *Container) KeyringRepository() (vaultUseCase.KeyringRepository, error) {
	var err error
	c.keyringRepositoryInit.Do(func() {
		c.keyringRepository, err = c.initKeyringRepository()
		if err != nil {
			c.initErrors["keyringRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["keyringRepository"]; exists {
		return nil, storedErr
	}
	return c.keyringRepository, nil
}

// NamespaceRepository returns the encrypted entry repository.
func (c *Container) NamespaceRepository() (vaultUseCase.NamespaceRepository, error) {
	var err error
	c.namespaceRepositoryInit.Do(func() {
		c.namespaceRepository, err = c.initNamespaceRepository()
		if err != nil {
			c.initErrors["namespaceRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["namespaceRepository"]; exists {
		return nil, storedErr
	}
	return c.namespaceRepository, nil
}

// AccessManager returns the vault access manager.
func (c *Container) AccessManager() (vaultUseCase.AccessManager, error) {
	var err error
	c.accessManagerInit.Do(func() {
		c.accessManager, err = c.initAccessManager()
		if err != nil {
			c.initErrors["accessManager"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["accessManager"]; exists {
		return nil, storedErr
	}
	return c.accessManager, nil
}

func (c *Container) initKeyringRepository() (vaultUseCase.KeyringRepository, error) {
	store, err := c.KVStore()
	if err != nil {
		return nil, fmt.Errorf("failed to get kv store for keyring repository: %w", err)
	}
	return vaultRepository.NewKeyringRepository(store), nil
}

func (c *Container) initNamespaceRepository() (vaultUseCase.NamespaceRepository, error) {
	store, err := c.KVStore()
	if err != nil {
		return nil, fmt.Errorf("failed to get kv store for namespace repository: %w", err)
	}
	return vaultRepository.NewNamespaceRepository(store), nil
}

func (c *Container) initAccessManager() (vaultUseCase.AccessManager, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for access manager: %w", err)
	}

	keyring, err := c.KeyringRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get keyring repository for access manager: %w", err)
	}

	namespaces, err := c.NamespaceRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get namespace repository for access manager: %w", err)
	}

	envelope, err := c.EnvelopeCipher()
	if err != nil {
		return nil, fmt.Errorf("failed to get envelope cipher for access manager: %w", err)
	}

	baseManager := vaultUseCase.NewAccessManager(txManager, keyring, namespaces, envelope, c.Logger())

	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for access manager: %w", err)
		}
		return vaultUseCase.NewAccessManagerWithMetrics(baseManager, businessMetrics), nil
	}

	return baseManager, nil
}
