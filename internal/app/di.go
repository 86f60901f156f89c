// Package app provides dependency injection container for assembling application components.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/Nickbot606/clenv/internal/config"
	cryptoService "github.com/Nickbot606/clenv/internal/crypto/service"
	"github.com/Nickbot606/clenv/internal/database"
	"github.com/Nickbot606/clenv/internal/metrics"
	storageDomain "github.com/Nickbot606/clenv/internal/storage/domain"
	vaultUseCase "github.com/Nickbot606/clenv/internal/vault/usecase"
)

// Container holds all application dependencies and provides methods to access them.
// Components are created on first access.
type Container struct {
	// Configuration
	config    *config.Config
	logOutput io.Writer

	// Infrastructure
	logger          *slog.Logger
	db              *sql.DB
	metricsProvider *metrics.Provider
	businessMetrics metrics.BusinessMetrics

	// Managers
	txManager database.TxManager

	// Storage
	kvStore storageDomain.KVStore

	// Crypto
	compressor      *cryptoService.ZstdCompressor
	envelopeCipher  cryptoService.EnvelopeCipher
	kmsService      cryptoService.KMSService
	keyPairProvider cryptoService.KeyPairProvider

	// Repositories
	keyringRepository   vaultUseCase.KeyringRepository
	namespaceRepository vaultUseCase.NamespaceRepository

	// Use Cases
	accessManager vaultUseCase.AccessManager

	// Initialization flags and mutex for thread-safety
	mu                      sync.Mutex
	loggerInit              sync.Once
	dbInit                  sync.Once
	txManagerInit           sync.Once
	metricsProviderInit     sync.Once
	businessMetricsInit     sync.Once
	kvStoreInit             sync.Once
	compressorInit          sync.Once
	envelopeCipherInit      sync.Once
	kmsServiceInit          sync.Once
	keyPairProviderInit     sync.Once
	keyringRepositoryInit   sync.Once
	namespaceRepositoryInit sync.Once
	accessManagerInit       sync.Once
	initErrors              map[string]error
}

// NewContainer creates a new dependency injection container with the provided configuration.
// Logs are written to stderr so command output on stdout stays clean.
func NewContainer(cfg *config.Config) *Container {
	return &Container{
		config:     cfg,
		logOutput:  os.Stderr,
		initErrors: make(map[string]error),
	}
}

// Config returns the application configuration.
func (c *Container) Config() *config.Config {
	return c.config
}

// Logger returns the configured logger instance.
func (c *Container) Logger() *slog.Logger {
	c.loggerInit.Do(func() {
		c.logger = c.initLogger()
	})
	return c.logger
}

// DB returns the database connection. SQLite databases are migrated on first access.
func (c *Container) DB() (*sql.DB, error) {
	var err error
	c.dbInit.Do(func() {
		c.db, err = c.initDB()
		if err != nil {
			c.initErrors["db"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["db"]; exists {
		return nil, storedErr
	}
	return c.db, nil
}

// TxManager returns the transaction manager.
func (c *Container) TxManager() (database.TxManager, error) {
	var err error
	c.txManagerInit.Do(func() {
		c.txManager, err = c.initTxManager()
		if err != nil {
			c.initErrors["txManager"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["txManager"]; exists {
		return nil, storedErr
	}
	return c.txManager, nil
}

// MetricsProvider returns the metrics provider.
func (c *Container) MetricsProvider() (*metrics.Provider, error) {
	var err error
	c.metricsProviderInit.Do(func() {
		c.metricsProvider, err = metrics.NewProvider(c.config.MetricsTextfile)
		if err != nil {
			c.initErrors["metricsProvider"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["metricsProvider"]; exists {
		return nil, storedErr
	}
	return c.metricsProvider, nil
}

// BusinessMetrics returns the business metrics recorder, a no-op when metrics are disabled.
func (c *Container) BusinessMetrics() (metrics.BusinessMetrics, error) {
	var err error
	c.businessMetricsInit.Do(func() {
		c.businessMetrics, err = c.initBusinessMetrics()
		if err != nil {
			c.initErrors["businessMetrics"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["businessMetrics"]; exists {
		return nil, storedErr
	}
	return c.businessMetrics, nil
}

// Shutdown releases every initialized resource and flushes metrics.
func (c *Container) Shutdown(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var shutdownErrors []error

	if c.metricsProvider != nil {
		if err := c.metricsProvider.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics provider shutdown: %w", err))
		}
	}

	if c.compressor != nil {
		if err := c.compressor.Close(); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("compressor close: %w", err))
		}
	}

	if c.db != nil {
		if err := c.db.Close(); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("database close: %w", err))
		}
	}

	if len(shutdownErrors) > 0 {
		return fmt.Errorf("shutdown errors: %w", errors.Join(shutdownErrors...))
	}

	return nil
}

// initLogger creates a JSON logger at the configured level.
func (c *Container) initLogger() *slog.Logger {
	var logLevel slog.Level
	switch c.config.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelWarn
	}

	handler := slog.NewJSONHandler(c.logOutput, &slog.HandlerOptions{
		Level: logLevel,
	})

	return slog.New(handler)
}

// initDB connects to the database. A local SQLite vault is created and migrated on demand;
// server databases are migrated explicitly with the migrate command.
func (c *Container) initDB() (*sql.DB, error) {
	dbConfig := c.config.DatabaseConfig()

	if dbConfig.Driver == database.DriverSQLite {
		if err := database.Migrate(dbConfig); err != nil {
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	db, err := database.Connect(dbConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// initTxManager creates the transaction manager using the database connection.
func (c *Container) initTxManager() (database.TxManager, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for tx manager: %w", err)
	}
	return database.NewTxManager(db), nil
}

func (c *Container) initBusinessMetrics() (metrics.BusinessMetrics, error) {
	if !c.config.MetricsEnabled {
		return metrics.NewNoOpBusinessMetrics(), nil
	}

	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider: %w", err)
	}

	businessMetrics, err := metrics.NewBusinessMetrics(provider.MeterProvider(), c.config.MetricsNamespace)
	if err != nil {
		return nil, fmt.Errorf("failed to create business metrics: %w", err)
	}
	return businessMetrics, nil
}
