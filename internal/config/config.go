// Package config provides application configuration through environment variables.
package config

import (
	"os"
	"os/user"
	"path/filepath"
	"time"

	"github.com/allisson/go-env"
	validation "github.com/jellydator/validation"
	"github.com/joho/godotenv"

	"github.com/Nickbot606/clenv/internal/database"
	customValidation "github.com/Nickbot606/clenv/internal/validation"
)

const appDirName = "clenv"

// Config holds all application configuration.
type Config struct {
	// DBDriver is the storage backend ("sqlite", "postgres" or "mysql").
	DBDriver string
	// DBConnectionString is a file path for sqlite and a DSN otherwise.
	DBConnectionString string
	// DBMaxOpenConnections is the maximum number of open connections to the database.
	DBMaxOpenConnections int
	// DBMaxIdleConnections is the maximum number of idle connections in the database pool.
	DBMaxIdleConnections int
	// DBConnMaxLifetime is the maximum amount of time a connection may be reused.
	DBConnMaxLifetime time.Duration

	// LogLevel is the logging level (e.g., "debug", "info", "warn", "error").
	LogLevel string

	// Namespace is the namespace commands operate on unless overridden with --namespace.
	Namespace string
	// Identity is the local principal name unless overridden with --identity.
	Identity string
	// KeysDir holds <identity>_private.pem and <identity>_public.pem.
	KeysDir string
	// KeyBits is the RSA modulus size for newly generated key pairs.
	KeyBits int

	// KMSKeyURI, when set, seals private key files with a gocloud.dev/secrets keeper.
	KMSKeyURI string

	// MetricsEnabled indicates whether metrics collection is enabled.
	MetricsEnabled bool
	// MetricsNamespace is the prefix of every metric name.
	MetricsNamespace string
	// MetricsTextfile is where metrics are written on exit. Empty disables the flush.
	MetricsTextfile string
}

// Load loads configuration from environment variables and .env files.
func Load() *Config {
	configDir := defaultConfigDir()
	loadDotEnv(configDir)

	return &Config{
		// Database configuration
		DBDriver: env.GetString("DB_DRIVER", database.DriverSQLite),
		DBConnectionString: env.GetString(
			"DB_CONNECTION_STRING",
			filepath.Join(configDir, "vault.db"),
		),
		DBMaxOpenConnections: env.GetInt("DB_MAX_OPEN_CONNECTIONS", 5),
		DBMaxIdleConnections: env.GetInt("DB_MAX_IDLE_CONNECTIONS", 2),
		DBConnMaxLifetime:    env.GetDuration("DB_CONN_MAX_LIFETIME_MINUTES", 5, time.Minute),

		// Logging
		LogLevel: env.GetString("LOG_LEVEL", "warn"),

		// Vault
		Namespace: env.GetString("CLENV_NAMESPACE", "default"),
		Identity:  env.GetString("CLENV_IDENTITY", defaultIdentity()),
		KeysDir:   env.GetString("CLENV_KEYS_DIR", filepath.Join(configDir, "keys")),
		KeyBits:   env.GetInt("CLENV_KEY_BITS", 4096),

		// KMS configuration
		KMSKeyURI: env.GetString("KMS_KEY_URI", ""),

		// Metrics
		MetricsEnabled:   env.GetBool("METRICS_ENABLED", false),
		MetricsNamespace: env.GetString("METRICS_NAMESPACE", "clenv"),
		MetricsTextfile:  env.GetString("METRICS_TEXTFILE", ""),
	}
}

// Validate checks the settings commands cannot work without.
func (c *Config) Validate() error {
	err := validation.ValidateStruct(c,
		validation.Field(&c.DBDriver,
			validation.Required,
			validation.In(database.DriverSQLite, database.DriverPostgres, database.DriverMySQL),
		),
		validation.Field(&c.DBConnectionString, validation.Required),
		validation.Field(&c.LogLevel, validation.In("debug", "info", "warn", "error")),
		validation.Field(&c.Namespace, validation.Required, customValidation.NoControlChars),
		validation.Field(&c.Identity, validation.Required, customValidation.PrincipalName),
		validation.Field(&c.KeysDir, validation.Required),
		validation.Field(&c.KeyBits, validation.Min(2048), validation.Max(8192)),
	)
	return customValidation.WrapValidationError(err)
}

// DatabaseConfig returns the connection settings for database.Connect and database.Migrate.
func (c *Config) DatabaseConfig() database.Config {
	return database.Config{
		Driver:             c.DBDriver,
		ConnectionString:   c.DBConnectionString,
		MaxOpenConnections: c.DBMaxOpenConnections,
		MaxIdleConnections: c.DBMaxIdleConnections,
		ConnMaxLifetime:    c.DBConnMaxLifetime,
	}
}

func defaultConfigDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, appDirName)
}

func defaultIdentity() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	if name := os.Getenv("USER"); name != "" {
		return name
	}
	return "default"
}

// loadDotEnv loads the nearest .env file walking up from the working directory, then
// <configDir>/.env. Variables already set are never overridden.
func loadDotEnv(configDir string) {
	if cwd, err := os.Getwd(); err == nil {
		dir := cwd
		for {
			envPath := filepath.Join(dir, ".env")
			if _, err := os.Stat(envPath); err == nil {
				_ = godotenv.Load(envPath)
				break
			}

			parent := filepath.Dir(dir)
			if parent == dir {
				break
			}
			dir = parent
		}
	}

	globalPath := filepath.Join(configDir, ".env")
	if _, err := os.Stat(globalPath); err == nil {
		_ = godotenv.Load(globalPath)
	}
}
