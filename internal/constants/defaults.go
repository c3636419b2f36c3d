// Package constants provides shared constant values used throughout the application.
//
// The defaults.go file defines fallback values used when a configuration setting
// is not provided. Changes to these values change the behaviour of a service
// started with an empty configuration file.
package constants

// Default Configuration Values define fallback settings when not specified in configuration.
const (
	// DefaultServerHost is the default interface the HTTP server binds to.
	DefaultServerHost = "0.0.0.0"

	// DefaultServerPort is the default HTTP server port.
	DefaultServerPort = 8080

	// DefaultDBDriver is the database driver used when none is configured.
	DefaultDBDriver = DriverMySQL

	// DefaultMySQLPort is the default MySQL port.
	DefaultMySQLPort = 3306

	// DefaultPostgresPort is the default PostgreSQL port.
	DefaultPostgresPort = 5432

	// DefaultDBMaxConnections is the default maximum number of database connections.
	DefaultDBMaxConnections = 20

	// DefaultDBMinConnections is the default minimum number of database connections.
	DefaultDBMinConnections = 5

	// DefaultPostgresSSLMode is the sslmode used for PostgreSQL connections.
	DefaultPostgresSSLMode = "disable"

	// DefaultLogLevel is the default logging verbosity level.
	DefaultLogLevel = "info"

	// DefaultLogFormat is the default logging output format.
	DefaultLogFormat = "json"

	// DefaultJWTIssuer is the issuer written into access tokens.
	DefaultJWTIssuer = "migrationpack"
)

// Database drivers understood by the database package.
const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

// Default rate limit applied to the packer routes. Building a pack is expensive,
// so the default allows one run every ten seconds with a small burst.
const (
	DefaultRateLimitPerSecond = 0.1
	DefaultRateLimitBurst     = 2
)

// Default pack locations, relative to the working directory of the process.
const (
	DefaultOutputRoot     = "./App_Data/Temp/MigrationPacks"
	DefaultSiteRoot       = "."
	DefaultViewsDir       = "Views"
	DefaultCSSDir         = "css"
	DefaultScriptsDir     = "scripts"
	DefaultGridConfigPath = "config/grid.editors.config.js"
	DefaultAppPluginsDir  = "App_Plugins"
	DefaultS3Prefix       = "migration-packs"
	DefaultS3Region       = "us-east-1"
)

// Environment Types define the recognized application running environments.
const (
	// EnvDevelopment identifies a development environment with debugging features enabled.
	EnvDevelopment = "development"

	// EnvTesting identifies a testing environment for automated tests.
	EnvTesting = "testing"

	// EnvProduction identifies a production environment with optimized settings.
	EnvProduction = "production"
)

// MaxRequestBodySize is the maximum size in bytes for HTTP request bodies.
const MaxRequestBodySize = 1048576 // 1MB in bytes
