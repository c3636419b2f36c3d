package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/yasinhessnawi1/migrationpack/internal/constants"
)

// AppConfig represents the entire application configuration
type AppConfig struct {
	App       AppSettings       `yaml:"app"`
	Database  DatabaseSettings  `yaml:"database"`
	Server    ServerSettings    `yaml:"server"`
	JWT       JWTSettings       `yaml:"jwt"`
	Logging   LoggingSettings   `yaml:"logging"`
	CORS      CORSSettings      `yaml:"cors"`
	RateLimit RateLimitSettings `yaml:"rate_limit"`
	Pack      PackSettings      `yaml:"pack"`
	Publish   PublishSettings   `yaml:"publish"`
}

// AppSettings contains general application settings
type AppSettings struct {
	Environment string `yaml:"environment" env:"APP_ENV"`
	Name        string `yaml:"name" env:"APP_NAME"`
	Version     string `yaml:"version" env:"APP_VERSION"`
}

// DatabaseSettings contains the connection settings of the CMS database
type DatabaseSettings struct {
	Driver   string `yaml:"driver" env:"DB_DRIVER" validate:"oneof=mysql postgres"`
	Host     string `yaml:"host" env:"DB_HOST" validate:"required"`
	Port     int    `yaml:"port" env:"DB_PORT" validate:"min=1,max=65535"`
	Name     string `yaml:"name" env:"DB_NAME" validate:"required"`
	User     string `yaml:"user" env:"DB_USER" validate:"required"`
	Password string `yaml:"password" env:"DB_PASSWORD"`
	SSLMode  string `yaml:"ssl_mode" env:"DB_SSL_MODE"`
	MaxConns int    `yaml:"max_conns" env:"DB_MAX_CONNS" validate:"min=1"`
	MinConns int    `yaml:"min_conns" env:"DB_MIN_CONNS" validate:"min=0"`
}

// ServerSettings contains HTTP server settings
type ServerSettings struct {
	Host            string        `yaml:"host" env:"SERVER_HOST"`
	Port            int           `yaml:"port" env:"SERVER_PORT" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"SERVER_READ_TIMEOUT"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"SERVER_WRITE_TIMEOUT"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT"`
}

// JWTSettings contains JWT authentication settings
type JWTSettings struct {
	Secret string        `yaml:"secret" env:"JWT_SECRET"`
	Expiry time.Duration `yaml:"expiry" env:"JWT_EXPIRY"`
	Issuer string        `yaml:"issuer" env:"JWT_ISSUER"`
}

// LoggingSettings contains logging configuration
type LoggingSettings struct {
	Level      string `yaml:"level" env:"LOG_LEVEL"`
	Format     string `yaml:"format" env:"LOG_FORMAT" validate:"oneof=json console"`
	RequestLog bool   `yaml:"request_log" env:"LOG_REQUESTS"`
}

// CORSSettings contains CORS configuration
type CORSSettings struct {
	AllowedOrigins   []string `yaml:"allowed_origins" env:"ALLOWED_ORIGINS"`
	AllowCredentials bool     `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS"`
}

// RateLimitSettings bounds how often a client may build packs
type RateLimitSettings struct {
	RequestsPerSecond float64 `yaml:"requests_per_second" env:"RATE_LIMIT_RPS" validate:"gt=0"`
	Burst             int     `yaml:"burst" env:"RATE_LIMIT_BURST" validate:"min=1"`
}

// PackSettings locates the site being exported and the archive output
type PackSettings struct {
	OutputRoot       string `yaml:"output_root" env:"PACK_OUTPUT_ROOT" validate:"required"`
	SiteRoot         string `yaml:"site_root" env:"PACK_SITE_ROOT" validate:"required"`
	ViewsDir         string `yaml:"views_dir" env:"PACK_VIEWS_DIR"`
	CSSDir           string `yaml:"css_dir" env:"PACK_CSS_DIR"`
	ScriptsDir       string `yaml:"scripts_dir" env:"PACK_SCRIPTS_DIR"`
	GridConfigPath   string `yaml:"grid_config_path" env:"PACK_GRID_CONFIG_PATH"`
	AppPluginsDir    string `yaml:"app_plugins_dir" env:"PACK_APP_PLUGINS_DIR"`
	CleanupOnFailure bool   `yaml:"cleanup_on_failure" env:"PACK_CLEANUP_ON_FAILURE"`
}

// PublishSettings configures optional upload of finished archives
type PublishSettings struct {
	S3 S3Settings `yaml:"s3"`
}

// S3Settings configures the S3-compatible bucket archives are uploaded to
type S3Settings struct {
	Enabled   bool   `yaml:"enabled" env:"PUBLISH_S3_ENABLED"`
	Bucket    string `yaml:"bucket" env:"PUBLISH_S3_BUCKET" validate:"required_if=Enabled true"`
	Prefix    string `yaml:"prefix" env:"PUBLISH_S3_PREFIX"`
	Region    string `yaml:"region" env:"PUBLISH_S3_REGION"`
	Endpoint  string `yaml:"endpoint" env:"PUBLISH_S3_ENDPOINT"`
	AccessKey string `yaml:"access_key" env:"PUBLISH_S3_ACCESS_KEY"`
	SecretKey string `yaml:"secret_key" env:"PUBLISH_S3_SECRET_KEY"`
}

// ConnectionString returns the DSN for the configured driver
func (dbs *DatabaseSettings) ConnectionString() string {
	if dbs.Driver == constants.DriverPostgres {
		u := url.URL{
			Scheme:   "postgres",
			User:     url.UserPassword(dbs.User, dbs.Password),
			Host:     fmt.Sprintf("%s:%d", dbs.Host, dbs.Port),
			Path:     "/" + dbs.Name,
			RawQuery: url.Values{"sslmode": []string{dbs.SSLMode}}.Encode(),
		}
		return u.String()
	}

	mc := mysql.NewConfig()
	mc.User = dbs.User
	mc.Passwd = dbs.Password
	mc.Net = "tcp"
	mc.Addr = fmt.Sprintf("%s:%d", dbs.Host, dbs.Port)
	mc.DBName = dbs.Name
	mc.ParseTime = true
	mc.Params = map[string]string{"charset": "utf8mb4"}
	return mc.FormatDSN()
}

// ServerAddress returns the complete server address
func (ss *ServerSettings) ServerAddress() string {
	return fmt.Sprintf("%s:%d", ss.Host, ss.Port)
}

// IsDevelopment checks if the application is running in development mode
func (as *AppSettings) IsDevelopment() bool {
	return strings.ToLower(as.Environment) == constants.EnvDevelopment
}

// IsProduction checks if the application is running in production mode
func (as *AppSettings) IsProduction() bool {
	return strings.ToLower(as.Environment) == constants.EnvProduction
}

// IsTesting checks if the application is running in testing mode
func (as *AppSettings) IsTesting() bool {
	return strings.ToLower(as.Environment) == constants.EnvTesting
}

// Load loads the configuration from a config file and environment variables
func Load(configPath string) (*AppConfig, error) {
	config := &AppConfig{}

	// Load configuration from file if it exists
	if _, err := os.Stat(configPath); err == nil {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}

		err = yaml.Unmarshal(data, config)
		if err != nil {
			return nil, fmt.Errorf("error parsing config file: %w", err)
		}
	}

	// Override with environment variables
	if err := LoadEnv(config); err != nil {
		return nil, fmt.Errorf("error loading environment variables: %w", err)
	}

	setDefaults(config)

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logConfig(config)

	return config, nil
}

// setDefaults sets default values for any missing configuration
func setDefaults(config *AppConfig) {
	// App defaults
	if config.App.Environment == "" {
		config.App.Environment = constants.EnvDevelopment
	}
	if config.App.Name == "" {
		config.App.Name = constants.AppName
	}
	if config.App.Version == "" {
		config.App.Version = "1.0.0"
	}

	// Server defaults
	if config.Server.Host == "" {
		config.Server.Host = constants.DefaultServerHost
	}
	if config.Server.Port == 0 {
		config.Server.Port = constants.DefaultServerPort
	}
	if config.Server.ReadTimeout == 0 {
		config.Server.ReadTimeout = constants.DefaultReadTimeout
	}
	if config.Server.WriteTimeout == 0 {
		config.Server.WriteTimeout = constants.DefaultWriteTimeout
	}
	if config.Server.ShutdownTimeout == 0 {
		config.Server.ShutdownTimeout = constants.DefaultShutdownTimeout
	}

	// Database defaults
	if config.Database.Driver == "" {
		config.Database.Driver = constants.DefaultDBDriver
	}
	config.Database.Driver = strings.ToLower(config.Database.Driver)
	if config.Database.Port == 0 {
		if config.Database.Driver == constants.DriverPostgres {
			config.Database.Port = constants.DefaultPostgresPort
		} else {
			config.Database.Port = constants.DefaultMySQLPort
		}
	}
	if config.Database.SSLMode == "" {
		config.Database.SSLMode = constants.DefaultPostgresSSLMode
	}
	if config.Database.MaxConns == 0 {
		config.Database.MaxConns = constants.DefaultDBMaxConnections
	}
	if config.Database.MinConns == 0 {
		config.Database.MinConns = constants.DefaultDBMinConnections
	}

	// JWT defaults
	if config.JWT.Expiry == 0 {
		config.JWT.Expiry = constants.DefaultJWTExpiry
	}
	if config.JWT.Issuer == "" {
		config.JWT.Issuer = constants.DefaultJWTIssuer
	}

	// Logging defaults
	if config.Logging.Level == "" {
		config.Logging.Level = constants.DefaultLogLevel
	}
	if config.Logging.Format == "" {
		config.Logging.Format = constants.DefaultLogFormat
	}

	// CORS defaults
	if len(config.CORS.AllowedOrigins) == 0 {
		config.CORS.AllowedOrigins = []string{"*"}
	}

	// Rate limit defaults
	if config.RateLimit.RequestsPerSecond == 0 {
		config.RateLimit.RequestsPerSecond = constants.DefaultRateLimitPerSecond
	}
	if config.RateLimit.Burst == 0 {
		config.RateLimit.Burst = constants.DefaultRateLimitBurst
	}

	// Pack defaults
	if config.Pack.OutputRoot == "" {
		config.Pack.OutputRoot = constants.DefaultOutputRoot
	}
	if config.Pack.SiteRoot == "" {
		config.Pack.SiteRoot = constants.DefaultSiteRoot
	}
	if config.Pack.ViewsDir == "" {
		config.Pack.ViewsDir = constants.DefaultViewsDir
	}
	if config.Pack.CSSDir == "" {
		config.Pack.CSSDir = constants.DefaultCSSDir
	}
	if config.Pack.ScriptsDir == "" {
		config.Pack.ScriptsDir = constants.DefaultScriptsDir
	}
	if config.Pack.GridConfigPath == "" {
		config.Pack.GridConfigPath = constants.DefaultGridConfigPath
	}
	if config.Pack.AppPluginsDir == "" {
		config.Pack.AppPluginsDir = constants.DefaultAppPluginsDir
	}

	// Publish defaults
	if config.Publish.S3.Prefix == "" {
		config.Publish.S3.Prefix = constants.DefaultS3Prefix
	}
	if config.Publish.S3.Region == "" {
		config.Publish.S3.Region = constants.DefaultS3Region
	}
}

// validateConfig validates that the configuration has all required values
func validateConfig(config *AppConfig) error {
	env := strings.ToLower(config.App.Environment)
	if env != constants.EnvDevelopment && env != constants.EnvTesting && env != constants.EnvProduction {
		log.Warn().Str("environment", config.App.Environment).Msg("Invalid environment, defaulting to development")
		config.App.Environment = constants.EnvDevelopment
	}

	// In production, ensure we have a proper JWT secret
	if config.App.IsProduction() && (config.JWT.Secret == "" || config.JWT.Secret == "changeme") {
		return fmt.Errorf("JWT secret must be set in production")
	}

	if err := validator.New().Struct(config); err != nil {
		return err
	}

	// Validate log level
	logLevel := strings.ToLower(config.Logging.Level)
	validLevels := []string{"debug", "info", "warn", "error", "fatal", "panic"}
	validLevel := false
	for _, level := range validLevels {
		if logLevel == level {
			validLevel = true
			break
		}
	}
	if !validLevel {
		return fmt.Errorf("invalid log level: %s", config.Logging.Level)
	}

	return nil
}

// logConfig logs the current configuration, masking sensitive values
func logConfig(config *AppConfig) {
	log.Info().
		Str("environment", config.App.Environment).
		Str("version", config.App.Version).
		Str("server", config.Server.ServerAddress()).
		Str("db_driver", config.Database.Driver).
		Str("db_host", config.Database.Host).
		Int("db_port", config.Database.Port).
		Str("db_name", config.Database.Name).
		Str("db_password", redact(config.Database.Password)).
		Str("jwt_secret", redact(config.JWT.Secret)).
		Str("output_root", config.Pack.OutputRoot).
		Str("site_root", config.Pack.SiteRoot).
		Bool("s3_publish", config.Publish.S3.Enabled).
		Str("log_level", config.Logging.Level).
		Msg("Configuration loaded")
}

func redact(secret string) string {
	if secret == "" {
		return ""
	}
	return constants.LogRedactedValue
}
