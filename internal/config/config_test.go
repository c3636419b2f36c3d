package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-sql-driver/mysql"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create test config file: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	configPath := writeConfig(t, `
app:
  environment: testing
  name: TestApp
  version: 1.0.0
server:
  host: 127.0.0.1
  port: 8080
  read_timeout: 5s
  write_timeout: 10s
database:
  driver: postgres
  host: localhost
  name: umbraco
  user: testuser
  password: testpass
pack:
  output_root: /var/packs
  site_root: /srv/site
  cleanup_on_failure: true
publish:
  s3:
    enabled: true
    bucket: packs
`)

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.App.Environment != "testing" {
		t.Errorf("Expected Environment = %s, got %s", "testing", cfg.App.Environment)
	}
	if cfg.App.Name != "TestApp" {
		t.Errorf("Expected Name = %s, got %s", "TestApp", cfg.App.Name)
	}
	if cfg.Server.WriteTimeout != 10*time.Second {
		t.Errorf("Expected WriteTimeout = %v, got %v", 10*time.Second, cfg.Server.WriteTimeout)
	}
	if cfg.Database.Port != 5432 {
		t.Errorf("Expected postgres default port 5432, got %d", cfg.Database.Port)
	}
	if cfg.Pack.OutputRoot != "/var/packs" || cfg.Pack.SiteRoot != "/srv/site" {
		t.Errorf("Unexpected pack locations: %+v", cfg.Pack)
	}
	if !cfg.Pack.CleanupOnFailure {
		t.Errorf("Expected CleanupOnFailure = true")
	}
	if cfg.Pack.ViewsDir != "Views" {
		t.Errorf("Expected default ViewsDir = Views, got %s", cfg.Pack.ViewsDir)
	}
	if cfg.Publish.S3.Prefix != "migration-packs" {
		t.Errorf("Expected default S3 prefix, got %s", cfg.Publish.S3.Prefix)
	}
}

func TestLoadWithInvalidPath(t *testing.T) {
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_NAME", "umbraco")
	t.Setenv("DB_USER", "reader")

	// A missing file falls back to environment and defaults
	cfg, err := Load(filepath.Join(t.TempDir(), "non_existent_config.yaml"))
	if err != nil {
		t.Fatalf("Load() with non-existent file should not error, got %v", err)
	}

	if cfg.App.Environment != "development" {
		t.Errorf("Expected default Environment = %s, got %s", "development", cfg.App.Environment)
	}
	if cfg.Database.Driver != "mysql" || cfg.Database.Port != 3306 {
		t.Errorf("Expected mysql on 3306, got %s on %d", cfg.Database.Driver, cfg.Database.Port)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	configPath := writeConfig(t, "app: [unterminated")

	if _, err := Load(configPath); err == nil {
		t.Fatal("Load() should fail on malformed YAML")
	}
}

func TestDatabaseSettings_ConnectionString(t *testing.T) {
	t.Run("MySQL", func(t *testing.T) {
		settings := DatabaseSettings{
			Driver:   "mysql",
			Host:     "localhost",
			Port:     3306,
			Name:     "umbraco",
			User:     "user",
			Password: "p@ss:word",
		}

		parsed, err := mysql.ParseDSN(settings.ConnectionString())
		if err != nil {
			t.Fatalf("ConnectionString() produced an invalid DSN: %v", err)
		}
		if parsed.User != "user" || parsed.Passwd != "p@ss:word" {
			t.Errorf("Unexpected credentials %s/%s", parsed.User, parsed.Passwd)
		}
		if parsed.Addr != "localhost:3306" || parsed.DBName != "umbraco" {
			t.Errorf("Unexpected address %s/%s", parsed.Addr, parsed.DBName)
		}
		if !parsed.ParseTime {
			t.Errorf("Expected parseTime to be enabled")
		}
	})

	t.Run("PostgreSQL", func(t *testing.T) {
		settings := DatabaseSettings{
			Driver:   "postgres",
			Host:     "db",
			Port:     5432,
			Name:     "umbraco",
			User:     "user",
			Password: "pass",
			SSLMode:  "require",
		}

		want := "postgres://user:pass@db:5432/umbraco?sslmode=require"
		if got := settings.ConnectionString(); got != want {
			t.Errorf("ConnectionString() = %v, want %v", got, want)
		}
	})
}

func TestServerSettings_ServerAddress(t *testing.T) {
	settings := ServerSettings{
		Host: "localhost",
		Port: 8080,
	}

	want := "localhost:8080"
	if got := settings.ServerAddress(); got != want {
		t.Errorf("ServerAddress() = %v, want %v", got, want)
	}
}

func TestAppSettings_Environment(t *testing.T) {
	tests := []struct {
		name         string
		environment  string
		isDev        bool
		isProduction bool
		isTesting    bool
	}{
		{"Development", "development", true, false, false},
		{"Production", "Production", false, true, false},
		{"Testing", "testing", false, false, true},
		{"Unknown", "unknown", false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := AppSettings{Environment: tt.environment}

			if got := settings.IsDevelopment(); got != tt.isDev {
				t.Errorf("IsDevelopment() = %v, want %v", got, tt.isDev)
			}
			if got := settings.IsProduction(); got != tt.isProduction {
				t.Errorf("IsProduction() = %v, want %v", got, tt.isProduction)
			}
			if got := settings.IsTesting(); got != tt.isTesting {
				t.Errorf("IsTesting() = %v, want %v", got, tt.isTesting)
			}
		})
	}
}

func TestSetDefaults(t *testing.T) {
	cfg := &AppConfig{}

	setDefaults(cfg)

	if cfg.App.Environment != "development" {
		t.Errorf("Default App.Environment = %v, want %v", cfg.App.Environment, "development")
	}
	if cfg.App.Name != "migrationpack" {
		t.Errorf("Default App.Name = %v, want %v", cfg.App.Name, "migrationpack")
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Default Server.Port = %v, want %v", cfg.Server.Port, 8080)
	}
	if cfg.Database.Driver != "mysql" || cfg.Database.Port != 3306 {
		t.Errorf("Default database = %s:%d, want mysql:3306", cfg.Database.Driver, cfg.Database.Port)
	}
	if cfg.JWT.Expiry != 15*time.Minute {
		t.Errorf("Default JWT.Expiry = %v, want %v", cfg.JWT.Expiry, 15*time.Minute)
	}
	if cfg.RateLimit.Burst != 2 {
		t.Errorf("Default RateLimit.Burst = %v, want %v", cfg.RateLimit.Burst, 2)
	}
	if cfg.Pack.GridConfigPath != "config/grid.editors.config.js" {
		t.Errorf("Default Pack.GridConfigPath = %v", cfg.Pack.GridConfigPath)
	}
	if cfg.Pack.CleanupOnFailure {
		t.Errorf("Working directories must be kept after failures by default")
	}
}

func validConfig() *AppConfig {
	c := &AppConfig{
		Database: DatabaseSettings{Host: "db", Name: "umbraco", User: "reader"},
		JWT:      JWTSettings{Secret: "some-secret"},
	}
	setDefaults(c)
	return c
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(c *AppConfig)
		shouldErr bool
		contains  string
	}{
		{name: "Valid config", mutate: func(c *AppConfig) {}},
		{name: "Invalid environment defaults to development", mutate: func(c *AppConfig) { c.App.Environment = "invalid" }},
		{
			name:      "Production without JWT secret",
			mutate:    func(c *AppConfig) { c.App.Environment = "production"; c.JWT.Secret = "changeme" },
			shouldErr: true,
			contains:  "JWT secret",
		},
		{
			name:      "Missing database user",
			mutate:    func(c *AppConfig) { c.Database.User = "" },
			shouldErr: true,
			contains:  "User",
		},
		{
			name:      "Unknown driver",
			mutate:    func(c *AppConfig) { c.Database.Driver = "sqlite" },
			shouldErr: true,
			contains:  "Driver",
		},
		{
			name:      "S3 enabled without bucket",
			mutate:    func(c *AppConfig) { c.Publish.S3.Enabled = true },
			shouldErr: true,
			contains:  "Bucket",
		},
		{
			name:      "Invalid log level",
			mutate:    func(c *AppConfig) { c.Logging.Level = "verbose" },
			shouldErr: true,
			contains:  "invalid log level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(c)

			err := validateConfig(c)
			if (err != nil) != tt.shouldErr {
				t.Fatalf("validateConfig() error = %v, shouldErr %v", err, tt.shouldErr)
			}
			if err != nil && !strings.Contains(err.Error(), tt.contains) {
				t.Errorf("validateConfig() error = %v, want it to mention %q", err, tt.contains)
			}
		})
	}
}
