package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/duration"
	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

const envPrefix = "KANBAN_"

var (
	// ErrNilConfig is returned when a nil config is passed to a function.
	ErrNilConfig = errors.New("nil config")

	// ErrEmptyJWTSecret is returned when the server is started without a
	// token signing secret.
	ErrEmptyJWTSecret = errors.New("auth.jwt_secret must be set")

	// ErrUnknownDriver is returned for database drivers other than sqlite
	// and postgres.
	ErrUnknownDriver = errors.New("unknown database driver")
)

// CORSConfig is the CORS configuration for the HTTP server.
type CORSConfig struct {
	// AllowedOrigins is a list of origin glob patterns such as
	// "https://*.example.com".
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" yaml:"allowed_origins"`

	AllowedHeaders []string `env:"ALLOWED_HEADERS" yaml:"allowed_headers"`

	AllowedMethods []string `env:"ALLOWED_METHODS" yaml:"allowed_methods"`
}

// HTTPConfig is the HTTP configuration for the server.
type HTTPConfig struct {
	// ListenAddr is the address on which the HTTP server will listen.
	ListenAddr string `env:"LISTEN_ADDR" yaml:"listen_addr"`

	// TLSKeyPath is the path to the TLS private key.
	TLSKeyPath string `env:"TLS_KEY_PATH" yaml:"tls_key_path"`

	// TLSCertPath is the path to the TLS certificate.
	TLSCertPath string `env:"TLS_CERT_PATH" yaml:"tls_cert_path"`

	// PublicURL is the public URL of the HTTP server.
	PublicURL string `env:"PUBLIC_URL" yaml:"public_url"`

	// CORS is the cross-origin configuration for the API.
	CORS CORSConfig `envPrefix:"CORS_" yaml:"cors"`
}

// StatsConfig is the configuration for the stats server.
type StatsConfig struct {
	// ListenAddr is the address on which the stats server will listen.
	ListenAddr string `env:"LISTEN_ADDR" yaml:"listen_addr"`
}

// LogConfig is the logger configuration.
type LogConfig struct {
	// Format is the format of the logs.
	// Valid values are "json", "logfmt", and "text".
	Format string `env:"FORMAT" yaml:"format"`

	// Time format for the log `ts` field.
	// Format must be described in Golang's time format.
	TimeFormat string `env:"TIME_FORMAT" yaml:"time_format"`

	// Path to a file to write logs to.
	// If not set, logs will be written to stderr.
	Path string `env:"PATH" yaml:"path"`
}

// DBConfig is the database connection configuration.
type DBConfig struct {
	// Driver is the driver for the database.
	Driver string `env:"DRIVER" yaml:"driver"`

	// DataSource is the database data source name.
	DataSource string `env:"DATA_SOURCE" yaml:"data_source"`
}

// AuthConfig is the authentication configuration.
type AuthConfig struct {
	// JWTSecret is the HMAC secret used to sign bearer tokens.
	JWTSecret string `env:"JWT_SECRET" yaml:"jwt_secret"`

	// TokenExpiry is how long an issued bearer token stays valid, e.g. "24h"
	// or "7d".
	TokenExpiry string `env:"TOKEN_EXPIRY" yaml:"token_expiry"`

	// APIKeyPrefix is prepended to every generated API key.
	APIKeyPrefix string `env:"API_KEY_PREFIX" yaml:"api_key_prefix"`

	tokenTTL time.Duration
}

// TokenTTL returns the parsed token expiry.
func (a AuthConfig) TokenTTL() time.Duration {
	if a.tokenTTL == 0 {
		return 24 * time.Hour
	}
	return a.tokenTTL
}

// JobsConfig is the configuration for cron jobs.
type JobsConfig struct {
	// ExpirySweep is the schedule of the API key and invite expiry sweep.
	ExpirySweep string `env:"EXPIRY_SWEEP" yaml:"expiry_sweep"`
}

// InitialAdminConfig describes an admin account created on first start.
type InitialAdminConfig struct {
	Username string `env:"USERNAME" yaml:"username"`
	Password string `env:"PASSWORD" yaml:"password"`
}

// Config is the configuration for the kanban server.
type Config struct {
	// Name is the name of the server.
	Name string `env:"NAME" yaml:"name"`

	// HTTP is the configuration for the HTTP server.
	HTTP HTTPConfig `envPrefix:"HTTP_" yaml:"http"`

	// Stats is the configuration for the stats server.
	Stats StatsConfig `envPrefix:"STATS_" yaml:"stats"`

	// Log is the logger configuration.
	Log LogConfig `envPrefix:"LOG_" yaml:"log"`

	// DB is the database configuration.
	DB DBConfig `envPrefix:"DB_" yaml:"db"`

	// Auth is the authentication configuration.
	Auth AuthConfig `envPrefix:"AUTH_" yaml:"auth"`

	// Jobs is the configuration for cron jobs.
	Jobs JobsConfig `envPrefix:"JOBS_" yaml:"jobs"`

	// InitialAdmin is created when the users table is empty.
	InitialAdmin InitialAdminConfig `envPrefix:"INITIAL_ADMIN_" yaml:"initial_admin"`

	// DataPath is the path to the directory where the server stores its data.
	DataPath string `env:"DATA_PATH" yaml:"-"`
}

// Environ returns the config as a list of environment variables.
func (c *Config) Environ() []string {
	if c == nil {
		return nil
	}

	return []string{
		fmt.Sprintf("KANBAN_DATA_PATH=%s", c.DataPath),
		fmt.Sprintf("KANBAN_NAME=%s", c.Name),
		fmt.Sprintf("KANBAN_HTTP_LISTEN_ADDR=%s", c.HTTP.ListenAddr),
		fmt.Sprintf("KANBAN_HTTP_TLS_KEY_PATH=%s", c.HTTP.TLSKeyPath),
		fmt.Sprintf("KANBAN_HTTP_TLS_CERT_PATH=%s", c.HTTP.TLSCertPath),
		fmt.Sprintf("KANBAN_HTTP_PUBLIC_URL=%s", c.HTTP.PublicURL),
		fmt.Sprintf("KANBAN_HTTP_CORS_ALLOWED_ORIGINS=%s", strings.Join(c.HTTP.CORS.AllowedOrigins, ",")),
		fmt.Sprintf("KANBAN_HTTP_CORS_ALLOWED_HEADERS=%s", strings.Join(c.HTTP.CORS.AllowedHeaders, ",")),
		fmt.Sprintf("KANBAN_HTTP_CORS_ALLOWED_METHODS=%s", strings.Join(c.HTTP.CORS.AllowedMethods, ",")),
		fmt.Sprintf("KANBAN_STATS_LISTEN_ADDR=%s", c.Stats.ListenAddr),
		fmt.Sprintf("KANBAN_LOG_FORMAT=%s", c.Log.Format),
		fmt.Sprintf("KANBAN_LOG_TIME_FORMAT=%s", c.Log.TimeFormat),
		fmt.Sprintf("KANBAN_DB_DRIVER=%s", c.DB.Driver),
		fmt.Sprintf("KANBAN_DB_DATA_SOURCE=%s", c.DB.DataSource),
		fmt.Sprintf("KANBAN_AUTH_TOKEN_EXPIRY=%s", c.Auth.TokenExpiry),
		fmt.Sprintf("KANBAN_AUTH_API_KEY_PREFIX=%s", c.Auth.APIKeyPrefix),
		fmt.Sprintf("KANBAN_JOBS_EXPIRY_SWEEP=%s", c.Jobs.ExpirySweep),
	}
}

// IsDebug returns true if the server is running in debug mode.
func IsDebug() bool {
	debug, _ := strconv.ParseBool(os.Getenv("KANBAN_DEBUG"))
	return debug
}

// IsVerbose returns true if the server is running in verbose mode.
// Verbose mode is only enabled if debug mode is enabled.
func IsVerbose() bool {
	verbose, _ := strconv.ParseBool(os.Getenv("KANBAN_VERBOSE"))
	return IsDebug() && verbose
}

// parseFile parses the given file as a configuration file.
// The file must be in YAML format.
func parseFile(cfg *Config, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}

	defer f.Close() // nolint: errcheck
	if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
		return fmt.Errorf("decode config: %w", err)
	}

	return cfg.Validate()
}

// ParseFile parses the config from the default file path.
// This also calls Validate() on the config.
func (c *Config) ParseFile() error {
	return parseFile(c, c.ConfigPath())
}

// parseEnv parses the environment variables as a configuration file.
func parseEnv(cfg *Config) error {
	if err := env.ParseWithOptions(cfg, env.Options{
		Prefix: envPrefix,
	}); err != nil {
		return fmt.Errorf("parse environment variables: %w", err)
	}

	return cfg.Validate()
}

// ParseEnv parses the config from the environment variables.
// This also calls Validate() on the config.
func (c *Config) ParseEnv() error {
	return parseEnv(c)
}

// Parse parses the config from the default file path and environment variables.
// This also calls Validate() on the config.
func (c *Config) Parse() error {
	if err := c.ParseFile(); err != nil {
		return err
	}

	return c.ParseEnv()
}

// writeConfig writes the configuration to the given file.
func writeConfig(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(newConfigFile(cfg)), 0o600)
}

// WriteConfig writes the configuration to the default file.
func (c *Config) WriteConfig() error {
	return writeConfig(c, c.ConfigPath())
}

// DefaultDataPath returns the path to the data directory.
// It uses the KANBAN_DATA_PATH environment variable if set, otherwise it
// uses "data".
func DefaultDataPath() string {
	dp := os.Getenv("KANBAN_DATA_PATH")
	if dp == "" {
		dp = "data"
	}

	return dp
}

// ConfigPath returns the path to the config file. KANBAN_CONFIG_LOCATION
// takes precedence when it points at an existing file.
func (c *Config) ConfigPath() string { // nolint:revive
	if path := os.Getenv("KANBAN_CONFIG_LOCATION"); exist(path) {
		return path
	}

	return filepath.Join(c.DataPath, "config.yaml")
}

func exist(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// Exist returns true if the config file exists.
func (c *Config) Exist() bool {
	return exist(c.ConfigPath())
}

// DefaultConfig returns the default Config. All the path values are relative
// to the data directory.
// Use Validate() to validate the config and ensure absolute paths.
func DefaultConfig() *Config {
	return &Config{
		Name:     "Kanban",
		DataPath: DefaultDataPath(),
		HTTP: HTTPConfig{
			ListenAddr: ":8000",
			PublicURL:  "http://localhost:8000",
			CORS: CORSConfig{
				AllowedOrigins: []string{"http://localhost:3000"},
				AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-API-Key"},
				AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			},
		},
		Stats: StatsConfig{
			ListenAddr: "localhost:8001",
		},
		Log: LogConfig{
			Format:     "text",
			TimeFormat: time.DateTime,
		},
		DB: DBConfig{
			Driver: "sqlite",
			DataSource: "kanban.db" +
				"?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)",
		},
		Auth: AuthConfig{
			TokenExpiry:  "24h",
			APIKeyPrefix: "kanban_",
		},
		Jobs: JobsConfig{
			ExpirySweep: "@every 1h",
		},
	}
}

// Validate validates the configuration.
// It updates the configuration with absolute paths.
func (c *Config) Validate() error {
	// Use absolute paths
	if !filepath.IsAbs(c.DataPath) {
		dp, err := filepath.Abs(c.DataPath)
		if err != nil {
			return err
		}
		c.DataPath = dp
	}

	c.HTTP.PublicURL = strings.TrimSuffix(c.HTTP.PublicURL, "/")

	if c.HTTP.TLSKeyPath != "" && !filepath.IsAbs(c.HTTP.TLSKeyPath) {
		c.HTTP.TLSKeyPath = filepath.Join(c.DataPath, c.HTTP.TLSKeyPath)
	}

	if c.HTTP.TLSCertPath != "" && !filepath.IsAbs(c.HTTP.TLSCertPath) {
		c.HTTP.TLSCertPath = filepath.Join(c.DataPath, c.HTTP.TLSCertPath)
	}

	switch c.DB.Driver {
	case "", "sqlite", "sqlite3", "postgres":
	default:
		return fmt.Errorf("%w: %q", ErrUnknownDriver, c.DB.Driver)
	}

	if strings.HasPrefix(c.DB.Driver, "sqlite") && c.DB.DataSource != "" && !filepath.IsAbs(c.DB.DataSource) {
		c.DB.DataSource = filepath.Join(c.DataPath, c.DB.DataSource)
	}

	if c.Auth.TokenExpiry != "" {
		ttl, err := duration.Parse(c.Auth.TokenExpiry)
		if err != nil {
			return fmt.Errorf("invalid auth.token_expiry %q: %w", c.Auth.TokenExpiry, err)
		}
		if ttl <= 0 {
			return fmt.Errorf("invalid auth.token_expiry %q: must be positive", c.Auth.TokenExpiry)
		}
		c.Auth.tokenTTL = ttl
	}

	return nil
}

// ValidateServe runs the checks that only matter when the HTTP server is
// started.
func (c *Config) ValidateServe() error {
	if c == nil {
		return ErrNilConfig
	}
	if c.Auth.JWTSecret == "" {
		return ErrEmptyJWTSecret
	}
	return c.Validate()
}
