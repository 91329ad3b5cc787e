// Package remote holds the commands that talk to a kanban server over its
// REST API.
package remote

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/kanban/pkg/client"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// DefaultServerURL is used until a server is configured.
const DefaultServerURL = "http://localhost:8000"

// ErrNotLoggedIn is returned by commands that need credentials when none
// are stored.
var ErrNotLoggedIn = errors.New("not logged in, run 'kanban login' first")

// Config is the client state stored in config.yaml.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Auth   AuthConfig   `yaml:"auth"`

	path string
}

// ServerConfig is the server the client talks to.
type ServerConfig struct {
	URL string `yaml:"url"`
}

// AuthConfig holds the stored credentials.
type AuthConfig struct {
	Token  string `yaml:"token,omitempty"`
	APIKey string `yaml:"api_key,omitempty"`
}

// Dir returns the client configuration directory. KANBAN_CONFIG_DIR
// overrides the default ~/.kanban.
func Dir() (string, error) {
	if dir := os.Getenv("KANBAN_CONFIG_DIR"); dir != "" {
		return dir, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("find home directory: %w", err)
	}
	return filepath.Join(home, ".kanban"), nil
}

// LoadConfig reads config.yaml from the configuration directory. A missing
// file yields the defaults.
func LoadConfig() (*Config, error) {
	dir, err := Dir()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{URL: DefaultServerURL},
		path:   filepath.Join(dir, "config.yaml"),
	}
	bts, err := os.ReadFile(cfg.path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read client config: %w", err)
	}
	if err := yaml.Unmarshal(bts, cfg); err != nil {
		return nil, fmt.Errorf("decode client config: %w", err)
	}
	if cfg.Server.URL == "" {
		cfg.Server.URL = DefaultServerURL
	}

	return cfg, nil
}

// Save writes the config back to disk. The file holds credentials so it's
// only readable by the owner.
func (c *Config) Save() error {
	if err := os.MkdirAll(filepath.Dir(c.path), 0o700); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	bts, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode client config: %w", err)
	}
	return os.WriteFile(c.path, bts, 0o600)
}

// Client returns an API client for the configured server. KANBAN_API_KEY
// takes precedence over stored credentials.
func (c *Config) Client() (*client.Client, error) {
	var opts []client.Option
	switch {
	case os.Getenv("KANBAN_API_KEY") != "":
		opts = append(opts, client.WithAPIKey(os.Getenv("KANBAN_API_KEY")))
	case c.Auth.APIKey != "":
		opts = append(opts, client.WithAPIKey(c.Auth.APIKey))
	case c.Auth.Token != "":
		opts = append(opts, client.WithToken(c.Auth.Token))
	default:
		return nil, ErrNotLoggedIn
	}

	return client.New(c.Server.URL, opts...)
}

type contextKey struct{ string }

var (
	configKey = contextKey{"client-config"}
	clientKey = contextKey{"client"}
)

// ConfigFromContext returns the client config stored by InitConfigContext.
func ConfigFromContext(ctx context.Context) *Config {
	if c, ok := ctx.Value(configKey).(*Config); ok {
		return c
	}
	return nil
}

// ClientFromContext returns the API client stored by InitClientContext.
func ClientFromContext(ctx context.Context) *client.Client {
	if c, ok := ctx.Value(clientKey).(*client.Client); ok {
		return c
	}
	return nil
}

// InitConfigContext loads the client config into the command context.
func InitConfigContext(cmd *cobra.Command, _ []string) error {
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}

	cmd.SetContext(context.WithValue(cmd.Context(), configKey, cfg))
	return nil
}

// InitClientContext loads the client config and stores an authenticated
// API client in the command context.
func InitClientContext(cmd *cobra.Command, args []string) error {
	if err := InitConfigContext(cmd, args); err != nil {
		return err
	}

	c, err := ConfigFromContext(cmd.Context()).Client()
	if err != nil {
		return err
	}

	cmd.SetContext(context.WithValue(cmd.Context(), clientKey, c))
	return nil
}
