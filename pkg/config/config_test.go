package config

import (
	"errors"
	"os"
	"testing"
	"time"

	"github.com/matryer/is"
)

func TestCustomConfigLocation(t *testing.T) {
	is := is.New(t)
	td := t.TempDir()
	t.Cleanup(func() {
		is.NoErr(os.Unsetenv("KANBAN_CONFIG_LOCATION"))
		is.NoErr(os.Unsetenv("KANBAN_DATA_PATH"))
	})

	// Test that we get data from the custom file location, and not from the data dir.
	is.NoErr(os.Setenv("KANBAN_CONFIG_LOCATION", "testdata/config.yaml"))
	is.NoErr(os.Setenv("KANBAN_DATA_PATH", td))
	cfg := DefaultConfig()
	is.NoErr(cfg.Parse())
	is.Equal(cfg.Name, "Test server name")
	// If we unset the custom location, then use the default location.
	is.NoErr(os.Unsetenv("KANBAN_CONFIG_LOCATION"))
	cfg = DefaultConfig()
	is.Equal(cfg.Name, "Kanban")
	is.Equal(cfg.ConfigPath(), td+"/config.yaml")
}

func TestWriteAndParse(t *testing.T) {
	is := is.New(t)
	cfg := DefaultConfig()
	cfg.DataPath = t.TempDir()
	cfg.HTTP.CORS.AllowedOrigins = []string{"https://*.example.com"}
	is.NoErr(cfg.WriteConfig())
	is.True(cfg.Exist())

	parsed := DefaultConfig()
	parsed.DataPath = cfg.DataPath
	parsed.HTTP.CORS.AllowedOrigins = nil
	is.NoErr(parsed.ParseFile())
	is.Equal(parsed.HTTP.CORS.AllowedOrigins, []string{"https://*.example.com"})
	is.Equal(parsed.Auth.TokenExpiry, "24h")
	is.Equal(parsed.Jobs.ExpirySweep, "@every 1h")
}

func TestParseMultipleOrigins(t *testing.T) {
	is := is.New(t)
	is.NoErr(os.Setenv("KANBAN_HTTP_CORS_ALLOWED_ORIGINS", "http://example.com,https://*.example.com"))
	t.Cleanup(func() {
		is.NoErr(os.Unsetenv("KANBAN_HTTP_CORS_ALLOWED_ORIGINS"))
	})
	cfg := DefaultConfig()
	is.NoErr(cfg.ParseEnv())
	is.Equal(cfg.HTTP.CORS.AllowedOrigins, []string{
		"http://example.com",
		"https://*.example.com",
	})
}

func TestTokenExpiry(t *testing.T) {
	cases := []struct {
		expiry string
		want   time.Duration
		err    bool
	}{
		{"", 24 * time.Hour, false},
		{"1h", time.Hour, false},
		{"7d", 7 * 24 * time.Hour, false},
		{"soon", 0, true},
		{"-1h", 0, true},
	}

	for _, c := range cases {
		t.Run(c.expiry, func(t *testing.T) {
			is := is.New(t)
			cfg := DefaultConfig()
			cfg.DataPath = t.TempDir()
			cfg.Auth.TokenExpiry = c.expiry
			err := cfg.Validate()
			if c.err {
				is.True(err != nil)
				return
			}
			is.NoErr(err)
			is.Equal(cfg.Auth.TokenTTL(), c.want)
		})
	}
}

func TestValidateDriver(t *testing.T) {
	is := is.New(t)
	cfg := DefaultConfig()
	cfg.DataPath = t.TempDir()
	cfg.DB.Driver = "mysql"
	is.True(errors.Is(cfg.Validate(), ErrUnknownDriver))
}

func TestValidateServe(t *testing.T) {
	is := is.New(t)
	cfg := DefaultConfig()
	cfg.DataPath = t.TempDir()
	is.True(errors.Is(cfg.ValidateServe(), ErrEmptyJWTSecret))

	cfg.Auth.JWTSecret = "secret"
	is.NoErr(cfg.ValidateServe())

	var nilCfg *Config
	is.True(errors.Is(nilCfg.ValidateServe(), ErrNilConfig))
}

func TestEnviron(t *testing.T) {
	is := is.New(t)
	var nilCfg *Config
	is.Equal(len(nilCfg.Environ()), 0)

	cfg := DefaultConfig()
	envs := cfg.Environ()
	is.True(len(envs) > 0)
	for _, e := range envs {
		is.True(len(e) > len("KANBAN_"))
		is.Equal(e[:len("KANBAN_")], "KANBAN_")
	}
}
