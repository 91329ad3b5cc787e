package config

import (
	"strings"
	"testing"

	"github.com/matryer/is"
)

func TestNewConfigFile(t *testing.T) {
	is := is.New(t)
	cfg := DefaultConfig()
	cfg.Auth.JWTSecret = "do-not-write-me"
	cfg.HTTP.CORS.AllowedOrigins = []string{"https://*.example.com", "http://localhost:3000"}

	s := newConfigFile(cfg)
	is.True(strings.Contains(s, `listen_addr: "`+cfg.HTTP.ListenAddr+`"`))
	is.True(strings.Contains(s, `api_key_prefix: "`+cfg.Auth.APIKeyPrefix+`"`))
	is.True(strings.Contains(s, `- "https://*.example.com"`))
	is.True(strings.Contains(s, `- "http://localhost:3000"`))
	is.True(!strings.Contains(s, "do-not-write-me"))
}

func TestNewConfigFileEmpty(t *testing.T) {
	is := is.New(t)
	s := newConfigFile(&Config{})
	is.True(strings.HasPrefix(s, "# Kanban server configuration"))
	is.True(strings.Contains(s, "allowed_origins:\n"))
}
