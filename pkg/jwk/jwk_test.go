package jwk

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"testing"

	"github.com/charmbracelet/kanban/pkg/config"
)

func TestBadNewPair(t *testing.T) {
	_, err := NewPair(nil)
	if !errors.Is(err, config.ErrNilConfig) {
		t.Errorf("NewPair(nil) => %v, want %v", err, config.ErrNilConfig)
	}

	_, err = NewPair(config.DefaultConfig())
	if !errors.Is(err, ErrEmptySecret) {
		t.Errorf("NewPair(cfg) => %v, want %v", err, ErrEmptySecret)
	}
}

func TestGoodNewPair(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Auth.JWTSecret = "s3cr3t"
	p, err := NewPair(cfg)
	if err != nil {
		t.Fatalf("NewPair(cfg) => _, %v, want nil error", err)
	}
	if len(p.KeyID()) != 16 {
		t.Errorf("KeyID() = %q, want 16 hex chars", p.KeyID())
	}
	if string(p.Secret()) != "s3cr3t" {
		t.Errorf("Secret() = %q", p.Secret())
	}
	if p.JWK().Algorithm != "HS256" {
		t.Errorf("Algorithm = %q, want HS256", p.JWK().Algorithm)
	}
}

func TestKeyIDIsStable(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Auth.JWTSecret = "one"
	a, _ := NewPair(cfg)
	b, _ := NewPair(cfg)
	cfg.Auth.JWTSecret = "two"
	c, _ := NewPair(cfg)

	if a.KeyID() != b.KeyID() {
		t.Errorf("same secret gave different key ids")
	}
	if a.KeyID() == c.KeyID() {
		t.Errorf("different secrets gave the same key id")
	}
}

func TestThumbprint(t *testing.T) {
	// RFC 7638 over {"k":"c2VjcmV0","kty":"oct"} for the secret "secret".
	got := hex.EncodeToString(thumbprint([]byte("secret")))
	sum := sha256.Sum256([]byte(`{"k":"c2VjcmV0","kty":"oct"}`))
	if want := hex.EncodeToString(sum[:]); got != want {
		t.Errorf("thumbprint(secret) = %s, want %s", got, want)
	}

	cfg := config.DefaultConfig()
	cfg.Auth.JWTSecret = "secret"
	p, err := NewPair(cfg)
	if err != nil {
		t.Fatalf("NewPair(cfg) => _, %v, want nil error", err)
	}
	if p.KeyID() != got[:16] {
		t.Errorf("KeyID() = %q, want %q", p.KeyID(), got[:16])
	}
}
