// Package jwk wraps the bearer token signing secret in a JSON Web Key so
// that tokens carry a key id.
package jwk

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/charmbracelet/kanban/pkg/config"
	"github.com/go-jose/go-jose/v3"
	"github.com/golang-jwt/jwt/v5"
)

// SigningMethod is the JSON Web Token signing method. Tokens are signed with
// an HMAC secret.
var SigningMethod = jwt.SigningMethodHS256

// ErrEmptySecret is returned when no signing secret is configured.
var ErrEmptySecret = errors.New("empty signing secret")

// Pair is a symmetric JSON Web Key. The same secret signs and verifies.
type Pair struct {
	secret []byte
	jwk    jose.JSONWebKey
}

// Secret returns the signing secret.
func (p Pair) Secret() []byte {
	return p.secret
}

// JWK returns the JSON Web Key.
func (p Pair) JWK() jose.JSONWebKey {
	return p.jwk
}

// KeyID returns the key id placed in token headers.
func (p Pair) KeyID() string {
	return p.jwk.KeyID
}

// NewPair creates a JSON Web Key from the configured token secret.
func NewPair(cfg *config.Config) (Pair, error) {
	if cfg == nil {
		return Pair{}, config.ErrNilConfig
	}

	if cfg.Auth.JWTSecret == "" {
		return Pair{}, ErrEmptySecret
	}

	secret := []byte(cfg.Auth.JWTSecret)
	jwk := jose.JSONWebKey{
		Key:       secret,
		Algorithm: SigningMethod.Alg(),
		Use:       "sig",
	}

	jwk.KeyID = hex.EncodeToString(thumbprint(secret)[:8])

	return Pair{secret: secret, jwk: jwk}, nil
}

// thumbprint is the RFC 7638 SHA-256 thumbprint of a symmetric key. go-jose
// only computes thumbprints for asymmetric keys.
func thumbprint(secret []byte) []byte {
	members := fmt.Sprintf(`{"k":%q,"kty":"oct"}`, base64.RawURLEncoding.EncodeToString(secret))
	sum := sha256.Sum256([]byte(members))
	return sum[:]
}
