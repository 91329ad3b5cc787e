package backend

import (
	"errors"
	"strconv"

	"github.com/charmbracelet/kanban/pkg/jwk"
	"github.com/charmbracelet/kanban/pkg/proto"
	"github.com/golang-jwt/jwt/v5"
)

// Claims are the bearer token claims. The subject is the user id.
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// IssueToken returns a signed bearer token for user.
func (d *Backend) IssueToken(user proto.User) (string, error) {
	if len(d.jwk.Secret()) == 0 {
		return "", jwk.ErrEmptySecret
	}

	now := d.now()
	claims := Claims{
		Username: user.Username(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID(), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(d.cfg.Auth.TokenTTL())),
		},
	}

	token := jwt.NewWithClaims(jwk.SigningMethod, claims)
	token.Header["kid"] = d.jwk.KeyID()
	return token.SignedString(d.jwk.Secret())
}

// ParseToken verifies a bearer token and returns its claims. Expired tokens
// return proto.ErrTokenExpired, anything else that fails to verify returns
// proto.ErrInvalidToken.
func (d *Backend) ParseToken(bearer string) (*Claims, error) {
	if len(d.jwk.Secret()) == 0 {
		return nil, proto.ErrInvalidToken
	}

	token, err := jwt.ParseWithClaims(bearer, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		if kid, _ := t.Header["kid"].(string); kid != d.jwk.KeyID() {
			return nil, errors.New("unknown key id")
		}

		return d.jwk.Secret(), nil
	},
		jwt.WithValidMethods([]string{jwk.SigningMethod.Alg()}),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(d.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, proto.ErrTokenExpired
		}
		d.logger.Debug("failed to parse jwt", "err", err)
		return nil, proto.ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !token.Valid || !ok {
		return nil, proto.ErrInvalidToken
	}

	return claims, nil
}

// UserID returns the user id carried by the token.
func (c *Claims) UserID() (int64, error) {
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil {
		return 0, proto.ErrInvalidToken
	}
	return id, nil
}
