package backend

import (
	"errors"
	"testing"
	"time"

	"github.com/charmbracelet/kanban/pkg/jwk"
	"github.com/charmbracelet/kanban/pkg/proto"
	"github.com/golang-jwt/jwt/v5"
	"github.com/matryer/is"
)

func TestIssueAndParseToken(t *testing.T) {
	is := is.New(t)
	ctx, be := setup(t)
	u := mustUser(t, ctx, be, "alice", false)

	token, err := be.IssueToken(u)
	is.NoErr(err)

	claims, err := be.ParseToken(token)
	is.NoErr(err)
	is.Equal(claims.Username, "alice")
	id, err := claims.UserID()
	is.NoErr(err)
	is.Equal(id, u.ID())

	got, err := be.UserByToken(ctx, token)
	is.NoErr(err)
	is.Equal(got.Username(), "alice")
}

func TestTokenExpiry(t *testing.T) {
	is := is.New(t)
	ctx, be := setup(t)
	u := mustUser(t, ctx, be, "alice", false)

	now := clock(be, time.Now())
	token, err := be.IssueToken(u)
	is.NoErr(err)

	*now = now.Add(be.cfg.Auth.TokenTTL() + time.Minute)
	_, err = be.ParseToken(token)
	is.True(errors.Is(err, proto.ErrTokenExpired))
	is.True(proto.IsUnauthenticated(err))
}

func TestInvalidTokens(t *testing.T) {
	ctx, be := setup(t)
	u := mustUser(t, ctx, be, "alice", false)

	other := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Username: "alice",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	other.Header["kid"] = be.jwk.KeyID()
	forged, err := other.SignedString([]byte("not-the-secret"))
	if err != nil {
		t.Fatal(err)
	}

	noKid := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "1"},
	})
	unkeyed, err := noKid.SignedString(be.jwk.Secret())
	if err != nil {
		t.Fatal(err)
	}

	valid, err := be.IssueToken(u)
	if err != nil {
		t.Fatal(err)
	}

	for name, token := range map[string]string{
		"garbage":   "not.a.token",
		"empty":     "",
		"forged":    forged,
		"no kid":    unkeyed,
		"truncated": valid[:len(valid)-4],
	} {
		t.Run(name, func(t *testing.T) {
			if _, err := be.ParseToken(token); !errors.Is(err, proto.ErrInvalidToken) {
				t.Errorf("ParseToken() => %v, want %v", err, proto.ErrInvalidToken)
			}
		})
	}
}

func TestTokenForDeletedUser(t *testing.T) {
	is := is.New(t)
	ctx, be := setup(t)
	u := mustUser(t, ctx, be, "alice", false)

	token, err := be.IssueToken(u)
	is.NoErr(err)
	is.NoErr(be.DeleteUser(ctx, nil, u.ID()))

	_, err = be.UserByToken(ctx, token)
	is.True(errors.Is(err, proto.ErrUserNotFound))
}

func TestLogin(t *testing.T) {
	is := is.New(t)
	ctx, be := setup(t)
	mustUser(t, ctx, be, "alice", false)

	token, err := be.Login(ctx, "Alice", "password")
	is.NoErr(err)
	is.True(token != "")

	_, err = be.Login(ctx, "alice", "wrong")
	is.Equal(err, proto.ErrInvalidCredentials)

	// Unknown users get exactly the same error as a wrong password.
	_, err = be.Login(ctx, "nobody", "password")
	is.Equal(err, proto.ErrInvalidCredentials)
}

func TestAuthenticate(t *testing.T) {
	is := is.New(t)
	ctx, be := setup(t)
	u := mustUser(t, ctx, be, "alice", false)

	_, err := be.Authenticate(ctx, "", "")
	is.Equal(err, proto.ErrUnauthorized)

	token, err := be.IssueToken(u)
	is.NoErr(err)
	got, err := be.Authenticate(ctx, "", token)
	is.NoErr(err)
	is.Equal(got.ID(), u.ID())

	_, key, err := be.CreateAPIKey(ctx, u, "ci", time.Time{})
	is.NoErr(err)
	got, err = be.Authenticate(ctx, key, "")
	is.NoErr(err)
	is.Equal(got.ID(), u.ID())

	// A present API key is authoritative, even next to a valid token.
	_, err = be.Authenticate(ctx, "kanban_bogus", token)
	is.Equal(err, proto.ErrInvalidAPIKey)
}

func TestTokenWithoutSecret(t *testing.T) {
	is := is.New(t)
	ctx, be := setup(t)
	u := mustUser(t, ctx, be, "alice", false)
	token, err := be.IssueToken(u)
	is.NoErr(err)

	cfg := *be.cfg
	cfg.Auth.JWTSecret = ""
	nosecret, err := New(ctx, &cfg, be.db, be.store)
	is.NoErr(err)

	_, err = nosecret.IssueToken(u)
	is.True(errors.Is(err, jwk.ErrEmptySecret))
	_, err = nosecret.ParseToken(token)
	is.True(errors.Is(err, proto.ErrInvalidToken))
}
