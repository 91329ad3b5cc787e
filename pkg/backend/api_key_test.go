package backend

import (
	"errors"
	"testing"
	"time"

	"github.com/charmbracelet/kanban/pkg/proto"
	"github.com/matryer/is"
)

func TestCreateAPIKey(t *testing.T) {
	is := is.New(t)
	ctx, be := setup(t)
	u := mustUser(t, ctx, be, "alice", false)

	k, key, err := be.CreateAPIKey(ctx, u, "CI Agent", time.Time{})
	is.NoErr(err)
	is.Equal(k.Name, "CI Agent")
	is.True(k.Active)
	is.True(!k.ExpiresAt.Valid)
	is.True(k.KeyHash != key)

	lookup, ok := APIKeyLookup(be.cfg.Auth.APIKeyPrefix, key)
	is.True(ok)
	is.Equal(k.Prefix, lookup)

	keys, err := be.APIKeys(ctx, u)
	is.NoErr(err)
	is.Equal(len(keys), 1)

	_, _, err = be.CreateAPIKey(ctx, u, " ", time.Time{})
	is.True(errors.Is(err, proto.ErrValidation))

	_, _, err = be.CreateAPIKey(ctx, u, "past", time.Now().Add(-time.Hour))
	is.True(errors.Is(err, proto.ErrValidation))
}

func TestUserByAPIKey(t *testing.T) {
	is := is.New(t)
	ctx, be := setup(t)
	u := mustUser(t, ctx, be, "alice", false)

	k, key, err := be.CreateAPIKey(ctx, u, "ci", time.Time{})
	is.NoErr(err)

	got, err := be.UserByAPIKey(ctx, key)
	is.NoErr(err)
	is.Equal(got.ID(), u.ID())

	keys, err := be.APIKeys(ctx, u)
	is.NoErr(err)
	is.True(keys[0].LastUsedAt.Valid)

	// Same lookup prefix, wrong secret.
	forged := key[:len(key)-1] + "0"
	if forged == key {
		forged = key[:len(key)-1] + "1"
	}
	_, err = be.UserByAPIKey(ctx, forged)
	is.Equal(err, proto.ErrInvalidAPIKey)

	_, err = be.UserByAPIKey(ctx, "nope")
	is.Equal(err, proto.ErrInvalidAPIKey)

	_, err = be.DeactivateAPIKey(ctx, u, k.ID)
	is.NoErr(err)
	_, err = be.UserByAPIKey(ctx, key)
	is.Equal(err, proto.ErrAPIKeyInactive)

	_, err = be.ActivateAPIKey(ctx, u, k.ID)
	is.NoErr(err)
	_, err = be.UserByAPIKey(ctx, key)
	is.NoErr(err)
}

func TestAPIKeyExpiry(t *testing.T) {
	is := is.New(t)
	ctx, be := setup(t)
	u := mustUser(t, ctx, be, "alice", false)

	start := time.Now()
	now := clock(be, start)
	_, key, err := be.CreateAPIKey(ctx, u, "short", start.Add(time.Hour))
	is.NoErr(err)

	_, err = be.UserByAPIKey(ctx, key)
	is.NoErr(err)

	*now = start.Add(2 * time.Hour)
	_, err = be.UserByAPIKey(ctx, key)
	is.Equal(err, proto.ErrAPIKeyExpired)

	res, err := be.ExpirySweep(ctx)
	is.NoErr(err)
	is.Equal(res.APIKeys, int64(1))

	// After the sweep the key is inactive as well.
	_, err = be.UserByAPIKey(ctx, key)
	is.Equal(err, proto.ErrAPIKeyInactive)
}

func TestAPIKeyOwnership(t *testing.T) {
	is := is.New(t)
	ctx, be := setup(t)
	alice := mustUser(t, ctx, be, "alice", false)
	bob := mustUser(t, ctx, be, "bob", false)

	k, _, err := be.CreateAPIKey(ctx, alice, "ci", time.Time{})
	is.NoErr(err)

	_, err = be.DeactivateAPIKey(ctx, bob, k.ID)
	is.Equal(err, proto.ErrAPIKeyNotFound)

	_, err = be.DeactivateAPIKey(ctx, alice, k.ID+100)
	is.Equal(err, proto.ErrAPIKeyNotFound)

	keys, err := be.APIKeys(ctx, bob)
	is.NoErr(err)
	is.Equal(len(keys), 0)
}
