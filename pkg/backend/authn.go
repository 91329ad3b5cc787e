package backend

import (
	"context"
	"errors"

	"github.com/charmbracelet/kanban/pkg/db"
	"github.com/charmbracelet/kanban/pkg/db/models"
	"github.com/charmbracelet/kanban/pkg/proto"
	"github.com/charmbracelet/kanban/pkg/utils"
)

// Login checks a username and password pair and returns a signed bearer
// token. Unknown users and wrong passwords return the same error.
func (d *Backend) Login(ctx context.Context, username, password string) (string, error) {
	username = utils.SanitizeUsername(username)
	m, err := d.store.FindUserByUsername(ctx, d.db, username)
	if err != nil {
		if err := db.WrapError(err); !errors.Is(err, db.ErrRecordNotFound) {
			return "", err
		}
		return "", proto.ErrInvalidCredentials
	}

	if !m.Password.Valid || !VerifyPassword(password, m.Password.String) {
		return "", proto.ErrInvalidCredentials
	}

	return d.IssueToken(&user{user: m})
}

// UserByToken resolves a bearer token to its user. A token for a user that
// no longer exists returns proto.ErrUserNotFound.
func (d *Backend) UserByToken(ctx context.Context, bearer string) (proto.User, error) {
	claims, err := d.ParseToken(bearer)
	if err != nil {
		return nil, err
	}

	id, err := claims.UserID()
	if err != nil {
		return nil, err
	}

	return d.UserByID(ctx, id)
}

// UserByAPIKey resolves an API key to its owner and records the time it was
// used. Inactive and expired keys return distinct errors.
func (d *Backend) UserByAPIKey(ctx context.Context, key string) (proto.User, error) {
	lookup, ok := APIKeyLookup(d.cfg.Auth.APIKeyPrefix, key)
	if !ok {
		return nil, proto.ErrInvalidAPIKey
	}

	var m models.User
	if err := d.db.TransactionContext(ctx, func(tx *db.Tx) error {
		k, err := d.store.GetAPIKeyByPrefix(ctx, tx, lookup)
		if err != nil {
			return wrapNotFound(err, proto.ErrInvalidAPIKey)
		}

		if !d.keys.Verified(key, k.KeyHash) {
			if !VerifyAPIKey(key, k.KeyHash) {
				return proto.ErrInvalidAPIKey
			}
			d.keys.Set(key, k.KeyHash)
		}

		if !k.Active {
			return proto.ErrAPIKeyInactive
		}

		now := d.now()
		if k.ExpiresAt.Valid && k.ExpiresAt.Time.Before(now) {
			return proto.ErrAPIKeyExpired
		}

		m, err = d.store.GetUserByID(ctx, tx, k.UserID)
		if err != nil {
			return wrapNotFound(err, proto.ErrUserNotFound)
		}

		return db.WrapError(d.store.TouchAPIKey(ctx, tx, k.ID, now))
	}); err != nil {
		if !proto.IsUnauthenticated(err) && !proto.IsNotFound(err) {
			d.logger.Error("failed to resolve API key", "err", err)
		}
		return nil, err
	}

	return &user{user: m}, nil
}

// Authenticate resolves the credentials of a request. The API key is tried
// first when present, then the bearer token. With neither it returns
// proto.ErrUnauthorized.
func (d *Backend) Authenticate(ctx context.Context, apiKey, bearer string) (proto.User, error) {
	switch {
	case apiKey != "":
		return d.UserByAPIKey(ctx, apiKey)
	case bearer != "":
		return d.UserByToken(ctx, bearer)
	default:
		return nil, proto.ErrUnauthorized
	}
}
