package backend

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/kanban/pkg/db"
	"github.com/charmbracelet/kanban/pkg/db/models"
	"github.com/charmbracelet/kanban/pkg/proto"
)

const apiKeyAttempts = 3

// CreateAPIKey creates an API key for user. The full key is returned once
// and never stored. A zero expiresAt means the key never expires.
func (d *Backend) CreateAPIKey(ctx context.Context, user proto.User, name string, expiresAt time.Time) (models.APIKey, string, error) {
	if user == nil {
		return models.APIKey{}, "", proto.ErrUnauthorized
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return models.APIKey{}, "", proto.NewValidationError("API key name cannot be empty")
	}
	if !expiresAt.IsZero() && !expiresAt.After(d.now()) {
		return models.APIKey{}, "", proto.NewValidationError("API key expiry must be in the future")
	}

	prefix := d.cfg.Auth.APIKeyPrefix
	for i := 0; i < apiKeyAttempts; i++ {
		key, err := GenerateAPIKey(prefix)
		if err != nil {
			return models.APIKey{}, "", err
		}

		lookup, _ := APIKeyLookup(prefix, key)
		hash, err := HashAPIKey(key)
		if err != nil {
			return models.APIKey{}, "", err
		}

		var k models.APIKey
		err = d.db.TransactionContext(ctx, func(tx *db.Tx) error {
			k, err = d.store.CreateAPIKey(ctx, tx, user.ID(), name, lookup, hash, expiresAt)
			return db.WrapError(err)
		})
		if errors.Is(err, db.ErrDuplicateKey) {
			d.logger.Debug("API key lookup collision, retrying", "attempt", i+1)
			continue
		}
		if err != nil {
			return models.APIKey{}, "", err
		}

		d.keys.Set(key, hash)
		d.logger.Info("API key created", "user", user.Username(), "id", k.ID)
		return k, key, nil
	}

	return models.APIKey{}, "", errors.New("could not generate a unique API key")
}

// APIKeys lists the API keys of user.
func (d *Backend) APIKeys(ctx context.Context, user proto.User) ([]models.APIKey, error) {
	if user == nil {
		return nil, proto.ErrUnauthorized
	}

	keys, err := d.store.ListAPIKeysByUserID(ctx, d.db, user.ID())
	return keys, db.WrapError(err)
}

// DeactivateAPIKey turns off one of user's API keys.
func (d *Backend) DeactivateAPIKey(ctx context.Context, user proto.User, id int64) (models.APIKey, error) {
	return d.setAPIKeyActive(ctx, user, id, false)
}

// ActivateAPIKey turns one of user's API keys back on.
func (d *Backend) ActivateAPIKey(ctx context.Context, user proto.User, id int64) (models.APIKey, error) {
	return d.setAPIKeyActive(ctx, user, id, true)
}

func (d *Backend) setAPIKeyActive(ctx context.Context, user proto.User, id int64, active bool) (models.APIKey, error) {
	if user == nil {
		return models.APIKey{}, proto.ErrUnauthorized
	}

	var k models.APIKey
	err := d.db.TransactionContext(ctx, func(tx *db.Tx) error {
		var err error
		k, err = d.store.GetAPIKey(ctx, tx, id)
		if err != nil {
			return wrapNotFound(err, proto.ErrAPIKeyNotFound)
		}
		// Other users' keys don't exist as far as the caller is concerned.
		if k.UserID != user.ID() {
			return proto.ErrAPIKeyNotFound
		}

		if err := d.store.SetAPIKeyActive(ctx, tx, user.ID(), id, active); err != nil {
			return db.WrapError(err)
		}
		k.Active = active
		return nil
	})
	return k, err
}
