package database

import (
	"context"
	"time"

	"github.com/charmbracelet/kanban/pkg/db"
	"github.com/charmbracelet/kanban/pkg/db/models"
	"github.com/charmbracelet/kanban/pkg/store"
)

type apiKeyStore struct{}

var _ store.APIKeyStore = (*apiKeyStore)(nil)

// CreateAPIKey implements store.APIKeyStore. A zero expiresAt creates a key
// that never expires.
func (s *apiKeyStore) CreateAPIKey(ctx context.Context, h db.Handler, userID int64, name, prefix, keyHash string, expiresAt time.Time) (models.APIKey, error) {
	queryWithoutExpires := `INSERT INTO api_keys (user_id, name, prefix, key_hash)
	VALUES (?, ?, ?, ?) RETURNING id`
	queryWithExpires := `INSERT INTO api_keys (user_id, name, prefix, key_hash, expires_at)
	VALUES (?, ?, ?, ?, ?) RETURNING id`

	query := queryWithoutExpires
	values := []interface{}{
		userID, name, prefix, keyHash,
	}

	if !expiresAt.IsZero() {
		query = queryWithExpires
		values = append(values, expiresAt.UTC())
	}

	var id int64
	if err := h.GetContext(ctx, &id, h.Rebind(query), values...); err != nil {
		return models.APIKey{}, err //nolint:wrapcheck
	}

	return s.GetAPIKey(ctx, h, id)
}

// GetAPIKey implements store.APIKeyStore.
func (*apiKeyStore) GetAPIKey(ctx context.Context, h db.Handler, id int64) (models.APIKey, error) {
	var key models.APIKey
	query := h.Rebind(`SELECT * FROM api_keys WHERE id = ?`)
	err := h.GetContext(ctx, &key, query, id)
	return key, err //nolint:wrapcheck
}

// GetAPIKeyByPrefix implements store.APIKeyStore.
func (*apiKeyStore) GetAPIKeyByPrefix(ctx context.Context, h db.Handler, prefix string) (models.APIKey, error) {
	var key models.APIKey
	query := h.Rebind(`SELECT * FROM api_keys WHERE prefix = ?`)
	err := h.GetContext(ctx, &key, query, prefix)
	return key, err //nolint:wrapcheck
}

// ListAPIKeysByUserID implements store.APIKeyStore.
func (*apiKeyStore) ListAPIKeysByUserID(ctx context.Context, h db.Handler, userID int64) ([]models.APIKey, error) {
	var keys []models.APIKey
	query := h.Rebind(`SELECT * FROM api_keys WHERE user_id = ? ORDER BY id ASC`)
	err := h.SelectContext(ctx, &keys, query, userID)
	return keys, err //nolint:wrapcheck
}

// SetAPIKeyActive implements store.APIKeyStore.
func (*apiKeyStore) SetAPIKeyActive(ctx context.Context, h db.Handler, userID, id int64, active bool) error {
	query := h.Rebind(`UPDATE api_keys SET is_active = ? WHERE user_id = ? AND id = ?`)
	_, err := h.ExecContext(ctx, query, active, userID, id)
	return err //nolint:wrapcheck
}

// TouchAPIKey implements store.APIKeyStore.
func (*apiKeyStore) TouchAPIKey(ctx context.Context, h db.Handler, id int64, usedAt time.Time) error {
	query := h.Rebind(`UPDATE api_keys SET last_used_at = ? WHERE id = ?`)
	_, err := h.ExecContext(ctx, query, usedAt.UTC(), id)
	return err //nolint:wrapcheck
}

// DeactivateExpiredAPIKeys implements store.APIKeyStore.
func (*apiKeyStore) DeactivateExpiredAPIKeys(ctx context.Context, h db.Handler, now time.Time) (int64, error) {
	query := h.Rebind(`UPDATE api_keys
	SET is_active = ?
	WHERE is_active = ? AND expires_at IS NOT NULL AND expires_at < ?`)
	res, err := h.ExecContext(ctx, query, false, true, now.UTC())
	if err != nil {
		return 0, err //nolint:wrapcheck
	}

	return res.RowsAffected() //nolint:wrapcheck
}

// DeleteAPIKeysByUserID implements store.APIKeyStore.
func (*apiKeyStore) DeleteAPIKeysByUserID(ctx context.Context, h db.Handler, userID int64) error {
	query := h.Rebind(`DELETE FROM api_keys WHERE user_id = ?`)
	_, err := h.ExecContext(ctx, query, userID)
	return err //nolint:wrapcheck
}
