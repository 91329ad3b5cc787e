package store

import (
	"context"
	"time"

	"github.com/charmbracelet/kanban/pkg/db"
	"github.com/charmbracelet/kanban/pkg/db/models"
)

// APIKeyStore is an interface for managing API keys.
type APIKeyStore interface {
	CreateAPIKey(ctx context.Context, h db.Handler, userID int64, name, prefix, keyHash string, expiresAt time.Time) (models.APIKey, error)
	GetAPIKey(ctx context.Context, h db.Handler, id int64) (models.APIKey, error)
	GetAPIKeyByPrefix(ctx context.Context, h db.Handler, prefix string) (models.APIKey, error)
	ListAPIKeysByUserID(ctx context.Context, h db.Handler, userID int64) ([]models.APIKey, error)
	SetAPIKeyActive(ctx context.Context, h db.Handler, userID, id int64, active bool) error
	TouchAPIKey(ctx context.Context, h db.Handler, id int64, usedAt time.Time) error
	DeactivateExpiredAPIKeys(ctx context.Context, h db.Handler, now time.Time) (int64, error)
	DeleteAPIKeysByUserID(ctx context.Context, h db.Handler, userID int64) error
}
