package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/charmbracelet/kanban/pkg/db"
	"github.com/charmbracelet/kanban/pkg/db/models"
)

// InviteStore is an interface for managing organization invites.
type InviteStore interface {
	CreateInvite(ctx context.Context, h db.Handler, orgID int64, token string, email sql.NullString, createdBy int64, expiresAt time.Time) (models.OrganizationInvite, error)
	GetInviteByID(ctx context.Context, h db.Handler, id int64) (models.OrganizationInvite, error)
	GetInviteByToken(ctx context.Context, h db.Handler, token string) (models.OrganizationInvite, error)
	ListInvitesByOrg(ctx context.Context, h db.Handler, orgID int64) ([]models.OrganizationInvite, error)
	SetInviteStatus(ctx context.Context, h db.Handler, id int64, status string) error
	RevokeExpiredInvites(ctx context.Context, h db.Handler, now time.Time) (int64, error)
	DeleteInvitesByOrg(ctx context.Context, h db.Handler, orgID int64) error
	DeleteInvitesByUser(ctx context.Context, h db.Handler, userID int64) error
}
