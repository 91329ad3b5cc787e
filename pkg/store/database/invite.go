package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/charmbracelet/kanban/pkg/db"
	"github.com/charmbracelet/kanban/pkg/db/models"
	"github.com/charmbracelet/kanban/pkg/store"
)

type inviteStore struct{}

var _ store.InviteStore = (*inviteStore)(nil)

// CreateInvite implements store.InviteStore.
func (*inviteStore) CreateInvite(ctx context.Context, h db.Handler, orgID int64, token string, email sql.NullString, createdBy int64, expiresAt time.Time) (models.OrganizationInvite, error) {
	query := h.Rebind(`
		INSERT INTO
		  organization_invites (org_id, token, email, status, created_by, expires_at)
		VALUES
		  (?, ?, ?, ?, ?, ?) RETURNING *
	`)
	var inv models.OrganizationInvite
	err := h.GetContext(ctx, &inv, query, orgID, token, email, models.InvitePending, createdBy, expiresAt.UTC())
	return inv, err //nolint:wrapcheck
}

// GetInviteByID implements store.InviteStore.
func (*inviteStore) GetInviteByID(ctx context.Context, h db.Handler, id int64) (models.OrganizationInvite, error) {
	query := h.Rebind(`SELECT * FROM organization_invites WHERE id = ?`)
	var inv models.OrganizationInvite
	err := h.GetContext(ctx, &inv, query, id)
	return inv, err //nolint:wrapcheck
}

// GetInviteByToken implements store.InviteStore.
func (*inviteStore) GetInviteByToken(ctx context.Context, h db.Handler, token string) (models.OrganizationInvite, error) {
	query := h.Rebind(`SELECT * FROM organization_invites WHERE token = ?`)
	var inv models.OrganizationInvite
	err := h.GetContext(ctx, &inv, query, token)
	return inv, err //nolint:wrapcheck
}

// ListInvitesByOrg implements store.InviteStore.
func (*inviteStore) ListInvitesByOrg(ctx context.Context, h db.Handler, orgID int64) ([]models.OrganizationInvite, error) {
	query := h.Rebind(`
		SELECT
		  *
		FROM
		  organization_invites
		WHERE
		  org_id = ?
		ORDER BY
		  id ASC
	`)
	var invs []models.OrganizationInvite
	err := h.SelectContext(ctx, &invs, query, orgID)
	return invs, err //nolint:wrapcheck
}

// SetInviteStatus implements store.InviteStore. Accepting an invite also
// records when it happened.
func (*inviteStore) SetInviteStatus(ctx context.Context, h db.Handler, id int64, status string) error {
	query := h.Rebind(`UPDATE organization_invites SET status = ? WHERE id = ?`)
	if status == models.InviteAccepted {
		query = h.Rebind(`UPDATE organization_invites
		SET status = ?, accepted_at = CURRENT_TIMESTAMP
		WHERE id = ?`)
	}
	_, err := h.ExecContext(ctx, query, status, id)
	return err //nolint:wrapcheck
}

// RevokeExpiredInvites implements store.InviteStore.
func (*inviteStore) RevokeExpiredInvites(ctx context.Context, h db.Handler, now time.Time) (int64, error) {
	query := h.Rebind(`
		UPDATE
		  organization_invites
		SET
		  status = ?
		WHERE
		  status = ?
		  AND expires_at IS NOT NULL
		  AND expires_at < ?
	`)
	res, err := h.ExecContext(ctx, query, models.InviteRevoked, models.InvitePending, now.UTC())
	if err != nil {
		return 0, err //nolint:wrapcheck
	}

	return res.RowsAffected() //nolint:wrapcheck
}

// DeleteInvitesByOrg implements store.InviteStore.
func (*inviteStore) DeleteInvitesByOrg(ctx context.Context, h db.Handler, orgID int64) error {
	query := h.Rebind(`DELETE FROM organization_invites WHERE org_id = ?`)
	_, err := h.ExecContext(ctx, query, orgID)
	return err //nolint:wrapcheck
}

// DeleteInvitesByUser implements store.InviteStore.
func (*inviteStore) DeleteInvitesByUser(ctx context.Context, h db.Handler, userID int64) error {
	query := h.Rebind(`DELETE FROM organization_invites WHERE created_by = ?`)
	_, err := h.ExecContext(ctx, query, userID)
	return err //nolint:wrapcheck
}
