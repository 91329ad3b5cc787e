package backend

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/charmbracelet/kanban/pkg/access"
	"github.com/charmbracelet/kanban/pkg/db"
	"github.com/charmbracelet/kanban/pkg/db/models"
	"github.com/charmbracelet/kanban/pkg/proto"
	"github.com/google/uuid"
)

// InviteTTL is how long an invite stays valid.
const InviteTTL = 7 * 24 * time.Hour

// InviteInfo is the public view of an invite.
type InviteInfo struct {
	OrgID   int64
	OrgName string
	Email   sql.NullString
	Status  string
}

// CreateInvite creates an invite to an organization, optionally addressed to
// an email. Only the owner may.
func (d *Backend) CreateInvite(ctx context.Context, user proto.User, orgID int64, email string) (models.OrganizationInvite, error) {
	var inv models.OrganizationInvite
	err := d.db.TransactionContext(ctx, func(tx *db.Tx) error {
		org, a, err := d.orgForActor(ctx, tx, user, orgID)
		if err != nil {
			return err
		}
		if !access.CanManageInvites(a, orgFacts(org)) {
			return proto.NewForbiddenError("Only the owner can create invites")
		}

		var addr sql.NullString
		if email = strings.TrimSpace(email); email != "" {
			addr = sql.NullString{String: email, Valid: true}
		}

		inv, err = d.store.CreateInvite(ctx, tx, orgID, uuid.NewString(), addr, user.ID(), d.now().Add(InviteTTL))
		return db.WrapError(err)
	})
	return inv, err
}

// Invites lists the invites of an organization. Members may.
func (d *Backend) Invites(ctx context.Context, user proto.User, orgID int64) ([]models.OrganizationInvite, error) {
	var invites []models.OrganizationInvite
	err := d.db.TransactionContext(ctx, func(tx *db.Tx) error {
		org, a, err := d.orgForActor(ctx, tx, user, orgID)
		if err != nil {
			return err
		}
		if !access.CanViewOrg(a, orgFacts(org)) {
			return proto.NewForbiddenError("Not a member of this organization")
		}

		invites, err = d.store.ListInvitesByOrg(ctx, tx, orgID)
		return db.WrapError(err)
	})
	return invites, err
}

// RevokeInvite revokes an invite. Only the owner may.
func (d *Backend) RevokeInvite(ctx context.Context, user proto.User, orgID, inviteID int64) error {
	return d.db.TransactionContext(ctx, func(tx *db.Tx) error {
		org, a, err := d.orgForActor(ctx, tx, user, orgID)
		if err != nil {
			return err
		}

		inv, err := d.store.GetInviteByID(ctx, tx, inviteID)
		if err != nil {
			return wrapNotFound(err, proto.ErrInviteNotFound)
		}
		if inv.OrganizationID != orgID {
			return proto.ErrInviteNotFound
		}
		if !access.CanManageInvites(a, orgFacts(org)) {
			return proto.NewForbiddenError("Only the owner can revoke invites")
		}

		return db.WrapError(d.store.SetInviteStatus(ctx, tx, inviteID, models.InviteRevoked))
	})
}

// pendingInvite loads an invite by token. Revoked, accepted and expired
// invites are reported as not found.
func (d *Backend) pendingInvite(ctx context.Context, tx db.Handler, token string) (models.OrganizationInvite, error) {
	inv, err := d.store.GetInviteByToken(ctx, tx, token)
	if err != nil {
		return inv, wrapNotFound(err, proto.ErrInviteNotFound)
	}
	if inv.Status != models.InvitePending {
		return inv, proto.ErrInviteNotFound
	}
	if inv.ExpiresAt.Valid && inv.ExpiresAt.Time.Before(d.now()) {
		return inv, proto.ErrInviteNotFound
	}
	return inv, nil
}

// InviteByToken returns the public details of a pending invite. It needs no
// authentication.
func (d *Backend) InviteByToken(ctx context.Context, token string) (InviteInfo, error) {
	var info InviteInfo
	err := d.db.TransactionContext(ctx, func(tx *db.Tx) error {
		inv, err := d.pendingInvite(ctx, tx, token)
		if err != nil {
			return err
		}

		org, err := d.store.GetOrgByID(ctx, tx, inv.OrganizationID)
		if err != nil {
			return wrapNotFound(err, proto.ErrInviteNotFound)
		}

		info = InviteInfo{
			OrgID:   org.ID,
			OrgName: org.Name,
			Email:   inv.Email,
			Status:  inv.Status,
		}
		return nil
	})
	return info, err
}

// AcceptInvite makes user a member of the invite's organization.
func (d *Backend) AcceptInvite(ctx context.Context, user proto.User, token string) (models.OrganizationMember, error) {
	if user == nil {
		return models.OrganizationMember{}, proto.ErrUnauthorized
	}

	var member models.OrganizationMember
	err := d.db.TransactionContext(ctx, func(tx *db.Tx) error {
		inv, err := d.pendingInvite(ctx, tx, token)
		if err != nil {
			return err
		}

		ok, err := d.store.IsOrgMember(ctx, tx, inv.OrganizationID, user.ID())
		if err != nil {
			return db.WrapError(err)
		}
		if ok {
			return proto.ErrAlreadyMember
		}

		if err := d.store.AddOrgMember(ctx, tx, inv.OrganizationID, user.ID()); err != nil {
			return wrapDuplicate(err, proto.ErrAlreadyMember)
		}
		if err := d.store.SetInviteStatus(ctx, tx, inv.ID, models.InviteAccepted); err != nil {
			return db.WrapError(err)
		}

		member, err = d.findOrgMember(ctx, tx, inv.OrganizationID, user.ID())
		return err
	})
	return member, err
}
