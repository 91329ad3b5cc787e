package database

import (
	"context"

	"github.com/charmbracelet/kanban/pkg/db"
	"github.com/charmbracelet/kanban/pkg/db/models"
	"github.com/charmbracelet/kanban/pkg/store"
)

type orgStore struct{}

var _ store.OrgStore = (*orgStore)(nil)

// CreateOrg implements store.OrgStore.
func (*orgStore) CreateOrg(ctx context.Context, h db.Handler, ownerID int64, name, slug string) (models.Organization, error) {
	query := h.Rebind(`
		INSERT INTO
		  organizations (name, slug, owner_id, updated_at)
		VALUES
		  (?, ?, ?, CURRENT_TIMESTAMP) RETURNING *
	`)
	var org models.Organization
	err := h.GetContext(ctx, &org, query, name, slug, ownerID)
	return org, err //nolint:wrapcheck
}

// GetOrgByID implements store.OrgStore.
func (*orgStore) GetOrgByID(ctx context.Context, h db.Handler, id int64) (models.Organization, error) {
	query := h.Rebind(`
		SELECT
		  *
		FROM
		  organizations
		WHERE
		  id = ?
	`)
	var org models.Organization
	err := h.GetContext(ctx, &org, query, id)
	return org, err //nolint:wrapcheck
}

// ListOrgsByUser implements store.OrgStore.
func (*orgStore) ListOrgsByUser(ctx context.Context, h db.Handler, userID int64) ([]models.Organization, error) {
	query := h.Rebind(`
		SELECT
		  o.*
		FROM
		  organizations o
		  LEFT JOIN organization_members om ON om.org_id = o.id AND om.user_id = ?
		WHERE
		  o.owner_id = ?
		  OR om.user_id IS NOT NULL
		ORDER BY
		  o.id ASC
	`)
	var orgs []models.Organization
	err := h.SelectContext(ctx, &orgs, query, userID, userID)
	return orgs, err //nolint:wrapcheck
}

// ListOrgsByOwner implements store.OrgStore.
func (*orgStore) ListOrgsByOwner(ctx context.Context, h db.Handler, userID int64) ([]models.Organization, error) {
	query := h.Rebind(`
		SELECT
		  *
		FROM
		  organizations
		WHERE
		  owner_id = ?
		ORDER BY
		  id ASC
	`)
	var orgs []models.Organization
	err := h.SelectContext(ctx, &orgs, query, userID)
	return orgs, err //nolint:wrapcheck
}

// GetAllOrgs implements store.OrgStore.
func (*orgStore) GetAllOrgs(ctx context.Context, h db.Handler, limit, offset int) ([]models.Organization, error) {
	query := h.Rebind(`
		SELECT
		  *
		FROM
		  organizations
		ORDER BY
		  id ASC
		LIMIT ? OFFSET ?
	`)
	var orgs []models.Organization
	err := h.SelectContext(ctx, &orgs, query, limit, offset)
	return orgs, err //nolint:wrapcheck
}

// UpdateOrg implements store.OrgStore.
func (*orgStore) UpdateOrg(ctx context.Context, h db.Handler, id int64, name string, ownerID int64) error {
	query := h.Rebind(`
		UPDATE
		  organizations
		SET
		  name = ?,
		  owner_id = ?,
		  updated_at = CURRENT_TIMESTAMP
		WHERE
		  id = ?
	`)
	_, err := h.ExecContext(ctx, query, name, ownerID, id)
	return err //nolint:wrapcheck
}

// DeleteOrgByID implements store.OrgStore.
func (*orgStore) DeleteOrgByID(ctx context.Context, h db.Handler, id int64) error {
	query := h.Rebind(`
		DELETE FROM organizations
		WHERE
		  id = ?
	`)
	_, err := h.ExecContext(ctx, query, id)
	return err //nolint:wrapcheck
}

// AddOrgMember implements store.OrgStore.
func (*orgStore) AddOrgMember(ctx context.Context, h db.Handler, orgID, userID int64) error {
	query := h.Rebind(`
		INSERT INTO
		  organization_members (org_id, user_id)
		VALUES
		  (?, ?)
	`)
	_, err := h.ExecContext(ctx, query, orgID, userID)
	return err //nolint:wrapcheck
}

// RemoveOrgMember implements store.OrgStore.
func (*orgStore) RemoveOrgMember(ctx context.Context, h db.Handler, orgID, userID int64) error {
	query := h.Rebind(`
		DELETE FROM organization_members
		WHERE
		  org_id = ?
		  AND user_id = ?
	`)
	_, err := h.ExecContext(ctx, query, orgID, userID)
	return err //nolint:wrapcheck
}

// RemoveOrgMembers implements store.OrgStore.
func (*orgStore) RemoveOrgMembers(ctx context.Context, h db.Handler, orgID int64) error {
	query := h.Rebind(`DELETE FROM organization_members WHERE org_id = ?`)
	_, err := h.ExecContext(ctx, query, orgID)
	return err //nolint:wrapcheck
}

// RemoveUserOrgMemberships implements store.OrgStore.
func (*orgStore) RemoveUserOrgMemberships(ctx context.Context, h db.Handler, userID int64) error {
	query := h.Rebind(`DELETE FROM organization_members WHERE user_id = ?`)
	_, err := h.ExecContext(ctx, query, userID)
	return err //nolint:wrapcheck
}

// IsOrgMember implements store.OrgStore.
func (*orgStore) IsOrgMember(ctx context.Context, h db.Handler, orgID, userID int64) (bool, error) {
	query := h.Rebind(`
		SELECT
		  COUNT(*)
		FROM
		  organization_members
		WHERE
		  org_id = ?
		  AND user_id = ?
	`)
	var n int
	err := h.GetContext(ctx, &n, query, orgID, userID)
	return n > 0, err //nolint:wrapcheck
}

// ListOrgMembers implements store.OrgStore.
func (*orgStore) ListOrgMembers(ctx context.Context, h db.Handler, orgID int64) ([]models.OrganizationMember, error) {
	query := h.Rebind(`
		SELECT
		  om.id,
		  om.org_id,
		  om.user_id,
		  u.username,
		  om.joined_at
		FROM
		  organization_members om
		  JOIN users u ON u.id = om.user_id
		WHERE
		  om.org_id = ?
		ORDER BY
		  om.id ASC
	`)
	var members []models.OrganizationMember
	err := h.SelectContext(ctx, &members, query, orgID)
	return members, err //nolint:wrapcheck
}

// ListOrgIDsByUser implements store.OrgStore.
func (*orgStore) ListOrgIDsByUser(ctx context.Context, h db.Handler, userID int64) ([]int64, error) {
	query := h.Rebind(`SELECT org_id FROM organization_members WHERE user_id = ?`)
	var ids []int64
	err := h.SelectContext(ctx, &ids, query, userID)
	return ids, err //nolint:wrapcheck
}
