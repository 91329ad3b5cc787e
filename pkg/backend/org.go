package backend

import (
	"context"
	"strings"

	"github.com/charmbracelet/kanban/pkg/access"
	"github.com/charmbracelet/kanban/pkg/db"
	"github.com/charmbracelet/kanban/pkg/db/models"
	"github.com/charmbracelet/kanban/pkg/proto"
	"github.com/charmbracelet/kanban/pkg/utils"
)

// orgName validates an organization name and returns it with its slug. An
// empty slug is derived from the name.
func orgName(name, slug string) (string, string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", "", proto.NewValidationError("organization name cannot be empty")
	}

	if slug == "" {
		slug = utils.Slugify(name)
	}
	if err := utils.ValidateSlug(slug); err != nil {
		return "", "", proto.NewValidationError(err.Error())
	}

	return name, slug, nil
}

// CreateOrg creates an organization owned by user. The owner is also added
// as a member.
func (d *Backend) CreateOrg(ctx context.Context, user proto.User, name, slug string) (models.Organization, error) {
	if user == nil {
		return models.Organization{}, proto.ErrUnauthorized
	}

	return d.createOrg(ctx, user.ID(), name, slug)
}

func (d *Backend) createOrg(ctx context.Context, ownerID int64, name, slug string) (models.Organization, error) {
	name, slug, err := orgName(name, slug)
	if err != nil {
		return models.Organization{}, err
	}

	var org models.Organization
	if err := d.db.TransactionContext(ctx, func(tx *db.Tx) error {
		if _, err := d.store.GetUserByID(ctx, tx, ownerID); err != nil {
			return wrapNotFound(err, proto.ErrUserNotFound)
		}

		org, err = d.store.CreateOrg(ctx, tx, ownerID, name, slug)
		if err != nil {
			return wrapDuplicate(err, proto.ErrSlugExist)
		}

		return db.WrapError(d.store.AddOrgMember(ctx, tx, org.ID, ownerID))
	}); err != nil {
		return models.Organization{}, err
	}

	d.logger.Info("organization created", "id", org.ID, "slug", org.Slug, "owner", ownerID)
	return org, nil
}

// Orgs returns the organizations user owns or belongs to.
func (d *Backend) Orgs(ctx context.Context, user proto.User) ([]models.Organization, error) {
	if user == nil {
		return nil, proto.ErrUnauthorized
	}

	orgs, err := d.store.ListOrgsByUser(ctx, d.db, user.ID())
	return orgs, db.WrapError(err)
}

// orgForActor loads an organization and the actor in tx, failing with
// proto.ErrOrgNotFound before any access decision.
func (d *Backend) orgForActor(ctx context.Context, tx db.Handler, user proto.User, id int64) (models.Organization, access.Actor, error) {
	a, err := d.actor(ctx, tx, user)
	if err != nil {
		return models.Organization{}, a, err
	}

	org, err := d.store.GetOrgByID(ctx, tx, id)
	if err != nil {
		return org, a, wrapNotFound(err, proto.ErrOrgNotFound)
	}

	return org, a, nil
}

// Org returns an organization the user owns or belongs to.
func (d *Backend) Org(ctx context.Context, user proto.User, id int64) (models.Organization, error) {
	var org models.Organization
	err := d.db.TransactionContext(ctx, func(tx *db.Tx) error {
		var (
			a   access.Actor
			err error
		)
		org, a, err = d.orgForActor(ctx, tx, user, id)
		if err != nil {
			return err
		}
		if !access.CanViewOrg(a, orgFacts(org)) {
			return proto.ErrForbidden
		}
		return nil
	})
	return org, err
}

// UpdateOrg renames an organization. Only the owner may.
func (d *Backend) UpdateOrg(ctx context.Context, user proto.User, id int64, name string) (models.Organization, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Organization{}, proto.NewValidationError("organization name cannot be empty")
	}

	var org models.Organization
	err := d.db.TransactionContext(ctx, func(tx *db.Tx) error {
		var (
			a   access.Actor
			err error
		)
		org, a, err = d.orgForActor(ctx, tx, user, id)
		if err != nil {
			return err
		}
		if !access.CanUpdateOrg(a, orgFacts(org)) {
			return proto.ErrForbidden
		}

		if err := d.store.UpdateOrg(ctx, tx, id, name, org.OwnerID); err != nil {
			return db.WrapError(err)
		}
		org, err = d.store.GetOrgByID(ctx, tx, id)
		return db.WrapError(err)
	})
	return org, err
}

// DeleteOrg deletes an organization with its teams, memberships and invites.
// Boards shared with the organization or its teams lose the share. Only the
// owner may.
func (d *Backend) DeleteOrg(ctx context.Context, user proto.User, id int64) error {
	return d.db.TransactionContext(ctx, func(tx *db.Tx) error {
		org, a, err := d.orgForActor(ctx, tx, user, id)
		if err != nil {
			return err
		}
		if !access.CanDeleteOrg(a, orgFacts(org)) {
			return proto.ErrForbidden
		}

		return d.deleteOrgTx(ctx, tx, id)
	})
}

func (d *Backend) deleteOrgTx(ctx context.Context, tx db.Handler, id int64) error {
	teams, err := d.store.ListTeamsByOrg(ctx, tx, id)
	if err != nil {
		return db.WrapError(err)
	}
	for _, t := range teams {
		if err := d.deleteTeamTx(ctx, tx, t.ID); err != nil {
			return err
		}
	}

	for _, step := range []func(context.Context, db.Handler, int64) error{
		d.store.ClearBoardOrg,
		d.store.DeleteInvitesByOrg,
		d.store.RemoveOrgMembers,
		d.store.DeleteOrgByID,
	} {
		if err := step(ctx, tx, id); err != nil {
			return db.WrapError(err)
		}
	}

	d.logger.Info("organization deleted", "id", id)
	return nil
}

// OrgMembers lists the members of an organization.
func (d *Backend) OrgMembers(ctx context.Context, user proto.User, id int64) ([]models.OrganizationMember, error) {
	var members []models.OrganizationMember
	err := d.db.TransactionContext(ctx, func(tx *db.Tx) error {
		org, a, err := d.orgForActor(ctx, tx, user, id)
		if err != nil {
			return err
		}
		if !access.CanViewOrg(a, orgFacts(org)) {
			return proto.ErrForbidden
		}

		members, err = d.store.ListOrgMembers(ctx, tx, id)
		return db.WrapError(err)
	})
	return members, err
}

// AddOrgMember adds the user called username to an organization. Only the
// owner may. Adding an existing member returns proto.ErrAlreadyMember.
func (d *Backend) AddOrgMember(ctx context.Context, user proto.User, orgID int64, username string) (models.OrganizationMember, error) {
	var member models.OrganizationMember
	err := d.db.TransactionContext(ctx, func(tx *db.Tx) error {
		org, a, err := d.orgForActor(ctx, tx, user, orgID)
		if err != nil {
			return err
		}
		if !access.CanAddOrgMember(a, orgFacts(org)) {
			return proto.ErrForbidden
		}

		member, err = d.addOrgMemberTx(ctx, tx, orgID, username)
		return err
	})
	return member, err
}

func (d *Backend) addOrgMemberTx(ctx context.Context, tx db.Handler, orgID int64, username string) (models.OrganizationMember, error) {
	target, err := d.store.FindUserByUsername(ctx, tx, utils.SanitizeUsername(username))
	if err != nil {
		return models.OrganizationMember{}, wrapNotFound(err, proto.ErrUserNotFound)
	}

	ok, err := d.store.IsOrgMember(ctx, tx, orgID, target.ID)
	if err != nil {
		return models.OrganizationMember{}, db.WrapError(err)
	}
	if ok {
		return models.OrganizationMember{}, proto.ErrAlreadyMember
	}

	if err := d.store.AddOrgMember(ctx, tx, orgID, target.ID); err != nil {
		return models.OrganizationMember{}, wrapDuplicate(err, proto.ErrAlreadyMember)
	}

	return d.findOrgMember(ctx, tx, orgID, target.ID)
}

func (d *Backend) findOrgMember(ctx context.Context, tx db.Handler, orgID, userID int64) (models.OrganizationMember, error) {
	members, err := d.store.ListOrgMembers(ctx, tx, orgID)
	if err != nil {
		return models.OrganizationMember{}, db.WrapError(err)
	}
	for _, m := range members {
		if m.UserID == userID {
			return m, nil
		}
	}
	return models.OrganizationMember{}, proto.ErrMemberNotFound
}

// RemoveOrgMember removes a member from an organization, along with their
// memberships in the organization's teams. The owner may remove anyone but
// themself. Members may remove themselves.
func (d *Backend) RemoveOrgMember(ctx context.Context, user proto.User, orgID, targetID int64) error {
	return d.db.TransactionContext(ctx, func(tx *db.Tx) error {
		org, a, err := d.orgForActor(ctx, tx, user, orgID)
		if err != nil {
			return err
		}
		if err := access.CheckRemoveOrgMember(a, orgFacts(org), targetID); err != nil {
			return err
		}

		return d.removeOrgMemberTx(ctx, tx, orgID, targetID)
	})
}

func (d *Backend) removeOrgMemberTx(ctx context.Context, tx db.Handler, orgID, userID int64) error {
	ok, err := d.store.IsOrgMember(ctx, tx, orgID, userID)
	if err != nil {
		return db.WrapError(err)
	}
	if !ok {
		return proto.ErrMemberNotFound
	}

	if err := d.store.RemoveUserFromOrgTeams(ctx, tx, orgID, userID); err != nil {
		return db.WrapError(err)
	}

	return db.WrapError(d.store.RemoveOrgMember(ctx, tx, orgID, userID))
}
