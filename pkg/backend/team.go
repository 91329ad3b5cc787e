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

func teamName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", proto.NewValidationError("team name cannot be empty")
	}
	return name, nil
}

// teamForActor loads a team, its organization and the actor in tx.
func (d *Backend) teamForActor(ctx context.Context, tx db.Handler, user proto.User, id int64) (models.Team, access.Team, access.Actor, error) {
	a, err := d.actor(ctx, tx, user)
	if err != nil {
		return models.Team{}, access.Team{}, a, err
	}

	team, org, err := d.teamWithOrg(ctx, tx, id)
	if err != nil {
		return team, access.Team{}, a, err
	}

	return team, teamFacts(team, org), a, nil
}

func (d *Backend) teamWithOrg(ctx context.Context, tx db.Handler, id int64) (models.Team, models.Organization, error) {
	team, err := d.store.GetTeamByID(ctx, tx, id)
	if err != nil {
		return team, models.Organization{}, wrapNotFound(err, proto.ErrTeamNotFound)
	}

	org, err := d.store.GetOrgByID(ctx, tx, team.OrganizationID)
	if err != nil {
		return team, org, wrapNotFound(err, proto.ErrOrgNotFound)
	}

	return team, org, nil
}

// CreateTeam creates a team in an organization. Any member of the
// organization may. The creator joins the team.
func (d *Backend) CreateTeam(ctx context.Context, user proto.User, orgID int64, name string) (models.Team, error) {
	name, err := teamName(name)
	if err != nil {
		return models.Team{}, err
	}

	var team models.Team
	err = d.db.TransactionContext(ctx, func(tx *db.Tx) error {
		org, a, err := d.orgForActor(ctx, tx, user, orgID)
		if err != nil {
			return err
		}
		if !access.CanCreateTeam(a, orgFacts(org)) {
			return proto.ErrForbidden
		}

		team, err = d.store.CreateTeam(ctx, tx, orgID, name)
		if err != nil {
			return db.WrapError(err)
		}

		return db.WrapError(d.store.AddTeamMember(ctx, tx, team.ID, user.ID()))
	})
	return team, err
}

// Teams lists the teams of an organization.
func (d *Backend) Teams(ctx context.Context, user proto.User, orgID int64) ([]models.Team, error) {
	var teams []models.Team
	err := d.db.TransactionContext(ctx, func(tx *db.Tx) error {
		org, a, err := d.orgForActor(ctx, tx, user, orgID)
		if err != nil {
			return err
		}
		if !access.CanViewOrg(a, orgFacts(org)) {
			return proto.ErrForbidden
		}

		teams, err = d.store.ListTeamsByOrg(ctx, tx, orgID)
		return db.WrapError(err)
	})
	return teams, err
}

// Team returns a team visible to user.
func (d *Backend) Team(ctx context.Context, user proto.User, id int64) (models.Team, error) {
	var team models.Team
	err := d.db.TransactionContext(ctx, func(tx *db.Tx) error {
		var (
			t   access.Team
			a   access.Actor
			err error
		)
		team, t, a, err = d.teamForActor(ctx, tx, user, id)
		if err != nil {
			return err
		}
		if !access.CanViewTeam(a, t) {
			return proto.ErrForbidden
		}
		return nil
	})
	return team, err
}

// UpdateTeam renames a team. Any team member may.
func (d *Backend) UpdateTeam(ctx context.Context, user proto.User, id int64, name string) (models.Team, error) {
	name, err := teamName(name)
	if err != nil {
		return models.Team{}, err
	}

	var team models.Team
	err = d.db.TransactionContext(ctx, func(tx *db.Tx) error {
		var (
			t access.Team
			a access.Actor
		)
		team, t, a, err = d.teamForActor(ctx, tx, user, id)
		if err != nil {
			return err
		}
		if !access.CanUpdateTeam(a, t) {
			return proto.ErrForbidden
		}

		if err := d.store.UpdateTeam(ctx, tx, id, name, team.OrganizationID); err != nil {
			return db.WrapError(err)
		}
		team.Name = name
		return nil
	})
	return team, err
}

// DeleteTeam deletes a team and clears the boards shared with it. Only the
// owner of the team's organization may.
func (d *Backend) DeleteTeam(ctx context.Context, user proto.User, id int64) error {
	return d.db.TransactionContext(ctx, func(tx *db.Tx) error {
		_, t, a, err := d.teamForActor(ctx, tx, user, id)
		if err != nil {
			return err
		}
		if !access.CanDeleteTeam(a, t) {
			return proto.ErrForbidden
		}

		return d.deleteTeamTx(ctx, tx, id)
	})
}

func (d *Backend) deleteTeamTx(ctx context.Context, tx db.Handler, id int64) error {
	for _, step := range []func(context.Context, db.Handler, int64) error{
		d.store.ClearSharedTeam,
		d.store.RemoveTeamMembers,
		d.store.DeleteTeamByID,
	} {
		if err := step(ctx, tx, id); err != nil {
			return db.WrapError(err)
		}
	}
	return nil
}

// TeamMembers lists the members of a team.
func (d *Backend) TeamMembers(ctx context.Context, user proto.User, id int64) ([]models.TeamMember, error) {
	var members []models.TeamMember
	err := d.db.TransactionContext(ctx, func(tx *db.Tx) error {
		_, t, a, err := d.teamForActor(ctx, tx, user, id)
		if err != nil {
			return err
		}
		if !access.CanViewTeam(a, t) {
			return proto.ErrForbidden
		}

		members, err = d.store.ListTeamMembers(ctx, tx, id)
		return db.WrapError(err)
	})
	return members, err
}

// AddTeamMember adds the user called username to a team. Any team member
// may, as long as the new member already belongs to the organization.
func (d *Backend) AddTeamMember(ctx context.Context, user proto.User, teamID int64, username string) (models.TeamMember, error) {
	var member models.TeamMember
	err := d.db.TransactionContext(ctx, func(tx *db.Tx) error {
		_, t, a, err := d.teamForActor(ctx, tx, user, teamID)
		if err != nil {
			return err
		}
		if !access.CanUpdateTeam(a, t) {
			return proto.ErrForbidden
		}

		member, err = d.addTeamMemberTx(ctx, tx, teamID, t.Org.ID, username, func(inOrg bool) error {
			return access.CheckAddTeamMember(a, t, inOrg)
		})
		return err
	})
	return member, err
}

func (d *Backend) addTeamMemberTx(ctx context.Context, tx db.Handler, teamID, orgID int64, username string, check func(inOrg bool) error) (models.TeamMember, error) {
	target, err := d.store.FindUserByUsername(ctx, tx, utils.SanitizeUsername(username))
	if err != nil {
		return models.TeamMember{}, wrapNotFound(err, proto.ErrUserNotFound)
	}

	inOrg, err := d.store.IsOrgMember(ctx, tx, orgID, target.ID)
	if err != nil {
		return models.TeamMember{}, db.WrapError(err)
	}
	if err := check(inOrg); err != nil {
		return models.TeamMember{}, err
	}

	ok, err := d.store.IsTeamMember(ctx, tx, teamID, target.ID)
	if err != nil {
		return models.TeamMember{}, db.WrapError(err)
	}
	if ok {
		return models.TeamMember{}, proto.ErrAlreadyTeamMember
	}

	if err := d.store.AddTeamMember(ctx, tx, teamID, target.ID); err != nil {
		return models.TeamMember{}, wrapDuplicate(err, proto.ErrAlreadyTeamMember)
	}

	members, err := d.store.ListTeamMembers(ctx, tx, teamID)
	if err != nil {
		return models.TeamMember{}, db.WrapError(err)
	}
	for _, m := range members {
		if m.UserID == target.ID {
			return m, nil
		}
	}
	return models.TeamMember{}, proto.ErrMemberNotFound
}

// RemoveTeamMember removes a user from a team. Members may only remove
// themselves.
func (d *Backend) RemoveTeamMember(ctx context.Context, user proto.User, teamID, targetID int64) error {
	return d.db.TransactionContext(ctx, func(tx *db.Tx) error {
		_, t, a, err := d.teamForActor(ctx, tx, user, teamID)
		if err != nil {
			return err
		}
		if !access.CanRemoveTeamMember(a, t, targetID) {
			return proto.NewForbiddenError("You can only remove yourself from a team")
		}

		return d.removeTeamMemberTx(ctx, tx, teamID, targetID)
	})
}

func (d *Backend) removeTeamMemberTx(ctx context.Context, tx db.Handler, teamID, userID int64) error {
	ok, err := d.store.IsTeamMember(ctx, tx, teamID, userID)
	if err != nil {
		return db.WrapError(err)
	}
	if !ok {
		return proto.ErrMemberNotFound
	}

	return db.WrapError(d.store.RemoveTeamMember(ctx, tx, teamID, userID))
}
