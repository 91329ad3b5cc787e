package backend

import (
	"context"
	"strings"

	"github.com/charmbracelet/kanban/pkg/db"
	"github.com/charmbracelet/kanban/pkg/db/models"
	"github.com/charmbracelet/kanban/pkg/proto"
)

// The Admin* operations bypass the access rules. Callers must have checked
// that the requester is a platform admin.

// BoardSummary is a board with its owner's username and column count.
type BoardSummary struct {
	models.Board
	OwnerUsername string
	ColumnCount   int
}

// AdminOrgs returns a page of all organizations.
func (d *Backend) AdminOrgs(ctx context.Context, page Page) ([]models.Organization, error) {
	limit, offset := page.limitOffset()
	orgs, err := d.store.GetAllOrgs(ctx, d.db, limit, offset)
	return orgs, db.WrapError(err)
}

// AdminCreateOrg creates an organization owned by ownerID.
func (d *Backend) AdminCreateOrg(ctx context.Context, name, slug string, ownerID int64) (models.Organization, error) {
	return d.createOrg(ctx, ownerID, name, slug)
}

// AdminUpdateOrg renames an organization and reassigns its owner. An empty
// name or a zero owner keeps the current value. A new owner becomes a member.
func (d *Backend) AdminUpdateOrg(ctx context.Context, id int64, name string, ownerID int64) (models.Organization, error) {
	var org models.Organization
	err := d.db.TransactionContext(ctx, func(tx *db.Tx) error {
		var err error
		org, err = d.store.GetOrgByID(ctx, tx, id)
		if err != nil {
			return wrapNotFound(err, proto.ErrOrgNotFound)
		}

		if name = strings.TrimSpace(name); name != "" {
			org.Name = name
		}

		if ownerID != 0 && ownerID != org.OwnerID {
			if _, err := d.store.GetUserByID(ctx, tx, ownerID); err != nil {
				return wrapNotFound(err, proto.ErrUserNotFound)
			}

			ok, err := d.store.IsOrgMember(ctx, tx, id, ownerID)
			if err != nil {
				return db.WrapError(err)
			}
			if !ok {
				if err := d.store.AddOrgMember(ctx, tx, id, ownerID); err != nil {
					return db.WrapError(err)
				}
			}
			org.OwnerID = ownerID
		}

		if err := d.store.UpdateOrg(ctx, tx, id, org.Name, org.OwnerID); err != nil {
			return db.WrapError(err)
		}

		org, err = d.store.GetOrgByID(ctx, tx, id)
		return db.WrapError(err)
	})
	return org, err
}

// AdminDeleteOrg deletes any organization.
func (d *Backend) AdminDeleteOrg(ctx context.Context, id int64) error {
	return d.db.TransactionContext(ctx, func(tx *db.Tx) error {
		if _, err := d.store.GetOrgByID(ctx, tx, id); err != nil {
			return wrapNotFound(err, proto.ErrOrgNotFound)
		}

		return d.deleteOrgTx(ctx, tx, id)
	})
}

// AdminTeams returns a page of all teams.
func (d *Backend) AdminTeams(ctx context.Context, page Page) ([]models.Team, error) {
	limit, offset := page.limitOffset()
	teams, err := d.store.GetAllTeams(ctx, d.db, limit, offset)
	return teams, db.WrapError(err)
}

// AdminCreateTeam creates a team in any organization.
func (d *Backend) AdminCreateTeam(ctx context.Context, orgID int64, name string) (models.Team, error) {
	name, err := teamName(name)
	if err != nil {
		return models.Team{}, err
	}

	var team models.Team
	err = d.db.TransactionContext(ctx, func(tx *db.Tx) error {
		if _, err := d.store.GetOrgByID(ctx, tx, orgID); err != nil {
			return wrapNotFound(err, proto.ErrOrgNotFound)
		}

		team, err = d.store.CreateTeam(ctx, tx, orgID, name)
		return db.WrapError(err)
	})
	return team, err
}

// AdminUpdateTeam renames a team and may move it to another organization. A
// zero orgID keeps the current one. Moving a team drops its board shares and
// the members who do not belong to the new organization.
func (d *Backend) AdminUpdateTeam(ctx context.Context, id int64, name string, orgID int64) (models.Team, error) {
	name, err := teamName(name)
	if err != nil {
		return models.Team{}, err
	}

	var team models.Team
	err = d.db.TransactionContext(ctx, func(tx *db.Tx) error {
		team, err = d.store.GetTeamByID(ctx, tx, id)
		if err != nil {
			return wrapNotFound(err, proto.ErrTeamNotFound)
		}

		if orgID != 0 && orgID != team.OrganizationID {
			if _, err := d.store.GetOrgByID(ctx, tx, orgID); err != nil {
				return wrapNotFound(err, proto.ErrOrgNotFound)
			}
			if err := d.store.ClearSharedTeam(ctx, tx, id); err != nil {
				return db.WrapError(err)
			}
			if err := d.store.RemoveTeamMembersNotInOrg(ctx, tx, id, orgID); err != nil {
				return db.WrapError(err)
			}
			team.OrganizationID = orgID
		}

		if err := d.store.UpdateTeam(ctx, tx, id, name, team.OrganizationID); err != nil {
			return db.WrapError(err)
		}
		team.Name = name
		return nil
	})
	return team, err
}

// AdminDeleteTeam deletes any team.
func (d *Backend) AdminDeleteTeam(ctx context.Context, id int64) error {
	return d.db.TransactionContext(ctx, func(tx *db.Tx) error {
		if _, err := d.store.GetTeamByID(ctx, tx, id); err != nil {
			return wrapNotFound(err, proto.ErrTeamNotFound)
		}

		return d.deleteTeamTx(ctx, tx, id)
	})
}

// AdminTeamMembers lists the members of any team.
func (d *Backend) AdminTeamMembers(ctx context.Context, id int64) ([]models.TeamMember, error) {
	var members []models.TeamMember
	err := d.db.TransactionContext(ctx, func(tx *db.Tx) error {
		if _, err := d.store.GetTeamByID(ctx, tx, id); err != nil {
			return wrapNotFound(err, proto.ErrTeamNotFound)
		}

		var err error
		members, err = d.store.ListTeamMembers(ctx, tx, id)
		return db.WrapError(err)
	})
	return members, err
}

// AdminAvailableTeamMembers lists the organization members not yet in the
// team.
func (d *Backend) AdminAvailableTeamMembers(ctx context.Context, id int64) ([]proto.User, error) {
	var users []proto.User
	err := d.db.TransactionContext(ctx, func(tx *db.Tx) error {
		if _, err := d.store.GetTeamByID(ctx, tx, id); err != nil {
			return wrapNotFound(err, proto.ErrTeamNotFound)
		}

		ms, err := d.store.ListAvailableTeamMembers(ctx, tx, id)
		if err != nil {
			return db.WrapError(err)
		}
		for _, m := range ms {
			users = append(users, &user{user: m})
		}
		return nil
	})
	return users, err
}

// AdminAddTeamMember adds a user to any team. The user must already belong
// to the team's organization.
func (d *Backend) AdminAddTeamMember(ctx context.Context, teamID int64, username string) (models.TeamMember, error) {
	var member models.TeamMember
	err := d.db.TransactionContext(ctx, func(tx *db.Tx) error {
		team, err := d.store.GetTeamByID(ctx, tx, teamID)
		if err != nil {
			return wrapNotFound(err, proto.ErrTeamNotFound)
		}

		member, err = d.addTeamMemberTx(ctx, tx, teamID, team.OrganizationID, username, func(inOrg bool) error {
			if !inOrg {
				return proto.ErrNotOrgMember
			}
			return nil
		})
		return err
	})
	return member, err
}

// AdminRemoveTeamMember removes a user from any team.
func (d *Backend) AdminRemoveTeamMember(ctx context.Context, teamID, userID int64) error {
	return d.db.TransactionContext(ctx, func(tx *db.Tx) error {
		if _, err := d.store.GetTeamByID(ctx, tx, teamID); err != nil {
			return wrapNotFound(err, proto.ErrTeamNotFound)
		}

		return d.removeTeamMemberTx(ctx, tx, teamID, userID)
	})
}

// AdminBoards returns a page of all boards.
func (d *Backend) AdminBoards(ctx context.Context, page Page) ([]BoardSummary, error) {
	limit, offset := page.limitOffset()

	var boards []BoardSummary
	err := d.db.TransactionContext(ctx, func(tx *db.Tx) error {
		bs, err := d.store.GetAllBoards(ctx, tx, limit, offset)
		if err != nil {
			return db.WrapError(err)
		}

		for _, b := range bs {
			s, err := d.boardSummary(ctx, tx, b)
			if err != nil {
				return err
			}
			boards = append(boards, s)
		}
		return nil
	})
	return boards, err
}

func (d *Backend) boardSummary(ctx context.Context, tx db.Handler, b models.Board) (BoardSummary, error) {
	owner, err := d.store.GetUserByID(ctx, tx, b.UserID)
	if err != nil {
		return BoardSummary{}, wrapNotFound(err, proto.ErrUserNotFound)
	}

	cols, err := d.store.ListColumnsByBoard(ctx, tx, b.ID)
	if err != nil {
		return BoardSummary{}, db.WrapError(err)
	}

	return BoardSummary{Board: b, OwnerUsername: owner.Username, ColumnCount: len(cols)}, nil
}

// AdminCreateBoard creates a board for ownerID with the default columns.
func (d *Backend) AdminCreateBoard(ctx context.Context, name string, ownerID int64) (BoardSummary, error) {
	detail, err := d.createBoard(ctx, ownerID, name)
	if err != nil {
		return BoardSummary{}, err
	}

	var s BoardSummary
	err = d.db.TransactionContext(ctx, func(tx *db.Tx) error {
		s, err = d.boardSummary(ctx, tx, detail.Board)
		return err
	})
	return s, err
}

// AdminUpdateBoard renames a board and may hand it to another owner. An
// empty name or a zero owner keeps the current value.
func (d *Backend) AdminUpdateBoard(ctx context.Context, id int64, name string, ownerID int64) (BoardSummary, error) {
	var s BoardSummary
	err := d.db.TransactionContext(ctx, func(tx *db.Tx) error {
		b, err := d.store.GetBoardByID(ctx, tx, id)
		if err != nil {
			return wrapNotFound(err, proto.ErrBoardNotFound)
		}

		if name = strings.TrimSpace(name); name != "" {
			b.Name = name
		}
		if ownerID != 0 && ownerID != b.UserID {
			if _, err := d.store.GetUserByID(ctx, tx, ownerID); err != nil {
				return wrapNotFound(err, proto.ErrUserNotFound)
			}
			b.UserID = ownerID
		}

		if err := d.store.UpdateBoard(ctx, tx, id, b.Name, b.UserID); err != nil {
			return db.WrapError(err)
		}

		s, err = d.boardSummary(ctx, tx, b)
		return err
	})
	return s, err
}

// AdminDeleteBoard deletes any board.
func (d *Backend) AdminDeleteBoard(ctx context.Context, id int64) error {
	return d.db.TransactionContext(ctx, func(tx *db.Tx) error {
		if _, err := d.store.GetBoardByID(ctx, tx, id); err != nil {
			return wrapNotFound(err, proto.ErrBoardNotFound)
		}

		return d.deleteBoardTx(ctx, tx, id)
	})
}
