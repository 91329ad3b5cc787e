package database

import (
	"context"

	"github.com/charmbracelet/kanban/pkg/db"
	"github.com/charmbracelet/kanban/pkg/db/models"
	"github.com/charmbracelet/kanban/pkg/store"
)

var _ store.TeamStore = (*teamStore)(nil)

type teamStore struct{}

// CreateTeam implements store.TeamStore.
func (*teamStore) CreateTeam(ctx context.Context, h db.Handler, orgID int64, name string) (models.Team, error) {
	query := h.Rebind(`
		INSERT INTO
		  teams (org_id, name, updated_at)
		VALUES
		  (?, ?, CURRENT_TIMESTAMP) RETURNING *
	`)
	var team models.Team
	err := h.GetContext(ctx, &team, query, orgID, name)
	return team, err //nolint:wrapcheck
}

// GetTeamByID implements store.TeamStore.
func (*teamStore) GetTeamByID(ctx context.Context, h db.Handler, id int64) (models.Team, error) {
	query := h.Rebind(`
		SELECT
		  *
		FROM
		  teams
		WHERE
		  id = ?
	`)
	var team models.Team
	err := h.GetContext(ctx, &team, query, id)
	return team, err //nolint:wrapcheck
}

// ListTeamsByOrg implements store.TeamStore.
func (*teamStore) ListTeamsByOrg(ctx context.Context, h db.Handler, orgID int64) ([]models.Team, error) {
	query := h.Rebind(`
		SELECT
		  *
		FROM
		  teams
		WHERE
		  org_id = ?
		ORDER BY
		  id ASC
	`)
	var teams []models.Team
	err := h.SelectContext(ctx, &teams, query, orgID)
	return teams, err //nolint:wrapcheck
}

// GetAllTeams implements store.TeamStore.
func (*teamStore) GetAllTeams(ctx context.Context, h db.Handler, limit, offset int) ([]models.Team, error) {
	query := h.Rebind(`
		SELECT
		  *
		FROM
		  teams
		ORDER BY
		  id ASC
		LIMIT ? OFFSET ?
	`)
	var teams []models.Team
	err := h.SelectContext(ctx, &teams, query, limit, offset)
	return teams, err //nolint:wrapcheck
}

// UpdateTeam implements store.TeamStore.
func (*teamStore) UpdateTeam(ctx context.Context, h db.Handler, id int64, name string, orgID int64) error {
	query := h.Rebind(`
		UPDATE
		  teams
		SET
		  name = ?,
		  org_id = ?,
		  updated_at = CURRENT_TIMESTAMP
		WHERE
		  id = ?
	`)
	_, err := h.ExecContext(ctx, query, name, orgID, id)
	return err //nolint:wrapcheck
}

// DeleteTeamByID implements store.TeamStore.
func (*teamStore) DeleteTeamByID(ctx context.Context, h db.Handler, id int64) error {
	query := h.Rebind(`
		DELETE FROM teams
		WHERE
		  id = ?
	`)
	_, err := h.ExecContext(ctx, query, id)
	return err //nolint:wrapcheck
}

// DeleteTeamsByOrg implements store.TeamStore.
func (*teamStore) DeleteTeamsByOrg(ctx context.Context, h db.Handler, orgID int64) error {
	query := h.Rebind(`DELETE FROM teams WHERE org_id = ?`)
	_, err := h.ExecContext(ctx, query, orgID)
	return err //nolint:wrapcheck
}

// AddTeamMember implements store.TeamStore.
func (*teamStore) AddTeamMember(ctx context.Context, h db.Handler, teamID, userID int64) error {
	query := h.Rebind(`
		INSERT INTO
		  team_members (team_id, user_id)
		VALUES
		  (?, ?)
	`)
	_, err := h.ExecContext(ctx, query, teamID, userID)
	return err //nolint:wrapcheck
}

// RemoveTeamMember implements store.TeamStore.
func (*teamStore) RemoveTeamMember(ctx context.Context, h db.Handler, teamID, userID int64) error {
	query := h.Rebind(`
		DELETE FROM team_members
		WHERE
		  team_id = ?
		  AND user_id = ?
	`)
	_, err := h.ExecContext(ctx, query, teamID, userID)
	return err //nolint:wrapcheck
}

// RemoveTeamMembers implements store.TeamStore.
func (*teamStore) RemoveTeamMembers(ctx context.Context, h db.Handler, teamID int64) error {
	query := h.Rebind(`DELETE FROM team_members WHERE team_id = ?`)
	_, err := h.ExecContext(ctx, query, teamID)
	return err //nolint:wrapcheck
}

// RemoveTeamMembersNotInOrg implements store.TeamStore. The org owner counts
// as a member.
func (*teamStore) RemoveTeamMembersNotInOrg(ctx context.Context, h db.Handler, teamID, orgID int64) error {
	query := h.Rebind(`
		DELETE FROM team_members
		WHERE
		  team_id = ?
		  AND user_id NOT IN (
		    SELECT user_id FROM organization_members WHERE org_id = ?
		  )
		  AND user_id NOT IN (
		    SELECT owner_id FROM organizations WHERE id = ?
		  )
	`)
	_, err := h.ExecContext(ctx, query, teamID, orgID, orgID)
	return err //nolint:wrapcheck
}

// RemoveUserFromOrgTeams implements store.TeamStore.
func (*teamStore) RemoveUserFromOrgTeams(ctx context.Context, h db.Handler, orgID, userID int64) error {
	query := h.Rebind(`
		DELETE FROM team_members
		WHERE
		  user_id = ?
		  AND team_id IN (
		    SELECT
		      id
		    FROM
		      teams
		    WHERE
		      org_id = ?
		  )
	`)
	_, err := h.ExecContext(ctx, query, userID, orgID)
	return err //nolint:wrapcheck
}

// RemoveUserTeamMemberships implements store.TeamStore.
func (*teamStore) RemoveUserTeamMemberships(ctx context.Context, h db.Handler, userID int64) error {
	query := h.Rebind(`DELETE FROM team_members WHERE user_id = ?`)
	_, err := h.ExecContext(ctx, query, userID)
	return err //nolint:wrapcheck
}

// IsTeamMember implements store.TeamStore.
func (*teamStore) IsTeamMember(ctx context.Context, h db.Handler, teamID, userID int64) (bool, error) {
	query := h.Rebind(`
		SELECT
		  COUNT(*)
		FROM
		  team_members
		WHERE
		  team_id = ?
		  AND user_id = ?
	`)
	var n int
	err := h.GetContext(ctx, &n, query, teamID, userID)
	return n > 0, err //nolint:wrapcheck
}

// ListTeamMembers implements store.TeamStore.
func (*teamStore) ListTeamMembers(ctx context.Context, h db.Handler, teamID int64) ([]models.TeamMember, error) {
	query := h.Rebind(`
		SELECT
		  tm.id,
		  tm.team_id,
		  tm.user_id,
		  u.username,
		  tm.joined_at
		FROM
		  team_members tm
		  JOIN users u ON u.id = tm.user_id
		WHERE
		  tm.team_id = ?
		ORDER BY
		  tm.id ASC
	`)
	var members []models.TeamMember
	err := h.SelectContext(ctx, &members, query, teamID)
	return members, err //nolint:wrapcheck
}

// ListTeamIDsByUser implements store.TeamStore.
func (*teamStore) ListTeamIDsByUser(ctx context.Context, h db.Handler, userID int64) ([]int64, error) {
	query := h.Rebind(`SELECT team_id FROM team_members WHERE user_id = ?`)
	var ids []int64
	err := h.SelectContext(ctx, &ids, query, userID)
	return ids, err //nolint:wrapcheck
}

// ListAvailableTeamMembers implements store.TeamStore. It returns the
// members of the team's organization that are not in the team yet.
func (*teamStore) ListAvailableTeamMembers(ctx context.Context, h db.Handler, teamID int64) ([]models.User, error) {
	query := h.Rebind(`
		SELECT
		  u.*
		FROM
		  users u
		  JOIN organization_members om ON om.user_id = u.id
		  JOIN teams t ON t.org_id = om.org_id
		WHERE
		  t.id = ?
		  AND u.id NOT IN (
		    SELECT
		      user_id
		    FROM
		      team_members
		    WHERE
		      team_id = ?
		  )
		ORDER BY
		  u.id ASC
	`)
	var users []models.User
	err := h.SelectContext(ctx, &users, query, teamID, teamID)
	return users, err //nolint:wrapcheck
}
