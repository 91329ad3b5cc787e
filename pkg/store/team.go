package store

import (
	"context"

	"github.com/charmbracelet/kanban/pkg/db"
	"github.com/charmbracelet/kanban/pkg/db/models"
)

// TeamStore is an interface for managing teams and their members.
type TeamStore interface {
	CreateTeam(ctx context.Context, h db.Handler, orgID int64, name string) (models.Team, error)
	GetTeamByID(ctx context.Context, h db.Handler, id int64) (models.Team, error)
	ListTeamsByOrg(ctx context.Context, h db.Handler, orgID int64) ([]models.Team, error)
	GetAllTeams(ctx context.Context, h db.Handler, limit, offset int) ([]models.Team, error)
	UpdateTeam(ctx context.Context, h db.Handler, id int64, name string, orgID int64) error
	DeleteTeamByID(ctx context.Context, h db.Handler, id int64) error
	DeleteTeamsByOrg(ctx context.Context, h db.Handler, orgID int64) error

	AddTeamMember(ctx context.Context, h db.Handler, teamID, userID int64) error
	RemoveTeamMember(ctx context.Context, h db.Handler, teamID, userID int64) error
	RemoveTeamMembers(ctx context.Context, h db.Handler, teamID int64) error
	RemoveTeamMembersNotInOrg(ctx context.Context, h db.Handler, teamID, orgID int64) error
	RemoveUserFromOrgTeams(ctx context.Context, h db.Handler, orgID, userID int64) error
	RemoveUserTeamMemberships(ctx context.Context, h db.Handler, userID int64) error
	IsTeamMember(ctx context.Context, h db.Handler, teamID, userID int64) (bool, error)
	ListTeamMembers(ctx context.Context, h db.Handler, teamID int64) ([]models.TeamMember, error)
	ListTeamIDsByUser(ctx context.Context, h db.Handler, userID int64) ([]int64, error)
	ListAvailableTeamMembers(ctx context.Context, h db.Handler, teamID int64) ([]models.User, error)
}
