package store

import (
	"context"

	"github.com/charmbracelet/kanban/pkg/db"
	"github.com/charmbracelet/kanban/pkg/db/models"
)

// OrgStore is an interface for managing organizations and their members.
type OrgStore interface {
	CreateOrg(ctx context.Context, h db.Handler, ownerID int64, name, slug string) (models.Organization, error)
	GetOrgByID(ctx context.Context, h db.Handler, id int64) (models.Organization, error)
	ListOrgsByUser(ctx context.Context, h db.Handler, userID int64) ([]models.Organization, error)
	ListOrgsByOwner(ctx context.Context, h db.Handler, userID int64) ([]models.Organization, error)
	GetAllOrgs(ctx context.Context, h db.Handler, limit, offset int) ([]models.Organization, error)
	UpdateOrg(ctx context.Context, h db.Handler, id int64, name string, ownerID int64) error
	DeleteOrgByID(ctx context.Context, h db.Handler, id int64) error

	AddOrgMember(ctx context.Context, h db.Handler, orgID, userID int64) error
	RemoveOrgMember(ctx context.Context, h db.Handler, orgID, userID int64) error
	RemoveOrgMembers(ctx context.Context, h db.Handler, orgID int64) error
	RemoveUserOrgMemberships(ctx context.Context, h db.Handler, userID int64) error
	IsOrgMember(ctx context.Context, h db.Handler, orgID, userID int64) (bool, error)
	ListOrgMembers(ctx context.Context, h db.Handler, orgID int64) ([]models.OrganizationMember, error)
	ListOrgIDsByUser(ctx context.Context, h db.Handler, userID int64) ([]int64, error)
}
