package backend

import (
	"context"

	"github.com/charmbracelet/kanban/pkg/access"
	"github.com/charmbracelet/kanban/pkg/db"
	"github.com/charmbracelet/kanban/pkg/db/models"
	"github.com/charmbracelet/kanban/pkg/proto"
)

// actor loads the memberships of user. It runs inside the caller's
// transaction so the decision sees the same state as the mutation.
func (d *Backend) actor(ctx context.Context, h db.Handler, user proto.User) (access.Actor, error) {
	if user == nil {
		return access.Actor{}, proto.ErrUnauthorized
	}

	orgs, err := d.store.ListOrgIDsByUser(ctx, h, user.ID())
	if err != nil {
		return access.Actor{}, db.WrapError(err)
	}

	teams, err := d.store.ListTeamIDsByUser(ctx, h, user.ID())
	if err != nil {
		return access.Actor{}, db.WrapError(err)
	}

	return access.NewActor(user.ID(), orgs, teams), nil
}

func orgFacts(o models.Organization) access.Org {
	return access.Org{ID: o.ID, OwnerID: o.OwnerID}
}

func teamFacts(t models.Team, o models.Organization) access.Team {
	return access.Team{ID: t.ID, Org: orgFacts(o)}
}

func boardFacts(b models.Board) access.Board {
	return access.Board{
		OwnerID:      b.UserID,
		SharedTeamID: b.SharedTeamID.Int64,
		OrgID:        b.OrgID.Int64,
		PublicToOrg:  b.IsPublicToOrg,
	}
}
