package backend

import (
	"errors"
	"testing"

	"github.com/charmbracelet/kanban/pkg/proto"
	"github.com/matryer/is"
)

func TestTeams(t *testing.T) {
	is := is.New(t)
	ctx, be := setup(t)
	owner := mustUser(t, ctx, be, "owner", false)
	dev := mustUser(t, ctx, be, "dev", false)
	peer := mustUser(t, ctx, be, "peer", false)
	outsider := mustUser(t, ctx, be, "outsider", false)

	org, err := be.CreateOrg(ctx, owner, "Acme", "")
	is.NoErr(err)
	for _, name := range []string{"dev", "peer"} {
		_, err = be.AddOrgMember(ctx, owner, org.ID, name)
		is.NoErr(err)
	}

	// Any member may create a team and joins it.
	team, err := be.CreateTeam(ctx, dev, org.ID, "backend")
	is.NoErr(err)
	members, err := be.TeamMembers(ctx, dev, team.ID)
	is.NoErr(err)
	is.Equal(len(members), 1)
	is.Equal(members[0].UserID, dev.ID())

	_, err = be.CreateTeam(ctx, outsider, org.ID, "rogue")
	is.Equal(err, proto.ErrForbidden)

	teams, err := be.Teams(ctx, peer, org.ID)
	is.NoErr(err)
	is.Equal(len(teams), 1)
	_, err = be.Teams(ctx, outsider, org.ID)
	is.Equal(err, proto.ErrForbidden)

	// Renaming needs team membership.
	_, err = be.UpdateTeam(ctx, peer, team.ID, "renamed")
	is.Equal(err, proto.ErrForbidden)
	renamed, err := be.UpdateTeam(ctx, dev, team.ID, "platform")
	is.NoErr(err)
	is.Equal(renamed.Name, "platform")

	// Team members add org members, never outsiders.
	_, err = be.AddTeamMember(ctx, dev, team.ID, "outsider")
	is.Equal(err, proto.ErrNotOrgMember)
	_, err = be.AddTeamMember(ctx, peer, team.ID, "owner")
	is.Equal(err, proto.ErrForbidden)
	_, err = be.AddTeamMember(ctx, dev, team.ID, "peer")
	is.NoErr(err)
	_, err = be.AddTeamMember(ctx, dev, team.ID, "peer")
	is.Equal(err, proto.ErrAlreadyTeamMember)
	_, err = be.AddTeamMember(ctx, dev, team.ID+10, "peer")
	is.Equal(err, proto.ErrTeamNotFound)

	// Removal is self-only.
	err = be.RemoveTeamMember(ctx, dev, team.ID, peer.ID())
	is.True(errors.Is(err, proto.ErrForbidden))
	is.Equal(err.Error(), "You can only remove yourself from a team")
	is.NoErr(be.RemoveTeamMember(ctx, peer, team.ID, peer.ID()))
	is.Equal(be.RemoveTeamMember(ctx, peer, team.ID, peer.ID()), proto.ErrMemberNotFound)

	// Only the org owner deletes teams.
	is.Equal(be.DeleteTeam(ctx, dev, team.ID), proto.ErrForbidden)
	is.NoErr(be.DeleteTeam(ctx, owner, team.ID))
	_, err = be.Team(ctx, owner, team.ID)
	is.Equal(err, proto.ErrTeamNotFound)
}

func TestDeleteTeamClearsShares(t *testing.T) {
	is := is.New(t)
	ctx, be := setup(t)
	owner := mustUser(t, ctx, be, "owner", false)

	org, err := be.CreateOrg(ctx, owner, "Acme", "")
	is.NoErr(err)
	team, err := be.CreateTeam(ctx, owner, org.ID, "devs")
	is.NoErr(err)

	var ids []int64
	for _, name := range []string{"one", "two"} {
		b, err := be.CreateBoard(ctx, owner, name)
		is.NoErr(err)
		_, err = be.ShareBoard(ctx, owner, b.ID, ShareOptions{TeamID: &team.ID})
		is.NoErr(err)
		ids = append(ids, b.ID)
	}

	is.NoErr(be.DeleteTeam(ctx, owner, team.ID))

	for _, id := range ids {
		b, err := be.Board(ctx, owner, id)
		is.NoErr(err)
		is.True(!b.SharedTeamID.Valid)
	}
}
