package backend

import (
	"errors"
	"testing"

	"github.com/charmbracelet/kanban/pkg/proto"
	"github.com/matryer/is"
)

func TestAdminOrgs(t *testing.T) {
	is := is.New(t)
	ctx, be := setup(t)
	alice := mustUser(t, ctx, be, "alice", false)
	bob := mustUser(t, ctx, be, "bob", false)

	_, err := be.AdminCreateOrg(ctx, "Bad", "", 9999)
	is.Equal(err, proto.ErrUserNotFound)

	org, err := be.AdminCreateOrg(ctx, "Admin Created", "", alice.ID())
	is.NoErr(err)
	is.Equal(org.OwnerID, alice.ID())

	_, err = be.AdminUpdateOrg(ctx, org.ID, "Renamed", 9999)
	is.Equal(err, proto.ErrUserNotFound)

	org, err = be.AdminUpdateOrg(ctx, org.ID, "Renamed", bob.ID())
	is.NoErr(err)
	is.Equal(org.Name, "Renamed")
	is.Equal(org.OwnerID, bob.ID())

	// The new owner is a member and controls the org.
	members, err := be.OrgMembers(ctx, bob, org.ID)
	is.NoErr(err)
	is.Equal(len(members), 2)
	_, err = be.UpdateOrg(ctx, alice, org.ID, "nope")
	is.Equal(err, proto.ErrForbidden)

	orgs, err := be.AdminOrgs(ctx, Page{})
	is.NoErr(err)
	is.Equal(len(orgs), 1)

	is.NoErr(be.AdminDeleteOrg(ctx, org.ID))
	is.Equal(be.AdminDeleteOrg(ctx, org.ID), proto.ErrOrgNotFound)
}

func TestAdminTeams(t *testing.T) {
	is := is.New(t)
	ctx, be := setup(t)
	alice := mustUser(t, ctx, be, "alice", false)
	bob := mustUser(t, ctx, be, "bob", false)
	mustUser(t, ctx, be, "carol", false)

	org1, err := be.AdminCreateOrg(ctx, "Org 1", "", alice.ID())
	is.NoErr(err)
	org2, err := be.AdminCreateOrg(ctx, "Org 2", "", alice.ID())
	is.NoErr(err)
	_, err = be.AddOrgMember(ctx, alice, org1.ID, "bob")
	is.NoErr(err)

	_, err = be.AdminCreateTeam(ctx, 9999, "Bad")
	is.Equal(err, proto.ErrOrgNotFound)
	team, err := be.AdminCreateTeam(ctx, org1.ID, "Original")
	is.NoErr(err)

	available, err := be.AdminAvailableTeamMembers(ctx, team.ID)
	is.NoErr(err)
	is.Equal(len(available), 2)

	_, err = be.AdminAddTeamMember(ctx, team.ID, "carol")
	is.Equal(err, proto.ErrNotOrgMember)
	_, err = be.AdminAddTeamMember(ctx, team.ID, "bob")
	is.NoErr(err)

	available, err = be.AdminAvailableTeamMembers(ctx, team.ID)
	is.NoErr(err)
	is.Equal(len(available), 1)
	is.Equal(available[0].Username(), "alice")

	members, err := be.AdminTeamMembers(ctx, team.ID)
	is.NoErr(err)
	is.Equal(len(members), 1)
	_, err = be.AdminAddTeamMember(ctx, team.ID, "alice")
	is.NoErr(err)

	_, err = be.AdminUpdateTeam(ctx, team.ID, "Moved", 9999)
	is.Equal(err, proto.ErrOrgNotFound)
	moved, err := be.AdminUpdateTeam(ctx, team.ID, "Moved", org2.ID)
	is.NoErr(err)
	is.Equal(moved.OrganizationID, org2.ID)
	is.Equal(moved.Name, "Moved")

	// bob is not in org 2, so the move drops him from the team.
	members, err = be.AdminTeamMembers(ctx, team.ID)
	is.NoErr(err)
	is.Equal(len(members), 1)
	is.Equal(members[0].UserID, alice.ID())
	_, err = be.UpdateTeam(ctx, bob, team.ID, "Hijacked")
	is.True(errors.Is(err, proto.ErrForbidden))

	teams, err := be.AdminTeams(ctx, Page{})
	is.NoErr(err)
	is.Equal(len(teams), 1)

	is.NoErr(be.AdminRemoveTeamMember(ctx, team.ID, members[0].UserID))
	is.Equal(be.AdminRemoveTeamMember(ctx, team.ID, members[0].UserID), proto.ErrMemberNotFound)
	is.NoErr(be.AdminDeleteTeam(ctx, team.ID))
	_, err = be.AdminTeamMembers(ctx, team.ID)
	is.Equal(err, proto.ErrTeamNotFound)
}

func TestAdminBoards(t *testing.T) {
	is := is.New(t)
	ctx, be := setup(t)
	alice := mustUser(t, ctx, be, "alice", false)
	bob := mustUser(t, ctx, be, "bob", false)

	_, err := be.AdminCreateBoard(ctx, "Bad", 9999)
	is.Equal(err, proto.ErrUserNotFound)

	b, err := be.AdminCreateBoard(ctx, "Admin Board", alice.ID())
	is.NoErr(err)
	is.Equal(b.OwnerUsername, "alice")
	is.Equal(b.ColumnCount, 3)

	b, err = be.AdminUpdateBoard(ctx, b.ID, "Handed Over", bob.ID())
	is.NoErr(err)
	is.Equal(b.Name, "Handed Over")
	is.Equal(b.OwnerUsername, "bob")

	_, err = be.Board(ctx, alice, b.ID)
	is.Equal(err, proto.ErrForbidden)

	boards, err := be.AdminBoards(ctx, Page{})
	is.NoErr(err)
	is.Equal(len(boards), 1)
	is.Equal(boards[0].ColumnCount, 3)

	is.NoErr(be.AdminDeleteBoard(ctx, b.ID))
	is.Equal(be.AdminDeleteBoard(ctx, b.ID), proto.ErrBoardNotFound)
}
