package backend

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/kanban/pkg/proto"
	"github.com/matryer/is"
)

func TestCreateUser(t *testing.T) {
	is := is.New(t)
	ctx, be := setup(t)

	u, err := be.CreateUser(ctx, "  Alice ", proto.UserOptions{Email: "alice@example.com", Password: "pw"})
	is.NoErr(err)
	is.Equal(u.Username(), "alice")
	is.Equal(u.Email(), "alice@example.com")
	is.True(!u.IsAdmin())
	is.True(u.Password() != "pw")

	_, err = be.CreateUser(ctx, "alice", proto.UserOptions{})
	is.Equal(err, proto.ErrUserExist)

	_, err = be.CreateUser(ctx, "-bad", proto.UserOptions{})
	is.True(errors.Is(err, proto.ErrValidation))

	_, err = be.CreateUser(ctx, "bob", proto.UserOptions{Password: strings.Repeat("x", 100)})
	is.True(errors.Is(err, proto.ErrValidation))
}

func TestAdminSelfGuards(t *testing.T) {
	is := is.New(t)
	ctx, be := setup(t)
	admin := mustUser(t, ctx, be, "admin", true)
	other := mustUser(t, ctx, be, "other", false)

	no := false
	_, err := be.UpdateUser(ctx, admin, admin.ID(), proto.UserUpdate{Admin: &no})
	is.Equal(err, proto.ErrSelfDemotion)
	is.True(proto.IsBadRequest(err))

	is.Equal(be.DeleteUser(ctx, admin, admin.ID()), proto.ErrSelfDeletion)

	yes := true
	name := "promoted"
	u, err := be.UpdateUser(ctx, admin, other.ID(), proto.UserUpdate{Username: &name, Admin: &yes})
	is.NoErr(err)
	is.Equal(u.Username(), "promoted")
	is.True(u.IsAdmin())

	taken := "admin"
	_, err = be.UpdateUser(ctx, admin, other.ID(), proto.UserUpdate{Username: &taken})
	is.Equal(err, proto.ErrUserExist)

	is.NoErr(be.SetPassword(ctx, other.ID(), "new-password"))
	_, err = be.Login(ctx, "promoted", "new-password")
	is.NoErr(err)

	is.NoErr(be.DeleteUser(ctx, admin, other.ID()))
	_, err = be.UserByID(ctx, other.ID())
	is.Equal(err, proto.ErrUserNotFound)
}

func TestUsersPaging(t *testing.T) {
	is := is.New(t)
	ctx, be := setup(t)
	for _, name := range []string{"a", "b", "c"} {
		mustUser(t, ctx, be, name, false)
	}

	users, err := be.Users(ctx, Page{Page: 2, PerPage: 2})
	is.NoErr(err)
	is.Equal(len(users), 1)
	is.Equal(users[0].Username(), "c")

	users, err = be.Users(ctx, Page{})
	is.NoErr(err)
	is.Equal(len(users), 3)
}

func TestDeleteUserCascades(t *testing.T) {
	is := is.New(t)
	ctx, be := setup(t)
	gone := mustUser(t, ctx, be, "gone", false)
	stay := mustUser(t, ctx, be, "stay", false)

	// gone owns an org and a board, belongs to stay's org and team,
	// comments on stay's board and has an API key.
	owned, err := be.CreateOrg(ctx, gone, "Owned", "")
	is.NoErr(err)
	_, err = be.AddOrgMember(ctx, gone, owned.ID, "stay")
	is.NoErr(err)
	ownedBoard, err := be.CreateBoard(ctx, gone, "Mine")
	is.NoErr(err)

	org, err := be.CreateOrg(ctx, stay, "Other", "")
	is.NoErr(err)
	_, err = be.AddOrgMember(ctx, stay, org.ID, "gone")
	is.NoErr(err)
	team, err := be.CreateTeam(ctx, stay, org.ID, "t")
	is.NoErr(err)
	_, err = be.AddTeamMember(ctx, stay, team.ID, "gone")
	is.NoErr(err)
	b, err := be.CreateBoard(ctx, stay, "Shared")
	is.NoErr(err)
	_, err = be.ShareBoard(ctx, stay, b.ID, ShareOptions{TeamID: &team.ID})
	is.NoErr(err)
	card, err := be.CreateCard(ctx, gone, CardOptions{ColumnID: b.Columns[0].ID, Title: "c"})
	is.NoErr(err)
	_, err = be.AddComment(ctx, gone, card.ID, "bye")
	is.NoErr(err)
	_, _, err = be.CreateAPIKey(ctx, gone, "k", time.Time{})
	is.NoErr(err)

	is.NoErr(be.DeleteUserByUsername(ctx, "gone"))

	_, err = be.Org(ctx, stay, owned.ID)
	is.Equal(err, proto.ErrOrgNotFound)
	_, err = be.Board(ctx, stay, ownedBoard.ID)
	is.Equal(err, proto.ErrBoardNotFound)

	members, err := be.OrgMembers(ctx, stay, org.ID)
	is.NoErr(err)
	is.Equal(len(members), 1)
	tm, err := be.TeamMembers(ctx, stay, team.ID)
	is.NoErr(err)
	is.Equal(len(tm), 1)

	comments, err := be.Comments(ctx, stay, card.ID)
	is.NoErr(err)
	is.Equal(len(comments), 0)
}

func TestEnsureInitialAdmin(t *testing.T) {
	is := is.New(t)
	ctx, be := setup(t)

	created, err := be.EnsureInitialAdmin(ctx)
	is.NoErr(err)
	is.True(!created)

	be.cfg.InitialAdmin.Username = "root"
	be.cfg.InitialAdmin.Password = "changeme"
	created, err = be.EnsureInitialAdmin(ctx)
	is.NoErr(err)
	is.True(created)

	u, err := be.User(ctx, "root")
	is.NoErr(err)
	is.True(u.IsAdmin())

	created, err = be.EnsureInitialAdmin(ctx)
	is.NoErr(err)
	is.True(!created)
}

func TestSetAdmin(t *testing.T) {
	is := is.New(t)
	ctx, be := setup(t)
	mustUser(t, ctx, be, "alice", false)

	is.NoErr(be.SetAdmin(ctx, "alice", true))
	u, err := be.User(ctx, "alice")
	is.NoErr(err)
	is.True(u.IsAdmin())

	is.Equal(be.SetAdmin(ctx, "nobody", true), proto.ErrUserNotFound)
}
