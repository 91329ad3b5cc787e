package backend

import (
	"errors"
	"testing"

	"github.com/charmbracelet/kanban/pkg/access"
	"github.com/charmbracelet/kanban/pkg/proto"
	"github.com/matryer/is"
)

func TestBoardSharingScenario(t *testing.T) {
	is := is.New(t)
	ctx, be := setup(t)
	o := mustUser(t, ctx, be, "o", false)
	m := mustUser(t, ctx, be, "m", false)
	x := mustUser(t, ctx, be, "x", false)

	g, err := be.CreateOrg(ctx, o, "G", "")
	is.NoErr(err)
	team, err := be.CreateTeam(ctx, o, g.ID, "T")
	is.NoErr(err)
	_, err = be.AddOrgMember(ctx, o, g.ID, "m")
	is.NoErr(err)
	_, err = be.AddTeamMember(ctx, o, team.ID, "m")
	is.NoErr(err)

	b, err := be.CreateBoard(ctx, o, "B")
	is.NoErr(err)
	shared, err := be.ShareBoard(ctx, o, b.ID, ShareOptions{TeamID: &team.ID})
	is.NoErr(err)
	is.Equal(shared.SharedTeamID.Int64, team.ID)
	is.Equal(shared.OrgID.Int64, g.ID)
	is.Equal(shared.Access, access.OwnerAccess)

	detail, err := be.Board(ctx, m, b.ID)
	is.NoErr(err)
	is.Equal(detail.Access, access.ReadWriteAccess)
	is.Equal(be.DeleteBoard(ctx, m, b.ID), proto.ErrForbidden)
	_, err = be.Board(ctx, x, b.ID)
	is.Equal(err, proto.ErrForbidden)

	// Leaving the team revokes access on the next check.
	is.NoErr(be.RemoveTeamMember(ctx, m, team.ID, m.ID()))
	_, err = be.Board(ctx, m, b.ID)
	is.Equal(err, proto.ErrForbidden)
}

func TestCreateBoardDefaultColumns(t *testing.T) {
	is := is.New(t)
	ctx, be := setup(t)
	u := mustUser(t, ctx, be, "u", false)

	b, err := be.CreateBoard(ctx, u, "Sprint")
	is.NoErr(err)
	is.Equal(len(b.Columns), 3)

	detail, err := be.Board(ctx, u, b.ID)
	is.NoErr(err)
	var names []string
	for _, c := range detail.Columns {
		names = append(names, c.Name)
	}
	is.Equal(names, DefaultColumns)

	_, err = be.CreateBoard(ctx, u, "  ")
	is.True(errors.Is(err, proto.ErrValidation))

	_, err = be.Board(ctx, u, b.ID+100)
	is.Equal(err, proto.ErrBoardNotFound)
}

func TestBoardsListing(t *testing.T) {
	is := is.New(t)
	ctx, be := setup(t)
	o := mustUser(t, ctx, be, "o", false)
	mate := mustUser(t, ctx, be, "mate", false)
	colleague := mustUser(t, ctx, be, "colleague", false)
	stranger := mustUser(t, ctx, be, "stranger", false)

	org, err := be.CreateOrg(ctx, o, "Acme", "")
	is.NoErr(err)
	for _, name := range []string{"mate", "colleague"} {
		_, err = be.AddOrgMember(ctx, o, org.ID, name)
		is.NoErr(err)
	}
	team, err := be.CreateTeam(ctx, o, org.ID, "devs")
	is.NoErr(err)
	_, err = be.AddTeamMember(ctx, o, team.ID, "mate")
	is.NoErr(err)

	_, err = be.CreateBoard(ctx, o, "private")
	is.NoErr(err)
	teamBoard, err := be.CreateBoard(ctx, o, "team")
	is.NoErr(err)
	_, err = be.ShareBoard(ctx, o, teamBoard.ID, ShareOptions{TeamID: &team.ID})
	is.NoErr(err)
	public, err := be.CreateBoard(ctx, o, "public")
	is.NoErr(err)
	// Shared with the team and public: listed once.
	_, err = be.ShareBoard(ctx, o, public.ID, ShareOptions{TeamID: &team.ID, PublicToOrg: true})
	is.NoErr(err)

	for _, c := range []struct {
		user proto.User
		want int
	}{
		{o, 3},
		{mate, 2},
		{colleague, 1},
		{stranger, 0},
	} {
		boards, err := be.Boards(ctx, c.user)
		is.NoErr(err)
		is.Equal(len(boards), c.want)
	}

	// Public boards can be edited by org members, not deleted or shared.
	renamed, err := be.UpdateBoard(ctx, colleague, public.ID, "renamed")
	is.NoErr(err)
	is.Equal(renamed.Access, access.ReadWriteAccess)
	is.Equal(be.DeleteBoard(ctx, colleague, public.ID), proto.ErrForbidden)
	_, err = be.ShareBoard(ctx, colleague, public.ID, ShareOptions{})
	is.Equal(err, proto.ErrForbidden)
}

func TestShareBoardValidation(t *testing.T) {
	is := is.New(t)
	ctx, be := setup(t)
	o := mustUser(t, ctx, be, "o", false)
	other := mustUser(t, ctx, be, "other", false)

	mine, err := be.CreateOrg(ctx, o, "Mine", "")
	is.NoErr(err)
	theirs, err := be.CreateOrg(ctx, other, "Theirs", "")
	is.NoErr(err)
	theirTeam, err := be.CreateTeam(ctx, other, theirs.ID, "t")
	is.NoErr(err)
	myTeam, err := be.CreateTeam(ctx, o, mine.ID, "m")
	is.NoErr(err)

	b, err := be.CreateBoard(ctx, o, "B")
	is.NoErr(err)

	_, err = be.ShareBoard(ctx, o, b.ID, ShareOptions{TeamID: &theirTeam.ID})
	is.Equal(err, proto.ErrNotOrgMember)

	_, err = be.ShareBoard(ctx, o, b.ID, ShareOptions{OrgID: &theirs.ID, PublicToOrg: true})
	is.Equal(err, proto.ErrNotOrgMember)

	_, err = be.ShareBoard(ctx, o, b.ID, ShareOptions{PublicToOrg: true})
	is.True(errors.Is(err, proto.ErrValidation))

	_, err = be.ShareBoard(ctx, o, b.ID, ShareOptions{TeamID: &myTeam.ID, OrgID: &theirs.ID})
	is.True(errors.Is(err, proto.ErrValidation))

	missing := myTeam.ID + 100
	_, err = be.ShareBoard(ctx, o, b.ID, ShareOptions{TeamID: &missing})
	is.Equal(err, proto.ErrTeamNotFound)

	shared, err := be.ShareBoard(ctx, o, b.ID, ShareOptions{OrgID: &mine.ID, PublicToOrg: true})
	is.NoErr(err)
	is.True(shared.IsPublicToOrg)

	cleared, err := be.ShareBoard(ctx, o, b.ID, ShareOptions{})
	is.NoErr(err)
	is.True(!cleared.IsPublicToOrg)
	is.True(!cleared.OrgID.Valid)
	is.True(!cleared.SharedTeamID.Valid)
}

func TestColumnsAndCards(t *testing.T) {
	is := is.New(t)
	ctx, be := setup(t)
	o := mustUser(t, ctx, be, "o", false)
	x := mustUser(t, ctx, be, "x", false)

	b, err := be.CreateBoard(ctx, o, "B")
	is.NoErr(err)
	todo, done := b.Columns[0], b.Columns[2]

	col, err := be.CreateColumn(ctx, o, b.ID, "Blocked", 3)
	is.NoErr(err)
	_, err = be.CreateColumn(ctx, x, b.ID, "Nope", 4)
	is.Equal(err, proto.ErrForbidden)
	col, err = be.UpdateColumn(ctx, o, col.ID, "Waiting", 1)
	is.NoErr(err)
	is.Equal(col.Name, "Waiting")
	is.Equal(col.Position, 1)

	desc := "details"
	card, err := be.CreateCard(ctx, o, CardOptions{ColumnID: todo.ID, Title: "Write tests", Description: &desc})
	is.NoErr(err)
	is.Equal(card.Description.String, "details")

	_, err = be.CreateCard(ctx, o, CardOptions{ColumnID: todo.ID + 100, Title: "ghost"})
	is.Equal(err, proto.ErrColumnNotFound)
	_, err = be.CreateCard(ctx, x, CardOptions{ColumnID: todo.ID, Title: "intruder"})
	is.Equal(err, proto.ErrForbidden)
	_, err = be.CreateCard(ctx, o, CardOptions{ColumnID: todo.ID})
	is.True(errors.Is(err, proto.ErrValidation))

	moved, err := be.UpdateCard(ctx, o, card.ID, CardOptions{ColumnID: done.ID, Title: "Write tests", Position: 2})
	is.NoErr(err)
	is.Equal(moved.ColumnID, done.ID)
	is.True(!moved.Description.Valid)

	// Moving to a board the caller can't modify is refused.
	xb, err := be.CreateBoard(ctx, x, "X")
	is.NoErr(err)
	_, err = be.UpdateCard(ctx, o, card.ID, CardOptions{ColumnID: xb.Columns[0].ID, Title: "t"})
	is.Equal(err, proto.ErrForbidden)
	_, err = be.UpdateCard(ctx, o, card.ID, CardOptions{ColumnID: xb.Columns[0].ID + 100, Title: "t"})
	is.Equal(err, proto.ErrColumnNotFound)

	// Deleting a column takes its cards with it.
	is.NoErr(be.DeleteColumn(ctx, o, done.ID))
	is.Equal(be.DeleteCard(ctx, o, card.ID), proto.ErrCardNotFound)

	detail, err := be.Board(ctx, o, b.ID)
	is.NoErr(err)
	is.Equal(len(detail.Columns), 3)
	is.Equal(len(detail.Cards), 0)
}

func TestComments(t *testing.T) {
	is := is.New(t)
	ctx, be := setup(t)
	o := mustUser(t, ctx, be, "o", false)
	m := mustUser(t, ctx, be, "m", false)
	x := mustUser(t, ctx, be, "x", false)

	org, err := be.CreateOrg(ctx, o, "Acme", "")
	is.NoErr(err)
	_, err = be.AddOrgMember(ctx, o, org.ID, "m")
	is.NoErr(err)

	b, err := be.CreateBoard(ctx, o, "B")
	is.NoErr(err)
	_, err = be.ShareBoard(ctx, o, b.ID, ShareOptions{OrgID: &org.ID, PublicToOrg: true})
	is.NoErr(err)
	card, err := be.CreateCard(ctx, o, CardOptions{ColumnID: b.Columns[0].ID, Title: "c"})
	is.NoErr(err)

	mc, err := be.AddComment(ctx, m, card.ID, "looks good")
	is.NoErr(err)
	is.Equal(mc.Username, "m")
	oc, err := be.AddComment(ctx, o, card.ID, "thanks")
	is.NoErr(err)

	_, err = be.AddComment(ctx, x, card.ID, "hi")
	is.Equal(err, proto.ErrForbidden)
	_, err = be.AddComment(ctx, m, card.ID, "")
	is.True(errors.Is(err, proto.ErrValidation))

	comments, err := be.Comments(ctx, m, card.ID)
	is.NoErr(err)
	is.Equal(len(comments), 2)

	// Members delete their own comments, the board owner deletes any.
	is.Equal(be.DeleteComment(ctx, m, oc.ID), proto.ErrForbidden)
	is.NoErr(be.DeleteComment(ctx, o, mc.ID))
	is.Equal(be.DeleteComment(ctx, o, mc.ID), proto.ErrCommentNotFound)

	// Deleting the board removes the rest.
	is.NoErr(be.DeleteBoard(ctx, o, b.ID))
	_, err = be.Comments(ctx, o, card.ID)
	is.Equal(err, proto.ErrCardNotFound)
}
