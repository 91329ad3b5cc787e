package backend

import (
	"errors"
	"testing"
	"time"

	"github.com/charmbracelet/kanban/pkg/db/models"
	"github.com/charmbracelet/kanban/pkg/proto"
	"github.com/matryer/is"
)

func TestInvites(t *testing.T) {
	is := is.New(t)
	ctx, be := setup(t)
	owner := mustUser(t, ctx, be, "owner", false)
	member := mustUser(t, ctx, be, "member", false)
	newbie := mustUser(t, ctx, be, "newbie", false)

	org, err := be.CreateOrg(ctx, owner, "Acme", "")
	is.NoErr(err)
	_, err = be.AddOrgMember(ctx, owner, org.ID, "member")
	is.NoErr(err)

	_, err = be.CreateInvite(ctx, member, org.ID, "x@example.com")
	is.True(errors.Is(err, proto.ErrForbidden))
	is.Equal(err.Error(), "Only the owner can create invites")
	_, err = be.CreateInvite(ctx, owner, org.ID+1, "")
	is.Equal(err, proto.ErrOrgNotFound)

	inv, err := be.CreateInvite(ctx, owner, org.ID, "new@example.com")
	is.NoErr(err)
	is.Equal(inv.Status, models.InvitePending)
	is.Equal(inv.Email.String, "new@example.com")
	is.True(inv.Token != "")

	invites, err := be.Invites(ctx, member, org.ID)
	is.NoErr(err)
	is.Equal(len(invites), 1)
	_, err = be.Invites(ctx, newbie, org.ID)
	is.True(errors.Is(err, proto.ErrForbidden))

	info, err := be.InviteByToken(ctx, inv.Token)
	is.NoErr(err)
	is.Equal(info.OrgName, "Acme")
	is.Equal(info.Status, models.InvitePending)

	_, err = be.AcceptInvite(ctx, member, inv.Token)
	is.Equal(err, proto.ErrAlreadyMember)

	m, err := be.AcceptInvite(ctx, newbie, inv.Token)
	is.NoErr(err)
	is.Equal(m.UserID, newbie.ID())

	// Accepted invites are spent.
	_, err = be.InviteByToken(ctx, inv.Token)
	is.Equal(err, proto.ErrInviteNotFound)
	_, err = be.InviteByToken(ctx, "unknown")
	is.Equal(err, proto.ErrInviteNotFound)
}

func TestRevokeInvite(t *testing.T) {
	is := is.New(t)
	ctx, be := setup(t)
	owner := mustUser(t, ctx, be, "owner", false)
	member := mustUser(t, ctx, be, "member", false)

	org, err := be.CreateOrg(ctx, owner, "Acme", "")
	is.NoErr(err)
	_, err = be.AddOrgMember(ctx, owner, org.ID, "member")
	is.NoErr(err)
	inv, err := be.CreateInvite(ctx, owner, org.ID, "")
	is.NoErr(err)
	is.True(!inv.Email.Valid)

	err = be.RevokeInvite(ctx, member, org.ID, inv.ID)
	is.True(errors.Is(err, proto.ErrForbidden))
	is.Equal(be.RevokeInvite(ctx, owner, org.ID, inv.ID+1), proto.ErrInviteNotFound)
	is.NoErr(be.RevokeInvite(ctx, owner, org.ID, inv.ID))

	_, err = be.AcceptInvite(ctx, member, inv.Token)
	is.Equal(err, proto.ErrInviteNotFound)
}

func TestInviteExpiry(t *testing.T) {
	is := is.New(t)
	ctx, be := setup(t)
	owner := mustUser(t, ctx, be, "owner", false)
	newbie := mustUser(t, ctx, be, "newbie", false)

	start := time.Now()
	now := clock(be, start)
	org, err := be.CreateOrg(ctx, owner, "Acme", "")
	is.NoErr(err)
	inv, err := be.CreateInvite(ctx, owner, org.ID, "")
	is.NoErr(err)

	*now = start.Add(InviteTTL + time.Hour)
	_, err = be.AcceptInvite(ctx, newbie, inv.Token)
	is.Equal(err, proto.ErrInviteNotFound)

	res, err := be.ExpirySweep(ctx)
	is.NoErr(err)
	is.Equal(res.Invites, int64(1))

	invites, err := be.Invites(ctx, owner, org.ID)
	is.NoErr(err)
	is.Equal(invites[0].Status, models.InviteRevoked)
}
