package access

import "github.com/charmbracelet/kanban/pkg/proto"

// Actor is a snapshot of a user's identity and memberships. It is loaded
// fresh for every decision, so revoking a membership takes effect on the
// next check.
type Actor struct {
	ID    int64
	orgs  map[int64]struct{}
	teams map[int64]struct{}
}

// NewActor returns an Actor for the given user id and the ids of the
// organizations and teams the user belongs to.
func NewActor(id int64, orgIDs, teamIDs []int64) Actor {
	a := Actor{
		ID:    id,
		orgs:  make(map[int64]struct{}, len(orgIDs)),
		teams: make(map[int64]struct{}, len(teamIDs)),
	}
	for _, o := range orgIDs {
		a.orgs[o] = struct{}{}
	}
	for _, t := range teamIDs {
		a.teams[t] = struct{}{}
	}
	return a
}

// InOrg reports whether the actor has a membership row for the organization.
func (a Actor) InOrg(orgID int64) bool {
	_, ok := a.orgs[orgID]
	return ok
}

// InTeam reports whether the actor has a membership row for the team.
func (a Actor) InTeam(teamID int64) bool {
	_, ok := a.teams[teamID]
	return ok
}

// Org holds the facts the rules need about an organization.
type Org struct {
	ID      int64
	OwnerID int64
}

// Team holds the facts the rules need about a team.
type Team struct {
	ID  int64
	Org Org
}

// Board holds the facts the rules need about a board. Zero ids mean unset.
type Board struct {
	OwnerID      int64
	SharedTeamID int64
	OrgID        int64
	PublicToOrg  bool
}

// BoardAccess returns the access level the actor has to the board. The owner
// always gets OwnerAccess. A board can be both shared with a team and public
// to its organization; the public flag supersedes the team share, and either
// one grants ReadWriteAccess.
func BoardAccess(a Actor, b Board) AccessLevel {
	switch {
	case a.ID == b.OwnerID:
		return OwnerAccess
	case b.PublicToOrg && b.OrgID != 0 && a.InOrg(b.OrgID):
		return ReadWriteAccess
	case b.SharedTeamID != 0 && a.InTeam(b.SharedTeamID):
		return ReadWriteAccess
	default:
		return NoAccess
	}
}

// CanAccessBoard reports whether the actor may view the board.
func CanAccessBoard(a Actor, b Board) bool {
	return BoardAccess(a, b) >= ReadWriteAccess
}

// CanModifyBoard reports whether the actor may edit the board, its columns
// and its cards. Viewing and editing are the same capability.
func CanModifyBoard(a Actor, b Board) bool {
	return CanAccessBoard(a, b)
}

// CanDeleteBoard reports whether the actor may delete the board. Sharing
// never grants delete.
func CanDeleteBoard(a Actor, b Board) bool {
	return a.ID == b.OwnerID
}

// CanShareBoard reports whether the actor may change the board's team share
// or its organization visibility.
func CanShareBoard(a Actor, b Board) bool {
	return a.ID == b.OwnerID
}

// IsOrgOwner reports whether the actor owns the organization. Ownership
// stands on its own, with or without a membership row.
func IsOrgOwner(a Actor, o Org) bool {
	return a.ID == o.OwnerID
}

// IsOrgMember reports whether the actor belongs to the organization.
func IsOrgMember(a Actor, o Org) bool {
	return a.InOrg(o.ID)
}

// CanViewOrg reports whether the actor may read the organization, its
// members, teams and invites.
func CanViewOrg(a Actor, o Org) bool {
	return IsOrgOwner(a, o) || IsOrgMember(a, o)
}

// CanUpdateOrg reports whether the actor may rename the organization.
func CanUpdateOrg(a Actor, o Org) bool {
	return IsOrgOwner(a, o)
}

// CanDeleteOrg reports whether the actor may delete the organization.
func CanDeleteOrg(a Actor, o Org) bool {
	return IsOrgOwner(a, o)
}

// CanAddOrgMember reports whether the actor may add members to the
// organization.
func CanAddOrgMember(a Actor, o Org) bool {
	return IsOrgOwner(a, o)
}

// CanManageInvites reports whether the actor may create or revoke invites.
func CanManageInvites(a Actor, o Org) bool {
	return IsOrgOwner(a, o)
}

// CheckRemoveOrgMember decides whether the actor may remove target from the
// organization. The owner can never be removed this way, whoever asks.
func CheckRemoveOrgMember(a Actor, o Org, target int64) error {
	if target == o.OwnerID {
		return proto.ErrOwnerRemoval
	}
	if IsOrgOwner(a, o) || a.ID == target {
		return nil
	}
	return proto.ErrForbidden
}

// CanCreateTeam reports whether the actor may create a team in the
// organization. Any member may.
func CanCreateTeam(a Actor, o Org) bool {
	return IsOrgOwner(a, o) || IsOrgMember(a, o)
}

// CanViewTeam reports whether the actor may read the team and its members.
func CanViewTeam(a Actor, t Team) bool {
	return a.InTeam(t.ID) || CanViewOrg(a, t.Org)
}

// CanUpdateTeam reports whether the actor may rename the team. Any team
// member may.
func CanUpdateTeam(a Actor, t Team) bool {
	return a.InTeam(t.ID)
}

// CanDeleteTeam reports whether the actor may delete the team. Only the
// owner of the team's organization may.
func CanDeleteTeam(a Actor, t Team) bool {
	return IsOrgOwner(a, t.Org)
}

// CheckAddTeamMember decides whether the actor may add a user to the team.
// The actor must be in the team and the target must already belong to the
// team's organization.
func CheckAddTeamMember(a Actor, t Team, targetInOrg bool) error {
	if !a.InTeam(t.ID) {
		return proto.ErrForbidden
	}
	if !targetInOrg {
		return proto.ErrNotOrgMember
	}
	return nil
}

// CanRemoveTeamMember reports whether the actor may remove target from the
// team. Only self-removal is allowed.
func CanRemoveTeamMember(a Actor, _ Team, target int64) bool {
	return a.ID == target
}

// CanDeleteComment reports whether the actor may delete a comment written
// by author on the board. The author and the board owner may.
func CanDeleteComment(a Actor, b Board, author int64) bool {
	return a.ID == author || a.ID == b.OwnerID
}
