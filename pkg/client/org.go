package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/charmbracelet/kanban/pkg/api"
)

// Orgs lists the organizations the caller belongs to.
func (c *Client) Orgs(ctx context.Context) ([]api.Organization, error) {
	var orgs []api.Organization
	err := c.do(ctx, http.MethodGet, "/organizations", nil, nil, &orgs)
	return orgs, err
}

// CreateOrg creates an organization owned by the caller. An empty slug is
// derived from the name.
func (c *Client) CreateOrg(ctx context.Context, name, slug string) (api.Organization, error) {
	var o api.Organization
	err := c.do(ctx, http.MethodPost, "/organizations", nil, api.OrganizationRequest{Name: name, Slug: slug}, &o)
	return o, err
}

// OrgMembers lists the members of an organization.
func (c *Client) OrgMembers(ctx context.Context, orgID int64) ([]api.Member, error) {
	var ms []api.Member
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/organizations/%d/members", orgID), nil, nil, &ms)
	return ms, err
}

// AddOrgMember adds a user to an organization.
func (c *Client) AddOrgMember(ctx context.Context, orgID int64, username string) (api.Member, error) {
	var m api.Member
	err := c.do(ctx, http.MethodPost, fmt.Sprintf("/organizations/%d/members", orgID), nil, api.MemberRequest{Username: username}, &m)
	return m, err
}

// RemoveOrgMember removes a user from an organization.
func (c *Client) RemoveOrgMember(ctx context.Context, orgID, userID int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/organizations/%d/members/%d", orgID, userID), nil, nil, nil)
}

// Teams lists the teams of an organization.
func (c *Client) Teams(ctx context.Context, orgID int64) ([]api.Team, error) {
	var ts []api.Team
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/organizations/%d/teams", orgID), nil, nil, &ts)
	return ts, err
}

// CreateTeam creates a team in an organization. The caller joins it.
func (c *Client) CreateTeam(ctx context.Context, orgID int64, name string) (api.Team, error) {
	var t api.Team
	err := c.do(ctx, http.MethodPost, fmt.Sprintf("/organizations/%d/teams", orgID), nil, api.TeamRequest{Name: name}, &t)
	return t, err
}

// AddTeamMember adds an organization member to a team.
func (c *Client) AddTeamMember(ctx context.Context, teamID int64, username string) (api.Member, error) {
	var m api.Member
	err := c.do(ctx, http.MethodPost, fmt.Sprintf("/teams/%d/members", teamID), nil, api.MemberRequest{Username: username}, &m)
	return m, err
}

// CreateInvite creates an invite to an organization.
func (c *Client) CreateInvite(ctx context.Context, orgID int64, email string) (api.Invite, error) {
	var inv api.Invite
	err := c.do(ctx, http.MethodPost, fmt.Sprintf("/organizations/%d/invites", orgID), nil, api.InviteRequest{Email: email}, &inv)
	return inv, err
}

// AcceptInvite joins the organization of an invite.
func (c *Client) AcceptInvite(ctx context.Context, token string) (api.Member, error) {
	var m api.Member
	err := c.do(ctx, http.MethodPost, fmt.Sprintf("/invites/%s/accept", token), nil, nil, &m)
	return m, err
}

// TeamMembers lists the members of a team.
func (c *Client) TeamMembers(ctx context.Context, teamID int64) ([]api.Member, error) {
	var ms []api.Member
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/teams/%d/members", teamID), nil, nil, &ms)
	return ms, err
}

// InviteInfo returns the public view of an invite. It needs no
// credentials.
func (c *Client) InviteInfo(ctx context.Context, token string) (api.InviteInfo, error) {
	var info api.InviteInfo
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/invites/%s", token), nil, nil, &info)
	return info, err
}
