package web

import (
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/charmbracelet/kanban/pkg/api"
	"github.com/matryer/is"
)

func TestLogin(t *testing.T) {
	is := is.New(t)
	s := newTestServer(t)
	s.user("alice", false)

	var tok api.Token
	code := s.do(anonymous, http.MethodPost, "/api/token", api.LoginRequest{Username: "alice", Password: "password"}, &tok)
	is.Equal(code, http.StatusOK)
	is.Equal(tok.TokenType, "bearer")
	is.True(tok.AccessToken != "")

	var me api.User
	is.Equal(s.do(bearer(tok.AccessToken), http.MethodGet, "/api/me", nil, &me), http.StatusOK)
	is.Equal(me.Username, "alice")

	for _, req := range []api.LoginRequest{
		{Username: "alice", Password: "wrong"},
		{Username: "nobody", Password: "password"},
	} {
		code, detail := s.detail(anonymous, http.MethodPost, "/api/token", req)
		is.Equal(code, http.StatusUnauthorized)
		is.Equal(detail, "Incorrect username or password")
	}
}

func TestAuthenticationFailures(t *testing.T) {
	s := newTestServer(t)
	s.user("alice", false)

	cases := []struct {
		name   string
		cred   cred
		detail string
	}{
		{"none", anonymous, "not authenticated"},
		{"garbage bearer", bearer("garbage"), "invalid token"},
		{"basic scheme", func(r *http.Request) { r.Header.Set("Authorization", "Basic YTpi") }, "invalid authorization header"},
		{"unknown key", apiKey("kanban_doesnotexist0000000000000000"), "invalid API key"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			is := is.New(t)
			code, detail := s.detail(c.cred, http.MethodGet, "/api/me", nil)
			is.Equal(code, http.StatusUnauthorized)
			is.Equal(detail, c.detail)
		})
	}
}

func TestAPIKeyLifecycle(t *testing.T) {
	is := is.New(t)
	s := newTestServer(t)
	_, alice := s.user("alice", false)

	days := 30
	var k api.APIKey
	is.Equal(s.do(alice, http.MethodPost, "/api/api-keys", api.CreateAPIKeyRequest{Name: "ci", ExpiresInDays: &days}, &k), http.StatusOK)
	is.True(strings.HasPrefix(k.Key, "kanban_"))
	is.True(k.IsActive)
	is.True(k.ExpiresAt != nil)

	var me api.User
	is.Equal(s.do(apiKey(k.Key), http.MethodGet, "/api/me", nil, &me), http.StatusOK)
	is.Equal(me.Username, "alice")

	var keys []api.APIKey
	is.Equal(s.do(alice, http.MethodGet, "/api/api-keys", nil, &keys), http.StatusOK)
	is.Equal(len(keys), 1)
	is.Equal(keys[0].Key, "")
	is.True(keys[0].LastUsedAt != nil)

	path := fmt.Sprintf("/api/api-keys/%d", k.ID)
	is.Equal(s.do(alice, http.MethodDelete, path, nil, nil), http.StatusOK)

	code, detail := s.detail(apiKey(k.Key), http.MethodGet, "/api/me", nil)
	is.Equal(code, http.StatusUnauthorized)
	is.True(strings.Contains(detail, "inactive"))

	// The key header wins over a valid bearer token.
	req := func(r *http.Request) {
		alice(r)
		apiKey(k.Key)(r)
	}
	code, _ = s.detail(req, http.MethodGet, "/api/me", nil)
	is.Equal(code, http.StatusUnauthorized)

	is.Equal(s.do(alice, http.MethodPost, path+"/activate", nil, nil), http.StatusOK)
	is.Equal(s.do(apiKey(k.Key), http.MethodGet, "/api/me", nil, nil), http.StatusOK)

	_, bob := s.user("bob", false)
	code, _ = s.detail(bob, http.MethodDelete, path, nil)
	is.Equal(code, http.StatusNotFound)

	zero := 0
	code, _ = s.detail(alice, http.MethodPost, "/api/api-keys", api.CreateAPIKeyRequest{Name: "x", ExpiresInDays: &zero})
	is.Equal(code, http.StatusBadRequest)
}

func TestBoardAccessCodes(t *testing.T) {
	is := is.New(t)
	s := newTestServer(t)
	_, alice := s.user("alice", false)
	_, bob := s.user("bob", false)

	var board api.BoardDetail
	is.Equal(s.do(alice, http.MethodPost, "/api/boards", api.BoardRequest{Name: "Roadmap"}, &board), http.StatusOK)
	is.Equal(len(board.Columns), 3)
	is.Equal(board.Columns[0].Name, "To Do")
	is.Equal(board.Columns[2].Name, "Done")

	path := fmt.Sprintf("/api/boards/%d", board.ID)
	code, _ := s.detail(bob, http.MethodGet, path, nil)
	is.Equal(code, http.StatusForbidden)

	code, _ = s.detail(bob, http.MethodGet, "/api/boards/99999", nil)
	is.Equal(code, http.StatusNotFound)

	code, _ = s.detail(anonymous, http.MethodGet, path, nil)
	is.Equal(code, http.StatusUnauthorized)

	code, _ = s.detail(bob, http.MethodDelete, path, nil)
	is.Equal(code, http.StatusForbidden)

	var renamed api.Board
	is.Equal(s.do(alice, http.MethodPost, path, api.BoardRequest{Name: "Plan"}, &renamed), http.StatusOK)
	is.Equal(renamed.Name, "Plan")

	code, _ = s.detail(alice, http.MethodPut, path, api.BoardRequest{Name: "  "})
	is.Equal(code, http.StatusBadRequest)
}

func TestBoardContents(t *testing.T) {
	is := is.New(t)
	s := newTestServer(t)
	_, alice := s.user("alice", false)
	_, bob := s.user("bob", false)

	var board api.BoardDetail
	is.Equal(s.do(alice, http.MethodPost, "/api/boards", api.BoardRequest{Name: "Roadmap"}, &board), http.StatusOK)
	todo, done := board.Columns[0], board.Columns[2]

	desc := "write it *well*"
	var card api.Card
	is.Equal(s.do(alice, http.MethodPost, "/api/cards", api.CardRequest{ColumnID: todo.ID, Title: "Docs", Description: &desc, Position: 1}, &card), http.StatusOK)
	is.Equal(*card.Description, desc)

	code, _ := s.detail(bob, http.MethodPost, "/api/cards", api.CardRequest{ColumnID: todo.ID, Title: "Nope"})
	is.Equal(code, http.StatusForbidden)

	var moved api.Card
	is.Equal(s.do(alice, http.MethodPut, fmt.Sprintf("/api/cards/%d", card.ID), api.CardRequest{ColumnID: done.ID, Title: "Docs", Position: 0}, &moved), http.StatusOK)
	is.Equal(moved.ColumnID, done.ID)
	is.Equal(moved.Description, nil)

	var col api.Column
	is.Equal(s.do(alice, http.MethodPost, "/api/columns", api.ColumnRequest{BoardID: board.ID, Name: "Review", Position: 3}, &col), http.StatusOK)
	is.Equal(s.do(alice, http.MethodPut, fmt.Sprintf("/api/columns/%d", col.ID), api.ColumnRequest{Name: "QA", Position: 4}, &col), http.StatusOK)
	is.Equal(col.Name, "QA")

	var comment api.Comment
	commentsPath := fmt.Sprintf("/api/cards/%d/comments", card.ID)
	is.Equal(s.do(alice, http.MethodPost, commentsPath, api.CommentRequest{Body: "ship it"}, &comment), http.StatusOK)
	is.Equal(comment.Username, "alice")

	var comments []api.Comment
	is.Equal(s.do(alice, http.MethodGet, commentsPath, nil, &comments), http.StatusOK)
	is.Equal(len(comments), 1)

	code, _ = s.detail(bob, http.MethodGet, commentsPath, nil)
	is.Equal(code, http.StatusForbidden)

	var detail api.BoardDetail
	is.Equal(s.do(alice, http.MethodGet, fmt.Sprintf("/api/boards/%d", board.ID), nil, &detail), http.StatusOK)
	is.Equal(len(detail.Columns), 4)
	is.Equal(detail.Columns[2].ID, done.ID)
	is.Equal(len(detail.Columns[2].Cards), 1)
	is.Equal(len(detail.Columns[0].Cards), 0)

	is.Equal(s.do(alice, http.MethodDelete, fmt.Sprintf("/api/comments/%d", comment.ID), nil, nil), http.StatusOK)
	is.Equal(s.do(alice, http.MethodDelete, fmt.Sprintf("/api/cards/%d", card.ID), nil, nil), http.StatusOK)
	is.Equal(s.do(alice, http.MethodDelete, fmt.Sprintf("/api/columns/%d", col.ID), nil, nil), http.StatusOK)

	code, _ = s.detail(alice, http.MethodDelete, fmt.Sprintf("/api/cards/%d", card.ID), nil)
	is.Equal(code, http.StatusNotFound)
}

func TestOrganizationSharing(t *testing.T) {
	is := is.New(t)
	s := newTestServer(t)
	_, alice := s.user("alice", false)
	bobUser, bob := s.user("bob", false)
	_, carol := s.user("carol", false)

	var org api.Organization
	is.Equal(s.do(alice, http.MethodPost, "/api/organizations", api.OrganizationRequest{Name: "Acme Corp"}, &org), http.StatusOK)
	is.Equal(org.Slug, "acme-corp")

	orgPath := fmt.Sprintf("/api/organizations/%d", org.ID)
	code, _ := s.detail(bob, http.MethodGet, orgPath, nil)
	is.Equal(code, http.StatusForbidden)

	is.Equal(s.do(alice, http.MethodPost, orgPath+"/members", api.MemberRequest{Username: "bob"}, nil), http.StatusOK)
	code, detail := s.detail(alice, http.MethodPost, orgPath+"/members", api.MemberRequest{Username: "bob"})
	is.Equal(code, http.StatusBadRequest)
	is.Equal(detail, "user is already a member of this organization")

	var team api.Team
	is.Equal(s.do(alice, http.MethodPost, orgPath+"/teams", api.TeamRequest{Name: "Platform"}, &team), http.StatusOK)
	teamPath := fmt.Sprintf("/api/teams/%d", team.ID)
	is.Equal(s.do(alice, http.MethodPost, teamPath+"/members", api.MemberRequest{Username: "bob"}, nil), http.StatusOK)

	code, _ = s.detail(alice, http.MethodPost, teamPath+"/members", api.MemberRequest{Username: "carol"})
	is.Equal(code, http.StatusBadRequest)

	var board api.BoardDetail
	is.Equal(s.do(alice, http.MethodPost, "/api/boards", api.BoardRequest{Name: "Shared"}, &board), http.StatusOK)
	boardPath := fmt.Sprintf("/api/boards/%d", board.ID)

	var shared api.Board
	is.Equal(s.do(alice, http.MethodPost, boardPath+"/share", api.ShareRequest{TeamID: &team.ID}, &shared), http.StatusOK)
	is.Equal(*shared.SharedTeamID, team.ID)
	is.Equal(*shared.OrganizationID, org.ID)
	is.Equal(shared.Access.String(), "owner")

	var boards []map[string]interface{}
	is.Equal(s.do(bob, http.MethodGet, "/api/boards", nil, &boards), http.StatusOK)
	is.Equal(len(boards), 1)
	is.Equal(boards[0]["access"], "read-write")
	is.Equal(s.do(bob, http.MethodGet, boardPath, nil, nil), http.StatusOK)

	code, _ = s.detail(bob, http.MethodPost, boardPath+"/share", api.ShareRequest{})
	is.Equal(code, http.StatusForbidden)

	code, _ = s.detail(carol, http.MethodGet, boardPath, nil)
	is.Equal(code, http.StatusForbidden)

	// Team member removal is self-only.
	memberPath := fmt.Sprintf("%s/members/%d", teamPath, bobUser.ID())
	code, _ = s.detail(alice, http.MethodDelete, memberPath, nil)
	is.Equal(code, http.StatusForbidden)
	is.Equal(s.do(bob, http.MethodDelete, memberPath, nil, nil), http.StatusOK)

	code, _ = s.detail(bob, http.MethodGet, boardPath, nil)
	is.Equal(code, http.StatusForbidden)

	is.Equal(s.do(alice, http.MethodPost, boardPath+"/share", api.ShareRequest{OrganizationID: &org.ID, IsPublicToOrg: true}, &shared), http.StatusOK)
	is.True(shared.IsPublicToOrg)
	is.Equal(shared.SharedTeamID, nil)
	is.Equal(s.do(bob, http.MethodGet, boardPath, nil, nil), http.StatusOK)

	var teams []api.Team
	is.Equal(s.do(bob, http.MethodGet, orgPath+"/teams", nil, &teams), http.StatusOK)
	is.Equal(len(teams), 1)

	code, _ = s.detail(bob, http.MethodDelete, orgPath, nil)
	is.Equal(code, http.StatusForbidden)
	is.Equal(s.do(alice, http.MethodDelete, orgPath, nil, nil), http.StatusOK)

	code, _ = s.detail(alice, http.MethodGet, teamPath, nil)
	is.Equal(code, http.StatusNotFound)
}

func TestInvites(t *testing.T) {
	is := is.New(t)
	s := newTestServer(t)
	_, alice := s.user("alice", false)
	_, bob := s.user("bob", false)

	var org api.Organization
	is.Equal(s.do(alice, http.MethodPost, "/api/organizations", api.OrganizationRequest{Name: "Acme"}, &org), http.StatusOK)
	invitesPath := fmt.Sprintf("/api/organizations/%d/invites", org.ID)

	code, detail := s.detail(bob, http.MethodPost, invitesPath, api.InviteRequest{})
	is.Equal(code, http.StatusForbidden)
	is.Equal(detail, "Only the owner can create invites")

	var inv api.Invite
	is.Equal(s.do(alice, http.MethodPost, invitesPath, api.InviteRequest{Email: "bob@example.com"}, &inv), http.StatusOK)
	is.Equal(inv.Status, "pending")

	var info api.InviteInfo
	is.Equal(s.do(anonymous, http.MethodGet, "/api/invites/"+inv.Token, nil, &info), http.StatusOK)
	is.Equal(info.OrganizationName, "Acme")
	is.Equal(*info.Email, "bob@example.com")

	code, _ = s.detail(anonymous, http.MethodPost, "/api/invites/"+inv.Token+"/accept", nil)
	is.Equal(code, http.StatusUnauthorized)

	var member api.Member
	is.Equal(s.do(bob, http.MethodPost, "/api/invites/"+inv.Token+"/accept", nil, &member), http.StatusOK)
	is.Equal(member.Username, "bob")

	code, _ = s.detail(anonymous, http.MethodGet, "/api/invites/"+inv.Token, nil)
	is.Equal(code, http.StatusNotFound)

	var second api.Invite
	is.Equal(s.do(alice, http.MethodPost, invitesPath, nil, &second), http.StatusOK)
	code, _ = s.detail(bob, http.MethodPost, "/api/invites/"+second.Token+"/accept", nil)
	is.Equal(code, http.StatusBadRequest)

	var invites []api.Invite
	is.Equal(s.do(bob, http.MethodGet, invitesPath, nil, &invites), http.StatusOK)
	is.Equal(len(invites), 2)

	revokePath := fmt.Sprintf("%s/%d", invitesPath, second.ID)
	code, _ = s.detail(bob, http.MethodDelete, revokePath, nil)
	is.Equal(code, http.StatusForbidden)
	is.Equal(s.do(alice, http.MethodDelete, revokePath, nil, nil), http.StatusOK)

	code, _ = s.detail(anonymous, http.MethodGet, "/api/invites/"+second.Token, nil)
	is.Equal(code, http.StatusNotFound)
	code, _ = s.detail(anonymous, http.MethodGet, "/api/invites/unknown", nil)
	is.Equal(code, http.StatusNotFound)
}

func TestAdminGate(t *testing.T) {
	is := is.New(t)
	s := newTestServer(t)
	rootUser, root := s.user("root", true)
	_, alice := s.user("alice", false)

	var status api.AdminStatus
	is.Equal(s.do(alice, http.MethodGet, "/api/admin/status", nil, &status), http.StatusOK)
	is.True(!status.IsAdmin)
	is.Equal(s.do(root, http.MethodGet, "/api/admin/status", nil, &status), http.StatusOK)
	is.True(status.IsAdmin)

	code, _ := s.detail(alice, http.MethodGet, "/api/admin/users", nil)
	is.Equal(code, http.StatusForbidden)
	code, _ = s.detail(anonymous, http.MethodGet, "/api/admin/users", nil)
	is.Equal(code, http.StatusUnauthorized)

	var users []api.User
	is.Equal(s.do(root, http.MethodGet, "/api/admin/users", nil, &users), http.StatusOK)
	is.Equal(len(users), 2)
	is.Equal(s.do(root, http.MethodGet, "/api/admin/users?page=2&per_page=1", nil, &users), http.StatusOK)
	is.Equal(len(users), 1)
	is.Equal(users[0].Username, "alice")

	self := fmt.Sprintf("/api/admin/users/%d", rootUser.ID())
	no := false
	code, _ = s.detail(root, http.MethodPut, self, api.UserUpdateRequest{Admin: &no})
	is.Equal(code, http.StatusBadRequest)
	code, _ = s.detail(root, http.MethodDelete, self, nil)
	is.Equal(code, http.StatusBadRequest)
}

func TestAdminSurface(t *testing.T) {
	is := is.New(t)
	s := newTestServer(t)
	_, root := s.user("root", true)

	var dave api.User
	is.Equal(s.do(root, http.MethodPost, "/api/admin/users", api.UserRequest{Username: "dave", Password: "secret"}, &dave), http.StatusOK)
	code, _ := s.detail(root, http.MethodPost, "/api/admin/users", api.UserRequest{Username: "dave", Password: "secret"})
	is.Equal(code, http.StatusBadRequest)
	code, _ = s.detail(root, http.MethodPost, "/api/admin/users", api.UserRequest{Username: "erin"})
	is.Equal(code, http.StatusBadRequest)

	is.Equal(s.do(root, http.MethodPost, fmt.Sprintf("/api/admin/users/%d/reset-password", dave.ID), api.PasswordRequest{Password: "changed"}, nil), http.StatusOK)
	is.Equal(s.do(anonymous, http.MethodPost, "/api/token", api.LoginRequest{Username: "dave", Password: "changed"}, nil), http.StatusOK)

	code, _ = s.detail(root, http.MethodPost, "/api/admin/organizations", api.OrganizationRequest{Name: "Ghost", OwnerID: 9999})
	is.Equal(code, http.StatusNotFound)

	var org api.Organization
	is.Equal(s.do(root, http.MethodPost, "/api/admin/organizations", api.OrganizationRequest{Name: "Acme", OwnerID: dave.ID}, &org), http.StatusOK)
	is.Equal(org.OwnerID, dave.ID)

	var team api.Team
	is.Equal(s.do(root, http.MethodPost, "/api/admin/teams", api.TeamRequest{Name: "Ops", OrganizationID: org.ID}, &team), http.StatusOK)

	var available []api.User
	teamPath := fmt.Sprintf("/api/admin/teams/%d", team.ID)
	is.Equal(s.do(root, http.MethodGet, teamPath+"/available-members", nil, &available), http.StatusOK)
	is.Equal(len(available), 1)
	is.Equal(available[0].Username, "dave")

	is.Equal(s.do(root, http.MethodPost, teamPath+"/members", api.MemberRequest{Username: "dave"}, nil), http.StatusOK)
	var members []api.Member
	is.Equal(s.do(root, http.MethodGet, teamPath+"/members", nil, &members), http.StatusOK)
	is.Equal(len(members), 1)
	is.Equal(s.do(root, http.MethodDelete, fmt.Sprintf("%s/members/%d", teamPath, dave.ID), nil, nil), http.StatusOK)

	var board api.BoardSummary
	is.Equal(s.do(root, http.MethodPost, "/api/admin/boards", api.BoardRequest{Name: "Ops board", OwnerID: dave.ID}, &board), http.StatusOK)
	is.Equal(board.OwnerUsername, "dave")
	is.Equal(board.ColumnCount, 3)

	var boards []api.BoardSummary
	is.Equal(s.do(root, http.MethodGet, "/api/admin/boards", nil, &boards), http.StatusOK)
	is.Equal(len(boards), 1)

	is.Equal(s.do(root, http.MethodDelete, fmt.Sprintf("/api/admin/boards/%d", board.ID), nil, nil), http.StatusOK)
	is.Equal(s.do(root, http.MethodDelete, teamPath, nil, nil), http.StatusOK)
	is.Equal(s.do(root, http.MethodDelete, fmt.Sprintf("/api/admin/organizations/%d", org.ID), nil, nil), http.StatusOK)
	is.Equal(s.do(root, http.MethodDelete, fmt.Sprintf("/api/admin/users/%d", dave.ID), nil, nil), http.StatusOK)
}
