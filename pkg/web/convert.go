package web

import (
	"database/sql"
	"sort"
	"time"

	"github.com/charmbracelet/kanban/pkg/api"
	"github.com/charmbracelet/kanban/pkg/backend"
	"github.com/charmbracelet/kanban/pkg/db/models"
	"github.com/charmbracelet/kanban/pkg/proto"
)

func nullString(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	return &s.String
}

func nullTime(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	return &t.Time
}

func nullInt(i sql.NullInt64) *int64 {
	if !i.Valid {
		return nil
	}
	return &i.Int64
}

func toUser(u proto.User) api.User {
	au := api.User{
		ID:        u.ID(),
		Username:  u.Username(),
		Admin:     u.IsAdmin(),
		CreatedAt: u.CreatedAt(),
	}
	if email := u.Email(); email != "" {
		au.Email = &email
	}
	return au
}

func toUsers(us []proto.User) []api.User {
	out := make([]api.User, 0, len(us))
	for _, u := range us {
		out = append(out, toUser(u))
	}
	return out
}

func toAPIKey(k models.APIKey) api.APIKey {
	return api.APIKey{
		ID:         k.ID,
		Name:       k.Name,
		Prefix:     k.Prefix,
		IsActive:   k.Active,
		ExpiresAt:  nullTime(k.ExpiresAt),
		LastUsedAt: nullTime(k.LastUsedAt),
		CreatedAt:  k.CreatedAt,
	}
}

func toOrg(o models.Organization) api.Organization {
	return api.Organization{
		ID:        o.ID,
		Name:      o.Name,
		Slug:      o.Slug,
		OwnerID:   o.OwnerID,
		CreatedAt: o.CreatedAt,
	}
}

func toOrgs(orgs []models.Organization) []api.Organization {
	out := make([]api.Organization, 0, len(orgs))
	for _, o := range orgs {
		out = append(out, toOrg(o))
	}
	return out
}

func toOrgMember(m models.OrganizationMember) api.Member {
	return api.Member{UserID: m.UserID, Username: m.Username, JoinedAt: m.JoinedAt}
}

func toTeamMember(m models.TeamMember) api.Member {
	return api.Member{UserID: m.UserID, Username: m.Username, JoinedAt: m.JoinedAt}
}

func toTeam(t models.Team) api.Team {
	return api.Team{
		ID:             t.ID,
		Name:           t.Name,
		OrganizationID: t.OrganizationID,
		CreatedAt:      t.CreatedAt,
	}
}

func toTeams(ts []models.Team) []api.Team {
	out := make([]api.Team, 0, len(ts))
	for _, t := range ts {
		out = append(out, toTeam(t))
	}
	return out
}

func toInvite(inv models.OrganizationInvite) api.Invite {
	return api.Invite{
		ID:             inv.ID,
		OrganizationID: inv.OrganizationID,
		Token:          inv.Token,
		Email:          nullString(inv.Email),
		Status:         inv.Status,
		CreatedAt:      inv.CreatedAt,
		ExpiresAt:      nullTime(inv.ExpiresAt),
	}
}

func toBoard(b models.Board) api.Board {
	return api.Board{
		ID:             b.ID,
		Name:           b.Name,
		OwnerID:        b.UserID,
		SharedTeamID:   nullInt(b.SharedTeamID),
		OrganizationID: nullInt(b.OrgID),
		IsPublicToOrg:  b.IsPublicToOrg,
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      b.UpdatedAt,
	}
}

func toAccessibleBoard(b backend.AccessibleBoard) api.Board {
	out := toBoard(b.Board)
	out.Access = b.Access
	return out
}

func toCard(c models.Card) api.Card {
	return api.Card{
		ID:          c.ID,
		ColumnID:    c.ColumnID,
		Title:       c.Title,
		Description: nullString(c.Description),
		Position:    c.Position,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func toColumn(c models.Column) api.Column {
	return api.Column{
		ID:       c.ID,
		BoardID:  c.BoardID,
		Name:     c.Name,
		Position: c.Position,
		Cards:    []api.Card{},
	}
}

// toBoardDetail nests the cards in their columns, both ordered by position.
func toBoardDetail(d backend.BoardDetail) api.BoardDetail {
	cols := make([]api.Column, 0, len(d.Columns))
	index := make(map[int64]int, len(d.Columns))
	for i, c := range d.Columns {
		index[c.ID] = i
		cols = append(cols, toColumn(c))
	}
	for _, c := range d.Cards {
		if i, ok := index[c.ColumnID]; ok {
			cols[i].Cards = append(cols[i].Cards, toCard(c))
		}
	}

	sort.SliceStable(cols, func(i, j int) bool { return cols[i].Position < cols[j].Position })
	for _, c := range cols {
		sort.SliceStable(c.Cards, func(i, j int) bool { return c.Cards[i].Position < c.Cards[j].Position })
	}

	return api.BoardDetail{Board: toAccessibleBoard(d.AccessibleBoard), Columns: cols}
}

func toBoardSummary(s backend.BoardSummary) api.BoardSummary {
	return api.BoardSummary{
		Board:         toBoard(s.Board),
		OwnerUsername: s.OwnerUsername,
		ColumnCount:   s.ColumnCount,
	}
}

func toComment(c models.Comment) api.Comment {
	return api.Comment{
		ID:        c.ID,
		CardID:    c.CardID,
		UserID:    c.UserID,
		Username:  c.Username,
		Body:      c.Body,
		CreatedAt: c.CreatedAt,
	}
}

func toTeamMembers(ms []models.TeamMember) []api.Member {
	out := make([]api.Member, 0, len(ms))
	for _, m := range ms {
		out = append(out, toTeamMember(m))
	}
	return out
}
