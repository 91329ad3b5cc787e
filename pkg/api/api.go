// Package api defines the JSON bodies of the kanban REST API. The server
// and the Go client share them.
package api

import (
	"time"

	"github.com/charmbracelet/kanban/pkg/access"
)

// Error is the body of every error response.
type Error struct {
	Detail string `json:"detail"`
}

// OK is returned by operations that have nothing else to report.
type OK struct {
	OK bool `json:"ok"`
}

// LoginRequest exchanges a username and password for a bearer token.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Token is an issued bearer token.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// User is a user account.
type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     *string   `json:"email"`
	Admin     bool      `json:"admin"`
	CreatedAt time.Time `json:"created_at"`
}

// AdminStatus reports whether the caller is a platform admin.
type AdminStatus struct {
	IsAdmin bool `json:"is_admin"`
}

// CreateAPIKeyRequest creates an API key. A nil ExpiresInDays never expires.
type CreateAPIKeyRequest struct {
	Name          string `json:"name"`
	ExpiresInDays *int   `json:"expires_in_days,omitempty"`
}

// APIKey is an API key. Key is only set in the response that creates it.
type APIKey struct {
	ID         int64      `json:"id"`
	Name       string     `json:"name"`
	Prefix     string     `json:"prefix"`
	IsActive   bool       `json:"is_active"`
	ExpiresAt  *time.Time `json:"expires_at"`
	LastUsedAt *time.Time `json:"last_used_at"`
	CreatedAt  time.Time  `json:"created_at"`
	Key        string     `json:"key,omitempty"`
}

// OrganizationRequest creates or renames an organization. OwnerID is only
// read by the admin endpoints.
type OrganizationRequest struct {
	Name    string `json:"name"`
	Slug    string `json:"slug,omitempty"`
	OwnerID int64  `json:"owner_id,omitempty"`
}

// Organization is an organization.
type Organization struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	OwnerID   int64     `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
}

// MemberRequest adds a user to an organization or a team.
type MemberRequest struct {
	Username string `json:"username"`
}

// Member is a membership of an organization or a team.
type Member struct {
	UserID   int64     `json:"user_id"`
	Username string    `json:"username"`
	JoinedAt time.Time `json:"joined_at"`
}

// TeamRequest creates, renames or moves a team. OrganizationID is only read
// by the admin endpoints.
type TeamRequest struct {
	Name           string `json:"name"`
	OrganizationID int64  `json:"organization_id,omitempty"`
}

// Team is a team.
type Team struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	OrganizationID int64     `json:"organization_id"`
	CreatedAt      time.Time `json:"created_at"`
}

// InviteRequest creates an invite, optionally addressed to an email.
type InviteRequest struct {
	Email string `json:"email,omitempty"`
}

// Invite is an organization invite.
type Invite struct {
	ID             int64      `json:"id"`
	OrganizationID int64      `json:"organization_id"`
	Token          string     `json:"token"`
	Email          *string    `json:"email"`
	Status         string     `json:"status"`
	CreatedAt      time.Time  `json:"created_at"`
	ExpiresAt      *time.Time `json:"expires_at"`
}

// InviteInfo is the public view of an invite.
type InviteInfo struct {
	OrganizationID   int64   `json:"organization_id"`
	OrganizationName string  `json:"organization_name"`
	Email            *string `json:"email"`
	Status           string  `json:"status"`
}

// BoardRequest creates or renames a board. OwnerID is only read by the
// admin endpoints.
type BoardRequest struct {
	Name    string `json:"name"`
	OwnerID int64  `json:"owner_id,omitempty"`
}

// ShareRequest replaces the sharing of a board.
type ShareRequest struct {
	TeamID         *int64 `json:"team_id,omitempty"`
	OrganizationID *int64 `json:"organization_id,omitempty"`
	IsPublicToOrg  bool   `json:"is_public_to_org"`
}

// Board is a board without its contents. Access is the caller's access
// level and is left out of admin listings.
type Board struct {
	ID             int64              `json:"id"`
	Name           string             `json:"name"`
	OwnerID        int64              `json:"owner_id"`
	SharedTeamID   *int64             `json:"shared_team_id"`
	OrganizationID *int64             `json:"organization_id"`
	IsPublicToOrg  bool               `json:"is_public_to_org"`
	Access         access.AccessLevel `json:"access,omitempty"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
}

// BoardDetail is a board with its columns and their cards.
type BoardDetail struct {
	Board
	Columns []Column `json:"columns"`
}

// BoardSummary is a board as listed by admins.
type BoardSummary struct {
	Board
	OwnerUsername string `json:"owner_username"`
	ColumnCount   int    `json:"column_count"`
}

// ColumnRequest creates or updates a column. BoardID is only read on
// create.
type ColumnRequest struct {
	BoardID  int64  `json:"board_id,omitempty"`
	Name     string `json:"name"`
	Position int    `json:"position"`
}

// Column is a board column.
type Column struct {
	ID       int64  `json:"id"`
	BoardID  int64  `json:"board_id"`
	Name     string `json:"name"`
	Position int    `json:"position"`
	Cards    []Card `json:"cards"`
}

// CardRequest creates or replaces a card.
type CardRequest struct {
	ColumnID    int64   `json:"column_id"`
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	Position    int     `json:"position"`
}

// Card is a card.
type Card struct {
	ID          int64     `json:"id"`
	ColumnID    int64     `json:"column_id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Position    int       `json:"position"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CommentRequest adds a comment.
type CommentRequest struct {
	Body string `json:"body"`
}

// Comment is a comment on a card.
type Comment struct {
	ID        int64     `json:"id"`
	CardID    int64     `json:"card_id"`
	UserID    int64     `json:"user_id"`
	Username  string    `json:"username"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// UserRequest creates a user.
type UserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email,omitempty"`
	Admin    bool   `json:"admin"`
}

// UserUpdateRequest changes a user. Nil fields are left untouched.
type UserUpdateRequest struct {
	Username *string `json:"username,omitempty"`
	Email    *string `json:"email,omitempty"`
	Admin    *bool   `json:"admin,omitempty"`
}

// PasswordRequest sets a user's password.
type PasswordRequest struct {
	Password string `json:"password"`
}

// ListOptions selects a page of an admin listing.
type ListOptions struct {
	Page    int `url:"page,omitempty"`
	PerPage int `url:"per_page,omitempty"`
}
