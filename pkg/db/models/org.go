package models

import (
	"database/sql"
	"time"
)

// Organization represents an organization in the system.
type Organization struct {
	ID        int64     `db:"id"`
	Name      string    `db:"name"`
	Slug      string    `db:"slug"`
	OwnerID   int64     `db:"owner_id"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// OrganizationMember represents a member of an organization.
type OrganizationMember struct {
	ID             int64     `db:"id"`
	OrganizationID int64     `db:"org_id"`
	UserID         int64     `db:"user_id"`
	Username       string    `db:"username"`
	JoinedAt       time.Time `db:"joined_at"`
}

// OrganizationInvite is an invitation to join an organization.
type OrganizationInvite struct {
	ID             int64          `db:"id"`
	OrganizationID int64          `db:"org_id"`
	Token          string         `db:"token"`
	Email          sql.NullString `db:"email"`
	Status         string         `db:"status"`
	CreatedBy      int64          `db:"created_by"`
	CreatedAt      time.Time      `db:"created_at"`
	ExpiresAt      sql.NullTime   `db:"expires_at"`
	AcceptedAt     sql.NullTime   `db:"accepted_at"`
}

// Invite statuses.
const (
	InvitePending  = "pending"
	InviteAccepted = "accepted"
	InviteRevoked  = "revoked"
)
