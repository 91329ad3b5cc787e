package models

import (
	"database/sql"
	"time"
)

// Board represents a kanban board.
type Board struct {
	ID            int64         `db:"id"`
	Name          string        `db:"name"`
	UserID        int64         `db:"user_id"`
	SharedTeamID  sql.NullInt64 `db:"shared_team_id"`
	OrgID         sql.NullInt64 `db:"org_id"`
	IsPublicToOrg bool          `db:"is_public_to_org"`
	CreatedAt     time.Time     `db:"created_at"`
	UpdatedAt     time.Time     `db:"updated_at"`
}

// Column represents a board column.
type Column struct {
	ID       int64  `db:"id"`
	BoardID  int64  `db:"board_id"`
	Name     string `db:"name"`
	Position int    `db:"position"`
}

// Card represents a card in a column.
type Card struct {
	ID          int64          `db:"id"`
	ColumnID    int64          `db:"column_id"`
	Title       string         `db:"title"`
	Description sql.NullString `db:"description"`
	Position    int            `db:"position"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}

// Comment represents a comment on a card.
type Comment struct {
	ID        int64     `db:"id"`
	CardID    int64     `db:"card_id"`
	UserID    int64     `db:"user_id"`
	Username  string    `db:"username"`
	Body      string    `db:"body"`
	CreatedAt time.Time `db:"created_at"`
}
