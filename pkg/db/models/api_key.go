package models

import (
	"database/sql"
	"time"
)

// APIKey represents an API key. Only the prefix and a one-way hash of the
// key are stored.
type APIKey struct {
	ID         int64        `db:"id"`
	UserID     int64        `db:"user_id"`
	Name       string       `db:"name"`
	Prefix     string       `db:"prefix"`
	KeyHash    string       `db:"key_hash"`
	Active     bool         `db:"is_active"`
	ExpiresAt  sql.NullTime `db:"expires_at"`
	LastUsedAt sql.NullTime `db:"last_used_at"`
	CreatedAt  time.Time    `db:"created_at"`
}
