package database

import (
	"context"
	"database/sql"
	"strings"

	"github.com/charmbracelet/kanban/pkg/db"
	"github.com/charmbracelet/kanban/pkg/db/models"
	"github.com/charmbracelet/kanban/pkg/store"
)

type userStore struct{}

var _ store.UserStore = (*userStore)(nil)

// CreateUser implements store.UserStore.
func (*userStore) CreateUser(ctx context.Context, tx db.Handler, username, email string, isAdmin bool, passwordHash string) (int64, error) {
	query := tx.Rebind(`INSERT INTO users (username, email, admin, password, updated_at)
			VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP) RETURNING id;`)

	var userID int64
	err := tx.GetContext(ctx, &userID, query, strings.ToLower(username), nullString(email), isAdmin, nullString(passwordHash))
	return userID, err //nolint:wrapcheck
}

// GetUserByID implements store.UserStore.
func (*userStore) GetUserByID(ctx context.Context, tx db.Handler, id int64) (models.User, error) {
	var m models.User
	query := tx.Rebind(`SELECT * FROM users WHERE id = ?;`)
	err := tx.GetContext(ctx, &m, query, id)
	return m, err //nolint:wrapcheck
}

// FindUserByUsername implements store.UserStore.
func (*userStore) FindUserByUsername(ctx context.Context, tx db.Handler, username string) (models.User, error) {
	var m models.User
	query := tx.Rebind(`SELECT * FROM users WHERE username = ?;`)
	err := tx.GetContext(ctx, &m, query, strings.ToLower(username))
	return m, err //nolint:wrapcheck
}

// GetAllUsers implements store.UserStore.
func (*userStore) GetAllUsers(ctx context.Context, tx db.Handler, limit, offset int) ([]models.User, error) {
	var ms []models.User
	query := tx.Rebind(`SELECT * FROM users ORDER BY id ASC LIMIT ? OFFSET ?;`)
	err := tx.SelectContext(ctx, &ms, query, limit, offset)
	return ms, err //nolint:wrapcheck
}

// CountUsers implements store.UserStore.
func (*userStore) CountUsers(ctx context.Context, tx db.Handler) (int64, error) {
	var n int64
	err := tx.GetContext(ctx, &n, `SELECT COUNT(*) FROM users;`)
	return n, err //nolint:wrapcheck
}

// UpdateUser implements store.UserStore.
func (*userStore) UpdateUser(ctx context.Context, tx db.Handler, id int64, username, email string, isAdmin bool) error {
	query := tx.Rebind(`UPDATE users
			SET username = ?, email = ?, admin = ?, updated_at = CURRENT_TIMESTAMP
			WHERE id = ?;`)
	_, err := tx.ExecContext(ctx, query, strings.ToLower(username), nullString(email), isAdmin, id)
	return err //nolint:wrapcheck
}

// SetUserPassword implements store.UserStore.
func (*userStore) SetUserPassword(ctx context.Context, tx db.Handler, id int64, passwordHash string) error {
	query := tx.Rebind(`UPDATE users SET password = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?;`)
	_, err := tx.ExecContext(ctx, query, passwordHash, id)
	return err //nolint:wrapcheck
}

// DeleteUserByID implements store.UserStore.
func (*userStore) DeleteUserByID(ctx context.Context, tx db.Handler, id int64) error {
	query := tx.Rebind(`DELETE FROM users WHERE id = ?;`)
	_, err := tx.ExecContext(ctx, query, id)
	return err //nolint:wrapcheck
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
