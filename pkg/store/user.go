package store

import (
	"context"

	"github.com/charmbracelet/kanban/pkg/db"
	"github.com/charmbracelet/kanban/pkg/db/models"
)

// UserStore is an interface for managing users.
type UserStore interface {
	GetUserByID(ctx context.Context, h db.Handler, id int64) (models.User, error)
	FindUserByUsername(ctx context.Context, h db.Handler, username string) (models.User, error)
	GetAllUsers(ctx context.Context, h db.Handler, limit, offset int) ([]models.User, error)
	CreateUser(ctx context.Context, h db.Handler, username, email string, isAdmin bool, passwordHash string) (int64, error)
	UpdateUser(ctx context.Context, h db.Handler, id int64, username, email string, isAdmin bool) error
	SetUserPassword(ctx context.Context, h db.Handler, id int64, passwordHash string) error
	DeleteUserByID(ctx context.Context, h db.Handler, id int64) error
	CountUsers(ctx context.Context, h db.Handler) (int64, error)
}
