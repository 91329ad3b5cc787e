package backend

import (
	"context"
	"testing"
	"time"

	"github.com/charmbracelet/kanban/pkg/config"
	"github.com/charmbracelet/kanban/pkg/proto"
	"github.com/charmbracelet/kanban/pkg/store/database"
	"github.com/charmbracelet/kanban/pkg/test"
)

func setup(t *testing.T) (context.Context, *Backend) {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Auth.JWTSecret = "super-secret"
	ctx := config.WithContext(context.Background(), cfg)
	dbx := test.OpenDB(ctx, t)
	be, err := New(ctx, cfg, dbx, database.New(ctx, dbx))
	if err != nil {
		t.Fatalf("new backend: %v", err)
	}
	return ctx, be
}

func mustUser(t *testing.T, ctx context.Context, be *Backend, name string, admin bool) proto.User {
	t.Helper()
	u, err := be.CreateUser(ctx, name, proto.UserOptions{Admin: admin, Password: "password"})
	if err != nil {
		t.Fatalf("create user %s: %v", name, err)
	}
	return u
}

// clock returns a settable time source for be.
func clock(be *Backend, start time.Time) *time.Time {
	now := start
	be.now = func() time.Time { return now }
	return &now
}
