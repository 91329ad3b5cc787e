package database

import (
	"context"

	"github.com/charmbracelet/kanban/pkg/config"
	"github.com/charmbracelet/kanban/pkg/db"
	"github.com/charmbracelet/kanban/pkg/store"
	"github.com/charmbracelet/log"
)

type datastore struct {
	ctx    context.Context
	cfg    *config.Config
	db     *db.DB
	logger *log.Logger

	*userStore
	*orgStore
	*teamStore
	*boardStore
	*columnStore
	*cardStore
	*apiKeyStore
	*inviteStore
}

var _ store.Store = (*datastore)(nil)

// New returns a new store.Store database.
func New(ctx context.Context, db *db.DB) store.Store {
	cfg := config.FromContext(ctx)
	logger := log.FromContext(ctx).WithPrefix("store")

	s := &datastore{
		ctx:    ctx,
		cfg:    cfg,
		db:     db,
		logger: logger,

		userStore:   &userStore{},
		orgStore:    &orgStore{},
		teamStore:   &teamStore{},
		boardStore:  &boardStore{},
		columnStore: &columnStore{},
		cardStore:   &cardStore{},
		apiKeyStore: &apiKeyStore{},
		inviteStore: &inviteStore{},
	}

	return s
}
