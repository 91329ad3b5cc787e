package backend

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/kanban/pkg/config"
	"github.com/charmbracelet/kanban/pkg/db"
	"github.com/charmbracelet/kanban/pkg/jwk"
	"github.com/charmbracelet/kanban/pkg/store"
	"github.com/charmbracelet/log"
)

// Backend is the kanban backend. It owns the identity store, resolves
// credentials and runs every resource operation through the access rules.
type Backend struct {
	ctx    context.Context
	cfg    *config.Config
	db     *db.DB
	store  store.Store
	logger *log.Logger
	keys   *keyCache
	jwk    jwk.Pair
	now    func() time.Time
}

// New returns a new kanban backend. The token signing key is derived from
// cfg.Auth.JWTSecret. Without a secret the backend still serves the
// server-side commands but cannot issue or verify bearer tokens.
func New(ctx context.Context, cfg *config.Config, db *db.DB, st store.Store) (*Backend, error) {
	if cfg == nil {
		return nil, config.ErrNilConfig
	}

	pair, err := jwk.NewPair(cfg)
	if err != nil && !errors.Is(err, jwk.ErrEmptySecret) {
		return nil, fmt.Errorf("signing key: %w", err)
	}

	logger := log.FromContext(ctx).WithPrefix("backend")
	b := &Backend{
		ctx:    ctx,
		cfg:    cfg,
		db:     db,
		store:  st,
		logger: logger,
		keys:   newKeyCache(1000),
		jwk:    pair,
		now:    time.Now,
	}

	return b, nil
}
