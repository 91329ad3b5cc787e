package main

import (
	"context"
	"flag"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/kanban/pkg/backend"
	"github.com/charmbracelet/kanban/pkg/config"
	"github.com/charmbracelet/kanban/pkg/db"
	"github.com/charmbracelet/kanban/pkg/db/migrate"
	"github.com/charmbracelet/kanban/pkg/store/database"
	"github.com/charmbracelet/kanban/pkg/web"
	"github.com/rogpeppe/go-internal/testscript"
)

var update = flag.Bool("update", false, "update script files")

const jwtSecret = "testscript-secret"

func TestMain(m *testing.M) {
	os.Exit(testscript.RunMain(m, map[string]func() int{
		"kanban": run,
	}))
}

func TestScript(t *testing.T) {
	testscript.Run(t, testscript.Params{
		Dir:           "./testdata/",
		UpdateScripts: *update,
		Setup: func(e *testscript.Env) error {
			data := filepath.Join(e.WorkDir, "data")
			if err := os.MkdirAll(data, 0o755); err != nil {
				return err
			}

			e.Setenv("HOME", e.WorkDir)
			e.Setenv("KANBAN_DATA_PATH", data)
			e.Setenv("KANBAN_CONFIG_DIR", filepath.Join(e.WorkDir, ".kanban"))
			e.Setenv("KANBAN_AUTH_JWT_SECRET", jwtSecret)
			e.Setenv("KANBAN_LOG_PATH", filepath.Join(e.WorkDir, "kanban.log"))

			cfg := config.DefaultConfig()
			cfg.DataPath = data
			cfg.Auth.JWTSecret = jwtSecret
			if err := cfg.Validate(); err != nil {
				return err
			}

			ctx := config.WithContext(context.Background(), cfg)
			dbx, err := db.Open(ctx, cfg.DB.Driver, cfg.DB.DataSource)
			if err != nil {
				return err
			}
			if err := migrate.Migrate(ctx, dbx); err != nil {
				return err
			}

			be, err := backend.New(ctx, cfg, dbx, database.New(ctx, dbx))
			if err != nil {
				return err
			}

			ctx = db.WithContext(ctx, dbx)
			ctx = backend.WithContext(ctx, be)
			h, err := web.NewRouter(ctx)
			if err != nil {
				return err
			}

			srv := httptest.NewServer(h)
			e.Setenv("SERVER_URL", srv.URL)
			e.Defer(func() {
				srv.Close()
				dbx.Close() // nolint: errcheck
			})

			return nil
		},
	})
}
