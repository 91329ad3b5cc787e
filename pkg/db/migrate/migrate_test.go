package migrate

import (
	"context"
	"testing"

	"github.com/charmbracelet/kanban/pkg/config"
	"github.com/charmbracelet/kanban/pkg/db/internal/test"
	"github.com/matryer/is"
)

func TestMigrateIdempotent(t *testing.T) {
	is := is.New(t)
	ctx := config.WithContext(context.TODO(), config.DefaultConfig())
	dbx, err := test.OpenSqlite(ctx, t)
	is.NoErr(err)

	v, err := Version(ctx, dbx)
	is.NoErr(err)
	is.Equal(v, int64(0))

	is.NoErr(Migrate(ctx, dbx))
	is.NoErr(Migrate(ctx, dbx))

	v, err = Version(ctx, dbx)
	is.NoErr(err)
	is.Equal(v, int64(len(migrations)))

	for _, table := range []string{"users", "organizations", "teams", "boards", "columns", "cards", "comments", "api_keys", "organization_invites"} {
		is.True(hasTable(ctx, dbx, table))
	}
}

func TestRollback(t *testing.T) {
	is := is.New(t)
	ctx := context.TODO()
	dbx, err := test.OpenSqlite(ctx, t)
	is.NoErr(err)

	is.NoErr(Migrate(ctx, dbx))
	is.NoErr(Rollback(ctx, dbx))
	is.True(!hasTable(ctx, dbx, "api_keys"))
	is.True(hasTable(ctx, dbx, "boards"))

	ss, err := List(ctx, dbx)
	is.NoErr(err)
	is.Equal(len(ss), 2)
	is.True(ss[0].Applied)
	is.True(!ss[1].Applied)

	is.NoErr(Rollback(ctx, dbx))
	is.Equal(Rollback(ctx, dbx), ErrNothingToRollback)

	is.NoErr(Migrate(ctx, dbx))
	v, err := Version(ctx, dbx)
	is.NoErr(err)
	is.Equal(v, int64(2))
}

func TestScriptsEmbedded(t *testing.T) {
	is := is.New(t)
	for _, m := range migrations {
		for _, driver := range []string{driverSQLite, driverSQLite3, driverPostgres} {
			for _, dir := range []string{"up", "down"} {
				_, err := scripts.ReadFile(scriptName(m.Version, m.Name, driver, dir))
				is.NoErr(err)
			}
		}
	}
	is.Equal(scriptName(2, "api keys invites", "sqlite3", "up"), "0002_api_keys_invites_sqlite.up.sql")
}
