package migrate

import (
	"context"
	"embed"
	"fmt"
	"strings"

	"github.com/charmbracelet/kanban/pkg/db"
)

const (
	driverSQLite   = "sqlite"
	driverSQLite3  = "sqlite3"
	driverPostgres = "postgres"
)

//go:embed *.sql
var scripts embed.FS

// Oldest first. Versions must be contiguous from 1.
var migrations = []Migration{
	scripted(1, "create tables"),
	scripted(2, "api keys invites"),
}

// scripted returns a migration that runs the embedded
// NNNN_name_driver.{up,down}.sql scripts.
func scripted(version int64, name string) Migration {
	return Migration{
		Version: version,
		Name:    name,
		Up: func(ctx context.Context, tx *db.Tx) error {
			return runScript(ctx, tx, scriptName(version, name, tx.DriverName(), "up"))
		},
		Down: func(ctx context.Context, tx *db.Tx) error {
			return runScript(ctx, tx, scriptName(version, name, tx.DriverName(), "down"))
		},
	}
}

func scriptName(version int64, name, driver, direction string) string {
	if driver == driverSQLite3 {
		driver = driverSQLite
	}
	slug := strings.ToLower(strings.NewReplacer(" ", "_", "-", "_").Replace(name))
	return fmt.Sprintf("%04d_%s_%s.%s.sql", version, slug, driver, direction)
}

func runScript(ctx context.Context, h db.Handler, fn string) error {
	sql, err := scripts.ReadFile(fn)
	if err != nil {
		return fmt.Errorf("read %s: %w", fn, err)
	}
	_, err = h.ExecContext(ctx, string(sql))
	return err
}
