// Package migrate keeps the kanban schema up to date. Each migration is a
// pair of embedded SQL scripts per driver, applied in version order inside a
// single transaction.
package migrate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/kanban/pkg/db"
	"github.com/charmbracelet/log"
)

// ErrNothingToRollback is returned by Rollback on an empty schema.
var ErrNothingToRollback = errors.New("there are no migrations to roll back")

// Func applies or reverts one migration.
type Func func(ctx context.Context, tx *db.Tx) error

// Migration is a versioned schema change.
type Migration struct {
	Version int64
	Name    string
	Up      Func
	Down    Func
}

// Status is a known migration and whether it has been applied.
type Status struct {
	Migration
	Applied bool
}

// Migrate applies every migration newer than the current version.
func Migrate(ctx context.Context, dbx *db.DB) error {
	logger := log.FromContext(ctx).WithPrefix("migrate")
	return dbx.TransactionContext(ctx, func(tx *db.Tx) error {
		if err := ensureTable(ctx, tx); err != nil {
			return err
		}
		current, err := Version(ctx, tx)
		if err != nil {
			return err
		}

		for _, m := range migrations {
			if m.Version <= current {
				continue
			}
			start := time.Now()
			if err := m.Up(ctx, tx); err != nil {
				return fmt.Errorf("migration %d %q: %w", m.Version, m.Name, err)
			}
			if _, err := tx.ExecContext(ctx, tx.Rebind("INSERT INTO migrations (name, version) VALUES (?, ?)"), m.Name, m.Version); err != nil {
				return err
			}
			logger.Info("applied migration", "version", m.Version, "name", m.Name, "took", time.Since(start))
		}
		return nil
	})
}

// Rollback reverts the latest applied migration.
func Rollback(ctx context.Context, dbx *db.DB) error {
	logger := log.FromContext(ctx).WithPrefix("migrate")
	return dbx.TransactionContext(ctx, func(tx *db.Tx) error {
		current, err := Version(ctx, tx)
		if err != nil {
			return err
		}
		m, ok := lookup(current)
		if !ok {
			return ErrNothingToRollback
		}

		if err := m.Down(ctx, tx); err != nil {
			return fmt.Errorf("rollback %d %q: %w", m.Version, m.Name, err)
		}
		if _, err := tx.ExecContext(ctx, tx.Rebind("DELETE FROM migrations WHERE version = ?"), m.Version); err != nil {
			return err
		}
		logger.Info("rolled back migration", "version", m.Version, "name", m.Name)
		return nil
	})
}

// Version returns the latest applied migration version, or 0 on a fresh
// database.
func Version(ctx context.Context, h db.Handler) (int64, error) {
	if !hasTable(ctx, h, "migrations") {
		return 0, nil
	}
	var v *int64
	if err := h.GetContext(ctx, &v, "SELECT MAX(version) FROM migrations"); err != nil {
		return 0, err
	}
	if v == nil {
		return 0, nil
	}
	return *v, nil
}

// Latest returns the newest known migration version.
func Latest() int64 {
	return migrations[len(migrations)-1].Version
}

// List returns every known migration with its applied state.
func List(ctx context.Context, h db.Handler) ([]Status, error) {
	current, err := Version(ctx, h)
	if err != nil {
		return nil, err
	}
	ss := make([]Status, len(migrations))
	for i, m := range migrations {
		ss[i] = Status{Migration: m, Applied: m.Version <= current}
	}
	return ss, nil
}

func lookup(version int64) (Migration, bool) {
	for _, m := range migrations {
		if m.Version == version {
			return m, true
		}
	}
	return Migration{}, false
}

func ensureTable(ctx context.Context, h db.Handler) error {
	if hasTable(ctx, h, "migrations") {
		return nil
	}
	id := "id INTEGER PRIMARY KEY AUTOINCREMENT"
	if h.DriverName() == driverPostgres {
		id = "id SERIAL PRIMARY KEY"
	}
	_, err := h.ExecContext(ctx, `CREATE TABLE migrations (
		`+id+`,
		name TEXT NOT NULL,
		version INTEGER NOT NULL UNIQUE
	)`)
	return err
}

func hasTable(ctx context.Context, h db.Handler, table string) bool {
	query := "SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?"
	if h.DriverName() == driverPostgres {
		query = "SELECT table_name FROM information_schema.tables WHERE table_schema = current_schema() AND table_name = ?"
	}
	var name string
	return h.GetContext(ctx, &name, h.Rebind(query), table) == nil
}
