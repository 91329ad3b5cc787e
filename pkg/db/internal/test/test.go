// Package test opens throwaway databases for the db package tests.
package test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/kanban/pkg/db"
)

// SqliteDSN returns a sqlite data source for a file in dir with foreign keys
// enforced.
func SqliteDSN(dir string) string {
	return filepath.Join(dir, "kanban.db") +
		"?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
}

// OpenSqlite opens an empty sqlite database in a temporary directory. It is
// closed when the test ends.
func OpenSqlite(ctx context.Context, tb testing.TB) (*db.DB, error) {
	tb.Helper()
	dbx, err := db.Open(ctx, "sqlite", SqliteDSN(tb.TempDir()))
	if err != nil {
		return nil, err
	}
	tb.Cleanup(func() {
		if err := dbx.Close(); err != nil {
			tb.Error(err)
		}
	})
	return dbx, nil
}
