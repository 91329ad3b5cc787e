package db

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/jmoiron/sqlx"
)

// SlowQuery is the duration above which a statement is logged as a warning.
var SlowQuery = 250 * time.Millisecond

// tracer logs statements run through a DB or Tx. Every statement is logged
// at debug level in verbose mode. Slow statements are always logged.
type tracer struct {
	logger  *log.Logger
	verbose bool
}

func (t tracer) trace(query string, args []interface{}) func() {
	if t.logger == nil {
		return func() {}
	}
	start := time.Now()
	return func() {
		took := time.Since(start)
		switch {
		case took >= SlowQuery:
			t.logger.Warn("slow query", "query", oneLine(query), "took", took)
		case t.verbose:
			t.logger.Debug("query", "query", oneLine(query), "args", args, "took", took)
		}
	}
}

func oneLine(q string) string {
	return strings.Join(strings.Fields(q), " ")
}

func (d *DB) SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	defer d.tracer.trace(query, args)()
	return d.DB.SelectContext(ctx, dest, query, args...)
}

func (d *DB) GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	defer d.tracer.trace(query, args)()
	return d.DB.GetContext(ctx, dest, query, args...)
}

func (d *DB) QueryxContext(ctx context.Context, query string, args ...interface{}) (*sqlx.Rows, error) {
	defer d.tracer.trace(query, args)()
	return d.DB.QueryxContext(ctx, query, args...)
}

func (d *DB) QueryRowxContext(ctx context.Context, query string, args ...interface{}) *sqlx.Row {
	defer d.tracer.trace(query, args)()
	return d.DB.QueryRowxContext(ctx, query, args...)
}

func (d *DB) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	defer d.tracer.trace(query, args)()
	return d.DB.ExecContext(ctx, query, args...)
}

func (t *Tx) SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	defer t.tracer.trace(query, args)()
	return t.Tx.SelectContext(ctx, dest, query, args...)
}

func (t *Tx) GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	defer t.tracer.trace(query, args)()
	return t.Tx.GetContext(ctx, dest, query, args...)
}

func (t *Tx) QueryxContext(ctx context.Context, query string, args ...interface{}) (*sqlx.Rows, error) {
	defer t.tracer.trace(query, args)()
	return t.Tx.QueryxContext(ctx, query, args...)
}

func (t *Tx) QueryRowxContext(ctx context.Context, query string, args ...interface{}) *sqlx.Row {
	defer t.tracer.trace(query, args)()
	return t.Tx.QueryRowxContext(ctx, query, args...)
}

func (t *Tx) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	defer t.tracer.trace(query, args)()
	return t.Tx.ExecContext(ctx, query, args...)
}
