// Package db wraps sqlx with query tracing and transactions for the kanban
// server. It supports sqlite and postgres.
package db

import "context"

type contextKey struct{}

// WithContext attaches dbx to ctx.
func WithContext(ctx context.Context, dbx *DB) context.Context {
	return context.WithValue(ctx, contextKey{}, dbx)
}

// FromContext returns the database attached to ctx, or nil.
func FromContext(ctx context.Context) *DB {
	dbx, _ := ctx.Value(contextKey{}).(*DB)
	return dbx
}
