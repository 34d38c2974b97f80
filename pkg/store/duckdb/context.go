package duckdb

import (
	"context"
	"database/sql"
)

type txKey struct{}

// WithTransaction lets a caller run several snapshot operations inside
// one transaction; stores pick it up via GetTransaction.
func WithTransaction(ctx context.Context, tx *sql.Tx) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

// GetTransaction returns the ambient transaction, nil when absent.
func GetTransaction(ctx context.Context) *sql.Tx {
	tx, _ := ctx.Value(txKey{}).(*sql.Tx)
	return tx
}
