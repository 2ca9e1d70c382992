package store

import (
	"context"
	"database/sql"
)

// Querier is the part of *sql.DB and *sql.Tx that the SQL deck store needs,
// so its helpers run the same inside or outside a transaction.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

var (
	_ Querier = (*sql.DB)(nil)
	_ Querier = (*sql.Tx)(nil)
)
