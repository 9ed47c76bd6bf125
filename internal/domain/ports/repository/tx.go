package repository

import "context"

// Tx is an opaque transaction handle passed through repository methods.
// Concrete repos type-switch on it (pgx.Tx, *pgxpool.Conn, nil pool).
type Tx = any

// NoTX signals "run against the pool directly".
var NoTX Tx = nil

// TransactionManager runs fn inside a single database transaction,
// rolling back when fn returns an error.
type TransactionManager interface {
	WithTx(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}
