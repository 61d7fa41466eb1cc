package db

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
)

// PgTxManager runs journal writes on a single pgx pool.
type PgTxManager struct {
	pool *pgxpool.Pool
}

var _ TxManager = (*PgTxManager)(nil)

// Connect opens a pool for dsn and checks it with a ping. The pool is closed
// again when the ping fails.
func Connect(ctx context.Context, dsn string) (*PgTxManager, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, errors.Wrap(err, "open pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, errors.Wrap(err, "ping")
	}
	return &PgTxManager{pool: pool}, nil
}

func (m *PgTxManager) Close() {
	m.pool.Close()
}

// RunMaster runs fn in a READ COMMITTED transaction. It commits when fn
// returns nil and rolls back on an error or a panic.
func (m *PgTxManager) RunMaster(ctx context.Context, fn func(ctxTx context.Context, tx Transaction) error) error {
	opts := pgx.TxOptions{IsoLevel: pgx.ReadCommitted}
	err := pgx.BeginTxFunc(ctx, m.pool, opts, func(tx pgx.Tx) error {
		return fn(ctx, tx)
	})
	return errors.Wrap(err, "run in tx")
}

func (m *PgTxManager) Conn() Transaction {
	return m.pool
}
