package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/uptrace/bun"

	"warehouse/pkg/logger"
)

var errNotInitialized = errors.New("sqlite db is not initialized")

// TxFunc is the unit of work passed to WithWriteTx and WithReadTx.
type TxFunc func(ctx context.Context, tx bun.Tx) error

// WithWriteTx runs fn in a write transaction; any error rolls it back. A
// product change and its audit row commit or roll back together, and the
// rollback is logged against the request that caused it.
func (db *DB) WithWriteTx(ctx context.Context, fn TxFunc) error {
	if db == nil || db.W == nil {
		return errNotInitialized
	}
	err := db.W.RunInTx(ctx, &sql.TxOptions{}, fn)
	if err != nil {
		logger.FromContext(ctx).Debugw("write tx rolled back", "err", err)
	}
	return err
}

// WithReadTx runs fn in a read-only transaction on the reader pool.
func (db *DB) WithReadTx(ctx context.Context, fn TxFunc) error {
	if db == nil || db.R == nil {
		return errNotInitialized
	}
	return db.R.RunInTx(ctx, &sql.TxOptions{ReadOnly: true}, fn)
}
