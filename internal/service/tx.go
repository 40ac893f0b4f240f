package service

import (
	"context"
	"database/sql"

	"github.com/kmazurek/teachme-api/internal/store"
)

// TxRunner runs a function within a database transaction. Services depend on
// this interface instead of *sql.DB directly so tests can substitute a
// runner that skips the database.
type TxRunner interface {
	RunInTransaction(ctx context.Context, fn store.TxFn) error
}

// sqlTxRunner is the production TxRunner backed by a *sql.DB.
type sqlTxRunner struct {
	db *sql.DB
}

// NewTxRunner creates a TxRunner that opens real transactions on db.
func NewTxRunner(db *sql.DB) TxRunner {
	return &sqlTxRunner{db: db}
}

func (r *sqlTxRunner) RunInTransaction(ctx context.Context, fn store.TxFn) error {
	return store.RunInTransaction(ctx, r.db, fn)
}
