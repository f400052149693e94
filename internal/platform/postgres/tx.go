package postgres

import (
	"context"
	"database/sql"
	"time"

	dErrors "greentax/pkg/domain-errors"
	txcontext "greentax/pkg/platform/tx"
)

const defaultTxTimeout = 5 * time.Second

// Transactor runs a function inside one database transaction. Stores reached
// through the function's context use the transaction via txcontext.From.
type Transactor struct {
	db      *sql.DB
	timeout time.Duration
}

func NewTransactor(db *sql.DB) *Transactor {
	return &Transactor{db: db, timeout: defaultTxTimeout}
}

// RunInTx commits when fn returns nil and rolls back otherwise. fn's error
// is returned unchanged. A context without a deadline is bounded by the
// transactor's timeout.
func (t *Transactor) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}

	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}

	tx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to begin transaction")
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := fn(txcontext.WithTx(ctx, tx)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to commit transaction")
	}
	return nil
}
