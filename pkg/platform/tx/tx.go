// Package tx carries an open *sql.Tx through a context so postgres stores
// can join the caller's transaction without widening their signatures.
package tx

import (
	"context"
	"database/sql"
)

type ctxKey struct{}

// WithTx returns ctx carrying tx. A nil tx leaves ctx untouched.
func WithTx(ctx context.Context, tx *sql.Tx) context.Context {
	if tx == nil {
		return ctx
	}
	return context.WithValue(ctx, ctxKey{}, tx)
}

// From returns the transaction stored by WithTx, if any.
func From(ctx context.Context) (*sql.Tx, bool) {
	tx, ok := ctx.Value(ctxKey{}).(*sql.Tx)
	return tx, ok && tx != nil
}
