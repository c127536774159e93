// Package tx provides the transaction boundary used by workflows: a context
// carrier for *sql.Tx, a Runner seam implemented per backend, and a Scope
// helper that gives every workflow the same validate-then-mutate-with-rollback
// sequencing without duplicating the boilerplate.
package tx

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"guild/pkg/action"
)

type ctxKey struct{}

var txKey = ctxKey{}

// WithTx stores a SQL transaction in context for downstream store usage.
func WithTx(ctx context.Context, tx *sql.Tx) context.Context {
	if tx == nil {
		return ctx
	}
	return context.WithValue(ctx, txKey, tx)
}

// From extracts a SQL transaction from context if present.
func From(ctx context.Context) (*sql.Tx, bool) {
	tx, ok := ctx.Value(txKey).(*sql.Tx)
	return tx, ok
}

// Runner provides a transactional boundary for store mutations.
// Implementations wrap a database transaction or, in-memory, a coarse lock
// with snapshot/restore. Returning a non-nil error from fn rolls the
// transaction back.
type Runner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// errRollback signals that fn produced a failed response and the transaction
// must roll back; the response itself carries the failure detail.
var errRollback = errors.New("rollback")

// Scope runs fn inside a transaction and returns its response.
//
// Sequencing contract:
//   - fn returning a failed response rolls the transaction back and the
//     failure is returned untouched, preserving root-cause code/message/errors.
//   - a panic inside fn rolls back and surfaces as a database-error response;
//     nothing escapes to the caller.
//   - a successful response commits.
//
// Eager validation and existence checks belong before Scope so the common
// failure paths never open a transaction.
func Scope[T any](ctx context.Context, runner Runner, fn func(ctx context.Context) action.Response[T]) action.Response[T] {
	var resp action.Response[T]
	err := runner.RunInTx(ctx, func(txCtx context.Context) (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("%v", r)
			}
		}()
		resp = fn(txCtx)
		if !resp.Successful {
			return errRollback
		}
		return nil
	})
	switch {
	case err == nil:
		return resp
	case errors.Is(err, errRollback):
		return resp
	default:
		// Unexpected fault (begin/commit failure or a recovered panic):
		// converted once here, never propagated.
		return action.Failure[T](err.Error())
	}
}
