package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// TransactionManager scopes the conditional writes of the approval store. A decision
// runs its pending-only UPDATE and the follow-up status read in one transaction, so a
// losing reviewer sees the winner's status and never a half-applied row.
type TransactionManager interface {
	// Begin opens the transaction. Failures are persistence errors the caller may retry.
	Begin(ctx context.Context) (pgx.Tx, error)

	// Commit makes the decision visible to the change feed listeners.
	Commit(ctx context.Context, tx pgx.Tx) error

	// Rollback discards an uncommitted decision. It is deferred right after Begin and
	// is a no-op once the transaction has been committed.
	Rollback(ctx context.Context, tx pgx.Tx) error
}

// RepositoryWithTx is implemented by the pool-backed stores whose writes must be
// applied at most once, such as the approval decision.
type RepositoryWithTx interface {
	TransactionManager
}
