package pgsql

import (
	"context"
	"errors"
	"testing"

	"github.com/SscSPs/shopdesk_backend/internal/apperrors"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
)

// stubTx answers only the calls the transaction helpers make.
type stubTx struct {
	pgx.Tx
	commitErr   error
	rollbackErr error
}

func (s *stubTx) Commit(context.Context) error   { return s.commitErr }
func (s *stubTx) Rollback(context.Context) error { return s.rollbackErr }

func TestBaseRepository_RollbackAfterCommitIsNoop(t *testing.T) {
	repo := &BaseRepository{}
	ctx := context.Background()

	assert.NoError(t, repo.Rollback(ctx, &stubTx{rollbackErr: pgx.ErrTxClosed}))
	assert.NoError(t, repo.Rollback(ctx, &stubTx{}))
}

func TestBaseRepository_FailuresAreRetryable(t *testing.T) {
	repo := &BaseRepository{}
	ctx := context.Background()
	connLost := errors.New("connection reset by peer")

	err := repo.Commit(ctx, &stubTx{commitErr: connLost})
	assert.True(t, apperrors.IsRetryable(err))
	assert.ErrorIs(t, err, connLost)

	err = repo.Rollback(ctx, &stubTx{rollbackErr: connLost})
	assert.True(t, apperrors.IsRetryable(err))
}
