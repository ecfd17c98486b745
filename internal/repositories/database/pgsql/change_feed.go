package pgsql

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/SscSPs/shopdesk_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/shopdesk_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ApprovalChangesChannel is the NOTIFY channel fed by the approval_requests trigger.
const ApprovalChangesChannel = "approval_requests_changed"

const (
	minReconnectDelay = 500 * time.Millisecond
	maxReconnectDelay = 30 * time.Second
)

// PgxChangeFeed listens for approval row changes on a dedicated pooled connection and
// reconnects with backoff. After a reconnect it reports one synthetic change because
// notifications sent while disconnected are lost.
type PgxChangeFeed struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func newPgxChangeFeed(pool *pgxpool.Pool) *PgxChangeFeed {
	return &PgxChangeFeed{pool: pool, logger: slog.Default().With(slog.String("component", "approval_change_feed"))}
}

var _ portsrepo.ChangeFeed = (*PgxChangeFeed)(nil)

func (f *PgxChangeFeed) Subscribe(ctx context.Context, onChange func(domain.ChangeEvent)) (func(), error) {
	listenCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		f.run(listenCtx, onChange)
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			cancel()
			<-done
		})
	}, nil
}

func (f *PgxChangeFeed) run(ctx context.Context, onChange func(domain.ChangeEvent)) {
	delay := minReconnectDelay
	connectedBefore := false
	for {
		err := f.listen(ctx, func() {
			delay = minReconnectDelay
			if connectedBefore {
				onChange(domain.ChangeEvent{Op: domain.ChangeUpdate})
			}
			connectedBefore = true
		}, onChange)
		if ctx.Err() != nil {
			return
		}
		f.logger.Warn("Approval change listener disconnected, reconnecting",
			slog.String("error", err.Error()),
			slog.Duration("retry_in", delay))

		select {
		case <-ctx.Done():
			return
		case <-time.After(delay):
		}
		delay = min(delay*2, maxReconnectDelay)
	}
}

func (f *PgxChangeFeed) listen(ctx context.Context, onListening func(), onChange func(domain.ChangeEvent)) error {
	conn, err := f.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer func() {
		// Leave the connection clean before it goes back to the pool.
		unlistenCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if _, err := conn.Exec(unlistenCtx, "UNLISTEN *"); err != nil {
			conn.Conn().Close(unlistenCtx)
		}
		conn.Release()
	}()

	if _, err := conn.Exec(ctx, "LISTEN "+ApprovalChangesChannel); err != nil {
		return err
	}
	f.logger.Info("Listening for approval changes", slog.String("channel", ApprovalChangesChannel))
	onListening()

	for {
		notification, err := conn.Conn().WaitForNotification(ctx)
		if err != nil {
			return err
		}
		var event domain.ChangeEvent
		if err := json.Unmarshal([]byte(notification.Payload), &event); err != nil {
			f.logger.Warn("Malformed approval change payload", slog.String("payload", notification.Payload))
			event = domain.ChangeEvent{Op: domain.ChangeUpdate}
		}
		onChange(event)
	}
}
