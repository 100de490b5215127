package pgsql

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	portsrepo "github.com/novira-app/novira-backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// splitsChannel is the pg_notify channel raised by the splits table trigger.
const splitsChannel = "splits_changed"

// SplitChangeFeed turns PostgreSQL LISTEN/NOTIFY on the splits table into a
// ChangeFeed. Notifications are collapsed to empty struct ticks; a slow
// consumer drops ticks instead of blocking the listener connection.
type SplitChangeFeed struct {
	pool    *pgxpool.Pool
	logger  *slog.Logger
	changes chan struct{}
}

// NewSplitChangeFeed creates a change feed over the splits table.
func NewSplitChangeFeed(pool *pgxpool.Pool, logger *slog.Logger) *SplitChangeFeed {
	return &SplitChangeFeed{
		pool:    pool,
		logger:  logger,
		changes: make(chan struct{}, 1),
	}
}

var _ portsrepo.ChangeFeed = (*SplitChangeFeed)(nil)

// Changes returns the notification channel.
func (f *SplitChangeFeed) Changes() <-chan struct{} {
	return f.changes
}

// Run listens for notifications until the context is cancelled. A broken
// listener connection is reacquired after a short backoff; notifications
// raised in the gap are lost, which is acceptable since the worker also
// recomputes on explicit settlement triggers.
func (f *SplitChangeFeed) Run(ctx context.Context) error {
	for {
		if err := f.listen(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			f.logger.Warn("Split listener connection lost, reacquiring",
				slog.String("error", err.Error()))
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Second):
		}
	}
}

func (f *SplitChangeFeed) listen(ctx context.Context) error {
	conn, err := f.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("failed to acquire listener connection: %w", err)
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, "LISTEN "+splitsChannel); err != nil {
		return fmt.Errorf("failed to LISTEN on %s: %w", splitsChannel, err)
	}

	for {
		if _, err := conn.Conn().WaitForNotification(ctx); err != nil {
			return fmt.Errorf("failed waiting for notification: %w", err)
		}
		select {
		case f.changes <- struct{}{}:
		default:
			// Consumer already has a pending tick.
		}
	}
}
