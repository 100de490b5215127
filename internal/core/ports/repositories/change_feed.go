package repositories

import "context"

// ChangeFeed delivers coarse "something changed, recompute" notifications
// from the persistence layer. The core never learns what changed, only that
// derived balances are stale; consumers are expected to coalesce bursts.
type ChangeFeed interface {
	// Changes returns the notification channel. Notifications carry no
	// payload and may be dropped when the consumer is behind.
	Changes() <-chan struct{}

	// Run blocks and pumps notifications until the context is cancelled.
	Run(ctx context.Context) error
}
