package worker

import (
	"context"
	"log/slog"
	"time"

	portsrepo "github.com/novira-app/novira-backend/internal/core/ports/repositories"
	"github.com/novira-app/novira-backend/internal/platform/metrics"
)

// RecomputeWorker debounces balance recompute requests. Balances are derived
// data, so a burst of settlements or split changes only needs one recompute;
// kicks arriving within the coalescing window collapse into a single job run.
type RecomputeWorker struct {
	window time.Duration
	kicks  chan struct{}
	job    func(ctx context.Context)
	logger *slog.Logger
}

// NewRecomputeWorker creates a worker that runs job at most once per
// coalescing window while kicks keep arriving.
func NewRecomputeWorker(window time.Duration, job func(ctx context.Context), logger *slog.Logger) *RecomputeWorker {
	return &RecomputeWorker{
		window: window,
		kicks:  make(chan struct{}, 1),
		job:    job,
		logger: logger,
	}
}

// Kick requests a recompute. Never blocks; a kick arriving while one is
// already pending is absorbed into it.
func (w *RecomputeWorker) Kick() {
	metrics.RecomputeTriggers.Inc()
	select {
	case w.kicks <- struct{}{}:
	default:
	}
}

// Run processes kicks until the context is cancelled. Each accepted kick
// opens a coalescing window; kicks landing inside the window are absorbed and
// the job runs once when it closes.
func (w *RecomputeWorker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-w.kicks:
		}

		timer := time.NewTimer(w.window)
	coalesce:
		for {
			select {
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			case <-w.kicks:
				// Absorbed into the open window.
			case <-timer.C:
				break coalesce
			}
		}

		start := time.Now()
		w.job(ctx)
		metrics.RecomputeRuns.Inc()
		w.logger.Debug("Recompute run finished",
			slog.Duration("elapsed", time.Since(start)))
	}
}

// Subscribe pumps a persistence-layer change feed into the worker until the
// context is cancelled. Feed errors end the subscription; the feed itself is
// responsible for reconnecting.
func (w *RecomputeWorker) Subscribe(ctx context.Context, feed portsrepo.ChangeFeed) {
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-feed.Changes():
			if !ok {
				return
			}
			w.Kick()
		}
	}
}
