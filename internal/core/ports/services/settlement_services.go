package services

import (
	"context"

	"github.com/novira-app/novira-backend/internal/core/domain"
)

// SettlementSvcFacade exposes split settlement operations
type SettlementSvcFacade interface {
	// Settle marks a single split paid. Settling an already-paid split is an
	// idempotent no-op, not an error.
	Settle(ctx context.Context, splitID string) error

	// SettleBatch settles each split independently and reports exactly which
	// succeeded and which failed. There is no rollback; the caller retries
	// only the failed subset. An empty batch is a no-op.
	SettleBatch(ctx context.Context, splitIDs []string) (*domain.BatchSettlementResult, error)
}
