package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/novira-app/novira-backend/internal/apperrors"
	"github.com/novira-app/novira-backend/internal/core/domain"
	portsrepo "github.com/novira-app/novira-backend/internal/core/ports/repositories"
	portssvc "github.com/novira-app/novira-backend/internal/core/ports/services"
	"github.com/novira-app/novira-backend/internal/platform/metrics"
)

// settlementService marks splits paid. Balance state is never mutated here;
// accepting a settlement only flips split flags and nudges the recompute
// worker, and the next aggregation pass sees the change.
type settlementService struct {
	BaseService
	splitRepo portsrepo.SplitRepositoryFacade
	trigger   func()
}

// SettlementOption configures a settlement service.
type SettlementOption func(*settlementService)

// WithRecomputeTrigger registers a callback fired after any settlement
// succeeds, typically the recompute worker's Kick.
func WithRecomputeTrigger(trigger func()) SettlementOption {
	return func(s *settlementService) { s.trigger = trigger }
}

// NewSettlementService creates a new SettlementService.
func NewSettlementService(splitRepo portsrepo.SplitRepositoryFacade, opts ...SettlementOption) portssvc.SettlementSvcFacade {
	s := &settlementService{splitRepo: splitRepo}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ portssvc.SettlementSvcFacade = (*settlementService)(nil)

// Settle marks one split paid and triggers a balance recompute.
func (s *settlementService) Settle(ctx context.Context, splitID string) error {
	updated, err := s.settleOne(ctx, splitID)
	if err != nil {
		return err
	}
	if updated && s.trigger != nil {
		s.trigger()
	}
	return nil
}

// SettleBatch settles each split independently, honoring context
// cancellation between splits. Splits not reached before cancellation are
// reported failed with the context error so the caller can retry them.
func (s *settlementService) SettleBatch(ctx context.Context, splitIDs []string) (*domain.BatchSettlementResult, error) {
	result := &domain.BatchSettlementResult{}
	if len(splitIDs) == 0 {
		return result, nil
	}

	anyUpdated := false
	for i, splitID := range splitIDs {
		if err := ctx.Err(); err != nil {
			for _, remaining := range splitIDs[i:] {
				result.Failed = append(result.Failed, domain.FailedSettlement{SplitID: remaining, Err: err})
			}
			break
		}

		updated, err := s.settleOne(ctx, splitID)
		if err != nil {
			result.Failed = append(result.Failed, domain.FailedSettlement{SplitID: splitID, Err: err})
			continue
		}
		result.Succeeded = append(result.Succeeded, splitID)
		anyUpdated = anyUpdated || updated
	}

	if anyUpdated && s.trigger != nil {
		s.trigger()
	}
	return result, nil
}

// settleOne applies a single settlement. Returns whether the split actually
// transitioned from unpaid to paid.
func (s *settlementService) settleOne(ctx context.Context, splitID string) (bool, error) {
	if splitID == "" {
		return false, fmt.Errorf("%w: split ID is required", apperrors.ErrValidation)
	}

	updated, err := s.splitRepo.MarkSplitPaid(ctx, splitID)
	if err != nil {
		metrics.SettlementFailures.Inc()
		return false, fmt.Errorf("failed to mark split paid: %w", err)
	}
	if !updated {
		s.LogDebug(ctx, "Split already settled, no-op", slog.String("split_id", splitID))
		return false, nil
	}

	metrics.SettlementsApplied.Inc()
	return true, nil
}
