package services

import (
	"context"

	"github.com/novira-app/novira-backend/internal/core/domain"
)

// BalanceReaderSvc defines the balance aggregation operations
type BalanceReaderSvc interface {
	// ComputeBalances aggregates the viewer's unsettled splits into scalar
	// totals and the netted pairwise graph, in the reporting currency.
	ComputeBalances(ctx context.Context, viewerID, reportingCurrency string) (*domain.BalanceSummary, error)

	// ListPendingSplits retrieves the viewer's unsettled splits,
	// newest-first, for presentation.
	ListPendingSplits(ctx context.Context, viewerID string) ([]domain.Split, error)
}

// BalanceSvcFacade combines all balance-related service interfaces
type BalanceSvcFacade interface {
	BalanceReaderSvc
}

// SimplifySvcFacade exposes debt simplification over a computed balance graph
type SimplifySvcFacade interface {
	// SimplifiedPayments computes the settlement plan for the viewer. The
	// returned list is empty when simplification is not worth offering
	// (too few splits, or no reduction in payment count).
	SimplifiedPayments(ctx context.Context, viewerID, reportingCurrency string) ([]domain.SimplifiedPayment, error)
}
