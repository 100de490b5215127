package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/novira-app/novira-backend/internal/apperrors"
	"github.com/novira-app/novira-backend/internal/core/domain"
	portsrepo "github.com/novira-app/novira-backend/internal/core/ports/repositories"
	portssvc "github.com/novira-app/novira-backend/internal/core/ports/services"
	"github.com/novira-app/novira-backend/internal/platform/metrics"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// settlementEpsilon is one minor unit of a typical two-decimal currency.
// Netted edges and residual magnitudes below it are treated as zero.
var settlementEpsilon = decimal.New(1, -2)

// balanceService aggregates unsettled splits into totals and the netted
// pairwise debt graph. Aggregation is a pure pass over one snapshot; the
// service only adds snapshot fetching on top.
type balanceService struct {
	BaseService
	splitRepo portsrepo.SplitReader
	rateSvc   portssvc.RateReaderSvc
}

// NewBalanceService creates a new BalanceService.
func NewBalanceService(splitRepo portsrepo.SplitReader, rateSvc portssvc.RateReaderSvc) portssvc.BalanceSvcFacade {
	return &balanceService{splitRepo: splitRepo, rateSvc: rateSvc}
}

var _ portssvc.BalanceSvcFacade = (*balanceService)(nil)

// ComputeBalances fetches one snapshot (splits + rates) and aggregates it.
func (s *balanceService) ComputeBalances(ctx context.Context, viewerID, reportingCurrency string) (*domain.BalanceSummary, error) {
	if viewerID == "" {
		return nil, fmt.Errorf("%w: viewer ID is required", apperrors.ErrValidation)
	}

	var (
		splits []domain.Split
		table  domain.RateTable
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		splits, err = s.splitRepo.ListUnsettledSplits(gctx, viewerID)
		if err != nil {
			return fmt.Errorf("failed to list unsettled splits: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		table, err = s.rateSvc.GetRateTable(gctx, reportingCurrency)
		if err != nil {
			return fmt.Errorf("failed to load rate table: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return s.aggregate(ctx, splits, viewerID, table), nil
}

// ListPendingSplits retrieves the viewer's unsettled splits, newest-first.
func (s *balanceService) ListPendingSplits(ctx context.Context, viewerID string) ([]domain.Split, error) {
	if viewerID == "" {
		return nil, fmt.Errorf("%w: viewer ID is required", apperrors.ErrValidation)
	}
	splits, err := s.splitRepo.ListUnsettledSplits(ctx, viewerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list unsettled splits: %w", err)
	}
	sort.SliceStable(splits, func(i, j int) bool {
		if !splits[i].TxnDate.Equal(splits[j].TxnDate) {
			return splits[i].TxnDate.After(splits[j].TxnDate)
		}
		return splits[i].SplitID < splits[j].SplitID
	})
	return splits, nil
}

// aggregate runs the pure aggregation pass over one snapshot. Splits are
// processed oldest-first by (date, ID) so totals, edge netting, and the
// contribution lists behind settlement traceability are all deterministic.
func (s *balanceService) aggregate(ctx context.Context, splits []domain.Split, viewerID string, table domain.RateTable) *domain.BalanceSummary {
	sort.SliceStable(splits, func(i, j int) bool {
		if !splits[i].TxnDate.Equal(splits[j].TxnDate) {
			return splits[i].TxnDate.Before(splits[j].TxnDate)
		}
		return splits[i].SplitID < splits[j].SplitID
	})

	summary := &domain.BalanceSummary{
		ViewerID:      viewerID,
		Currency:      table.ReportingCurrency,
		TotalOwed:     decimal.Zero,
		TotalOwedToMe: decimal.Zero,
	}
	graph := &domain.PairwiseGraph{
		Currency:      table.ReportingCurrency,
		Contributions: make(map[domain.EdgeKey][]domain.Contribution),
	}

	// pairNet accumulates the signed net per unordered pair: positive means
	// the lexically smaller party owes the larger one.
	type pairKey struct{ low, high string }
	pairNet := make(map[pairKey]decimal.Decimal)

	for _, split := range splits {
		if split.IsPaid {
			continue
		}
		if err := split.Validate(); err != nil {
			s.LogWarn(ctx, "Skipping malformed split",
				slog.String("split_id", split.SplitID),
				slog.String("error", err.Error()))
			metrics.MalformedSplitsSkipped.Inc()
			continue
		}

		normalized := s.rateSvc.Normalize(ctx, split, table)

		if split.DebtorID == viewerID {
			summary.TotalOwed = summary.TotalOwed.Add(normalized)
		}
		if split.CreditorID == viewerID {
			summary.TotalOwedToMe = summary.TotalOwedToMe.Add(normalized)
		}

		key := pairKey{low: split.DebtorID, high: split.CreditorID}
		signed := normalized
		if key.low > key.high {
			key.low, key.high = key.high, key.low
			signed = signed.Neg()
		}
		pairNet[key] = pairNet[key].Add(signed)

		edge := domain.EdgeKey{DebtorID: split.DebtorID, CreditorID: split.CreditorID}
		graph.Contributions[edge] = append(graph.Contributions[edge], domain.Contribution{
			SplitID: split.SplitID,
			Amount:  normalized,
		})
	}

	keys := make([]pairKey, 0, len(pairNet))
	for k := range pairNet {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].low != keys[j].low {
			return keys[i].low < keys[j].low
		}
		return keys[i].high < keys[j].high
	})

	for _, k := range keys {
		net := pairNet[k]
		if net.Abs().LessThan(settlementEpsilon) {
			// Fully cancelled pair; prune the edge.
			continue
		}
		if net.IsPositive() {
			graph.Edges = append(graph.Edges, domain.NetBalance{DebtorID: k.low, CreditorID: k.high, Amount: net})
		} else {
			graph.Edges = append(graph.Edges, domain.NetBalance{DebtorID: k.high, CreditorID: k.low, Amount: net.Neg()})
		}
	}

	summary.Graph = graph
	return summary
}
