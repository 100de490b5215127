package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/novira-app/novira-backend/internal/apperrors"
	"github.com/novira-app/novira-backend/internal/core/domain"
	portssvc "github.com/novira-app/novira-backend/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// defaultMinSplits is the minimum number of contributing splits before a
// settlement plan is worth presenting.
const defaultMinSplits = 2

// SimplifyGraph reduces a netted debt graph to a minimal settlement plan
// using greedy largest-magnitude matching: repeatedly pair the party owed
// the most with the party owing the most and settle the smaller of the two
// magnitudes. The plan has at most N-1 payments for N involved parties and
// zeroes every net balance.
//
// Each payment carries the IDs of the splits it discharges. First, every
// still-unassigned contribution on the direct edges between the pair (in
// either direction, since opposing splits net against each other) goes to
// the payment. Splits left over after all payments are routed through
// intermediaries: they attach to the first payment leaving their debtor,
// failing that the first payment arriving at their creditor, failing that
// the final payment. Across the plan the lists form an exact partition of
// the input splits. When the graph nets to nothing no payments are emitted
// and the contributing splits stay unassigned.
//
// The graph's edge amounts must conserve money: if party balances do not
// sum to zero (within epsilon) the input is corrupt and ErrInternal is
// returned.
func SimplifyGraph(graph *domain.PairwiseGraph, epsilon decimal.Decimal) ([]domain.SimplifiedPayment, error) {
	if graph == nil || len(graph.Edges) == 0 {
		return []domain.SimplifiedPayment{}, nil
	}

	// Positive balance: net creditor. Negative: net debtor.
	balances := make(map[string]decimal.Decimal)
	for _, edge := range graph.Edges {
		balances[edge.DebtorID] = balances[edge.DebtorID].Sub(edge.Amount)
		balances[edge.CreditorID] = balances[edge.CreditorID].Add(edge.Amount)
	}

	total := decimal.Zero
	parties := make([]string, 0, len(balances))
	for id, b := range balances {
		total = total.Add(b)
		parties = append(parties, id)
	}
	if total.Abs().GreaterThanOrEqual(epsilon) {
		return nil, fmt.Errorf("%w: party balances sum to %s, expected zero", apperrors.ErrInternal, total)
	}
	sort.Strings(parties)

	var payments []domain.SimplifiedPayment
	for {
		// Re-select the extremes each round; ties break toward the
		// lexically smaller party ID so plans are deterministic.
		var maxCreditor, maxDebtor string
		maxCredit, maxDebt := decimal.Zero, decimal.Zero
		for _, id := range parties {
			b := balances[id]
			if b.GreaterThan(maxCredit) {
				maxCreditor, maxCredit = id, b
			}
			if b.Neg().GreaterThan(maxDebt) {
				maxDebtor, maxDebt = id, b.Neg()
			}
		}
		if maxCredit.LessThan(epsilon) || maxDebt.LessThan(epsilon) {
			break
		}

		amount := decimal.Min(maxCredit, maxDebt)
		payments = append(payments, domain.SimplifiedPayment{
			FromID: maxDebtor,
			ToID:   maxCreditor,
			Amount: amount,
		})
		balances[maxDebtor] = balances[maxDebtor].Add(amount)
		balances[maxCreditor] = balances[maxCreditor].Sub(amount)
	}

	allocateSplits(graph, payments)
	return payments, nil
}

// allocateSplits distributes every contributing split ID across the plan's
// payments so that the union of the lists is an exact partition of the
// input splits.
func allocateSplits(graph *domain.PairwiseGraph, payments []domain.SimplifiedPayment) {
	if len(payments) == 0 {
		return
	}

	assigned := make(map[string]bool)

	// Direct pass: splits between the paying pair, in either direction,
	// belong to that payment.
	for i := range payments {
		p := &payments[i]
		for _, edge := range []domain.EdgeKey{
			{DebtorID: p.FromID, CreditorID: p.ToID},
			{DebtorID: p.ToID, CreditorID: p.FromID},
		} {
			for _, contrib := range graph.Contributions[edge] {
				if assigned[contrib.SplitID] {
					continue
				}
				p.SplitIDs = append(p.SplitIDs, contrib.SplitID)
				assigned[contrib.SplitID] = true
			}
		}
	}

	// Fallback pass: splits rerouted through an intermediary follow the
	// money. Prefer the payment their debtor makes, then the payment their
	// creditor receives, then the plan's final payment.
	edges := make([]domain.EdgeKey, 0, len(graph.Contributions))
	for edge := range graph.Contributions {
		edges = append(edges, edge)
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].DebtorID != edges[j].DebtorID {
			return edges[i].DebtorID < edges[j].DebtorID
		}
		return edges[i].CreditorID < edges[j].CreditorID
	})

	for _, edge := range edges {
		for _, contrib := range graph.Contributions[edge] {
			if assigned[contrib.SplitID] {
				continue
			}
			target := len(payments) - 1
			for i := range payments {
				if payments[i].FromID == edge.DebtorID {
					target = i
					break
				}
			}
			if payments[target].FromID != edge.DebtorID {
				for i := range payments {
					if payments[i].ToID == edge.CreditorID {
						target = i
						break
					}
				}
			}
			payments[target].SplitIDs = append(payments[target].SplitIDs, contrib.SplitID)
			assigned[contrib.SplitID] = true
		}
	}

	for i := range payments {
		sort.Strings(payments[i].SplitIDs)
	}
}

// simplifyService computes settlement plans on top of balance aggregation.
type simplifyService struct {
	BaseService
	balanceSvc portssvc.BalanceSvcFacade
	epsilon    decimal.Decimal
	minSplits  int
}

// SimplifyOption configures a simplify service.
type SimplifyOption func(*simplifyService)

// WithEpsilon overrides the residual magnitude below which balances are
// treated as settled.
func WithEpsilon(epsilon decimal.Decimal) SimplifyOption {
	return func(s *simplifyService) { s.epsilon = epsilon }
}

// WithMinSplits overrides the minimum split count before a plan is offered.
func WithMinSplits(n int) SimplifyOption {
	return func(s *simplifyService) { s.minSplits = n }
}

// NewSimplifyService creates a new SimplifyService.
func NewSimplifyService(balanceSvc portssvc.BalanceSvcFacade, opts ...SimplifyOption) portssvc.SimplifySvcFacade {
	s := &simplifyService{
		balanceSvc: balanceSvc,
		epsilon:    settlementEpsilon,
		minSplits:  defaultMinSplits,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ portssvc.SimplifySvcFacade = (*simplifyService)(nil)

// SimplifiedPayments computes the viewer's settlement plan. The plan is
// withheld (empty list) when too few splits contributed or when it would
// not reduce the number of transfers below the split count.
func (s *simplifyService) SimplifiedPayments(ctx context.Context, viewerID, reportingCurrency string) ([]domain.SimplifiedPayment, error) {
	summary, err := s.balanceSvc.ComputeBalances(ctx, viewerID, reportingCurrency)
	if err != nil {
		return nil, fmt.Errorf("failed to compute balances for simplification: %w", err)
	}

	payments, err := SimplifyGraph(summary.Graph, s.epsilon)
	if err != nil {
		return nil, err
	}

	splitCount := summary.Graph.SplitCount()
	if splitCount < s.minSplits || len(payments) >= splitCount {
		s.LogDebug(ctx, "Withholding settlement plan",
			slog.Int("splits", splitCount),
			slog.Int("payments", len(payments)))
		return []domain.SimplifiedPayment{}, nil
	}
	return payments, nil
}
